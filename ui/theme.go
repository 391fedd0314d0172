package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CustomTheme keeps the default theme but always uses the light palette and
// the blue accent of the start button.
type CustomTheme struct {
	fyne.Theme
}

// NewCustomTheme creates a new instance of the custom theme.
func NewCustomTheme() fyne.Theme {
	return &CustomTheme{Theme: theme.DefaultTheme()}
}

// Color returns the color for the given name, forcing the light variant.
func (t *CustomTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorBlue
	case theme.ColorNameSuccess:
		return colorGreen
	case theme.ColorNameError:
		return colorRed
	case theme.ColorNameForeground:
		return colorText
	}
	return t.Theme.Color(name, theme.VariantLight)
}
