package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"ReactionTest/control"
	"ReactionTest/i18n"
	"ReactionTest/reaction"
)

// UI constants
const (
	FontSizeTitle   float32 = 26
	FontSizeStatus  float32 = 20
	FontSizeResult  float32 = 36
	FontSizeReady   float32 = 28
	CardPadding             = 24
	replyTimeout            = 200 * time.Millisecond
)

// App is what the UI needs from the application.
type App interface {
	EnqueueCommand(cmd control.Command)
	Snapshot() reaction.Snapshot
	Countdown() int
	HandleKeyRune(rune)
	ShowInfoDialog(title, text string, minSize fyne.Size)
}

// View is the stimulus panel with its status, result and history sections.
type View struct {
	app App

	background *canvas.Rectangle
	panel      *TappableContainer

	titleText     *canvas.Text
	startButton   *widget.Button
	waitingBox    *fyne.Container
	countdownText *canvas.Text
	readyText     *canvas.Text

	resultBox      *fyne.Container
	resultText     *canvas.Text
	feedbackText   *canvas.Text
	tryAgainButton *widget.Button

	bestText *canvas.Text

	historyButton *widget.Button
	historyBox    *fyne.Container
	historyList   *fyne.Container
	averageText   *canvas.Text
	showHistory   bool

	resetButton *widget.Button
}

// NewView builds the view. Call UpdateDisplay to render a snapshot.
func NewView(a App) *View {
	v := &View{app: a}

	v.background = canvas.NewRectangle(PhaseColor(reaction.PhaseIdle))

	v.titleText = canvas.NewText(i18n.T("title"), colorText)
	v.titleText.TextStyle.Bold = true
	v.titleText.TextSize = FontSizeTitle
	titleIcon := widget.NewIcon(theme.MediaFastForwardIcon())

	v.startButton = widget.NewButton(i18n.T("start_test"), func() { v.send(control.CmdStart) })
	v.startButton.Importance = widget.HighImportance

	statusText := canvas.NewText(i18n.T("wait_for_green"), colorText)
	statusText.TextStyle.Bold = true
	statusText.TextSize = FontSizeStatus
	v.countdownText = canvas.NewText("", colorText)
	v.waitingBox = container.NewVBox(
		container.NewCenter(widget.NewIcon(theme.HistoryIcon())),
		container.NewCenter(statusText),
		container.NewCenter(v.countdownText),
	)

	v.readyText = canvas.NewText(i18n.T("click_now"), colorGreen)
	v.readyText.TextStyle.Bold = true
	v.readyText.TextSize = FontSizeReady

	v.resultText = canvas.NewText("", colorText)
	v.resultText.TextStyle.Bold = true
	v.resultText.TextSize = FontSizeResult
	v.feedbackText = canvas.NewText("", colorText)
	v.feedbackText.TextStyle.Bold = true
	v.feedbackText.TextSize = FontSizeStatus
	v.tryAgainButton = widget.NewButton(i18n.T("try_again"), func() { v.send(control.CmdStart) })
	v.tryAgainButton.Importance = widget.SuccessImportance
	v.resultBox = container.NewVBox(
		container.NewCenter(v.resultText),
		container.NewCenter(v.feedbackText),
		v.tryAgainButton,
	)

	v.bestText = canvas.NewText("", colorYellow)
	v.bestText.TextStyle.Bold = true

	v.historyList = container.NewVBox()
	v.averageText = canvas.NewText("", colorText)
	v.averageText.TextStyle.Bold = true
	lastAttempts := canvas.NewText(i18n.T("last_attempts"), colorText)
	lastAttempts.TextStyle.Bold = true
	v.historyBox = container.NewVBox(lastAttempts, v.historyList, v.averageText)
	v.historyBox.Hide()
	v.historyButton = widget.NewButton(i18n.T("show_attempts"), v.ToggleHistory)

	v.resetButton = widget.NewButton(i18n.T("reset"), func() { v.send(control.CmdReset) })
	aboutButton := NewTappableContainer(widget.NewIcon(theme.QuestionIcon()), func() {
		a.ShowInfoDialog(i18n.T("about"), i18n.T("about_text"), fyne.NewSize(360, 200))
	}, nil)

	card := container.NewVBox(
		container.NewCenter(container.NewHBox(titleIcon, v.titleText)),
		v.startButton,
		v.waitingBox,
		container.NewCenter(v.readyText),
		v.resultBox,
		widget.NewSeparator(),
		container.NewCenter(container.NewHBox(widget.NewIcon(theme.InfoIcon()), v.bestText)),
		v.historyButton,
		v.historyBox,
		container.NewHBox(aboutButton, layout.NewSpacer(), v.resetButton),
	)

	cardBackground := canvas.NewRectangle(color.White)
	cardBackground.CornerRadius = 12
	cardStack := container.NewStack(cardBackground, container.NewPadded(container.NewPadded(card)))

	v.panel = NewTappableContainer(
		container.NewStack(v.background, container.NewBorder(spacer(), spacer(), spacer(), spacer(), container.NewCenter(cardStack))),
		v.onPanelTapped,
		nil,
	)

	v.render(a.Snapshot(), a.Countdown())
	return v
}

// GetCanvasObject returns the root object of the view.
func (v *View) GetCanvasObject() fyne.CanvasObject {
	return v.panel
}

// onPanelTapped forwards a click on the panel. Clicks outside an active
// trial are dropped here so the command loop never sees them.
func (v *View) onPanelTapped() {
	switch v.app.Snapshot().Phase {
	case reaction.PhaseWaiting, reaction.PhaseReady:
		v.send(control.CmdClick)
	}
}

// ToggleHistory shows or hides the attempt list.
func (v *View) ToggleHistory() {
	v.showHistory = !v.showHistory
	v.render(v.app.Snapshot(), v.app.Countdown())
}

// HistoryVisible reports whether the attempt list is shown.
func (v *View) HistoryVisible() bool {
	return v.showHistory
}

// send enqueues a command and renders the reply if it arrives in time.
func (v *View) send(t control.CommandType) {
	reply := make(chan reaction.Snapshot, 1)
	v.app.EnqueueCommand(control.Command{Type: t, Reply: reply})
	select {
	case s := <-reply:
		v.render(s, v.app.Countdown())
	case <-time.After(replyTimeout):
	}
}

// UpdateDisplay renders a snapshot. Safe to call from any goroutine.
func (v *View) UpdateDisplay(s reaction.Snapshot, countdown int) {
	fyne.Do(func() {
		v.render(s, countdown)
	})
}

func (v *View) render(s reaction.Snapshot, countdown int) {
	v.background.FillColor = PhaseColor(s.Phase)

	setVisible(v.startButton, s.Phase == reaction.PhaseIdle)
	setVisible(v.waitingBox, s.Phase == reaction.PhaseWaiting)
	setVisible(v.readyText, s.Phase == reaction.PhaseReady)
	setVisible(v.resultBox, s.Phase == reaction.PhaseClicked)

	v.countdownText.Text = CountdownLine(countdown)

	if s.Phase == reaction.PhaseClicked {
		headline, feedback, c := ResultText(s.Result)
		v.resultText.Text = headline
		v.resultText.Color = colorText
		if !s.Result.Valid() {
			v.resultText.Color = c
			v.resultText.TextSize = FontSizeStatus
		} else {
			v.resultText.TextSize = FontSizeResult
		}
		v.feedbackText.Text = feedback
		v.feedbackText.Color = c
	}

	v.bestText.Text = BestLine(s)
	setVisible(v.bestText, s.HasBest)

	if v.showHistory {
		v.historyButton.SetText(i18n.T("hide_attempts"))
		v.historyList.RemoveAll()
		for _, line := range AttemptLines(s.Attempts) {
			v.historyList.Add(widget.NewLabel(line))
		}
		v.averageText.Text = AverageLine(s.Average, s.HasAverage)
		v.historyBox.Show()
	} else {
		v.historyButton.SetText(i18n.T("show_attempts"))
		v.historyBox.Hide()
	}

	v.background.Refresh()
	v.countdownText.Refresh()
	v.resultText.Refresh()
	v.feedbackText.Refresh()
	v.bestText.Refresh()
	v.averageText.Refresh()
}

func spacer() fyne.CanvasObject {
	r := canvas.NewRectangle(color.Transparent)
	r.SetMinSize(fyne.NewSize(CardPadding, CardPadding))
	return r
}

func setVisible(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

// CreateMainWindow builds the window around a new View.
func CreateMainWindow(a App, fyneApp fyne.App, size fyne.Size) (fyne.Window, *View) {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = i18n.T("title")
	}
	w := fyneApp.NewWindow(title)

	v := NewView(a)
	w.Canvas().SetOnTypedRune(a.HandleKeyRune)

	w.SetContent(v.GetCanvasObject())
	w.Resize(size)
	return w, v
}

// TappableContainer wraps content and reports primary and secondary taps.
type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.Content)
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
