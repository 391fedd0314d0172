package ui

import (
	"image/color"
	"strconv"

	"ReactionTest/i18n"
	"ReactionTest/reaction"
)

var (
	colorIdle    = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	colorWaiting = color.NRGBA{R: 0xfd, G: 0xe0, B: 0x47, A: 0xff}
	colorReady   = color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}
	colorClicked = color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}

	colorPurple = color.NRGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff}
	colorGreen  = color.NRGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff}
	colorBlue   = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	colorYellow = color.NRGBA{R: 0xca, G: 0x8a, B: 0x04, A: 0xff}
	colorRed    = color.NRGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	colorText   = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
)

// PhaseColor is the panel background for a trial phase.
func PhaseColor(p reaction.Phase) color.Color {
	switch p {
	case reaction.PhaseWaiting:
		return colorWaiting
	case reaction.PhaseReady:
		return colorReady
	case reaction.PhaseClicked:
		return colorClicked
	}
	return colorIdle
}

// TierColor is the feedback text color for a tier.
func TierColor(t reaction.Tier) color.Color {
	switch t {
	case reaction.TierLightningFast:
		return colorPurple
	case reaction.TierSuperQuick:
		return colorGreen
	case reaction.TierGreat:
		return colorBlue
	case reaction.TierGood:
		return colorYellow
	}
	return colorRed
}

var tierMessages = map[reaction.Tier]string{
	reaction.TierLightningFast:  "tier_lightning_fast",
	reaction.TierSuperQuick:     "tier_super_quick",
	reaction.TierGreat:          "tier_great",
	reaction.TierGood:           "tier_good",
	reaction.TierKeepPracticing: "tier_keep_practicing",
}

// TierText returns the translated tier label.
func TierText(t reaction.Tier) string {
	if id, ok := tierMessages[t]; ok {
		return i18n.T(id)
	}
	return t.Label()
}

// ResultText returns the headline, feedback line and feedback color for a
// concluded trial. TooEarly has no feedback line.
func ResultText(o reaction.Outcome) (headline, feedback string, c color.Color) {
	if !o.Valid() {
		return i18n.T("too_early"), "", colorRed
	}
	tier := reaction.Classify(o.Millis())
	return formatMillis(o), TierText(tier), TierColor(tier)
}

// AttemptLines renders the attempt log, newest first, numbered from 1.
func AttemptLines(attempts []reaction.Outcome) []string {
	lines := make([]string, 0, len(attempts))
	for i, o := range attempts {
		result := i18n.T("attempt_too_early")
		if o.Valid() {
			result = formatMillis(o)
		}
		lines = append(lines, i18n.Tf("attempt_row", map[string]any{"N": i + 1, "Result": result}))
	}
	return lines
}

// AverageLine renders the average of the retained valid attempts.
func AverageLine(avg float64, ok bool) string {
	return i18n.Tf("average_time", map[string]any{"Avg": reaction.FormatAverage(avg, ok)})
}

// BestLine renders the best time, or "" while unset.
func BestLine(s reaction.Snapshot) string {
	if !s.HasBest {
		return ""
	}
	return i18n.Tf("best_time", map[string]any{"Ms": s.Best.Millis()})
}

// CountdownLine renders the approximate seconds left before the stimulus.
func CountdownLine(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return i18n.Tf("countdown", map[string]any{"Seconds": strconv.Itoa(seconds)})
}

func formatMillis(o reaction.Outcome) string {
	return i18n.Tf("result_ms", map[string]any{"Ms": o.Millis()})
}
