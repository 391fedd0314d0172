package reaction

import (
	"fmt"
	"math"
)

// History keeps the rolling attempt log and the session best time.
// It is not safe for concurrent use; the Controller guards its own copy.
type History struct {
	attempts []Outcome
	best     Outcome
	hasBest  bool
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{attempts: make([]Outcome, 0, HistorySize)}
}

// Record prepends an outcome and drops everything past HistorySize.
// Valid outcomes lower the best time when they beat it.
func (h *History) Record(o Outcome) {
	h.attempts = append([]Outcome{o}, h.attempts...)
	if len(h.attempts) > HistorySize {
		h.attempts = h.attempts[:HistorySize]
	}

	if o.Valid() && (!h.hasBest || o < h.best) {
		h.best = o
		h.hasBest = true
	}
}

// Attempts returns a copy of the log, newest first.
func (h *History) Attempts() []Outcome {
	out := make([]Outcome, len(h.attempts))
	copy(out, h.attempts)
	return out
}

// Best returns the session best time, if any valid attempt was recorded.
func (h *History) Best() (Outcome, bool) {
	return h.best, h.hasBest
}

// Average returns the mean of the valid attempts still in the log, rounded
// to two decimals. ok is false when the log holds no valid attempt.
func (h *History) Average() (avg float64, ok bool) {
	var sum int64
	var count int
	for _, o := range h.attempts {
		if !o.Valid() {
			continue
		}
		sum += o.Millis()
		count++
	}
	if count == 0 {
		return 0, false
	}
	return math.Round(float64(sum)/float64(count)*100) / 100, true
}

// FormatAverage renders an Average result as "210.00", or "N/A".
func FormatAverage(avg float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", avg)
}
