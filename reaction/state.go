package reaction

import (
	"fmt"
	"time"
)

// Phase defines the possible states of a trial.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWaiting
	PhaseReady
	PhaseClicked
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseReady:
		return "ready"
	case PhaseClicked:
		return "clicked"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Stimulus delay bounds. The delay is drawn uniformly from [MinDelay, MaxDelay).
const (
	MinDelay = 2000 * time.Millisecond
	MaxDelay = 5000 * time.Millisecond
)

// HistorySize is the number of attempts kept in the rolling log.
const HistorySize = 5

// Outcome is the result of a concluded trial: a reaction time in whole
// milliseconds, or TooEarly.
type Outcome int64

// TooEarly marks a click that landed before the stimulus fired.
const TooEarly Outcome = -1

// Millis wraps a measured duration. Negative input is clamped to zero.
func Millis(ms int64) Outcome {
	if ms < 0 {
		ms = 0
	}
	return Outcome(ms)
}

// Valid reports whether the outcome is a measured reaction time.
func (o Outcome) Valid() bool {
	return o >= 0
}

// Millis returns the reaction time in milliseconds, or -1 for TooEarly.
func (o Outcome) Millis() int64 {
	return int64(o)
}

func (o Outcome) String() string {
	if !o.Valid() {
		return "too early"
	}
	return fmt.Sprintf("%dms", int64(o))
}

// Snapshot is a consistent copy of the controller state for rendering.
// Obtain one through Controller.Snapshot.
type Snapshot struct {
	Phase Phase
	Trial uint64

	// StimulusAt is the scheduled stimulus instant while waiting.
	StimulusAt time.Time
	// FiredAt is when the stimulus fired; zero until ready.
	FiredAt time.Time
	// Result is the last outcome; meaningful only in PhaseClicked.
	Result Outcome

	Attempts []Outcome
	Best     Outcome
	HasBest  bool

	// Average is the mean of the valid attempts in the log, if any.
	Average    float64
	HasAverage bool
}

// Countdown returns the whole seconds left until the stimulus, rounded up.
// It is zero outside PhaseWaiting and never negative.
func (s Snapshot) Countdown(now time.Time) int {
	if s.Phase != PhaseWaiting {
		return 0
	}
	left := s.StimulusAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}
