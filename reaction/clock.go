package reaction

import "time"

// Timer is a pending single-shot callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock provides the time source and scheduler used by the Controller.
// Tests swap in reactiontest.Clock to drive trials deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the Clock backed by the runtime timer.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
