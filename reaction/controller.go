// Package reaction contains the domain logic for the reaction test: the
// trial state machine (Controller), the rolling attempt log (History) and
// the feedback tiers.
//
// Maintenance notes:
//   - The stimulus timer fires on its own goroutine, so every field of
//     Controller is guarded by mu. Callbacks registered with SetOnChange run
//     after mu is released and may call back into the controller.
//   - Each trial gets a sequence number. The stimulus callback captures it and
//     abstains unless the controller is still waiting on that same trial, so
//     a timer whose Stop lost the race can never flip a newer trial to ready.
package reaction

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Controller owns the trial state machine and the session history.
type Controller struct {
	clock Clock
	delay func() time.Duration

	mu         sync.Mutex
	phase      Phase
	trial      uint64
	stimulusAt time.Time
	firedAt    time.Time
	result     Outcome
	pending    Timer
	history    *History

	onChange func(Snapshot)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithDelayFunc replaces the random stimulus delay source. Tests use it to
// pin the delay; production code keeps the uniform [MinDelay, MaxDelay) draw.
func WithDelayFunc(fn func() time.Duration) Option {
	return func(c *Controller) {
		if fn != nil {
			c.delay = fn
		}
	}
}

// NewController creates an idle controller using the given clock.
// A nil clock means SystemClock.
func NewController(clock Clock, opts ...Option) *Controller {
	if clock == nil {
		clock = SystemClock
	}
	c := &Controller{
		clock:   clock,
		delay:   randomDelay,
		phase:   PhaseIdle,
		history: NewHistory(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// randomDelay draws a whole-millisecond delay uniformly from [MinDelay, MaxDelay).
func randomDelay() time.Duration {
	span := int64((MaxDelay - MinDelay) / time.Millisecond)
	return MinDelay + time.Duration(rand.Int64N(span))*time.Millisecond
}

// SetOnChange registers a callback invoked after every applied transition,
// including the asynchronous switch to PhaseReady.
func (c *Controller) SetOnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Start arms a new trial. Any pending stimulus from an earlier trial is
// cancelled first. It returns without waiting for the stimulus.
func (c *Controller) Start() Snapshot {
	c.mu.Lock()
	c.cancelPending()

	c.trial++
	trial := c.trial
	d := c.delay()
	c.phase = PhaseWaiting
	c.stimulusAt = c.clock.Now().Add(d)
	c.firedAt = time.Time{}
	c.result = 0
	c.pending = c.clock.AfterFunc(d, func() { c.onStimulusFire(trial) })

	return c.commit()
}

// onStimulusFire is the scheduled callback for the given trial.
func (c *Controller) onStimulusFire(trial uint64) {
	c.mu.Lock()
	if c.phase != PhaseWaiting || c.trial != trial {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.phase = PhaseReady
	c.firedAt = c.clock.Now()

	c.commit()
}

// Click handles a user click. In PhaseReady it measures the reaction time,
// in PhaseWaiting it records TooEarly and cancels the stimulus. In any
// other phase it does nothing and applied is false.
func (c *Controller) Click() (out Outcome, applied bool) {
	c.mu.Lock()
	switch c.phase {
	case PhaseReady:
		out = Millis(c.clock.Now().Sub(c.firedAt).Milliseconds())
	case PhaseWaiting:
		c.cancelPending()
		out = TooEarly
	default:
		c.mu.Unlock()
		return 0, false
	}

	c.phase = PhaseClicked
	c.result = out
	c.history.Record(out)

	c.commit()
	return out, true
}

// Reset abandons the current trial and returns to PhaseIdle. The attempt
// log and best time are kept for the rest of the session.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	c.cancelPending()
	c.phase = PhaseIdle
	c.stimulusAt = time.Time{}
	c.firedAt = time.Time{}
	c.result = 0

	return c.commit()
}

// Snapshot returns a consistent copy of the controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Average returns the mean of the valid attempts in the log.
func (c *Controller) Average() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Average()
}

// Countdown returns the whole seconds left before the stimulus fires.
func (c *Controller) Countdown() int {
	c.mu.Lock()
	s := Snapshot{Phase: c.phase, StimulusAt: c.stimulusAt}
	c.mu.Unlock()
	return s.Countdown(c.clock.Now())
}

// cancelPending stops the outstanding stimulus timer. Caller holds mu.
func (c *Controller) cancelPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	best, ok := c.history.Best()
	avg, hasAvg := c.history.Average()
	return Snapshot{
		Phase:      c.phase,
		Trial:      c.trial,
		StimulusAt: c.stimulusAt,
		FiredAt:    c.firedAt,
		Result:     c.result,
		Attempts:   c.history.Attempts(),
		Best:       best,
		HasBest:    ok,
		Average:    avg,
		HasAverage: hasAvg,
	}
}

// commit takes a snapshot, releases mu and notifies the change callback.
// Caller holds mu.
func (c *Controller) commit() Snapshot {
	snap := c.snapshotLocked()
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap
}
