package core

import "time"

// FixedStep helps advance a simulation at a steady generations-per-second
// rate, independent of how often the caller polls it.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFrameDelayStep returns a controller that fires once per animation frame
// delay, expressed in hundredths of a second. Delays below 1 are treated as 1.
func NewFrameDelayStep(delayCS int) *FixedStep {
	if delayCS <= 0 {
		delayCS = 1
	}
	step := time.Duration(delayCS) * 10 * time.Millisecond
	return &FixedStep{step: step, accumulator: step, now: time.Now}
}

// Interval reports the current step length.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
