package core

import "time"

// FixedStep paces simulation updates at a steady ticks-per-second rate for
// shells that own their own loop.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxBacklog  int

	now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{maxBacklog: 4, now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Due reports how many ticks should run now. The backlog is capped so a stall
// does not turn into a burst of catch-up ticks.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
	}
	if n > f.maxBacklog {
		n = f.maxBacklog
		f.accumulator = 0
	}
	return n
}
