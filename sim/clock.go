package sim

import "time"

// DefaultStep is one 60 Hz simulation step.
const DefaultStep = time.Second / 60

// Clock is a fixed-timestep accumulator. Wall-clock deltas are added to a
// running remainder which is drained one whole step at a time.
type Clock struct {
	step      time.Duration
	remainder time.Duration
}

// NewClock creates a clock with the given step. A non-positive step uses
// DefaultStep.
func NewClock(step time.Duration) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	return &Clock{step: step}
}

// Step returns the fixed step size.
func (c *Clock) Step() time.Duration {
	return c.step
}

// Remainder returns the time accumulated towards the next step.
func (c *Clock) Remainder() time.Duration {
	return c.remainder
}

// Advance adds delta to the remainder and returns how many whole steps it
// now covers. Those steps are consumed. Negative deltas count as zero.
func (c *Clock) Advance(delta time.Duration) int {
	if delta > 0 {
		c.remainder += delta
	}

	steps := 0
	for c.remainder >= c.step {
		c.remainder -= c.step
		steps++
	}
	return steps
}

// Reset drops any accumulated remainder.
func (c *Clock) Reset() {
	c.remainder = 0
}
