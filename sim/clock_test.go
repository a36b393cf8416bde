package sim_test

import (
	"testing"
	"time"

	"github.com/plus3/rowbreak/sim"
	"github.com/stretchr/testify/assert"
)

func TestClockAdvance(t *testing.T) {
	c := sim.NewClock(10 * time.Millisecond)

	assert.Equal(t, 0, c.Advance(9*time.Millisecond))
	assert.Equal(t, 9*time.Millisecond, c.Remainder())

	assert.Equal(t, 1, c.Advance(1*time.Millisecond))
	assert.Equal(t, time.Duration(0), c.Remainder())

	assert.Equal(t, 3, c.Advance(35*time.Millisecond))
	assert.Equal(t, 5*time.Millisecond, c.Remainder())

	assert.Equal(t, 0, c.Advance(-time.Second))
	assert.Equal(t, 5*time.Millisecond, c.Remainder())

	c.Reset()
	assert.Equal(t, time.Duration(0), c.Remainder())
}

func TestClockJitterProducesSameStepCount(t *testing.T) {
	steady := sim.NewClock(sim.DefaultStep)
	jittery := sim.NewClock(sim.DefaultStep)

	steadySteps, jitterSteps := 0, 0
	deltas := []time.Duration{3, 40, 1, 17, 25, 14}
	var total time.Duration
	for _, d := range deltas {
		jitterSteps += jittery.Advance(d * time.Millisecond)
		total += d * time.Millisecond
	}
	steadySteps = steady.Advance(total)

	assert.Equal(t, steadySteps, jitterSteps)
	assert.Equal(t, 6, jitterSteps)
	assert.Equal(t, steady.Remainder(), jittery.Remainder())
}

func TestClockDefaultStep(t *testing.T) {
	c := sim.NewClock(0)
	assert.Equal(t, sim.DefaultStep, c.Step())
	assert.Equal(t, 60, c.Advance(time.Second))
}
