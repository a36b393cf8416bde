package sim_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/rowbreak/sim"
)

type fallSystem struct {
	Offset float64
	Speed  float64
}

func (s *fallSystem) Execute(frame *sim.UpdateFrame) {
	s.Offset += frame.DeltaTime.Seconds() * s.Speed
}

// ExampleScheduler shows frame deltas being turned into fixed steps. A
// 100ms frame at 20ms per step runs the system five times regardless of
// how the frame time was split.
func ExampleScheduler() {
	scheduler := sim.NewScheduler(20 * time.Millisecond)
	fall := &fallSystem{Speed: 100}
	scheduler.Register(fall)

	ctx := context.Background()
	steps := scheduler.Once(ctx, 30*time.Millisecond)
	steps += scheduler.Once(ctx, 70*time.Millisecond)

	fmt.Printf("steps=%d offset=%.1f\n", steps, fall.Offset)
	// Output: steps=5 offset=10.0
}
