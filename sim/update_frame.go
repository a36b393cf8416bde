package sim

import (
	"context"
	"time"
)

// UpdateFrame is passed to every system during a single step.
type UpdateFrame struct {
	// Context is the context of the Once call running this step.
	Context context.Context
	// Tick counts steps since the scheduler was created, starting at 1.
	Tick uint64
	// DeltaTime is the fixed step size.
	DeltaTime time.Duration
	// Commands collects work to run once every system has finished the step.
	Commands  *Commands
	Scheduler *Scheduler
}

func newUpdateFrame(ctx context.Context, tick uint64, dt time.Duration, scheduler *Scheduler) *UpdateFrame {
	return &UpdateFrame{
		Context:   ctx,
		Tick:      tick,
		DeltaTime: dt,
		Commands:  scheduler.commands,
		Scheduler: scheduler,
	}
}
