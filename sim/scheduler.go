package sim

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	PendingTimers   int
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs registered systems once per fixed step and owns the
// one-shot timers used for delayed transitions. Everything runs on the
// goroutine that calls Once; there is no locking.
type Scheduler struct {
	clock       *Clock
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
	timers      timerQueue
	tick        uint64
	elapsed     time.Duration
}

// NewScheduler creates a scheduler stepping at the given rate.
func NewScheduler(step time.Duration) *Scheduler {
	return &Scheduler{
		clock:    NewClock(step),
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// Register appends a system. Systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	name := "SystemFunc"
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if systemType.Name() != "" {
		name = systemType.Name()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Step returns the fixed step size.
func (s *Scheduler) Step() time.Duration {
	return s.clock.Step()
}

// Elapsed returns the total frame time fed into Once.
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// Once consumes one rendered frame of wall-clock time. Every whole step
// covered by delta runs all systems once, in order; afterwards any timers
// that came due are fired. ctx is handed to systems through the frame and
// to timer callbacks. It returns the number of steps run.
func (s *Scheduler) Once(ctx context.Context, delta time.Duration) int {
	if delta > 0 {
		s.elapsed += delta
	}

	steps := s.clock.Advance(delta)
	for range steps {
		s.runStep(ctx)
	}

	s.timers.fire(ctx, s.elapsed)
	return steps
}

func (s *Scheduler) runStep(ctx context.Context) {
	s.tick++
	frame := newUpdateFrame(ctx, s.tick, s.clock.Step(), s)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush()
}

// After schedules fn to run once delay of frame time has passed. The
// callback runs from inside Once and receives that call's context.
func (s *Scheduler) After(delay time.Duration, fn func(ctx context.Context)) TimerID {
	return s.timers.add(s.elapsed+delay, fn)
}

// Cancel removes a pending timer. It reports whether the timer was still
// pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	return s.timers.cancel(id)
}

// ResetClock drops any partial step accumulated so far.
func (s *Scheduler) ResetClock() {
	s.clock.Reset()
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:   len(s.systems),
		Ticks:         s.tick,
		PendingTimers: len(s.timers.pending),
		Systems:       make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
