package sim

import (
	"context"
	"slices"
	"time"
)

// TimerID identifies a pending one-shot timer. The zero value is never
// handed out.
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func(ctx context.Context)
}

// timerQueue holds one-shot callbacks keyed on frame time. It never spawns
// goroutines; callbacks run on the caller of fire.
type timerQueue struct {
	pending []timer
	nextID  TimerID
}

func (q *timerQueue) add(due time.Duration, fn func(ctx context.Context)) TimerID {
	q.nextID++
	q.pending = append(q.pending, timer{id: q.nextID, due: due, fn: fn})
	return q.nextID
}

func (q *timerQueue) cancel(id TimerID) bool {
	for i, t := range q.pending {
		if t.id == id {
			q.pending = slices.Delete(q.pending, i, i+1)
			return true
		}
	}
	return false
}

// fire runs every timer due at or before now, earliest first. Timers added
// by a callback are not considered until the next call.
func (q *timerQueue) fire(ctx context.Context, now time.Duration) int {
	var due []timer
	q.pending = slices.DeleteFunc(q.pending, func(t timer) bool {
		if t.due <= now {
			due = append(due, t)
			return true
		}
		return false
	})

	slices.SortFunc(due, func(a, b timer) int {
		if a.due != b.due {
			if a.due < b.due {
				return -1
			}
			return 1
		}
		if a.id < b.id {
			return -1
		}
		return 1
	})

	for _, t := range due {
		t.fn(ctx)
	}
	return len(due)
}
