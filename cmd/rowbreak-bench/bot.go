package main

import (
	"github.com/plus3/rowbreak/game"
	"github.com/plus3/rowbreak/grid"
	"github.com/plus3/rowbreak/sim"
)

// botSystem plays the game: every few steps it throws a block onto the
// shortest column. Throws are deferred to the end of the step so they do
// not interleave with the fall system.
type botSystem struct {
	game    *game.Game
	columns int
	every   uint64
	throws  int
}

func (b *botSystem) Execute(frame *sim.UpdateFrame) {
	if b.every == 0 || frame.Tick%b.every != 0 || b.game.Phase() != game.Playing {
		return
	}

	column := shortestColumn(b.game.Snapshot().Blocks, b.columns)
	x := (float64(column) + 0.5) * b.game.BlockWidth()
	frame.Commands.Defer(func() {
		if b.game.Phase() != game.Playing {
			return
		}
		if err := b.game.HandleInput(frame.Context, x); err == nil {
			b.throws++
		}
	})
}

// shortestColumn returns the column with the fewest blocks stacked in it,
// leftmost on ties.
func shortestColumn(blocks []grid.Block, columns int) int {
	height := make([]int, columns)
	for i := range height {
		height[i] = -1
	}
	for _, b := range blocks {
		if b.Column >= 0 && b.Column < columns && b.Row > height[b.Column] {
			height[b.Column] = b.Row
		}
	}

	best := 0
	for c := 1; c < columns; c++ {
		if height[c] < height[best] {
			best = c
		}
	}
	return best
}
