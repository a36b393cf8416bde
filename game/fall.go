package game

import (
	"github.com/plus3/rowbreak/sim"
	"go.uber.org/zap"
)

// fallSystem moves the board toward the catch line. Every time the offset
// passes a block width all rows advance by one and a new top row spawns,
// unless a column has overflowed.
type fallSystem struct {
	game *Game
}

func (s *fallSystem) Execute(frame *sim.UpdateFrame) {
	g := s.game
	if g.phase != Playing {
		return
	}

	g.offset += frame.DeltaTime.Seconds() * g.fallSpeed
	for g.offset > g.blockWidth {
		g.offset -= g.blockWidth

		if err := g.grid.AdvanceAll(1); err != nil {
			g.log.Error("advance rows", zap.Error(err))
			return
		}
		if g.grid.MaxRow() > g.heightCount {
			g.end(frame)
			return
		}
		if _, err := g.grid.SpawnRow(g.opts.Rand, g.opts.FillCount); err != nil {
			g.log.Error("spawn row", zap.Error(err))
			return
		}
	}
}
