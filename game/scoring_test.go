package game_test

import (
	"testing"

	"github.com/plus3/rowbreak/game"
	"github.com/stretchr/testify/assert"
)

func TestScoringTable(t *testing.T) {
	tests := []struct {
		difficulty int
		speed      float64
		score      int
	}{
		{1, 80.0 / 3, 10},
		{2, 80 / 1.5, 25},
		{3, 80, 42},
		{4, 160, 90},
		{5, 320, 191},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.speed, game.BaseSpeed(80, tt.difficulty), 1e-9, "difficulty %d", tt.difficulty)
		assert.InDelta(t, tt.speed*0.04, game.SpeedIncrement(80, tt.difficulty), 1e-9, "difficulty %d", tt.difficulty)
		assert.Equal(t, tt.score, game.ClearScore(80, tt.difficulty), "difficulty %d", tt.difficulty)
	}
}

func TestScoringFallsBackToDefault(t *testing.T) {
	assert.Equal(t, game.BaseSpeed(80, 3), game.BaseSpeed(80, 0))
	assert.Equal(t, game.ClearScore(80, 3), game.ClearScore(80, 9))
}
