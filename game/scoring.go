package game

import (
	"math"

	"github.com/plus3/rowbreak/store"
)

// speedFactors maps difficulty 1..5 to a base fall speed in block widths
// per second.
var speedFactors = [...]float64{1 / 3.0, 1 / 1.5, 1, 2, 4}

// BaseSpeed returns the starting fall speed in pixels per second for a
// difficulty. Difficulties outside [1,5] fall back to the default.
func BaseSpeed(blockWidth float64, difficulty int) float64 {
	if !store.ValidDifficulty(difficulty) {
		difficulty = store.DefaultDifficulty
	}
	return blockWidth * speedFactors[difficulty-1]
}

// SpeedIncrement is added to the fall speed for every cleared row.
func SpeedIncrement(blockWidth float64, difficulty int) float64 {
	return BaseSpeed(blockWidth, difficulty) * 0.04
}

// ClearScore is awarded for every cleared row.
func ClearScore(blockWidth float64, difficulty int) int {
	if !store.ValidDifficulty(difficulty) {
		difficulty = store.DefaultDifficulty
	}
	base := BaseSpeed(blockWidth, difficulty)
	return int(math.Floor(base * 0.4 * math.Sqrt(math.Sqrt(float64(difficulty)))))
}
