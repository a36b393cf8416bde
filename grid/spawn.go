package grid

import (
	"errors"
	"fmt"
)

// ErrFillExceedsWidth is returned when a spawned row would need more
// blocks than the board has columns.
var ErrFillExceedsWidth = errors.New("grid: fill count exceeds block count")

// Rand is the random source used for shuffling. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// SpawnRow picks fillCount distinct columns out of blockCount uniformly at
// random and returns them as blocks on row 0.
//
// The column sequence is Fisher-Yates shuffled and the last fillCount
// entries are taken, last first.
func SpawnRow(rng Rand, blockCount, fillCount int) ([]Block, error) {
	if blockCount <= 0 || fillCount < 0 {
		return nil, fmt.Errorf("%w: %d of %d columns", ErrOutOfRange, fillCount, blockCount)
	}
	if fillCount > blockCount {
		return nil, fmt.Errorf("%w: %d of %d columns", ErrFillExceedsWidth, fillCount, blockCount)
	}

	columns := make([]int, blockCount)
	for i := range columns {
		columns[i] = i
	}
	for i := len(columns) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		columns[i], columns[j] = columns[j], columns[i]
	}

	row := make([]Block, 0, fillCount)
	for i := 0; i < fillCount; i++ {
		row = append(row, Block{Column: columns[len(columns)-1-i], Row: 0})
	}
	return row, nil
}

// SpawnRow adds a freshly spawned row 0 to the grid and returns it.
// Row 0 must be empty.
func (g *Grid) SpawnRow(rng Rand, fillCount int) ([]Block, error) {
	row, err := SpawnRow(rng, g.columns, fillCount)
	if err != nil {
		return nil, err
	}
	for _, b := range row {
		if g.IsOccupied(b.Column, b.Row) {
			return nil, fmt.Errorf("%w: column %d row %d", ErrOccupied, b.Column, b.Row)
		}
	}
	for _, b := range row {
		if err := g.Add(b); err != nil {
			return nil, err
		}
	}
	return row, nil
}
