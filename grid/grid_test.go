package grid_test

import (
	"testing"

	"github.com/plus3/rowbreak/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceStacksOnColumn(t *testing.T) {
	g := grid.New(5)

	b, err := g.Place(2)
	require.NoError(t, err)
	assert.Equal(t, grid.Block{Column: 2, Row: 0}, b)

	b, err = g.Place(2)
	require.NoError(t, err)
	assert.Equal(t, grid.Block{Column: 2, Row: 1}, b)

	assert.Equal(t, 1, g.MaxRowInColumn(2))
	assert.Equal(t, -1, g.MaxRowInColumn(0))
	assert.True(t, g.IsOccupied(2, 1))
	assert.False(t, g.IsOccupied(2, 2))
	assert.Equal(t, 2, g.Len())
}

func TestAddRejectsInvalidCells(t *testing.T) {
	g := grid.New(5)

	require.NoError(t, g.Add(grid.Block{Column: 4, Row: 3}))

	tests := []struct {
		name  string
		block grid.Block
		err   error
	}{
		{"negative column", grid.Block{Column: -1, Row: 0}, grid.ErrOutOfRange},
		{"column past width", grid.Block{Column: 5, Row: 0}, grid.ErrOutOfRange},
		{"negative row", grid.Block{Column: 0, Row: -1}, grid.ErrOutOfRange},
		{"duplicate", grid.Block{Column: 4, Row: 3}, grid.ErrOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, g.Add(tt.block), tt.err)
		})
	}
	assert.Equal(t, 1, g.Len())

	_, err := g.Place(7)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
}

func TestCountPerRow(t *testing.T) {
	g := grid.New(5)
	for _, b := range []grid.Block{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {3, 4}} {
		require.NoError(t, g.Add(b))
	}

	assert.Equal(t, map[int]int{0: 3, 1: 1, 4: 1}, g.CountPerRow())
	assert.Equal(t, 4, g.MaxRow())
}

func TestRemoveRowAndShift(t *testing.T) {
	g := grid.New(3)
	for _, b := range []grid.Block{{0, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}, {2, 3}} {
		require.NoError(t, g.Add(b))
	}

	assert.Equal(t, 3, g.RemoveRow(1))
	assert.False(t, g.IsOccupied(1, 1))

	require.NoError(t, g.ShiftRowsUp(2))
	assert.ElementsMatch(t, []grid.Block{{0, 0}, {1, 1}, {2, 2}}, g.Snapshot())
	assert.True(t, g.IsOccupied(1, 1))
	assert.False(t, g.IsOccupied(1, 2))
}

func TestShiftRowsUpRefusesCollision(t *testing.T) {
	g := grid.New(3)
	require.NoError(t, g.Add(grid.Block{Column: 0, Row: 1}))
	require.NoError(t, g.Add(grid.Block{Column: 0, Row: 2}))

	assert.ErrorIs(t, g.ShiftRowsUp(2), grid.ErrOccupied)
	assert.ElementsMatch(t, []grid.Block{{0, 1}, {0, 2}}, g.Snapshot())
}

func TestShiftRowsUpNeverMovesRowZero(t *testing.T) {
	g := grid.New(3)
	require.NoError(t, g.Add(grid.Block{Column: 0, Row: 0}))
	require.NoError(t, g.Add(grid.Block{Column: 1, Row: 1}))

	require.NoError(t, g.ShiftRowsUp(0))
	assert.ElementsMatch(t, []grid.Block{{0, 0}, {1, 0}}, g.Snapshot())
}

func TestAdvanceAll(t *testing.T) {
	g := grid.New(5)
	require.NoError(t, g.Add(grid.Block{Column: 0, Row: 0}))
	require.NoError(t, g.Add(grid.Block{Column: 3, Row: 2}))

	require.NoError(t, g.AdvanceAll(1))
	assert.ElementsMatch(t, []grid.Block{{0, 1}, {3, 3}}, g.Snapshot())
	assert.True(t, g.IsOccupied(3, 3))
	assert.False(t, g.IsOccupied(0, 0))

	assert.ErrorIs(t, g.AdvanceAll(-1), grid.ErrOutOfRange)
}

func TestClear(t *testing.T) {
	g := grid.New(5)
	_, err := g.Place(1)
	require.NoError(t, err)

	g.Clear()
	assert.Equal(t, 0, g.Len())
	assert.False(t, g.IsOccupied(1, 0))
	assert.Equal(t, -1, g.MaxRow())
}

func TestRowCountsNeverExceedWidth(t *testing.T) {
	g := grid.New(5)
	for i := 0; i < 200; i++ {
		_, err := g.Place(i % 5)
		require.NoError(t, err)
		if i%7 == 0 {
			g.RemoveRow(i % 11)
		}
	}

	for row, count := range g.CountPerRow() {
		assert.LessOrEqual(t, count, 5, "row %d", row)
	}
}
