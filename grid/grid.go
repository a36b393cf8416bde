// Package grid holds the set of occupied cells of a row-break board and the
// row spawner that feeds new rows into it.
//
// Columns run left to right in [0, Columns()). Rows start at 0 for the newest
// row at the top of the board and grow toward the player's catch line.
package grid

import (
	"errors"
	"fmt"
	"iter"

	"github.com/kamstrup/intmap"
)

var (
	// ErrOutOfRange is returned for a column outside the board or a negative row.
	ErrOutOfRange = errors.New("grid: cell out of range")
	// ErrOccupied is returned when an operation would put two blocks on one cell.
	ErrOccupied = errors.New("grid: cell already occupied")
)

// Block is a single occupied cell. Blocks carry no identity; two blocks
// are the same block when column and row match.
type Block struct {
	Column int
	Row    int
}

func (b Block) key() uint64 {
	return uint64(uint32(b.Column))<<32 | uint64(uint32(b.Row))
}

// Grid is an unordered set of blocks on a board Columns() wide.
// It is not safe for concurrent use.
type Grid struct {
	columns int
	cells   blockStorage
	index   *intmap.Map[uint64, int]
}

// New creates an empty grid with the given number of columns.
func New(columns int) *Grid {
	g := &Grid{
		columns: columns,
		index:   intmap.New[uint64, int](64),
	}
	g.cells.Reset()
	return g
}

// Columns returns the board width in blocks.
func (g *Grid) Columns() int {
	return g.columns
}

// Len returns the number of blocks on the board.
func (g *Grid) Len() int {
	return g.cells.Len()
}

// Add puts b on the board.
func (g *Grid) Add(b Block) error {
	if b.Column < 0 || b.Column >= g.columns || b.Row < 0 {
		return fmt.Errorf("%w: column %d row %d", ErrOutOfRange, b.Column, b.Row)
	}
	if _, ok := g.index.Get(b.key()); ok {
		return fmt.Errorf("%w: column %d row %d", ErrOccupied, b.Column, b.Row)
	}
	slot := g.cells.Append(b)
	g.index.Put(b.key(), slot)
	return nil
}

// Place stacks a block on top of column, one row past the column's
// highest row, and returns the placed block.
func (g *Grid) Place(column int) (Block, error) {
	b := Block{Column: column, Row: g.MaxRowInColumn(column) + 1}
	if err := g.Add(b); err != nil {
		return Block{}, err
	}
	return b, nil
}

// IsOccupied reports whether a block sits at column, row.
func (g *Grid) IsOccupied(column, row int) bool {
	_, ok := g.index.Get(Block{Column: column, Row: row}.key())
	return ok
}

// MaxRowInColumn returns the highest row index occupied in column, or -1
// if the column is empty.
func (g *Grid) MaxRowInColumn(column int) int {
	maxRow := -1
	for b := range g.Blocks() {
		if b.Column == column && b.Row > maxRow {
			maxRow = b.Row
		}
	}
	return maxRow
}

// MaxRow returns the highest row index on the board, or -1 if empty.
func (g *Grid) MaxRow() int {
	maxRow := -1
	for b := range g.Blocks() {
		if b.Row > maxRow {
			maxRow = b.Row
		}
	}
	return maxRow
}

// CountPerRow returns the number of blocks in every non-empty row.
func (g *Grid) CountPerRow() map[int]int {
	counts := make(map[int]int)
	for b := range g.Blocks() {
		counts[b.Row]++
	}
	return counts
}

// RemoveRow deletes every block in row and returns how many were removed.
func (g *Grid) RemoveRow(row int) int {
	removed := 0
	for slot := range g.cells.Iter() {
		b := g.cells.Get(slot)
		if b.Row != row {
			continue
		}
		g.index.Del(b.key())
		g.cells.Delete(slot)
		removed++
	}

	if g.cells.Fragmented() {
		for oldSlot, newSlot := range g.cells.Compact() {
			if oldSlot != newSlot {
				g.index.Put(g.cells.Get(newSlot).key(), newSlot)
			}
		}
	}
	return removed
}

// ShiftRowsUp moves every block with row >= fromRow one row toward the top,
// closing the gap left by a removed row. Row 0 never moves, so fromRow is
// raised to 1 when smaller. The grid is left unchanged and ErrOccupied is
// returned if a shifted block would land on an occupied cell.
func (g *Grid) ShiftRowsUp(fromRow int) error {
	fromRow = max(fromRow, 1)

	for b := range g.Blocks() {
		if b.Row == fromRow && g.IsOccupied(b.Column, fromRow-1) {
			return fmt.Errorf("%w: column %d row %d", ErrOccupied, b.Column, fromRow-1)
		}
	}

	for slot := range g.cells.Iter() {
		b := g.cells.Get(slot)
		if b.Row >= fromRow {
			b.Row--
		}
	}
	g.reindex()
	return nil
}

// AdvanceAll moves every block by rows toward the catch line.
func (g *Grid) AdvanceAll(by int) error {
	if by < 0 {
		return fmt.Errorf("%w: advance by %d", ErrOutOfRange, by)
	}
	if by == 0 {
		return nil
	}

	for slot := range g.cells.Iter() {
		g.cells.Get(slot).Row += by
	}
	g.reindex()
	return nil
}

// Clear removes every block.
func (g *Grid) Clear() {
	g.cells.Reset()
	g.index.Clear()
}

// Blocks yields every block on the board. The order carries no meaning.
// The grid must not be modified during iteration.
func (g *Grid) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for slot := range g.cells.Iter() {
			if !yield(*g.cells.Get(slot)) {
				return
			}
		}
	}
}

// Snapshot returns a copy of every block on the board.
func (g *Grid) Snapshot() []Block {
	out := make([]Block, 0, g.cells.Len())
	for b := range g.Blocks() {
		out = append(out, b)
	}
	return out
}

func (g *Grid) reindex() {
	g.index.Clear()
	for slot := range g.cells.Iter() {
		g.index.Put(g.cells.Get(slot).key(), slot)
	}
}
