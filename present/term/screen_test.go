package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/rowbreak/grid"
	"github.com/stretchr/testify/assert"
)

type cell struct {
	r     rune
	style tcell.Style
}

type fakeCanvas struct {
	w, h  int
	cells map[[2]int]cell
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{w: w, h: h, cells: make(map[[2]int]cell)}
}

func (c *fakeCanvas) SetContent(x, y int, r rune, _ []rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[[2]int{x, y}] = cell{r, style}
}

func (c *fakeCanvas) Size() (int, int) { return c.w, c.h }

func (c *fakeCanvas) line(y int) string {
	var b strings.Builder
	for x := range c.w {
		r := c.cells[[2]int{x, y}].r
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestLayoutFitsBoard(t *testing.T) {
	s := NewScreen(newFakeCanvas(80, 41), 5, 9, nil)

	l := s.Layout()
	assert.Equal(t, 8, l.CellW)
	assert.Equal(t, 4, l.CellH)
	assert.Equal(t, 40, l.Width)
	assert.Equal(t, 40, l.Height)
	assert.Equal(t, 20, l.Left)
	assert.Equal(t, 1, l.Top)
}

func TestPixelX(t *testing.T) {
	s := NewScreen(newFakeCanvas(80, 41), 5, 9, nil)

	assert.InDelta(t, 5.0, s.PixelX(20, 400), 0.01)
	assert.InDelta(t, 395.0, s.PixelX(59, 400), 0.01)
	assert.Less(t, s.PixelX(0, 400), 0.0)
}

func TestDrawBlocksAndHUD(t *testing.T) {
	canvas := newFakeCanvas(80, 41)
	s := NewScreen(canvas, 5, 9, nil)

	s.RenderGrid([]grid.Block{{Column: 1, Row: 2}}, 0, 80)
	s.RenderScore(42)
	s.RenderHighScore(100)
	s.Draw()

	assert.Contains(t, canvas.line(0), "Score: 42")
	assert.Contains(t, canvas.line(0), "High score: 100")

	// Row 2 is drawn one block down from the top of the board.
	l := s.Layout()
	x, y := l.Left+l.CellW, l.Top+l.CellH
	assert.Equal(t, blockStyle, canvas.cells[[2]int{x, y}].style)
	assert.Equal(t, backgroundStyle, canvas.cells[[2]int{x, y - 1}].style)
	assert.Equal(t, backgroundStyle, canvas.cells[[2]int{x - 1, y}].style)
}

func TestDrawSplash(t *testing.T) {
	canvas := newFakeCanvas(80, 41)
	s := NewScreen(canvas, 5, 9, nil)

	s.RenderGameOverSplash(42, true)
	s.Draw()

	var all strings.Builder
	for y := range canvas.h {
		all.WriteString(canvas.line(y))
	}
	assert.Contains(t, all.String(), "Game Over")
	assert.Contains(t, all.String(), "Score: 42")
	assert.Contains(t, all.String(), "Tap to restart")

	s.RenderGrid(nil, 0, 80)
	s.Draw()
	all.Reset()
	for y := range canvas.h {
		all.WriteString(canvas.line(y))
	}
	assert.NotContains(t, all.String(), "Game Over")
}

func TestClearTone(t *testing.T) {
	assert.Equal(t, 660.0, ClearTone(1))
	assert.Equal(t, 880.0, ClearTone(2))
	assert.Equal(t, ClearTone(4), ClearTone(9))
	assert.Equal(t, 660.0, ClearTone(0))
}

func TestSilentSoundIgnoresClears(t *testing.T) {
	s := NewScreen(newFakeCanvas(10, 10), 5, 9, &Sound{})
	s.RowsCleared(2)
}
