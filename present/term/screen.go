// Package term draws the game in a terminal with tcell and plays a short
// tone on row clears.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/rowbreak/game"
	"github.com/plus3/rowbreak/grid"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.NewHexColor(0x96A537))
	blockStyle      = tcell.StyleDefault.Background(tcell.NewHexColor(0x475300))
	textStyle       = tcell.StyleDefault.
			Foreground(tcell.NewHexColor(0xECF8A5)).
			Background(tcell.NewHexColor(0x475300))
)

type splash struct {
	score       int
	showRestart bool
}

// Screen implements game.Presenter on a terminal. Blocks are scaled to
// whole character cells; each block is twice as wide as it is tall.
type Screen struct {
	canvas      Canvas
	columns     int
	heightCount int
	sound       *Sound

	blocks     []grid.Block
	offset     float64
	blockWidth float64
	score      int
	highScore  int
	splash     *splash
}

var (
	_ game.Presenter     = (*Screen)(nil)
	_ game.ClearObserver = (*Screen)(nil)
)

// NewScreen creates a renderer for a board columns wide showing
// heightCount+1 rows. sound may be nil.
func NewScreen(canvas Canvas, columns, heightCount int, sound *Sound) *Screen {
	return &Screen{
		canvas:      canvas,
		columns:     columns,
		heightCount: heightCount,
		sound:       sound,
	}
}

func (s *Screen) RenderGrid(blocks []grid.Block, offset, blockWidth float64) {
	s.blocks = blocks
	s.offset = offset
	s.blockWidth = blockWidth
	s.splash = nil
}

func (s *Screen) RenderScore(score int)     { s.score = score }
func (s *Screen) RenderHighScore(score int) { s.highScore = score }

func (s *Screen) RenderGameOverSplash(score int, showRestart bool) {
	s.splash = &splash{score: score, showRestart: showRestart}
}

func (s *Screen) RowsCleared(rows int) {
	if s.sound != nil {
		s.sound.Clear(rows)
	}
}

// Layout is the placement of the board on the terminal.
type Layout struct {
	Left, Top     int
	CellW, CellH  int
	Width, Height int
}

// Layout fits the board under a one-line HUD.
func (s *Screen) Layout() Layout {
	w, h := s.canvas.Size()
	rows := s.heightCount + 1
	cellH := max((h-1)/rows, 1)
	cellW := max(min(w/s.columns, cellH*2), 1)
	cellH = max(cellW/2, 1)

	l := Layout{CellW: cellW, CellH: cellH, Width: cellW * s.columns, Height: cellH * rows}
	l.Left = max((w-l.Width)/2, 0)
	l.Top = 1
	return l
}

// PixelX maps a terminal column to the horizontal game coordinate it
// covers, so mouse clicks can be fed to Game.HandleInput.
func (s *Screen) PixelX(termX int, gameWidth float64) float64 {
	l := s.Layout()
	rel := float64(termX-l.Left) + 0.5
	return rel / float64(l.Width) * gameWidth
}

// Draw paints the current frame. The caller shows the screen.
func (s *Screen) Draw() {
	w, h := s.canvas.Size()
	fill(s.canvas, 0, 0, w, h, backgroundStyle)

	l := s.Layout()
	if s.blockWidth > 0 {
		for _, b := range s.blocks {
			// Rows sit one block above their index; see canvas.BlockOrigin.
			top := (float64(b.Row-1)*s.blockWidth + s.offset) / s.blockWidth * float64(l.CellH)
			y := l.Top + int(math.Round(top))
			x := l.Left + b.Column*l.CellW
			fill(s.canvas, x, max(y, l.Top), l.CellW, min(l.CellH, y+l.CellH-l.Top), blockStyle)
		}
	}

	hud := fmt.Sprintf(" Score: %d  High score: %d ", s.score, s.highScore)
	drawText(s.canvas, 0, 0, hud, textStyle)

	if s.splash != nil {
		lines := []string{"Game Over", fmt.Sprintf("Score: %d", s.splash.score)}
		if s.splash.showRestart {
			lines = append(lines, "Tap to restart")
		}
		cy := h/2 - len(lines)
		for i, line := range lines {
			padded := " " + line + " "
			drawText(s.canvas, (w-len(padded))/2, cy+i*2, padded, textStyle)
		}
	}
}

func fill(c Canvas, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.SetContent(col, row, ' ', nil, style)
		}
	}
}

func drawText(c Canvas, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		c.SetContent(x+i, y, r, nil, style)
	}
}
