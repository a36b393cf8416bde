// Package canvas draws the game and the high-score page with Ebiten.
package canvas

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/rowbreak/config"
	"github.com/plus3/rowbreak/grid"
	"golang.org/x/image/font"
)

type splash struct {
	score       int
	showRestart bool
}

// View keeps the last frame the game rendered and paints it on Draw.
// RenderGrid replaces the board and hides the splash; the splash stays up
// until the next RenderGrid.
type View struct {
	width, height int
	fonts         *Fonts

	blocks     []grid.Block
	offset     float64
	blockWidth float64
	score      int
	highScore  int
	splash     *splash
	flash      int
}

// NewView creates a view for a width x height screen.
func NewView(width, height int, fonts *Fonts) *View {
	return &View{width: width, height: height, fonts: fonts}
}

func (v *View) RenderGrid(blocks []grid.Block, offset, blockWidth float64) {
	v.blocks = blocks
	v.offset = offset
	v.blockWidth = blockWidth
	v.splash = nil
}

func (v *View) RenderScore(score int)     { v.score = score }
func (v *View) RenderHighScore(score int) { v.highScore = score }

func (v *View) RenderGameOverSplash(score int, showRestart bool) {
	v.splash = &splash{score: score, showRestart: showRestart}
}

// RowsCleared briefly flashes the background.
func (v *View) RowsCleared(rows int) {
	v.flash = 6 * rows
}

// Draw paints the board, the HUD and, when shown, the game over splash.
func (v *View) Draw(screen *ebiten.Image) {
	bg := config.BackgroundColor
	if v.flash > 0 {
		v.flash--
		bg = lighten(bg, 0.15)
	}
	screen.Fill(bg)

	bw := float32(v.blockWidth)
	for _, b := range v.blocks {
		x, y := BlockOrigin(b, v.offset, v.blockWidth)
		vector.DrawFilledRect(screen, x, y, bw, bw, config.BlockColor, false)
	}

	if v.fonts == nil {
		return
	}
	drawHUD(screen, v.fonts.HUD, v.score, v.highScore)
	if v.splash != nil {
		drawSplash(screen, v.fonts, v.width, v.height, v.splash.score, v.splash.showRestart)
	}
}

// BlockOrigin returns the top-left pixel of b. Row r is drawn one block
// above its index so a fresh row slides in from off-screen.
func BlockOrigin(b grid.Block, offset, blockWidth float64) (x, y float32) {
	return float32(float64(b.Column) * blockWidth), float32(float64(b.Row-1)*blockWidth + offset)
}

// SplashLines returns the game over text, top to bottom.
func SplashLines(score int, showRestart bool) []string {
	lines := []string{"Game Over", fmt.Sprintf("Score: %d", score)}
	if showRestart {
		lines = append(lines, "Tap to restart")
	}
	return lines
}

func drawSplash(screen *ebiten.Image, fonts *Fonts, width, height, score int, showRestart bool) {
	lines := SplashLines(score, showRestart)
	cy := height / 2
	drawCentered(screen, fonts.Title, lines[0], width/2, cy-60)
	drawCentered(screen, fonts.Title, lines[1], width/2, cy)
	if len(lines) > 2 {
		drawCentered(screen, fonts.Body, lines[2], width/2, cy+60)
	}
}

func drawHUD(screen *ebiten.Image, face font.Face, score, highScore int) {
	text.Draw(screen, fmt.Sprintf("Score: %d", score), face, 8, 24, config.TextColor)
	text.Draw(screen, fmt.Sprintf("High score: %d", highScore), face, 8, 48, config.TextColor)
}

// drawCentered draws s with its baseline at y, centered on x.
func drawCentered(screen *ebiten.Image, face font.Face, s string, x, y int) {
	bounds := text.BoundString(face, s)
	text.Draw(screen, s, face, x-bounds.Dx()/2, y, config.TextColor)
}

func lighten(c color.RGBA, by float64) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*by)
	}
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}
