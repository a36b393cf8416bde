package canvas

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/plus3/rowbreak/config"
	"github.com/plus3/rowbreak/leaderboard"
	"github.com/plus3/rowbreak/store"
)

// Board is the high-score page: the ranked leaderboard plus the local
// difficulty and player name.
type Board struct {
	width, height int
	fonts         *Fonts

	records    []leaderboard.Record
	loaded     bool
	difficulty int
	name       string
}

func NewBoard(width, height int, fonts *Fonts) *Board {
	return &Board{width: width, height: height, fonts: fonts, difficulty: store.DefaultDifficulty}
}

// SetRecords replaces the list. Records are ranked before drawing.
func (b *Board) SetRecords(records []leaderboard.Record) {
	b.records = leaderboard.Ranked(records)
	b.loaded = true
}

// SetUnavailable hides the list after a failed or malformed fetch.
func (b *Board) SetUnavailable() {
	b.records = nil
	b.loaded = false
}

func (b *Board) SetDifficulty(d int)    { b.difficulty = d }
func (b *Board) SetPlayerName(n string) { b.name = n }

// Lines returns the list rows that fit on screen. It is empty until a
// list has loaded.
func (b *Board) Lines() []string {
	if !b.loaded {
		return nil
	}
	var lines []string
	for i, r := range b.records {
		if boardListTop+i*boardLineHeight > b.height-boardFooter {
			break
		}
		lines = append(lines, r.String())
	}
	return lines
}

// DifficultyLabel is the text shown for difficulty d.
func DifficultyLabel(d int) string {
	return fmt.Sprintf("Difficulty: %d/%d", d, store.MaxDifficulty)
}

const (
	boardListTop    = 180
	boardLineHeight = 60
	boardFooter     = 90
)

func (b *Board) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	if b.fonts == nil {
		return
	}

	cx := b.width / 2
	if b.loaded {
		drawCentered(screen, b.fonts.Title, "High scores", cx, 70)
		for i, line := range b.Lines() {
			drawCentered(screen, b.fonts.Body, line, cx, boardListTop+i*boardLineHeight)
		}
	}

	footer := DifficultyLabel(b.difficulty)
	text.Draw(screen, footer, b.fonts.HUD, 8, b.height-48, config.TextColor)
	name := "Name: (none)"
	if b.name != "" {
		name = "Name: " + b.name
	}
	text.Draw(screen, name, b.fonts.HUD, 8, b.height-20, config.TextColor)
}
