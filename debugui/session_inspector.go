package debugui

import (
	"context"
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rowbreak/game"
)

// SessionInspector shows the live session and offers pause and restart.
type SessionInspector struct {
	game    *game.Game
	paused  bool
	restart bool
}

func NewSessionInspector(g *game.Game) *SessionInspector {
	return &SessionInspector{game: g}
}

func (si *SessionInspector) Render() {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, row := range SessionRows(si.game.Snapshot()) {
		imgui.Text(row)
	}

	imgui.Separator()
	imgui.Checkbox("Pause", &si.paused)
	imgui.SameLine()
	if imgui.Button("Restart") {
		si.restart = true
	}

	imgui.End()
}

func (si *SessionInspector) apply(ctx context.Context) error {
	if !si.restart {
		return nil
	}
	si.restart = false
	return si.game.Start(ctx)
}

// SessionRows formats a snapshot for display.
func SessionRows(s game.Snapshot) []string {
	return []string{
		fmt.Sprintf("Phase: %s", s.Phase),
		fmt.Sprintf("Game: %d", s.Games),
		fmt.Sprintf("Difficulty: %d", s.Difficulty),
		fmt.Sprintf("Score: %d (best %d)", s.Score, s.HighScore),
		fmt.Sprintf("Fall Speed: %.1f px/s", s.FallSpeed),
		fmt.Sprintf("Offset: %.1f px", s.Offset),
		fmt.Sprintf("Blocks: %d", len(s.Blocks)),
		fmt.Sprintf("Rows Cleared: %d", s.RowsCleared),
		fmt.Sprintf("Elapsed: %s", s.Elapsed.Round(time.Millisecond)),
	}
}
