package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rowbreak/game"
)

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	frames []float32
	index  int
	filled int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{frames: make([]float32, max(size, 1))}
}

// Push records one frame time in seconds.
func (h *FrameHistory) Push(seconds float32) {
	h.frames[h.index] = seconds * 1000.0
	h.index = (h.index + 1) % len(h.frames)
	h.filled = min(h.filled+1, len(h.frames))
}

// Average returns the mean frame time in milliseconds over the recorded
// frames, or 0 before the first frame.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ft := range h.frames[:h.filled] {
		total += ft
	}
	return total / float32(h.filled)
}

// PerformanceStats shows frame timing and per-system step statistics.
type PerformanceStats struct {
	game    *game.Game
	history *FrameHistory
}

func NewPerformanceStats(g *game.Game, historyFrames int) *PerformanceStats {
	return &PerformanceStats{game: g, history: NewFrameHistory(historyFrames)}
}

func (ps *PerformanceStats) Record(frameSeconds float32) {
	ps.history.Push(frameSeconds)
}

func (ps *PerformanceStats) Render() {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.game.Stats()
	avg := ps.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text(fmt.Sprintf("Steps: %d", stats.Ticks))
	imgui.Text(fmt.Sprintf("Pending Timers: %d", stats.PendingTimers))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.frames[0], int32(len(ps.history.frames)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
