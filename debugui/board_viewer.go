package debugui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rowbreak/game"
	"github.com/plus3/rowbreak/grid"
)

type boardViewer struct {
	game *game.Game
}

func newBoardViewer(g *game.Game) *boardViewer {
	return &boardViewer{game: g}
}

func (bv *boardViewer) Render() {
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := RowCounts(bv.game.Snapshot().Blocks)
	imgui.Text(fmt.Sprintf("Rows: %d  Overflow after row %d", len(rows), bv.game.HeightCount()))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BoardTable", 2, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Row")
		imgui.TableSetupColumn("Columns")
		imgui.TableHeadersRow()

		for _, r := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", r.Row))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%v", r.Columns))
		}
		imgui.EndTable()
	}

	imgui.End()
}

// RowCount lists the occupied columns of one row.
type RowCount struct {
	Row     int
	Columns []int
}

// RowCounts groups blocks by row, both rows and columns ascending.
func RowCounts(blocks []grid.Block) []RowCount {
	byRow := make(map[int][]int)
	for _, b := range blocks {
		byRow[b.Row] = append(byRow[b.Row], b.Column)
	}

	out := make([]RowCount, 0, len(byRow))
	for row, cols := range byRow {
		slices.Sort(cols)
		out = append(out, RowCount{Row: row, Columns: cols})
	}
	slices.SortFunc(out, func(a, b RowCount) int { return cmp.Compare(a.Row, b.Row) })
	return out
}
