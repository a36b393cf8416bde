package game

import "github.com/plus3/rowbreak/grid"

// Presenter draws the game. The game calls it after every frame while
// playing and on every phase change; it never reads anything back.
type Presenter interface {
	RenderGrid(blocks []grid.Block, offset, blockWidth float64)
	RenderScore(score int)
	RenderHighScore(score int)
	RenderGameOverSplash(score int, showRestart bool)
}

// ClearObserver is implemented by presenters that react to row clears,
// e.g. with a sound.
type ClearObserver interface {
	RowsCleared(rows int)
}

// Notifier receives finished games with a known player and a positive
// score. Implementations must not block; delivery is best effort.
type Notifier interface {
	Notify(name string, score int)
}

type nopPresenter struct{}

func (nopPresenter) RenderGrid([]grid.Block, float64, float64) {}
func (nopPresenter) RenderScore(int)                           {}
func (nopPresenter) RenderHighScore(int)                       {}
func (nopPresenter) RenderGameOverSplash(int, bool)            {}
