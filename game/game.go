// Package game runs a row-break session: rows of blocks fall toward the
// player, who throws blocks onto columns to complete and clear rows before
// any column passes the bottom of the board.
package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/rowbreak/grid"
	"github.com/plus3/rowbreak/logging"
	"github.com/plus3/rowbreak/sim"
	"github.com/plus3/rowbreak/store"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned for a pointer coordinate that is not a finite
// number.
var ErrInvalidInput = errors.New("game: invalid input coordinate")

// Options configures a Game. Zero values pick the defaults noted per field.
type Options struct {
	// Screen size in pixels. Default 400x720.
	Width, Height int
	// Columns on the board. Default 5.
	BlockCount int
	// Blocks per spawned row. Default 3.
	FillCount int
	// Delay between Ending and GameOver. Default 500ms.
	EndDelay time.Duration
	// Simulation step. Default sim.DefaultStep.
	Step time.Duration

	// Rand drives the row spawner. Default is a randomly seeded PCG.
	Rand      grid.Rand
	Prefs     *store.Prefs
	Presenter Presenter
	// Notifier receives finished scores. Nil disables posting.
	Notifier Notifier
	Logger   *zap.Logger
}

func (o *Options) withDefaults() {
	if o.Width <= 0 {
		o.Width = 400
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if o.BlockCount <= 0 {
		o.BlockCount = 5
	}
	if o.FillCount <= 0 {
		o.FillCount = min(3, o.BlockCount)
	}
	if o.EndDelay <= 0 {
		o.EndDelay = 500 * time.Millisecond
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Prefs == nil {
		o.Prefs = store.NewPrefs(store.NewMemoryStore())
	}
	if o.Presenter == nil {
		o.Presenter = nopPresenter{}
	}
}

// Game owns the board of one player and every session played on it. It is
// driven from a single goroutine: Advance once per rendered frame and
// HandleInput for every pointer press.
type Game struct {
	opts      Options
	log       *zap.Logger
	grid      *grid.Grid
	scheduler *sim.Scheduler
	prefs     *store.Prefs
	presenter Presenter

	blockWidth  float64
	heightCount int

	phase        Phase
	offset       float64
	fallSpeed    float64
	score        int
	highScore    int
	difficulty   int
	tapToRestart bool
	rowsCleared  int
	games        int

	endTimer sim.TimerID
}

// New builds a game. Call Start before feeding it frames.
func New(opts Options) (*Game, error) {
	opts.withDefaults()
	if opts.FillCount > opts.BlockCount {
		return nil, fmt.Errorf("%w: %d of %d columns", grid.ErrFillExceedsWidth, opts.FillCount, opts.BlockCount)
	}

	blockWidth := float64(opts.Width) / float64(opts.BlockCount)
	g := &Game{
		opts:        opts,
		log:         logging.OrNop(opts.Logger).Named("game"),
		grid:        grid.New(opts.BlockCount),
		scheduler:   sim.NewScheduler(opts.Step),
		prefs:       opts.Prefs,
		presenter:   opts.Presenter,
		blockWidth:  blockWidth,
		heightCount: int(math.Floor(float64(opts.Height) / blockWidth)),
		phase:       GameOver,
	}
	g.scheduler.Register(&fallSystem{game: g})
	return g, nil
}

// Register adds a system that runs after the fall system every step.
func (g *Game) Register(system sim.System) {
	g.scheduler.Register(system)
}

// Start begins a new session: empty board, zero score, and the fall speed
// of the stored difficulty. A pending end-of-game timer is cancelled.
func (g *Game) Start(ctx context.Context) error {
	if g.endTimer != 0 {
		g.scheduler.Cancel(g.endTimer)
		g.endTimer = 0
	}

	difficulty, err := g.prefs.Difficulty(ctx)
	if err != nil {
		return fmt.Errorf("load difficulty: %w", err)
	}
	highScore, err := g.prefs.HighScore(ctx)
	if err != nil {
		return fmt.Errorf("load high score: %w", err)
	}

	g.grid.Clear()
	g.scheduler.ResetClock()
	g.difficulty = difficulty
	g.highScore = highScore
	g.offset = 0
	g.fallSpeed = BaseSpeed(g.blockWidth, difficulty)
	g.score = 0
	g.rowsCleared = 0
	g.tapToRestart = false
	g.phase = Playing
	g.games++

	g.log.Info("game started",
		zap.Int("game", g.games),
		zap.Int("difficulty", difficulty),
		zap.Float64("fallSpeed", g.fallSpeed),
	)
	g.render()
	return nil
}

// Advance feeds one frame of wall-clock time into the game. Every whole
// step runs the registered systems; the board is redrawn afterwards while
// playing. It returns the number of steps run.
func (g *Game) Advance(ctx context.Context, delta time.Duration) int {
	steps := g.scheduler.Once(ctx, delta)
	if g.phase == Playing {
		g.render()
	}
	return steps
}

// HandleInput processes a press at horizontal pixel x. While playing it
// throws a block onto the column under x, clamped to the board; once the
// restart prompt shows it starts a new game. Non-finite coordinates are
// rejected.
func (g *Game) HandleInput(ctx context.Context, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, x)
	}

	switch g.phase {
	case Playing:
		g.place(g.Column(x))
	case GameOver:
		if g.tapToRestart {
			return g.Start(ctx)
		}
	}
	return nil
}

// Column maps a horizontal pixel coordinate to a column on the board.
func (g *Game) Column(x float64) int {
	column := int(math.Floor(x / g.blockWidth))
	return min(max(column, 0), g.opts.BlockCount-1)
}

func (g *Game) place(column int) {
	b, err := g.grid.Place(column)
	if err != nil {
		g.log.Error("place block", zap.Int("column", column), zap.Error(err))
		return
	}
	g.log.Debug("block placed", zap.Int("column", b.Column), zap.Int("row", b.Row))

	if cleared := g.clearFullRows(); cleared > 0 {
		if obs, ok := g.presenter.(ClearObserver); ok {
			obs.RowsCleared(cleared)
		}
	}
}

// clearFullRows removes full rows, lowest index first, closing each gap
// and rescanning until no row is full. Every clear removes BlockCount
// blocks so the loop terminates.
func (g *Game) clearFullRows() int {
	cleared := 0
	for {
		row, ok := g.fullRow()
		if !ok {
			return cleared
		}

		g.grid.RemoveRow(row)
		if err := g.grid.ShiftRowsUp(row + 1); err != nil {
			g.log.Error("close cleared row", zap.Int("row", row), zap.Error(err))
			return cleared
		}

		g.fallSpeed += SpeedIncrement(g.blockWidth, g.difficulty)
		g.score += ClearScore(g.blockWidth, g.difficulty)
		g.rowsCleared++
		cleared++

		g.log.Debug("row cleared",
			zap.Int("row", row),
			zap.Int("score", g.score),
			zap.Float64("fallSpeed", g.fallSpeed),
		)
	}
}

func (g *Game) fullRow() (int, bool) {
	full, found := 0, false
	for row, count := range g.grid.CountPerRow() {
		if count == g.opts.BlockCount && (!found || row < full) {
			full, found = row, true
		}
	}
	return full, found
}

// end moves the game to Ending. The persistence, posting and splash run
// once the current step has finished.
func (g *Game) end(frame *sim.UpdateFrame) {
	g.phase = Ending
	score := g.score
	g.log.Info("game over",
		zap.Int("game", g.games),
		zap.Int("score", score),
		zap.Int("rowsCleared", g.rowsCleared),
		zap.Uint64("tick", frame.Tick),
	)

	frame.Commands.Defer(func() {
		g.finish(frame.Context, score)
	})
}

func (g *Game) finish(ctx context.Context, score int) {
	best, changed, err := g.prefs.RecordScore(ctx, score)
	if err != nil {
		g.log.Warn("save high score", zap.Error(err))
	} else {
		g.highScore = best
		if changed {
			g.log.Info("new high score", zap.Int("score", best))
		}
	}

	g.submit(ctx, score)
	g.presenter.RenderGameOverSplash(score, false)

	g.endTimer = g.scheduler.After(g.opts.EndDelay, func(context.Context) {
		g.endTimer = 0
		g.phase = GameOver
		g.tapToRestart = true
		g.presenter.RenderGameOverSplash(score, true)
	})
}

func (g *Game) submit(ctx context.Context, score int) {
	if g.opts.Notifier == nil || score <= 0 {
		return
	}
	name, ok, err := g.prefs.PlayerName(ctx)
	if err != nil {
		g.log.Warn("load player name", zap.Error(err))
		return
	}
	if !ok {
		g.log.Debug("no player name, score not posted")
		return
	}
	g.opts.Notifier.Notify(name, score)
}

func (g *Game) render() {
	g.presenter.RenderGrid(g.grid.Snapshot(), g.offset, g.blockWidth)
	g.presenter.RenderScore(g.score)
	g.presenter.RenderHighScore(g.highScore)
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// BlockWidth returns the side of one block in pixels.
func (g *Game) BlockWidth() float64 {
	return g.blockWidth
}

// HeightCount returns how many rows fit on the screen. A block past this
// row ends the game.
func (g *Game) HeightCount() int {
	return g.heightCount
}

// Stats returns the scheduler statistics.
func (g *Game) Stats() *sim.SchedulerStats {
	return g.scheduler.GetStats()
}

// Snapshot describes the session at one point in time.
type Snapshot struct {
	Phase        Phase
	Score        int
	HighScore    int
	Difficulty   int
	Offset       float64
	FallSpeed    float64
	TapToRestart bool
	RowsCleared  int
	Games        int
	Elapsed      time.Duration
	Blocks       []grid.Block
}

// Snapshot returns a copy of the session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase:        g.phase,
		Score:        g.score,
		HighScore:    g.highScore,
		Difficulty:   g.difficulty,
		Offset:       g.offset,
		FallSpeed:    g.fallSpeed,
		TapToRestart: g.tapToRestart,
		RowsCleared:  g.rowsCleared,
		Games:        g.games,
		Elapsed:      g.scheduler.Elapsed(),
		Blocks:       g.grid.Snapshot(),
	}
}
