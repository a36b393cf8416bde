// Command highscores shows the leaderboard and lets the player pick the
// difficulty and display name used by the game.
//
// Up/Down change the difficulty. Enter starts editing the name; Enter
// again saves it, Escape cancels.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/rowbreak/config"
	"github.com/plus3/rowbreak/leaderboard"
	"github.com/plus3/rowbreak/logging"
	"github.com/plus3/rowbreak/present/canvas"
	"github.com/plus3/rowbreak/store"
	"go.uber.org/zap"
)

type fetchResult struct {
	records []leaderboard.Record
	err     error
}

type App struct {
	ctx    context.Context
	log    *zap.Logger
	prefs  *store.Prefs
	board  *canvas.Board
	editor nameEditor
	width  int
	height int

	updates chan fetchResult
}

func (a *App) Update() error {
drain:
	for {
		select {
		case res := <-a.updates:
			if res.err != nil {
				a.log.Debug("leaderboard unavailable", zap.Error(res.err))
				a.board.SetUnavailable()
			} else {
				a.board.SetRecords(res.records)
			}
		default:
			break drain
		}
	}

	if a.editor.active {
		name, done := a.editor.update()
		a.board.SetPlayerName(a.editor.display())
		if done && name != "" {
			if err := a.prefs.SetPlayerName(a.ctx, name); err != nil {
				return err
			}
			a.log.Info("player name changed", zap.String("name", name))
		}
		if done {
			a.reloadName()
		}
		return nil
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		current, _, err := a.prefs.PlayerName(a.ctx)
		if err != nil {
			return err
		}
		a.editor.start(current)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		return a.stepDifficulty(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		return a.stepDifficulty(-1)
	}
	return nil
}

func (a *App) stepDifficulty(delta int) error {
	d, err := a.prefs.StepDifficulty(a.ctx, delta)
	if err != nil {
		return err
	}
	a.board.SetDifficulty(d)
	return nil
}

func (a *App) reloadName() {
	name, _, err := a.prefs.PlayerName(a.ctx)
	if err != nil {
		a.log.Warn("load player name", zap.Error(err))
	}
	a.board.SetPlayerName(name)
}

func (a *App) Draw(screen *ebiten.Image) {
	a.board.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "highscores:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.RegisterFlags(flag.CommandLine)
	live := flag.Bool("live", false, "follow the leaderboard's live feed")
	flag.Parse()

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv, err := store.OpenSQLite(cfg.PrefsPath)
	if err != nil {
		return err
	}
	defer kv.Close()
	prefs := store.NewPrefs(kv)
	if cfg.PlayerName != "" {
		if err := prefs.SetPlayerName(ctx, cfg.PlayerName); err != nil {
			return err
		}
	}

	client, err := leaderboard.NewClient(cfg.LeaderboardURL, leaderboard.WithLogger(logger))
	if err != nil {
		return err
	}

	fonts, err := canvas.LoadFonts()
	if err != nil {
		return err
	}

	app := &App{
		ctx:     ctx,
		log:     logger,
		prefs:   prefs,
		board:   canvas.NewBoard(cfg.Width, cfg.Height, fonts),
		width:   cfg.Width,
		height:  cfg.Height,
		updates: make(chan fetchResult, 4),
	}
	d, err := prefs.Difficulty(ctx)
	if err != nil {
		return err
	}
	app.board.SetDifficulty(d)
	app.reloadName()

	go func() {
		fetchCtx, fetchCancel := context.WithTimeout(ctx, cfg.SubmitTimeout)
		defer fetchCancel()
		records, err := client.Fetch(fetchCtx)
		app.updates <- fetchResult{records: records, err: err}

		if !*live {
			return
		}
		for ctx.Err() == nil {
			err := client.Watch(ctx, func(records []leaderboard.Record) {
				select {
				case app.updates <- fetchResult{records: records}:
				case <-ctx.Done():
				}
			})
			if ctx.Err() != nil {
				return
			}
			logger.Debug("live feed dropped", zap.Error(err))
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
			}
		}
	}()

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Row Break - High scores")
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
