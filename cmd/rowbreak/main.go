// Command rowbreak runs the game in a window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/rowbreak/config"
	"github.com/plus3/rowbreak/debugui"
	"github.com/plus3/rowbreak/game"
	"github.com/plus3/rowbreak/leaderboard"
	"github.com/plus3/rowbreak/logging"
	"github.com/plus3/rowbreak/present/canvas"
	"github.com/plus3/rowbreak/store"
	"go.uber.org/zap"
)

type App struct {
	ctx     context.Context
	log     *zap.Logger
	game    *game.Game
	view    *canvas.View
	input   canvas.Input
	overlay *debugui.Overlay
	width   int
	height  int

	lastUpdate time.Time
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	delta := now.Sub(a.lastUpdate)
	a.lastUpdate = now

	paused := false
	if a.overlay != nil {
		if err := a.overlay.Update(a.ctx, float32(delta.Seconds())); err != nil {
			return err
		}
		paused = a.overlay.Paused()
	}

	if a.overlay == nil || !a.overlay.Input().WantCaptureMouse {
		for _, x := range a.input.Presses() {
			if err := a.game.HandleInput(a.ctx, x); err != nil {
				a.log.Warn("input", zap.Float64("x", x), zap.Error(err))
			}
		}
	}

	if !paused {
		a.game.Advance(a.ctx, delta)
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.view.Draw(screen)
	if a.overlay != nil {
		a.overlay.Draw(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.overlay != nil {
		a.overlay.Layout(outsideWidth, outsideHeight)
	}
	return a.width, a.height
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rowbreak:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

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

	client, err := leaderboard.NewClient(cfg.LeaderboardURL,
		leaderboard.WithTimeout(cfg.SubmitTimeout),
		leaderboard.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer client.Wait()

	fonts, err := canvas.LoadFonts()
	if err != nil {
		return err
	}
	view := canvas.NewView(cfg.Width, cfg.Height, fonts)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("seeded spawner", zap.Uint64("seed", seed))

	g, err := game.New(game.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		BlockCount: cfg.BlockCount,
		FillCount:  cfg.FillCount,
		EndDelay:   cfg.EndDelay,
		Rand:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Prefs:      prefs,
		Presenter:  view,
		Notifier:   client,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	if err := g.Start(ctx); err != nil {
		return err
	}

	app := &App{
		ctx:        ctx,
		log:        logger,
		game:       g,
		view:       view,
		width:      cfg.Width,
		height:     cfg.Height,
		lastUpdate: time.Now(),
	}
	if cfg.Debug {
		app.overlay = debugui.New(g, "Row Break", cfg.Width, cfg.Height)
	} else {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle("Row Break")
	}

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
