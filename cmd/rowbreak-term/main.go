// Command rowbreak-term runs the game in a terminal. Click a column or
// press 1-5 to throw a block; q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/rowbreak/config"
	"github.com/plus3/rowbreak/game"
	"github.com/plus3/rowbreak/leaderboard"
	"github.com/plus3/rowbreak/logging"
	"github.com/plus3/rowbreak/present/term"
	"github.com/plus3/rowbreak/store"
	"go.uber.org/zap"
)

const frameInterval = time.Second / 60

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rowbreak-term:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.RegisterFlags(flag.CommandLine)
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal owns stderr while running, so default to a log file.
	if cfg.LogFile == "" {
		cfg.LogFile = "rowbreak-term.log"
	}
	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var sound *term.Sound
	if !*mute {
		if sound, err = term.NewSound(); err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		}
		defer sound.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	blockWidth := float64(cfg.Width) / float64(cfg.BlockCount)
	heightCount := int(math.Floor(float64(cfg.Height) / blockWidth))
	renderer := term.NewScreen(screen, cfg.BlockCount, heightCount, sound)

	g, err := game.New(game.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		BlockCount: cfg.BlockCount,
		FillCount:  cfg.FillCount,
		EndDelay:   cfg.EndDelay,
		Rand:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Prefs:      prefs,
		Presenter:  renderer,
		Notifier:   client,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	if err := g.Start(ctx); err != nil {
		return err
	}
	return loop(ctx, screen, renderer, g, float64(cfg.Width), logger)
}

func loop(ctx context.Context, screen tcell.Screen, renderer *term.Screen, g *game.Game, width float64, log *zap.Logger) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	var buttonDown bool

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				if r := ev.Rune(); r >= '1' && r <= '9' {
					x := (float64(r-'1') + 0.5) * g.BlockWidth()
					press(ctx, g, x, log)
				}
			case *tcell.EventMouse:
				down := ev.Buttons()&tcell.Button1 != 0
				if down && !buttonDown {
					mx, _ := ev.Position()
					press(ctx, g, renderer.PixelX(mx, width), log)
				}
				buttonDown = down
			}

		case now := <-ticker.C:
			g.Advance(ctx, now.Sub(last))
			last = now
			renderer.Draw()
			screen.Show()
		}
	}
}

func press(ctx context.Context, g *game.Game, x float64, log *zap.Logger) {
	if math.IsNaN(x) {
		return
	}
	if err := g.HandleInput(ctx, x); err != nil {
		log.Warn("input", zap.Error(err))
	}
}
