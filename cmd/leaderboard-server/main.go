// Command leaderboard-server hosts a leaderboard compatible with the game's
// score posting and the high-score page.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/rowbreak/config"
	"github.com/plus3/rowbreak/leaderboard"
	"github.com/plus3/rowbreak/logging"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "leaderboard-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flag.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "address to listen on")
	flag.StringVar(&cfg.ScoresPath, "db", cfg.ScoresPath, `scores database path, or "memory"`)
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file (default stderr)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	top := flag.Int("top", config.LeaderboardTop, "records returned to readers")
	flag.Parse()

	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var scores leaderboard.Scores
	if cfg.ScoresPath == "memory" {
		scores = leaderboard.NewMemoryScores()
	} else {
		db, err := leaderboard.OpenSQLiteScores(cfg.ScoresPath)
		if err != nil {
			return err
		}
		defer db.Close()
		scores = db
	}
	logger.Info("scores ready", zap.String("db", cfg.ScoresPath), zap.Int("top", *top))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := leaderboard.NewServer(scores, *top, logger)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}
