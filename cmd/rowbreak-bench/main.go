// Command rowbreak-bench plays games headless with a simple bot and
// reports scores and simulation timing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/rowbreak/game"
	"github.com/plus3/rowbreak/logging"
	"github.com/plus3/rowbreak/sim"
	"github.com/plus3/rowbreak/store"
	"go.uber.org/zap"
)

func main() {
	games := flag.Int("games", 20, "number of games to play")
	difficulty := flag.Int("difficulty", store.DefaultDifficulty, "difficulty 1-5")
	seed := flag.Uint64("seed", 1, "row spawner seed")
	botEvery := flag.Uint64("bot-every", 20, "steps between bot throws (0 = no bot)")
	frame := flag.Duration("frame", sim.DefaultStep, "simulated frame length")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: *logLevel})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	report, err := bench(context.Background(), logger, *games, *difficulty, *seed, *botEvery, *frame)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\n--- Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func bench(ctx context.Context, logger *zap.Logger, games, difficulty int, seed, botEvery uint64, frame time.Duration) (*Report, error) {
	prefs := store.NewPrefs(store.NewMemoryStore())
	if err := prefs.SetDifficulty(ctx, difficulty); err != nil {
		return nil, err
	}

	g, err := game.New(game.Options{
		Rand:   rand.New(rand.NewPCG(seed, seed+1)),
		Prefs:  prefs,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	bot := &botSystem{game: g, columns: 5, every: botEvery}
	g.Register(bot)

	report := &Report{
		Games:      games,
		Difficulty: difficulty,
		Seed:       seed,
		BotEvery:   botEvery,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	if err := g.Start(ctx); err != nil {
		return nil, err
	}
	for len(report.Scores) < games {
		frameStart := time.Now()
		report.TotalSteps += int64(g.Advance(ctx, frame))
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		report.TotalFrames++

		if g.Phase() != game.GameOver {
			continue
		}
		snap := g.Snapshot()
		report.Scores = append(report.Scores, snap.Score)
		logger.Info("game finished", zap.Int("game", snap.Games), zap.Int("score", snap.Score))
		if err := g.HandleInput(ctx, 0); err != nil {
			return nil, err
		}
	}

	report.TotalTime = time.Since(start)
	report.TotalThrows = bot.throws
	report.SimulatedTime = g.Snapshot().Elapsed
	report.Systems = g.Stats().Systems
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report, nil
}
