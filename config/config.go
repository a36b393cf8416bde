// Package config holds the tunables shared by the rowbreak binaries.
//
// Values start from Default, are overridden by ROWBREAK_* environment
// variables (optionally loaded from a .env file) and finally by command
// line flags registered with RegisterFlags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ScreenWidth  = 400
	ScreenHeight = 720
	BlockCount   = 5
	FillCount    = 3
	EndDelay     = 500 * time.Millisecond

	// LeaderboardTop is how many records the leaderboard endpoint returns.
	LeaderboardTop = 10
)

var (
	BackgroundColor = color.RGBA{0x96, 0xA5, 0x37, 0xff}
	BlockColor      = color.RGBA{0x47, 0x53, 0x00, 0xff}
	TextColor       = color.RGBA{0xEC, 0xF8, 0xA5, 0xff}
)

// Config is the runtime configuration of a rowbreak binary.
type Config struct {
	Width      int
	Height     int
	BlockCount int
	FillCount  int
	EndDelay   time.Duration
	// Seed for the row spawner. Zero picks a random seed.
	Seed uint64

	PrefsPath      string
	PlayerName     string
	LeaderboardURL string
	SubmitTimeout  time.Duration

	ListenAddr string
	ScoresPath string

	LogFile  string
	LogLevel string
	Debug    bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:          ScreenWidth,
		Height:         ScreenHeight,
		BlockCount:     BlockCount,
		FillCount:      FillCount,
		EndDelay:       EndDelay,
		PrefsPath:      "rowbreak.db",
		LeaderboardURL: "http://localhost:8088/",
		SubmitTimeout:  5 * time.Second,
		ListenAddr:     ":8088",
		ScoresPath:     "scores.db",
		LogLevel:       "info",
	}
}

// Load returns Default overridden by the environment. With no arguments an
// optional ./.env is read; named files must exist. Variables already set in
// the process environment win over file contents.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}

	cfg := Default()
	var errs []error
	envInt(&cfg.Width, "ROWBREAK_WIDTH", &errs)
	envInt(&cfg.Height, "ROWBREAK_HEIGHT", &errs)
	envInt(&cfg.BlockCount, "ROWBREAK_BLOCKS", &errs)
	envInt(&cfg.FillCount, "ROWBREAK_FILL", &errs)
	envDuration(&cfg.EndDelay, "ROWBREAK_END_DELAY", &errs)
	envDuration(&cfg.SubmitTimeout, "ROWBREAK_SUBMIT_TIMEOUT", &errs)
	envString(&cfg.PrefsPath, "ROWBREAK_PREFS")
	envString(&cfg.PlayerName, "ROWBREAK_PLAYER")
	envString(&cfg.LeaderboardURL, "ROWBREAK_LEADERBOARD_URL")
	envString(&cfg.ListenAddr, "ROWBREAK_LISTEN")
	envString(&cfg.ScoresPath, "ROWBREAK_SCORES_DB")
	envString(&cfg.LogFile, "ROWBREAK_LOG_FILE")
	envString(&cfg.LogLevel, "ROWBREAK_LOG_LEVEL")
	if v := os.Getenv("ROWBREAK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("ROWBREAK_SEED: %w", err))
		}
		cfg.Seed = seed
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// RegisterFlags binds the game-facing fields of c to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "row spawner seed (0 = random)")
	fs.StringVar(&c.PrefsPath, "prefs", c.PrefsPath, "path of the preferences database")
	fs.StringVar(&c.PlayerName, "name", c.PlayerName, "player name for leaderboard posts (stored)")
	fs.StringVar(&c.LeaderboardURL, "leaderboard", c.LeaderboardURL, "leaderboard endpoint URL")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "log file (default stderr)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show the debug overlay")
}

// Validate checks the board geometry.
func (c Config) Validate() error {
	switch {
	case c.BlockCount <= 0:
		return fmt.Errorf("block count must be positive, got %d", c.BlockCount)
	case c.FillCount <= 0 || c.FillCount > c.BlockCount:
		return fmt.Errorf("fill count %d must be within [1,%d]", c.FillCount, c.BlockCount)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("screen size %dx%d must be positive", c.Width, c.Height)
	}
	return nil
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string, errs *[]error) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func envDuration(dst *time.Duration, key string, errs *[]error) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = d
}
