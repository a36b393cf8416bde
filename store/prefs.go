package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Keys under which preferences are stored.
const (
	KeyHighScore  = "breakHighScore"
	KeyDifficulty = "breakDifficulty"
	KeyPlayerName = "breakPlayerName"
)

// Difficulty bounds and the value used before the player picks one.
const (
	MinDifficulty     = 1
	MaxDifficulty     = 5
	DefaultDifficulty = 3
)

var (
	// ErrInvalidDifficulty is returned for a difficulty outside [1,5].
	ErrInvalidDifficulty = errors.New("store: difficulty out of range")
	// ErrEmptyName is returned when storing a blank player name.
	ErrEmptyName = errors.New("store: empty player name")
)

// Prefs reads and writes typed preferences on top of a KV. Missing or
// unreadable values resolve to defaults rather than errors; only failures
// of the underlying store are returned.
type Prefs struct {
	kv KV
}

// NewPrefs wraps kv.
func NewPrefs(kv KV) *Prefs {
	return &Prefs{kv: kv}
}

// HighScore returns the stored high score, or 0 if none.
func (p *Prefs) HighScore(ctx context.Context) (int, error) {
	score, _, err := p.highScore(ctx)
	return score, err
}

func (p *Prefs) highScore(ctx context.Context) (int, bool, error) {
	raw, ok, err := p.kv.Get(ctx, KeyHighScore)
	if err != nil || !ok {
		return 0, false, err
	}
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false, nil
	}
	return score, true, nil
}

// RecordScore stores score as the new high score when no high score is
// stored yet or score beats it. It returns the high score after the call
// and whether it changed.
func (p *Prefs) RecordScore(ctx context.Context, score int) (int, bool, error) {
	current, ok, err := p.highScore(ctx)
	if err != nil {
		return 0, false, err
	}
	if ok && score <= current {
		return current, false, nil
	}
	if err := p.kv.Set(ctx, KeyHighScore, strconv.Itoa(score)); err != nil {
		return current, false, err
	}
	return score, true, nil
}

// Difficulty returns the stored difficulty, or DefaultDifficulty when it is
// missing or not a number in [1,5].
func (p *Prefs) Difficulty(ctx context.Context) (int, error) {
	raw, ok, err := p.kv.Get(ctx, KeyDifficulty)
	if err != nil {
		return DefaultDifficulty, err
	}
	if !ok {
		return DefaultDifficulty, nil
	}
	d, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !ValidDifficulty(d) {
		return DefaultDifficulty, nil
	}
	return d, nil
}

// SetDifficulty stores d.
func (p *Prefs) SetDifficulty(ctx context.Context, d int) error {
	if !ValidDifficulty(d) {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, d)
	}
	return p.kv.Set(ctx, KeyDifficulty, strconv.Itoa(d))
}

// StepDifficulty moves the stored difficulty by delta, clamped to [1,5],
// and returns the new value.
func (p *Prefs) StepDifficulty(ctx context.Context, delta int) (int, error) {
	d, err := p.Difficulty(ctx)
	if err != nil {
		return d, err
	}
	d = min(max(d+delta, MinDifficulty), MaxDifficulty)
	return d, p.SetDifficulty(ctx, d)
}

// ValidDifficulty reports whether d is in [1,5].
func ValidDifficulty(d int) bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

// PlayerName returns the stored display name. ok is false when no name has
// been set.
func (p *Prefs) PlayerName(ctx context.Context) (name string, ok bool, err error) {
	raw, ok, err := p.kv.Get(ctx, KeyPlayerName)
	if err != nil || !ok {
		return "", false, err
	}
	name = strings.TrimSpace(raw)
	return name, name != "", nil
}

// SetPlayerName stores name with surrounding whitespace removed.
func (p *Prefs) SetPlayerName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return p.kv.Set(ctx, KeyPlayerName, name)
}
