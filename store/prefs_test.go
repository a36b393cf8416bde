package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/plus3/rowbreak/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroken = errors.New("disk on fire")

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenKV) Set(context.Context, string, string) error         { return errBroken }

func TestPrefsDefaults(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewPrefs(store.NewMemoryStore())

	hs, err := prefs.HighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, hs)

	d, err := prefs.Difficulty(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DefaultDifficulty, d)

	_, ok, err := prefs.PlayerName(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordScoreKeepsBest(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewPrefs(store.NewMemoryStore())

	best, changed, err := prefs.RecordScore(ctx, 100)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 100, best)

	best, changed, err = prefs.RecordScore(ctx, 50)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 100, best)

	hs, err := prefs.HighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, hs)

	_, changed, err = prefs.RecordScore(ctx, 100)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRecordScoreReplacesGarbage(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, store.KeyHighScore, "lots"))
	prefs := store.NewPrefs(kv)

	hs, err := prefs.HighScore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, hs)

	_, changed, err := prefs.RecordScore(ctx, 7)
	require.NoError(t, err)
	assert.True(t, changed)

	raw, _, _ := kv.Get(ctx, store.KeyHighScore)
	assert.Equal(t, "7", raw)
}

func TestDifficulty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	prefs := store.NewPrefs(kv)

	require.NoError(t, prefs.SetDifficulty(ctx, 5))
	d, err := prefs.Difficulty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	assert.ErrorIs(t, prefs.SetDifficulty(ctx, 0), store.ErrInvalidDifficulty)
	assert.ErrorIs(t, prefs.SetDifficulty(ctx, 6), store.ErrInvalidDifficulty)

	d, err = prefs.StepDifficulty(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	for range 10 {
		d, err = prefs.StepDifficulty(ctx, -1)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, d)

	for _, raw := range []string{"9", "-2", "hard", ""} {
		require.NoError(t, kv.Set(ctx, store.KeyDifficulty, raw))
		d, err := prefs.Difficulty(ctx)
		require.NoError(t, err)
		assert.Equal(t, store.DefaultDifficulty, d, "stored %q", raw)
	}
}

func TestPlayerName(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewPrefs(store.NewMemoryStore())

	assert.ErrorIs(t, prefs.SetPlayerName(ctx, "   "), store.ErrEmptyName)

	require.NoError(t, prefs.SetPlayerName(ctx, "  ada "))
	name, ok, err := prefs.PlayerName(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada", name)
}

func TestPrefsSurfacesStoreFailures(t *testing.T) {
	ctx := context.Background()
	prefs := store.NewPrefs(brokenKV{})

	_, err := prefs.HighScore(ctx)
	assert.ErrorIs(t, err, errBroken)

	d, err := prefs.Difficulty(ctx)
	assert.ErrorIs(t, err, errBroken)
	assert.Equal(t, store.DefaultDifficulty, d)

	_, _, err = prefs.RecordScore(ctx, 10)
	assert.ErrorIs(t, err, errBroken)
}
