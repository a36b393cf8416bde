package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/plus3/rowbreak/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.db")

	s, err := store.OpenSQLite(path)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, store.KeyDifficulty, "2"))
	require.NoError(t, s.Set(ctx, store.KeyDifficulty, "4"))
	require.NoError(t, s.Close())

	reopened, err := store.OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	d, err := store.NewPrefs(reopened).Difficulty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, d)
}
