package leaderboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/rowbreak/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServerStoresAndLists(t *testing.T) {
	srv := leaderboard.NewServer(leaderboard.NewMemoryScores(), 2, nil)

	for _, q := range []string{"/?name=bo&score=3", "/?name=ada&score=42", "/?name=%20cy%20&score=10"} {
		rec := get(t, srv, q)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := get(t, srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	records, err := leaderboard.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Record{{Name: "ada", Score: 42}, {Name: "cy", Score: 10}}, records)
}

func TestServerRejectsBadSubmissions(t *testing.T) {
	srv := leaderboard.NewServer(leaderboard.NewMemoryScores(), 10, nil)

	for _, q := range []string{"/?score=3", "/?name=ada", "/?name=ada&score=x", "/?name=ada&score=-1", "/?name=%20&score=1"} {
		rec := get(t, srv, q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec := get(t, srv, "/")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestServerTruncatesNames(t *testing.T) {
	scores := leaderboard.NewMemoryScores()
	srv := leaderboard.NewServer(scores, 10, nil)

	rec := get(t, srv, "/?name="+strings.Repeat("x", 50)+"&score=1")
	require.Equal(t, http.StatusOK, rec.Code)

	top, err := scores.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Len(t, top[0].Name, leaderboard.MaxNameLength)
}

func TestServerHealth(t *testing.T) {
	srv := leaderboard.NewServer(leaderboard.NewMemoryScores(), 10, nil)
	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestSQLiteScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lb", "scores.db")
	scores, err := leaderboard.OpenSQLiteScores(path)
	require.NoError(t, err)

	ctx := context.Background()
	for _, r := range []leaderboard.Record{{Name: "bo", Score: 10}, {Name: "ada", Score: 42}, {Name: "cy", Score: 10}, {Name: "di", Score: 1}} {
		require.NoError(t, scores.Add(ctx, r))
	}
	require.NoError(t, scores.Close())

	scores, err = leaderboard.OpenSQLiteScores(path)
	require.NoError(t, err)
	defer scores.Close()

	top, err := scores.Top(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Record{{Name: "ada", Score: 42}, {Name: "bo", Score: 10}, {Name: "cy", Score: 10}}, top)
}

func TestClientAgainstServer(t *testing.T) {
	lb := leaderboard.NewServer(leaderboard.NewMemoryScores(), 10, nil)
	srv := httptest.NewServer(lb)
	defer srv.Close()
	defer lb.Close()

	client, err := leaderboard.NewClient(srv.URL + "/")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Submit(ctx, "ada", 42))
	require.NoError(t, client.Submit(ctx, "bo", 50))

	records, err := client.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Record{{Name: "bo", Score: 50}, {Name: "ada", Score: 42}}, records)
}

func TestWatchReceivesUpdates(t *testing.T) {
	lb := leaderboard.NewServer(leaderboard.NewMemoryScores(), 10, nil)
	srv := httptest.NewServer(lb)
	defer srv.Close()
	defer lb.Close()

	client, err := leaderboard.NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updates := make(chan []leaderboard.Record, 8)
	done := make(chan error, 1)
	go func() {
		done <- client.Watch(ctx, func(records []leaderboard.Record) {
			updates <- records
		})
	}()

	select {
	case first := <-updates:
		assert.Empty(t, first)
	case <-ctx.Done():
		t.Fatal("no initial list")
	}

	require.NoError(t, client.Submit(ctx, "ada", 42))

	select {
	case next := <-updates:
		assert.Equal(t, []leaderboard.Record{{Name: "ada", Score: 42}}, next)
	case <-ctx.Done():
		t.Fatal("no update after submit")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
