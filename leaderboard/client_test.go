package leaderboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/plus3/rowbreak/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu      sync.Mutex
	queries []url.Values
}

func (c *capture) handler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		c.queries = append(c.queries, r.URL.Query())
		c.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (c *capture) all() []url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]url.Values(nil), c.queries...)
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := leaderboard.NewClient("ftp://scores.test/")
	assert.Error(t, err)
	_, err = leaderboard.NewClient("://nope")
	assert.Error(t, err)
}

func TestSubmitSendsQuery(t *testing.T) {
	c := &capture{}
	srv := httptest.NewServer(c.handler(http.StatusOK, "ignored"))
	defer srv.Close()

	client, err := leaderboard.NewClient(srv.URL + "/exec?token=abc")
	require.NoError(t, err)

	require.NoError(t, client.Submit(context.Background(), "ada lovelace", 42))

	queries := c.all()
	require.Len(t, queries, 1)
	assert.Equal(t, "ada lovelace", queries[0].Get("name"))
	assert.Equal(t, "42", queries[0].Get("score"))
	assert.Equal(t, "abc", queries[0].Get("token"))
}

func TestSubmitReportsStatus(t *testing.T) {
	srv := httptest.NewServer((&capture{}).handler(http.StatusInternalServerError, ""))
	defer srv.Close()

	client, err := leaderboard.NewClient(srv.URL)
	require.NoError(t, err)
	assert.Error(t, client.Submit(context.Background(), "ada", 1))
}

func TestNotifyIsBestEffort(t *testing.T) {
	c := &capture{}
	srv := httptest.NewServer(c.handler(http.StatusOK, ""))
	defer srv.Close()

	client, err := leaderboard.NewClient(srv.URL)
	require.NoError(t, err)
	client.Notify("ada", 7)
	client.Wait()
	require.Len(t, c.all(), 1)

	srv.Close()
	down, err := leaderboard.NewClient(srv.URL, leaderboard.WithTimeout(100*time.Millisecond))
	require.NoError(t, err)
	down.Notify("ada", 8)
	down.Wait()
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer((&capture{}).handler(http.StatusOK, `[{"name":"bo","score":3},{"name":"ada","score":42}]`))
	defer srv.Close()

	client, err := leaderboard.NewClient(srv.URL, leaderboard.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	records, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Record{{Name: "bo", Score: 3}, {Name: "ada", Score: 42}}, records)
}

func TestFetchUnavailable(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"malformed": (&capture{}).handler(http.StatusOK, `{"error":"quota"}`),
		"status":    (&capture{}).handler(http.StatusBadGateway, `[]`),
	}
	for name, h := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			client, err := leaderboard.NewClient(srv.URL)
			require.NoError(t, err)
			_, err = client.Fetch(context.Background())
			assert.ErrorIs(t, err, leaderboard.ErrUnavailable)
		})
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client, err := leaderboard.NewClient(srv.URL)
	require.NoError(t, err)
	_, err = client.Fetch(context.Background())
	assert.ErrorIs(t, err, leaderboard.ErrUnavailable)
}
