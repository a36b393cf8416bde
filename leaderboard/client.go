package leaderboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plus3/rowbreak/logging"
	"go.uber.org/zap"
)

// maxResponseBytes caps how much of a leaderboard response is read.
const maxResponseBytes = 1 << 20

// Client talks to a leaderboard endpoint: GET with name and score query
// parameters stores a score, GET without parameters returns the list.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger

	wg sync.WaitGroup
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every Notify request. Default 5s.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for background failures.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the endpoint at rawURL.
func NewClient(rawURL string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("leaderboard url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("leaderboard url %q: scheme must be http or https", rawURL)
	}

	c := &Client{
		base:    base,
		http:    http.DefaultClient,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logging.OrNop(c.log).Named("leaderboard")
	return c, nil
}

// Submit posts one score and waits for the response status. The body is
// not read.
func (c *Client) Submit(ctx context.Context, name string, score int) error {
	u := *c.base
	q := u.Query()
	q.Set("name", name)
	q.Set("score", strconv.Itoa(score))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit score: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode >= 300 {
		return fmt.Errorf("submit score: %s", resp.Status)
	}
	return nil
}

// Notify submits a score in the background. Delivery is best effort: the
// request is not retried and failures are only logged.
func (c *Client) Notify(name string, score int) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Submit(ctx, name, score); err != nil {
			c.log.Debug("score not posted", zap.String("name", name), zap.Int("score", score), zap.Error(err))
			return
		}
		c.log.Info("score posted", zap.String("name", name), zap.Int("score", score))
	}()
}

// Wait blocks until every Notify started so far has finished.
func (c *Client) Wait() {
	c.wg.Wait()
}

// Fetch returns the leaderboard in the order the endpoint sent it. Network
// failures, error statuses and malformed bodies all wrap ErrUnavailable.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Decode(body)
}

// Watch subscribes to the live feed of a self-hosted leaderboard and calls
// fn with every list pushed until ctx is cancelled or the connection drops.
func (c *Client) Watch(ctx context.Context, fn func([]Record)) error {
	u := *c.base
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/live"
	u.RawQuery = ""

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer ws.Close()

	stop := context.AfterFunc(ctx, func() { _ = ws.Close() })
	defer stop()

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		records, err := Decode(payload)
		if err != nil {
			c.log.Debug("bad live update", zap.Error(err))
			continue
		}
		fn(records)
	}
}
