// Package store persists the handful of per-player settings the game keeps
// between runs: the local high score, the chosen difficulty and the display
// name used for leaderboard posts.
package store

import "context"

// KV is a string-keyed value store. A missing key is reported with
// ok == false and a nil error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
