// Package leaderboard posts finished scores to a remote leaderboard, reads
// the ranked list back, and serves a self-hosted leaderboard endpoint with
// the same wire format.
package leaderboard

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnavailable is returned when the leaderboard cannot be reached or
// answers with something other than a list of records.
var ErrUnavailable = errors.New("leaderboard: unavailable")

// MaxNameLength bounds stored player names, in runes.
const MaxNameLength = 32

// Record is one leaderboard entry.
type Record struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %d", r.Name, r.Score)
}

// Ranked returns a copy of records ordered by score, highest first. Ties
// keep their original order.
func Ranked(records []Record) []Record {
	out := append(make([]Record, 0, len(records)), records...)
	slices.SortStableFunc(out, func(a, b Record) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// Decode parses a JSON array of records. Anything else, including records
// without a name, yields ErrUnavailable.
func Decode(data []byte) ([]Record, error) {
	var raw []struct {
		Name  *string      `json:"name"`
		Score *json.Number `json:"score"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not a list", ErrUnavailable)
	}

	records := make([]Record, 0, len(raw))
	for i, r := range raw {
		if r.Name == nil || r.Score == nil {
			return nil, fmt.Errorf("%w: record %d incomplete", ErrUnavailable, i)
		}
		score, err := r.Score.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d score %q", ErrUnavailable, i, r.Score.String())
		}
		records = append(records, Record{Name: *r.Name, Score: int(score)})
	}
	return records, nil
}

// cleanName trims name and cuts it to MaxNameLength runes.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}
	return name
}
