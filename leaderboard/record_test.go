package leaderboard_test

import (
	"context"
	"math"
	"testing"

	"github.com/plus3/rowbreak/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankedOrdersByScore(t *testing.T) {
	in := []leaderboard.Record{
		{Name: "bo", Score: 10},
		{Name: "ada", Score: 42},
		{Name: "cy", Score: 10},
		{Name: "di", Score: 99},
	}

	ranked := leaderboard.Ranked(in)

	assert.Equal(t, []leaderboard.Record{
		{Name: "di", Score: 99},
		{Name: "ada", Score: 42},
		{Name: "bo", Score: 10},
		{Name: "cy", Score: 10},
	}, ranked)
	assert.Equal(t, "bo", in[0].Name, "input must not be reordered")
	assert.Equal(t, "di: 99", ranked[0].String())
}

func TestRankedExtremeScores(t *testing.T) {
	records, err := leaderboard.Decode([]byte(`[
		{"name":"lo","score":-9223372036854775808},
		{"name":"hi","score":9223372036854775807},
		{"name":"mid","score":1}
	]`))
	require.NoError(t, err)

	want := []leaderboard.Record{
		{Name: "hi", Score: math.MaxInt},
		{Name: "mid", Score: 1},
		{Name: "lo", Score: math.MinInt},
	}
	assert.Equal(t, want, leaderboard.Ranked(records))

	scores := leaderboard.NewMemoryScores()
	ctx := context.Background()
	for _, r := range records {
		require.NoError(t, scores.Add(ctx, r))
	}
	top, err := scores.Top(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, want, top)
}

func TestDecode(t *testing.T) {
	records, err := leaderboard.Decode([]byte(`[{"name":"ada","score":42},{"name":"bo","score":7,"ts":"x"}]`))
	require.NoError(t, err)
	assert.Equal(t, []leaderboard.Record{{Name: "ada", Score: 42}, {Name: "bo", Score: 7}}, records)

	records, err = leaderboard.Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":      `<html>oops</html>`,
		"object":        `{"name":"ada","score":1}`,
		"null":          `null`,
		"missing score": `[{"name":"ada"}]`,
		"missing name":  `[{"score":3}]`,
		"fractional":    `[{"name":"ada","score":1.5}]`,
		"wrong type":    `[{"name":"ada","score":true}]`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := leaderboard.Decode([]byte(body))
			assert.ErrorIs(t, err, leaderboard.ErrUnavailable)
		})
	}
}
