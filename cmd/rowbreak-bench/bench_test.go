package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/plus3/rowbreak/grid"
	"github.com/plus3/rowbreak/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestShortestColumn(t *testing.T) {
	assert.Equal(t, 0, shortestColumn(nil, 5))

	blocks := []grid.Block{
		{Column: 0, Row: 0},
		{Column: 1, Row: 0},
		{Column: 1, Row: 1},
		{Column: 3, Row: 0},
	}
	assert.Equal(t, 2, shortestColumn(blocks, 5))
}

func TestBenchPlaysGames(t *testing.T) {
	report, err := bench(context.Background(), zap.NewNop(), 3, 3, 42, 20, sim.DefaultStep)
	require.NoError(t, err)

	assert.Len(t, report.Scores, 3)
	assert.Positive(t, report.TotalSteps)
	assert.Positive(t, report.TotalThrows)
	require.Len(t, report.Systems, 2)
	assert.Equal(t, "fallSystem", report.Systems[0].Name)
	assert.Equal(t, "botSystem", report.Systems[1].Name)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "# Row Break Bench Report")
	assert.Contains(t, buf.String(), "fallSystem")
}

func TestBenchWithoutBot(t *testing.T) {
	report, err := bench(context.Background(), zap.NewNop(), 1, 5, 1, 0, sim.DefaultStep)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, report.Scores)
	assert.Zero(t, report.TotalThrows)
}

func TestBenchRejectsBadDifficulty(t *testing.T) {
	_, err := bench(context.Background(), zap.NewNop(), 1, 9, 1, 0, sim.DefaultStep)
	assert.Error(t, err)
}
