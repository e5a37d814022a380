package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/roster"
)

func testTeams(t *testing.T) (*football.Team, *football.Team) {
	t.Helper()
	home, err := roster.Generate("Home", rng.New(1))
	require.NoError(t, err)
	away, err := roster.Generate("Away", rng.New(2))
	require.NoError(t, err)
	return home, away
}

func TestNewSimulator_Validation(t *testing.T) {
	home, away := testTeams(t)

	_, err := NewSimulator(SimulationConfig{NumSimulations: 0}, home, away)
	assert.ErrorIs(t, err, ErrNoSimulations)

	_, err = NewSimulator(SimulationConfig{NumSimulations: 1}, nil, away)
	assert.ErrorIs(t, err, football.ErrEmptyRoster)

	broken := away.Clone()
	broken.Staff = &football.CoachingStaff{}
	_, err = NewSimulator(SimulationConfig{NumSimulations: 1}, home, broken)
	assert.ErrorIs(t, err, football.ErrIncompleteStaff)
}

func TestRun_Aggregates(t *testing.T) {
	home, away := testTeams(t)
	sim, err := NewSimulator(SimulationConfig{NumSimulations: 20, SimulationWorkers: 4, Seed: 9}, home, away)
	require.NoError(t, err)

	progress := make(chan SimulationProgress, 100)
	result, err := sim.Run(context.Background(), progress)
	require.NoError(t, err)

	assert.Equal(t, 20, result.NumSimulations)
	assert.Equal(t, int64(9), result.Seed)
	assert.InDelta(t, 1.0, result.HomeWinProbability+result.AwayWinProbability+result.TieProbability, 1e-9)
	assert.GreaterOrEqual(t, result.HomeScore.Max, result.HomeScore.Mean)
	assert.LessOrEqual(t, result.HomeScore.Min, result.HomeScore.Median)
	assert.InDelta(t, result.HomeScore.Mean-result.AwayScore.Mean, result.Margin.Mean, 1e-9)
	assert.Greater(t, result.Plays.Min, 0.0)
	assert.NotEmpty(t, progress)

	// The source teams are never mutated by the batch.
	for _, p := range home.Players {
		assert.Equal(t, 100.0, p.Energy)
	}
}

func TestRun_ReproducibleAcrossWorkerCounts(t *testing.T) {
	home, away := testTeams(t)

	run := func(workers int) *SimulationResult {
		sim, err := NewSimulator(SimulationConfig{NumSimulations: 12, SimulationWorkers: workers, Seed: 123}, home, away)
		require.NoError(t, err)
		result, err := sim.Run(context.Background(), nil)
		require.NoError(t, err)
		return result
	}

	a, b := run(1), run(6)
	assert.Equal(t, a.HomeScore, b.HomeScore)
	assert.Equal(t, a.AwayScore, b.AwayScore)
	assert.Equal(t, a.HomeWinProbability, b.HomeWinProbability)
}

func TestRun_Cancelled(t *testing.T) {
	home, away := testTeams(t)
	sim, err := NewSimulator(SimulationConfig{NumSimulations: 50, SimulationWorkers: 2, Seed: 1}, home, away)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   ScoreStats
	}{
		{"empty", nil, ScoreStats{}},
		{"single", []float64{7}, ScoreStats{Mean: 7, Median: 7, Min: 7, Max: 7, Percentile25: 7, Percentile75: 7, Percentile90: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, summarize(tt.values))
		})
	}

	got := summarize([]float64{21, 3, 14, 7, 10})
	assert.Equal(t, 3.0, got.Min)
	assert.Equal(t, 21.0, got.Max)
	assert.InDelta(t, 11.0, got.Mean, 1e-9)
	assert.Equal(t, 10.0, got.Median)
	assert.Greater(t, got.StandardDeviation, 0.0)
}
