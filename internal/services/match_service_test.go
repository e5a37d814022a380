package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
	"github.com/stitts-dev/gridiron-sim/pkg/database"
)

func newTestService(t *testing.T) *MatchService {
	t.Helper()
	db, err := database.NewConnection(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, models.AutoMigrate(db.DB))

	cfg := &config.Config{
		FatigueShape:      0.15,
		EnergyIntensity:   0.8,
		HomeTeam:          "Home",
		AwayTeam:          "Away",
		MaxSimulations:    50,
		SimulationWorkers: 2,
		CacheTTL:          time.Minute,
	}
	return NewMatchService(NewMatchRepository(db.DB), nil, nil, cfg)
}

func TestPlayMatch_PersistsMatchAndEvents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record, err := svc.PlayMatch(ctx, MatchRequest{Home: "Bears", Away: "Lions", Seed: 5})
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, record.Status)
	assert.Equal(t, "Bears", record.HomeTeam)
	assert.Equal(t, int64(5), record.Seed)
	assert.Greater(t, record.Plays, 0)

	final, err := record.Final()
	require.NoError(t, err)
	assert.Equal(t, 0.0, final.TimeRemaining)
	assert.Equal(t, engine.Quarters, final.Quarter)

	total := 0
	for _, s := range record.Scores {
		total += s.Points
	}
	assert.Equal(t, record.HomeScore+record.AwayScore, total)
	require.NotEmpty(t, record.Drives)
	assert.Equal(t, string(engine.DriveEndOfGame), record.Drives[len(record.Drives)-1].Result)

	plays, count, err := svc.GetPlays(ctx, record.ID, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(record.Plays), count)
	require.Len(t, plays, 10)
	assert.Equal(t, 11, plays[0].Number)
}

func TestPlayMatch_SeedReproducesResult(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.PlayMatch(ctx, MatchRequest{Seed: 99})
	require.NoError(t, err)
	b, err := svc.PlayMatch(ctx, MatchRequest{Seed: 99})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "Home", a.HomeTeam)
	assert.Equal(t, a.HomeScore, b.HomeScore)
	assert.Equal(t, a.AwayScore, b.AwayScore)
	assert.Equal(t, a.Plays, b.Plays)
}

func TestPlayMatch_InvalidFixture(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.PlayMatch(context.Background(), MatchRequest{Home: "Same", Away: "Same", Seed: 1})
	assert.ErrorIs(t, err, ErrInvalidFixture)
}

func TestGetMatch_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetMatch(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrMatchNotFound)

	_, _, err = svc.GetPlays(ctx, uuid.New(), 1, 10)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestSimulate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		runs    int
		wantErr error
	}{
		{"zero runs", 0, ErrNoSimulationRuns},
		{"negative runs", -4, ErrNoSimulationRuns},
		{"over the limit", 51, ErrTooManySimulations},
		{"within limit", 8, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Simulate(ctx, SimulationRequest{Home: "A", Away: "B", Runs: tt.runs, Seed: 3})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runs, result.NumSimulations)
			assert.Equal(t, "A", result.Home)
		})
	}
}

func TestSimulate_BlankNamesResolveToDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	blank, err := svc.Simulate(ctx, SimulationRequest{Home: "", Away: "  ", Runs: 4, Seed: 21})
	require.NoError(t, err)
	named, err := svc.Simulate(ctx, SimulationRequest{Home: "Home", Away: "Away", Runs: 4, Seed: 21})
	require.NoError(t, err)

	assert.Equal(t, "Home", blank.Home)
	assert.Equal(t, "Away", blank.Away)
	assert.Equal(t, named.HomeScore, blank.HomeScore)
	assert.Equal(t, named.AwayScore, blank.AwayScore)
}

func TestFixtureNames(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name               string
		home, away         string
		wantHome, wantAway string
		wantErr            error
	}{
		{"defaults", "", "", "Home", "Away", nil},
		{"trimmed", "  Bears ", "Lions\t", "Bears", "Lions", nil},
		{"away defaults", "Bears", "", "Bears", "Away", nil},
		{"default collides", "Away", "", "", "", ErrInvalidFixture},
		{"same team", "Bears", " Bears", "", "", ErrInvalidFixture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home, away, err := svc.fixtureNames(tt.home, tt.away)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHome, home)
			assert.Equal(t, tt.wantAway, away)
		})
	}
}

func TestCacheKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2f0e-8a4b-4c61-9d2e-3b7a5c9e1f00")
	assert.Equal(t, "match:6f1c2f0e-8a4b-4c61-9d2e-3b7a5c9e1f00", MatchCacheKey(id))
	assert.Equal(t, "simulation:A:B:7:100", SimulationCacheKey("A", "B", 7, 100))
}
