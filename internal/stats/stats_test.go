package stats

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/roster"
	"github.com/stitts-dev/gridiron-sim/pkg/database"
)

func playMatch(t *testing.T, seed int64, rec engine.Recorder) (*engine.Match, engine.Summary) {
	t.Helper()
	home, err := roster.Generate("Home", rng.New(seed))
	require.NoError(t, err)
	away, err := roster.Generate("Away", rng.New(seed+1))
	require.NoError(t, err)

	m, err := engine.NewMatch(home, away, rng.New(seed+2), engine.Config{}, rec)
	require.NoError(t, err)
	return m, m.Run()
}

func TestMemoryRecorder_CapturesMatch(t *testing.T) {
	rec := NewMemoryRecorder()
	m, summary := playMatch(t, 10, rec)

	assert.Len(t, rec.Plays(), summary.Plays)
	points := rec.Points()
	assert.Equal(t, summary.HomeScore, points["Home"])
	assert.Equal(t, summary.AwayScore, points["Away"])

	drives := rec.Drives()
	require.NotEmpty(t, drives)
	assert.Equal(t, engine.DriveEndOfGame, drives[len(drives)-1].Result)
	for _, p := range rec.Plays() {
		assert.Equal(t, m.ID, p.MatchID)
	}
}

func TestMultiRecorder_FansOut(t *testing.T) {
	a, b := NewMemoryRecorder(), NewMemoryRecorder()
	_, summary := playMatch(t, 20, MultiRecorder{a, b})

	assert.Len(t, a.Plays(), summary.Plays)
	assert.Equal(t, a.Plays(), b.Plays())
	assert.Equal(t, a.Scores(), b.Scores())
	assert.Equal(t, a.Drives(), b.Drives())
	assert.NoError(t, MultiRecorder{a, b}.Flush(context.Background()))
}

func TestGormRecorder_Flush(t *testing.T) {
	db, err := database.NewConnection(":memory:", false)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, models.AutoMigrate(db.DB))

	rec := NewGormRecorder(db.DB, 50)
	m, summary := playMatch(t, 30, rec)
	assert.Greater(t, rec.Pending(), summary.Plays)

	require.NoError(t, rec.Flush(context.Background()))
	assert.Equal(t, 0, rec.Pending())

	var plays int64
	require.NoError(t, db.Model(&models.PlayRecord{}).Where("match_id = ?", m.ID).Count(&plays).Error)
	assert.Equal(t, int64(summary.Plays), plays)

	var scores []models.ScoreRecord
	require.NoError(t, db.Where("match_id = ?", m.ID).Find(&scores).Error)
	total := 0
	for _, s := range scores {
		total += s.Points
	}
	assert.Equal(t, summary.HomeScore+summary.AwayScore, total)

	var lastDrive models.DriveRecord
	require.NoError(t, db.Where("match_id = ?", m.ID).Order("id desc").First(&lastDrive).Error)
	assert.Equal(t, string(engine.DriveEndOfGame), lastDrive.Result)

	// A second flush with nothing buffered is a no-op.
	assert.NoError(t, rec.Flush(context.Background()))
}

func TestStreamRecorder_BreakerOpensOnUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rec := NewStreamRecorder(client, StreamConfig{StreamName: "test_events", Timeout: time.Minute})
	rec.RecordPlay(engine.PlayEvent{Number: 1, Type: engine.PlayRun})
	rec.RecordScore(engine.ScoreEvent{Team: "Home", Points: 6, Type: engine.ScoreTouchdown})
	rec.RecordDrive(engine.DriveEvent{Team: "Home", Result: engine.DriveTouchdown})
	require.Equal(t, 3, rec.Pending())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		err := rec.Flush(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}
	assert.Equal(t, gobreaker.StateOpen, rec.State())

	err := rec.Flush(ctx)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 3, rec.Pending(), "events are kept for a later retry")
}

func TestStreamRecorder_PendingIsCapped(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	tests := []struct {
		name        string
		events      int
		wantPending int
		wantDropped int
	}{
		{"under cap", 4, 4, 0},
		{"at cap", 5, 5, 0},
		{"over cap", 12, 5, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewStreamRecorder(client, StreamConfig{MaxPending: 5, Timeout: time.Minute})
			for i := 1; i <= tt.events; i++ {
				rec.RecordPlay(engine.PlayEvent{Number: i})
			}
			assert.Equal(t, tt.wantPending, rec.Pending())
			assert.Equal(t, tt.wantDropped, rec.Dropped())
		})
	}
}

func TestStreamRecorder_OpenBreakerKeepsNewestEvents(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rec := NewStreamRecorder(client, StreamConfig{MaxPending: 10, Timeout: time.Minute})
	ctx := context.Background()
	for match := 0; match < 20; match++ {
		for i := 1; i <= 5; i++ {
			rec.RecordPlay(engine.PlayEvent{Number: match*5 + i})
		}
		require.Error(t, rec.Flush(ctx))
		require.LessOrEqual(t, rec.Pending(), 10)
	}
	assert.Equal(t, gobreaker.StateOpen, rec.State())
	assert.Equal(t, 90, rec.Dropped())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.pending, 10)
	assert.Equal(t, 91, rec.pending[0].payload.(engine.PlayEvent).Number)
	assert.Equal(t, 100, rec.pending[9].payload.(engine.PlayEvent).Number)
}

func TestStreamRecorder_EmptyFlushSkipsRedis(t *testing.T) {
	rec := NewStreamRecorder(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), StreamConfig{})
	assert.NoError(t, rec.Flush(context.Background()))
	assert.Equal(t, gobreaker.StateClosed, rec.State())
}
