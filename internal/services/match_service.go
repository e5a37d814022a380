package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/roster"
	"github.com/stitts-dev/gridiron-sim/internal/simulator"
	"github.com/stitts-dev/gridiron-sim/internal/stats"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrTooManySimulations = errors.New("too many simulations requested")
	ErrNoSimulationRuns   = errors.New("at least one simulation run is required")
	ErrInvalidFixture     = errors.New("home and away team names must be set and differ")
)

// MatchRequest names the fixture to play. A zero seed picks one from the
// configured MATCH_SEED, or the clock when that is also zero.
type MatchRequest struct {
	Home string `json:"home"`
	Away string `json:"away"`
	Seed int64  `json:"seed"`
}

// SimulationRequest asks for a batch of independent matches.
type SimulationRequest struct {
	Home string `json:"home"`
	Away string `json:"away"`
	Runs int    `json:"runs"`
	Seed int64  `json:"seed"`
}

// MatchService plays matches, persists their event log and runs batches.
type MatchService struct {
	repo   *MatchRepository
	cache  *CacheService
	stream *stats.StreamRecorder
	cfg    *config.Config
	log    *logrus.Entry
}

// NewMatchService wires the service. cache and stream may be nil when Redis
// is not configured.
func NewMatchService(repo *MatchRepository, cache *CacheService, stream *stats.StreamRecorder, cfg *config.Config) *MatchService {
	return &MatchService{
		repo:   repo,
		cache:  cache,
		stream: stream,
		cfg:    cfg,
		log:    logger.WithService("match-service"),
	}
}

func (s *MatchService) engineConfig() engine.Config {
	return engine.Config{
		FatigueShape:    s.cfg.FatigueShape,
		EnergyIntensity: s.cfg.EnergyIntensity,
	}
}

func (s *MatchService) seed(requested int64) int64 {
	switch {
	case requested != 0:
		return requested
	case s.cfg.MatchSeed != 0:
		return s.cfg.MatchSeed
	}
	return time.Now().UnixNano()
}

// fixtureNames trims the requested names and fills blanks from config.
func (s *MatchService) fixtureNames(home, away string) (string, string, error) {
	home, away = strings.TrimSpace(home), strings.TrimSpace(away)
	if home == "" {
		home = s.cfg.HomeTeam
	}
	if away == "" {
		away = s.cfg.AwayTeam
	}
	if home == "" || away == "" || home == away {
		return "", "", ErrInvalidFixture
	}
	return home, away, nil
}

// fixture derives both rosters and the match source from one seed, so a
// seed always reproduces the same match. Names must already be resolved.
func (s *MatchService) fixture(home, away string, seed int64) (*football.Team, *football.Team, *rng.Rand, error) {
	master := rng.New(seed)
	homeTeam, err := roster.Generate(home, rng.New(master.Int63()))
	if err != nil {
		return nil, nil, nil, err
	}
	awayTeam, err := roster.Generate(away, rng.New(master.Int63()))
	if err != nil {
		return nil, nil, nil, err
	}
	return homeTeam, awayTeam, rng.New(master.Int63()), nil
}

// PlayMatch runs one full match and stores it with its play-by-play.
func (s *MatchService) PlayMatch(ctx context.Context, req MatchRequest) (*models.MatchRecord, error) {
	homeName, awayName, err := s.fixtureNames(req.Home, req.Away)
	if err != nil {
		return nil, err
	}
	seed := s.seed(req.Seed)
	home, away, src, err := s.fixture(homeName, awayName, seed)
	if err != nil {
		return nil, err
	}

	events := stats.NewGormRecorder(s.repo.DB(), 0)
	recorders := stats.MultiRecorder{events}
	if s.stream != nil {
		recorders = append(recorders, s.stream)
	}

	m, err := engine.NewMatch(home, away, src, s.engineConfig(), recorders)
	if err != nil {
		return nil, err
	}

	record := &models.MatchRecord{
		ID:       m.ID,
		HomeTeam: home.Name,
		AwayTeam: away.Name,
		Seed:     seed,
		Status:   models.MatchStatusRunning,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	summary := m.Run()

	if err := events.Flush(ctx); err != nil {
		record.Status = models.MatchStatusFailed
		if saveErr := s.repo.Save(ctx, record); saveErr != nil {
			s.log.WithError(saveErr).Error("Failed to mark match as failed")
		}
		return nil, fmt.Errorf("failed to store match events: %w", err)
	}
	if s.stream != nil {
		if err := s.stream.Flush(ctx); err != nil {
			s.log.WithError(err).WithField("match_id", m.ID).Warn("Match events not published to stream")
		}
	}

	if err := record.Complete(summary); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"match_id":   m.ID,
		"home":       summary.Home,
		"away":       summary.Away,
		"home_score": summary.HomeScore,
		"away_score": summary.AwayScore,
		"plays":      summary.Plays,
		"seed":       seed,
	}).Info("Match completed")

	return s.GetMatch(ctx, m.ID)
}

// GetMatch loads a stored match, reading through the cache when present.
func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*models.MatchRecord, error) {
	key := MatchCacheKey(id)
	if s.cache != nil {
		var cached models.MatchRecord
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && record.Status == models.MatchStatusCompleted {
		if err := s.cache.Set(ctx, key, record, s.cfg.CacheTTL); err != nil {
			s.log.WithError(err).Debug("Failed to cache match")
		}
	}
	return record, nil
}

// GetPlays returns one page of a match's play-by-play.
func (s *MatchService) GetPlays(ctx context.Context, id uuid.UUID, page, perPage int) ([]models.PlayRecord, int64, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	return s.repo.Plays(ctx, id, (page-1)*perPage, perPage)
}

// Simulate runs a Monte Carlo batch for the fixture. Seeded batches are
// cached since they always produce the same result.
func (s *MatchService) Simulate(ctx context.Context, req SimulationRequest) (*simulator.SimulationResult, error) {
	if req.Runs < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoSimulationRuns, req.Runs)
	}
	if req.Runs > s.cfg.MaxSimulations {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManySimulations, req.Runs, s.cfg.MaxSimulations)
	}
	homeName, awayName, err := s.fixtureNames(req.Home, req.Away)
	if err != nil {
		return nil, err
	}

	cacheable := req.Seed != 0 && s.cache != nil
	key := SimulationCacheKey(homeName, awayName, req.Seed, req.Runs)
	if cacheable {
		var cached simulator.SimulationResult
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.log.WithField("key", key).Debug("Simulation cache hit")
			return &cached, nil
		}
	}

	seed := s.seed(req.Seed)
	home, away, src, err := s.fixture(homeName, awayName, seed)
	if err != nil {
		return nil, err
	}

	sim, err := simulator.NewSimulator(simulator.SimulationConfig{
		NumSimulations:    req.Runs,
		SimulationWorkers: s.cfg.SimulationWorkers,
		Seed:              src.Int63() | 1, // zero would mean clock seeding
		Match:             s.engineConfig(),
	}, home, away)
	if err != nil {
		return nil, err
	}

	result, err := sim.Run(ctx, nil)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.SetWithRetry(ctx, key, result, s.cfg.CacheTTL, 3); err != nil {
			s.log.WithError(err).Warn("Failed to cache simulation result")
		}
	}
	return result, nil
}
