package simulator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

var ErrNoSimulations = errors.New("number of simulations must be positive")

// SimulationConfig represents configuration for a batch of matches
type SimulationConfig struct {
	NumSimulations    int
	SimulationWorkers int
	// Seed drives every per-match seed. Zero seeds from the clock.
	Seed  int64
	Match engine.Config
}

// SimulationRun is the outcome of one match in the batch
type SimulationRun struct {
	Index     int
	Seed      int64
	HomeScore int
	AwayScore int
	Plays     int
}

// ScoreStats summarizes one per-match quantity across the batch
type ScoreStats struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standard_deviation"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Percentile25      float64 `json:"percentile_25"`
	Percentile75      float64 `json:"percentile_75"`
	Percentile90      float64 `json:"percentile_90"`
}

// SimulationResult represents the aggregate results of a batch
type SimulationResult struct {
	ID                 uuid.UUID     `json:"id"`
	Home               string        `json:"home"`
	Away               string        `json:"away"`
	Seed               int64         `json:"seed"`
	NumSimulations     int           `json:"num_simulations"`
	HomeWinProbability float64       `json:"home_win_probability"`
	AwayWinProbability float64       `json:"away_win_probability"`
	TieProbability     float64       `json:"tie_probability"`
	HomeScore          ScoreStats    `json:"home_score"`
	AwayScore          ScoreStats    `json:"away_score"`
	Margin             ScoreStats    `json:"margin"`
	Plays              ScoreStats    `json:"plays"`
	Duration           time.Duration `json:"duration"`
}

// SimulationProgress represents progress of a batch
type SimulationProgress struct {
	SimulationID           uuid.UUID
	TotalSimulations       int
	Completed              int
	StartTime              time.Time
	EstimatedTimeRemaining time.Duration
}

// Simulator plays the same fixture many times on independent copies of
// the two teams.
type Simulator struct {
	config SimulationConfig
	home   *football.Team
	away   *football.Team
}

// NewSimulator validates both teams up front so workers never fail on setup.
func NewSimulator(config SimulationConfig, home, away *football.Team) (*Simulator, error) {
	if config.NumSimulations <= 0 {
		return nil, ErrNoSimulations
	}
	if home == nil || away == nil {
		return nil, fmt.Errorf("new simulator: %w", football.ErrEmptyRoster)
	}
	if err := home.Validate(); err != nil {
		return nil, fmt.Errorf("home roster: %w", err)
	}
	if err := away.Validate(); err != nil {
		return nil, fmt.Errorf("away roster: %w", err)
	}
	return &Simulator{config: config, home: home, away: away}, nil
}

// Run plays NumSimulations matches on a worker pool. Per-match seeds are
// drawn up front, so the result for a given seed does not depend on the
// number of workers.
func (s *Simulator) Run(ctx context.Context, progressChan chan<- SimulationProgress) (*SimulationResult, error) {
	numWorkers := runtime.NumCPU()
	if s.config.SimulationWorkers > 0 {
		numWorkers = s.config.SimulationWorkers
	}
	if numWorkers > s.config.NumSimulations {
		numWorkers = s.config.NumSimulations
	}

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	master := rng.New(seed)

	id := uuid.New()
	log := logger.WithSimulationContext(id.String(), s.config.NumSimulations)
	start := time.Now()

	jobs := make(chan SimulationRun, s.config.NumSimulations)
	results := make(chan SimulationRun, s.config.NumSimulations)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go s.simulationWorker(ctx, jobs, results, &wg)
	}

	for i := 0; i < s.config.NumSimulations; i++ {
		jobs <- SimulationRun{Index: i, Seed: master.Int63()}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	runs := make([]SimulationRun, 0, s.config.NumSimulations)
	for run := range results {
		runs = append(runs, run)
		if progressChan != nil {
			s.reportProgress(id, start, len(runs), progressChan)
		}
	}

	if err := ctx.Err(); err != nil {
		log.WithField("completed", len(runs)).Warn("Simulation cancelled")
		return nil, fmt.Errorf("simulation cancelled after %d runs: %w", len(runs), err)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Index < runs[j].Index })
	result := s.aggregateResults(id, seed, runs)
	result.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"home_win_probability": result.HomeWinProbability,
		"away_win_probability": result.AwayWinProbability,
		"duration":             result.Duration,
	}).Info("Simulation completed")
	return result, nil
}

func (s *Simulator) simulationWorker(ctx context.Context, jobs <-chan SimulationRun, results chan<- SimulationRun, wg *sync.WaitGroup) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			continue
		}
		m, err := engine.NewMatch(s.home.Clone(), s.away.Clone(), rng.New(job.Seed), s.config.Match, nil)
		if err != nil {
			// Both teams were validated in NewSimulator.
			logger.GetLogger().WithError(err).Error("Failed to set up simulated match")
			continue
		}
		summary := m.Run()
		job.HomeScore = summary.HomeScore
		job.AwayScore = summary.AwayScore
		job.Plays = summary.Plays
		results <- job
	}
}

func (s *Simulator) reportProgress(id uuid.UUID, start time.Time, completed int, progressChan chan<- SimulationProgress) {
	elapsed := time.Since(start)
	rate := float64(completed) / elapsed.Seconds()
	remaining := s.config.NumSimulations - completed
	var eta time.Duration
	if rate > 0 {
		eta = time.Duration(float64(remaining) / rate * float64(time.Second))
	}

	progress := SimulationProgress{
		SimulationID:           id,
		TotalSimulations:       s.config.NumSimulations,
		Completed:              completed,
		StartTime:              start,
		EstimatedTimeRemaining: eta,
	}

	select {
	case progressChan <- progress:
	default:
		// Don't block if channel is full
	}
}

func (s *Simulator) aggregateResults(id uuid.UUID, seed int64, runs []SimulationRun) *SimulationResult {
	n := len(runs)
	home := make([]float64, n)
	away := make([]float64, n)
	margin := make([]float64, n)
	plays := make([]float64, n)

	var homeWins, awayWins, ties int
	for i, r := range runs {
		home[i] = float64(r.HomeScore)
		away[i] = float64(r.AwayScore)
		margin[i] = float64(r.HomeScore - r.AwayScore)
		plays[i] = float64(r.Plays)
		switch {
		case r.HomeScore > r.AwayScore:
			homeWins++
		case r.AwayScore > r.HomeScore:
			awayWins++
		default:
			ties++
		}
	}

	result := &SimulationResult{
		ID:             id,
		Home:           s.home.Name,
		Away:           s.away.Name,
		Seed:           seed,
		NumSimulations: n,
		HomeScore:      summarize(home),
		AwayScore:      summarize(away),
		Margin:         summarize(margin),
		Plays:          summarize(plays),
	}
	if n > 0 {
		result.HomeWinProbability = float64(homeWins) / float64(n)
		result.AwayWinProbability = float64(awayWins) / float64(n)
		result.TieProbability = float64(ties) / float64(n)
	}
	return result
}

// summarize sorts values in place.
func summarize(values []float64) ScoreStats {
	if len(values) == 0 {
		return ScoreStats{}
	}
	sort.Float64s(values)
	out := ScoreStats{
		Mean:         stat.Mean(values, nil),
		Median:       stat.Quantile(0.5, stat.Empirical, values, nil),
		Min:          floats.Min(values),
		Max:          floats.Max(values),
		Percentile25: stat.Quantile(0.25, stat.Empirical, values, nil),
		Percentile75: stat.Quantile(0.75, stat.Empirical, values, nil),
		Percentile90: stat.Quantile(0.90, stat.Empirical, values, nil),
	}
	if len(values) > 1 {
		out.StandardDeviation = stat.StdDev(values, nil)
	}
	return out
}
