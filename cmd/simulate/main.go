package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/football"
	"github.com/stitts-dev/gridiron-sim/internal/rng"
	"github.com/stitts-dev/gridiron-sim/internal/roster"
	"github.com/stitts-dev/gridiron-sim/internal/simulator"
	"github.com/stitts-dev/gridiron-sim/internal/stats"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}

	home := flag.String("home", cfg.HomeTeam, "home team name")
	away := flag.String("away", cfg.AwayTeam, "away team name")
	seed := flag.Int64("seed", cfg.MatchSeed, "master seed, 0 seeds from the clock")
	runs := flag.Int("runs", 1, "number of matches; more than one prints batch statistics")
	verbose := flag.Bool("v", false, "log every play")
	flag.Parse()

	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	log := initLogging(level, cfg.IsDevelopment())

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	master := rng.New(*seed)
	homeTeam, err := roster.Generate(*home, rng.New(master.Int63()))
	if err != nil {
		log.Fatalf("Failed to generate %s: %v", *home, err)
	}
	awayTeam, err := roster.Generate(*away, rng.New(master.Int63()))
	if err != nil {
		log.Fatalf("Failed to generate %s: %v", *away, err)
	}
	matchCfg := engine.Config{FatigueShape: cfg.FatigueShape, EnergyIntensity: cfg.EnergyIntensity}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var out interface{}
	if *runs > 1 {
		out, err = runBatch(ctx, log, homeTeam, awayTeam, matchCfg, *runs, cfg.SimulationWorkers, master.Int63()|1)
	} else {
		out, err = runMatch(ctx, homeTeam, awayTeam, matchCfg, master)
	}
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to write result: %v", err)
	}
}

// initLogging sends every log line to stderr; stdout carries the JSON
// result only.
func initLogging(level string, isDevelopment bool) *logrus.Logger {
	log := logger.InitLogger(level, isDevelopment)
	logger.SetOutput(os.Stderr)
	return log
}

type matchOutput struct {
	Summary engine.Summary      `json:"summary"`
	Scores  []engine.ScoreEvent `json:"scores"`
	Drives  []engine.DriveEvent `json:"drives"`
}

func runMatch(ctx context.Context, home, away *football.Team, cfg engine.Config, src *rng.Rand) (*matchOutput, error) {
	events := stats.NewMemoryRecorder()
	m, err := engine.NewMatch(home, away, rng.New(src.Int63()), cfg, events)
	if err != nil {
		return nil, err
	}
	for !m.Over() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("match interrupted after %d plays: %w", len(m.Plays()), err)
		}
		if _, err := m.Step(); err != nil {
			return nil, err
		}
	}
	summary := m.Summary()
	return &matchOutput{
		Summary: summary,
		Scores:  events.Scores(),
		Drives:  events.Drives(),
	}, nil
}

func runBatch(ctx context.Context, log *logrus.Logger, home, away *football.Team, cfg engine.Config, runs, workers int, seed int64) (*simulator.SimulationResult, error) {
	sim, err := simulator.NewSimulator(simulator.SimulationConfig{
		NumSimulations:    runs,
		SimulationWorkers: workers,
		Seed:              seed,
		Match:             cfg,
	}, home, away)
	if err != nil {
		return nil, err
	}

	progress := make(chan simulator.SimulationProgress, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		step := runs / 10
		if step < 1 {
			step = 1
		}
		for p := range progress {
			if p.Completed%step != 0 {
				continue
			}
			log.WithFields(logrus.Fields{
				"completed": p.Completed,
				"total":     p.TotalSimulations,
			}).Info("Simulation progress")
		}
	}()

	result, err := sim.Run(ctx, progress)
	close(progress)
	<-done
	return result, err
}
