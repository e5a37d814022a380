package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

// Event kinds written to the stream's "type" field.
const (
	EventPlay  = "play"
	EventScore = "score"
	EventDrive = "drive"
)

// StreamConfig contains configuration for the stream recorder
type StreamConfig struct {
	StreamName   string
	MaxLength    int64
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64

	// MaxPending caps the events held while Redis is unreachable; the
	// oldest are dropped first. Defaults to MaxLength.
	MaxPending int
}

type streamEntry struct {
	kind    string
	matchID string
	payload interface{}
}

// StreamRecorder buffers match events and publishes them to a Redis Stream
// in one pipeline per Flush, behind a circuit breaker.
type StreamRecorder struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	config  StreamConfig
	log     *logrus.Entry

	mu      sync.Mutex
	pending []streamEntry
	dropped int
	warned  int
}

func NewStreamRecorder(client *redis.Client, config StreamConfig) *StreamRecorder {
	if config.StreamName == "" {
		config.StreamName = "match_events"
	}
	if config.MaxLength == 0 {
		config.MaxLength = 10000
	}
	if config.MaxPending <= 0 {
		config.MaxPending = int(config.MaxLength)
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.FailureRatio == 0 {
		config.FailureRatio = 0.6
	}

	log := logger.WithService("stream-recorder").WithField("stream", config.StreamName)
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "match-stream",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= config.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"from_state": from.String(),
				"to_state":   to.String(),
			}).Warn("Stream recorder circuit breaker state changed")
		},
	})

	return &StreamRecorder{
		client:  client,
		breaker: breaker,
		config:  config,
		log:     log,
	}
}

func (r *StreamRecorder) RecordPlay(e engine.PlayEvent) {
	r.add(streamEntry{kind: EventPlay, matchID: e.MatchID.String(), payload: e})
}

func (r *StreamRecorder) RecordScore(e engine.ScoreEvent) {
	r.add(streamEntry{kind: EventScore, matchID: e.MatchID.String(), payload: e})
}

func (r *StreamRecorder) RecordDrive(e engine.DriveEvent) {
	r.add(streamEntry{kind: EventDrive, matchID: e.MatchID.String(), payload: e})
}

func (r *StreamRecorder) add(e streamEntry) {
	r.mu.Lock()
	r.pending = append(r.pending, e)
	if over := len(r.pending) - r.config.MaxPending; over > 0 {
		r.pending = append(r.pending[:0], r.pending[over:]...)
		r.dropped += over
	}
	r.mu.Unlock()
}

// Pending reports how many events are waiting to be published.
func (r *StreamRecorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Dropped reports how many events were discarded to stay under MaxPending.
func (r *StreamRecorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// State exposes the breaker state for health reporting.
func (r *StreamRecorder) State() gobreaker.State {
	return r.breaker.State()
}

// Flush publishes everything buffered. While the breaker is open it fails
// fast with gobreaker.ErrOpenState and keeps the buffer.
func (r *StreamRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return nil
	}
	if r.dropped > r.warned {
		r.log.WithFields(logrus.Fields{
			"dropped":     r.dropped - r.warned,
			"max_pending": r.config.MaxPending,
		}).Warn("Dropped oldest match events while the stream was unavailable")
		r.warned = r.dropped
	}

	start := time.Now()
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.publish(ctx, r.pending)
	})
	if err != nil {
		r.log.WithError(err).WithField("pending", len(r.pending)).Warn("Failed to publish match events")
		return fmt.Errorf("failed to publish match events: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"events":  len(r.pending),
		"latency": time.Since(start),
	}).Debug("Published match events")
	r.pending = nil
	return nil
}

func (r *StreamRecorder) publish(ctx context.Context, entries []streamEntry) error {
	pipe := r.client.Pipeline()
	for _, e := range entries {
		data, err := json.Marshal(e.payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s event: %w", e.kind, err)
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: r.config.StreamName,
			MaxLen: r.config.MaxLength,
			Approx: true,
			Values: map[string]interface{}{
				"type":     e.kind,
				"match_id": e.matchID,
				"data":     string(data),
			},
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}
