// Package stats holds the write-only sinks the match engine reports to.
package stats

import (
	"context"
	"sync"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
)

// Flusher is a recorder that buffers events until asked to persist them.
type Flusher interface {
	engine.Recorder
	Flush(ctx context.Context) error
}

// MemoryRecorder keeps the full event log of a match in memory.
type MemoryRecorder struct {
	mu     sync.RWMutex
	plays  []engine.PlayEvent
	scores []engine.ScoreEvent
	drives []engine.DriveEvent
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (r *MemoryRecorder) RecordPlay(e engine.PlayEvent) {
	r.mu.Lock()
	r.plays = append(r.plays, e)
	r.mu.Unlock()
}

func (r *MemoryRecorder) RecordScore(e engine.ScoreEvent) {
	r.mu.Lock()
	r.scores = append(r.scores, e)
	r.mu.Unlock()
}

func (r *MemoryRecorder) RecordDrive(e engine.DriveEvent) {
	r.mu.Lock()
	r.drives = append(r.drives, e)
	r.mu.Unlock()
}

func (r *MemoryRecorder) Plays() []engine.PlayEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]engine.PlayEvent(nil), r.plays...)
}

func (r *MemoryRecorder) Scores() []engine.ScoreEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]engine.ScoreEvent(nil), r.scores...)
}

func (r *MemoryRecorder) Drives() []engine.DriveEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]engine.DriveEvent(nil), r.drives...)
}

// Points totals scored points per team name.
func (r *MemoryRecorder) Points() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int)
	for _, s := range r.scores {
		out[s.Team] += s.Points
	}
	return out
}

// MultiRecorder fans every event out to each of its recorders in order.
type MultiRecorder []engine.Recorder

func (m MultiRecorder) RecordPlay(e engine.PlayEvent) {
	for _, r := range m {
		r.RecordPlay(e)
	}
}

func (m MultiRecorder) RecordScore(e engine.ScoreEvent) {
	for _, r := range m {
		r.RecordScore(e)
	}
}

func (m MultiRecorder) RecordDrive(e engine.DriveEvent) {
	for _, r := range m {
		r.RecordDrive(e)
	}
}

// Flush flushes every member that buffers, returning the first error.
func (m MultiRecorder) Flush(ctx context.Context) error {
	var first error
	for _, r := range m {
		f, ok := r.(Flusher)
		if !ok {
			continue
		}
		if err := f.Flush(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
