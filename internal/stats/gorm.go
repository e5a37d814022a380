package stats

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/models"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

const defaultBatchSize = 100

// GormRecorder buffers match events and writes them in a single
// transaction on Flush.
type GormRecorder struct {
	db        *gorm.DB
	batchSize int
	log       *logrus.Entry

	mu     sync.Mutex
	plays  []models.PlayRecord
	scores []models.ScoreRecord
	drives []models.DriveRecord
}

func NewGormRecorder(db *gorm.DB, batchSize int) *GormRecorder {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &GormRecorder{
		db:        db,
		batchSize: batchSize,
		log:       logger.WithService("gorm-recorder"),
	}
}

func (r *GormRecorder) RecordPlay(e engine.PlayEvent) {
	r.mu.Lock()
	r.plays = append(r.plays, models.NewPlayRecord(e))
	r.mu.Unlock()
}

func (r *GormRecorder) RecordScore(e engine.ScoreEvent) {
	r.mu.Lock()
	r.scores = append(r.scores, models.NewScoreRecord(e))
	r.mu.Unlock()
}

func (r *GormRecorder) RecordDrive(e engine.DriveEvent) {
	r.mu.Lock()
	r.drives = append(r.drives, models.NewDriveRecord(e))
	r.mu.Unlock()
}

// Pending reports how many events are waiting to be written.
func (r *GormRecorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plays) + len(r.scores) + len(r.drives)
}

// Flush writes everything buffered so far. On error the buffer is kept so a
// later Flush can retry.
func (r *GormRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.plays)+len(r.scores)+len(r.drives) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(r.plays) > 0 {
			if err := tx.CreateInBatches(r.plays, r.batchSize).Error; err != nil {
				return fmt.Errorf("failed to save plays: %w", err)
			}
		}
		if len(r.scores) > 0 {
			if err := tx.CreateInBatches(r.scores, r.batchSize).Error; err != nil {
				return fmt.Errorf("failed to save scores: %w", err)
			}
		}
		if len(r.drives) > 0 {
			if err := tx.CreateInBatches(r.drives, r.batchSize).Error; err != nil {
				return fmt.Errorf("failed to save drives: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.WithFields(logrus.Fields{
		"plays":  len(r.plays),
		"scores": len(r.scores),
		"drives": len(r.drives),
	}).Debug("Flushed match events")

	r.plays, r.scores, r.drives = nil, nil, nil
	return nil
}
