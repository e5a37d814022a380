package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitts-dev/gridiron-sim/internal/models"
)

// MatchRepository persists match records and reads back their event log.
type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// DB exposes the handle recorders write events through.
func (r *MatchRepository) DB() *gorm.DB {
	return r.db
}

func (r *MatchRepository) Create(ctx context.Context, record *models.MatchRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Save(ctx context.Context, record *models.MatchRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	return nil
}

// Get loads a match with its scores and drives.
func (r *MatchRepository) Get(ctx context.Context, id uuid.UUID) (*models.MatchRecord, error) {
	var record models.MatchRecord
	err := r.db.WithContext(ctx).
		Preload("Scores", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Drives", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match: %w", err)
	}
	return &record, nil
}

// Plays returns one page of a match's play-by-play and the total count.
func (r *MatchRepository) Plays(ctx context.Context, id uuid.UUID, offset, limit int) ([]models.PlayRecord, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&models.PlayRecord{}).Where("match_id = ?", id)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plays: %w", err)
	}

	var plays []models.PlayRecord
	err := r.db.WithContext(ctx).
		Where("match_id = ?", id).
		Order("number").
		Offset(offset).
		Limit(limit).
		Find(&plays).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load plays: %w", err)
	}
	return plays, total, nil
}
