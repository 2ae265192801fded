package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"prediction-engine/internal/engine"
	"prediction-engine/internal/models"
)

type AccumulatorRepository struct {
	db *gorm.DB
}

func NewAccumulatorRepository(db *gorm.DB) *AccumulatorRepository {
	return &AccumulatorRepository{db: db}
}

// Create stores a user-placed custom accumulator with its legs.
func (r *AccumulatorRepository) Create(ctx context.Context, acc *models.Accumulator) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return fmt.Errorf("failed to create accumulator: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an accumulator with its legs.
func (r *AccumulatorRepository) GetByID(ctx context.Context, id string) (*models.Accumulator, error) {
	var acc models.Accumulator
	err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("accumulator %s: %w", id, engine.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// ListByUser returns the user's custom accumulators, newest first.
func (r *AccumulatorRepository) ListByUser(ctx context.Context, userID uint) ([]models.Accumulator, error) {
	var accs []models.Accumulator
	err := r.db.WithContext(ctx).
		Preload("Legs", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accumulators for user %d: %w", userID, err)
	}
	return accs, nil
}
