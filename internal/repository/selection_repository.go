package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"prediction-engine/internal/engine"
	"prediction-engine/internal/models"
)

type SelectionRepository struct {
	db *gorm.DB
}

func NewSelectionRepository(db *gorm.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// ListPending returns the read-only snapshot of selections still open for
// accumulator construction, soonest kick-off first.
func (r *SelectionRepository) ListPending(ctx context.Context) ([]models.Selection, error) {
	var selections []models.Selection
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("start_time ASC, id ASC").
		Find(&selections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending selections: %w", err)
	}
	return selections, nil
}

// GetByID retrieves a selection by ID
func (r *SelectionRepository) GetByID(ctx context.Context, id string) (*models.Selection, error) {
	var selection models.Selection
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&selection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("selection %s: %w", id, engine.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

// GetByIDs retrieves selections by ID, preserving the requested order.
// Missing ids yield ErrNotFound.
func (r *SelectionRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Selection, error) {
	var selections []models.Selection
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&selections).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Selection, len(selections))
	for _, s := range selections {
		byID[s.ID] = s
	}

	ordered := make([]models.Selection, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("selection %s: %w", id, engine.ErrNotFound)
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}
