package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prediction-engine/internal/models"
)

// LedgerStore is the persistence boundary for per-user ledger entries.
// Implementations are keyed by (userID, predictionID); serialization of
// concurrent toggles on one key is the caller's responsibility.
type LedgerStore interface {
	Get(ctx context.Context, userID uint, predictionID string) (models.LedgerEntry, bool, error)
	Put(ctx context.Context, entry models.LedgerEntry) error
	Delete(ctx context.Context, userID uint, predictionID string) error
	List(ctx context.Context, userID uint) ([]models.LedgerEntry, error)
}

// GormLedgerStore keeps ledger entries in the relational store.
type GormLedgerStore struct {
	db *gorm.DB
}

func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{db: db}
}

func (s *GormLedgerStore) Get(ctx context.Context, userID uint, predictionID string) (models.LedgerEntry, bool, error) {
	var entry models.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND prediction_id = ?", userID, predictionID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.LedgerEntry{}, false, nil
	}
	if err != nil {
		return models.LedgerEntry{}, false, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return entry, true, nil
}

func (s *GormLedgerStore) Put(ctx context.Context, entry models.LedgerEntry) error {
	entry.UpdatedAt = time.Now()
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "prediction_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"saved", "in_accumulator", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to put ledger entry: %w", err)
	}
	return nil
}

func (s *GormLedgerStore) Delete(ctx context.Context, userID uint, predictionID string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND prediction_id = ?", userID, predictionID).
		Delete(&models.LedgerEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return nil
}

func (s *GormLedgerStore) List(ctx context.Context, userID uint) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}
