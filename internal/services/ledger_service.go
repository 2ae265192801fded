package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"prediction-engine/internal/engine"
	"prediction-engine/internal/metrics"
	"prediction-engine/internal/models"
	"prediction-engine/internal/repository"
)

// ledgerStripes is the size of the key-lock table. Toggles on the same
// (user, prediction) key always hash to the same stripe and serialize;
// different keys proceed in parallel.
const ledgerStripes = 64

// LedgerService tracks which predictions a user has saved and which are
// staged into their personal accumulator. Toggles are idempotent in the
// parity sense: final state depends on the number of applied toggles, not on
// race outcomes.
type LedgerService struct {
	store  repository.LedgerStore
	locks  [ledgerStripes]sync.Mutex
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(store repository.LedgerStore, logger *zap.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger}
}

func (s *LedgerService) stripe(userID uint, predictionID string) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d|%s", userID, predictionID)
	return &s.locks[h.Sum32()%ledgerStripes]
}

// ToggleSave flips the saved flag for (userID, predictionID) and returns the
// new state. Toggling off an entry that was never saved is a success no-op.
func (s *LedgerService) ToggleSave(ctx context.Context, userID uint, predictionID string) (bool, error) {
	return s.toggle(ctx, userID, predictionID, "save", func(entry *models.LedgerEntry) bool {
		entry.Saved = !entry.Saved
		return entry.Saved
	})
}

// ToggleStage flips the in-accumulator flag for (userID, predictionID) and
// returns the new state.
func (s *LedgerService) ToggleStage(ctx context.Context, userID uint, predictionID string) (bool, error) {
	return s.toggle(ctx, userID, predictionID, "stage", func(entry *models.LedgerEntry) bool {
		entry.InAccumulator = !entry.InAccumulator
		return entry.InAccumulator
	})
}

func (s *LedgerService) toggle(ctx context.Context, userID uint, predictionID string, kind string, flip func(*models.LedgerEntry) bool) (bool, error) {
	if userID == 0 {
		return false, engine.ErrPermissionDenied
	}
	if predictionID == "" {
		return false, fmt.Errorf("%w: empty prediction id", engine.ErrNotFound)
	}

	lock := s.stripe(userID, predictionID)
	lock.Lock()
	defer lock.Unlock()

	entry, found, err := s.store.Get(ctx, userID, predictionID)
	if err != nil {
		return false, err
	}
	if !found {
		entry = models.LedgerEntry{UserID: userID, PredictionID: predictionID}
	}

	state := flip(&entry)
	entry.UpdatedAt = time.Now()

	if !entry.Saved && !entry.InAccumulator {
		// Both flags off: prune rather than keep a dead row.
		if err := s.store.Delete(ctx, userID, predictionID); err != nil {
			return false, err
		}
	} else if err := s.store.Put(ctx, entry); err != nil {
		return false, err
	}

	metrics.LedgerToggles.WithLabelValues(kind).Inc()
	s.logger.Debug("ledger toggle applied",
		zap.Uint("user_id", userID),
		zap.String("prediction_id", predictionID),
		zap.String("kind", kind),
		zap.Bool("state", state),
	)

	return state, nil
}

// ListSaved returns the user's bookmarked prediction entries.
func (s *LedgerService) ListSaved(ctx context.Context, userID uint) ([]models.LedgerEntry, error) {
	return s.list(ctx, userID, func(e models.LedgerEntry) bool { return e.Saved })
}

// ListStaged returns the entries staged into the user's personal accumulator.
func (s *LedgerService) ListStaged(ctx context.Context, userID uint) ([]models.LedgerEntry, error) {
	return s.list(ctx, userID, func(e models.LedgerEntry) bool { return e.InAccumulator })
}

func (s *LedgerService) list(ctx context.Context, userID uint, keep func(models.LedgerEntry) bool) ([]models.LedgerEntry, error) {
	if userID == 0 {
		return nil, engine.ErrPermissionDenied
	}

	entries, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		if keep(entry) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}
