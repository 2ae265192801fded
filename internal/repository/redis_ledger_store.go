package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"prediction-engine/internal/models"
)

// RedisLedgerStore keeps each user's ledger in a Redis hash, one field per
// prediction id. Selected when REDIS_ADDR is configured.
type RedisLedgerStore struct {
	client *redis.Client
}

func NewRedisLedgerStore(client *redis.Client) *RedisLedgerStore {
	return &RedisLedgerStore{client: client}
}

// ConnectRedis opens and pings a Redis client.
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

func ledgerKey(userID uint) string {
	return fmt.Sprintf("ledger:%d", userID)
}

func (s *RedisLedgerStore) Get(ctx context.Context, userID uint, predictionID string) (models.LedgerEntry, bool, error) {
	raw, err := s.client.HGet(ctx, ledgerKey(userID), predictionID).Result()
	if errors.Is(err, redis.Nil) {
		return models.LedgerEntry{}, false, nil
	}
	if err != nil {
		return models.LedgerEntry{}, false, fmt.Errorf("failed to get ledger entry: %w", err)
	}

	var entry models.LedgerEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return models.LedgerEntry{}, false, fmt.Errorf("corrupt ledger entry for user %d: %w", userID, err)
	}
	return entry, true, nil
}

func (s *RedisLedgerStore) Put(ctx context.Context, entry models.LedgerEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode ledger entry: %w", err)
	}
	if err := s.client.HSet(ctx, ledgerKey(entry.UserID), entry.PredictionID, raw).Err(); err != nil {
		return fmt.Errorf("failed to put ledger entry: %w", err)
	}
	return nil
}

func (s *RedisLedgerStore) Delete(ctx context.Context, userID uint, predictionID string) error {
	if err := s.client.HDel(ctx, ledgerKey(userID), predictionID).Err(); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return nil
}

func (s *RedisLedgerStore) List(ctx context.Context, userID uint) ([]models.LedgerEntry, error) {
	raw, err := s.client.HGetAll(ctx, ledgerKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	entries := make([]models.LedgerEntry, 0, len(raw))
	for _, value := range raw {
		var entry models.LedgerEntry
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			return nil, fmt.Errorf("corrupt ledger entry for user %d: %w", userID, err)
		}
		entries = append(entries, entry)
	}

	// Hash iteration order is arbitrary; keep listings stable.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].UpdatedAt.Equal(entries[j].UpdatedAt) {
			return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
		}
		return entries[i].PredictionID < entries[j].PredictionID
	})

	return entries, nil
}
