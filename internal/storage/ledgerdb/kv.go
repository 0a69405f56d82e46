package ledgerdb

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/centsible/centsible/internal/models"
)

// Per-user preference key-value store (base currency, notification opt-in).

func (s *Store) GetUserKV(_ context.Context, userID, key string) (*models.UserKeyValue, error) {
	compositeKey := userID + kvSep + key
	var kv models.UserKeyValue
	if err := s.db.Get(compositeKey, &kv); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("key '%s' not found for user '%s'", key, userID)
		}
		return nil, fmt.Errorf("failed to get kv '%s' for user '%s': %w", key, userID, err)
	}
	return &kv, nil
}

func (s *Store) SetUserKV(_ context.Context, userID, key, value string) error {
	compositeKey := userID + kvSep + key

	var existing models.UserKeyValue
	version := 1
	if err := s.db.Get(compositeKey, &existing); err == nil {
		version = existing.Version + 1
	}

	kv := &models.UserKeyValue{
		UserID:   userID,
		Key:      key,
		Value:    value,
		Version:  version,
		DateTime: time.Now(),
	}
	if err := s.db.Upsert(compositeKey, kv); err != nil {
		return fmt.Errorf("failed to set kv '%s' for user '%s': %w", key, userID, err)
	}
	return nil
}

func (s *Store) ListUserKV(_ context.Context, userID string) ([]*models.UserKeyValue, error) {
	var kvs []models.UserKeyValue
	if err := s.db.Find(&kvs, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list kv for user '%s': %w", userID, err)
	}
	out := make([]*models.UserKeyValue, len(kvs))
	for i := range kvs {
		out[i] = &kvs[i]
	}
	return out, nil
}
