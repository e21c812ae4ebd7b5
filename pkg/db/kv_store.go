package db

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/barakat-storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore persists kv entries in the kv_entries table.
type KVStore struct {
	client *Client
	now    func() time.Time
}

// NewKVStore binds a kv store to the client. The table must already exist
// (see pkg/migrate).
func NewKVStore(client *Client) *KVStore {
	return &KVStore{client: client, now: time.Now}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := s.client.DB().WithContext(ctx).
		Where("entry_key = ?", key).
		Take(&entry).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.now().UTC(),
	}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
		}).
		Create(&entry).
		Error
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	return s.client.DB().WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&models.KVEntry{}).
		Error
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *KVStore) Close() error {
	return s.client.Close()
}
