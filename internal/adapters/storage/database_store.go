package storage

import (
	"context"
	"time"

	"github.com/kiervincent5/travel-planner/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one row of the kv_entries table
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// DatabaseStore keeps entries in a relational table through gorm
type DatabaseStore struct {
	db *gorm.DB
}

func NewDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	if db == nil {
		return nil, errors.NewConfigurationError("database cannot be nil", nil)
	}
	return &DatabaseStore{db: db}, nil
}

func (s *DatabaseStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.NewValidationError("store key cannot be empty")
	}

	var entry KVEntry
	err := s.db.WithContext(ctx).Where(&KVEntry{Key: key}).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.NewNotFoundError("key not found")
		}
		return "", errors.NewStorageError("failed to read entry", err)
	}
	return entry.Value, nil
}

func (s *DatabaseStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return errors.NewStorageError("failed to write entry", err)
	}
	return nil
}

func (s *DatabaseStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	if err := s.db.WithContext(ctx).Where(&KVEntry{Key: key}).Delete(&KVEntry{}).Error; err != nil {
		return errors.NewStorageError("failed to delete entry", err)
	}
	return nil
}
