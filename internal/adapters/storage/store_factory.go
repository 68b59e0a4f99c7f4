package storage

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"gorm.io/gorm"
)

// StoreFactory builds the key/value backend selected by STORE_TYPE
type StoreFactory struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewStoreFactory takes the shared connections; either may be nil when the
// selected backend does not need it.
func NewStoreFactory(db *gorm.DB, redisClient *redis.Client) *StoreFactory {
	return &StoreFactory{db: db, redis: redisClient}
}

func (f *StoreFactory) CreateStore(cfg *config.StoreConfig) (ports.KeyValueStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("store config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.StoreTypeMemory:
		return NewMemoryStore(), nil
	case config.StoreTypeRedis:
		store, err := NewRedisStore(f.redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreTypeDatabase:
		store, err := NewDatabaseStore(f.db)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported store type: %s", cfg.Type.String()), nil)
	}
}
