package external

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// LookupCache is a cache provider that also reports its hit statistics
type LookupCache interface {
	ports.CacheProvider
	ports.CacheMetrics
}

type CacheProviderFactory struct {
	redis *redis.Client
}

// NewCacheProviderFactory takes the shared redis client; nil is fine for the
// memory cache
func NewCacheProviderFactory(redisClient *redis.Client) *CacheProviderFactory {
	return &CacheProviderFactory{redis: redisClient}
}

// CreateCacheProvider returns the memory cache when caching is disabled so
// callers never hold a nil cache
func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (LookupCache, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}
	if !cfg.Enabled {
		return NewMemoryCacheProvider(), nil
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(), nil
	case config.CacheTypeRedis:
		cache, err := NewRedisCacheProviderAdapter(f.redis)
		if err != nil {
			return nil, err
		}
		return cache, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
