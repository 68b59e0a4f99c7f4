package external

import (
	"context"
	"testing"
	"time"

	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheProvider_SetGetExpire(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheProvider()
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "weather:metric:cebu", []byte("sunny"), 10*time.Minute))

	value, err := cache.Get(ctx, "weather:metric:cebu")
	require.NoError(t, err)
	assert.Equal(t, []byte("sunny"), value)

	now = now.Add(11 * time.Minute)

	exists, err := cache.Exists(ctx, "weather:metric:cebu")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = cache.Get(ctx, "weather:metric:cebu")
	assert.True(t, errors.IsNotFoundError(err))

	cache.mutex.RLock()
	_, stillStored := cache.data["weather:metric:cebu"]
	cache.mutex.RUnlock()
	assert.False(t, stillStored, "expired entries are evicted on read")

	stats := cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(2), stats.TotalOps)
	assert.Equal(t, 0.5, stats.HitRatio)
}

func TestMemoryCacheProvider_DeleteAndClear(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, cache.Delete(ctx, "a"))
	_, err := cache.Get(ctx, "a")
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, cache.Clear(ctx))
	_, err = cache.Get(ctx, "b")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMemoryCacheProvider_Validation(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	_, err := cache.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "", []byte("v"), time.Minute)))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "k", nil, time.Minute)))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "k", []byte("v"), -time.Second)))

	_, err = cache.Exists(ctx, "")
	assert.True(t, errors.IsValidationError(err))
}

func TestMemoryCacheProvider_EmptyStats(t *testing.T) {
	stats := NewMemoryCacheProvider().GetStats()

	assert.Zero(t, stats.TotalOps)
	assert.Zero(t, stats.HitRatio)
}
