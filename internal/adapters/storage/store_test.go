package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// storeSuite runs the same behaviour checks against every backend
type storeSuite struct {
	suite.Suite
	newStore func(t *testing.T) ports.KeyValueStore
	store    ports.KeyValueStore
	ctx      context.Context
}

func (s *storeSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func (s *storeSuite) TestGetMissingKeyIsNotFound() {
	_, err := s.store.Get(s.ctx, "user:1:token")
	s.True(errors.IsNotFoundError(err))
}

func (s *storeSuite) TestSetThenGet() {
	s.Require().NoError(s.store.Set(s.ctx, "user:1:token", "abc"))

	value, err := s.store.Get(s.ctx, "user:1:token")
	s.Require().NoError(err)
	s.Equal("abc", value)
}

func (s *storeSuite) TestSetOverwrites() {
	s.Require().NoError(s.store.Set(s.ctx, "user:1:tripPlans", "[]"))
	s.Require().NoError(s.store.Set(s.ctx, "user:1:tripPlans", `[{"title":"Cebu"}]`))

	value, err := s.store.Get(s.ctx, "user:1:tripPlans")
	s.Require().NoError(err)
	s.Equal(`[{"title":"Cebu"}]`, value)
}

func (s *storeSuite) TestEmptyValueIsStored() {
	s.Require().NoError(s.store.Set(s.ctx, "user:1:notes", ""))

	value, err := s.store.Get(s.ctx, "user:1:notes")
	s.Require().NoError(err)
	s.Equal("", value)
}

func (s *storeSuite) TestRemove() {
	s.Require().NoError(s.store.Set(s.ctx, "user:1:user", "{}"))
	s.Require().NoError(s.store.Remove(s.ctx, "user:1:user"))

	_, err := s.store.Get(s.ctx, "user:1:user")
	s.True(errors.IsNotFoundError(err))
}

func (s *storeSuite) TestRemoveMissingKeyIsNotAnError() {
	s.NoError(s.store.Remove(s.ctx, "user:1:never-set"))
}

func (s *storeSuite) TestEmptyKeyIsRejected() {
	_, err := s.store.Get(s.ctx, "")
	s.True(errors.IsValidationError(err))
	s.True(errors.IsValidationError(s.store.Set(s.ctx, "", "x")))
	s.True(errors.IsValidationError(s.store.Remove(s.ctx, "")))
}

func (s *storeSuite) TestKeysAreIndependent() {
	s.Require().NoError(s.store.Set(s.ctx, "user:1:token", "one"))
	s.Require().NoError(s.store.Set(s.ctx, "user:2:token", "two"))
	s.Require().NoError(s.store.Remove(s.ctx, "user:1:token"))

	value, err := s.store.Get(s.ctx, "user:2:token")
	s.Require().NoError(err)
	s.Equal("two", value)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &storeSuite{newStore: func(t *testing.T) ports.KeyValueStore {
		return NewMemoryStore()
	}})
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &storeSuite{newStore: func(t *testing.T) ports.KeyValueStore {
		client, err := NewRedisClient(redisConfig(miniredis.RunT(t)))
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		store, err := NewRedisStore(client)
		require.NoError(t, err)
		return store
	}})
}

func TestDatabaseStore(t *testing.T) {
	suite.Run(t, &storeSuite{newStore: func(t *testing.T) ports.KeyValueStore {
		store, err := NewDatabaseStore(setupTestDB(t))
		require.NoError(t, err)
		return store
	}})
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&KVEntry{}))
	return db
}

func redisConfig(mr *miniredis.Miniredis) *config.RedisConfig {
	return &config.RedisConfig{
		Addr:         mr.Addr(),
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}
}

func TestNewRedisClient(t *testing.T) {
	_, err := NewRedisClient(nil)
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewRedisClient(&config.RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1})
	assert.True(t, errors.IsStorageError(err))
}

func TestRedisStore_KeysHaveNoExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(redisConfig(mr))
	require.NoError(t, err)
	store, err := NewRedisStore(client)
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "user:3:tripPlans", "[]"))

	assert.Zero(t, mr.TTL("user:3:tripPlans"))
}

func TestRedisStore_BackendFailureIsStorageError(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(redisConfig(mr))
	require.NoError(t, err)
	store, err := NewRedisStore(client)
	require.NoError(t, err)

	mr.Close()

	_, err = store.Get(context.Background(), "user:1:token")
	assert.True(t, errors.IsStorageError(err))
	assert.True(t, errors.IsStorageError(store.Set(context.Background(), "user:1:token", "x")))
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "user:1:k" + string(rune('a'+i%26))
			_ = store.Set(ctx, key, "v")
			_, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 26, store.Len())
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	backing := NewMemoryStore()
	users := NewUserStores(backing, "travelplanner")

	alice := users.ForUser(1)
	bob := users.ForUser(2)

	require.NoError(t, alice.Set(ctx, "token", "alice-token"))
	require.NoError(t, bob.Set(ctx, "token", "bob-token"))

	raw, err := backing.Get(ctx, "travelplanner:user:1:token")
	require.NoError(t, err)
	assert.Equal(t, "alice-token", raw)

	value, err := bob.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "bob-token", value)

	require.NoError(t, alice.Remove(ctx, "token"))
	_, err = alice.Get(ctx, "token")
	assert.True(t, errors.IsNotFoundError(err))
	_, err = bob.Get(ctx, "token")
	assert.NoError(t, err)

	_, err = alice.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
}

func TestUserPrefix(t *testing.T) {
	assert.Equal(t, "user:7:", UserPrefix("", 7))
	assert.Equal(t, "app:user:7:", UserPrefix("app", 7))
}

func TestStoreFactory_CreateStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(redisConfig(mr))
	require.NoError(t, err)
	factory := NewStoreFactory(setupTestDB(t), client)

	tests := []struct {
		name      string
		storeType config.StoreType
		expected  interface{}
	}{
		{name: "Memory", storeType: config.StoreTypeMemory, expected: &MemoryStore{}},
		{name: "Redis", storeType: config.StoreTypeRedis, expected: &RedisStore{}},
		{name: "Database", storeType: config.StoreTypeDatabase, expected: &DatabaseStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := factory.CreateStore(&config.StoreConfig{Type: tt.storeType})
			require.NoError(t, err)
			assert.IsType(t, tt.expected, store)
		})
	}

	_, err = factory.CreateStore(&config.StoreConfig{Type: config.StoreTypeUnknown})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewStoreFactory(nil, nil).CreateStore(&config.StoreConfig{Type: config.StoreTypeRedis})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = factory.CreateStore(nil)
	assert.True(t, errors.IsConfigurationError(err))
}
