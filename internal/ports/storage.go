package ports

import "context"

// KeyValueStore is a string key/value store. Get returns a NotFound AppError
// for keys that were never set or have been removed. Each call is atomic for
// its own key only.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// UserStoreFactory hands out the key/value namespace owned by one user
type UserStoreFactory interface {
	ForUser(userID uint) KeyValueStore
}
