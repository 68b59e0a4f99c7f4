package storage

import (
	"context"
	"fmt"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// NamespacedStore prefixes every key before delegating to the backing store
type NamespacedStore struct {
	store  ports.KeyValueStore
	prefix string
}

// Namespace scopes store to keys starting with prefix
func Namespace(store ports.KeyValueStore, prefix string) *NamespacedStore {
	return &NamespacedStore{store: store, prefix: prefix}
}

func (n *NamespacedStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.NewValidationError("store key cannot be empty")
	}
	return n.store.Get(ctx, n.prefix+key)
}

func (n *NamespacedStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *NamespacedStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}
	return n.store.Remove(ctx, n.prefix+key)
}

// UserStores hands every user a namespace of the shared store.
// Keys look like "<appPrefix>:user:<id>:<key>".
type UserStores struct {
	store     ports.KeyValueStore
	keyPrefix string
}

func NewUserStores(store ports.KeyValueStore, keyPrefix string) *UserStores {
	return &UserStores{store: store, keyPrefix: keyPrefix}
}

func (u *UserStores) ForUser(userID uint) ports.KeyValueStore {
	return Namespace(u.store, UserPrefix(u.keyPrefix, userID))
}

// UserPrefix builds the key prefix owned by one user
func UserPrefix(appPrefix string, userID uint) string {
	if appPrefix == "" {
		return fmt.Sprintf("user:%d:", userID)
	}
	return fmt.Sprintf("%s:user:%d:", appPrefix, userID)
}
