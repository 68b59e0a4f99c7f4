// Package storage provides the key/value backends behind ports.KeyValueStore
// and the per-user namespacing on top of them.
package storage

import (
	"context"
	"sync"

	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// MemoryStore keeps entries in process memory. Data is lost on restart.
type MemoryStore struct {
	data  map[string]string
	mutex sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.NewValidationError("store key cannot be empty")
	}

	s.mutex.RLock()
	value, exists := s.data[key]
	s.mutex.RUnlock()

	if !exists {
		return "", errors.NewNotFoundError("key not found")
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = value
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
	return nil
}

// Len reports the number of stored keys
func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
