package planner

import (
	"context"
	"sync"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", errors.NewNotFoundError("key not found")
	}
	return value, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type memStores struct {
	mu     sync.Mutex
	stores map[uint]*memStore
}

func newMemStores() *memStores {
	return &memStores{stores: make(map[uint]*memStore)}
}

func (f *memStores) ForUser(userID uint) ports.KeyValueStore {
	return f.user(userID)
}

func (f *memStores) user(userID uint) *memStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.stores[userID]; ok {
		return s
	}
	s := newMemStore()
	f.stores[userID] = s
	return s
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sequentialIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func samplePlan(id, title, start, end string) TripPlan {
	return TripPlan{
		ID:        id,
		Title:     title,
		StartDate: MustParseDate(start),
		EndDate:   MustParseDate(end),
		Travelers: 1,
	}
}
