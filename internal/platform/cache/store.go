// Package cache provides a TTL map used to decorate ledger repositories.
// Loads for the same key are collapsed through a single flight so a cold or
// expired key hits the backing store once no matter how many readers race.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wicketwatch/wicketwatch/internal/platform/resilience"
)

type item struct {
	value    any
	storedAt time.Time
}

type Store struct {
	mu     sync.RWMutex
	items  map[string]item
	ttl    time.Duration
	flight resilience.SingleFlight
}

// NewStore builds a store whose entries expire ttl after being written. A
// non-positive ttl keeps entries until they are deleted.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]item),
		ttl:   ttl,
	}
}

func (s *Store) fresh(it item) bool {
	return s.ttl <= 0 || time.Since(it.storedAt) < s.ttl
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !s.fresh(it) {
		s.mu.Lock()
		// Re-check under the write lock; another writer may have refreshed it.
		if cur, ok := s.items[key]; ok && !s.fresh(cur) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return it.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.items[key] = item{value: value, storedAt: time.Now()}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader once and caches
// its result. An empty key bypasses the cache entirely.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("cache: loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, _, err := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	return value, err
}
