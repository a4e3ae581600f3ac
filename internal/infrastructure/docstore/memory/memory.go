// Package memory backs the document store with process memory. It is the
// default when no database URL is configured and the fixture store for
// repository and service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

type document struct {
	raw       []byte
	updatedAt time.Time
}

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]document

	// now is swappable so tests can pin document write times.
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[string]document),
		now:         time.Now,
	}
}

func (s *Store) Get(_ context.Context, collection, key string, out any) (time.Time, bool, error) {
	s.mu.RLock()
	doc, ok := s.collections[collection][key]
	s.mu.RUnlock()
	if !ok {
		return time.Time{}, false, nil
	}

	if out != nil {
		if err := sonic.Unmarshal(doc.raw, out); err != nil {
			return time.Time{}, false, fmt.Errorf("unmarshal document %s/%s: %w", collection, key, err)
		}
	}
	return doc.updatedAt, true, nil
}

func (s *Store) Set(_ context.Context, collection, key string, value any) (time.Time, error) {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("marshal document %s/%s: %w", collection, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]document)
		s.collections[collection] = docs
	}

	updatedAt := s.now()
	docs[key] = document{raw: raw, updatedAt: updatedAt}
	return updatedAt, nil
}

func (s *Store) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], key)
	return nil
}

func (s *Store) Stream(_ context.Context, collection string, fn func(key string, raw []byte) error) error {
	s.mu.RLock()
	docs := s.collections[collection]
	keys := make([]string, 0, len(docs))
	snapshot := make(map[string][]byte, len(docs))
	for key, doc := range docs {
		keys = append(keys, key)
		snapshot[key] = doc.raw
	}
	s.mu.RUnlock()

	sort.Strings(keys)
	for _, key := range keys {
		if err := fn(key, snapshot[key]); err != nil {
			return err
		}
	}
	return nil
}
