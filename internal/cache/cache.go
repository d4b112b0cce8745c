// internal/cache/cache.go
// Package cache provides a run-scoped, concurrency-safe memoization store.
// Entries are write-once-read-many: the first stored value for a key is the
// value every caller observes for the rest of the run. There is no eviction;
// the store is discarded with the run that created it.
package cache

import "sync"

// Store memoizes computed values by string key.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]V
}

// New returns an empty store.
func New[V any]() *Store[V] {
	return &Store[V]{entries: make(map[string]V)}
}

// GetOrCompute returns the stored value for key, computing and storing it on
// first access. The lock is never held across compute, so two callers racing
// on an uncached key may both invoke compute; only the first result is
// stored, and both callers return that stored value.
func (s *Store[V]) GetOrCompute(key string, compute func() V) V {
	s.mu.Lock()
	if value, ok := s.entries[key]; ok {
		s.mu.Unlock()
		return value
	}
	s.mu.Unlock()

	value := compute()

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing
	}
	s.entries[key] = value
	return value
}

// Get returns the stored value for key, if any.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	return value, ok
}

// Len returns the number of stored entries.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
