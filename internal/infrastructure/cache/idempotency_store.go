package cache

import (
	"context"
	"sync"
	"time"
)

// IdempotencyStore guards against duplicate submissions of the same
// request. Reserve claims a key for the given TTL; only the first caller
// wins. Release frees a claimed key so a failed request can be retried
// with the same key.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// InMemoryIdempotencyStore is a process-local store used in tests and
// single-node deployments.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewInMemoryIdempotencyStore creates an empty in-memory store
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{entries: make(map[string]time.Time)}
}

// Reserve claims the key if it is not already held. Expired entries are
// swept here so the map does not grow without bound.
func (s *InMemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, expiry := range s.entries {
		if !expiry.After(now) {
			delete(s.entries, k)
		}
	}
	if _, ok := s.entries[key]; ok {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// Release frees a previously claimed key
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
