package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"nameorigin/pkg/platform/sentinel"
)

// maxTTL bounds how long the LRU itself holds an entry; per-entry expiry is
// enforced on read against the store's clock.
const maxTTL = 7 * 24 * time.Hour

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store is an in-process LRU cache. Each process has its own copy.
type Store struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used to evaluate entry expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a store holding at most maxEntries values (0 means unbounded).
func New(maxEntries int, opts ...Option) *Store {
	s := &Store{
		lru: expirable.NewLRU[string, entry](maxEntries, nil, maxTTL),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := s.lru.Get(key)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		s.lru.Remove(key)
		return nil, sentinel.ErrNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.lru.Add(key, entry{value: stored, expiresAt: s.now().Add(ttl)})
	return nil
}

// Len reports the number of entries currently held, expired or not.
func (s *Store) Len() int {
	return s.lru.Len()
}
