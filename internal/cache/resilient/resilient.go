// Package resilient guards a cache backend with a circuit breaker so a
// failing Redis or Postgres degrades lookups to uncached instead of failing them.
package resilient

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nameorigin/internal/cache"
	"nameorigin/pkg/platform/circuit"
	"nameorigin/pkg/platform/sentinel"
)

// errBypassed is both a miss and an availability fact, so callers treating
// it as a miss fall through to the upstream.
var errBypassed = errors.Join(sentinel.ErrUnavailable, sentinel.ErrNotFound)

// Store wraps a primary cache. While the breaker is open every Get is a
// miss and every Set is dropped.
type Store struct {
	primary cache.Store
	breaker *circuit.Breaker
	logger  *slog.Logger
}

type Option func(*Store)

func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Store) {
		if b != nil {
			s.breaker = b
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(primary cache.Store, opts ...Option) *Store {
	s := &Store{
		primary: primary,
		breaker: circuit.New("cache"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if !s.breaker.Allow() {
		return nil, errBypassed
	}
	raw, err := s.primary.Get(ctx, key)
	if err != nil && !cache.IsMiss(err) {
		s.onFailure(ctx, "get", err)
		return nil, errBypassed
	}
	s.onSuccess(ctx)
	return raw, err
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !s.breaker.Allow() {
		return nil
	}
	if err := s.primary.Set(ctx, key, value, ttl); err != nil {
		s.onFailure(ctx, "set", err)
		return nil
	}
	s.onSuccess(ctx)
	return nil
}

func (s *Store) onFailure(ctx context.Context, op string, err error) {
	_, change := s.breaker.RecordFailure()
	s.logger.WarnContext(ctx, "cache backend error, bypassing",
		"op", op,
		"error", err,
	)
	if change.Opened {
		s.logger.ErrorContext(ctx, "cache circuit opened", "breaker", s.breaker.Name())
	}
}

func (s *Store) onSuccess(ctx context.Context) {
	_, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.logger.InfoContext(ctx, "cache circuit closed", "breaker", s.breaker.Name())
	}
}
