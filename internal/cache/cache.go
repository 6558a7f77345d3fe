// Package cache defines the byte-oriented lookup cache shared by the name
// and country fetchers, plus helpers to store JSON values in it.
//
// Backends return sentinel.ErrNotFound on a miss or an expired entry.
// Any other error means the backend itself failed; callers are expected
// to fall through to the upstream rather than fail the request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nameorigin/pkg/platform/sentinel"
)

// Store is a key/value cache with per-entry time-to-live.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NameKey is the cache key for a name-origin prediction. Names are
// case-insensitive, so "Maria" and "maria" share an entry.
func NameKey(name string) string {
	return "name:" + strings.ToLower(strings.TrimSpace(name))
}

// CountryKey is the cache key for a country's metadata.
func CountryKey(code string) string {
	return "country:" + strings.ToUpper(strings.TrimSpace(code))
}

// GetJSON loads key and decodes it into T. A miss returns sentinel.ErrNotFound.
// An undecodable entry is reported as a miss so it gets overwritten.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("decode cache entry %s: %w", key, errors.Join(sentinel.ErrNotFound, err))
	}
	return out, nil
}

// SetJSON encodes v and stores it under key for ttl. Every entry must
// expire, so a non-positive ttl is rejected with sentinel.ErrInvalidState.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("cache entry %s: ttl %s: %w", key, ttl, sentinel.ErrInvalidState)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return s.Set(ctx, key, raw, ttl)
}

// IsMiss reports whether err is a cache miss rather than a backend failure.
func IsMiss(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}
