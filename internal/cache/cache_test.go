package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameorigin/internal/cache"
	"nameorigin/internal/cache/memory"
	"nameorigin/pkg/platform/sentinel"
)

type payload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "name:maria", cache.NameKey(" Maria "))
	assert.Equal(t, cache.NameKey("MARIA"), cache.NameKey("maria"))
	assert.Equal(t, "country:RO", cache.CountryKey("ro"))
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store := memory.New(16)

	_, err := cache.GetJSON[payload](ctx, store, "k")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.True(t, cache.IsMiss(err))

	require.NoError(t, cache.SetJSON(ctx, store, "k", payload{Name: "maria", Score: 0.5}, time.Hour))
	got, err := cache.GetJSON[payload](ctx, store, "k")
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "maria", Score: 0.5}, got)
}

func TestGetJSON_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := memory.New(16)
	require.NoError(t, store.Set(ctx, "k", []byte("{not json"), time.Hour))

	_, err := cache.GetJSON[payload](ctx, store, "k")
	require.Error(t, err)
	assert.True(t, cache.IsMiss(err))
}

func TestIsMiss_BackendFailure(t *testing.T) {
	assert.False(t, cache.IsMiss(errors.New("connection refused")))
	assert.False(t, cache.IsMiss(sentinel.ErrUnavailable))
}

func TestSetJSON_RejectsNonExpiringEntry(t *testing.T) {
	ctx := context.Background()
	store := memory.New(16)

	for _, ttl := range []time.Duration{0, -time.Second} {
		err := cache.SetJSON(ctx, store, "k", payload{Name: "maria"}, ttl)
		require.ErrorIs(t, err, sentinel.ErrInvalidState, ttl.String())
	}
	assert.Equal(t, 0, store.Len())
}
