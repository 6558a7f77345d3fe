package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"nameorigin/internal/cache"
	"nameorigin/internal/nameorigin/metrics"
	"nameorigin/internal/nameorigin/models"
	dErrors "nameorigin/pkg/domain-errors"
	"nameorigin/pkg/platform/sentinel"
	"nameorigin/pkg/requestcontext"
)

// MetadataFetcher resolves country codes to metadata, consulting the cache first.
type MetadataFetcher struct {
	client  CountryMetadataClient
	cache   cache.Store
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	group   singleflight.Group

	lookupTimeout time.Duration
}

type MetadataOption func(*MetadataFetcher)

func WithMetadataTTL(ttl time.Duration) MetadataOption {
	return func(f *MetadataFetcher) {
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

func WithMetadataLogger(logger *slog.Logger) MetadataOption {
	return func(f *MetadataFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func WithMetadataMetrics(m *metrics.Metrics) MetadataOption {
	return func(f *MetadataFetcher) {
		f.metrics = m
	}
}

// WithLookupTimeout bounds a shared upstream lookup, which no longer follows
// the cancellation of the request that started it.
func WithLookupTimeout(d time.Duration) MetadataOption {
	return func(f *MetadataFetcher) {
		if d > 0 {
			f.lookupTimeout = d
		}
	}
}

func NewMetadataFetcher(client CountryMetadataClient, store cache.Store, opts ...MetadataOption) *MetadataFetcher {
	f := &MetadataFetcher{
		client: client,
		cache:  store,
		ttl:    DefaultTTL,
		logger: discardLogger(),

		lookupTimeout: DefaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns metadata for code. Concurrent misses for the same code share
// one upstream call.
func (f *MetadataFetcher) Fetch(ctx context.Context, code string) (*models.CountryMetadata, error) {
	code, ok := models.NormalizeCountryCode(code)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "country code must be two letters")
	}
	key := cache.CountryKey(code)

	cached, err := cache.GetJSON[models.CountryMetadata](ctx, f.cache, key)
	switch {
	case err == nil:
		f.metrics.IncrementCacheHit(metrics.NamespaceCountry)
		return &cached, nil
	case !cache.IsMiss(err):
		f.logger.WarnContext(ctx, "country cache read failed, bypassing",
			"country", code,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	f.metrics.IncrementCacheMiss(metrics.NamespaceCountry)

	// The shared lookup serves every waiting request, so it runs detached
	// from the caller that started it. Each caller stops waiting on its own
	// cancellation.
	ch := f.group.DoChan(code, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.lookupTimeout)
		defer cancel()

		md, err := f.client.Lookup(lookupCtx, code)
		if err != nil {
			return nil, err
		}
		if err := cache.SetJSON(lookupCtx, f.cache, key, md, f.ttl); err != nil {
			f.logger.WarnContext(ctx, "country cache write failed",
				"country", code,
				"error", err,
			)
		}
		return md, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeUpstreamUnavailable, "country metadata lookup abandoned")
	}
	if err := res.Err; err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "country not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "country metadata service unavailable")
	}
	md := *res.Val.(*models.CountryMetadata)
	return &md, nil
}
