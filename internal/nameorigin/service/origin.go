package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"nameorigin/internal/cache"
	"nameorigin/internal/nameorigin/metrics"
	"nameorigin/internal/nameorigin/models"
	dErrors "nameorigin/pkg/domain-errors"
	"nameorigin/pkg/requestcontext"
)

// OriginFetcher resolves a name to its ranked, enriched countries of origin.
type OriginFetcher struct {
	client   NameOriginClient
	metadata MetadataSource
	cache    cache.Store
	tracker  PopularityRecorder
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*OriginFetcher)

func WithTTL(ttl time.Duration) Option {
	return func(f *OriginFetcher) {
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *OriginFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *OriginFetcher) {
		f.metrics = m
	}
}

// WithPopularity records each successful lookup's top country.
func WithPopularity(tracker PopularityRecorder) Option {
	return func(f *OriginFetcher) {
		f.tracker = tracker
	}
}

func NewOriginFetcher(client NameOriginClient, metadata MetadataSource, store cache.Store, opts ...Option) *OriginFetcher {
	f := &OriginFetcher{
		client:   client,
		metadata: metadata,
		cache:    store,
		ttl:      DefaultTTL,
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Lookup returns at most five countries for name, sorted by probability
// descending. Countries whose metadata could not be fetched carry nil Metadata.
func (f *OriginFetcher) Lookup(ctx context.Context, name string) (*models.NameQuery, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Query parameter 'name' is required.")
	}
	if utf8.RuneCountInString(name) > models.MaxNameLength {
		return nil, dErrors.New(dErrors.CodeBadRequest, "name must be at most 100 characters")
	}

	countries, err := f.load(ctx, name)
	if err != nil {
		return nil, err
	}

	result := &models.NameQuery{Name: name, Countries: countries}
	if top := result.TopCountry(); top != "" && f.tracker != nil {
		f.tracker.Record(ctx, name, top)
	}
	return result, nil
}

func (f *OriginFetcher) load(ctx context.Context, name string) ([]models.CountryScore, error) {
	key := cache.NameKey(name)
	requestID := requestcontext.RequestID(ctx)

	cached, err := cache.GetJSON[[]models.CountryScore](ctx, f.cache, key)
	switch {
	case err == nil:
		f.metrics.IncrementCacheHit(metrics.NamespaceName)
		return cached, nil
	case !cache.IsMiss(err):
		f.logger.WarnContext(ctx, "name cache read failed, bypassing",
			"error", err,
			"request_id", requestID,
		)
	}
	f.metrics.IncrementCacheMiss(metrics.NamespaceName)

	scores, err := f.client.Predict(ctx, name)
	if err != nil {
		f.logger.ErrorContext(ctx, "name origin service failed",
			"error", err,
			"request_id", requestID,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "name origin service unavailable")
	}

	countries := rank(scores)
	f.enrich(ctx, countries)

	// A cancelled caller may have abandoned enrichment; its partial result
	// must not be cached for other requests.
	if ctx.Err() != nil {
		return countries, nil
	}
	if err := cache.SetJSON(ctx, f.cache, key, countries, f.ttl); err != nil {
		f.logger.WarnContext(ctx, "name cache write failed",
			"error", err,
			"request_id", requestID,
		)
	}
	return countries, nil
}

// rank sorts by probability descending, keeping upstream order for ties, and
// caps the result at MaxCountries.
func rank(scores []models.CountryScore) []models.CountryScore {
	out := make([]models.CountryScore, len(scores))
	copy(out, scores)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability > out[j].Probability
	})
	if len(out) > models.MaxCountries {
		out = out[:models.MaxCountries]
	}
	return out
}

// enrich attaches metadata in place. A failed lookup leaves that entry's
// Metadata nil and does not affect the others.
func (f *OriginFetcher) enrich(ctx context.Context, countries []models.CountryScore) {
	var g errgroup.Group
	g.SetLimit(enrichmentConcurrency)
	for i := range countries {
		g.Go(func() error {
			md, err := f.metadata.Fetch(ctx, countries[i].Code)
			if err != nil {
				f.metrics.IncrementEnrichmentFailure()
				f.logger.WarnContext(ctx, "country enrichment failed",
					"country", countries[i].Code,
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				return nil
			}
			countries[i].Metadata = md
			return nil
		})
	}
	_ = g.Wait()
}
