// Package popularity counts which names are looked up for which countries.
package popularity

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"nameorigin/internal/nameorigin/models"
	dErrors "nameorigin/pkg/domain-errors"
	"nameorigin/pkg/requestcontext"
)

// Repository persists popularity records. Append must be safe for
// concurrent writers. TopByCountry groups by NameKey, counts records at or
// after since, and orders by count descending then by earliest record.
type Repository interface {
	Append(ctx context.Context, rec Record) error
	TopByCountry(ctx context.Context, country string, since time.Time, limit int) ([]PopularName, error)
}

// EventSink receives every record after it is stored.
type EventSink interface {
	Publish(ctx context.Context, rec Record) error
}

// Tracker records lookups and answers top-names queries.
type Tracker struct {
	repo    Repository
	sink    EventSink
	window  time.Duration
	logger  *slog.Logger
	metrics *Metrics

	recordTimeout time.Duration
}

// DefaultRecordTimeout bounds how long Record may hold up a lookup.
const DefaultRecordTimeout = 2 * time.Second

type Option func(*Tracker)

// WithWindow limits Top to records newer than d. Zero counts all-time.
func WithWindow(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.window = d
		}
	}
}

// WithRecordTimeout bounds the store append and publish made by Record.
func WithRecordTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.recordTimeout = d
		}
	}
}

func WithEventSink(sink EventSink) Option {
	return func(t *Tracker) {
		t.sink = sink
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

func New(repo Repository, opts ...Option) *Tracker {
	t := &Tracker{
		repo:   repo,
		logger: slog.New(slog.DiscardHandler),

		recordTimeout: DefaultRecordTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record appends a lookup of name for countryCode. Failures are logged and
// counted, never returned: a lost record must not fail the lookup. The append
// ignores the caller's cancellation and is bounded by the record timeout.
func (t *Tracker) Record(ctx context.Context, name, countryCode string) {
	name = strings.TrimSpace(name)
	code, ok := models.NormalizeCountryCode(countryCode)
	if name == "" || !ok {
		return
	}
	rec := Record{
		Name:        name,
		CountryCode: code,
		Timestamp:   requestcontext.Now(ctx).UTC(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.recordTimeout)
	defer cancel()

	if err := t.repo.Append(ctx, rec); err != nil {
		t.metrics.incRecordFailure()
		t.logger.WarnContext(ctx, "popularity record dropped",
			"country", code,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return
	}
	t.metrics.incRecorded()

	if t.sink == nil {
		return
	}
	if err := t.sink.Publish(ctx, rec); err != nil {
		t.metrics.incPublishFailure()
		t.logger.WarnContext(ctx, "popularity event not published",
			"country", code,
			"error", err,
		)
	}
}

// Top returns at most limit names for countryCode, most looked-up first.
// An unknown but well-formed code yields an empty list.
func (t *Tracker) Top(ctx context.Context, countryCode string, limit int) ([]PopularName, error) {
	code, ok := models.NormalizeCountryCode(countryCode)
	if !ok {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Query parameter 'country' must be a two-letter ISO code.")
	}
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	var since time.Time
	if t.window > 0 {
		since = requestcontext.Now(ctx).UTC().Add(-t.window)
	}

	names, err := t.repo.TopByCountry(ctx, code, since, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load popular names")
	}
	if names == nil {
		names = []PopularName{}
	}
	return names, nil
}
