// Package service resolves names to ranked countries of origin and enriches
// them with country metadata, caching both lookups.
package service

import (
	"context"
	"log/slog"
	"time"

	"nameorigin/internal/nameorigin/models"
)

// DefaultTTL is how long both lookups stay cached.
const DefaultTTL = 24 * time.Hour

// DefaultLookupTimeout bounds one shared country lookup, retries included.
const DefaultLookupTimeout = 15 * time.Second

// enrichmentConcurrency bounds concurrent metadata lookups per request.
const enrichmentConcurrency = models.MaxCountries

// NameOriginClient predicts countries of origin for a name.
type NameOriginClient interface {
	Predict(ctx context.Context, name string) ([]models.CountryScore, error)
}

// CountryMetadataClient looks up metadata for an ISO alpha-2 code.
type CountryMetadataClient interface {
	Lookup(ctx context.Context, code string) (*models.CountryMetadata, error)
}

// MetadataSource resolves a country code to metadata, typically through a cache.
type MetadataSource interface {
	Fetch(ctx context.Context, code string) (*models.CountryMetadata, error)
}

// PopularityRecorder receives one record per successful name lookup.
// Implementations handle their own failures.
type PopularityRecorder interface {
	Record(ctx context.Context, name, countryCode string)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
