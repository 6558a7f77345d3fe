package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache namespaces used as label values.
const (
	NamespaceName    = "name"
	NamespaceCountry = "country"
)

// Metrics provides observability for name lookups.
// All methods are safe on a nil receiver so tests can omit metrics.
type Metrics struct {
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	UpstreamDuration   *prometheus.HistogramVec
	UpstreamFailures   *prometheus.CounterVec
	EnrichmentFailures prometheus.Counter
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nameorigin_cache_hits_total",
			Help: "Cache hits by key namespace",
		}, []string{"namespace"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nameorigin_cache_misses_total",
			Help: "Cache misses by key namespace",
		}, []string{"namespace"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nameorigin_upstream_duration_seconds",
			Help:    "Latency of calls to external services",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"service"}),
		UpstreamFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nameorigin_upstream_failures_total",
			Help: "Failed calls to external services after retry",
		}, []string{"service"}),
		EnrichmentFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "nameorigin_enrichment_failures_total",
			Help: "Country entries returned without metadata",
		}),
	}
}

func (m *Metrics) IncrementCacheHit(namespace string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(namespace).Inc()
}

func (m *Metrics) IncrementCacheMiss(namespace string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(namespace).Inc()
}

// ObserveUpstream records one upstream call. Call with time.Now() at the start.
func (m *Metrics) ObserveUpstream(service string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.UpstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
	if err != nil {
		m.UpstreamFailures.WithLabelValues(service).Inc()
	}
}

func (m *Metrics) IncrementEnrichmentFailure() {
	if m == nil {
		return
	}
	m.EnrichmentFailures.Inc()
}
