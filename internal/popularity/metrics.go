package popularity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks popularity recording. Methods are safe on a nil receiver.
type Metrics struct {
	Recorded        prometheus.Counter
	RecordFailures  prometheus.Counter
	PublishFailures prometheus.Counter
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Recorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "nameorigin_popularity_records_total",
			Help: "Name lookups recorded for popularity",
		}),
		RecordFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "nameorigin_popularity_record_failures_total",
			Help: "Popularity records dropped because the store failed",
		}),
		PublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "nameorigin_popularity_publish_failures_total",
			Help: "Popularity events the event sink rejected",
		}),
	}
}

func (m *Metrics) incRecorded() {
	if m != nil {
		m.Recorded.Inc()
	}
}

func (m *Metrics) incRecordFailure() {
	if m != nil {
		m.RecordFailures.Inc()
	}
}

func (m *Metrics) incPublishFailure() {
	if m != nil {
		m.PublishFailures.Inc()
	}
}
