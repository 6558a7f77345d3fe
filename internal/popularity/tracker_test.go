package popularity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameorigin/internal/popularity"
	"nameorigin/internal/popularity/store/memory"
	dErrors "nameorigin/pkg/domain-errors"
	"nameorigin/pkg/requestcontext"
)

type failingRepo struct{}

func (failingRepo) Append(context.Context, popularity.Record) error {
	return errors.New("disk full")
}

func (failingRepo) TopByCountry(context.Context, string, time.Time, int) ([]popularity.PopularName, error) {
	return nil, errors.New("disk full")
}

type captureSink struct {
	records []popularity.Record
	err     error
}

func (c *captureSink) Publish(_ context.Context, rec popularity.Record) error {
	c.records = append(c.records, rec)
	return c.err
}

func at(ts time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), ts)
}

func TestTracker_RecordAndTop(t *testing.T) {
	tracker := popularity.New(memory.NewInMemoryStore())
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, name := range []string{"Maria", "Ion", "maria", "Elena", "Ion", "Ana", "Mihai", "Vlad"} {
		tracker.Record(at(ts), name, "ro")
	}

	got, err := tracker.Top(context.Background(), "RO", 5)
	require.NoError(t, err)
	assert.Equal(t, []popularity.PopularName{
		{Name: "Maria", Count: 2},
		{Name: "Ion", Count: 2},
		{Name: "Elena", Count: 1},
		{Name: "Ana", Count: 1},
		{Name: "Mihai", Count: 1},
	}, got)
}

func TestTracker_TopValidatesCountry(t *testing.T) {
	tracker := popularity.New(memory.NewInMemoryStore())

	for _, code := range []string{"", "ROU", "1!"} {
		_, err := tracker.Top(context.Background(), code, 5)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest), code)
	}
}

func TestTracker_TopUnknownCountryIsEmpty(t *testing.T) {
	tracker := popularity.New(memory.NewInMemoryStore())

	got, err := tracker.Top(context.Background(), "zz", 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTracker_LimitIsCapped(t *testing.T) {
	tracker := popularity.New(memory.NewInMemoryStore())
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		tracker.Record(context.Background(), name, "US")
	}

	got, err := tracker.Top(context.Background(), "US", 50)
	require.NoError(t, err)
	assert.Len(t, got, popularity.DefaultLimit)
}

func TestTracker_Window(t *testing.T) {
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tracker := popularity.New(memory.NewInMemoryStore(), popularity.WithWindow(24*time.Hour))

	tracker.Record(at(ts), "Old", "PT")
	tracker.Record(at(ts), "Old", "PT")
	tracker.Record(at(ts.Add(30*time.Hour)), "New", "PT")

	got, err := tracker.Top(at(ts.Add(36*time.Hour)), "PT", 5)
	require.NoError(t, err)
	assert.Equal(t, []popularity.PopularName{{Name: "New", Count: 1}}, got)
}

func TestTracker_RecordSwallowsStoreFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := popularity.NewMetricsWith(reg)
	sink := &captureSink{}
	tracker := popularity.New(failingRepo{}, popularity.WithMetrics(m), popularity.WithEventSink(sink))

	assert.NotPanics(t, func() { tracker.Record(context.Background(), "Maria", "RO") })
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordFailures))
	assert.Empty(t, sink.records, "nothing is published for a dropped record")

	_, err := tracker.Top(context.Background(), "RO", 5)
	assert.True(t, dErrors.Is(err, dErrors.CodeInternal))
}

func TestTracker_PublishesStoredRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := popularity.NewMetricsWith(reg)
	sink := &captureSink{err: errors.New("broker down")}
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tracker := popularity.New(memory.NewInMemoryStore(), popularity.WithMetrics(m), popularity.WithEventSink(sink))

	tracker.Record(at(ts), " Maria ", "ro")

	require.Len(t, sink.records, 1)
	assert.Equal(t, popularity.Record{Name: "Maria", CountryCode: "RO", Timestamp: ts}, sink.records[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Recorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PublishFailures))
}

func TestTracker_IgnoresUnattributableLookups(t *testing.T) {
	sink := &captureSink{}
	tracker := popularity.New(memory.NewInMemoryStore(), popularity.WithEventSink(sink))

	tracker.Record(context.Background(), "", "RO")
	tracker.Record(context.Background(), "Maria", "")
	assert.Empty(t, sink.records)
}

type blockingRepo struct {
	popularity.Repository
}

func (blockingRepo) Append(ctx context.Context, _ popularity.Record) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestTracker_RecordOutlivesCancelledRequest(t *testing.T) {
	tracker := popularity.New(memory.NewInMemoryStore())
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	ctx, cancel := context.WithCancel(at(ts))
	cancel()
	tracker.Record(ctx, "Maria", "RO")

	got, err := tracker.Top(context.Background(), "RO", 5)
	require.NoError(t, err)
	assert.Equal(t, []popularity.PopularName{{Name: "Maria", Count: 1}}, got)
}

func TestTracker_RecordIsTimeBounded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := popularity.NewMetricsWith(reg)
	tracker := popularity.New(blockingRepo{},
		popularity.WithMetrics(m),
		popularity.WithRecordTimeout(20*time.Millisecond),
	)

	start := time.Now()
	tracker.Record(context.Background(), "Maria", "RO")

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordFailures))
}
