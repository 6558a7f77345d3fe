//go:build integration

package publisher_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"nameorigin/internal/popularity"
	"nameorigin/internal/popularity/publisher"
	"nameorigin/pkg/testutil/containers"
)

func TestKafkaPublisher_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	broker := containers.GetManager().GetRedpanda(t)
	topic := "name-lookups-test"

	pub, err := publisher.Dial(ctx, []string{broker.Broker}, topic)
	require.NoError(t, err)

	rec := popularity.Record{Name: "Maria", CountryCode: "RO", Timestamp: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, pub.Publish(ctx, rec))
	require.NoError(t, pub.Close(ctx))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())

	var got []popularity.Record
	fetches.EachRecord(func(r *kgo.Record) {
		var decoded popularity.Record
		require.NoError(t, json.Unmarshal(r.Value, &decoded))
		got = append(got, decoded)
	})
	require.Len(t, got, 1)
	require.Equal(t, rec, got[0])
}
