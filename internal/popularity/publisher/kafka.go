// Package publisher streams popularity records to Kafka so downstream
// consumers can build their own aggregates.
package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"nameorigin/internal/popularity"
)

// DefaultTopic receives one message per recorded lookup.
const DefaultTopic = "name-lookups"

// Producer is the subset of *kgo.Client the publisher needs.
type Producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

// Kafka publishes records asynchronously; delivery errors are logged from
// the produce callback.
type Kafka struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

type Option func(*Kafka)

func WithLogger(logger *slog.Logger) Option {
	return func(k *Kafka) {
		if logger != nil {
			k.logger = logger
		}
	}
}

func WithTopic(topic string) Option {
	return func(k *Kafka) {
		if topic != "" {
			k.topic = topic
		}
	}
}

// New wraps an existing producer.
func New(producer Producer, opts ...Option) *Kafka {
	k := &Kafka{
		producer: producer,
		topic:    DefaultTopic,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Dial connects to brokers, makes sure topic exists, and returns a publisher.
func Dial(ctx context.Context, brokers []string, topic string, opts ...Option) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(50*time.Millisecond),
		kgo.RecordDeliveryTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if err := EnsureTopic(ctx, kadm.NewClient(client), topic); err != nil {
		client.Close()
		return nil, err
	}
	return New(client, append([]Option{WithTopic(topic)}, opts...)...), nil
}

// EnsureTopic creates topic with a single partition if it does not exist.
func EnsureTopic(ctx context.Context, adm *kadm.Client, topic string) error {
	resp, err := adm.CreateTopic(ctx, 1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	return nil
}

// Publish enqueues rec keyed by country, so one country's records stay ordered.
func (k *Kafka) Publish(ctx context.Context, rec popularity.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode popularity record: %w", err)
	}
	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(rec.CountryCode),
		Value: payload,
	}
	// The request context may be cancelled before delivery completes.
	k.producer.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			k.logger.Warn("popularity event delivery failed",
				"topic", r.Topic,
				"country", string(r.Key),
				"error", err,
			)
		}
	})
	return nil
}

// Close flushes buffered records and closes the producer.
func (k *Kafka) Close(ctx context.Context) error {
	err := k.producer.Flush(ctx)
	k.producer.Close()
	return err
}
