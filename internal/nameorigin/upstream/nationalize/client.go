// Package nationalize is a client for the nationalize.io name-origin API.
package nationalize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nameorigin/internal/nameorigin/metrics"
	"nameorigin/internal/nameorigin/models"
	"nameorigin/internal/nameorigin/upstream"
)

const serviceName = "nationalize"

// DefaultBaseURL is the public nationalize.io endpoint.
const DefaultBaseURL = "https://api.nationalize.io"

type response struct {
	Name    string `json:"name"`
	Country []struct {
		CountryID   string  `json:"country_id"`
		Probability float64 `json:"probability"`
	} `json:"country"`
}

// Client predicts the likely countries of origin for a name.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Client)

// WithAPIKey sends apikey with each request for the paid tier.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    upstream.NewHTTPClient(upstream.DefaultTimeout),
		tracer:  otel.Tracer("nameorigin/upstream/nationalize"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predict returns the upstream's country predictions for name, in upstream order.
func (c *Client) Predict(ctx context.Context, name string) (_ []models.CountryScore, err error) {
	ctx, span := c.tracer.Start(ctx, "nationalize.Predict",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("name", name)),
	)
	start := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(serviceName, start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	q := url.Values{}
	q.Set("name", name)
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}

	body, err := upstream.Get(ctx, c.http, serviceName, c.baseURL+"/?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode nationalize response: %w", err)
	}

	scores := make([]models.CountryScore, 0, len(decoded.Country))
	for _, item := range decoded.Country {
		code := strings.ToUpper(strings.TrimSpace(item.CountryID))
		if code == "" {
			continue
		}
		scores = append(scores, models.CountryScore{
			Code:        code,
			Probability: item.Probability,
		})
	}
	span.SetAttributes(attribute.Int("countries", len(scores)))
	return scores, nil
}
