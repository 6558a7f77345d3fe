// Package restcountries is a client for the restcountries.com v3.1 API.
package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	"nameorigin/pkg/platform/sentinel"
)

const serviceName = "restcountries"

// DefaultBaseURL is the public v3.1 endpoint.
const DefaultBaseURL = "https://restcountries.com/v3.1"

type rcCountry struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2        string   `json:"cca2"`
	CCA3        string   `json:"cca3"`
	Region      string   `json:"region"`
	Independent *bool    `json:"independent"`
	Capital     []string `json:"capital"`
	CapitalInfo struct {
		LatLng []float64 `json:"latlng"`
	} `json:"capitalInfo"`
	Maps struct {
		GoogleMaps     string `json:"googleMaps"`
		OpenStreetMaps string `json:"openStreetMaps"`
	} `json:"maps"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
		Alt string `json:"alt"`
	} `json:"flags"`
	CoatOfArms struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"coatOfArms"`
	Borders []string `json:"borders"`
}

// Client looks up country metadata by ISO alpha-2 code.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Client)

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
		tracer:  otel.Tracer("nameorigin/upstream/restcountries"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches metadata for code. An unknown code yields sentinel.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, code string) (_ *models.CountryMetadata, err error) {
	ctx, span := c.tracer.Start(ctx, "restcountries.Lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("country", code)),
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

	body, err := upstream.Get(ctx, c.http, serviceName, c.baseURL+"/alpha/"+url.PathEscape(code))
	if err != nil {
		if upstream.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("country %s: %w", code, sentinel.ErrNotFound)
		}
		return nil, err
	}

	country, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode restcountries response: %w", err)
	}
	return toMetadata(code, country), nil
}

// decode accepts both the array form returned by /alpha/{code} and a bare object.
func decode(body []byte) (*rcCountry, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty body")
	}
	if trimmed[0] == '{' {
		var one rcCountry
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, err
		}
		return &one, nil
	}
	var many []rcCountry
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return nil, err
	}
	if len(many) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return &many[0], nil
}

func toMetadata(code string, c *rcCountry) *models.CountryMetadata {
	md := &models.CountryMetadata{
		Code:             strings.ToUpper(code),
		Alpha3:           c.CCA3,
		DisplayName:      c.Name.Common,
		OfficialName:     c.Name.Official,
		Region:           c.Region,
		Independent:      c.Independent,
		GoogleMapsURL:    c.Maps.GoogleMaps,
		OpenStreetMapURL: c.Maps.OpenStreetMaps,
		FlagURL:          c.Flags.PNG,
		FlagSVG:          c.Flags.SVG,
		FlagAlt:          c.Flags.Alt,
		CoatOfArmsPNG:    c.CoatOfArms.PNG,
		CoatOfArmsSVG:    c.CoatOfArms.SVG,
		Borders:          c.Borders,
	}
	if md.Borders == nil {
		md.Borders = []string{}
	}
	if len(c.Capital) > 0 {
		md.Capital = c.Capital[0]
	}
	if ll := c.CapitalInfo.LatLng; len(ll) == 2 {
		lat, lng := ll[0], ll[1]
		md.CapitalLat = &lat
		md.CapitalLng = &lng
	}
	return md
}
