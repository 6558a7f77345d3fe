// Package upstream holds the HTTP plumbing shared by the external service
// clients: a bounded timeout, a single immediate retry, and status mapping.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"nameorigin/pkg/platform/sentinel"
)

// DefaultTimeout bounds a single upstream attempt.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// StatusError reports a non-success HTTP status from an upstream.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.StatusCode)
}

// Unwrap lets callers test retryable statuses with errors.Is(err, sentinel.ErrUnavailable).
func (e *StatusError) Unwrap() error {
	if e.retryable() {
		return sentinel.ErrUnavailable
	}
	return nil
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// NewHTTPClient returns a client whose attempts are bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Get issues a GET to url and returns the body of a 2xx response. Transport
// errors, 5xx and 429 are retried once immediately; nothing is retried twice.
func Get(ctx context.Context, hc *http.Client, service, url string) ([]byte, error) {
	body, err := getOnce(ctx, hc, service, url)
	if err == nil || !retryable(ctx, err) {
		return body, err
	}
	return getOnce(ctx, hc, service, url)
}

func getOnce(ctx context.Context, hc *http.Client, service, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", service, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s request: %w", sentinel.ErrUnavailable, service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{Service: service, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", sentinel.ErrUnavailable, service, err)
	}
	return body, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	return errors.Is(err, sentinel.ErrUnavailable)
}
