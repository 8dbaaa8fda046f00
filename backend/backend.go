// Package backend talks to the external document registry over HTTP.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meghashyamc/docregistry/logger"
	"golang.org/x/time/rate"
)

const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed response body ends up in an error.
const maxErrorBody = 512

type Backend struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     logger.Logger
}

type Option func(*Backend)

func WithTimeout(d time.Duration) Option {
	return func(b *Backend) {
		b.timeout = d
	}
}

// WithRateLimit caps outbound requests per second. Zero or negative disables it.
func WithRateLimit(rps float64) Option {
	return func(b *Backend) {
		if rps > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(b *Backend) {
		b.httpClient = httpClient
	}
}

func New(logger logger.Logger, baseURL string, opts ...Option) *Backend {
	b := &Backend{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.httpClient == nil {
		b.httpClient = &http.Client{Timeout: b.timeout}
	}

	return b
}

func (b *Backend) getJSON(ctx context.Context, op string, path string, query url.Values, out any) error {
	return b.do(ctx, op, http.MethodGet, path, query, out)
}

func (b *Backend) delete(ctx context.Context, op string, path string) error {
	return b.do(ctx, op, http.MethodDelete, path, nil, nil)
}

func (b *Backend) do(ctx context.Context, op string, method string, path string, query url.Values, out any) error {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return &CallError{Op: op, Err: err}
		}
	}

	endpoint := b.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return &CallError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Warn("backend request failed", "op", op, "method", method, "url", endpoint, "err", err.Error())
		return &CallError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	b.logger.Debug("backend request", "op", op, "method", method, "url", endpoint, "status", resp.StatusCode, "duration", time.Since(start).String())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &CallError{Op: op, Status: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(body)))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		b.logger.Warn("could not decode backend response", "op", op, "url", endpoint, "err", err.Error())
		return &CallError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
