// Package httpfetch implements the fetch.Fetcher interface over plain
// HTTP using the standard library client. One HTTPFetcher is safe for
// concurrent use by multiple workers; the underlying http.Client
// manages connection pooling across them.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/csvsweep/csvsweep/internal/config"
	"github.com/csvsweep/csvsweep/internal/domain"
	"github.com/csvsweep/csvsweep/internal/fetch"
	"github.com/csvsweep/csvsweep/internal/redact"
)

// HTTPFetcher implements the fetch.Fetcher interface using net/http.
type HTTPFetcher struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains retrieval-specific configuration
	config config.FetchConfig

	// client is the shared HTTP client for making requests
	client *http.Client
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with the provided
// dependencies.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: Fetch configuration containing timeout, body cap, and user agent
//
// Returns:
//   - A properly initialized HTTPFetcher or an error if the configuration
//     is invalid
func NewHTTPFetcher(logger *slog.Logger, cfg config.FetchConfig) (*HTTPFetcher, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// Validate configuration
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", fetch.ErrInvalidConfig)
	}

	if cfg.MaxBodyBytes <= 0 {
		return nil, fmt.Errorf("%w: max body bytes must be positive", fetch.ErrInvalidConfig)
	}

	return &HTTPFetcher{
		logger: logger.With("component", "http_fetcher"),
		config: cfg,
		// Timeouts are applied per request through the context, so the
		// client itself carries none.
		client: &http.Client{},
	}, nil
}

// Fetch retrieves the body of the given resource over HTTP.
//
// The configured timeout bounds the whole operation, from connection to
// the last body byte, layered on top of whatever deadline the caller's
// context already carries. Responses with non-2xx status codes and
// bodies above the configured cap are rejected.
func (f *HTTPFetcher) Fetch(ctx context.Context, res domain.Resource) (*fetch.Payload, error) {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, res.URL, nil)
	if err != nil {
		return nil, fetch.NewRequestError(res.URL, 0,
			fmt.Errorf("%w: %v", fetch.ErrFetchFailed, err))
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.8")

	f.logger.DebugContext(ctx, "Fetching resource",
		"url", redact.URL(res.URL),
		"timeout", f.config.Timeout)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fetch.NewRequestError(res.URL, 0,
			fmt.Errorf("%w: %v", fetch.ErrFetchFailed, err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fetch.NewRequestError(res.URL, resp.StatusCode,
			fmt.Errorf("%w: %s", fetch.ErrUnexpectedStatus, resp.Status))
	}

	// Read one byte past the cap so an oversized body is detectable
	// without ever buffering more than the limit.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodyBytes+1))
	if err != nil {
		return nil, fetch.NewRequestError(res.URL, resp.StatusCode,
			fmt.Errorf("%w: reading body: %v", fetch.ErrFetchFailed, err))
	}
	if int64(len(body)) > f.config.MaxBodyBytes {
		return nil, fetch.NewRequestError(res.URL, resp.StatusCode,
			fmt.Errorf("%w: body exceeds %d bytes", fetch.ErrBodyTooLarge, f.config.MaxBodyBytes))
	}

	elapsed := time.Since(start)
	f.logger.DebugContext(ctx, "Resource fetched",
		"url", redact.URL(res.URL),
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", elapsed)

	return &fetch.Payload{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		ElapsedTime: elapsed,
	}, nil
}
