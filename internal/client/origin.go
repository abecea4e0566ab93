// Package client provides the outbound HTTP client used to fetch origin resources.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"webproxy-go/internal/config"
	"webproxy-go/internal/metrics"
	"webproxy-go/internal/model"
)

// ErrFetch is returned for every failure to obtain an origin response:
// DNS, refused connections, timeouts, TLS errors and truncated bodies alike.
var ErrFetch = errors.New("origin fetch failed")

// OriginClient performs single GET requests against arbitrary origins.
type OriginClient struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewOriginClient creates an OriginClient with connection pooling.
// Redirects are followed by the underlying client. The metrics parameter is
// optional; pass nil to disable origin metrics recording.
func NewOriginClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *OriginClient {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext:         newDialer(cfg).DialContext,
		TLSHandshakeTimeout: time.Duration(cfg.Upstream.TLSHandshakeTimeoutSeconds) * time.Second,
	}

	userAgent := cfg.Upstream.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	return &OriginClient{
		httpClient: &http.Client{
			Transport: transport,
			// Zero leaves the fetch unbounded; cancellation comes from ctx.
			Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		userAgent: userAgent,
		logger:    logger.With("component", "origin_client"),
		metrics:   m,
	}
}

// newDialer builds the origin dialer. A zero dial timeout leaves connection
// setup bounded only by the request context.
func newDialer(cfg *config.Config) *net.Dialer {
	return &net.Dialer{
		Timeout:   time.Duration(cfg.Upstream.DialTimeoutSeconds) * time.Second,
		KeepAlive: 30 * time.Second,
	}
}

// Fetch GETs target and buffers the whole response body. The body bytes are
// returned untouched, without any charset decoding. Any failure is wrapped
// in ErrFetch; the underlying cause remains reachable through errors.As.
func (c *OriginClient) Fetch(ctx context.Context, target *url.URL) (*model.OriginResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("origin request", "host", target.Host, "path", target.Path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observeFailure(start)
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observeFailure(start)
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}

	if c.metrics != nil {
		c.metrics.OriginDuration.Observe(time.Since(start).Seconds())
		c.metrics.OriginResponses.WithLabelValues(metrics.StatusClass(resp.StatusCode)).Inc()
	}

	return &model.OriginResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (c *OriginClient) observeFailure(start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.OriginDuration.Observe(time.Since(start).Seconds())
	c.metrics.OriginFailures.Inc()
}
