// Package service implements request dispatch: target validation, origin
// fetch, header filtering and the rewrite-or-passthrough decision.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"webproxy-go/internal/metrics"
	"webproxy-go/internal/model"
	"webproxy-go/internal/proxyurl"
	"webproxy-go/internal/rewrite"
)

var (
	// ErrMissingTarget is returned when the request has no url parameter.
	ErrMissingTarget = proxyurl.ErrMissingTarget
	// ErrInvalidTarget is returned when the url parameter is not an absolute URL.
	ErrInvalidTarget = proxyurl.ErrInvalidTarget
	// ErrUpstreamUnavailable is returned when the origin produced no response.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// htmlMediaType selects documents that go through the rewrite engine.
const htmlMediaType = "text/html"

// Fetcher retrieves an origin resource.
type Fetcher interface {
	Fetch(ctx context.Context, target *url.URL) (*model.OriginResponse, error)
}

// ProxyService drives a single proxy request from raw query to response.
type ProxyService struct {
	fetcher Fetcher
	engine  *rewrite.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewProxyService creates a ProxyService. The metrics parameter is optional;
// pass nil to disable rewrite metrics recording.
func NewProxyService(f Fetcher, engine *rewrite.Engine, logger *slog.Logger, m *metrics.Metrics) *ProxyService {
	return &ProxyService{
		fetcher: f,
		engine:  engine,
		logger:  logger.With("component", "proxy_service"),
		metrics: m,
	}
}

// Dispatch validates the target carried in rawQuery, fetches it and returns
// the response to send. HTML bodies are rewritten; anything else is returned
// byte-for-byte. No fetch is attempted when validation fails.
func (s *ProxyService) Dispatch(ctx context.Context, rawQuery string) (*model.ProxyResponse, error) {
	target, err := proxyurl.Decode(rawQuery)
	if err != nil {
		return nil, err
	}

	return s.Forward(&model.ProxyRequest{Ctx: ctx, TargetURL: target})
}

// Forward fetches an already validated request.
func (s *ProxyService) Forward(pr *model.ProxyRequest) (*model.ProxyResponse, error) {
	s.logger.Debug("fetching origin", "target", pr.TargetURL.Redacted())

	origin, err := s.fetcher.Fetch(pr.Ctx, pr.TargetURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	resp := &model.ProxyResponse{
		StatusCode: origin.StatusCode,
		Header:     FilterHeaders(origin.Header),
		Body:       origin.Body,
	}

	if !isHTML(origin.ContentType()) {
		return resp, nil
	}

	// References resolve against the requested target, also after redirects.
	out, report, err := s.engine.Rewrite(string(origin.Body), rewrite.Context{BaseURL: pr.TargetURL})
	if err != nil {
		s.logger.Warn("rewrite failed; forwarding original document",
			"target", pr.TargetURL.Redacted(),
			"err", err,
		)
		return resp, nil
	}

	s.observe(report)
	resp.Body = []byte(out)
	resp.Rewritten = true
	return resp, nil
}

func (s *ProxyService) observe(report *rewrite.Report) {
	if s.metrics == nil {
		return
	}
	s.metrics.RewrittenDocuments.Inc()
	for _, res := range report.Results {
		s.metrics.RewriteReferences.WithLabelValues(res.Site.String(), res.Outcome.String()).Inc()
	}
}

func isHTML(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), htmlMediaType)
}
