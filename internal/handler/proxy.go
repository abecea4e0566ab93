package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"

	"webproxy-go/internal/service"
)

// Plain-text bodies returned for failed proxy requests.
const (
	msgMissingTarget = "Missing URL parameter"
	msgInvalidTarget = "Invalid URL parameter"
	msgUpstream      = "Failed to fetch target URL"
	msgInternal      = "Internal proxy error"
)

// userinfoPattern matches the password part of URL userinfo embedded in error messages.
var userinfoPattern = regexp.MustCompile(`(://[^:/@\s"]+:)[^@/\s"]+@`)

// ProxyHandler serves GET /proxy?url=<target>.
type ProxyHandler struct {
	service *service.ProxyService
	logger  *slog.Logger
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: svc,
		logger:  logger.With("component", "proxy_handler"),
	}
}

// Handle dispatches the request and writes the filtered origin headers,
// the origin status code and the (possibly rewritten) body.
func (h *ProxyHandler) Handle(c echo.Context) error {
	req := c.Request()

	resp, err := h.service.Dispatch(req.Context(), req.URL.RawQuery)
	if err != nil {
		return h.mapError(c, err)
	}

	// Only filtered origin headers are added; request-scoped headers such as
	// X-Request-Id set by middleware are left in place.
	header := c.Response().Header()
	for key, vals := range resp.Header {
		header[key] = vals
	}

	c.Response().WriteHeader(resp.StatusCode)

	// The status line is already out, so a failed write can only be logged.
	if _, err := c.Response().Write(resp.Body); err != nil && !errors.Is(err, http.ErrBodyNotAllowed) {
		h.logger.Error("writing response body",
			"err", err,
			"status", resp.StatusCode,
		)
	}

	return nil
}

func (h *ProxyHandler) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMissingTarget):
		h.logger.Info("rejected proxy request", "reason", "missing target")
		return c.String(http.StatusBadRequest, msgMissingTarget)

	case errors.Is(err, service.ErrInvalidTarget):
		h.logger.Info("rejected proxy request", "reason", "invalid target", "err", sanitizeError(err))
		return c.String(http.StatusBadRequest, msgInvalidTarget)

	case errors.Is(err, service.ErrUpstreamUnavailable):
		h.logger.Error("upstream fetch failed", "err", sanitizeError(err))
		return c.String(http.StatusInternalServerError, msgUpstream)
	}

	h.logger.Error("proxy error", "err", sanitizeError(err))
	return c.String(http.StatusInternalServerError, msgInternal)
}

// sanitizeError redacts URL passwords from error messages that echo target URLs.
func sanitizeError(err error) string {
	return userinfoPattern.ReplaceAllString(err.Error(), "${1}[REDACTED]@")
}
