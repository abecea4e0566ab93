// Package middleware provides Echo middleware for logging, metrics, rate
// limiting and security headers.
package middleware

import (
	"log/slog"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"webproxy-go/internal/proxyurl"
)

// quietPaths are probe endpoints logged at debug level.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/status":  true,
}

// RequestLogger returns an Echo middleware that logs each request with slog.
// Proxy requests carry the target host only; the full target URL may hold
// credentials.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"remote_ip", c.RealIP(),
				"bytes_out", res.Size,
			}
			if req.URL.Path == proxyurl.Path {
				if host := targetHost(req.URL.Query().Get(proxyurl.Param)); host != "" {
					attrs = append(attrs, "target_host", host)
				}
			}

			level := slog.LevelInfo
			if quietPaths[req.URL.Path] {
				level = slog.LevelDebug
			}
			logger.Log(req.Context(), level, "request", attrs...)

			return err
		}
	}
}

func targetHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
