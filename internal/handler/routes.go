package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"webproxy-go/internal/config"
	"webproxy-go/internal/metrics"
	"webproxy-go/internal/middleware"
	"webproxy-go/internal/proxyurl"
)

// RegisterRoutes wires all route handlers onto the Echo instance. Security
// headers go on the routes the proxy serves itself; the proxy route answers
// with origin headers only.
func RegisterRoutes(e *echo.Echo, proxy *ProxyHandler, health *HealthHandler, index *IndexHandler) {
	secure := middleware.SecurityHeaders()

	e.GET("/", index.Serve, secure)
	e.GET("/healthz", health.Healthz, secure)
	e.GET("/status", health.Status, secure)

	e.GET(proxyurl.Path, proxy.Handle)
}

// RegisterMetrics exposes the Prometheus registry when metrics are enabled.
func RegisterMetrics(e *echo.Echo, cfg *config.Config, m *metrics.Metrics) {
	if !cfg.Metrics.Enabled {
		return
	}
	e.GET(cfg.Metrics.Path,
		echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})),
		middleware.SecurityHeaders(),
	)
}
