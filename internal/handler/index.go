package handler

import (
	_ "embed"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"webproxy-go/internal/config"
)

//go:embed static/index.html
var defaultIndex []byte

// IndexHandler serves the control panel entry page.
type IndexHandler struct {
	staticDir string
}

// NewIndexHandler creates an IndexHandler. When server.static_dir is set the
// page is read from <static_dir>/index.html, otherwise the built-in page is used.
func NewIndexHandler(cfg *config.Config) *IndexHandler {
	return &IndexHandler{staticDir: cfg.Server.StaticDir}
}

// Serve writes the control panel page.
func (h *IndexHandler) Serve(c echo.Context) error {
	if h.staticDir != "" {
		return c.File(filepath.Join(h.staticDir, "index.html"))
	}
	return c.HTMLBlob(http.StatusOK, defaultIndex)
}
