// Package handlers contains http handlers for myscraper.
package handlers

import (
	"fmt"
	"net/http"

	"myscraper/domain"
	"myscraper/interfaces"
	"myscraper/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

const healthOK = "ok"

// HTTPServer implements ServerInterface on top of the snapshot cache.
type HTTPServer struct {
	cache  interfaces.Cache[domain.Snapshot]
	logger log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(cache interfaces.Cache[domain.Snapshot], logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		cache:  service.NilPanic(cache, "handlers.http.go: cache is required"),
		logger: logger,
	}
}

// GetHosts (GET /v1/hosts) reads the latest snapshot from cache. Returns 200 with the snapshot,
// 404 before the first successful cycle, 500 on cache error.
func (h *HTTPServer) GetHosts(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	snapshot, err := h.cache.ReadValue(ctx, service.LatestSnapshotKey)
	if err != nil {
		return fmt.Errorf("getHosts failed to read snapshot from cache, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, snapshot)
}

// GetHealth (GET /v1/health) always returns 200.
func (h *HTTPServer) GetHealth(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, HealthResponse{Status: healthOK})
}
