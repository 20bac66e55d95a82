package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerInterface lists the operations of api/myscraper.openapi.yaml.
type ServerInterface interface {
	// GetHosts (GET /v1/hosts) returns the latest snapshot.
	GetHosts(ctx echo.Context) error
	// GetHealth (GET /v1/health) reports liveness.
	GetHealth(ctx echo.Context) error
}

// HealthResponse is the body of GET /v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds every operation of si to router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	router.GET("/v1/hosts", si.GetHosts)
	router.GET("/v1/health", si.GetHealth)
}

// RegisterMetricsHandler exposes the metrics of gatherer on GET /metrics.
func RegisterMetricsHandler(router EchoRouter, gatherer prometheus.Gatherer) {
	router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
