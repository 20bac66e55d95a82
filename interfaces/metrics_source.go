package interfaces

import (
	"context"

	"myscraper/domain"
)

// MetricsSource runs instant-vector queries against the metrics backend.
//
// Implemented by adapters/prometheus.Client. Called from service.Scraper once per expression per cycle.
//
//go:generate moq -stub -out mock/metrics_source.go -pkg mock . MetricsSource
type MetricsSource interface {
	// Query evaluates expr and returns every series of the result.
	// Returns: (series, nil) on success, possibly empty; (nil, error) on transport error,
	// non-200 status, undecodable body or a non-success query status.
	Query(ctx context.Context, expr string) ([]domain.Series, error)
}
