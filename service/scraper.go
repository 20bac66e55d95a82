package service

import (
	"context"
	"fmt"

	"myscraper/domain"
	"myscraper/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Scraper runs one poll cycle: it queries the metrics backend, builds the
// catalog and hands it to every publisher.
type Scraper struct {
	source     interfaces.MetricsSource
	builder    *CatalogBuilder
	queries    domain.QuerySet
	publishers []interfaces.SnapshotPublisher
	logger     log.Logger
}

// NewScraper creates a Scraper. Panics on nil source, builder or logger.
// Publishers run in the given order.
func NewScraper(
	source interfaces.MetricsSource,
	builder *CatalogBuilder,
	queries domain.QuerySet,
	publishers []interfaces.SnapshotPublisher,
	logger log.Logger,
) *Scraper {
	logger = NilPanic(logger, "service.scraper.go: logger is required")
	return &Scraper{
		source:     NilPanic(source, "service.scraper.go: metrics source is required"),
		builder:    NilPanic(builder, "service.scraper.go: catalog builder is required"),
		queries:    queries,
		publishers: publishers,
		logger:     log.WithPrefix(logger, "component", "Scraper"),
	}
}

// Scrape runs the five queries one after another, builds the snapshot and
// publishes it. A failed query aborts the cycle before anything is published;
// a failed publisher aborts the remaining ones.
func (s *Scraper) Scrape(ctx context.Context) (domain.Snapshot, error) {
	var (
		in  CatalogInput
		err error
	)
	if in.JitsiParticipants, err = s.query(ctx, s.queries.JitsiParticipants); err != nil {
		return domain.Snapshot{}, err
	}
	if in.JitsiCPUUsage, err = s.query(ctx, s.queries.JitsiCPUUsage); err != nil {
		return domain.Snapshot{}, err
	}
	if in.EdumeetProbe, err = s.query(ctx, s.queries.EdumeetProbe); err != nil {
		return domain.Snapshot{}, err
	}
	if in.EdumeetCPUUsage, err = s.query(ctx, s.queries.EdumeetCPUUsage); err != nil {
		return domain.Snapshot{}, err
	}
	if in.EdumeetPeers, err = s.query(ctx, s.queries.EdumeetPeers); err != nil {
		return domain.Snapshot{}, err
	}

	snapshot := s.builder.Build(in)

	for _, p := range s.publishers {
		if err := p.Publish(ctx, snapshot); err != nil {
			return domain.Snapshot{}, NewInternalServerError("snapshot publish failed", fmt.Errorf("scrape failed to publish snapshot, err: %w", err))
		}
	}

	level.Info(s.logger).Log("msg", "Snapshot published", "instances", len(snapshot.Instances))
	return snapshot, nil
}

func (s *Scraper) query(ctx context.Context, expr string) ([]domain.Series, error) {
	level.Info(s.logger).Log("msg", "Querying metrics backend", "query", expr)
	series, err := s.source.Query(ctx, expr)
	if err != nil {
		return nil, NewUpstreamError("metrics query failed", fmt.Errorf("scrape failed to query %q, err: %w", expr, err))
	}
	return series, nil
}
