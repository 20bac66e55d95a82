package service

import (
	"context"
	"testing"

	"myscraper/domain"
	"myscraper/interfaces"
	"myscraper/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeSource(results map[string][]domain.Series, failOn string) *mock.MetricsSourceMock {
	return &mock.MetricsSourceMock{
		QueryFunc: func(ctx context.Context, expr string) ([]domain.Series, error) {
			if expr == failOn {
				return nil, assert.AnError
			}
			return results[expr], nil
		},
	}
}

func TestScraper_Scrape(t *testing.T) {
	queries := domain.DefaultQuerySet()
	results := map[string][]domain.Series{
		queries.JitsiParticipants: {jitsiSeries("https://meet.acme.example/", "3")},
		queries.JitsiCPUUsage:     {jitsiSeries("https://meet.acme.example/", "0.4512")},
		queries.EdumeetCPUUsage:   {edumeetSeries("https://edumeet.uni.example", "0.1")},
		queries.EdumeetPeers:      {edumeetSeries("https://edumeet.uni.example", "5")},
	}
	source := fakeSource(results, "")
	first := &mock.SnapshotPublisherMock{}
	second := &mock.SnapshotPublisherMock{}

	scraper := NewScraper(source, newTestBuilder(), queries, []interfaces.SnapshotPublisher{first, second}, log.NewNopLogger())
	snap, err := scraper.Scrape(context.Background())
	require.NoError(t, err)

	calls := source.QueryCalls()
	require.Len(t, calls, 5)
	assert.Equal(t, queries.JitsiParticipants, calls[0].Expr)
	assert.Equal(t, queries.JitsiCPUUsage, calls[1].Expr)
	assert.Equal(t, queries.EdumeetProbe, calls[2].Expr)
	assert.Equal(t, queries.EdumeetCPUUsage, calls[3].Expr)
	assert.Equal(t, queries.EdumeetPeers, calls[4].Expr)

	require.Len(t, snap.Instances, 2)
	require.Len(t, first.PublishCalls(), 1)
	require.Len(t, second.PublishCalls(), 1)
	assert.Equal(t, snap, first.PublishCalls()[0].Snapshot)
}

func TestScraper_QueryErrorAbortsCycle(t *testing.T) {
	queries := domain.DefaultQuerySet()
	for _, failOn := range []string{
		queries.JitsiParticipants,
		queries.JitsiCPUUsage,
		queries.EdumeetProbe,
		queries.EdumeetCPUUsage,
		queries.EdumeetPeers,
	} {
		t.Run(failOn, func(t *testing.T) {
			publisher := &mock.SnapshotPublisherMock{}
			scraper := NewScraper(fakeSource(nil, failOn), newTestBuilder(), queries, []interfaces.SnapshotPublisher{publisher}, log.NewNopLogger())

			_, err := scraper.Scrape(context.Background())
			require.Error(t, err)
			assert.True(t, IsUpstreamError(err))
			assert.ErrorIs(t, err, assert.AnError)
			assert.Empty(t, publisher.PublishCalls())
		})
	}
}

func TestScraper_QueriesStopAtFirstError(t *testing.T) {
	queries := domain.DefaultQuerySet()
	source := fakeSource(nil, queries.JitsiCPUUsage)
	scraper := NewScraper(source, newTestBuilder(), queries, nil, log.NewNopLogger())

	_, err := scraper.Scrape(context.Background())
	require.Error(t, err)
	assert.Len(t, source.QueryCalls(), 2)
}

func TestScraper_PublishErrorStopsRemainingPublishers(t *testing.T) {
	failing := &mock.SnapshotPublisherMock{
		PublishFunc: func(ctx context.Context, snapshot domain.Snapshot) error {
			return assert.AnError
		},
	}
	next := &mock.SnapshotPublisherMock{}
	scraper := NewScraper(fakeSource(nil, ""), newTestBuilder(), domain.DefaultQuerySet(), []interfaces.SnapshotPublisher{failing, next}, log.NewNopLogger())

	_, err := scraper.Scrape(context.Background())
	require.Error(t, err)
	assert.True(t, IsInternalServerError(err))
	assert.Len(t, failing.PublishCalls(), 1)
	assert.Empty(t, next.PublishCalls())
}

func TestNewScraper_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewScraper(nil, newTestBuilder(), domain.DefaultQuerySet(), nil, log.NewNopLogger())
	})
	assert.Panics(t, func() {
		NewScraper(&mock.MetricsSourceMock{}, nil, domain.DefaultQuerySet(), nil, log.NewNopLogger())
	})
	assert.Panics(t, func() {
		NewScraper(&mock.MetricsSourceMock{}, newTestBuilder(), domain.DefaultQuerySet(), nil, nil)
	})
}
