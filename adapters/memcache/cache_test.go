package memcache

import (
	"context"
	"testing"
	"time"

	"myscraper/domain"
	"myscraper/interfaces"
	"myscraper/interfaces/mock"
	"myscraper/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ interfaces.Cache[domain.Snapshot] = (*memoryCache[domain.Snapshot])(nil)

func fixedClock(now *time.Time) *mock.TimeProviderMock {
	return &mock.TimeProviderMock{NowFunc: func() time.Time { return *now }}
}

func TestCache_WriteReadDelete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cache := NewCache[domain.Snapshot](fixedClock(&now))

	_, err := cache.ReadValue(ctx, service.LatestSnapshotKey)
	require.Error(t, err)
	assert.True(t, service.IsEntityNotFoundError(err))

	snap := domain.Snapshot{Instances: []domain.Instance{{Name: "meet.example"}}}
	require.NoError(t, cache.WriteValue(ctx, service.LatestSnapshotKey, snap, 0))

	got, err := cache.ReadValue(ctx, service.LatestSnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	require.NoError(t, cache.DeleteValue(ctx, service.LatestSnapshotKey))
	_, err = cache.ReadValue(ctx, service.LatestSnapshotKey)
	assert.True(t, service.IsEntityNotFoundError(err))
}

func TestCache_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cache := NewCache[string](fixedClock(&now))

	require.NoError(t, cache.WriteValue(ctx, "k", "v", 1000))

	now = now.Add(999 * time.Millisecond)
	got, err := cache.ReadValue(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	now = now.Add(time.Millisecond)
	_, err = cache.ReadValue(ctx, "k")
	require.Error(t, err)
	assert.True(t, service.IsEntityNotFoundError(err))
}

func TestCache_OverwriteResetsTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cache := NewCache[string](fixedClock(&now))

	require.NoError(t, cache.WriteValue(ctx, "k", "old", 1000))
	now = now.Add(2 * time.Second)
	require.NoError(t, cache.WriteValue(ctx, "k", "new", 0))

	now = now.Add(time.Hour)
	got, err := cache.ReadValue(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestNewCache_NilClockPanics(t *testing.T) {
	assert.Panics(t, func() { NewCache[string](nil) })
}
