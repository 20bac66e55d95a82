package service

import (
	"context"
	"fmt"

	"myscraper/domain"
	"myscraper/interfaces"
)

// LatestSnapshotKey is the cache key of the most recent snapshot.
const LatestSnapshotKey = "latest"

// CachePublisher stores every published snapshot under LatestSnapshotKey.
type CachePublisher struct {
	cache interfaces.Cache[domain.Snapshot]
	ttlMs int
}

// NewCachePublisher creates a CachePublisher. ttlMs 0 keeps the snapshot until the next one.
func NewCachePublisher(cache interfaces.Cache[domain.Snapshot], ttlMs int) *CachePublisher {
	return &CachePublisher{
		cache: NilPanic(cache, "service.cache_publisher.go: cache is required"),
		ttlMs: ttlMs,
	}
}

// Publish writes snapshot to the cache.
func (p *CachePublisher) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	if err := p.cache.WriteValue(ctx, LatestSnapshotKey, snapshot, p.ttlMs); err != nil {
		return fmt.Errorf("cachePublisher failed to write snapshot, err: %w", err)
	}
	return nil
}
