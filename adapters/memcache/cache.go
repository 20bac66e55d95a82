package memcache

import (
	"context"
	"sync"
	"time"

	"myscraper/interfaces"
	"myscraper/service"
)

type entry[T any] struct {
	item      T
	expiresAt time.Time // zero means no expiry
}

// memoryCache is the in-process implementation of interfaces.Cache, used when no redis is configured.
type memoryCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clock   interfaces.TimeProvider
	zero    T
}

// NewCache creates in-memory implementation of generic cache interface. Expiry is checked against clock on read.
func NewCache[T any](clock interfaces.TimeProvider) *memoryCache[T] {
	return &memoryCache[T]{
		entries: make(map[string]entry[T]),
		clock:   service.NilPanic(clock, "adapters.memcache.cache.go: clock is required"),
	}
}

func (m *memoryCache[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	e := entry[T]{item: item}
	if ttlMs > 0 {
		e.expiresAt = m.clock.Now().Add(time.Duration(ttlMs) * time.Millisecond)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *memoryCache[T]) ReadValue(ctx context.Context, key string) (T, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || (!e.expiresAt.IsZero() && !m.clock.Now().Before(e.expiresAt)) {
		return m.zero, service.NewEntityNotFoundError("Entity not found", nil)
	}
	return e.item, nil
}

func (m *memoryCache[T]) DeleteValue(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
