package myredis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"myscraper/domain"
	"myscraper/service"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "redis://localhost:6379"
const testPrefix = "snapshot-test"

func setupTestRedis(t *testing.T) (redis.UniversalClient, func()) {
	client, err := NewRedisUniversalClient(testRedisAddr, WithDialTimeout(500*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis is not available at %s: %v", testRedisAddr, err)
	}

	keys, err := client.Keys(ctx, testPrefix+":*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		keys, _ := client.Keys(ctx, testPrefix+":*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	}
	return client, cleanup
}

func marshalSnapshot(s domain.Snapshot) ([]byte, error) { return json.Marshal(s) }
func unmarshalSnapshot(b []byte) (domain.Snapshot, error) {
	var s domain.Snapshot
	err := json.Unmarshal(b, &s)
	return s, err
}

func testSnapshot() domain.Snapshot {
	credits := domain.NewCreditSet()
	credits.Add(domain.HostKindPerson, domain.Credit{Name: "Jane", URL: "https://jane.example"})
	return domain.Snapshot{
		Instances: []domain.Instance{{
			Name:      "meet.jane.example",
			URL:       "https://meet.jane.example",
			By:        "Jane",
			ByURL:     "https://jane.example",
			ByKind:    domain.HostKindPerson,
			Software:  domain.SoftwareJitsi,
			UserCount: domain.Ptr(4),
		}},
		Credits: credits.Lists(),
	}
}

func TestCache_WriteValue(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache[domain.Snapshot](client, testPrefix, marshalSnapshot, unmarshalSnapshot)
	snap := testSnapshot()

	t.Run("success", func(t *testing.T) {
		err := cache.WriteValue(ctx, service.LatestSnapshotKey, snap, 60000)
		require.NoError(t, err)

		got, err := cache.ReadValue(ctx, service.LatestSnapshotKey)
		require.NoError(t, err)
		assert.Equal(t, snap, got)
	})

	t.Run("ttl is applied", func(t *testing.T) {
		err := cache.WriteValue(ctx, "ttl", snap, 60000)
		require.NoError(t, err)

		ttl, err := client.TTL(ctx, testPrefix+":ttl").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("when Redis write fails returns internal_server_error", func(t *testing.T) {
		closedClient, err := NewRedisUniversalClient(testRedisAddr)
		require.NoError(t, err)
		closedClient.Close()
		cacheClosed := NewCache[domain.Snapshot](closedClient, testPrefix, marshalSnapshot, unmarshalSnapshot)

		err = cacheClosed.WriteValue(ctx, "x", snap, 60000)
		require.Error(t, err)
		assert.True(t, service.IsInternalServerError(err))
	})
}

func TestCache_ReadValue(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache[domain.Snapshot](client, testPrefix, marshalSnapshot, unmarshalSnapshot)

	t.Run("missing key returns entity not found", func(t *testing.T) {
		_, err := cache.ReadValue(ctx, "absent")
		require.Error(t, err)
		assert.True(t, service.IsEntityNotFoundError(err))
	})

	t.Run("invalid JSON in redis returns internal_server_error", func(t *testing.T) {
		err := client.Set(ctx, testPrefix+":badjson", "invalid json", 0).Err()
		require.NoError(t, err)

		_, err = cache.ReadValue(ctx, "badjson")
		require.Error(t, err)
		assert.True(t, service.IsInternalServerError(err))
	})
}

func TestCache_DeleteValue(t *testing.T) {
	ctx := context.Background()
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	cache := NewCache[domain.Snapshot](client, testPrefix, marshalSnapshot, unmarshalSnapshot)
	err := cache.WriteValue(ctx, "del", testSnapshot(), 60000)
	require.NoError(t, err)

	err = cache.DeleteValue(ctx, "del")
	require.NoError(t, err)

	_, err = cache.ReadValue(ctx, "del")
	require.Error(t, err)
	assert.True(t, service.IsEntityNotFoundError(err))
}

func TestNewCache_Panics(t *testing.T) {
	client, err := NewRedisUniversalClient(testRedisAddr)
	require.NoError(t, err)
	defer client.Close()

	assert.Panics(t, func() {
		NewCache[domain.Snapshot](nil, testPrefix, marshalSnapshot, unmarshalSnapshot)
	})
	assert.Panics(t, func() {
		NewCache[domain.Snapshot](client, "", marshalSnapshot, unmarshalSnapshot)
	})
	assert.Panics(t, func() {
		NewCache[domain.Snapshot](client, testPrefix, nil, unmarshalSnapshot)
	})
}
