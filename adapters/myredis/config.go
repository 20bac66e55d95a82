package myredis

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisConfig locates the snapshot cache. An empty Addr disables redis.
type RedisConfig struct {
	Addr        string // redis:// or rediss:// URL
	DialTimeout time.Duration
}

// Enabled reports whether a redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// NewClient creates a client for c. Explicit options are applied after DialTimeout.
func (c RedisConfig) NewClient(options ...ConfigOption) (redis.UniversalClient, error) {
	if c.DialTimeout > 0 {
		options = append([]ConfigOption{WithDialTimeout(c.DialTimeout)}, options...)
	}
	return NewRedisUniversalClient(c.Addr, options...)
}

// NewRedisUniversalClient creates a single-node universal client from a redis URL.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	return redis.NewUniversalClient(universalOptions(redisOptions)), nil
}

// ConfigOption tweaks the parsed options before the client is built.
type ConfigOption func(*redis.Options)

// WithDialTimeout sets the connect timeout of the client.
func WithDialTimeout(d time.Duration) ConfigOption {
	return func(o *redis.Options) {
		o.DialTimeout = d
	}
}

// universalOptions carries over what redis.ParseURL and the options can set.
func universalOptions(o *redis.Options) *redis.UniversalOptions {
	return &redis.UniversalOptions{
		Addrs:        []string{o.Addr},
		DB:           o.DB,
		Username:     o.Username,
		Password:     o.Password,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
		MaxRetries:   o.MaxRetries,
		PoolSize:     o.PoolSize,
		MinIdleConns: o.MinIdleConns,
		TLSConfig:    o.TLSConfig,
	}
}
