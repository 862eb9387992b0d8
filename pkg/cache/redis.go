package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/voltdesk/pkg/config"
)

const pingTimeout = 2 * time.Second

// RedisClient backs the public view cache and the token store.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to cfg.RedisURL with the pool settings from cfg and
// fails fast when the server does not answer a ping.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisClient{client: rdb}, nil
}

// redisOptions parses the URL and overlays every non-zero pool setting, so
// query parameters in REDIS_URL still apply when the config leaves one unset.
func redisOptions(cfg *config.Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	setIfPositive(&opts.PoolSize, cfg.RedisPoolSize)
	setIfPositive(&opts.MinIdleConns, cfg.RedisMinIdleConns)
	setIfPositive(&opts.MaxRetries, cfg.RedisMaxRetries)
	setIfPositive(&opts.DialTimeout, cfg.RedisDialTimeout)
	setIfPositive(&opts.ReadTimeout, cfg.RedisReadTimeout)
	setIfPositive(&opts.WriteTimeout, cfg.RedisWriteTimeout)
	setIfPositive(&opts.PoolTimeout, cfg.RedisPoolTimeout)

	return opts, nil
}

func setIfPositive[T int | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// Ping checks the Redis connection health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
