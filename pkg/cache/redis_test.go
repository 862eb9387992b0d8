package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/voltdesk/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want func(t *testing.T, got *redis.Options)
	}{
		{
			name: "config overrides pool settings",
			cfg: &config.Config{
				RedisURL:          "redis://cache.internal:6380/2",
				RedisPoolSize:     40,
				RedisMinIdleConns: 8,
				RedisMaxRetries:   1,
				RedisDialTimeout:  750 * time.Millisecond,
				RedisReadTimeout:  time.Second,
				RedisWriteTimeout: 2 * time.Second,
				RedisPoolTimeout:  1500 * time.Millisecond,
			},
			want: func(t *testing.T, got *redis.Options) {
				if got.Addr != "cache.internal:6380" || got.DB != 2 {
					t.Errorf("addr/db: got %s/%d", got.Addr, got.DB)
				}
				if got.PoolSize != 40 || got.MinIdleConns != 8 || got.MaxRetries != 1 {
					t.Errorf("pool: size=%d idle=%d retries=%d", got.PoolSize, got.MinIdleConns, got.MaxRetries)
				}
				if got.DialTimeout != 750*time.Millisecond || got.ReadTimeout != time.Second ||
					got.WriteTimeout != 2*time.Second || got.PoolTimeout != 1500*time.Millisecond {
					t.Errorf("timeouts: dial=%s read=%s write=%s pool=%s",
						got.DialTimeout, got.ReadTimeout, got.WriteTimeout, got.PoolTimeout)
				}
			},
		},
		{
			name: "unset fields keep URL parameters",
			cfg: &config.Config{
				RedisURL:      "redis://localhost:6379?pool_size=7&dial_timeout=9s",
				RedisPoolSize: 0,
			},
			want: func(t *testing.T, got *redis.Options) {
				if got.PoolSize != 7 {
					t.Errorf("pool size: got %d, want 7", got.PoolSize)
				}
				if got.DialTimeout != 9*time.Second {
					t.Errorf("dial timeout: got %s, want 9s", got.DialTimeout)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := redisOptions(tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.want(t, got)
		})
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	t.Run("NewRedisClient_Success", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck
	})

	t.Run("Ping_Success", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("Close_Idempotent", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("first Close failed: %v", err)
		}
	})

	t.Run("Client_NotNil", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if rc.Client() == nil {
			t.Fatal("expected non-nil underlying client")
		}
	})

	t.Run("PublicView_SetGetDelete", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		ctx := context.Background()
		views := NewPublicViewCache(rc, time.Minute)
		id := uuid.New()

		type view struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		}
		var got view
		if err := views.Get(ctx, "budget", id, &got); !errors.Is(err, ErrCacheMiss) {
			t.Fatalf("expected ErrCacheMiss, got %v", err)
		}
		if err := views.Set(ctx, "budget", id, view{Name: "Quadro", Status: "PENDING"}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := views.Get(ctx, "budget", id, &got); err != nil || got.Name != "Quadro" {
			t.Fatalf("Get: %+v, %v", got, err)
		}
		if err := views.Get(ctx, "material_list", id, &got); !errors.Is(err, ErrCacheMiss) {
			t.Fatalf("kinds must not share keys, got %v", err)
		}
		if err := views.Delete(ctx, "budget", id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if err := views.Get(ctx, "budget", id, &got); !errors.Is(err, ErrCacheMiss) {
			t.Fatalf("expected ErrCacheMiss after delete, got %v", err)
		}
	})
}
