package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	testAuthKey = []byte("test-auth-key-must-be-32-bytes!!")
	testEncKey  = []byte("test-enc-key-must-be-32-bytes!!!")
)

// Malformed tokens are rejected before Redis is consulted, so an
// unreachable client is fine here.
func TestTokenStore_RejectsMalformed(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:19999"})
	defer client.Close() //nolint:errcheck
	store := NewTokenStore(client, testAuthKey, testEncKey, time.Hour)

	for _, tok := range []string{"", "garbage", "MTIzNDU2Nzg5MA=="} {
		if _, err := store.Verify(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
		if err := store.Revoke(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Revoke(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestTokenStoreIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close() //nolint:errcheck

	ctx := context.Background()
	store := NewTokenStore(client, testAuthKey, testEncKey, time.Minute)
	id := uuid.New()

	tok, err := store.Issue(ctx, id)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	t.Run("Verify_RoundTrip", func(t *testing.T) {
		got, err := store.Verify(ctx, tok)
		if err != nil || got != id {
			t.Fatalf("Verify: got %v, %v", got, err)
		}
	})

	t.Run("Verify_OtherKeysRejected", func(t *testing.T) {
		other := NewTokenStore(client, []byte("another-auth-key-of-32-bytes!!!!"), testEncKey, time.Minute)
		if _, err := other.Verify(ctx, tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Revoke", func(t *testing.T) {
		if err := store.Revoke(ctx, tok); err != nil {
			t.Fatalf("Revoke: %v", err)
		}
		if _, err := store.Verify(ctx, tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken after revoke, got %v", err)
		}
	})
}
