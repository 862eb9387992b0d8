// Package auth provides bearer-token authentication for the professional API.
//
// Tokens are opaque: a random ID is stored server-side in Redis and only its
// securecookie-encoded form (HMAC-signed, AES-encrypted) is handed to the client.
//
// The authentication key should be 32 or 64 bytes and the encryption key
// 16, 24, or 32 bytes. Production deployments must use random keys generated with:
//
//	openssl rand -base64 32
package auth

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "token:"
	tokenCodecName = "voltdesk_token"
)

// ErrInvalidToken is returned for tokens that are malformed, tampered with,
// expired, or revoked.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier resolves a bearer token to the professional it was issued to.
type Verifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// TokenStore issues, verifies and revokes bearer tokens backed by Redis.
//
// Redis keys: "token:<id>" holding the professional ID, with TTL equal to the
// token lifetime.
type TokenStore struct {
	client *redis.Client
	codecs []securecookie.Codec
	ttl    time.Duration
}

// NewTokenStore creates a Redis-backed token store.
//
// Parameters:
//   - client: redis.Client instance (from pkg/cache.RedisClient.Client())
//   - authKey: 32 or 64 bytes for HMAC authentication
//   - encryptionKey: 16, 24, or 32 bytes for AES encryption
//   - ttl: token lifetime; also bounds the securecookie timestamp check
func NewTokenStore(client *redis.Client, authKey, encryptionKey []byte, ttl time.Duration) *TokenStore {
	codecs := securecookie.CodecsFromPairs(authKey, encryptionKey)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(int(ttl.Seconds()))
		}
	}
	return &TokenStore{client: client, codecs: codecs, ttl: ttl}
}

// TTL reports the lifetime of issued tokens.
func (s *TokenStore) TTL() time.Duration {
	return s.ttl
}

// Issue creates a token for professionalID and persists it in Redis.
func (s *TokenStore) Issue(ctx context.Context, professionalID uuid.UUID) (string, error) {
	id := strings.TrimRight(
		base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
		"=",
	)

	if err := s.client.Set(ctx, tokenKeyPrefix+id, professionalID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store token in redis: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(tokenCodecName, id, s.codecs...)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return encoded, nil
}

// Verify decodes token and looks it up in Redis.
func (s *TokenStore) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	id, err := s.decode(token)
	if err != nil {
		return uuid.Nil, err
	}

	raw, err := s.client.Get(ctx, tokenKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrInvalidToken
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("get token from redis: %w", err)
	}

	professionalID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return professionalID, nil
}

// Revoke deletes the token's Redis key. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	id, err := s.decode(token)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, tokenKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete token from redis: %w", err)
	}
	return nil
}

func (s *TokenStore) decode(token string) (string, error) {
	var id string
	if err := securecookie.DecodeMulti(tokenCodecName, token, &id, s.codecs...); err != nil || id == "" {
		return "", ErrInvalidToken
	}
	return id, nil
}
