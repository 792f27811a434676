package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache maps token hashes to user ids with a TTL equal to the token
// lifetime, serving as a fast path for logout lookups. It is best-effort:
// the stored hash on the user record remains the authority.
// Key format: session:<token_hash>
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{client: client, ttl: ttl}
}

func (s *SessionCache) Put(ctx context.Context, tokenHash, userID string) error {
	if err := s.client.Set(ctx, s.key(tokenHash), userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (s *SessionCache) Get(ctx context.Context, tokenHash string) (string, bool, error) {
	userID, err := s.client.Get(ctx, s.key(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	return userID, true, nil
}

func (s *SessionCache) Delete(ctx context.Context, tokenHash string) error {
	if err := s.client.Del(ctx, s.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionCache) key(tokenHash string) string {
	return "session:" + tokenHash
}
