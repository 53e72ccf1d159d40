package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix is the Redis key prefix for session tokens.
const sessionKeyPrefix = "session:"

// CreateSession stores a new session for the user and returns its token.
// The token is an opaque UUID; the mapping expires after ttl.
func (c *Cache) CreateSession(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token := uuid.New().String()

	if err := c.client.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// GetSession resolves a session token to its user ID.
// Returns an empty string for unknown or expired tokens (not an error).
func (c *Cache) GetSession(ctx context.Context, token string) (string, error) {
	userID, err := c.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("load session: %w", err)
	}

	return userID, nil
}

// DeleteSession removes a session token. Deleting an unknown token is a no-op.
func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
