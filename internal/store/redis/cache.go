package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenCache memoizes bearer-token resolution so the hot auth path can skip
// postgres. The token→tenant mapping never changes once issued, so entries
// only ever expire by TTL.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*TokenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &TokenCache{client: client, ttl: ttl}, nil
}

func (c *TokenCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("redis.TokenCache.Close: %w", err)
	}
	return nil
}

// Get returns the tenant ID cached for token, or ok=false on a miss.
func (c *TokenCache) Get(ctx context.Context, token string) (uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, TokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("redis.TokenCache.Get: %w", err)
	}

	tenantID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("redis.TokenCache.Get: parse tenant id: %w", err)
	}

	return tenantID, true, nil
}

func (c *TokenCache) Set(ctx context.Context, token string, tenantID uuid.UUID) error {
	if err := c.client.Set(ctx, TokenKey(token), tenantID.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis.TokenCache.Set: %w", err)
	}
	return nil
}

// TokenKey returns the redis key for a bearer token.
func TokenKey(token string) string {
	return "token:" + token
}
