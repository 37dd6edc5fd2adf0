package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix for cached documents
	documentKeyPrefix = "proposal:document:"
	// Default TTL for cached documents (24 hours)
	defaultTTL = 24 * time.Hour
)

// RedisCache implements DocumentCache on Redis. Entries expire after the
// configured TTL and the TTL is refreshed on every hit.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed document cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// NewRedisCacheFromURL parses a redis:// URL and returns a cache using a new client.
func NewRedisCacheFromURL(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return NewRedisCache(redis.NewClient(opts), ttl), nil
}

func (c *RedisCache) Get(ctx context.Context, sessionID string) (*Document, error) {
	key := c.key(sessionID)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return nil, fmt.Errorf("decoding cached document: %w", err)
	}

	// A failed refresh only shortens the entry's life.
	_ = c.client.Expire(ctx, key, c.ttl).Err()
	return &doc, nil
}

func (c *RedisCache) Set(ctx context.Context, doc *Document) error {
	val, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding cached document: %w", err)
	}
	if err := c.client.Set(ctx, c.key(doc.SessionID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing cached document: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("deleting cached document: %w", err)
	}
	return nil
}

// Ping checks connectivity to the Redis server.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(sessionID string) string {
	return documentKeyPrefix + sessionID
}
