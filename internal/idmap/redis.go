package idmap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultCacheTTL = 24 * time.Hour

// RedisCache is a read-through, write-through cache in front of another
// Store. Mappings never change once created, so a cached entry cannot go
// stale; cache failures are logged and fall through to the wrapped store.
type RedisCache struct {
	next   Store
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewRedisCache(next Store, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{next: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(k Key) string {
	return "idmap:" + k.Scope + ":" + k.ResourceType + ":" + k.LocalID
}

func (c *RedisCache) Lookup(ctx context.Context, key Key) (uuid.UUID, bool, error) {
	val, err := c.client.Get(ctx, cacheKey(key)).Result()
	switch {
	case err == nil:
		if id, perr := uuid.Parse(val); perr == nil {
			return id, true, nil
		}
		c.logger.Warn().Str("key", key.String()).Msg("discarding malformed cached global id")
	case !errors.Is(err, redis.Nil):
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("redis lookup failed")
	}

	id, ok, err := c.next.Lookup(ctx, key)
	if err != nil || !ok {
		return id, ok, err
	}
	c.remember(ctx, key, id)
	return id, true, nil
}

func (c *RedisCache) Insert(ctx context.Context, key Key, id uuid.UUID) (uuid.UUID, bool, error) {
	winner, inserted, err := c.next.Insert(ctx, key, id)
	if err != nil {
		return winner, inserted, err
	}
	c.remember(ctx, key, winner)
	return winner, inserted, nil
}

func (c *RedisCache) Reverse(ctx context.Context, resourceType string, id uuid.UUID) ([]Mapping, error) {
	return c.next.Reverse(ctx, resourceType, id)
}

func (c *RedisCache) remember(ctx context.Context, key Key, id uuid.UUID) {
	if err := c.client.Set(ctx, cacheKey(key), id.String(), c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("redis set failed")
	}
}

// NewRedisClient parses a redis:// URL and verifies connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
