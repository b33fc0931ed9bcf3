package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KARTHI-MAKES/event-booking/internal/model"
)

// DefaultCacheKey is the Redis key holding the cached catalog document.
const DefaultCacheKey = "catalog:events"

// RedisCache keeps a copy of the fetched catalog document in Redis so that
// new listing mounts skip the underlying source while the entry lives.
// Only the pristine document is cached; bookings are never written back.
type RedisCache struct {
	client redis.Cmdable
	source Source
	key    string
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisCache wraps source. An empty key uses DefaultCacheKey.
func NewRedisCache(client redis.Cmdable, source Source, key string, ttl time.Duration, logger zerolog.Logger) *RedisCache {
	if key == "" {
		key = DefaultCacheKey
	}
	return &RedisCache{client: client, source: source, key: key, ttl: ttl, logger: logger}
}

// Fetch serves from Redis on a hit and falls through to the source on a miss,
// storing the result. Redis failures degrade to a direct fetch.
func (c *RedisCache) Fetch(ctx context.Context) ([]model.Event, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		events, decodeErr := Decode(bytes.NewReader(raw))
		if decodeErr == nil {
			return events, nil
		}
		c.logger.Warn().Err(decodeErr).Str("key", c.key).Msg("discarding corrupt cached catalog")
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn().Err(err).Str("key", c.key).Msg("catalog cache read failed")
	}

	events, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("encode events: %w", err)
	}
	if err := c.client.Set(ctx, c.key, string(doc), c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", c.key).Msg("catalog cache write failed")
	}
	return events, nil
}

// Invalidate drops the cached document.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
