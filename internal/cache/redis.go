package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

const redisKeyPrefix = "digest:"

// RedisCache stores digests in Redis for multi-process deployments.
// Backend errors degrade to cache misses; they never fail a pipeline run.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps a Redis client. A zero ttl means entries never expire.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get fetches and decodes a digest; any error is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (digest.Digest, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("redis cache get failed", "error", err)
		}
		return digest.Digest{}, false
	}
	var d digest.Digest
	if err := json.Unmarshal(data, &d); err != nil {
		slog.Warn("redis cache entry corrupt", "error", err)
		return digest.Digest{}, false
	}
	return d, true
}

// Set encodes and stores a digest. Cost is carried by Redis' own memory
// policy; the parameter is accepted for interface symmetry.
func (c *RedisCache) Set(ctx context.Context, key string, d digest.Digest, _ int) {
	data, err := json.Marshal(d)
	if err != nil {
		slog.Warn("redis cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		slog.Warn("redis cache set failed", "error", err)
	}
}
