// Package cache holds the Redis-backed read cache for the preference summary.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	SummaryKey = "mealmind:preference_summary"
	SummaryTTL = time.Hour
)

// SummaryCache caches the current preference summary text. Errors are logged
// and treated as misses so the database stays the source of truth.
type SummaryCache interface {
	Get(ctx context.Context) (string, bool)
	Set(ctx context.Context, summary string)
	Invalidate(ctx context.Context)
}

// NewSummaryCache returns a Redis cache, or Noop when client is nil.
func NewSummaryCache(client *redis.Client, logger *zap.Logger) SummaryCache {
	if client == nil {
		return Noop{}
	}
	return &RedisSummaryCache{client: client, ttl: SummaryTTL, logger: logger}
}

type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func (c *RedisSummaryCache) Get(ctx context.Context) (string, bool) {
	val, err := c.client.Get(ctx, SummaryKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Warn("preference summary cache read failed", zap.Error(err))
		return "", false
	}
	return val, true
}

func (c *RedisSummaryCache) Set(ctx context.Context, summary string) {
	if err := c.client.Set(ctx, SummaryKey, summary, c.ttl).Err(); err != nil {
		c.logger.Warn("preference summary cache write failed", zap.Error(err))
	}
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, SummaryKey).Err(); err != nil {
		c.logger.Warn("preference summary cache delete failed", zap.Error(err))
	}
}

// Noop never holds anything
type Noop struct{}

func (Noop) Get(context.Context) (string, bool) { return "", false }
func (Noop) Set(context.Context, string)        {}
func (Noop) Invalidate(context.Context)         {}
