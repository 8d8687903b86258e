package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/logger"
)

const portfolioCacheKey = "portfolio:" + portfolio.DocumentKey

// RedisPortfolioCache caches the fully defaulted document for the public
// fetch endpoint. Cache trouble is never a request failure: errors are
// logged and treated as a miss.
type RedisPortfolioCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisPortfolioCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisPortfolioCache {
	return &RedisPortfolioCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *RedisPortfolioCache) GetDocument(ctx context.Context) *portfolio.Document {
	payload, err := c.rdb.Get(ctx, portfolioCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Portfolio cache read failed", zap.Error(err))
		}
		return nil
	}
	doc := &portfolio.Document{}
	if err := json.Unmarshal(payload, doc); err != nil {
		c.logger.Warn("Portfolio cache entry is corrupt, dropping it", zap.Error(err))
		c.Invalidate(ctx)
		return nil
	}
	return doc
}

func (c *RedisPortfolioCache) SetDocument(ctx context.Context, doc *portfolio.Document) {
	payload, err := json.Marshal(doc)
	if err != nil {
		c.logger.Warn("Failed to marshal portfolio for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, portfolioCacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Portfolio cache write failed", zap.Error(err))
	}
}

func (c *RedisPortfolioCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, portfolioCacheKey).Err(); err != nil {
		c.logger.Warn("Portfolio cache invalidation failed", zap.Error(err))
	}
}
