package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLimiter shares fixed-window counters between instances through Redis.
// Counter errors fail open so an unavailable Redis never blocks traffic.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRedisLimiter stores counters under "<prefix>:<key>"
func NewRedisLimiter(client redis.Cmdable, prefix string, limit int, windowLength time.Duration, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: windowLength,
		logger: logger,
	}
}

// Allow increments the key's counter, starting its expiry on the first hit of a window
func (l *RedisLimiter) Allow(ctx context.Context, key string) Decision {
	redisKey := l.prefix + ":" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limit counter unavailable, allowing request",
			zap.String("key", redisKey), zap.Error(err))
		return Decision{Allowed: true, Remaining: l.limit}
	}

	if count == 1 {
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			l.logger.Warn("failed to set rate limit window", zap.String("key", redisKey), zap.Error(err))
		}
	}

	if int(count) > l.limit {
		retryAfter := l.window
		if ttl, err := l.client.PTTL(ctx, redisKey).Result(); err == nil && ttl > 0 {
			retryAfter = ttl
		}
		return Decision{Allowed: false, RetryAfter: retryAfter}
	}
	return Decision{Allowed: true, Remaining: l.limit - int(count)}
}
