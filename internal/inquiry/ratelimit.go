// internal/inquiry/ratelimit.go

// Package inquiry accepts, stores and fans out buyer leads.
package inquiry

import (
	"context"
	"time"

	"estate-match-backend/internal/common/database"
	"estate-match-backend/internal/common/logger"
)

const rateLimitKeyPrefix = "ratelimit:inquiries:"

// RateLimiter caps inquiry submissions per client IP over a rolling
// window, backed by a Redis counter. It fails open: if Redis is down the
// submission proceeds, because losing a lead costs more than letting a
// burst through.
type RateLimiter struct {
	redis  *database.RedisClient
	window time.Duration
	max    int
	logger logger.Logger
}

func NewRateLimiter(redisClient *database.RedisClient, window time.Duration, max int, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		window: window,
		max:    max,
		logger: log.WithFields(map[string]interface{}{"component": "inquiry-ratelimit"}),
	}
}

// Allow reports whether the IP may submit another inquiry right now.
func (l *RateLimiter) Allow(ctx context.Context, clientIP string) bool {
	key := rateLimitKeyPrefix + clientIP

	count, err := l.redis.Client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.WithError(err).Warn("rate limit check failed, allowing request", map[string]interface{}{
			"ip": clientIP,
		})
		return true
	}

	if count == 1 {
		if err := l.redis.Client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.WithError(err).Warn("failed to set rate limit window", map[string]interface{}{
				"ip": clientIP,
			})
		}
	}

	return count <= int64(l.max)
}
