package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const rateLimitKeyPrefix = "internhub:ratelimit:"

// RateLimiter is a fixed-window counter kept in Redis. It fails open.
type RateLimiter struct {
	redis  *Redis
	script *redis.Script
}

func NewRateLimiter(r *Redis) *RateLimiter {
	return &RateLimiter{redis: r, script: redis.NewScript(rateLimitScript)}
}

func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.redis.isUnavailable() {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.redis.client, []string{rateLimitKeyPrefix + key}, ttl, limit).Int64()
	if err != nil {
		l.redis.warnUnavailableOnce(err)
		return true
	}
	return allowed == 1
}
