package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RateLimitMiddleware caps requests per client IP within a fixed window.
type RateLimitMiddleware struct {
	limiter Limiter
	scope   string
	limit   int
	window  time.Duration
}

func NewRateLimitMiddleware(limiter Limiter, scope string, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, scope: scope, limit: limit, window: window}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limiter == nil || m.limit <= 0 {
			return c.Next()
		}
		if !m.limiter.Allow(c.Context(), m.scope+":"+c.IP(), m.limit, m.window) {
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}
