package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockKeyPrefix = "internhub:lock:"

// TransitionLock is a best-effort mutual exclusion per entity key. It never
// blocks: a held lock is reported as not acquired, and Redis errors or
// unavailability are treated as acquired so correctness falls back to the
// conditional updates in storage.
type TransitionLock struct {
	redis *Redis
	ttl   time.Duration
}

func NewTransitionLock(r *Redis, ttl time.Duration) *TransitionLock {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &TransitionLock{redis: r, ttl: ttl}
}

func (l *TransitionLock) TryLock(ctx context.Context, key string) (func(), bool) {
	if l == nil || l.redis.isUnavailable() {
		return func() {}, true
	}

	full := lockKeyPrefix + key
	token := uuid.NewString()
	ok, err := l.redis.SetIfNotExists(ctx, full, token, l.ttl)
	if err != nil {
		return func() {}, true
	}
	if !ok {
		l.redis.logger.Debug("transition lock held", zap.String("key", key))
		return func() {}, false
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = l.redis.DeleteIfValue(ctx, full, token)
	}, true
}
