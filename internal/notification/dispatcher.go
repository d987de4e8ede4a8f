package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher sends notifications in the background. Delivery failures are
// logged and never reach the caller.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   *zap.Logger

	wg sync.WaitGroup
}

func NewDispatcher(n Notifier, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{notifier: n, timeout: timeout, logger: logger}
}

func (d *Dispatcher) Dispatch(msg Message) {
	if d == nil || d.notifier == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("notification panic",
					zap.String("template", msg.Template),
					zap.Stringer("to", msg.To),
					zap.String("panic", fmt.Sprint(r)),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		start := time.Now()
		if err := d.notifier.Notify(ctx, msg); err != nil {
			d.logger.Warn("notification failed",
				zap.String("template", msg.Template),
				zap.Stringer("to", msg.To),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		d.logger.Debug("notification sent",
			zap.String("template", msg.Template),
			zap.Stringer("to", msg.To),
		)
	}()
}

// Wait blocks until in-flight sends finish or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
