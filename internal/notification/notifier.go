package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Message addresses one account; transports resolve the address they need
// (an email, a live socket) from the user id.
type Message struct {
	To       uuid.UUID
	Template string
	Data     map[string]any
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
