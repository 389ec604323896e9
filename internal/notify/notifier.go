package notify

import (
	"context"
	"fmt"
	"image"
)

// Notifier delivers run updates to an operator, optionally with the
// rendered check-in card attached. Implementations are synchronous;
// callers own the decision to swallow failures.
type Notifier interface {
	Send(ctx context.Context, message string, card image.Image) error
}

// NotificationError reports a failed delivery. It never aborts account
// processing; the orchestrator logs it and moves on.
type NotificationError struct {
	Target string
	Err    error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Target, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// Multi fans a notification out to every configured sink and reports
// the first failure after trying them all.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, message string, card image.Image) error {
	var firstErr error
	for _, n := range m {
		if err := n.Send(ctx, message, card); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
