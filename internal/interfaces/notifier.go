package interfaces

import "context"

// Notifier delivers human-readable status messages to the operator.
// Implementations are best-effort: a delivery failure is returned for
// logging but must never block or abort trading logic.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
