package noop

import (
	"context"

	"github.com/betoborelli9/beto-bot/internal/interfaces"
)

// Notifier discards all messages. Used when no Telegram credentials are
// configured.
type Notifier struct{}

var _ interfaces.Notifier = (*Notifier)(nil)

func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Send(ctx context.Context, text string) error {
	return nil
}
