package notifyobs

import (
	"context"

	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/logger"
	"github.com/betoborelli9/beto-bot/internal/trace"
)

// observableNotifier wraps a Notifier with logging and tracing. Delivery
// failures are logged here and swallowed: notifications are best-effort
// and must never interrupt the trading loop.
type observableNotifier struct {
	notifier interfaces.Notifier
}

var _ interfaces.Notifier = (*observableNotifier)(nil)

func Wrap(notifier interfaces.Notifier) interfaces.Notifier {
	return &observableNotifier{
		notifier: notifier,
	}
}

func (on *observableNotifier) Send(ctx context.Context, text string) error {
	ctx, span := trace.StartSpan(ctx, "notifier.Send")
	defer span.End()

	if err := on.notifier.Send(ctx, text); err != nil {
		logger.WarnSkip(ctx, 1, "Notification delivery failed", "error", err, "length", len(text))
		return nil
	}

	logger.DebugSkip(ctx, 1, "Notification sent", "length", len(text))
	return nil
}
