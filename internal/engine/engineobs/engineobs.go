package engineobs

import (
	"context"
	"time"

	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/logger"
	"github.com/betoborelli9/beto-bot/internal/trace"
	"github.com/betoborelli9/beto-bot/internal/types"
)

// observableEngine wraps an Engine with logging and tracing.
type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Step(ctx context.Context, symbol string) (*types.StepResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Step")
	defer span.End()

	start := time.Now()

	logger.DebugSkip(ctx, 1, "Starting trading cycle", "symbol", symbol)

	result, err := oe.engine.Step(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Trading cycle failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Trading cycle completed",
		"symbol", symbol,
		"action", result.Decision.Action,
		"reason", result.Reason,
		"price", result.Price,
		"orders", len(result.Orders),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}
