package interfaces

import (
	"context"

	"github.com/betoborelli9/beto-bot/internal/types"
)

type Engine interface {
	Step(ctx context.Context, symbol string) (*types.StepResult, error)
}
