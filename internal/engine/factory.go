package engine

import (
	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/store"
)

func New(cfg *store.Config, exchange interfaces.Exchange, positions *store.Positions, notifier interfaces.Notifier) interfaces.Engine {
	return newEngine(cfg, exchange, positions, notifier)
}
