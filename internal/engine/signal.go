package engine

import (
	"github.com/betoborelli9/beto-bot/internal/store"
	"github.com/betoborelli9/beto-bot/internal/ta"
	"github.com/betoborelli9/beto-bot/internal/types"
)

// nearLowFactor accepts entries up to 1% above the recent local bottom.
const nearLowFactor = 1.01

// evaluate is the pure entry/exit decision function. Same inputs always
// produce the same decision; all state lives in the caller.
func evaluate(cfg *store.Config, snap types.Snapshot, price float64, pos *types.Position) types.Decision {
	if pos == nil {
		return evaluateEntry(cfg, snap, price)
	}
	return evaluateExit(snap, price, pos)
}

func evaluateEntry(cfg *store.Config, snap types.Snapshot, price float64) types.Decision {
	// An undefined RSI means no losing closes in the window: no sell
	// pressure, not oversold. Never a buy trigger.
	if !snap.RSIValid || snap.RSI >= cfg.Trade.RSIBuyThreshold {
		return types.Decision{Action: types.ActionHold}
	}
	if snap.Cross != ta.CrossBuy {
		return types.Decision{Action: types.ActionHold}
	}
	if price > snap.MinLow*nearLowFactor {
		return types.Decision{Action: types.ActionHold}
	}
	if cfg.Trade.VolatilityFilter && snap.Volatility < cfg.Trade.MinVolatilityPct {
		return types.Decision{Action: types.ActionHold, Reason: "flat_market"}
	}
	return types.Decision{Action: types.ActionOpen, RSI: snap.RSI}
}

// evaluateExit checks the exit rules in fixed priority order: stop-loss
// first, then take-profit, then the crossover reversal. First match wins.
func evaluateExit(snap types.Snapshot, price float64, pos *types.Position) types.Decision {
	switch {
	case price <= pos.StopPrice:
		return types.Decision{Action: types.ActionClose, Reason: types.ReasonStopLoss}
	case price >= pos.TakeProfitPrice:
		return types.Decision{Action: types.ActionClose, Reason: types.ReasonTakeProfit}
	case snap.Cross == ta.CrossSell:
		return types.Decision{Action: types.ActionClose, Reason: types.ReasonMACrossover}
	}
	return types.Decision{Action: types.ActionHold}
}
