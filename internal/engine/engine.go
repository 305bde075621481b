package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/logger"
	"github.com/betoborelli9/beto-bot/internal/store"
	"github.com/betoborelli9/beto-bot/internal/tradelog"
	"github.com/betoborelli9/beto-bot/internal/types"
)

// Engine runs one trading step per symbol: fetch market data, compute
// the indicator snapshot, evaluate the entry/exit rules and execute the
// resulting order. Each symbol is either flat or long one position.
type Engine struct {
	cfg       *store.Config
	exchange  interfaces.Exchange
	positions *store.Positions
	exec      *orderExecutor
}

func newEngine(cfg *store.Config, exchange interfaces.Exchange, positions *store.Positions, notifier interfaces.Notifier) *Engine {
	return &Engine{
		cfg:       cfg,
		exchange:  exchange,
		positions: positions,
		exec:      newOrderExecutor(cfg, exchange, positions, notifier),
	}
}

func (e *Engine) Step(ctx context.Context, symbol string) (*types.StepResult, error) {
	candles, err := e.exchange.RecentCandles(ctx, symbol, e.cfg.BarInterval, e.cfg.CandleLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}

	snap, err := computeSnapshot(e.cfg, candles)
	if err != nil {
		return nil, err
	}

	price, err := e.exchange.LastPrice(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch price: %w", err)
	}

	pos := e.positions.Get(symbol)
	logger.Debug(ctx, "Market state",
		"symbol", symbol,
		"price", price,
		"rsi", snap.RSI,
		"rsi_valid", snap.RSIValid,
		"cross", snap.Cross,
		"min_low", snap.MinLow,
		"volatility_pct", snap.Volatility,
		"in_position", pos != nil,
	)

	decision := evaluate(e.cfg, snap, price, pos)
	last := candles[len(candles)-1]
	result := &types.StepResult{
		Symbol:   symbol,
		Decision: decision,
		Price:    price,
		Time:     last.Ts,
		Orders:   []types.OrderResp{},
		Reason:   decision.Reason,
	}

	if decision.Action == types.ActionHold {
		return result, nil
	}

	logger.Decision(ctx, symbol, decision.Action, decision.Reason, "price", price, "rsi", snap.RSI)
	_ = tradelog.AppendDecision(tradelog.DecisionEntry{
		Symbol: symbol,
		Action: decision.Action,
		Reason: decision.Reason,
		Price:  price,
		Indicators: map[string]float64{
			"RSI":      snap.RSI,
			"FAST_MA":  snap.FastMA,
			"SLOW_MA":  snap.SlowMA,
			"MIN_LOW":  snap.MinLow,
			"VOLT_PCT": snap.Volatility,
		},
	})

	switch decision.Action {
	case types.ActionOpen:
		_, resp, err := e.exec.openPosition(ctx, symbol, price, snap.RSI)
		if err != nil {
			// No state changed; the next cycle re-evaluates the entry.
			result.Reason = "order_err: " + err.Error()
			logger.ErrorWithErr(ctx, "Entry execution failed", err, "symbol", symbol)
			return result, nil
		}
		result.Orders = append(result.Orders, resp)

	case types.ActionClose:
		trade, resp, err := e.exec.closePosition(ctx, symbol, price, decision.Reason)
		if err != nil {
			if errors.Is(err, ErrNoOpenPosition) {
				return nil, err
			}
			// Position intact; the exit is retried next cycle.
			result.Reason = "order_err: " + err.Error()
			logger.ErrorWithErr(ctx, "Exit execution failed", err, "symbol", symbol)
			return result, nil
		}
		result.Orders = append(result.Orders, resp)
		result.Reason = fmt.Sprintf("%s pnl=%.2fUSD (%+.2f%%)", trade.Reason, trade.ProfitUSD, trade.ProfitPct)
	}

	return result, nil
}
