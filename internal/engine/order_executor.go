package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/logger"
	"github.com/betoborelli9/beto-bot/internal/store"
	"github.com/betoborelli9/beto-bot/internal/tradelog"
	"github.com/betoborelli9/beto-bot/internal/types"
)

// orderExecutor submits market orders and applies the resulting position
// mutations. It is the only component that writes to the position store.
type orderExecutor struct {
	cfg       *store.Config
	exchange  interfaces.Exchange
	positions *store.Positions
	notifier  interfaces.Notifier
}

func newOrderExecutor(cfg *store.Config, exchange interfaces.Exchange, positions *store.Positions, notifier interfaces.Notifier) *orderExecutor {
	return &orderExecutor{
		cfg:       cfg,
		exchange:  exchange,
		positions: positions,
		notifier:  notifier,
	}
}

// orderQty converts the fixed per-trade notional into a base quantity,
// rounded to 6 decimal places.
func orderQty(notionalUSD, price float64) float64 {
	q := decimal.NewFromFloat(notionalUSD).Div(decimal.NewFromFloat(price)).Round(6)
	return q.InexactFloat64()
}

// openPosition buys at market and records the new position. On exchange
// failure nothing is recorded; the next poll cycle re-evaluates.
func (oe *orderExecutor) openPosition(ctx context.Context, symbol string, price, rsi float64) (types.Position, types.OrderResp, error) {
	qty := orderQty(oe.cfg.Trade.NotionalUSD, price)

	resp, err := oe.exchange.PlaceOrder(ctx, types.OrderReq{Symbol: symbol, Side: "BUY", Qty: qty, Tag: "ENTRY"})
	if err != nil {
		oe.notifier.Send(ctx, fmt.Sprintf("⚠️ Buy failed for `%s`: %v", symbol, err))
		return types.Position{}, types.OrderResp{}, fmt.Errorf("place buy order: %w", err)
	}

	pos := types.Position{
		Symbol:          symbol,
		EntryPrice:      price,
		Qty:             qty,
		StopPrice:       price * (1 - oe.cfg.Trade.StopPct/100),
		TakeProfitPrice: price * (1 + oe.cfg.Trade.ProfitPct/100),
		OpenedAt:        time.Now().Unix(),
	}

	if err := oe.positions.Insert(pos); err != nil {
		// The in-memory table holds the position; only the disk copy is
		// stale. Warn loudly since a crash now would forget the trade.
		logger.Warn(ctx, "Failed to persist position table", "symbol", symbol, "error", err)
	}

	logger.Trade(ctx, symbol, "BUY", qty, price, resp.OrderID, "rsi", rsi)
	_ = tradelog.Append(tradelog.Entry{Symbol: symbol, Side: "BUY", Qty: qty, Price: price, OrderID: resp.OrderID, Reason: "ENTRY"})

	oe.notifier.Send(ctx, fmt.Sprintf(
		"🟢 *BUY* `%s`\nEntry: $%.2f\nRSI: %.2f\nNotional: $%.2f\nStop: $%.2f\nTarget: $%.2f\nQty: %.6f\n⏱ %s",
		symbol, price, rsi, oe.cfg.Trade.NotionalUSD, pos.StopPrice, pos.TakeProfitPrice, qty,
		time.Now().UTC().Format("02/01/2006 15:04:05"),
	))

	return pos, resp, nil
}

// closePosition sells the stored quantity at market and deletes the
// position. On exchange failure the position stays intact so the next
// cycle retries the exit.
func (oe *orderExecutor) closePosition(ctx context.Context, symbol string, price float64, reason string) (types.ClosedTrade, types.OrderResp, error) {
	pos := oe.positions.Get(symbol)
	if pos == nil {
		return types.ClosedTrade{}, types.OrderResp{}, fmt.Errorf("%w: %s", ErrNoOpenPosition, symbol)
	}

	resp, err := oe.exchange.PlaceOrder(ctx, types.OrderReq{Symbol: symbol, Side: "SELL", Qty: pos.Qty, Tag: "EXIT"})
	if err != nil {
		oe.notifier.Send(ctx, fmt.Sprintf("⚠️ Sell failed for `%s`: %v", symbol, err))
		return types.ClosedTrade{}, types.OrderResp{}, fmt.Errorf("place sell order: %w", err)
	}

	// Result is quoted per unit, like the stop/profit bands.
	entry := decimal.NewFromFloat(pos.EntryPrice)
	exit := decimal.NewFromFloat(price)
	profitUSD := exit.Sub(entry)
	profitPct := decimal.Zero
	if !entry.IsZero() {
		profitPct = profitUSD.Div(entry).Mul(decimal.NewFromInt(100))
	}

	trade := types.ClosedTrade{
		Symbol:     symbol,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  price,
		Qty:        pos.Qty,
		ProfitUSD:  profitUSD.InexactFloat64(),
		ProfitPct:  profitPct.InexactFloat64(),
		Reason:     reason,
	}

	if err := oe.positions.Delete(symbol); err != nil {
		logger.Warn(ctx, "Failed to persist position table", "symbol", symbol, "error", err)
	}

	logger.Trade(ctx, symbol, "SELL", pos.Qty, price, resp.OrderID, "reason", reason, "profit_usd", trade.ProfitUSD)
	_ = tradelog.Append(tradelog.Entry{Symbol: symbol, Side: "SELL", Qty: pos.Qty, Price: price, OrderID: resp.OrderID, Reason: reason})

	oe.notifier.Send(ctx, fmt.Sprintf(
		"🔴 *SELL* `%s`\nExit: $%.2f\nReason: %s\nResult: %.2f USD (%+.2f%%)\n⏱ %s",
		symbol, price, reason, trade.ProfitUSD, trade.ProfitPct,
		time.Now().UTC().Format("02/01/2006 15:04:05"),
	))

	return trade, resp, nil
}
