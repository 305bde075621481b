package exchangeobs

import (
	"context"

	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/logger"
	"github.com/betoborelli9/beto-bot/internal/trace"
	"github.com/betoborelli9/beto-bot/internal/types"
)

// observableExchange wraps an Exchange with logging and tracing.
type observableExchange struct {
	exchange interfaces.Exchange
}

var _ interfaces.Exchange = (*observableExchange)(nil)

func Wrap(exchange interfaces.Exchange) interfaces.Exchange {
	return &observableExchange{
		exchange: exchange,
	}
}

func (oe *observableExchange) LastPrice(ctx context.Context, symbol string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.LastPrice")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching last price", "symbol", symbol)

	price, err := oe.exchange.LastPrice(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch last price", err, "symbol", symbol)
		return 0, err
	}

	logger.DebugSkip(ctx, 1, "Last price fetched", "symbol", symbol, "price", price)
	return price, nil
}

func (oe *observableExchange) RecentCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.RecentCandles")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching recent candles", "symbol", symbol, "interval", interval, "limit", limit)

	candles, err := oe.exchange.RecentCandles(ctx, symbol, interval, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch candles", err, "symbol", symbol, "limit", limit)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Candles fetched", "symbol", symbol, "count", len(candles))
	return candles, nil
}

func (oe *observableExchange) PlaceOrder(ctx context.Context, req types.OrderReq) (types.OrderResp, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.PlaceOrder")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Placing order",
		"symbol", req.Symbol,
		"side", req.Side,
		"qty", req.Qty,
		"tag", req.Tag,
	)

	resp, err := oe.exchange.PlaceOrder(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to place order", err,
			"symbol", req.Symbol,
			"side", req.Side,
			"qty", req.Qty,
		)
		return types.OrderResp{}, err
	}

	logger.InfoSkip(ctx, 1, "Order placed",
		"symbol", req.Symbol,
		"order_id", resp.OrderID,
		"status", resp.Status,
	)
	return resp, nil
}

func (oe *observableExchange) ValidateSymbol(ctx context.Context, symbol string) (bool, error) {
	ctx, span := trace.StartSpan(ctx, "exchange.ValidateSymbol")
	defer span.End()

	ok, err := oe.exchange.ValidateSymbol(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to validate symbol", err, "symbol", symbol)
		return false, err
	}

	logger.DebugSkip(ctx, 1, "Symbol validated", "symbol", symbol, "tradable", ok)
	return ok, nil
}
