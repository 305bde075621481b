package interfaces

import (
	"context"

	"github.com/betoborelli9/beto-bot/internal/types"
)

type Exchange interface {
	LastPrice(ctx context.Context, symbol string) (float64, error)
	RecentCandles(ctx context.Context, symbol string, interval string, limit int) ([]types.Candle, error)
	PlaceOrder(ctx context.Context, req types.OrderReq) (types.OrderResp, error)
	ValidateSymbol(ctx context.Context, symbol string) (bool, error)
}
