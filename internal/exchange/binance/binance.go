package binance

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/betoborelli9/beto-bot/internal/api"
	"github.com/betoborelli9/beto-bot/internal/interfaces"
	"github.com/betoborelli9/beto-bot/internal/types"
)

const SpotBaseURL = "https://api.binance.com"

type Params struct {
	Mode      string // DRY_RUN or LIVE
	APIKey    string
	APISecret string
	BaseURL   string
}

type Binance struct {
	p      Params
	client *api.Client
}

var _ interfaces.Exchange = (*Binance)(nil)

func New(p Params) *Binance {
	if p.BaseURL == "" {
		p.BaseURL = SpotBaseURL
	}
	return &Binance{
		p: p,
		client: api.NewClient(
			api.WithBaseURL(p.BaseURL),
			api.WithTimeout(10*time.Second),
			api.WithLogging(true),
		),
	}
}

// LastPrice returns the latest traded price for symbol.
func (b *Binance) LastPrice(ctx context.Context, symbol string) (float64, error) {
	resp, err := b.client.Get(ctx, "/api/v3/ticker/price?symbol="+url.QueryEscape(symbol), nil)
	if err != nil {
		return 0, wrapAPIError(err, resp)
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := resp.Decode(&ticker); err != nil {
		return 0, fmt.Errorf("parse ticker response: %w", err)
	}
	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse ticker price %q: %w", ticker.Price, err)
	}
	return price, nil
}

// RecentCandles returns up to limit most recent klines, oldest first.
// Binance returns rows of [openTime, open, high, low, close, volume, ...]
// with prices as strings.
func (b *Binance) RecentCandles(ctx context.Context, symbol, interval string, limit int) ([]types.Candle, error) {
	path := fmt.Sprintf("/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		url.QueryEscape(symbol), url.QueryEscape(interval), limit)
	resp, err := b.client.Get(ctx, path, nil)
	if err != nil {
		return nil, wrapAPIError(err, resp)
	}

	var rows [][]any
	if err := resp.Decode(&rows); err != nil {
		return nil, fmt.Errorf("parse klines response: %w", err)
	}
	return parseKlines(rows)
}

func parseKlines(rows [][]any) ([]types.Candle, error) {
	candles := make([]types.Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline row %d too short: %d fields", i, len(row))
		}
		ts, ok := row[0].(float64)
		if !ok {
			return nil, fmt.Errorf("kline row %d: open time is not a number", i)
		}
		c := types.Candle{Ts: int64(ts)}
		fields := []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Vol}
		for j, dst := range fields {
			s, ok := row[j+1].(string)
			if !ok {
				return nil, fmt.Errorf("kline row %d field %d: expected string", i, j+1)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("kline row %d field %d: %w", i, j+1, err)
			}
			*dst = v
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// ValidateSymbol checks that the symbol exists and is open for trading.
func (b *Binance) ValidateSymbol(ctx context.Context, symbol string) (bool, error) {
	resp, err := b.client.Get(ctx, "/api/v3/exchangeInfo?symbol="+url.QueryEscape(symbol), nil)
	if err != nil {
		// Binance answers 400 with code -1121 for unknown symbols.
		var apiErr *APIError
		if e := wrapAPIError(err, resp); errors.As(e, &apiErr) && apiErr.StatusCode == 400 {
			return false, nil
		}
		return false, err
	}

	var info struct {
		Symbols []struct {
			Symbol string `json:"symbol"`
			Status string `json:"status"`
		} `json:"symbols"`
	}
	if err := resp.Decode(&info); err != nil {
		return false, fmt.Errorf("parse exchangeInfo response: %w", err)
	}
	for _, s := range info.Symbols {
		if s.Symbol == symbol {
			return s.Status == "TRADING", nil
		}
	}
	return false, nil
}

// PlaceOrder submits a market order. In DRY_RUN mode the fill is
// simulated locally and nothing reaches the exchange.
func (b *Binance) PlaceOrder(ctx context.Context, req types.OrderReq) (types.OrderResp, error) {
	if b.p.Mode == "DRY_RUN" {
		return types.OrderResp{
			OrderID: fmt.Sprintf("SIM-%d", time.Now().UnixNano()),
			Status:  "SIMULATED",
			Message: "dry-run",
		}, nil
	}

	if b.p.APIKey == "" || b.p.APISecret == "" {
		return types.OrderResp{}, errors.New("missing API key/secret")
	}

	params := url.Values{}
	params.Set("symbol", req.Symbol)
	params.Set("side", req.Side)
	params.Set("type", "MARKET")
	params.Set("quantity", strconv.FormatFloat(req.Qty, 'f', 6, 64))
	if req.Tag != "" {
		params.Set("newClientOrderId", req.Tag)
	}

	resp, err := b.signedPost(ctx, "/api/v3/order", params)
	if err != nil {
		return types.OrderResp{}, wrapAPIError(err, resp)
	}

	var order struct {
		OrderID int64  `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := resp.Decode(&order); err != nil {
		return types.OrderResp{}, fmt.Errorf("parse order response: %w", err)
	}
	return types.OrderResp{
		OrderID: strconv.FormatInt(order.OrderID, 10),
		Status:  order.Status,
		Message: "ok",
	}, nil
}

func (b *Binance) signedPost(ctx context.Context, path string, params url.Values) (*api.Response, error) {
	params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	params.Set("signature", sign(b.p.APISecret, params.Encode()))
	headers := map[string]string{"X-MBX-APIKEY": b.p.APIKey}
	return b.client.PostForm(ctx, path, params, headers)
}
