package types

type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Snapshot holds the indicator values derived from one candle series.
// RSIValid is false when the lookback window saw no losing closes; the
// RSI quotient is undefined in that case and must not feed buy triggers.
type Snapshot struct {
	RSI        float64
	RSIValid   bool
	FastMA     float64
	SlowMA     float64
	PrevFastMA float64
	PrevSlowMA float64
	MinLow     float64
	Volatility float64
	Cross      string // "buy", "sell" or ""
}

// Position is an open long position. Immutable once opened; the engine
// only ever inserts or deletes whole positions, never edits one in place.
type Position struct {
	Symbol          string  `json:"symbol"`
	EntryPrice      float64 `json:"entry_price"`
	Qty             float64 `json:"qty"`
	StopPrice       float64 `json:"stop_price"`
	TakeProfitPrice float64 `json:"take_profit_price"`
	OpenedAt        int64   `json:"opened_at"`
}

const (
	ActionHold  = "HOLD"
	ActionOpen  = "OPEN"
	ActionClose = "CLOSE"
)

const (
	ReasonStopLoss    = "stop_loss"
	ReasonTakeProfit  = "take_profit"
	ReasonMACrossover = "ma_crossover"
)

type Decision struct {
	Action string  `json:"action"`
	Reason string  `json:"reason,omitempty"`
	RSI    float64 `json:"rsi,omitempty"`
}

type StepResult struct {
	Symbol   string      `json:"symbol"`
	Decision Decision    `json:"decision"`
	Price    float64     `json:"price"`
	Time     int64       `json:"time"`
	Orders   []OrderResp `json:"orders"`
	Reason   string      `json:"reason"`
}

type OrderReq struct {
	Symbol, Side string
	Qty          float64
	Tag          string
}

type OrderResp struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ClosedTrade summarizes a completed round trip for notifications and logs.
type ClosedTrade struct {
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
	ExitPrice  float64 `json:"exit_price"`
	Qty        float64 `json:"qty"`
	ProfitUSD  float64 `json:"profit_usd"`
	ProfitPct  float64 `json:"profit_pct"`
	Reason     string  `json:"reason"`
}
