package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Mode             string   `yaml:"mode"`
	PollSeconds      int      `yaml:"poll_seconds"`
	BarInterval      string   `yaml:"bar_interval"`
	CandleLimit      int      `yaml:"candle_limit"`
	ValidateUniverse bool     `yaml:"validate_universe"`
	UniverseStatic   []string `yaml:"universe_static"`
	PositionsPath    string   `yaml:"positions_path"`
	Trade            struct {
		NotionalUSD      float64 `yaml:"notional_usd"`
		StopPct          float64 `yaml:"stop_pct"`
		ProfitPct        float64 `yaml:"profit_pct"`
		RSIBuyThreshold  float64 `yaml:"rsi_buy_threshold"`
		VolatilityFilter bool    `yaml:"volatility_filter"`
		MinVolatilityPct float64 `yaml:"min_volatility_pct"`
	} `yaml:"trade"`
	Indicators struct {
		FastMA       int `yaml:"fast_ma"`
		SlowMA       int `yaml:"slow_ma"`
		RSIPeriod    int `yaml:"rsi_period"`
		MinLowWindow int `yaml:"min_low_window"`
	} `yaml:"indicators"`
}

func (c *Config) Validate() error {
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		return fmt.Errorf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode)
	}
	if len(c.UniverseStatic) == 0 {
		return errors.New("universe_static cannot be empty")
	}
	if c.Trade.NotionalUSD <= 0 {
		return fmt.Errorf("trade.notional_usd must be positive, got %.2f", c.Trade.NotionalUSD)
	}
	if c.Trade.StopPct <= 0 || c.Trade.StopPct >= 100 {
		return fmt.Errorf("trade.stop_pct must be between 0-100, got %.2f", c.Trade.StopPct)
	}
	if c.Trade.ProfitPct <= 0 {
		return fmt.Errorf("trade.profit_pct must be positive, got %.2f", c.Trade.ProfitPct)
	}
	if c.Indicators.FastMA >= c.Indicators.SlowMA {
		return fmt.Errorf("indicators.fast_ma (%d) must be smaller than slow_ma (%d)",
			c.Indicators.FastMA, c.Indicators.SlowMA)
	}
	if c.CandleLimit < c.Indicators.SlowMA+1 {
		return fmt.Errorf("candle_limit %d too small for slow_ma %d", c.CandleLimit, c.Indicators.SlowMA)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.PollSeconds == 0 {
		c.PollSeconds = 60
	}
	if c.BarInterval == "" {
		c.BarInterval = "5m"
	}
	if c.CandleLimit == 0 {
		c.CandleLimit = 100
	}
	if c.PositionsPath == "" {
		c.PositionsPath = "positions.json"
	}
	if c.Trade.NotionalUSD == 0 {
		c.Trade.NotionalUSD = 6.0
	}
	if c.Trade.StopPct == 0 {
		c.Trade.StopPct = 1.5
	}
	if c.Trade.ProfitPct == 0 {
		c.Trade.ProfitPct = 3.0
	}
	if c.Trade.RSIBuyThreshold == 0 {
		c.Trade.RSIBuyThreshold = 40
	}
	if c.Trade.MinVolatilityPct == 0 {
		c.Trade.MinVolatilityPct = 0.8
	}
	if c.Indicators.FastMA == 0 {
		c.Indicators.FastMA = 9
	}
	if c.Indicators.SlowMA == 0 {
		c.Indicators.SlowMA = 21
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.MinLowWindow == 0 {
		c.Indicators.MinLowWindow = 3
	}
}
