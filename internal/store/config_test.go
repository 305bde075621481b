package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
mode: DRY_RUN
universe_static: [BTCUSDT, ETHUSDT]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.PollSeconds != 60 {
		t.Errorf("expected poll_seconds default 60, got %d", cfg.PollSeconds)
	}
	if cfg.BarInterval != "5m" {
		t.Errorf("expected bar_interval default 5m, got %s", cfg.BarInterval)
	}
	if cfg.CandleLimit != 100 {
		t.Errorf("expected candle_limit default 100, got %d", cfg.CandleLimit)
	}
	if cfg.Trade.NotionalUSD != 6.0 {
		t.Errorf("expected notional default 6.0, got %f", cfg.Trade.NotionalUSD)
	}
	if cfg.Trade.StopPct != 1.5 || cfg.Trade.ProfitPct != 3.0 {
		t.Errorf("expected stop/profit defaults 1.5/3.0, got %f/%f", cfg.Trade.StopPct, cfg.Trade.ProfitPct)
	}
	if cfg.Trade.RSIBuyThreshold != 40 {
		t.Errorf("expected RSI threshold default 40, got %f", cfg.Trade.RSIBuyThreshold)
	}
	if cfg.Indicators.FastMA != 9 || cfg.Indicators.SlowMA != 21 || cfg.Indicators.RSIPeriod != 14 {
		t.Errorf("unexpected indicator defaults: %+v", cfg.Indicators)
	}
	if cfg.PositionsPath != "positions.json" {
		t.Errorf("expected positions_path default, got %s", cfg.PositionsPath)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name, body, wantErr string
	}{
		{"bad mode", "mode: TEST\nuniverse_static: [BTCUSDT]\n", "invalid mode"},
		{"empty universe", "mode: DRY_RUN\n", "universe_static cannot be empty"},
		{"fast not below slow", "mode: DRY_RUN\nuniverse_static: [BTCUSDT]\nindicators:\n  fast_ma: 21\n  slow_ma: 21\n", "must be smaller"},
		{"candle limit too small", "mode: DRY_RUN\nuniverse_static: [BTCUSDT]\ncandle_limit: 10\n", "too small"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
