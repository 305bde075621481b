package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/betoborelli9/beto-bot/internal/store"
	"github.com/betoborelli9/beto-bot/internal/ta"
	"github.com/betoborelli9/beto-bot/internal/types"
)

func smallConfig() *store.Config {
	cfg := testConfig()
	cfg.Indicators.FastMA = 2
	cfg.Indicators.SlowMA = 3
	cfg.Indicators.RSIPeriod = 3
	cfg.Indicators.MinLowWindow = 2
	cfg.CandleLimit = 5
	return cfg
}

func candlesFromCloses(closes []float64) []types.Candle {
	cs := make([]types.Candle, len(closes))
	for i, c := range closes {
		cs[i] = types.Candle{
			Ts:    int64(i+1) * 300_000,
			Open:  c,
			High:  c + 0.5,
			Low:   c - 0.5,
			Close: c,
			Vol:   100,
		}
	}
	return cs
}

func TestComputeSnapshotInsufficientData(t *testing.T) {
	cfg := smallConfig()
	_, err := computeSnapshot(cfg, candlesFromCloses([]float64{10, 9, 8}))
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestComputeSnapshot(t *testing.T) {
	cfg := smallConfig()
	snap, err := computeSnapshot(cfg, candlesFromCloses([]float64{10, 9, 8, 7, 10}))
	if err != nil {
		t.Fatal(err)
	}

	if snap.Cross != ta.CrossBuy {
		t.Errorf("expected buy crossover, got %q", snap.Cross)
	}
	if !snap.RSIValid || math.Abs(snap.RSI-60.0) > 1e-9 {
		t.Errorf("expected RSI 60, got %f (valid=%v)", snap.RSI, snap.RSIValid)
	}
	if math.Abs(snap.FastMA-8.5) > 1e-9 {
		t.Errorf("expected fast MA 8.5, got %f", snap.FastMA)
	}
	if math.Abs(snap.PrevFastMA-7.5) > 1e-9 {
		t.Errorf("expected prev fast MA 7.5, got %f", snap.PrevFastMA)
	}
	if math.Abs(snap.MinLow-6.5) > 1e-9 {
		t.Errorf("expected min low 6.5, got %f", snap.MinLow)
	}
	wantVol := 1.0 / 9.5 * 100
	if math.Abs(snap.Volatility-wantVol) > 1e-9 {
		t.Errorf("expected volatility %f, got %f", wantVol, snap.Volatility)
	}
}
