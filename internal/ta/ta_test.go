package ta

import (
	"math"
	"testing"
)

func TestSMA(t *testing.T) {
	closes := []float64{1, 2, 3, 4}
	if got := SMA(closes, 2); got != 3.5 {
		t.Errorf("expected SMA 3.5, got %f", got)
	}
	if got := SMA(closes, 4); got != 2.5 {
		t.Errorf("expected SMA 2.5, got %f", got)
	}
	if got := SMA(closes, 5); !math.IsNaN(got) {
		t.Errorf("expected NaN for short series, got %f", got)
	}
}

func TestRSIWithinBounds(t *testing.T) {
	closes := []float64{10, 11, 10.5, 11.5}
	rsi, ok := RSI(closes, 3)
	if !ok {
		t.Fatal("expected defined RSI")
	}
	if rsi < 0 || rsi > 100 {
		t.Errorf("RSI out of bounds: %f", rsi)
	}
	// gains 2.0, losses 0.5 -> rs=4 -> 100-100/5
	if math.Abs(rsi-80.0) > 1e-9 {
		t.Errorf("expected RSI 80, got %f", rsi)
	}
}

func TestRSIUndefinedWhenNoLosses(t *testing.T) {
	closes := []float64{10, 11, 12, 13}
	if _, ok := RSI(closes, 3); ok {
		t.Error("expected undefined RSI for loss-free window")
	}
}

func TestRSIInsufficientData(t *testing.T) {
	if _, ok := RSI([]float64{10, 11}, 3); ok {
		t.Error("expected undefined RSI for short series")
	}
}

func TestCrossoverSymmetry(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   string
	}{
		{"fast crosses above slow", []float64{10, 9, 8, 7, 10}, CrossBuy},
		{"fast crosses below slow", []float64{10, 11, 12, 13, 10}, CrossSell},
		{"no cross", []float64{1, 2, 3, 4, 5}, CrossNone},
		{"too short", []float64{1, 2, 3}, CrossNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Crossover(tt.closes, 2, 3); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMinLow(t *testing.T) {
	lows := []float64{5, 3, 4}
	if got := MinLow(lows, 3); got != 3 {
		t.Errorf("expected 3, got %f", got)
	}
	if got := MinLow(lows, 2); got != 3 {
		t.Errorf("expected 3, got %f", got)
	}
	if got := MinLow(lows, 4); !math.IsNaN(got) {
		t.Errorf("expected NaN for short series, got %f", got)
	}
}

func TestVolatilityPct(t *testing.T) {
	if got := VolatilityPct(101, 100); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected 1.0, got %f", got)
	}
	if got := VolatilityPct(10, 0); !math.IsNaN(got) {
		t.Errorf("expected NaN for zero low, got %f", got)
	}
}
