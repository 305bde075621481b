package engine

import (
	"fmt"

	"github.com/betoborelli9/beto-bot/internal/store"
	"github.com/betoborelli9/beto-bot/internal/ta"
	"github.com/betoborelli9/beto-bot/internal/types"
)

// minCandles is the shortest series the snapshot can be computed from:
// the slow moving average at two consecutive positions dominates the RSI
// window requirement.
func minCandles(cfg *store.Config) int {
	slow := cfg.Indicators.SlowMA + 1
	rsi := cfg.Indicators.RSIPeriod + 1
	if rsi > slow {
		return rsi
	}
	return slow
}

// computeSnapshot derives all indicator values for one candle series.
func computeSnapshot(cfg *store.Config, candles []types.Candle) (types.Snapshot, error) {
	need := minCandles(cfg)
	if len(candles) < need {
		return types.Snapshot{}, fmt.Errorf("%w: have %d candles, need %d", ErrInsufficientData, len(candles), need)
	}

	closes := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		lows[i] = c.Low
	}
	prev := closes[:len(closes)-1]
	last := candles[len(candles)-1]

	snap := types.Snapshot{
		FastMA:     ta.SMA(closes, cfg.Indicators.FastMA),
		SlowMA:     ta.SMA(closes, cfg.Indicators.SlowMA),
		PrevFastMA: ta.SMA(prev, cfg.Indicators.FastMA),
		PrevSlowMA: ta.SMA(prev, cfg.Indicators.SlowMA),
		MinLow:     ta.MinLow(lows, cfg.Indicators.MinLowWindow),
		Volatility: ta.VolatilityPct(last.High, last.Low),
		Cross:      ta.Crossover(closes, cfg.Indicators.FastMA, cfg.Indicators.SlowMA),
	}
	snap.RSI, snap.RSIValid = ta.RSI(closes, cfg.Indicators.RSIPeriod)
	return snap, nil
}
