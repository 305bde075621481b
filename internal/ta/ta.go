package ta

import "math"

const (
	CrossBuy  = "buy"
	CrossSell = "sell"
	CrossNone = ""
)

func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// RSI returns the relative strength index over the trailing period.
// ok is false when the window had no losing closes: the quotient is
// undefined then and callers must not read it as 100 or 0.
func RSI(closes []float64, period int) (rsi float64, ok bool) {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN(), false
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return math.NaN(), false
	}
	rs := (gain / float64(period)) / (loss / float64(period))
	return 100.0 - (100.0 / (1.0 + rs)), true
}

// Crossover reports whether the fast moving average crossed the slow one
// between the previous and the latest close. Needs slow+1 closes so both
// averages can be evaluated at two consecutive positions.
func Crossover(closes []float64, fast, slow int) string {
	if len(closes) < slow+1 || fast <= 0 || slow <= fast {
		return CrossNone
	}
	prevFast := SMA(closes[:len(closes)-1], fast)
	prevSlow := SMA(closes[:len(closes)-1], slow)
	curFast := SMA(closes, fast)
	curSlow := SMA(closes, slow)
	switch {
	case prevFast < prevSlow && curFast > curSlow:
		return CrossBuy
	case prevFast > prevSlow && curFast < curSlow:
		return CrossSell
	}
	return CrossNone
}

// MinLow returns the lowest low of the last n candles.
func MinLow(lows []float64, n int) float64 {
	if len(lows) < n || n <= 0 {
		return math.NaN()
	}
	m := lows[len(lows)-n]
	for i := len(lows) - n + 1; i < len(lows); i++ {
		if lows[i] < m {
			m = lows[i]
		}
	}
	return m
}

// VolatilityPct is the intraperiod range of a single candle as a
// percentage of its low.
func VolatilityPct(high, low float64) float64 {
	if low <= 0 {
		return math.NaN()
	}
	return (high - low) / low * 100.0
}
