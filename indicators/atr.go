package indicators

import "math"

// TrueRange computes the per-bar True Range series.
//
// The first bar has no previous close, so its true range is high-low. Every
// later bar takes max(high-low, |high-prevClose|, |low-prevClose|). The
// result is never negative for well-formed bars (high >= low).
func TrueRange(high, low, close []float64) []float64 {
	out := make([]float64, len(close))
	for i := range close {
		hl := high[i] - low[i]
		if i == 0 {
			out[i] = hl
			continue
		}
		prev := close[i-1]
		hc := math.Abs(high[i] - prev)
		lc := math.Abs(low[i] - prev)
		out[i] = math.Max(hl, math.Max(hc, lc))
	}
	return out
}

// ATR computes the Average True Range as an EMA of the True Range series.
// It inherits EMA's warm-up rule: nil when fewer than period bars exist, and
// the first period-1 points undefined otherwise.
func ATR(high, low, close []float64, period int) []Point {
	return EMA(TrueRange(high, low, close), period)
}
