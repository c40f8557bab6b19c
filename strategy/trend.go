package strategy

import "github.com/rustyeddy/trendbot/indicators"

// Trend is a directional bias derived from EMAs. TrendNone means no bias:
// either the EMAs are still warming up or price sits exactly on the filter,
// and a TrendNone timeframe never counts as agreeing.
type Trend int

const (
	TrendNone Trend = iota
	TrendBull
	TrendBear
)

func (t Trend) String() string {
	switch t {
	case TrendBull:
		return "bull"
	case TrendBear:
		return "bear"
	default:
		return "none"
	}
}

// MasterTrend derives the long-horizon bias: bull when the latest close sits
// strictly above the macro EMA, bear when strictly below, none when the EMA
// is undefined or the close lands exactly on it.
func MasterTrend(closes []float64, period int) Trend {
	ema, ok := indicators.Last(indicators.EMA(closes, period))
	if !ok || len(closes) == 0 {
		return TrendNone
	}
	last := closes[len(closes)-1]
	switch {
	case last > ema:
		return TrendBull
	case last < ema:
		return TrendBear
	default:
		return TrendNone
	}
}

// EMADirection derives a single timeframe's direction from a fast/slow EMA
// pair on closes: bull when fast is strictly above slow, bear when strictly
// below, none when either EMA is undefined or they are exactly equal.
func EMADirection(closes []float64, fast, slow int) Trend {
	fv, ok := indicators.Last(indicators.EMA(closes, fast))
	if !ok {
		return TrendNone
	}
	sv, ok := indicators.Last(indicators.EMA(closes, slow))
	if !ok {
		return TrendNone
	}
	switch {
	case fv > sv:
		return TrendBull
	case fv < sv:
		return TrendBear
	default:
		return TrendNone
	}
}
