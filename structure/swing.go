// Package structure performs rolling price-action analysis: swing high/low
// windows and break-of-structure detection on the most recently closed bar.
package structure

import "github.com/rustyeddy/trendbot/market"

// rangeFloor keeps the body/range ratio finite on zero-range bars.
const rangeFloor = 1e-9

// Swings returns the highest high and lowest low over the final lookback
// bars. ok is false when fewer than lookback bars are available.
func Swings(highs, lows []float64, lookback int) (hi, lo float64, ok bool) {
	n := len(highs)
	if lookback <= 0 || n < lookback || len(lows) < lookback {
		return 0, 0, false
	}
	hi = highs[n-lookback]
	for _, h := range highs[n-lookback:] {
		if h > hi {
			hi = h
		}
	}
	m := len(lows)
	lo = lows[m-lookback]
	for _, l := range lows[m-lookback:] {
		if l < lo {
			lo = l
		}
	}
	return hi, lo, true
}

// Config holds the break-of-structure detection parameters.
type Config struct {
	Lookback  int     // swing window size
	BodyRatio float64 // minimum body/range of the breakout candle
	MinBars   int     // history required before detection can fire
}

// DefaultConfig returns the standard 20-bar window with a 60% strong-close
// requirement and 25 bars of minimum history.
func DefaultConfig() Config {
	return Config{Lookback: 20, BodyRatio: 0.6, MinBars: 25}
}

// BullishBOS reports a bullish break of structure on the last closed candle:
// its close exceeds the swing high of the preceding lookback bars and its
// body covers at least BodyRatio of its range. The swing window excludes the
// candle under test, mirrored exactly by BearishBOS.
func (cfg Config) BullishBOS(s market.Series) bool {
	n := s.Len()
	if n < cfg.MinBars {
		return false
	}
	hi, _, ok := Swings(s.High[:n-1], s.Low[:n-1], cfg.Lookback)
	if !ok {
		return false
	}
	last, _ := s.Last()
	rng := last.Range()
	if rng < rangeFloor {
		rng = rangeFloor
	}
	return last.Close > hi && last.Body()/rng >= cfg.BodyRatio
}

// BearishBOS is the mirror of BullishBOS against the swing low.
func (cfg Config) BearishBOS(s market.Series) bool {
	n := s.Len()
	if n < cfg.MinBars {
		return false
	}
	_, lo, ok := Swings(s.High[:n-1], s.Low[:n-1], cfg.Lookback)
	if !ok {
		return false
	}
	last, _ := s.Last()
	rng := last.Range()
	if rng < rangeFloor {
		rng = rangeFloor
	}
	return last.Close < lo && last.Body()/rng >= cfg.BodyRatio
}
