// Package strategy turns aligned candle series into trade decisions: a
// long-horizon trend filter, multi-timeframe EMA agreement voting, and an
// ATR-breakout plus break-of-structure synthesizer. Every function here is a
// pure computation over its inputs; failed gates yield "no signal", never an
// error.
package strategy

import (
	"github.com/rustyeddy/trendbot/indicators"
	"github.com/rustyeddy/trendbot/market"
	"github.com/rustyeddy/trendbot/structure"
)

// Config holds every tunable of the signal engine. Zero values are not
// usable; start from DefaultConfig and override fields as needed.
type Config struct {
	MacroEMAPeriod int // master trend filter length

	FastEMA      int // per-timeframe voting, fast leg
	SlowEMA      int // per-timeframe voting, slow leg
	MinAgreement int // timeframes that must match the master trend

	ATRPeriod    int     // breakout and stop sizing
	EntryATRMult float64 // breakout confirmation margin
	StopATRMult  float64 // stop distance
	RewardRisk   float64 // target distance as a multiple of risk

	SwingLookback int     // structure window size
	BOSBodyRatio  float64 // strong-close requirement
	MinFineBars   int     // bars required on the fine series
}

// DefaultConfig returns the production parameter set: 200-period macro EMA,
// 9/20 voting EMAs with 2-of-4 agreement, ATR(14) with a 0.5 entry margin,
// 1.0 stop multiple, 2:1 reward:risk and a 20-bar swing window.
func DefaultConfig() Config {
	return Config{
		MacroEMAPeriod: 200,
		FastEMA:        9,
		SlowEMA:        20,
		MinAgreement:   2,
		ATRPeriod:      14,
		EntryATRMult:   0.5,
		StopATRMult:    1.0,
		RewardRisk:     2.0,
		SwingLookback:  20,
		BOSBodyRatio:   0.6,
		MinFineBars:    50,
	}
}

func (cfg Config) structureConfig() structure.Config {
	return structure.Config{
		Lookback:  cfg.SwingLookback,
		BodyRatio: cfg.BOSBodyRatio,
		MinBars:   cfg.SwingLookback + 5,
	}
}

// MultiTF bundles the candle series one evaluation needs: the macro series
// for the master trend, one series per voting timeframe, and the fine series
// the synthesizer triggers on. A timeframe whose fetch failed may simply be
// absent from Entry; it votes as non-agreeing.
type MultiTF struct {
	Macro market.Series
	Entry map[market.Timeframe]market.Series
	Fine  market.Series
}

// Evaluate runs the full pipeline for one symbol and returns a Signal, or nil
// when any gate fails: undefined master trend, insufficient agreement, short
// or warming-up fine series, no breakout past the swing extreme by the ATR
// margin, or no break-of-structure confirmation.
//
// The swing window used for both the breakout level and BOS excludes the bar
// under evaluation, so a close can actually clear its own window's high.
func (cfg Config) Evaluate(symbol string, data MultiTF) *Signal {
	master := MasterTrend(data.Macro.Close, cfg.MacroEMAPeriod)
	if master == TrendNone {
		return nil
	}

	dirs := make(map[market.Timeframe]Trend, len(data.Entry))
	agree := 0
	for tf, s := range data.Entry {
		d := EMADirection(s.Close, cfg.FastEMA, cfg.SlowEMA)
		dirs[tf] = d
		if d == master {
			agree++
		}
	}
	if agree < cfg.MinAgreement {
		return nil
	}

	fine := data.Fine
	n := fine.Len()
	if n < cfg.MinFineBars {
		return nil
	}
	atr, ok := indicators.Last(indicators.ATR(fine.High, fine.Low, fine.Close, cfg.ATRPeriod))
	if !ok {
		return nil
	}
	swingHi, swingLo, ok := structure.Swings(fine.High[:n-1], fine.Low[:n-1], cfg.SwingLookback)
	if !ok {
		return nil
	}

	bos := cfg.structureConfig()
	last := fine.LastClose()
	longTrig := last > swingHi+cfg.EntryATRMult*atr && bos.BullishBOS(fine)
	shortTrig := last < swingLo-cfg.EntryATRMult*atr && bos.BearishBOS(fine)

	var side Side
	var entry, stop, target float64
	switch {
	case master == TrendBull && longTrig:
		side = Long
		entry = last
		stop = entry - cfg.StopATRMult*atr
		target = entry + cfg.RewardRisk*(entry-stop)
	case master == TrendBear && shortTrig:
		side = Short
		entry = last
		stop = entry + cfg.StopATRMult*atr
		target = entry - cfg.RewardRisk*(stop-entry)
	default:
		return nil
	}

	return &Signal{
		Symbol:     symbol,
		Side:       side,
		Entry:      entry,
		Stop:       stop,
		Target:     target,
		ATR:        atr,
		Agreement:  agree,
		Directions: dirs,
		Master:     master,
		SwingHigh:  swingHi,
		SwingLow:   swingLo,
	}
}
