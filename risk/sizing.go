// Package risk converts a trade setup and an account balance into a bounded
// position size and a take-profit level that clears a minimum dollar floor.
// Sizing is a pure function of its inputs.
package risk

import (
	"math"

	"github.com/shopspring/decimal"
)

// Params are the static sizing knobs.
type Params struct {
	RiskUSD          float64 // fixed dollar risk per trade
	Leverage         float64 // notional cap factor
	NotionalBuffer   float64 // safety margin under the cap, < 1
	MinTakeProfitUSD float64 // profit floor enforced on the target
	QtyStep          float64 // lot-size flooring step
}

// DefaultParams mirrors the production configuration: $0.70 risk, 100x
// leverage ceiling with a 0.95 buffer, $1 minimum take-profit and a 1e-5
// quantity step.
func DefaultParams() Params {
	return Params{
		RiskUSD:          0.7,
		Leverage:         100,
		NotionalBuffer:   0.95,
		MinTakeProfitUSD: 1.0,
		QtyStep:          1e-5,
	}
}

// Inputs describe one candidate trade against the current account state.
// Direction is implied: a stop below entry is a long, above entry a short.
type Inputs struct {
	Entry   float64
	Stop    float64
	Target  float64
	Balance float64 // account balance in quote currency
}

// Result is the sized trade. A zero Quantity means the trade is rejected;
// Target is then returned unchanged.
type Result struct {
	Quantity float64
	Target   float64
}

// Size computes the position quantity and enforces the take-profit floor.
//
// Quantity is RiskUSD over the stop distance, capped so the notional
// (quantity * entry) never exceeds balance * leverage * buffer, then floored
// to QtyStep. A non-positive stop distance rejects the trade outright.
//
// If the projected profit |target-entry| * quantity falls below the floor,
// the target is pushed further from entry, never pulled closer, so the
// projection lands exactly on the floor.
func Size(in Inputs, p Params) Result {
	dist := math.Abs(in.Entry - in.Stop)
	if dist <= 0 {
		return Result{Quantity: 0, Target: in.Target}
	}

	qty := p.RiskUSD / dist

	maxNotional := in.Balance * p.Leverage * p.NotionalBuffer
	if qty*in.Entry > maxNotional && in.Entry > 0 {
		qty = maxNotional / in.Entry
	}

	if p.QtyStep > 0 {
		// Floor in decimal space: float division puts 0.7/1e-5 just below
		// 70000 and would eat one lot step.
		step := decimal.NewFromFloat(p.QtyStep)
		qty, _ = decimal.NewFromFloat(qty).Div(step).Floor().Mul(step).Float64()
	}
	if qty <= 0 {
		return Result{Quantity: 0, Target: in.Target}
	}

	return Result{Quantity: qty, Target: ensureMinTarget(in, qty, p)}
}

func ensureMinTarget(in Inputs, qty float64, p Params) float64 {
	proj := math.Abs(in.Target-in.Entry) * qty
	if proj >= p.MinTakeProfitUSD {
		return in.Target
	}
	needed := p.MinTakeProfitUSD / qty
	if in.Stop < in.Entry { // long
		return in.Entry + needed
	}
	return in.Entry - needed
}
