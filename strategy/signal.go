package strategy

import "github.com/rustyeddy/trendbot/market"

// Side is the direction of a trade.
type Side int

const (
	Long Side = iota
	Short
)

func (s Side) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

// Signal is one tradeable setup. It is built once when every synthesis gate
// passes, consumed by the position sizer and the order layer, then discarded;
// nothing carries it across evaluation cycles.
type Signal struct {
	Symbol     string
	Side       Side
	Entry      float64
	Stop       float64
	Target     float64
	ATR        float64
	Agreement  int
	Directions map[market.Timeframe]Trend
	Master     Trend
	SwingHigh  float64
	SwingLow   float64
}
