package market

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
type Candle struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Time   time.Time
	Volume float64
}

// Range returns the full high-low extent of the candle.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// Body returns the absolute open-close extent of the candle.
func (c Candle) Body() float64 {
	b := c.Close - c.Open
	if b < 0 {
		b = -b
	}
	return b
}
