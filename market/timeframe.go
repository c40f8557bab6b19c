package market

// Timeframe is a candle resolution as the exchange spells it, e.g. "15m".
type Timeframe string

const (
	M1  Timeframe = "1m"
	M5  Timeframe = "5m"
	M15 Timeframe = "15m"
	M30 Timeframe = "30m"
	H1  Timeframe = "1h"
	H2  Timeframe = "2h"
	H4  Timeframe = "4h"
	D1  Timeframe = "1d"
)

var timeframeSeconds = map[Timeframe]int64{
	M1:  60,
	M5:  300,
	M15: 900,
	M30: 1800,
	H1:  3600,
	H2:  7200,
	H4:  14400,
	D1:  86400,
}

// Seconds returns the bar interval in seconds. Unknown resolutions fall back
// to 15 minutes, matching the exchange's default resolution.
func (tf Timeframe) Seconds() int64 {
	if s, ok := timeframeSeconds[tf]; ok {
		return s
	}
	return 900
}

// Valid reports whether the resolution is one the exchange accepts.
func (tf Timeframe) Valid() bool {
	_, ok := timeframeSeconds[tf]
	return ok
}
