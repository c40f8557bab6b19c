package market

import "encoding/json"

// rawBar matches field-named candle records. Pointers distinguish a missing
// field from a zero value so incomplete records can be rejected.
type rawBar struct {
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

// ParseBars normalizes heterogeneous raw candle records into a Series.
//
// Each record is either a positional array [ts, open, high, low, close,
// volume?] or a field-named object. Records that cannot be parsed are skipped
// individually; ParseBars returns whatever consistent subset it could build
// rather than failing on one bad entry. Volume defaults to 0 when absent.
func ParseBars(raw []json.RawMessage) Series {
	var s Series
	for _, r := range raw {
		var arr []float64
		if err := json.Unmarshal(r, &arr); err == nil {
			if len(arr) < 5 {
				continue
			}
			vol := 0.0
			if len(arr) > 5 {
				vol = arr[5]
			}
			s.append(arr[1], arr[2], arr[3], arr[4], vol)
			continue
		}

		var b rawBar
		if err := json.Unmarshal(r, &b); err != nil {
			continue
		}
		if b.Open == nil || b.High == nil || b.Low == nil || b.Close == nil {
			continue
		}
		vol := 0.0
		if b.Volume != nil {
			vol = *b.Volume
		}
		s.append(*b.Open, *b.High, *b.Low, *b.Close, vol)
	}
	return s
}
