package market

// Series holds aligned open/high/low/close/volume sequences for one symbol
// and timeframe, in chronological order. A Series is built once per
// evaluation cycle and never mutated afterwards.
type Series struct {
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// Len returns the number of bars in the series.
func (s Series) Len() int {
	return len(s.Close)
}

// Last returns the most recent bar. ok is false on an empty series.
func (s Series) Last() (c Candle, ok bool) {
	n := s.Len()
	if n == 0 {
		return Candle{}, false
	}
	i := n - 1
	return Candle{
		Open:   s.Open[i],
		High:   s.High[i],
		Low:    s.Low[i],
		Close:  s.Close[i],
		Volume: s.Volume[i],
	}, true
}

// LastClose returns the most recent close, or 0 on an empty series.
func (s Series) LastClose() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.Close[s.Len()-1]
}

func (s *Series) append(o, h, l, c, v float64) {
	s.Open = append(s.Open, o)
	s.High = append(s.High, h)
	s.Low = append(s.Low, l)
	s.Close = append(s.Close, c)
	s.Volume = append(s.Volume, v)
}
