package indicators

// EMA computes an Exponential Moving Average over the given values.
//
// The output is aligned with the input: the first period-1 points are
// undefined, the period-th point seeds with the simple average of the first
// period values, and each later point follows v*k + prev*(1-k) with
// k = 2/(period+1). Fewer than period values yields nil (nothing defined).
func EMA(values []float64, period int) []Point {
	if period <= 0 || len(values) < period {
		return nil
	}

	out := make([]Point, len(values))
	k := 2.0 / float64(period+1)

	sum := 0.0
	for _, v := range values[:period] {
		sum += v
	}
	prev := sum / float64(period)
	out[period-1] = Point{Value: prev, Defined: true}

	for i := period; i < len(values); i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = Point{Value: prev, Defined: true}
	}
	return out
}
