// Package indicators provides the technical analysis primitives used by the
// signal engine: EMA, True Range and ATR, computed as whole series aligned
// index-for-index with their source bars.
package indicators

// Point is one indicator output aligned with its source bar. During an
// indicator's warm-up the point is undefined and Value is meaningless, so
// gates can match on Defined instead of testing sentinel values.
type Point struct {
	Value   float64
	Defined bool
}

// Last returns the final point of a series.
// ok is false when the series is empty or its final point is undefined.
func Last(points []Point) (v float64, ok bool) {
	if len(points) == 0 {
		return 0, false
	}
	p := points[len(points)-1]
	return p.Value, p.Defined
}
