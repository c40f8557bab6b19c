package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMA_InsufficientHistory(t *testing.T) {
	assert.Nil(t, EMA([]float64{1, 2}, 3))
	assert.Nil(t, EMA(nil, 3))
	assert.Nil(t, EMA([]float64{1, 2, 3}, 0))
}

func TestEMA_WarmupAlignment(t *testing.T) {
	out := EMA([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)

	// first period-1 points undefined, the rest defined
	assert.False(t, out[0].Defined)
	assert.False(t, out[1].Defined)
	for i := 2; i < 5; i++ {
		assert.True(t, out[i].Defined, "index %d", i)
	}
}

func TestEMA_KnownSequence(t *testing.T) {
	// period = 3
	// k = 2/(3+1) = 0.5
	//
	// sequence: 10, 11, 12, 13
	//
	// EMA steps:
	// 1) seed = (10+11+12)/3 = 11
	// 2) (13-11)*0.5 + 11 = 12
	out := EMA([]float64{10, 11, 12, 13}, 3)
	require.Len(t, out, 4)

	require.True(t, out[2].Defined)
	assert.InDelta(t, 11.0, out[2].Value, 1e-9)
	require.True(t, out[3].Defined)
	assert.InDelta(t, 12.0, out[3].Value, 1e-9)
}

func TestEMA_ConstantSeries(t *testing.T) {
	values := make([]float64, 300)
	for i := range values {
		values[i] = 100
	}

	for _, period := range []int{9, 20} {
		out := EMA(values, period)
		require.Len(t, out, 300)
		for i := period - 1; i < len(out); i++ {
			require.True(t, out[i].Defined)
			assert.InDelta(t, 100.0, out[i].Value, 1e-9)
		}
	}
}

func TestLast(t *testing.T) {
	_, ok := Last(nil)
	assert.False(t, ok)

	_, ok = Last([]Point{{}, {}})
	assert.False(t, ok)

	v, ok := Last([]Point{{}, {Value: 42, Defined: true}})
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
}
