package risk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_RiskBasedQuantity(t *testing.T) {
	// entry=100 stop=99 risk=$0.70: qty = 0.7/1 = 0.7,
	// notional 70 is far below the cap 10*100*0.95 = 950
	p := DefaultParams()
	res := Size(Inputs{Entry: 100, Stop: 99, Target: 102, Balance: 10}, p)

	assert.InDelta(t, 0.7, res.Quantity, 1e-12)
	// projected profit 2*0.7 = $1.40 clears the $1 floor: target untouched
	assert.Equal(t, 102.0, res.Target)
}

func TestSize_ZeroStopDistance(t *testing.T) {
	p := DefaultParams()
	res := Size(Inputs{Entry: 100, Stop: 100, Target: 102, Balance: 1000}, p)

	assert.Equal(t, 0.0, res.Quantity)
	assert.Equal(t, 102.0, res.Target)
}

func TestSize_NotionalCap(t *testing.T) {
	// tight stop demands qty 700, notional 70000 > cap 10*100*0.95 = 950,
	// so qty is cut to 950/100 = 9.5
	p := DefaultParams()
	p.RiskUSD = 700
	res := Size(Inputs{Entry: 100, Stop: 99, Target: 102, Balance: 10}, p)

	assert.InDelta(t, 9.5, res.Quantity, 1e-12)
	assert.InDelta(t, 950.0, res.Quantity*100, 1e-9)
}

func TestSize_FlooredToStep(t *testing.T) {
	p := DefaultParams()
	// qty = 0.7/3 = 0.2333... floors to 0.23333
	res := Size(Inputs{Entry: 100, Stop: 97, Target: 110, Balance: 1000}, p)
	assert.InDelta(t, 0.23333, res.Quantity, 1e-12)
}

func TestSize_MinTargetWidening(t *testing.T) {
	t.Run("long target pushed up to the floor", func(t *testing.T) {
		// qty 0.01, projected profit |102-100|*0.01 = $0.02 < $1 floor:
		// target becomes 100 + 1.0/0.01 = 200
		p := DefaultParams()
		p.RiskUSD = 0.01
		res := Size(Inputs{Entry: 100, Stop: 99, Target: 102, Balance: 1e9}, p)

		require.InDelta(t, 0.01, res.Quantity, 1e-12)
		assert.InDelta(t, 200.0, res.Target, 1e-9)
		// the enforced target projects exactly the floor
		assert.InDelta(t, 1.0, math.Abs(res.Target-100)*res.Quantity, 1e-9)
	})

	t.Run("short target pushed down", func(t *testing.T) {
		p := DefaultParams()
		p.RiskUSD = 0.01
		res := Size(Inputs{Entry: 100, Stop: 101, Target: 98, Balance: 1e9}, p)

		require.InDelta(t, 0.01, res.Quantity, 1e-12)
		assert.InDelta(t, 0.0, res.Target, 1e-9)
	})

	t.Run("target already past the floor is unchanged", func(t *testing.T) {
		p := DefaultParams()
		res := Size(Inputs{Entry: 100, Stop: 99, Target: 110, Balance: 1000}, p)
		assert.Equal(t, 110.0, res.Target)
	})
}

func TestSize_NotionalNeverExceedsCap(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		entry := 1 + rng.Float64()*50000
		stop := entry * (1 - (rng.Float64()*0.1 - 0.05))
		balance := rng.Float64() * 1000

		res := Size(Inputs{Entry: entry, Stop: stop, Target: entry * 1.02, Balance: balance}, p)

		require.GreaterOrEqual(t, res.Quantity, 0.0)
		cap := balance * p.Leverage * p.NotionalBuffer
		require.LessOrEqual(t, res.Quantity*entry, cap+1e-6,
			"entry=%f stop=%f balance=%f", entry, stop, balance)
	}
}
