package pairs

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStateBandSemantics(t *testing.T) {
	// Worked z-score path with entry 1 and exit 0.5. 0.4 sits inside the
	// exit band and must flatten, and so must the final 0.1: positions are
	// held only until the z-score re-enters (-0.5, 0.5).
	zs := []float64{0.2, 1.3, 1.1, 0.4, -1.4, 0.1}
	want := []int{0, -1, -1, 0, 1, 0}

	state := Flat
	for i, z := range zs {
		state = nextState(state, z, 1, 0.5)
		assert.Equal(t, want[i], state, "state after z=%g (index %d)", z, i)
	}
}

func TestNextStateBoundariesAreStrict(t *testing.T) {
	tests := []struct {
		name  string
		state int
		z     float64
		want  int
	}{
		{name: "z exactly at entry does not enter", state: Flat, z: 1.0, want: Flat},
		{name: "z just above entry enters short", state: Flat, z: 1.0001, want: ShortSpread},
		{name: "z exactly at -entry does not enter", state: Flat, z: -1.0, want: Flat},
		{name: "z exactly at exit edge keeps position", state: ShortSpread, z: 0.5, want: ShortSpread},
		{name: "z inside exit band flattens", state: ShortSpread, z: 0.4999, want: Flat},
		{name: "short holds through opposite extreme", state: ShortSpread, z: -2.5, want: ShortSpread},
		{name: "long holds through opposite extreme", state: LongSpread, z: 2.5, want: LongSpread},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextState(tt.state, tt.z, 1, 0.5))
		})
	}
}

func TestGenerateSignalsWarmupAndDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	spread := make([]float64, 120)
	for i := 1; i < len(spread); i++ {
		spread[i] = 0.7*spread[i-1] + rng.NormFloat64()
	}

	first, err := GenerateSignals(spread, 10)
	require.NoError(t, err)
	second, err := GenerateSignals(spread, 10)
	require.NoError(t, err)

	assert.Equal(t, first.Positions, second.Positions, "same input must yield the same signal path")

	for i := 0; i < 9; i++ {
		assert.Equal(t, Flat, first.Positions[i], "no valid z-score before the window fills")
		assert.True(t, math.IsNaN(first.ZScores[i]))
	}
}

func TestGenerateSignalsHysteresis(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	spread := make([]float64, 400)
	for i := 1; i < len(spread); i++ {
		spread[i] = 0.5*spread[i-1] + rng.NormFloat64()
	}

	sig, err := GenerateSignals(spread, 8)
	require.NoError(t, err)

	entered := false
	for i := 1; i < len(sig.Positions); i++ {
		prev, cur := sig.Positions[i-1], sig.Positions[i]
		assert.False(t, prev == LongSpread && cur == ShortSpread, "direct long->short flip at %d", i)
		assert.False(t, prev == ShortSpread && cur == LongSpread, "direct short->long flip at %d", i)
		if prev != Flat && cur == Flat {
			z := sig.ZScores[i]
			assert.True(t, z > -0.5 && z < 0.5, "flattened outside the exit band at %d (z=%g)", i, z)
		}
		if cur != Flat {
			entered = true
		}
	}
	assert.True(t, entered, "an AR(1) spread over 400 bars should trigger at least one entry")
}

func TestGenerateSignalsWindowValidation(t *testing.T) {
	spread := make([]float64, 50)
	var cfgErr *ConfigurationError

	_, err := GenerateSignals(spread, 0)
	require.ErrorAs(t, err, &cfgErr)

	_, err = GenerateSignals(spread, 51)
	require.ErrorAs(t, err, &cfgErr)
}

func TestGenerateSignalsZeroDeviationCarriesForward(t *testing.T) {
	// A flat stretch has zero rolling deviation: no z-score, keep state.
	spread := []float64{0, 0, 0, 0, 0, 0}
	sig, err := GenerateSignals(spread, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, sig.Positions)
	assert.True(t, math.IsNaN(sig.ZScores[5]))
}
