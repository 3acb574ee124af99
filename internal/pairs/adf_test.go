package pairs

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADFStatisticRejectsShortSeries(t *testing.T) {
	_, _, err := adfStatistic([]float64{1, 2, 3}, 1, true)
	var estErr *EstimationError
	require.ErrorAs(t, err, &estErr)
}

func TestADFWhiteNoiseIsStationary(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	series := make([]float64, 300)
	for i := range series {
		series[i] = rng.NormFloat64()
	}

	tau, nobs, err := adfStatistic(series, 1, true)
	require.NoError(t, err)
	assert.Positive(t, nobs)
	assert.Less(t, tau, -5.0, "white noise should produce a strongly negative tau")
	assert.Less(t, mackinnonP(tau, 1, nobs), 0.05)
}

func TestADFDriftingWalkIsNotStationary(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	series := make([]float64, 300)
	level := 100.0
	for i := range series {
		level += 0.5 + rng.NormFloat64()
		series[i] = level
	}

	tau, nobs, err := adfStatistic(series, 1, true)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, mackinnonP(tau, 1, nobs), 0.05)
}

func TestMackinnonPMonotonicInTau(t *testing.T) {
	prev := 0.0
	for tau := -8.0; tau <= 2.0; tau += 0.25 {
		p := mackinnonP(tau, 1, 250)
		assert.GreaterOrEqual(t, p, prev, "p-value must not decrease as tau rises (tau=%g)", tau)
		prev = p
	}
}

func TestMackinnonPRanges(t *testing.T) {
	tests := []struct {
		name    string
		tau     float64
		nseries int
		check   func(t *testing.T, p float64)
	}{
		{
			name:    "deep rejection region",
			tau:     -10,
			nseries: 1,
			check:   func(t *testing.T, p float64) { assert.LessOrEqual(t, p, 0.01) },
		},
		{
			name:    "far from rejection",
			tau:     1.5,
			nseries: 1,
			check:   func(t *testing.T, p float64) { assert.Greater(t, p, 0.10) },
		},
		{
			name:    "cointegration needs a stronger tau",
			tau:     -3.0,
			nseries: 2,
			check:   func(t *testing.T, p float64) { assert.Greater(t, p, 0.05) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mackinnonP(tt.tau, tt.nseries, 250)
			assert.False(t, math.IsNaN(p))
			assert.Greater(t, p, 0.0)
			assert.Less(t, p, 1.0)
			tt.check(t, p)
		})
	}
}
