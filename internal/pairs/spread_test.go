package pairs

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trendPair builds S2 = 100..119 and S1 = 2*S2 + noise, where the noise is
// a small alternating component with seeded jitter. Alternation makes the
// residual aggressively mean-reverting, which the stationarity tests rely
// on.
func trendPair() (s1, s2 []float64) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		p2 := 100.0 + float64(i)
		noise := 0.05*math.Pow(-1, float64(i)) + 0.01*rng.NormFloat64()
		s2 = append(s2, p2)
		s1 = append(s1, 2*p2+noise)
	}
	return s1, s2
}

func TestEstimateSpreadRecoversHedgeRatio(t *testing.T) {
	s1, s2 := trendPair()

	spread, err := EstimateSpread(s1, s2)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, spread.HedgeRatio, 0.02, "hedge ratio within 1%")
	assert.Len(t, spread.Values, len(s1))

	mean := 0.0
	for _, v := range spread.Values {
		mean += v
	}
	mean /= float64(len(spread.Values))
	assert.InDelta(t, 0, mean, 1e-9, "residual spread is zero mean")
}

func TestEstimateSpreadRoundTrip(t *testing.T) {
	s1, s2 := trendPair()

	spread, err := EstimateSpread(s1, s2)
	require.NoError(t, err)

	for i := range s1 {
		got := spread.Intercept + spread.HedgeRatio*s2[i] + spread.Values[i]
		assert.InDelta(t, s1[i], got, 1e-9)
	}
}

func TestEstimateSpreadIdempotent(t *testing.T) {
	s1, s2 := trendPair()

	first, err := EstimateSpread(s1, s2)
	require.NoError(t, err)
	second, err := EstimateSpread(s1, s2)
	require.NoError(t, err)

	assert.Equal(t, first.HedgeRatio, second.HedgeRatio)
	assert.Equal(t, first.Intercept, second.Intercept)
	assert.Equal(t, first.Values, second.Values)
}

func TestEstimateSpreadDegenerateRegressor(t *testing.T) {
	s1 := []float64{1, 2, 3, 4, 5}
	s2 := []float64{7, 7, 7, 7, 7}

	_, err := EstimateSpread(s1, s2)
	var estErr *EstimationError
	require.ErrorAs(t, err, &estErr)
}

func TestEstimateSpreadTruncatesToTrailingRange(t *testing.T) {
	s1 := []float64{99, 99, 1, 2, 3, 4, 5, 6, 7, 8}
	s2 := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	spread, err := EstimateSpread(s1, s2)
	require.NoError(t, err)
	// Only the trailing 8 observations of s1 enter, which line up exactly
	// with s2.
	assert.Len(t, spread.Values, 8)
	assert.InDelta(t, 1.0, spread.HedgeRatio, 1e-9)
}
