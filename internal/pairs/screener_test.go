package pairs

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticPanel builds a panel with one cointegrated pair (COIN1/COIN2)
// and two independent drifting walks. 240 aligned daily bars.
func syntheticPanel(t *testing.T) *Panel {
	t.Helper()
	rng := rand.New(rand.NewSource(21))
	n := 240

	base := make([]float64, n)
	level := 100.0
	for i := 0; i < n; i++ {
		level += 0.1 + 0.8*rng.NormFloat64()
		base[i] = level
	}

	var series []PriceSeries
	mk := func(symbol string, price func(i int) float64) {
		s := PriceSeries{Symbol: symbol}
		for i := 0; i < n; i++ {
			s.Points = append(s.Points, PricePoint{Time: day(i), Price: price(i)})
		}
		series = append(series, s)
	}

	mk("COIN1", func(i int) float64 {
		return 2*base[i] + 0.4*math.Pow(-1, float64(i)) + 0.05*rng.NormFloat64()
	})
	mk("COIN2", func(i int) float64 { return base[i] })

	w1, w2 := 80.0, 150.0
	walk1 := make([]float64, n)
	walk2 := make([]float64, n)
	for i := 0; i < n; i++ {
		w1 += 0.3 + rng.NormFloat64()
		w2 += -0.2 + rng.NormFloat64()
		walk1[i] = w1
		walk2[i] = w2
	}
	mk("WALKA", func(i int) float64 { return walk1[i] })
	mk("WALKB", func(i int) float64 { return walk2[i] })

	panel, err := NewPanel(series, 60)
	require.NoError(t, err)
	return panel
}

func screenCfg() Config {
	cfg := DefaultConfig()
	cfg.ADFLag = 0
	cfg.MaxWorkers = 2
	return cfg
}

func TestScreenPairsFindsCointegratedPair(t *testing.T) {
	panel := syntheticPanel(t)

	candidates, failures, err := ScreenPairs(context.Background(), panel, screenCfg())
	require.NoError(t, err)
	assert.Empty(t, failures)

	found := false
	for _, c := range candidates {
		if (c.Symbol1 == "COIN1" && c.Symbol2 == "COIN2") || (c.Symbol1 == "COIN2" && c.Symbol2 == "COIN1") {
			found = true
			assert.Less(t, c.CorrectedPValue, 0.05)
			assert.GreaterOrEqual(t, c.CorrectedPValue, c.PValue, "correction never shrinks a p-value")
		}
	}
	assert.True(t, found, "the engineered cointegrated pair must be selected")
}

func TestScreenPairsTooFewInstruments(t *testing.T) {
	panel, err := NewPanel([]PriceSeries{seriesOf("ONLY", 0, 1, 2, 3, 4)}, 1)
	require.NoError(t, err)

	candidates, failures, err := ScreenPairs(context.Background(), panel, screenCfg())
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Empty(t, failures)
}

func TestScreenPairsReportsEveryFailedPair(t *testing.T) {
	// Four constant columns: every regression is degenerate, so all
	// C(4,2)=6 pairs must surface as failures and none may abort the run.
	var series []PriceSeries
	for _, sym := range []string{"AAA", "BBB", "CCC", "DDD"} {
		s := PriceSeries{Symbol: sym}
		for i := 0; i < 80; i++ {
			s.Points = append(s.Points, PricePoint{Time: day(i), Price: 10})
		}
		series = append(series, s)
	}
	panel, err := NewPanel(series, 60)
	require.NoError(t, err)

	candidates, failures, err := ScreenPairs(context.Background(), panel, screenCfg())
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Len(t, failures, 6)
	for _, f := range failures {
		assert.Error(t, f.Err)
	}
}

func TestScreenPairsInvalidConfig(t *testing.T) {
	cfg := screenCfg()
	cfg.Significance = 0

	_, _, err := ScreenPairs(context.Background(), syntheticPanel(t), cfg)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestScreenPairsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := ScreenPairs(ctx, syntheticPanel(t), screenCfg())
	require.ErrorIs(t, err, context.Canceled)
}

func TestBenjaminiHochberg(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{
			name: "empty",
		},
		{
			name: "single value unchanged",
			in:   []float64{0.03},
			want: []float64{0.03},
		},
		{
			name: "step-up over three values",
			in:   []float64{0.005, 0.04, 0.2},
			want: []float64{0.015, 0.06, 0.2},
		},
		{
			name: "running minimum enforces monotonicity",
			in:   []float64{0.01, 0.02, 0.03, 0.04, 0.05},
			want: []float64{0.05, 0.05, 0.05, 0.05, 0.05},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := benjaminiHochberg(tt.in)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12, "index %d", i)
			}
			for i := range tt.in {
				assert.GreaterOrEqual(t, got[i], tt.in[i], "adjusted below raw at %d", i)
			}
		})
	}
}
