package service

import (
	"errors"
	"testing"

	"pairs-trading/config"
	"pairs-trading/internal/dto"
	"pairs-trading/internal/pairs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineConfig(t *testing.T) {
	t.Run("zero config keeps engine defaults", func(t *testing.T) {
		cfg := EngineConfig(config.Screener{}, dto.ScreeningRequest{})
		assert.Equal(t, pairs.DefaultConfig(), cfg)
	})

	t.Run("screener settings override defaults", func(t *testing.T) {
		cfg := EngineConfig(config.Screener{
			Significance:    0.01,
			EntryZ:          2.0,
			ExitZ:           0.25,
			Window:          20,
			CostRate:        0.001,
			MinObservations: 120,
			MaxWorkers:      8,
		}, dto.ScreeningRequest{})

		assert.Equal(t, 0.01, cfg.Significance)
		assert.Equal(t, 2.0, cfg.EntryZ)
		assert.Equal(t, 0.25, cfg.ExitZ)
		assert.Equal(t, 20, cfg.Window)
		assert.Equal(t, 0.001, cfg.CostRate)
		assert.Equal(t, 120, cfg.MinObservations)
		assert.Equal(t, 8, cfg.MaxWorkers)
		// Untouched fields stay at engine defaults.
		assert.Equal(t, pairs.DefaultConfig().StopLoss, cfg.StopLoss)
		assert.Equal(t, pairs.DefaultConfig().TrainRatio, cfg.TrainRatio)
	})

	t.Run("request overrides win over screener settings", func(t *testing.T) {
		cfg := EngineConfig(
			config.Screener{Significance: 0.01, EntryZ: 2.0},
			dto.ScreeningRequest{Significance: 0.1, StopLoss: 0.1},
		)

		assert.Equal(t, 0.1, cfg.Significance)
		assert.Equal(t, 2.0, cfg.EntryZ)
		assert.Equal(t, 0.1, cfg.StopLoss)
	})
}

func TestBuildCandidateRows(t *testing.T) {
	rep := pairs.PairReport{
		Pair: pairs.CandidatePair{
			Symbol1:         "AAA",
			Symbol2:         "BBB",
			PValue:          0.003,
			CorrectedPValue: 0.012,
		},
		HedgeRatio: 1.5,
		Intercept:  0.3,
		HalfLife:   4.2,
		Window:     4,
		Result: &pairs.BacktestResult{
			Curve:       []float64{1.0, 1.01, 1.02},
			FinalReturn: 1.02,
			FinalValue:  102_000,
			Trades:      2,
			StopIndex:   -1,
		},
	}
	report := &pairs.RunReport{
		Reports: []pairs.PairReport{rep},
		Excluded: []pairs.PairFailure{
			{Symbol1: "CCC", Symbol2: "DDD", Err: errors.New("spread is not mean reverting")},
		},
		Best: &rep,
	}

	rows := buildCandidateRows(7, report)
	require.Len(t, rows, 2)

	evaluated := rows[0]
	assert.Equal(t, uint(7), evaluated.ScreeningRunID)
	assert.Equal(t, "AAA", evaluated.Symbol1)
	assert.Equal(t, 0.003, evaluated.RawPValue)
	assert.Equal(t, 0.012, evaluated.CorrectedPValue)
	assert.Equal(t, 1.5, evaluated.HedgeRatio)
	assert.Equal(t, 1.02, evaluated.FinalReturn)
	assert.True(t, evaluated.Best)
	assert.False(t, evaluated.Excluded)
	assert.JSONEq(t, `[1.0, 1.01, 1.02]`, string(evaluated.Curve))

	excluded := rows[1]
	assert.Equal(t, "CCC", excluded.Symbol1)
	assert.True(t, excluded.Excluded)
	assert.Equal(t, "spread is not mean reverting", excluded.ExclusionReason)
	assert.False(t, excluded.Best)
}

func TestPairSummary(t *testing.T) {
	rep := &pairs.PairReport{
		Pair:       pairs.CandidatePair{Symbol1: "AAA", Symbol2: "BBB", PValue: 0.01, CorrectedPValue: 0.04},
		HedgeRatio: 2.0,
		HalfLife:   3.5,
		Window:     4,
		Result: &pairs.BacktestResult{
			FinalReturn: 0.97,
			FinalValue:  97_000,
			Trades:      5,
			Stopped:     true,
			StopIndex:   12,
		},
	}

	summary := pairSummary(rep)
	assert.Equal(t, "AAA", summary.Symbol1)
	assert.Equal(t, "BBB", summary.Symbol2)
	assert.Equal(t, 0.01, summary.RawPValue)
	assert.Equal(t, 0.04, summary.CorrectedPValue)
	assert.Equal(t, 2.0, summary.HedgeRatio)
	assert.Equal(t, 0.97, summary.FinalReturn)
	assert.Equal(t, 5, summary.Trades)
	assert.True(t, summary.Stopped)
}
