package pairs

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// CandidatePair is an unordered pair of instruments together with its raw
// and multiple-testing-corrected Engle-Granger p-values. Immutable once
// produced by the screener.
type CandidatePair struct {
	Symbol1         string
	Symbol2         string
	PValue          float64
	CorrectedPValue float64
}

// PairFailure records a pair that was skipped during screening and why.
// Per-pair failures never abort the run.
type PairFailure struct {
	Symbol1 string
	Symbol2 string
	Err     error
}

// ScreenPairs tests every unordered pair of panel instruments for
// cointegration and applies a Benjamini-Hochberg false-discovery-rate
// correction across the full battery before thresholding at
// cfg.Significance. Screening many pairs inflates the false-positive rate
// of the individual tests, so the correction is applied unconditionally.
//
// The per-pair tests are independent and run on a bounded worker pool; each
// worker writes exactly one preallocated result slot. The correction is an
// aggregate over the complete batch and runs only after all workers finish.
// Fewer than two usable instruments yields an empty candidate set, not an
// error.
func ScreenPairs(ctx context.Context, panel *Panel, cfg Config) ([]CandidatePair, []PairFailure, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	symbols := panel.Symbols()
	if len(symbols) < 2 {
		return nil, nil, nil
	}

	type pairSlot struct {
		i, j   int
		pvalue float64
		nobs   int
		err    error
	}
	var slots []pairSlot
	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			slots = append(slots, pairSlot{i: i, j: j})
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxWorkers)
	for k := range slots {
		slot := &slots[k]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s1 := panel.Column(symbols[slot.i])
			s2 := panel.Column(symbols[slot.j])
			slot.pvalue, slot.nobs, slot.err = engleGranger(s1, s2, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		raw      []float64
		tested   []*pairSlot
		failures []PairFailure
	)
	for k := range slots {
		slot := &slots[k]
		if slot.err != nil {
			failures = append(failures, PairFailure{
				Symbol1: symbols[slot.i],
				Symbol2: symbols[slot.j],
				Err:     slot.err,
			})
			continue
		}
		raw = append(raw, slot.pvalue)
		tested = append(tested, slot)
	}

	corrected := benjaminiHochberg(raw)

	var candidates []CandidatePair
	for k, slot := range tested {
		if corrected[k] < cfg.Significance {
			candidates = append(candidates, CandidatePair{
				Symbol1:         symbols[slot.i],
				Symbol2:         symbols[slot.j],
				PValue:          slot.pvalue,
				CorrectedPValue: corrected[k],
			})
		}
	}
	return candidates, failures, nil
}

// engleGranger runs the two-step cointegration test: regress s1 on s2, then
// Dickey-Fuller the residuals (no constant, residuals are mean zero) against
// the two-series MacKinnon distribution.
func engleGranger(s1, s2 []float64, cfg Config) (pvalue float64, nobs int, err error) {
	if len(s1) < cfg.MinObservations || len(s2) < cfg.MinObservations {
		return 0, 0, &DataAlignmentError{Symbol: "pair", Reason: "insufficient overlapping history"}
	}
	for i := range s1 {
		if math.IsNaN(s1[i]) || math.IsNaN(s2[i]) {
			return 0, 0, &DataAlignmentError{Symbol: "pair", Reason: "NaN inside overlapping range"}
		}
	}

	spread, err := EstimateSpread(s1, s2)
	if err != nil {
		return 0, 0, err
	}
	tau, nobs, err := adfStatistic(spread.Values, cfg.ADFLag, false)
	if err != nil {
		return 0, 0, err
	}
	return mackinnonP(tau, 2, nobs), nobs, nil
}

// benjaminiHochberg returns the step-up FDR-adjusted p-values. Adjusted
// values are never below their raw inputs, so any threshold passed after
// correction was also passed before it.
func benjaminiHochberg(pvalues []float64) []float64 {
	m := len(pvalues)
	if m == 0 {
		return nil
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return pvalues[order[a]] < pvalues[order[b]] })

	adjusted := make([]float64, m)
	running := 1.0
	for rank := m - 1; rank >= 0; rank-- {
		idx := order[rank]
		v := pvalues[idx] * float64(m) / float64(rank+1)
		if v < running {
			running = v
		}
		adjusted[idx] = running
	}
	return adjusted
}
