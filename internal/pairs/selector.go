package pairs

import (
	"errors"
	"time"
)

// ErrNoCandidates is returned when selection runs over an empty result set.
var ErrNoCandidates = errors.New("no backtested candidate pairs")

// PairReport bundles everything the engine learned about one accepted pair:
// the screening verdict, the train-split estimates and the held-out test
// backtest.
type PairReport struct {
	Pair       CandidatePair
	HedgeRatio float64
	Intercept  float64
	ADFPValue  float64
	HalfLife   float64
	Window     int
	Result     *BacktestResult
	StopTime   *time.Time
}

// SelectBest ranks the reports by final test-period return and returns the
// best one. Ties go to the shorter half-life: faster reversion turns the
// same return over in less time.
func SelectBest(reports []PairReport) (*PairReport, error) {
	if len(reports) == 0 {
		return nil, ErrNoCandidates
	}

	best := &reports[0]
	for i := 1; i < len(reports); i++ {
		r := &reports[i]
		switch {
		case r.Result.FinalReturn > best.Result.FinalReturn:
			best = r
		case r.Result.FinalReturn == best.Result.FinalReturn && r.HalfLife < best.HalfLife:
			best = r
		}
	}
	return best, nil
}
