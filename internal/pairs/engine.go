package pairs

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Engine runs the full screening pipeline over a panel: cointegration
// battery, spread estimation, stationarity and half-life gates, signal
// generation and a held-out backtest per surviving pair.
type Engine struct {
	cfg Config
}

// NewEngine validates the configuration up front; an invalid config is a
// caller bug and fails before any data is touched.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// RunReport is the outcome of one screening run. Excluded collects every
// pair that was dropped along the way with the error that dropped it, so
// the caller can see what fell out and why.
type RunReport struct {
	Candidates []CandidatePair
	Reports    []PairReport
	Excluded   []PairFailure
	Best       *PairReport
}

// Run screens the panel and evaluates each candidate pair on a train/test
// split: hedge ratio, stationarity verdict and half-life all come from the
// train split only, and performance is measured on the remaining held-out
// bars. Signals are generated over the full spread so the test segment
// starts with a warm rolling window. Candidate evaluations are independent
// and fan out on the same bounded pool as the screener.
func (e *Engine) Run(ctx context.Context, panel *Panel) (*RunReport, error) {
	candidates, skipped, err := ScreenPairs(ctx, panel, e.cfg)
	if err != nil {
		return nil, err
	}

	report := &RunReport{Candidates: candidates, Excluded: skipped}

	type evalSlot struct {
		pair   CandidatePair
		report *PairReport
		err    error
	}
	slots := make([]evalSlot, len(candidates))
	for i, c := range candidates {
		slots[i].pair = c
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxWorkers)
	for i := range slots {
		slot := &slots[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slot.report, slot.err = e.EvaluatePair(panel, slot.pair)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range slots {
		slot := &slots[i]
		if slot.err != nil {
			report.Excluded = append(report.Excluded, PairFailure{
				Symbol1: slot.pair.Symbol1,
				Symbol2: slot.pair.Symbol2,
				Err:     slot.err,
			})
			continue
		}
		report.Reports = append(report.Reports, *slot.report)
	}

	if len(report.Reports) > 0 {
		best, err := SelectBest(report.Reports)
		if err != nil {
			return nil, err
		}
		report.Best = best
	}
	return report, nil
}

// EvaluatePair estimates on the train split, gates on stationarity and
// reversion speed, then simulates the held-out test split.
func (e *Engine) EvaluatePair(panel *Panel, pair CandidatePair) (*PairReport, error) {
	s1 := panel.Column(pair.Symbol1)
	s2 := panel.Column(pair.Symbol2)
	split := int(e.cfg.TrainRatio * float64(len(s1)))

	spread, err := EstimateSpread(s1[:split], s2[:split])
	if err != nil {
		return nil, err
	}

	diag, err := AnalyzeSpread(spread, e.cfg)
	if err != nil {
		return nil, err
	}
	if !diag.Stationary {
		return nil, &NonStationarySpreadError{PValue: diag.ADFPValue}
	}

	window := e.cfg.Window
	if window == 0 {
		window = diag.Window
	}

	full := spread.residualSpread(s1, s2)
	signals, err := generateSignals(full, window, e.cfg.EntryZ, e.cfg.ExitZ)
	if err != nil {
		return nil, err
	}

	result, err := RunBacktest(s1[split:], s2[split:], spread.HedgeRatio, signals.slice(split), e.cfg)
	if err != nil {
		return nil, err
	}

	rep := &PairReport{
		Pair:       pair,
		HedgeRatio: spread.HedgeRatio,
		Intercept:  spread.Intercept,
		ADFPValue:  diag.ADFPValue,
		HalfLife:   diag.HalfLife,
		Window:     window,
		Result:     result,
	}
	if result.Stopped {
		t := panel.Index()[split+result.StopIndex]
		rep.StopTime = &t
	}
	return rep, nil
}
