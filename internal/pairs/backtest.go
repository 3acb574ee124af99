package pairs

import "math"

// BacktestResult is the outcome of replaying a signal path against the two
// legs of a pair. Curve is the compounded cumulative-return path, truncated
// at the stop-loss breach when one occurred; the breach bar itself is never
// part of the curve.
type BacktestResult struct {
	Curve       []float64
	FinalReturn float64
	FinalValue  float64
	Trades      int
	Stopped     bool
	StopIndex   int
}

// RunBacktest simulates per-bar portfolio returns for the given signals.
// Leg positions follow the regression sign convention: a long-spread signal
// is long leg 1 and short hedgeRatio units of leg 2. On every position
// change each leg pays a proportional cost of cfg.CostRate times the traded
// notional. The cumulative curve compounds bar by bar; the running peak
// starts at the initial notional and the first time drawdown from that peak
// exceeds cfg.StopLoss the simulation stops for good.
func RunBacktest(s1, s2 []float64, hedgeRatio float64, signals *SignalSeries, cfg Config) (*BacktestResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := len(signals.Positions)
	if len(s1) != n || len(s2) != n {
		return nil, &EstimationError{Reason: "signal and price series lengths differ"}
	}

	res := &BacktestResult{StopIndex: -1}
	cum := 1.0
	peak := 1.0
	prevPos1, prevPos2 := 0.0, 0.0

	for t := 0; t < n; t++ {
		sig := float64(signals.Positions[t])
		pos1 := -sig
		pos2 := sig * hedgeRatio

		var ret1, ret2 float64
		if t > 0 {
			ret1 = s1[t]/s1[t-1] - 1
			ret2 = s2[t]/s2[t-1] - 1
		}
		ret := pos1*ret1 + pos2*ret2

		d1 := math.Abs(pos1 - prevPos1)
		d2 := math.Abs(pos2 - prevPos2)
		if d1 > 0 || d2 > 0 {
			res.Trades++
			ret -= (d1 + d2) * cfg.CostRate
		}
		prevPos1, prevPos2 = pos1, pos2

		cum *= 1 + ret
		if cum > peak {
			peak = cum
		}
		if (peak-cum)/peak > cfg.StopLoss {
			res.Stopped = true
			res.StopIndex = t
			break
		}
		res.Curve = append(res.Curve, cum)
	}

	res.FinalReturn = 1.0
	if len(res.Curve) > 0 {
		res.FinalReturn = res.Curve[len(res.Curve)-1]
	}
	res.FinalValue = res.FinalReturn * cfg.InitialNotional
	return res, nil
}
