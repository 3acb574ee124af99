package pairs

import "math"

// SpreadDiagnostics reports the stationarity gate and, for accepted
// spreads, the estimated mean-reversion speed. Window is the signal
// lookback derived from the half-life; it is zero when the spread was not
// accepted.
type SpreadDiagnostics struct {
	Stationary bool
	ADFPValue  float64
	Phi        float64
	HalfLife   float64
	Window     int
}

// AnalyzeSpread runs an augmented Dickey-Fuller test on the spread and, if
// it is stationary at cfg.Significance, estimates the half-life of mean
// reversion by regressing the first difference of the spread on its lagged
// level. A non-negative reversion coefficient means the spread is not
// actually reverting despite the stationarity verdict; that case fails with
// a NonRevertingSpreadError rather than feeding a nonsensical window
// forward.
func AnalyzeSpread(spread *Spread, cfg Config) (*SpreadDiagnostics, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tau, nobs, err := adfStatistic(spread.Values, cfg.ADFLag, true)
	if err != nil {
		return nil, err
	}
	p := mackinnonP(tau, 1, nobs)
	diag := &SpreadDiagnostics{ADFPValue: p}
	if p >= cfg.Significance {
		return diag, nil
	}
	diag.Stationary = true

	// ds_t = c + phi*s_{t-1}; half-life follows from the AR(1) reading of
	// the spread.
	n := len(spread.Values)
	lagged := spread.Values[:n-1]
	ds := make([]float64, n-1)
	for i := 1; i < n; i++ {
		ds[i-1] = spread.Values[i] - spread.Values[i-1]
	}
	_, phi, err := regress(ds, lagged)
	if err != nil {
		return nil, err
	}
	diag.Phi = phi
	if phi >= 0 || math.IsNaN(phi) {
		return nil, &NonRevertingSpreadError{Phi: phi}
	}

	diag.HalfLife = -math.Ln2 / phi
	// A sample standard deviation needs at least two observations.
	diag.Window = int(math.Round(diag.HalfLife))
	if diag.Window < 2 {
		diag.Window = 2
	}
	return diag, nil
}
