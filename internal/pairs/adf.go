package pairs

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// adfStatistic runs the augmented Dickey-Fuller regression
//
//	dy_t = (c) + gamma*y_{t-1} + sum_{i=1..lag} b_i*dy_{t-i} + e_t
//
// and returns the t-statistic of gamma together with the effective number of
// observations. withConstant selects the intercept variant; the test on
// Engle-Granger residuals runs without one since residuals are mean zero.
func adfStatistic(series []float64, lag int, withConstant bool) (tau float64, nobs int, err error) {
	n := len(series)
	// Keep a usable effective sample on short inputs.
	for lag > 0 && n-lag-1 < 3*(lag+3) {
		lag--
	}
	nobs = n - lag - 1
	cols := 1 + lag
	if withConstant {
		cols++
	}
	if nobs <= cols+1 {
		return 0, 0, &EstimationError{Reason: "series too short for Dickey-Fuller regression"}
	}

	diff := make([]float64, n-1)
	for i := 1; i < n; i++ {
		diff[i-1] = series[i] - series[i-1]
	}

	y := make([]float64, nobs)
	x := mat.NewDense(nobs, cols, nil)
	for i := 0; i < nobs; i++ {
		t := i + lag + 1 // index into series
		y[i] = diff[t-1]
		col := 0
		x.Set(i, col, series[t-1])
		col++
		for j := 1; j <= lag; j++ {
			x.Set(i, col, diff[t-1-j])
			col++
		}
		if withConstant {
			x.Set(i, col, 1)
		}
	}

	coef, stderr, err := leastSquares(y, x)
	if err != nil {
		return 0, 0, err
	}
	return coef[0] / stderr[0], nobs, nil
}

// MacKinnon (2010) response-surface coefficients for the 1%, 5% and 10%
// quantiles of the tau distribution with a constant: cv = b0 + b1/n + b2/n^2
// + b3/n^3. Row sets are indexed by the number of I(1) series: 1 for a plain
// unit-root test, 2 for the Engle-Granger residual test.
var mackinnonTauC = map[int][3][4]float64{
	1: {
		{-3.43035, -6.5393, -16.786, -79.433},
		{-2.86154, -2.8903, -4.234, -40.040},
		{-2.56677, -1.5384, -2.809, 0},
	},
	2: {
		{-3.89644, -10.9519, -22.527, 0},
		{-3.33613, -6.1101, -6.823, 0},
		{-3.04445, -4.2412, -2.720, 0},
	},
}

var mackinnonProbs = [3]float64{0.01, 0.05, 0.10}

// mackinnonP maps a tau statistic to an approximate p-value by piecewise
// log-linear interpolation between the MacKinnon quantiles, extrapolating
// with the nearest segment slope beyond them. The result is coarse in the
// tails but smooth and monotonic, which is what the Benjamini-Hochberg
// ranking needs.
func mackinnonP(tau float64, nseries, nobs int) float64 {
	coeffs := mackinnonTauC[nseries]
	nf := float64(nobs)

	var cv [3]float64
	for i, b := range coeffs {
		cv[i] = b[0] + b[1]/nf + b[2]/(nf*nf) + b[3]/(nf*nf*nf)
	}

	logp := func(i int) float64 { return math.Log10(mackinnonProbs[i]) }
	slope01 := (logp(1) - logp(0)) / (cv[1] - cv[0])
	slope12 := (logp(2) - logp(1)) / (cv[2] - cv[1])

	var lp float64
	switch {
	case tau <= cv[1]:
		lp = logp(0) + (tau-cv[0])*slope01
	case tau <= cv[2]:
		lp = logp(1) + (tau-cv[1])*slope12
	default:
		lp = logp(2) + (tau-cv[2])*slope12
	}

	p := math.Pow(10, lp)
	if p < 1e-6 {
		p = 1e-6
	}
	if p > 0.995 {
		p = 0.995
	}
	return p
}
