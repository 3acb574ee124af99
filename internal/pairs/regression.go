package pairs

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// regress fits y = alpha + beta*x by ordinary least squares. A regressor
// with (numerically) zero variance yields an EstimationError instead of an
// unbounded coefficient.
func regress(y, x []float64) (alpha, beta float64, err error) {
	if len(x) != len(y) {
		return 0, 0, &EstimationError{Reason: "series length mismatch"}
	}
	if len(x) < 3 {
		return 0, 0, &EstimationError{Reason: "too few observations for regression"}
	}
	if stat.Variance(x, nil) < 1e-12 {
		return 0, 0, &EstimationError{Reason: "regressor has zero variance"}
	}
	alpha, beta = stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0, 0, &EstimationError{Reason: "regression produced non-finite coefficients"}
	}
	return alpha, beta, nil
}

// leastSquares solves y = X*coef via QR and returns the coefficient vector
// with its standard errors. Used by the Dickey-Fuller regressions, where the
// design has a handful of columns at most.
func leastSquares(y []float64, x *mat.Dense) (coef, stderr []float64, err error) {
	n, k := x.Dims()
	if n != len(y) || n <= k {
		return nil, nil, &EstimationError{Reason: "underdetermined regression design"}
	}

	var qr mat.QR
	qr.Factorize(x)

	yVec := mat.NewDense(n, 1, y)
	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, yVec); err != nil {
		return nil, nil, &EstimationError{Reason: "singular regression design"}
	}

	coef = make([]float64, k)
	for j := 0; j < k; j++ {
		coef[j] = sol.At(j, 0)
	}

	// Residual variance and the diagonal of sigma^2 * (X'X)^-1.
	var fitted mat.Dense
	fitted.Mul(x, &sol)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.At(i, 0)
		rss += r * r
	}
	sigma2 := rss / float64(n-k)

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, nil, &EstimationError{Reason: "singular normal equations"}
	}

	stderr = make([]float64, k)
	for j := 0; j < k; j++ {
		v := sigma2 * inv.At(j, j)
		if v <= 0 || math.IsNaN(v) {
			return nil, nil, &EstimationError{Reason: "non-positive coefficient variance"}
		}
		stderr[j] = math.Sqrt(v)
	}
	return coef, stderr, nil
}
