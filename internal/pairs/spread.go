package pairs

// Spread is the residual of regressing one leg on the other:
//
//	S1 = Intercept + HedgeRatio*S2 + spread
//
// Values is the zero-mean residual series, so the original S1 is recovered
// exactly as Intercept + HedgeRatio*S2 + Values. A Spread is never mutated
// after estimation.
type Spread struct {
	HedgeRatio float64
	Intercept  float64
	Values     []float64
}

// EstimateSpread fits S1 = a + h*S2 by ordinary least squares and returns
// the hedge ratio, intercept and residual spread. Series of unequal length
// are truncated to the common trailing sub-range. A degenerate S2 (zero
// variance) fails with an EstimationError; it is never collapsed into a
// default ratio.
func EstimateSpread(s1, s2 []float64) (*Spread, error) {
	n := len(s1)
	if len(s2) < n {
		n = len(s2)
	}
	s1 = s1[len(s1)-n:]
	s2 = s2[len(s2)-n:]

	alpha, beta, err := regress(s1, s2)
	if err != nil {
		return nil, err
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = s1[i] - alpha - beta*s2[i]
	}
	return &Spread{HedgeRatio: beta, Intercept: alpha, Values: values}, nil
}

// residualSpread reapplies previously estimated coefficients to a (possibly
// longer) pair of aligned series. Used to extend a train-split fit over the
// full sample without re-estimating.
func (s *Spread) residualSpread(s1, s2 []float64) []float64 {
	n := len(s1)
	if len(s2) < n {
		n = len(s2)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = s1[i] - s.Intercept - s.HedgeRatio*s2[i]
	}
	return out
}
