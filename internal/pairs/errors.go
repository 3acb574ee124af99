package pairs

import "fmt"

// ConfigurationError indicates an invalid engine configuration. It is raised
// before any computation starts and is always a caller bug.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// DataAlignmentError indicates a pair has insufficient overlapping, NaN-free
// history after alignment. The pair is skipped; screening continues.
type DataAlignmentError struct {
	Symbol string
	Reason string
}

func (e *DataAlignmentError) Error() string {
	return fmt.Sprintf("data alignment failed for %s: %s", e.Symbol, e.Reason)
}

// EstimationError indicates a degenerate regression input, e.g. a regressor
// with zero variance. The pair is excluded from candidates.
type EstimationError struct {
	Reason string
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("spread estimation failed: %s", e.Reason)
}

// NonStationarySpreadError indicates the spread failed the Dickey-Fuller
// gate, so the z-score strategy has no statistical footing on it.
type NonStationarySpreadError struct {
	PValue float64
}

func (e *NonStationarySpreadError) Error() string {
	return fmt.Sprintf("spread is not stationary: adf p-value %.4f", e.PValue)
}

// NonRevertingSpreadError indicates the spread passed the stationarity test
// but its estimated half-life is non-positive or undefined, so no meaningful
// signal window exists for it.
type NonRevertingSpreadError struct {
	Phi float64
}

func (e *NonRevertingSpreadError) Error() string {
	return fmt.Sprintf("spread is not mean-reverting: phi=%.6f", e.Phi)
}
