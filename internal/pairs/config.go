package pairs

import "fmt"

// Config carries every tunable of the engine as a named, typed field. The
// zero value is not usable; start from DefaultConfig.
type Config struct {
	// Significance is the level applied to the corrected cointegration
	// p-values and to the stationarity test.
	Significance float64
	// EntryZ and ExitZ are the z-score bands for entering and flattening a
	// spread position. Entry must sit strictly outside the exit band.
	EntryZ float64
	ExitZ  float64
	// Window overrides the half-life-derived signal lookback when positive.
	Window int
	// ADFLag is the lag order of the augmented Dickey-Fuller regressions.
	ADFLag int
	// CostRate is the proportional transaction cost per leg on each
	// position change.
	CostRate float64
	// StopLoss is the drawdown fraction that irreversibly stops a backtest.
	StopLoss float64
	// InitialNotional is the capital assumed at the start of a backtest.
	InitialNotional float64
	// TrainRatio is the fraction of the sample used for estimation; the
	// remainder is the held-out test split.
	TrainRatio float64
	// MinObservations is the minimum aligned history a pair needs before it
	// is tested.
	MinObservations int
	// MaxWorkers bounds the screener and backtest worker pools.
	MaxWorkers int
}

// DefaultConfig returns the engine defaults inherited from the reference
// strategy: 5% significance, z bands at +/-1 and +/-0.5, 5 bps per-leg
// costs, a 5% drawdown stop and a 70/30 train/test split.
func DefaultConfig() Config {
	return Config{
		Significance:    0.05,
		EntryZ:          1.0,
		ExitZ:           0.5,
		Window:          0,
		ADFLag:          1,
		CostRate:        0.0005,
		StopLoss:        0.05,
		InitialNotional: 100_000,
		TrainRatio:      0.7,
		MinObservations: 60,
		MaxWorkers:      4,
	}
}

// Validate checks all ranges and returns a ConfigurationError on the first
// violation. It must be called before any computation starts.
func (c Config) Validate() error {
	switch {
	case c.Significance <= 0 || c.Significance >= 1:
		return &ConfigurationError{Field: "Significance", Reason: "must be in (0, 1)"}
	case c.EntryZ <= 0:
		return &ConfigurationError{Field: "EntryZ", Reason: "must be positive"}
	case c.ExitZ <= 0 || c.ExitZ >= c.EntryZ:
		return &ConfigurationError{Field: "ExitZ", Reason: fmt.Sprintf("must be in (0, EntryZ=%g)", c.EntryZ)}
	case c.Window < 0:
		return &ConfigurationError{Field: "Window", Reason: "must not be negative"}
	case c.ADFLag < 0:
		return &ConfigurationError{Field: "ADFLag", Reason: "must not be negative"}
	case c.CostRate < 0:
		return &ConfigurationError{Field: "CostRate", Reason: "must not be negative"}
	case c.StopLoss <= 0 || c.StopLoss >= 1:
		return &ConfigurationError{Field: "StopLoss", Reason: "must be in (0, 1)"}
	case c.InitialNotional <= 0:
		return &ConfigurationError{Field: "InitialNotional", Reason: "must be positive"}
	case c.TrainRatio <= 0 || c.TrainRatio >= 1:
		return &ConfigurationError{Field: "TrainRatio", Reason: "must be in (0, 1)"}
	case c.MinObservations < 20:
		return &ConfigurationError{Field: "MinObservations", Reason: "must be at least 20"}
	case c.MaxWorkers < 1:
		return &ConfigurationError{Field: "MaxWorkers", Reason: "must be at least 1"}
	}
	return nil
}
