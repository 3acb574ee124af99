package dto

import "time"

// ScreeningRequest triggers an ad-hoc screening run. Every field is
// optional; omitted values fall back to the configured defaults.
type ScreeningRequest struct {
	Symbols         []string `json:"symbols" validate:"omitempty,min=2,dive,required"`
	Significance    float64  `json:"significance" validate:"omitempty,gt=0,lt=1"`
	EntryZ          float64  `json:"entry_z" validate:"omitempty,gt=0"`
	ExitZ           float64  `json:"exit_z" validate:"omitempty,gt=0"`
	Window          int      `json:"window" validate:"omitempty,gte=2"`
	CostRate        float64  `json:"cost_rate" validate:"omitempty,gte=0"`
	StopLoss        float64  `json:"stop_loss" validate:"omitempty,gt=0,lt=1"`
	InitialNotional float64  `json:"initial_notional" validate:"omitempty,gt=0"`
}

// PairSummary is the API shape of one evaluated pair.
type PairSummary struct {
	Symbol1         string     `json:"symbol1"`
	Symbol2         string     `json:"symbol2"`
	RawPValue       float64    `json:"raw_p_value"`
	CorrectedPValue float64    `json:"corrected_p_value"`
	HedgeRatio      float64    `json:"hedge_ratio"`
	HalfLife        float64    `json:"half_life"`
	Window          int        `json:"window"`
	FinalReturn     float64    `json:"final_return"`
	FinalValue      float64    `json:"final_value"`
	Trades          int        `json:"trades"`
	Stopped         bool       `json:"stopped"`
	StoppedAt       *time.Time `json:"stopped_at,omitempty"`
}

// ExcludedPair reports a pair dropped during a run and why.
type ExcludedPair struct {
	Symbol1 string `json:"symbol1"`
	Symbol2 string `json:"symbol2"`
	Reason  string `json:"reason"`
}

// ScreeningResponse summarises one completed run.
type ScreeningResponse struct {
	RunID       uint           `json:"run_id"`
	Symbols     []string       `json:"symbols"`
	PairsTested int            `json:"pairs_tested"`
	Candidates  []PairSummary  `json:"candidates"`
	Excluded    []ExcludedPair `json:"excluded"`
	Best        *PairSummary   `json:"best,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// BacktestRequest runs the estimate/analyze/signal/backtest chain for one
// explicit pair.
type BacktestRequest struct {
	Symbol1         string  `json:"symbol1" validate:"required"`
	Symbol2         string  `json:"symbol2" validate:"required,nefield=Symbol1"`
	Window          int     `json:"window" validate:"omitempty,gte=2"`
	CostRate        float64 `json:"cost_rate" validate:"omitempty,gte=0"`
	StopLoss        float64 `json:"stop_loss" validate:"omitempty,gt=0,lt=1"`
	InitialNotional float64 `json:"initial_notional" validate:"omitempty,gt=0"`
}

// BacktestResponse carries the evaluated pair plus its cumulative curve.
type BacktestResponse struct {
	Pair       PairSummary `json:"pair"`
	Intercept  float64     `json:"intercept"`
	ADFPValue  float64     `json:"adf_p_value"`
	Stationary bool        `json:"stationary"`
	Curve      []float64   `json:"curve"`
}
