package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

// ScreeningRun is one pass of the pairs engine over a universe.
type ScreeningRun struct {
	ID          uint           `gorm:"primarykey"`
	Universe    datatypes.JSON `gorm:"type:jsonb;not null"`
	Params      datatypes.JSON `gorm:"type:jsonb;not null"`
	Status      string         `gorm:"not null"`
	Error       string
	PairsTested int
	StartedAt   time.Time `gorm:"not null"`
	FinishedAt  *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Candidates []PairCandidate `gorm:"foreignKey:ScreeningRunID"`
}

func (ScreeningRun) TableName() string {
	return "screening_runs"
}

// PairCandidate is one evaluated (or excluded) pair of a run. Excluded
// rows keep the reason and no backtest payload.
type PairCandidate struct {
	ID              uint   `gorm:"primarykey"`
	ScreeningRunID  uint   `gorm:"not null;index"`
	Symbol1         string `gorm:"not null"`
	Symbol2         string `gorm:"not null"`
	RawPValue       float64
	CorrectedPValue float64
	HedgeRatio      float64
	Intercept       float64
	HalfLife        float64
	Window          int
	FinalReturn     float64
	FinalValue      float64
	Trades          int
	Stopped         bool
	StoppedAt       *time.Time
	Curve           datatypes.JSON `gorm:"type:jsonb"`
	Excluded        bool           `gorm:"not null;default:false"`
	ExclusionReason string
	Best            bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (PairCandidate) TableName() string {
	return "pair_candidates"
}

// GetScreeningRunsParam filters run listings.
type GetScreeningRunsParam struct {
	Status string
	Limit  int
}
