package repository

import (
	"context"

	"pairs-trading/internal/model"

	"gorm.io/gorm"
)

// ScreeningRepository persists screening runs and their per-pair outcomes.
type ScreeningRepository interface {
	CreateRun(ctx context.Context, run *model.ScreeningRun) error
	UpdateRun(ctx context.Context, run *model.ScreeningRun) error
	CreateCandidates(ctx context.Context, candidates []model.PairCandidate) error
	GetRun(ctx context.Context, id uint) (*model.ScreeningRun, error)
	GetRuns(ctx context.Context, param model.GetScreeningRunsParam) ([]model.ScreeningRun, error)
}

type screeningRepository struct {
	db *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) ScreeningRepository {
	return &screeningRepository{db: db}
}

func (r *screeningRepository) CreateRun(ctx context.Context, run *model.ScreeningRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *screeningRepository) UpdateRun(ctx context.Context, run *model.ScreeningRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *screeningRepository) CreateCandidates(ctx context.Context, candidates []model.PairCandidate) error {
	if len(candidates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&candidates).Error
}

func (r *screeningRepository) GetRun(ctx context.Context, id uint) (*model.ScreeningRun, error) {
	var run model.ScreeningRun
	err := r.db.WithContext(ctx).
		Preload("Candidates").
		First(&run, id).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *screeningRepository) GetRuns(ctx context.Context, param model.GetScreeningRunsParam) ([]model.ScreeningRun, error) {
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if param.Status != "" {
		q = q.Where("status = ?", param.Status)
	}
	if param.Limit > 0 {
		q = q.Limit(param.Limit)
	}

	var runs []model.ScreeningRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
