package repository

import (
	"pairs-trading/config"
	"pairs-trading/pkg/cache"
	"pairs-trading/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	PriceHistoryRepo PriceHistoryRepository
	ScreeningRepo    ScreeningRepository
}

func NewRepository(cfg *config.Config, c cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		PriceHistoryRepo: NewPriceHistoryRepository(cfg, log, c),
		ScreeningRepo:    NewScreeningRepository(db),
	}, nil
}
