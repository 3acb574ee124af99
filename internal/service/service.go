package service

import (
	"pairs-trading/config"
	"pairs-trading/internal/repository"
	"pairs-trading/pkg/logger"
	"pairs-trading/pkg/telegram"
)

type Service struct {
	ScreeningService ScreeningService
	BacktestService  BacktestService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	notifier *telegram.Notifier,
) *Service {
	screeningService := NewScreeningService(cfg, log, repo.PriceHistoryRepo, repo.ScreeningRepo, notifier)
	backtestService := NewBacktestService(cfg, log, repo.PriceHistoryRepo)
	schedulerService := NewSchedulerService(cfg, log, screeningService)

	return &Service{
		ScreeningService: screeningService,
		BacktestService:  backtestService,
		SchedulerService: schedulerService,
	}
}
