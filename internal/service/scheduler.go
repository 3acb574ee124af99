package service

import (
	"context"
	"time"

	"pairs-trading/config"
	"pairs-trading/internal/dto"
	"pairs-trading/pkg/logger"

	"github.com/robfig/cron/v3"
)

type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

type schedulerService struct {
	cfg       *config.Config
	log       *logger.Logger
	screening ScreeningService
	cron      *cron.Cron
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, screening ScreeningService) *schedulerService {
	return &schedulerService{
		cfg:       cfg,
		log:       log,
		screening: screening,
		cron:      cron.New(),
	}
}

// Start schedules the periodic screening over the configured universe.
// An empty schedule disables the scheduler entirely.
func (s *schedulerService) Start(ctx context.Context) error {
	schedule := s.cfg.Screener.CronSchedule
	if schedule == "" {
		s.log.Info("Screening scheduler disabled, no cron schedule configured")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()

		s.log.InfoContext(runCtx, "Scheduled screening started",
			logger.IntField("universe_size", len(s.cfg.Screener.Universe)),
		)
		if _, err := s.screening.RunScreening(runCtx, dto.ScreeningRequest{}); err != nil {
			s.log.ErrorContext(runCtx, "Scheduled screening failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Screening scheduler started", logger.StringField("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Screening scheduler stopped")
}
