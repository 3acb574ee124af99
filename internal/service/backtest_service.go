package service

import (
	"context"
	"errors"
	"fmt"

	"pairs-trading/config"
	"pairs-trading/internal/dto"
	"pairs-trading/internal/pairs"
	"pairs-trading/internal/repository"
	"pairs-trading/pkg/logger"
)

type BacktestService interface {
	RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error)
}

type backtestService struct {
	cfg       *config.Config
	log       *logger.Logger
	priceRepo repository.PriceHistoryRepository
}

func NewBacktestService(cfg *config.Config, log *logger.Logger, priceRepo repository.PriceHistoryRepository) *backtestService {
	return &backtestService{cfg: cfg, log: log, priceRepo: priceRepo}
}

// RunBacktest skips the screening battery and evaluates one explicit pair
// on the usual train/test split. A spread that fails the stationarity gate
// is reported, not treated as an error.
func (s *backtestService) RunBacktest(ctx context.Context, req dto.BacktestRequest) (*dto.BacktestResponse, error) {
	engineCfg := EngineConfig(s.cfg.Screener, dto.ScreeningRequest{
		Window:          req.Window,
		CostRate:        req.CostRate,
		StopLoss:        req.StopLoss,
		InitialNotional: req.InitialNotional,
	})
	engine, err := pairs.NewEngine(engineCfg)
	if err != nil {
		return nil, err
	}

	panel, skipped, err := s.priceRepo.GetPanel(ctx, []string{req.Symbol1, req.Symbol2}, engineCfg.MinObservations)
	if err != nil {
		return nil, fmt.Errorf("failed to build price panel: %w", err)
	}
	if len(skipped) > 0 {
		return nil, fmt.Errorf("no usable history for %v", skipped)
	}

	rep, err := engine.EvaluatePair(panel, pairs.CandidatePair{Symbol1: req.Symbol1, Symbol2: req.Symbol2})
	if err != nil {
		var nonStationary *pairs.NonStationarySpreadError
		if errors.As(err, &nonStationary) {
			return &dto.BacktestResponse{
				Pair:      dto.PairSummary{Symbol1: req.Symbol1, Symbol2: req.Symbol2},
				ADFPValue: nonStationary.PValue,
			}, nil
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "Ad-hoc backtest completed",
		logger.StringField("symbol1", req.Symbol1),
		logger.StringField("symbol2", req.Symbol2),
		logger.Float64Field("final_return", rep.Result.FinalReturn),
	)

	return &dto.BacktestResponse{
		Pair:       pairSummary(rep),
		Intercept:  rep.Intercept,
		ADFPValue:  rep.ADFPValue,
		Stationary: true,
		Curve:      rep.Result.Curve,
	}, nil
}
