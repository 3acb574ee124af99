package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pairs-trading/config"
	"pairs-trading/internal/dto"
	"pairs-trading/internal/model"
	"pairs-trading/internal/pairs"
	"pairs-trading/internal/repository"
	"pairs-trading/pkg/logger"
	"pairs-trading/pkg/telegram"
	"pairs-trading/pkg/utils"
)

type ScreeningService interface {
	RunScreening(ctx context.Context, req dto.ScreeningRequest) (*dto.ScreeningResponse, error)
	GetRun(ctx context.Context, id uint) (*model.ScreeningRun, error)
	GetRuns(ctx context.Context, param model.GetScreeningRunsParam) ([]model.ScreeningRun, error)
}

type screeningService struct {
	cfg       *config.Config
	log       *logger.Logger
	priceRepo repository.PriceHistoryRepository
	runRepo   repository.ScreeningRepository
	notifier  *telegram.Notifier
}

func NewScreeningService(
	cfg *config.Config,
	log *logger.Logger,
	priceRepo repository.PriceHistoryRepository,
	runRepo repository.ScreeningRepository,
	notifier *telegram.Notifier,
) *screeningService {
	return &screeningService{
		cfg:       cfg,
		log:       log,
		priceRepo: priceRepo,
		runRepo:   runRepo,
		notifier:  notifier,
	}
}

// RunScreening executes one full screening pass: fetch the panel, run the
// engine, persist the run with every evaluated and excluded pair, and push
// a summary to the configured chat. Request fields override the configured
// defaults for this run only.
func (s *screeningService) RunScreening(ctx context.Context, req dto.ScreeningRequest) (*dto.ScreeningResponse, error) {
	symbols := req.Symbols
	if len(symbols) == 0 {
		symbols = s.cfg.Screener.Universe
	}
	if len(symbols) < 2 {
		return nil, fmt.Errorf("screening needs at least two symbols, got %d", len(symbols))
	}

	engineCfg := EngineConfig(s.cfg.Screener, req)
	engine, err := pairs.NewEngine(engineCfg)
	if err != nil {
		return nil, err
	}

	universeJSON, _ := json.Marshal(symbols)
	paramsJSON, _ := json.Marshal(engineCfg)
	run := &model.ScreeningRun{
		Universe:  universeJSON,
		Params:    paramsJSON,
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := s.runRepo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create screening run: %w", err)
	}

	report, err := s.executeRun(ctx, run, engine, symbols, engineCfg.MinObservations)
	if err != nil {
		run.Status = model.RunStatusFailed
		run.Error = err.Error()
		run.FinishedAt = utils.ToPointer(time.Now().UTC())
		if uerr := s.runRepo.UpdateRun(ctx, run); uerr != nil {
			s.log.ErrorContext(ctx, "Failed to mark screening run failed", logger.ErrorField(uerr))
		}
		return nil, err
	}

	resp := s.buildResponse(run, symbols, report)

	// Notification must not hold up the response; the summary is best effort.
	notifyCtx := context.WithoutCancel(ctx)
	utils.GoSafe(func() {
		s.notifySummary(notifyCtx, resp)
	})
	return resp, nil
}

func (s *screeningService) executeRun(ctx context.Context, run *model.ScreeningRun, engine *pairs.Engine, symbols []string, minObs int) (*pairs.RunReport, error) {
	panel, skipped, err := s.priceRepo.GetPanel(ctx, symbols, minObs)
	if err != nil {
		return nil, fmt.Errorf("failed to build price panel: %w", err)
	}
	if len(skipped) > 0 {
		s.log.WarnContext(ctx, "Symbols skipped for missing history",
			logger.Field("symbols", skipped),
		)
	}

	report, err := engine.Run(ctx, panel)
	if err != nil {
		return nil, err
	}

	n := len(panel.Symbols())
	run.PairsTested = n * (n - 1) / 2
	run.Status = model.RunStatusCompleted
	run.FinishedAt = utils.ToPointer(time.Now().UTC())

	candidates := buildCandidateRows(run.ID, report)
	if err := s.runRepo.CreateCandidates(ctx, candidates); err != nil {
		return nil, fmt.Errorf("failed to persist pair candidates: %w", err)
	}
	if err := s.runRepo.UpdateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to finish screening run: %w", err)
	}

	s.log.InfoContext(ctx, "Screening run completed",
		logger.IntField("run_id", int(run.ID)),
		logger.IntField("pairs_tested", run.PairsTested),
		logger.IntField("candidates", len(report.Reports)),
		logger.IntField("excluded", len(report.Excluded)),
	)
	return report, nil
}

func (s *screeningService) GetRun(ctx context.Context, id uint) (*model.ScreeningRun, error) {
	return s.runRepo.GetRun(ctx, id)
}

func (s *screeningService) GetRuns(ctx context.Context, param model.GetScreeningRunsParam) ([]model.ScreeningRun, error) {
	return s.runRepo.GetRuns(ctx, param)
}

func (s *screeningService) buildResponse(run *model.ScreeningRun, symbols []string, report *pairs.RunReport) *dto.ScreeningResponse {
	resp := &dto.ScreeningResponse{
		RunID:       run.ID,
		Symbols:     symbols,
		PairsTested: run.PairsTested,
		StartedAt:   run.StartedAt,
	}
	if run.FinishedAt != nil {
		resp.FinishedAt = *run.FinishedAt
	}
	for i := range report.Reports {
		resp.Candidates = append(resp.Candidates, pairSummary(&report.Reports[i]))
	}
	for _, f := range report.Excluded {
		resp.Excluded = append(resp.Excluded, dto.ExcludedPair{
			Symbol1: f.Symbol1,
			Symbol2: f.Symbol2,
			Reason:  f.Err.Error(),
		})
	}
	if report.Best != nil {
		resp.Best = utils.ToPointer(pairSummary(report.Best))
	}
	return resp
}

func (s *screeningService) notifySummary(ctx context.Context, resp *dto.ScreeningResponse) {
	if s.notifier == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Pairs screening #%d finished*\n", resp.RunID)
	fmt.Fprintf(&b, "Universe: %s\n", strings.Join(resp.Symbols, ", "))
	fmt.Fprintf(&b, "Tested %d pairs, %d candidates survived\n", resp.PairsTested, len(resp.Candidates))
	if resp.Best != nil {
		fmt.Fprintf(&b, "Best: %s / %s, test return %s over %d trades",
			resp.Best.Symbol1, resp.Best.Symbol2,
			utils.FormatPercentage(resp.Best.FinalReturn-1), resp.Best.Trades,
		)
		if resp.Best.Stopped {
			b.WriteString(" (stopped out)")
		}
	} else {
		b.WriteString("No pair survived the gates")
	}

	if err := s.notifier.Send(ctx, b.String()); err != nil {
		s.log.WarnContext(ctx, "Failed to send screening summary", logger.ErrorField(err))
	}
}

func buildCandidateRows(runID uint, report *pairs.RunReport) []model.PairCandidate {
	rows := make([]model.PairCandidate, 0, len(report.Reports)+len(report.Excluded))
	for i := range report.Reports {
		rep := &report.Reports[i]
		curveJSON, _ := json.Marshal(rep.Result.Curve)
		rows = append(rows, model.PairCandidate{
			ScreeningRunID:  runID,
			Symbol1:         rep.Pair.Symbol1,
			Symbol2:         rep.Pair.Symbol2,
			RawPValue:       rep.Pair.PValue,
			CorrectedPValue: rep.Pair.CorrectedPValue,
			HedgeRatio:      rep.HedgeRatio,
			Intercept:       rep.Intercept,
			HalfLife:        rep.HalfLife,
			Window:          rep.Window,
			FinalReturn:     rep.Result.FinalReturn,
			FinalValue:      rep.Result.FinalValue,
			Trades:          rep.Result.Trades,
			Stopped:         rep.Result.Stopped,
			StoppedAt:       rep.StopTime,
			Curve:           curveJSON,
			Best:            report.Best != nil && report.Best.Pair == rep.Pair,
		})
	}
	for _, f := range report.Excluded {
		rows = append(rows, model.PairCandidate{
			ScreeningRunID:  runID,
			Symbol1:         f.Symbol1,
			Symbol2:         f.Symbol2,
			Excluded:        true,
			ExclusionReason: f.Err.Error(),
		})
	}
	return rows
}

func pairSummary(rep *pairs.PairReport) dto.PairSummary {
	return dto.PairSummary{
		Symbol1:         rep.Pair.Symbol1,
		Symbol2:         rep.Pair.Symbol2,
		RawPValue:       rep.Pair.PValue,
		CorrectedPValue: rep.Pair.CorrectedPValue,
		HedgeRatio:      rep.HedgeRatio,
		HalfLife:        rep.HalfLife,
		Window:          rep.Window,
		FinalReturn:     rep.Result.FinalReturn,
		FinalValue:      rep.Result.FinalValue,
		Trades:          rep.Result.Trades,
		Stopped:         rep.Result.Stopped,
		StoppedAt:       rep.StopTime,
	}
}

// EngineConfig maps the configured screener defaults plus per-request
// overrides onto an engine configuration. Zero-valued fields keep the
// engine defaults.
func EngineConfig(screener config.Screener, req dto.ScreeningRequest) pairs.Config {
	cfg := pairs.DefaultConfig()

	applyFloat := func(dst *float64, values ...float64) {
		for _, v := range values {
			if v != 0 {
				*dst = v
			}
		}
	}
	applyInt := func(dst *int, values ...int) {
		for _, v := range values {
			if v != 0 {
				*dst = v
			}
		}
	}

	applyFloat(&cfg.Significance, screener.Significance, req.Significance)
	applyFloat(&cfg.EntryZ, screener.EntryZ, req.EntryZ)
	applyFloat(&cfg.ExitZ, screener.ExitZ, req.ExitZ)
	applyInt(&cfg.Window, screener.Window, req.Window)
	applyFloat(&cfg.CostRate, screener.CostRate, req.CostRate)
	applyFloat(&cfg.StopLoss, screener.StopLoss, req.StopLoss)
	applyFloat(&cfg.InitialNotional, screener.InitialNotional, req.InitialNotional)
	applyFloat(&cfg.TrainRatio, screener.TrainRatio)
	applyInt(&cfg.ADFLag, screener.ADFLag)
	applyInt(&cfg.MinObservations, screener.MinObservations)
	applyInt(&cfg.MaxWorkers, screener.MaxWorkers)

	return cfg
}
