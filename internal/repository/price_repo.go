package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pairs-trading/config"
	"pairs-trading/internal/dto"
	"pairs-trading/internal/pairs"
	"pairs-trading/pkg/cache"
	"pairs-trading/pkg/httpclient"
	"pairs-trading/pkg/logger"

	"golang.org/x/time/rate"
)

// PriceHistoryRepository supplies the aligned price panel the engine
// consumes. Instruments whose history cannot be fetched are skipped and
// reported, matching the engine's per-pair failure policy.
type PriceHistoryRepository interface {
	GetSeries(ctx context.Context, symbol string) (pairs.PriceSeries, error)
	GetPanel(ctx context.Context, symbols []string, minObs int) (*pairs.Panel, []string, error)
}

type priceHistoryRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	log        *logger.Logger
	cache      cache.Cache
	limiter    *rate.Limiter
}

// NewPriceHistoryRepository builds the Yahoo Finance chart client with a
// request-per-minute limiter and response caching.
func NewPriceHistoryRepository(cfg *config.Config, log *logger.Logger, c cache.Cache) PriceHistoryRepository {
	perMinute := cfg.MarketData.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &priceHistoryRepository{
		httpClient: httpclient.New(cfg.MarketData.BaseURL, cfg.MarketData.Timeout),
		cfg:        cfg,
		log:        log,
		cache:      c,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *priceHistoryRepository) GetSeries(ctx context.Context, symbol string) (pairs.PriceSeries, error) {
	cacheKey := fmt.Sprintf("prices:%s:%s:%s", symbol, r.cfg.MarketData.HistoryRange, r.cfg.MarketData.Interval)
	if cached, ok := cache.Typed[pairs.PriceSeries](r.cache, cacheKey); ok {
		return cached, nil
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return pairs.PriceSeries{}, err
	}

	queryParams := map[string]string{
		"range":          r.cfg.MarketData.HistoryRange,
		"interval":       r.cfg.MarketData.Interval,
		"includePrePost": "false",
		"events":         "div,split",
	}
	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":     "application/json, text/plain, */*",
	}

	var chartResp dto.YahooChartResponse
	resp, err := r.httpClient.Get(ctx, "/"+symbol, queryParams, headers, &chartResp)
	if err != nil {
		return pairs.PriceSeries{}, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Price API returned non-OK status",
			logger.StringField("symbol", symbol),
			logger.IntField("status_code", resp.StatusCode),
		)
		return pairs.PriceSeries{}, fmt.Errorf("price api returned status %d for %s", resp.StatusCode, symbol)
	}
	if chartResp.Chart.Error != nil {
		return pairs.PriceSeries{}, fmt.Errorf("price api error for %s: %v", symbol, chartResp.Chart.Error)
	}
	if len(chartResp.Chart.Result) == 0 || len(chartResp.Chart.Result[0].Indicators.Quote) == 0 {
		return pairs.PriceSeries{}, fmt.Errorf("no quote data for %s", symbol)
	}

	result := chartResp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) == len(result.Timestamp) {
		closes = result.Indicators.AdjClose[0].AdjClose
	}

	series := BuildSeries(symbol, result.Timestamp, closes)
	if len(series.Points) == 0 {
		return pairs.PriceSeries{}, fmt.Errorf("no usable observations for %s", symbol)
	}

	r.cache.Set(cacheKey, series, r.cfg.Cache.DefaultExpiration)
	return series, nil
}

// GetPanel fetches every symbol, forward-filled, and inner-joins the
// results. A symbol that fails to fetch is dropped and returned in the
// skipped list rather than failing the whole panel.
func (r *priceHistoryRepository) GetPanel(ctx context.Context, symbols []string, minObs int) (*pairs.Panel, []string, error) {
	var (
		series  []pairs.PriceSeries
		skipped []string
	)
	for _, symbol := range symbols {
		s, err := r.GetSeries(ctx, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			r.log.WarnContext(ctx, "Skipping symbol without usable history",
				logger.StringField("symbol", symbol),
				logger.ErrorField(err),
			)
			skipped = append(skipped, symbol)
			continue
		}
		series = append(series, s)
	}

	panel, err := pairs.NewPanel(series, minObs)
	if err != nil {
		return nil, nil, err
	}
	return panel, skipped, nil
}

// BuildSeries converts raw timestamps and nullable closes into a
// PriceSeries, forward-filling interior gaps. Leading nulls have nothing
// to fill from and are dropped.
func BuildSeries(symbol string, timestamps []int64, closes []*float64) pairs.PriceSeries {
	series := pairs.PriceSeries{Symbol: symbol}
	last := 0.0
	seeded := false
	for i, ts := range timestamps {
		if i >= len(closes) {
			break
		}
		if closes[i] != nil {
			last = *closes[i]
			seeded = true
		}
		if !seeded {
			continue
		}
		series.Points = append(series.Points, pairs.PricePoint{
			Time:  time.Unix(ts, 0).UTC(),
			Price: last,
		})
	}
	return series
}
