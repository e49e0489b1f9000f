package services

import (
	"context"
	"crypto/md5"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"quantdash-go-api/internal/models"
	"quantdash-go-api/internal/portfolio"
	"quantdash-go-api/pkg/analytics"
)

// PortfolioService is the calling layer around the aggregation core: it
// talks to the analytics service, runs the pure assembly, and owns the
// cached copies of results.
type PortfolioService struct {
	analytics *analytics.Client
	cache     *CacheService
	log       *zap.Logger
}

func NewPortfolioService(client *analytics.Client, cache *CacheService, log *zap.Logger) *PortfolioService {
	return &PortfolioService{
		analytics: client,
		cache:     cache,
		log:       log,
	}
}

// Analyze runs one portfolio analysis end to end. A failed service call
// propagates as-is; the local fallback chart only ever covers a successful
// response that omitted chart_data.
func (s *PortfolioService) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.PortfolioResult, error) {
	cacheKey := analysisCacheKey(req)

	if cached, found := s.cache.GetAnalysis(ctx, cacheKey); found {
		return cached, nil
	}

	resp, err := s.analytics.AnalyzePortfolio(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := portfolio.AssemblePortfolioResult(resp, req.Symbols, req.Weighting, req.Rebalance)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetAnalysis(ctx, cacheKey, result); err != nil {
		s.log.Warn("failed to cache analysis", zap.String("key", cacheKey), zap.Error(err))
	}

	s.log.Info("portfolio analysis assembled",
		zap.Strings("symbols", req.Symbols),
		zap.String("weighting", req.Weighting),
		zap.String("rebalance", req.Rebalance),
		zap.Int("chart_points", len(result.ChartData)))

	return result, nil
}

// AssetHistory proxies the price history for a single symbol.
func (s *PortfolioService) AssetHistory(ctx context.Context, symbol string, days int) (*models.AssetHistoryResult, error) {
	history, err := s.analytics.AssetHistory(ctx, symbol, days)
	if err != nil {
		return nil, err
	}

	return &models.AssetHistoryResult{
		Symbol: symbol,
		Days:   days,
		Data:   history,
		Count:  len(history),
	}, nil
}

// AssetMetrics returns single-asset metrics with max_drawdown surfaced as a
// positive magnitude. The upstream single-asset path may report drawdown as
// a negative percentage while the portfolio path reports it positive; only
// this path normalizes, matching how the dashboard displays the two. Known
// upstream discrepancy, deliberately not reconciled further.
func (s *PortfolioService) AssetMetrics(ctx context.Context, symbol string, days int) (*models.AssetMetricsResult, error) {
	cacheKey := fmt.Sprintf("%s:%d", symbol, days)

	if cached, found := s.cache.GetAssetMetrics(cacheKey); found {
		return cached, nil
	}

	metrics, err := s.analytics.AssetMetrics(ctx, symbol, days)
	if err != nil {
		return nil, err
	}

	display := *metrics
	display.MaxDrawdown = math.Abs(display.MaxDrawdown)

	result := &models.AssetMetricsResult{
		Symbol:  symbol,
		Days:    days,
		Metrics: display,
	}
	s.cache.SetAssetMetrics(cacheKey, result)

	return result, nil
}

// RefreshCache drops the in-memory caches.
func (s *PortfolioService) RefreshCache(ctx context.Context) error {
	s.cache.Flush()
	return nil
}

// analysisCacheKey hashes the full request tuple. Symbol order is part of
// the key: it drives matrix ordering and the fallback date axis, so two
// orderings of the same set are different analyses.
func analysisCacheKey(req models.AnalyzeRequest) string {
	key := fmt.Sprintf("%s|%s|%s|%d", strings.Join(req.Symbols, ","), req.Weighting, req.Rebalance, req.Days)
	return fmt.Sprintf("%x", md5.Sum([]byte(key)))
}
