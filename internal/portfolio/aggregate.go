package portfolio

import (
	"quantdash-go-api/internal/apperrors"
	"quantdash-go-api/internal/models"
)

// AssemblePortfolioResult combines an analytics response into the unified
// result the dashboard consumes. It is a pure transform: calling it twice
// with the same response yields an identical result.
//
// Degradation rules: a nil weight map becomes an empty one (a valid,
// displayable unweighted state); symbols missing from individual_metrics
// are omitted from the metrics table rather than failing the analysis. A
// symbol absent from both histories and individual_metrics can be neither
// charted nor scored, so that raises a DataError up front.
//
// Portfolio-level max_drawdown is passed through exactly as the service
// reported it, including its sign. The positive-magnitude normalization
// applied to single-asset drawdowns lives in the asset metrics path, not
// here.
func AssemblePortfolioResult(resp *models.AnalyzeResponse, symbols []string, weighting, rebalance string) (*models.PortfolioResult, error) {
	if resp == nil {
		return nil, apperrors.NewDataError("cannot assemble result from an empty analytics response")
	}

	for _, symbol := range symbols {
		_, hasHistory := resp.Histories[symbol]
		_, hasMetrics := resp.IndividualMetrics[symbol]
		if !hasHistory && !hasMetrics {
			return nil, apperrors.NewDataError("symbol %s has no history and no metrics", symbol)
		}
	}

	chart, err := ResolveChartSeries(resp.ChartData, resp.Histories, resp.Weights, symbols)
	if err != nil {
		return nil, err
	}

	matrix := BuildCorrelationMatrix(symbols, resp.CorrelationMatrix)

	individual := make(map[string]models.IndividualMetrics, len(symbols))
	for _, symbol := range symbols {
		if metrics, ok := resp.IndividualMetrics[symbol]; ok {
			individual[symbol] = metrics
		}
	}

	weights := resp.Weights
	if weights == nil {
		weights = map[string]float64{}
	}

	metrics := resp.PortfolioMetrics
	if resp.DiversificationRatio != 0 {
		metrics.DiversificationRatio = resp.DiversificationRatio
	}

	return &models.PortfolioResult{
		Symbols:           symbols,
		Weighting:         weighting,
		Rebalance:         rebalance,
		Weights:           weights,
		Metrics:           metrics,
		IndividualMetrics: individual,
		Correlations:      CorrelationArray(symbols, matrix),
		ChartData:         chart,
	}, nil
}
