package portfolio

import (
	"quantdash-go-api/internal/apperrors"
	"quantdash-go-api/internal/models"
)

// ResolveChartSeries picks the chart series for a successful analysis.
//
// When the analytics service supplied chart_data, that series is returned
// unchanged: it already encodes the selected rebalancing frequency and is
// authoritative, so no local validation is applied to it.
//
// Otherwise a static-weight fallback is computed: the date axis comes from
// the first symbol's history, each symbol's close is rebased to its own
// first close, and the portfolio value at each date is the weighted sum of
// those normalized values. Known limitation, kept on purpose: the fallback
// applies the initial weight vector across the whole series and never
// rebalances, so its trajectory diverges from the service-computed series
// for the same inputs. Symbols with histories shorter than the date axis
// contribute 0 at the missing indices; symbols absent from the weight map
// contribute 0 everywhere.
func ResolveChartSeries(chartData []models.ChartPoint, histories map[string][]models.PricePoint, weights map[string]float64, symbols []string) ([]models.ChartPoint, error) {
	if len(chartData) > 0 {
		return chartData, nil
	}
	if len(symbols) == 0 {
		return nil, apperrors.NewDataError("cannot build chart series without symbols")
	}

	axis := histories[symbols[0]]
	if len(axis) == 0 {
		return nil, apperrors.NewDataError("cannot build fallback chart: no price history for %s", symbols[0])
	}

	normalized := make(map[string][]float64, len(symbols))
	for _, symbol := range symbols {
		history := histories[symbol]
		if len(history) == 0 {
			continue
		}
		series, err := Normalize(history)
		if err != nil {
			return nil, err
		}
		normalized[symbol] = series
	}

	points := make([]models.ChartPoint, 0, len(axis))
	for i, observation := range axis {
		point := models.ChartPoint{
			Date:   observation.Date,
			Values: make(map[string]float64, len(symbols)),
		}
		for _, symbol := range symbols {
			series, ok := normalized[symbol]
			if !ok || i >= len(series) {
				continue
			}
			point.Values[symbol] = series[i]
			point.Portfolio += series[i] * weights[symbol]
		}
		points = append(points, point)
	}
	return points, nil
}
