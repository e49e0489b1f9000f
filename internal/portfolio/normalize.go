package portfolio

import (
	"quantdash-go-api/internal/apperrors"
	"quantdash-go-api/internal/models"
)

// Normalize rebases a price history so its first close equals exactly 1.0,
// with element i equal to history[i].close / history[0].close. It returns a
// DataError for an empty history or a zero base price instead of letting a
// division by zero put NaN or Inf into a chart.
func Normalize(history []models.PricePoint) ([]float64, error) {
	if len(history) == 0 {
		return nil, apperrors.NewDataError("cannot normalize an empty price history")
	}
	base := history[0].Close
	if base == 0 {
		return nil, apperrors.NewDataError("cannot normalize: base price on %s is zero", history[0].Date)
	}

	series := make([]float64, len(history))
	for i, point := range history {
		series[i] = point.Close / base
	}
	return series, nil
}
