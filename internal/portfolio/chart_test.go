package portfolio

import (
	"math"
	"reflect"
	"testing"

	"quantdash-go-api/internal/apperrors"
	"quantdash-go-api/internal/models"
)

func threeDayHistories() map[string][]models.PricePoint {
	return map[string][]models.PricePoint{
		"A": {
			{Date: "2024-01-01", Close: 10},
			{Date: "2024-01-02", Close: 11},
			{Date: "2024-01-03", Close: 12},
		},
		"B": {
			{Date: "2024-01-01", Close: 20},
			{Date: "2024-01-02", Close: 18},
			{Date: "2024-01-03", Close: 22},
		},
	}
}

func TestResolveChartSeries(t *testing.T) {
	symbols := []string{"A", "B"}
	weights := map[string]float64{"A": 0.5, "B": 0.5}

	t.Run("static_weight_fallback", func(t *testing.T) {
		points, err := ResolveChartSeries(nil, threeDayHistories(), weights, symbols)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(points) != 3 {
			t.Fatalf("expected 3 chart points, got %d", len(points))
		}

		want := []struct {
			a, b, portfolio float64
		}{
			{1.0, 1.0, 1.0},
			{1.1, 0.9, 1.0},
			{1.2, 1.1, 1.15},
		}

		for i, w := range want {
			p := points[i]
			if math.Abs(p.Values["A"]-w.a) > 1e-9 {
				t.Errorf("day %d: A expected %v, got %v", i, w.a, p.Values["A"])
			}
			if math.Abs(p.Values["B"]-w.b) > 1e-9 {
				t.Errorf("day %d: B expected %v, got %v", i, w.b, p.Values["B"])
			}
			if math.Abs(p.Portfolio-w.portfolio) > 1e-9 {
				t.Errorf("day %d: portfolio expected %v, got %v", i, w.portfolio, p.Portfolio)
			}
		}
	})

	t.Run("service_chart_data_wins_even_with_a_single_point", func(t *testing.T) {
		supplied := []models.ChartPoint{
			{Date: "2024-06-01", Values: map[string]float64{"A": 1.0, "B": 1.0}, Portfolio: 1.0},
		}

		points, err := ResolveChartSeries(supplied, threeDayHistories(), weights, symbols)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(points, supplied) {
			t.Errorf("expected supplied series unchanged, got %+v", points)
		}
	})

	t.Run("missing_weight_contributes_zero", func(t *testing.T) {
		points, err := ResolveChartSeries(nil, threeDayHistories(), map[string]float64{"A": 0.5}, symbols)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// B still charts, it just carries no portfolio weight
		if math.Abs(points[2].Values["B"]-1.1) > 1e-9 {
			t.Errorf("expected B charted at 1.1, got %v", points[2].Values["B"])
		}
		if math.Abs(points[2].Portfolio-0.6) > 1e-9 {
			t.Errorf("expected portfolio 0.6 (A only), got %v", points[2].Portfolio)
		}
	})

	t.Run("empty_weights_is_a_valid_unweighted_series", func(t *testing.T) {
		points, err := ResolveChartSeries(nil, threeDayHistories(), nil, symbols)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, p := range points {
			if p.Portfolio != 0 {
				t.Errorf("day %d: expected portfolio 0 without weights, got %v", i, p.Portfolio)
			}
		}
	})

	t.Run("short_history_contributes_zero_at_missing_indices", func(t *testing.T) {
		histories := threeDayHistories()
		histories["B"] = histories["B"][:2]

		points, err := ResolveChartSeries(nil, histories, weights, symbols)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(points) != 3 {
			t.Fatalf("expected date axis from A (3 points), got %d", len(points))
		}

		if _, ok := points[2].Values["B"]; ok {
			t.Error("expected no B value at the missing index")
		}
		if math.Abs(points[2].Portfolio-0.6) > 1e-9 {
			t.Errorf("expected portfolio 0.6 at the missing index, got %v", points[2].Portfolio)
		}
	})

	t.Run("first_symbol_without_history_is_a_data_error", func(t *testing.T) {
		histories := threeDayHistories()
		delete(histories, "A")

		_, err := ResolveChartSeries(nil, histories, weights, symbols)
		if !apperrors.IsDataError(err) {
			t.Errorf("expected DataError, got %v", err)
		}
	})

	t.Run("zero_base_price_fails_fast", func(t *testing.T) {
		histories := threeDayHistories()
		histories["B"][0].Close = 0

		_, err := ResolveChartSeries(nil, histories, weights, symbols)
		if !apperrors.IsDataError(err) {
			t.Errorf("expected DataError, got %v", err)
		}
	})
}
