package portfolio

import (
	"fmt"
	"testing"
)

func TestBuildCorrelationMatrix(t *testing.T) {
	t.Run("diagonal_is_always_one", func(t *testing.T) {
		symbols := []string{"AAPL", "MSFT", "GOOG"}
		// Even a supplied self-correlation must not override the diagonal
		pairs := map[string]map[string]float64{
			"AAPL": {"AAPL": 0.42},
		}

		matrix := BuildCorrelationMatrix(symbols, pairs)

		for _, s := range symbols {
			if matrix[s][s] != 1 {
				t.Errorf("expected matrix[%s][%s] == 1, got %v", s, s, matrix[s][s])
			}
		}
	})

	t.Run("absent_pairs_default_to_zero", func(t *testing.T) {
		symbols := []string{"AAPL", "MSFT"}

		matrix := BuildCorrelationMatrix(symbols, nil)

		if matrix["AAPL"]["MSFT"] != 0 {
			t.Errorf("expected 0 for absent pair, got %v", matrix["AAPL"]["MSFT"])
		}
		if matrix["MSFT"]["AAPL"] != 0 {
			t.Errorf("expected 0 for absent pair, got %v", matrix["MSFT"]["AAPL"])
		}
	})

	t.Run("supplied_symmetry_is_preserved", func(t *testing.T) {
		symbols := []string{"AAPL", "MSFT"}
		pairs := map[string]map[string]float64{
			"AAPL": {"MSFT": 0.73},
			"MSFT": {"AAPL": 0.73},
		}

		matrix := BuildCorrelationMatrix(symbols, pairs)

		if matrix["AAPL"]["MSFT"] != matrix["MSFT"]["AAPL"] {
			t.Errorf("symmetric input broken: %v vs %v", matrix["AAPL"]["MSFT"], matrix["MSFT"]["AAPL"])
		}
		if matrix["AAPL"]["MSFT"] != 0.73 {
			t.Errorf("expected 0.73, got %v", matrix["AAPL"]["MSFT"])
		}
	})

	t.Run("one_directional_pair_is_not_mirrored", func(t *testing.T) {
		symbols := []string{"AAPL", "MSFT"}
		pairs := map[string]map[string]float64{
			"MSFT": {"AAPL": 0.5},
		}

		matrix := BuildCorrelationMatrix(symbols, pairs)

		if matrix["MSFT"]["AAPL"] != 0.5 {
			t.Errorf("expected supplied direction 0.5, got %v", matrix["MSFT"]["AAPL"])
		}
		if matrix["AAPL"]["MSFT"] != 0 {
			t.Errorf("expected unsupplied direction 0, got %v", matrix["AAPL"]["MSFT"])
		}
	})

	t.Run("every_pair_defined_for_all_set_sizes", func(t *testing.T) {
		for n := 2; n <= 10; n++ {
			var symbols []string
			for i := 0; i < n; i++ {
				symbols = append(symbols, fmt.Sprintf("SYM%d", i))
			}

			matrix := BuildCorrelationMatrix(symbols, map[string]map[string]float64{
				"SYM0": {"SYM1": -0.2},
			})

			for _, a := range symbols {
				row, ok := matrix[a]
				if !ok {
					t.Fatalf("n=%d: missing row for %s", n, a)
				}
				for _, b := range symbols {
					if _, ok := row[b]; !ok {
						t.Errorf("n=%d: missing entry (%s,%s)", n, a, b)
					}
				}
			}
		}
	})

	t.Run("out_of_range_values_pass_through", func(t *testing.T) {
		symbols := []string{"A", "B"}
		pairs := map[string]map[string]float64{
			"A": {"B": 3.5},
		}

		matrix := BuildCorrelationMatrix(symbols, pairs)

		if matrix["A"]["B"] != 3.5 {
			t.Errorf("expected malformed value untouched, got %v", matrix["A"]["B"])
		}
	})
}

func TestCorrelationArray(t *testing.T) {
	t.Run("row_major_order", func(t *testing.T) {
		symbols := []string{"X", "Y", "Z"}
		matrix := BuildCorrelationMatrix(symbols, map[string]map[string]float64{
			"X": {"Y": 0.1, "Z": 0.2},
			"Y": {"Z": 0.3},
		})

		entries := CorrelationArray(symbols, matrix)

		if len(entries) != 9 {
			t.Fatalf("expected 9 entries, got %d", len(entries))
		}

		wantPairs := [][2]string{
			{"X", "X"}, {"X", "Y"}, {"X", "Z"},
			{"Y", "X"}, {"Y", "Y"}, {"Y", "Z"},
			{"Z", "X"}, {"Z", "Y"}, {"Z", "Z"},
		}
		for i, want := range wantPairs {
			if entries[i].Asset1 != want[0] || entries[i].Asset2 != want[1] {
				t.Errorf("entry %d: expected (%s,%s), got (%s,%s)",
					i, want[0], want[1], entries[i].Asset1, entries[i].Asset2)
			}
		}

		if entries[1].Correlation != 0.1 {
			t.Errorf("expected (X,Y) == 0.1, got %v", entries[1].Correlation)
		}
		if entries[3].Correlation != 0 {
			t.Errorf("expected unsupplied (Y,X) == 0, got %v", entries[3].Correlation)
		}
	})
}
