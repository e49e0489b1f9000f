// Package portfolio is the aggregation core: it turns the analytics
// service's response for a set of symbols into the complete, displayable
// analysis the dashboard renders. Everything here is a pure function over
// already-fetched data; no I/O, no logging, no state between calls.
package portfolio

import "quantdash-go-api/internal/models"

// BuildCorrelationMatrix completes a possibly partial pair mapping into a
// full N×N matrix over the ordered symbol set. The diagonal is always 1,
// regardless of what the source supplied. Pairs absent from the input are 0:
// unknown correlation is reported as zero, not inferred. Each direction is
// looked up independently; an entry supplied only as (b,a) does not
// populate (a,b). Out-of-range values are passed through uninterpreted.
func BuildCorrelationMatrix(symbols []string, pairs map[string]map[string]float64) map[string]map[string]float64 {
	matrix := make(map[string]map[string]float64, len(symbols))
	for _, a := range symbols {
		row := make(map[string]float64, len(symbols))
		for _, b := range symbols {
			if a == b {
				row[b] = 1
				continue
			}
			if value, ok := pairs[a][b]; ok {
				row[b] = value
			} else {
				row[b] = 0
			}
		}
		matrix[a] = row
	}
	return matrix
}

// CorrelationArray flattens a complete matrix into {asset1, asset2,
// correlation} entries in row-major order over the symbol set, so the grid
// renders identically regardless of how the source ordered its pairs.
func CorrelationArray(symbols []string, matrix map[string]map[string]float64) []models.CorrelationEntry {
	entries := make([]models.CorrelationEntry, 0, len(symbols)*len(symbols))
	for _, a := range symbols {
		for _, b := range symbols {
			entries = append(entries, models.CorrelationEntry{
				Asset1:      a,
				Asset2:      b,
				Correlation: matrix[a][b],
			})
		}
	}
	return entries
}
