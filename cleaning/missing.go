// Package cleaning computes data-quality diagnostics: missing-value and
// duplicate-row summaries, a composite quality score, and outlier fences
// for numeric columns.
package cleaning

import (
	"sort"

	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/internal/round"
)

// SevereMissingThreshold is the missing percentage above which a column
// counts as severely incomplete in the profiling report.
const SevereMissingThreshold = 50.0

// ColumnMissing summarizes missingness for one column.
type ColumnMissing struct {
	Column         string  `json:"column"`
	MissingCount   int     `json:"missing_count"`
	MissingPercent float64 `json:"missing_percent"`
	DType          string  `json:"dtype"`
}

// MissingValueSummary reports per-column missing counts and percentages,
// ordered by descending percentage. Ties keep column order.
func MissingValueSummary(t *dataset.Table) []ColumnMissing {
	rows := t.Rows()
	out := make([]ColumnMissing, 0, t.Cols())
	for _, name := range t.Names() {
		missing := t.MissingCount(name)
		percent := 0.0
		if rows > 0 {
			percent = float64(missing) / float64(rows) * 100
		}
		out = append(out, ColumnMissing{
			Column:         name,
			MissingCount:   missing,
			MissingPercent: round.To(percent, 2),
			DType:          t.DType(name),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MissingPercent > out[j].MissingPercent
	})
	return out
}
