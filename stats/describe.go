// Package stats computes per-column descriptive statistics.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/internal/round"
)

// Shape is the row/column count of a table.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// ColumnStats summarizes one column. Numeric moments are nil when the
// column has no usable values, so the serialized report never carries NaN.
type ColumnStats struct {
	DType          string  `json:"dtype"`
	Unique         int     `json:"unique"`
	Missing        int     `json:"missing"`
	MissingPercent float64 `json:"missing_percent"`

	// Numeric columns only.
	Mean      *float64 `json:"mean,omitempty"`
	Median    *float64 `json:"median,omitempty"`
	Std       *float64 `json:"std,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Skewness  *float64 `json:"skewness,omitempty"`
	Kurtosis  *float64 `json:"kurtosis,omitempty"`
	Zeros     *int     `json:"zeros,omitempty"`
	Negatives *int     `json:"negatives,omitempty"`

	// Non-numeric columns only.
	MostCommon      *string `json:"most_common,omitempty"`
	MostCommonCount *int    `json:"most_common_count,omitempty"`
}

// Description aggregates per-column statistics with the dataset shape and
// an approximate memory footprint.
type Description struct {
	Shape         Shape                  `json:"shape"`
	Columns       map[string]ColumnStats `json:"columns"`
	MemoryUsageMB float64                `json:"memory_usage_mb"`
}

// Describe computes descriptive statistics for every column of the table.
func Describe(t *dataset.Table) Description {
	columns := make(map[string]ColumnStats, t.Cols())
	for _, name := range t.Names() {
		columns[name] = describeColumn(t, name)
	}
	return Description{
		Shape:         Shape{Rows: t.Rows(), Columns: t.Cols()},
		Columns:       columns,
		MemoryUsageMB: round.To(t.MemoryUsageMB(), 4),
	}
}

func describeColumn(t *dataset.Table, name string) ColumnStats {
	rows := t.Rows()
	missing := t.MissingCount(name)
	percent := 0.0
	if rows > 0 {
		percent = float64(missing) / float64(rows) * 100
	}
	cs := ColumnStats{
		DType:          t.DType(name),
		Unique:         t.DistinctCount(name),
		Missing:        missing,
		MissingPercent: round.To(percent, 2),
	}

	if t.IsNumeric(name) {
		values := t.NumericValues(name)
		zeros, negatives := 0, 0
		for _, v := range values {
			if v == 0 {
				zeros++
			}
			if v < 0 {
				negatives++
			}
		}
		cs.Zeros = &zeros
		cs.Negatives = &negatives

		if len(values) > 0 {
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)
			cs.Mean = finite(stat.Mean(values, nil))
			cs.Median = finite(median(sorted))
			cs.Std = finite(stdDev(values))
			cs.Min = finite(sorted[0])
			cs.Max = finite(sorted[len(sorted)-1])
			cs.Skewness = finite(stat.Skew(values, nil))
			cs.Kurtosis = finite(stat.ExKurtosis(values, nil))
		}
		return cs
	}

	counts := t.ValueCounts(name)
	mostCommonCount := 0
	if len(counts) > 0 {
		top := counts[0]
		cs.MostCommon = &top.Value
		mostCommonCount = top.Count
	}
	cs.MostCommonCount = &mostCommonCount
	return cs
}

// median averages the two middle order statistics for even-length input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}

// finite returns a pointer to v, or nil when v is NaN or infinite. JSON
// output must stay free of non-finite floats.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
