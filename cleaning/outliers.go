package cleaning

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/internal/round"
	"github.com/datalens/datalens/pkg/errors"
)

// OutlierMethod selects how outlier fences are computed.
type OutlierMethod string

const (
	// MethodIQR fences at Q1-1.5*IQR and Q3+1.5*IQR.
	MethodIQR OutlierMethod = "iqr"
	// MethodZScore fences at mean +/- 3 sample standard deviations.
	MethodZScore OutlierMethod = "zscore"
)

// ParseOutlierMethod validates a method name from the CLI.
func ParseOutlierMethod(s string) (OutlierMethod, error) {
	switch OutlierMethod(s) {
	case MethodIQR:
		return MethodIQR, nil
	case MethodZScore:
		return MethodZScore, nil
	default:
		return "", errors.NewValueError("ParseOutlierMethod", "method must be iqr or zscore")
	}
}

// ColumnOutliers reports the outlier count and fences for one column.
type ColumnOutliers struct {
	OutlierCount   int     `json:"outlier_count"`
	OutlierPercent float64 `json:"outlier_percent"`
	LowerBound     float64 `json:"lower_bound"`
	UpperBound     float64 `json:"upper_bound"`
}

// DetectOutliers computes outlier fences for every numeric column after
// dropping missing values. Values strictly outside the fences count as
// outliers. Columns with no non-missing values are left out of the result.
func DetectOutliers(t *dataset.Table, method OutlierMethod) map[string]ColumnOutliers {
	results := make(map[string]ColumnOutliers)
	for _, name := range t.NumericColumns() {
		values := t.NumericValues(name)
		if len(values) == 0 {
			continue
		}

		var lower, upper float64
		switch method {
		case MethodZScore:
			mean := stat.Mean(values, nil)
			std := sampleStdDev(values)
			lower = mean - 3*std
			upper = mean + 3*std
		default:
			sorted := append([]float64(nil), values...)
			sort.Float64s(sorted)
			q1 := linearQuantile(sorted, 0.25)
			q3 := linearQuantile(sorted, 0.75)
			iqr := q3 - q1
			lower = q1 - 1.5*iqr
			upper = q3 + 1.5*iqr
		}

		count := 0
		for _, v := range values {
			if v < lower || v > upper {
				count++
			}
		}
		results[name] = ColumnOutliers{
			OutlierCount:   count,
			OutlierPercent: round.To(float64(count)/float64(len(values))*100, 2),
			LowerBound:     round.To(lower, 4),
			UpperBound:     round.To(upper, 4),
		}
	}
	return results
}

// linearQuantile interpolates between the two order statistics bracketing
// p*(n-1). This differs from stat.Quantile's CDF-based interpolation.
func linearQuantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	i := int(math.Floor(h))
	if i >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

// sampleStdDev is the n-1 standard deviation, 0 for fewer than two values.
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}
