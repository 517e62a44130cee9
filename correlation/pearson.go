package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/datalens/datalens/dataset"
)

// Numeric computes the pairwise Pearson correlation matrix over the
// numeric columns, using pairwise complete observations. A single numeric
// column yields a 1x1 matrix of 1.0; no numeric columns yield an empty
// matrix. Pairs with fewer than two complete observations or zero
// variance are reported as 0 so the serialized matrix stays finite.
func Numeric(t *dataset.Table) Matrix {
	cols := t.NumericColumns()
	if len(cols) == 0 {
		return Matrix{}
	}

	// Full-length columns with NaN marking missing cells.
	data := make([][]float64, len(cols))
	for i, name := range cols {
		col, err := t.Column(name)
		if err != nil {
			data[i] = nil
			continue
		}
		data[i] = col.Float()
	}

	m := NewMatrix(cols)
	for i := range cols {
		for j := i + 1; j < len(cols); j++ {
			r := pairwisePearson(data[i], data[j])
			m.set(i, j, r)
			m.set(j, i, r)
		}
	}
	return m
}

func pairwisePearson(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
