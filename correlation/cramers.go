package correlation

import (
	"math"

	"github.com/datalens/datalens/dataset"
)

// Categorical computes the Cramér's V association matrix over the
// categorical columns. Each ordered pair is computed independently from a
// fresh contingency table; the diagonal is 1.0 by definition. Fewer than
// two categorical columns yield an empty matrix.
func Categorical(t *dataset.Table, maxUnique int) Matrix {
	cols := t.CategoricalColumns(maxUnique)
	if len(cols) < 2 {
		return Matrix{}
	}

	m := NewMatrix(cols)
	for i, x := range cols {
		for j, y := range cols {
			if i == j {
				continue
			}
			m.set(i, j, CramersV(Contingency(t, x, y)))
		}
	}
	return m
}

// Contingency builds the joint frequency table of two categorical columns.
// Rows index values of x, columns values of y; a pair is counted only when
// both cells are present.
func Contingency(t *dataset.Table, x, y string) [][]float64 {
	colX, errX := t.Column(x)
	colY, errY := t.Column(y)
	if errX != nil || errY != nil {
		return nil
	}
	n := colX.Len()
	if colY.Len() < n {
		n = colY.Len()
	}

	recsX := colX.Records()
	recsY := colY.Records()
	rowIdx := make(map[string]int)
	colIdx := make(map[string]int)
	type pair struct{ r, c int }
	var cells []pair
	for i := 0; i < n; i++ {
		if colX.Elem(i).IsNA() || colY.Elem(i).IsNA() {
			continue
		}
		r, ok := rowIdx[recsX[i]]
		if !ok {
			r = len(rowIdx)
			rowIdx[recsX[i]] = r
		}
		c, ok := colIdx[recsY[i]]
		if !ok {
			c = len(colIdx)
			colIdx[recsY[i]] = c
		}
		cells = append(cells, pair{r, c})
	}

	counts := make([][]float64, len(rowIdx))
	for i := range counts {
		counts[i] = make([]float64, len(colIdx))
	}
	for _, p := range cells {
		counts[p.r][p.c]++
	}
	return counts
}

// ChiSquared computes the chi-squared statistic of an observed frequency
// table. Cells with zero expected frequency contribute nothing; an empty
// or all-zero table yields 0.
func ChiSquared(observed [][]float64) float64 {
	if len(observed) == 0 || len(observed[0]) == 0 {
		return 0
	}

	rows := len(observed)
	cols := len(observed[0])
	rowSum := make([]float64, rows)
	colSum := make([]float64, cols)
	total := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowSum[i] += observed[i][j]
			colSum[j] += observed[i][j]
			total += observed[i][j]
		}
	}
	if total == 0 {
		return 0
	}

	chi2 := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowSum[i] * colSum[j] / total
			if expected == 0 {
				continue
			}
			diff := observed[i][j] - expected
			chi2 += diff * diff / expected
		}
	}
	return chi2
}

// CramersV computes the bias-corrected Cramér's V of a contingency table.
// Degenerate tables (n <= 1, or a corrected dimension of at most 1)
// return 0 rather than an undefined square root.
func CramersV(observed [][]float64) float64 {
	if len(observed) == 0 || len(observed[0]) == 0 {
		return 0
	}

	n := 0.0
	for i := range observed {
		for j := range observed[i] {
			n += observed[i][j]
		}
	}
	if n == 0 {
		return 0
	}

	chi2 := ChiSquared(observed)
	phi2 := chi2 / n
	r := float64(len(observed))
	k := float64(len(observed[0]))

	phi2corr, rcorr, kcorr := 0.0, 0.0, 0.0
	if n > 1 {
		phi2corr = math.Max(0, phi2-(k-1)*(r-1)/(n-1))
		rcorr = r - (r-1)*(r-1)/(n-1)
		kcorr = k - (k-1)*(k-1)/(n-1)
	}

	denom := math.Min(kcorr-1, rcorr-1)
	if denom <= 0 {
		return 0
	}
	return math.Sqrt(phi2corr / denom)
}
