// Package correlation computes the numeric (Pearson) and categorical
// (bias-corrected Cramér's V) association matrices of a table.
package correlation

import (
	"encoding/json"
	"sort"
)

// Matrix is a square association matrix indexed by column name. The
// diagonal is 1.0 and values are immutable once computed.
type Matrix struct {
	labels []string
	values [][]float64
}

// NewMatrix allocates a square matrix for the given labels with the
// diagonal preset to 1.0.
func NewMatrix(labels []string) Matrix {
	n := len(labels)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1.0
	}
	return Matrix{labels: append([]string(nil), labels...), values: values}
}

// Labels returns the column names, in matrix order.
func (m Matrix) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Empty reports whether the matrix has no entries.
func (m Matrix) Empty() bool { return len(m.labels) == 0 }

// Dim returns the matrix dimension.
func (m Matrix) Dim() int { return len(m.labels) }

// At returns the value at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.values[i][j] }

// Value looks up a cell by column names, returning 0 for unknown labels.
func (m Matrix) Value(x, y string) float64 {
	i, j := -1, -1
	for idx, label := range m.labels {
		if label == x {
			i = idx
		}
		if label == y {
			j = idx
		}
	}
	if i < 0 || j < 0 {
		return 0
	}
	return m.values[i][j]
}

// set is only used during construction.
func (m Matrix) set(i, j int, v float64) { m.values[i][j] = v }

// MarshalJSON writes the matrix as a nested map keyed by column name,
// {"x": {"y": value}}. An empty matrix serializes as {}.
func (m Matrix) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]float64, len(m.labels))
	for i, x := range m.labels {
		row := make(map[string]float64, len(m.labels))
		for j, y := range m.labels {
			row[y] = m.values[i][j]
		}
		out[x] = row
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a matrix from its nested-map form. Label order is
// not part of the wire format; labels come back sorted.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	labels := make([]string, 0, len(raw))
	for k := range raw {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	restored := NewMatrix(labels)
	for i, x := range labels {
		for j, y := range labels {
			restored.set(i, j, raw[x][y])
		}
	}
	*m = restored
	return nil
}
