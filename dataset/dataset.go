// Package dataset provides the in-memory table used by every analysis
// stage. A Table wraps a gota DataFrame loaded from disk; row count and
// column order are fixed after load and all analysis functions treat the
// table as read-only.
package dataset

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/datalens/datalens/pkg/errors"
)

// DefaultMaxUnique is the cardinality threshold for the categorical
// classifier.
const DefaultMaxUnique = 50

// DefaultMaxCategories caps distinct values in bar charts; everything past
// the top N is collapsed into an "Other" bucket.
const DefaultMaxCategories = 20

// OtherBucket is the synthetic label for collapsed low-frequency categories.
const OtherBucket = "Other"

// Table is an ordered collection of named, typed columns.
type Table struct {
	df     dataframe.DataFrame
	name   string
	format Format
}

// New wraps a DataFrame. The DataFrame error, if any, must have been
// checked by the caller.
func New(df dataframe.DataFrame, name string, format Format) *Table {
	return &Table{df: df, name: name, format: format}
}

// Name returns the dataset name (input file stem).
func (t *Table) Name() string { return t.name }

// Format returns the source format the table was loaded from.
func (t *Table) Format() Format { return t.format }

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.df.Nrow() }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.df.Ncol() }

// Names returns the column names in declaration order.
func (t *Table) Names() []string { return t.df.Names() }

// Column returns the named column.
func (t *Table) Column(name string) (series.Series, error) {
	for _, n := range t.df.Names() {
		if n == name {
			return t.df.Col(name), nil
		}
	}
	return series.Series{}, errors.Wrapf(errors.ErrNoSuchColumn, "column %q", name)
}

// DType returns the declared type of the named column ("float", "int",
// "string" or "bool"). Empty string when the column does not exist.
func (t *Table) DType(name string) string {
	names := t.df.Names()
	types := t.df.Types()
	for i, n := range names {
		if n == name {
			return string(types[i])
		}
	}
	return ""
}

// DTypes maps every column name to its declared type.
func (t *Table) DTypes() map[string]string {
	out := make(map[string]string, t.Cols())
	names := t.df.Names()
	types := t.df.Types()
	for i, n := range names {
		out[n] = string(types[i])
	}
	return out
}

// RowRecords returns all rows as string records, without the header row.
// Missing values are rendered as "NaN".
func (t *Table) RowRecords() [][]string {
	recs := t.df.Records()
	if len(recs) <= 1 {
		return nil
	}
	return recs[1:]
}

// IsNumericType reports whether a series type counts as numeric for
// analysis. Booleans and strings do not, regardless of content.
func IsNumericType(st series.Type) bool {
	return st == series.Int || st == series.Float
}

// IsNumeric reports whether the named column is numeric.
func (t *Table) IsNumeric(name string) bool {
	names := t.df.Names()
	types := t.df.Types()
	for i, n := range names {
		if n == name {
			return IsNumericType(types[i])
		}
	}
	return false
}

// IsCategorical reports whether the named column is categorical under the
// given cardinality threshold. Bool and string columns always are; a
// numeric column never is, even when low-cardinality. That asymmetry is
// deliberate: integer codes stay on the numeric side of the correlation
// split.
func (t *Table) IsCategorical(name string, maxUnique int) bool {
	names := t.df.Names()
	types := t.df.Types()
	for i, n := range names {
		if n != name {
			continue
		}
		st := types[i]
		if st == series.Bool || st == series.String {
			return true
		}
		if IsNumericType(st) {
			return false
		}
		return t.DistinctCount(name) <= maxUnique
	}
	return false
}

// NumericColumns returns the names of all numeric columns, in order.
func (t *Table) NumericColumns() []string {
	var out []string
	names := t.df.Names()
	types := t.df.Types()
	for i, n := range names {
		if IsNumericType(types[i]) {
			out = append(out, n)
		}
	}
	return out
}

// CategoricalColumns returns the names of all categorical columns, in order.
func (t *Table) CategoricalColumns(maxUnique int) []string {
	var out []string
	for _, n := range t.df.Names() {
		if t.IsCategorical(n, maxUnique) {
			out = append(out, n)
		}
	}
	return out
}

// MissingCount returns the number of missing values in the named column.
func (t *Table) MissingCount(name string) int {
	col, err := t.Column(name)
	if err != nil {
		return 0
	}
	count := 0
	for i := 0; i < col.Len(); i++ {
		if col.Elem(i).IsNA() {
			count++
		}
	}
	return count
}

// TotalMissing returns the number of missing cells in the whole table.
func (t *Table) TotalMissing() int {
	total := 0
	for _, n := range t.Names() {
		total += t.MissingCount(n)
	}
	return total
}

// DistinctCount returns the number of distinct non-missing values in the
// named column.
func (t *Table) DistinctCount(name string) int {
	col, err := t.Column(name)
	if err != nil {
		return 0
	}
	seen := make(map[string]struct{})
	recs := col.Records()
	for i := 0; i < col.Len(); i++ {
		if col.Elem(i).IsNA() {
			continue
		}
		seen[recs[i]] = struct{}{}
	}
	return len(seen)
}

// NumericValues returns the non-missing values of a numeric column.
func (t *Table) NumericValues(name string) []float64 {
	col, err := t.Column(name)
	if err != nil || !IsNumericType(col.Type()) {
		return nil
	}
	floats := col.Float()
	out := make([]float64, 0, len(floats))
	for i, v := range floats {
		if col.Elem(i).IsNA() {
			continue
		}
		out = append(out, v)
	}
	return out
}

// CategoryCount pairs a category value with its frequency.
type CategoryCount struct {
	Value string
	Count int
}

// ValueCounts returns the non-missing value frequencies of a column,
// ordered by descending count with lexicographic tie-break.
func (t *Table) ValueCounts(name string) []CategoryCount {
	col, err := t.Column(name)
	if err != nil {
		return nil
	}
	counts := make(map[string]int)
	recs := col.Records()
	for i := 0; i < col.Len(); i++ {
		if col.Elem(i).IsNA() {
			continue
		}
		counts[recs[i]]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, CategoryCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// LimitCategories collapses everything past the top max counts into a
// single OtherBucket entry appended at the end.
func LimitCategories(counts []CategoryCount, max int) []CategoryCount {
	if max <= 0 || len(counts) <= max {
		return counts
	}
	kept := make([]CategoryCount, max, max+1)
	copy(kept, counts[:max])
	other := 0
	for _, c := range counts[max:] {
		other += c.Count
	}
	return append(kept, CategoryCount{Value: OtherBucket, Count: other})
}

// MemoryUsageMB estimates the in-memory footprint of the table in
// megabytes: 8 bytes per numeric cell, 1 per boolean, string lengths for
// text.
func (t *Table) MemoryUsageMB() float64 {
	var bytes int
	names := t.df.Names()
	types := t.df.Types()
	for i, n := range names {
		col, err := t.Column(n)
		if err != nil {
			continue
		}
		switch types[i] {
		case series.Int, series.Float:
			bytes += 8 * col.Len()
		case series.Bool:
			bytes += col.Len()
		default:
			for _, r := range col.Records() {
				bytes += len(r)
			}
		}
	}
	return float64(bytes) / 1024 / 1024
}

// Stem strips the directory and extension from a file path, yielding the
// dataset name.
func Stem(path string) string {
	base := path
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
