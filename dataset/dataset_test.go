package dataset_test

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens/datalens/dataset"
)

func newTable(t *testing.T, cols ...series.Series) *dataset.Table {
	t.Helper()
	df := dataframe.New(cols...)
	require.NoError(t, df.Err)
	return dataset.New(df, "test", dataset.FormatCSV)
}

func TestColumnClassification(t *testing.T) {
	tbl := newTable(t,
		series.New([]float64{1.5, 2.5, 3.5}, series.Float, "price"),
		series.New([]int{0, 1, 0}, series.Int, "flag"),
		series.New([]string{"a", "b", "a"}, series.String, "label"),
		series.New([]bool{true, false, true}, series.Bool, "active"),
	)

	assert.Equal(t, []string{"price", "flag"}, tbl.NumericColumns())
	assert.Equal(t, []string{"label", "active"}, tbl.CategoricalColumns(dataset.DefaultMaxUnique))

	// A low-cardinality integer code stays numeric. This is deliberate:
	// the classifier never moves a numeric column to the categorical side.
	assert.True(t, tbl.IsNumeric("flag"))
	assert.False(t, tbl.IsCategorical("flag", dataset.DefaultMaxUnique))

	assert.True(t, tbl.IsCategorical("active", dataset.DefaultMaxUnique))
	assert.True(t, tbl.IsCategorical("label", dataset.DefaultMaxUnique))
}

func TestStringColumnsIgnoreCardinalityThreshold(t *testing.T) {
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	tbl := newTable(t, series.New(ids, series.String, "id"))

	// All ten values are distinct, well past the threshold of 3, yet the
	// column remains categorical: string and bool types always are.
	assert.True(t, tbl.IsCategorical("id", 3))
	assert.Equal(t, []string{"id"}, tbl.CategoricalColumns(3))
}

func TestMissingAndDistinctCounts(t *testing.T) {
	tbl := newTable(t,
		series.New([]string{"1", "NaN", "3", "NaN"}, series.Float, "x"),
		series.New([]string{"a", "a", "b", "NaN"}, series.String, "s"),
	)

	assert.Equal(t, 2, tbl.MissingCount("x"))
	assert.Equal(t, 1, tbl.MissingCount("s"))
	assert.Equal(t, 3, tbl.TotalMissing())

	assert.Equal(t, 2, tbl.DistinctCount("x"))
	assert.Equal(t, 2, tbl.DistinctCount("s"))

	assert.Equal(t, []float64{1, 3}, tbl.NumericValues("x"))
}

func TestValueCountsOrdering(t *testing.T) {
	tbl := newTable(t,
		series.New([]string{"b", "a", "b", "c", "a", "b"}, series.String, "s"),
	)

	counts := tbl.ValueCounts("s")
	require.Len(t, counts, 3)
	assert.Equal(t, dataset.CategoryCount{Value: "b", Count: 3}, counts[0])
	assert.Equal(t, dataset.CategoryCount{Value: "a", Count: 2}, counts[1])
	assert.Equal(t, dataset.CategoryCount{Value: "c", Count: 1}, counts[2])
}

func TestLimitCategories(t *testing.T) {
	counts := []dataset.CategoryCount{
		{Value: "a", Count: 10},
		{Value: "b", Count: 5},
		{Value: "c", Count: 3},
		{Value: "d", Count: 2},
	}

	limited := dataset.LimitCategories(counts, 2)
	require.Len(t, limited, 3)
	assert.Equal(t, "a", limited[0].Value)
	assert.Equal(t, "b", limited[1].Value)
	assert.Equal(t, dataset.CategoryCount{Value: dataset.OtherBucket, Count: 5}, limited[2])

	// No collapse needed below the cap.
	assert.Equal(t, counts, dataset.LimitCategories(counts, 10))
}

func TestColumnLookup(t *testing.T) {
	tbl := newTable(t,
		series.New([]float64{1, 2}, series.Float, "x"),
	)

	col, err := tbl.Column("x")
	require.NoError(t, err)
	assert.Equal(t, 2, col.Len())

	_, err = tbl.Column("missing")
	assert.Error(t, err)

	assert.Equal(t, "float", tbl.DType("x"))
	assert.Equal(t, "", tbl.DType("missing"))
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data.csv", "data"},
		{"/tmp/out/data.parquet", "data"},
		{`C:\files\sales.xlsx`, "sales"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataset.Stem(tt.path), tt.path)
	}
}
