package stats_test

import (
	"encoding/json"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/stats"
)

func newTable(t *testing.T, cols ...series.Series) *dataset.Table {
	t.Helper()
	df := dataframe.New(cols...)
	require.NoError(t, df.Err)
	return dataset.New(df, "test", dataset.FormatCSV)
}

func TestDescribeNumericColumn(t *testing.T) {
	tbl := newTable(t,
		series.New([]float64{1, 2, 3, 4, 0, -5}, series.Float, "x"),
	)

	desc := stats.Describe(tbl)
	assert.Equal(t, stats.Shape{Rows: 6, Columns: 1}, desc.Shape)

	cs, ok := desc.Columns["x"]
	require.True(t, ok)
	assert.Equal(t, "float", cs.DType)
	assert.Equal(t, 6, cs.Unique)
	assert.Equal(t, 0, cs.Missing)

	require.NotNil(t, cs.Mean)
	assert.InDelta(t, 5.0/6.0, *cs.Mean, 1e-9)
	require.NotNil(t, cs.Median)
	assert.InDelta(t, 1.5, *cs.Median, 1e-9)
	require.NotNil(t, cs.Min)
	assert.Equal(t, -5.0, *cs.Min)
	require.NotNil(t, cs.Max)
	assert.Equal(t, 4.0, *cs.Max)
	require.NotNil(t, cs.Zeros)
	assert.Equal(t, 1, *cs.Zeros)
	require.NotNil(t, cs.Negatives)
	assert.Equal(t, 1, *cs.Negatives)

	assert.Nil(t, cs.MostCommon)
}

func TestDescribeCategoricalColumn(t *testing.T) {
	tbl := newTable(t,
		series.New([]string{"b", "a", "a", "NaN"}, series.String, "c"),
	)

	cs := stats.Describe(tbl).Columns["c"]
	assert.Equal(t, 1, cs.Missing)
	assert.Equal(t, 25.0, cs.MissingPercent)
	assert.Equal(t, 2, cs.Unique)
	require.NotNil(t, cs.MostCommon)
	assert.Equal(t, "a", *cs.MostCommon)
	require.NotNil(t, cs.MostCommonCount)
	assert.Equal(t, 2, *cs.MostCommonCount)
	assert.Nil(t, cs.Mean)
}

func TestDescribeAllMissingNumeric(t *testing.T) {
	tbl := newTable(t,
		series.New([]string{"NaN", "NaN", "NaN"}, series.Float, "x"),
	)

	cs := stats.Describe(tbl).Columns["x"]
	assert.Equal(t, 3, cs.Missing)
	assert.Equal(t, 100.0, cs.MissingPercent)
	assert.Nil(t, cs.Mean)
	assert.Nil(t, cs.Median)
	assert.Nil(t, cs.Std)
	assert.Nil(t, cs.Skewness)
	assert.Nil(t, cs.Kurtosis)
	require.NotNil(t, cs.Zeros)
	assert.Equal(t, 0, *cs.Zeros)
}

func TestDescribeSingleValueHasNoStd(t *testing.T) {
	tbl := newTable(t,
		series.New([]float64{42}, series.Float, "x"),
	)

	cs := stats.Describe(tbl).Columns["x"]
	require.NotNil(t, cs.Mean)
	assert.Equal(t, 42.0, *cs.Mean)
	assert.Nil(t, cs.Std, "one observation has no sample deviation")
}

func TestDescriptionMarshalsWithoutNaN(t *testing.T) {
	tbl := newTable(t,
		series.New([]string{"NaN", "1"}, series.Float, "x"),
		series.New([]string{"a", "b"}, series.String, "c"),
	)

	data, err := json.Marshal(stats.Describe(tbl))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "NaN")
}
