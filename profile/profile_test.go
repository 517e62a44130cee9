package profile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/profile"
	"github.com/datalens/datalens/report"
	"github.com/datalens/datalens/stats"
)

func TestGenerate(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"1", "2", "3", "NaN"}, series.Float, "amount"),
		series.New([]string{"a", "a", "b", "c"}, series.String, "label"),
		series.New([]string{"NaN", "NaN", "NaN", "x"}, series.String, "sparse"),
	)
	require.NoError(t, df.Err)
	tbl := dataset.New(df, "sample", dataset.FormatCSV)

	rep := &report.Report{
		DescriptiveStats: stats.Describe(tbl),
		Outliers:         cleaning.DetectOutliers(tbl, cleaning.MethodIQR),
	}
	rep.Finalize(time.Now().UTC())

	path := filepath.Join(t.TempDir(), "profile.html")
	require.NoError(t, profile.Generate(tbl, rep, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Profiling Report")
	assert.Contains(t, html, "amount")
	assert.Contains(t, html, "label")
	assert.Contains(t, html, "Top values")
	assert.Contains(t, html, "Severely incomplete column")
	assert.Contains(t, html, "Outliers")
}

func TestGenerateWithPartialStats(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"1", "2"}, series.Float, "x"),
	)
	require.NoError(t, df.Err)
	tbl := dataset.New(df, "sample", dataset.FormatCSV)

	// Each moment renders independently of the others.
	mean := 1.5
	rep := &report.Report{
		DescriptiveStats: stats.Description{
			Shape: stats.Shape{Rows: 2, Columns: 1},
			Columns: map[string]stats.ColumnStats{
				"x": {DType: "float", Unique: 2, Mean: &mean},
			},
		},
	}
	rep.Finalize(time.Now().UTC())

	path := filepath.Join(t.TempDir(), "profile.html")
	require.NoError(t, profile.Generate(tbl, rep, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mean")
	assert.NotContains(t, string(data), "Median")
}
