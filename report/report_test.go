package report_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/correlation"
	"github.com/datalens/datalens/report"
	"github.com/datalens/datalens/stats"
)

func sampleReport() *report.Report {
	mean := 2.0
	top := "a"
	topCount := 3
	return &report.Report{
		DatasetSummary: report.DatasetSummary{
			Rows:    4,
			Columns: 2,
			DTypes:  map[string]string{"x": "float", "c": "string"},
		},
		MissingValues: []cleaning.ColumnMissing{
			{Column: "x", MissingCount: 1, MissingPercent: 25, DType: "float"},
			{Column: "c", MissingCount: 0, MissingPercent: 0, DType: "string"},
		},
		Duplicates: cleaning.DuplicateSummary{
			TotalRows:          4,
			UniqueRows:         4,
			DuplicatesByColumn: map[string]int{"x": 0, "c": 1},
		},
		Quality: cleaning.QualitySummary{
			CompletenessScore: 87.5,
			UniquenessScore:   100,
			OverallScore:      93.75,
		},
		Outliers: map[string]cleaning.ColumnOutliers{
			"x": {OutlierCount: 1, OutlierPercent: 25, LowerBound: -1.5, UpperBound: 8.5},
		},
		DescriptiveStats: stats.Description{
			Shape: stats.Shape{Rows: 4, Columns: 2},
			Columns: map[string]stats.ColumnStats{
				"x": {DType: "float", Unique: 3, Missing: 1, MissingPercent: 25, Mean: &mean},
				"c": {DType: "string", Unique: 2, MostCommon: &top, MostCommonCount: &topCount},
			},
			MemoryUsageMB: 0.0001,
		},
		Correlation: report.Correlation{
			Numeric:     correlation.NewMatrix([]string{"x"}),
			Categorical: correlation.Matrix{},
		},
		Visuals: map[string][]string{
			"Histograms": {"visuals/histogram_x.png"},
		},
	}
}

func TestFinalize(t *testing.T) {
	r := sampleReport()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	r.Finalize(now)

	assert.Equal(t, "2025-03-14T09:30:00Z", r.GeneratedAt)
	assert.Equal(t, "datalens v1.0", r.Engine)
}

func TestJSONRoundTrip(t *testing.T) {
	r := sampleReport()
	r.Finalize(time.Now().UTC())

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteJSON(r, path))

	back, err := report.ReadJSON(path)
	require.NoError(t, err)

	assert.Equal(t, r.DatasetSummary, back.DatasetSummary)
	assert.Equal(t, r.MissingValues, back.MissingValues)
	assert.Equal(t, r.Duplicates, back.Duplicates)
	assert.Equal(t, r.Quality, back.Quality)
	assert.Equal(t, r.Outliers, back.Outliers)
	assert.Equal(t, r.DescriptiveStats.Shape, back.DescriptiveStats.Shape)
	require.NotNil(t, back.DescriptiveStats.Columns["x"].Mean)
	assert.Equal(t, 2.0, *back.DescriptiveStats.Columns["x"].Mean)
	assert.Equal(t, r.Visuals, back.Visuals)
	assert.Equal(t, r.GeneratedAt, back.GeneratedAt)
	assert.Equal(t, r.Engine, back.Engine)

	assert.Equal(t, r.Correlation.Numeric.Labels(), back.Correlation.Numeric.Labels())
	assert.True(t, back.Correlation.Categorical.Empty())
}

func TestWriteJSONEndsWithNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteJSON(sampleReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestWriteHTML(t *testing.T) {
	r := sampleReport()
	r.Finalize(time.Now().UTC())

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, report.WriteHTML(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "<!doctype html>")
	assert.Contains(t, html, "Dataset Summary")
	assert.Contains(t, html, "Missing Values")
	assert.Contains(t, html, "visuals/histogram_x.png")
	assert.Contains(t, html, report.Engine)
}

func TestWriteHTMLEmptyReport(t *testing.T) {
	r := &report.Report{}
	r.Finalize(time.Now().UTC())

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, report.WriteHTML(r, path))
}
