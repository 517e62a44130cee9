package visuals_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens/datalens/correlation"
	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/pkg/log"
	"github.com/datalens/datalens/visuals"
)

func newTable(t *testing.T, cols ...series.Series) *dataset.Table {
	t.Helper()
	df := dataframe.New(cols...)
	require.NoError(t, df.Err)
	return dataset.New(df, "test", dataset.FormatCSV)
}

func TestRenderAll(t *testing.T) {
	tbl := newTable(t,
		series.New([]float64{1, 2, 3, 4, 5, 6, 7, 8}, series.Float, "x"),
		series.New([]float64{8, 6, 9, 4, 7, 2, 5, 1}, series.Float, "y"),
		series.New([]string{"a", "b", "a", "b", "a", "b", "a", "a"}, series.String, "group"),
	)

	outDir := t.TempDir()
	r := visuals.NewRenderer(outDir, log.NewTestLogger(io.Discard))

	numeric := correlation.Numeric(tbl)
	categorical := correlation.Categorical(tbl, dataset.DefaultMaxUnique)
	got := r.RenderAll(tbl, numeric, categorical, dataset.DefaultMaxUnique)

	assert.Len(t, got["Histograms"], 2)
	assert.Len(t, got["Boxplots"], 2)
	assert.Len(t, got["Violin Plots"], 2)
	assert.Len(t, got["Pairplot"], 1)
	assert.Len(t, got["Bar Charts"], 1)
	assert.Len(t, got["Numeric Correlation Heatmap"], 1)
	assert.Len(t, got["Interactive Scatter"], 1)
	assert.Len(t, got["Missing Values"], 1)

	// Single categorical column: no Cramér's V matrix to draw.
	assert.Empty(t, got["Categorical Correlation Heatmap"])

	for category, paths := range got {
		for _, rel := range paths {
			assert.True(t, filepath.IsLocal(rel), "path must be relative: %s", rel)
			_, err := os.Stat(filepath.Join(outDir, rel))
			assert.NoError(t, err, "%s artifact missing: %s", category, rel)
		}
	}

	assert.Contains(t, got["Interactive Scatter"][0], ".html")
}

func TestRenderAllNoNumericColumns(t *testing.T) {
	tbl := newTable(t,
		series.New([]string{"a", "b", "a"}, series.String, "only"),
	)

	r := visuals.NewRenderer(t.TempDir(), log.NewTestLogger(io.Discard))
	got := r.RenderAll(tbl, correlation.Matrix{}, correlation.Matrix{}, dataset.DefaultMaxUnique)

	assert.Empty(t, got["Histograms"])
	assert.Empty(t, got["Pairplot"])
	assert.Empty(t, got["Interactive Scatter"])
	assert.Len(t, got["Bar Charts"], 1)
}
