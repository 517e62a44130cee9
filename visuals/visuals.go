// Package visuals renders charts for a table: histograms, box plots,
// violins and a scatter grid for numeric columns, bar charts for
// categorical columns, correlation heatmaps, and an interactive scatter.
//
// Rendering is best-effort. A failed chart logs a warning and produces no
// artifact; it never aborts the run.
package visuals

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/correlation"
	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/pkg/errors"
)

// Dir is the subdirectory of the report output that holds chart files.
const Dir = "visuals"

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// Renderer writes chart files under outDir/visuals and returns paths
// relative to outDir, ready for embedding in the HTML report.
type Renderer struct {
	outDir        string
	maxCategories int
	logger        zerolog.Logger
}

// NewRenderer creates a Renderer rooted at the report output directory.
func NewRenderer(outDir string, logger zerolog.Logger) *Renderer {
	return &Renderer{outDir: outDir, maxCategories: dataset.DefaultMaxCategories, logger: logger}
}

// RenderAll produces every chart category and maps category names to the
// artifact paths that rendered successfully.
func (r *Renderer) RenderAll(t *dataset.Table, numeric, categorical correlation.Matrix, maxUnique int) map[string][]string {
	if err := os.MkdirAll(filepath.Join(r.outDir, Dir), 0o755); err != nil {
		r.warn("visuals directory", "", err)
		return map[string][]string{}
	}

	visuals := map[string][]string{
		"Histograms":                      {},
		"Boxplots":                        {},
		"Violin Plots":                    {},
		"Pairplot":                        {},
		"Bar Charts":                      {},
		"Numeric Correlation Heatmap":     {},
		"Categorical Correlation Heatmap": {},
		"Interactive Scatter":             {},
		"Missing Values":                  {},
	}

	for _, col := range t.NumericColumns() {
		values := t.NumericValues(col)
		if path, err := r.histogram(col, values); err != nil {
			r.warn("histogram", col, err)
		} else {
			visuals["Histograms"] = append(visuals["Histograms"], path)
		}
		if path, err := r.boxPlot(col, values); err != nil {
			r.warn("boxplot", col, err)
		} else {
			visuals["Boxplots"] = append(visuals["Boxplots"], path)
		}
		if path, err := r.violin(col, values); err != nil {
			r.warn("violin", col, err)
		} else {
			visuals["Violin Plots"] = append(visuals["Violin Plots"], path)
		}
	}

	if path, err := r.pairPlot(t); err != nil {
		r.warn("pairplot", "", err)
	} else if path != "" {
		visuals["Pairplot"] = append(visuals["Pairplot"], path)
	}

	for _, col := range t.CategoricalColumns(maxUnique) {
		counts := dataset.LimitCategories(t.ValueCounts(col), r.maxCategories)
		if path, err := r.barChart(col, counts); err != nil {
			r.warn("bar chart", col, err)
		} else {
			visuals["Bar Charts"] = append(visuals["Bar Charts"], path)
		}
	}

	if path, err := r.heatmap(numeric, "numeric"); err != nil {
		r.warn("numeric heatmap", "", err)
	} else if path != "" {
		visuals["Numeric Correlation Heatmap"] = append(visuals["Numeric Correlation Heatmap"], path)
	}
	if path, err := r.heatmap(categorical, "categorical"); err != nil {
		r.warn("categorical heatmap", "", err)
	} else if path != "" {
		visuals["Categorical Correlation Heatmap"] = append(visuals["Categorical Correlation Heatmap"], path)
	}

	if path, err := r.interactiveScatter(t); err != nil {
		r.warn("interactive scatter", "", err)
	} else if path != "" {
		visuals["Interactive Scatter"] = append(visuals["Interactive Scatter"], path)
	}

	if path, err := r.missingBar(cleaning.MissingValueSummary(t)); err != nil {
		r.warn("missing values chart", "", err)
	} else if path != "" {
		visuals["Missing Values"] = append(visuals["Missing Values"], path)
	}

	return visuals
}

// savePlot writes p under the visuals directory and returns the relative
// artifact path.
func (r *Renderer) savePlot(p *plot.Plot, filename string) (string, error) {
	rel := filepath.Join(Dir, filename)
	if err := p.Save(chartWidth, chartHeight, filepath.Join(r.outDir, rel)); err != nil {
		return "", err
	}
	return rel, nil
}

func (r *Renderer) warn(chart, column string, err error) {
	w := errors.NewRenderWarning(chart, column, err)
	errors.Warn(w)
	r.logger.Warn().EmbedObject(w).Msg("chart skipped")
}
