package visuals

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/pkg/errors"
)

func (r *Renderer) barChart(col string, counts []dataset.CategoryCount) (string, error) {
	if len(counts) == 0 {
		return "", errors.Wrapf(errors.ErrEmptyData, "column %q", col)
	}
	p := plot.New()
	p.Title.Text = "Bar Chart: " + col
	p.X.Label.Text = col
	p.Y.Label.Text = "Count"

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = c.Value
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", err
	}
	bars.Color = fillBlue
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -0.8
	return r.savePlot(p, fmt.Sprintf("bar_%s.png", col))
}

// missingBar charts the missing percentage per column, the stand-in for a
// missing-value matrix.
func (r *Renderer) missingBar(summary []cleaning.ColumnMissing) (string, error) {
	if len(summary) == 0 {
		return "", nil
	}
	p := plot.New()
	p.Title.Text = "Missing Values by Column"
	p.Y.Label.Text = "% missing"
	p.Y.Max = 100

	values := make(plotter.Values, len(summary))
	labels := make([]string, len(summary))
	for i, cm := range summary {
		values[i] = cm.MissingPercent
		labels[i] = cm.Column
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", err
	}
	bars.Color = fillBlue
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -0.8
	return r.savePlot(p, "missing_bar.png")
}
