package visuals

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/datalens/datalens/correlation"
)

// matrixGrid adapts a correlation matrix to the plotter grid interface.
// Row 0 of the matrix is drawn at the top.
type matrixGrid struct {
	m correlation.Matrix
}

func (g matrixGrid) Dims() (int, int)   { n := g.m.Dim(); return n, n }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }
func (g matrixGrid) Z(c, r int) float64 { return g.m.At(g.m.Dim()-1-r, c) }

// heatmap renders a correlation matrix with a diverging palette. Empty
// matrices produce no artifact and no error.
func (r *Renderer) heatmap(m correlation.Matrix, name string) (string, error) {
	if m.Empty() {
		return "", nil
	}
	p := plot.New()
	p.Title.Text = "Correlation Heatmap: " + name

	h := plotter.NewHeatMap(matrixGrid{m: m}, moreland.SmoothBlueRed().Palette(255))
	p.Add(h)

	labels := m.Labels()
	reversed := make([]string, len(labels))
	for i, l := range labels {
		reversed[len(labels)-1-i] = l
	}
	p.NominalX(labels...)
	p.NominalY(reversed...)
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -0.8
	return r.savePlot(p, fmt.Sprintf("corr_%s.png", name))
}
