package visuals

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/pkg/errors"
)

var fillBlue = color.NRGBA{R: 70, G: 120, B: 200, A: 160}

func (r *Renderer) histogram(col string, values []float64) (string, error) {
	if len(values) == 0 {
		return "", errors.Wrapf(errors.ErrEmptyData, "column %q", col)
	}
	p := plot.New()
	p.Title.Text = "Histogram: " + col
	p.X.Label.Text = col
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), histBins(len(values)))
	if err != nil {
		return "", err
	}
	h.FillColor = fillBlue
	p.Add(h)
	return r.savePlot(p, fmt.Sprintf("hist_%s.png", col))
}

// histBins follows the square-root rule, clamped to a sane range.
func histBins(n int) int {
	bins := int(math.Ceil(math.Sqrt(float64(n))))
	if bins < 5 {
		bins = 5
	}
	if bins > 50 {
		bins = 50
	}
	return bins
}

func (r *Renderer) boxPlot(col string, values []float64) (string, error) {
	if len(values) == 0 {
		return "", errors.Wrapf(errors.ErrEmptyData, "column %q", col)
	}
	p := plot.New()
	p.Title.Text = "Boxplot: " + col
	p.Y.Label.Text = col

	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(values))
	if err != nil {
		return "", err
	}
	p.Add(b)
	p.NominalX(col)
	return r.savePlot(p, fmt.Sprintf("box_%s.png", col))
}

// violin draws a kernel-density outline mirrored around the value axis,
// the usual violin silhouette.
func (r *Renderer) violin(col string, values []float64) (string, error) {
	if len(values) == 0 {
		return "", errors.Wrapf(errors.ErrEmptyData, "column %q", col)
	}
	p := plot.New()
	p.Title.Text = "Violin: " + col
	p.X.Label.Text = col

	grid, density := gaussianKDE(values)
	outline := make(plotter.XYs, 0, 2*len(grid))
	for i := range grid {
		outline = append(outline, plotter.XY{X: grid[i], Y: density[i]})
	}
	for i := len(grid) - 1; i >= 0; i-- {
		outline = append(outline, plotter.XY{X: grid[i], Y: -density[i]})
	}

	poly, err := plotter.NewPolygon(outline)
	if err != nil {
		return "", err
	}
	poly.Color = fillBlue
	p.Add(poly)
	p.Y.Label.Text = "Density"
	return r.savePlot(p, fmt.Sprintf("violin_%s.png", col))
}

// gaussianKDE evaluates a gaussian kernel density estimate on a regular
// grid spanning the data, using Silverman's bandwidth.
func gaussianKDE(values []float64) (grid, density []float64) {
	const points = 128

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	n := float64(len(values))
	std := 0.0
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	bw := 1.06 * std * math.Pow(n, -0.2)
	if bw <= 0 {
		// Constant column: draw a narrow spike around the single value.
		bw = math.Max(math.Abs(lo)*0.01, 1e-3)
	}
	lo -= 3 * bw
	hi += 3 * bw

	grid = make([]float64, points)
	density = make([]float64, points)
	step := (hi - lo) / (points - 1)
	norm := 1 / (n * bw * math.Sqrt(2*math.Pi))
	for i := 0; i < points; i++ {
		x := lo + float64(i)*step
		grid[i] = x
		sum := 0.0
		for _, v := range values {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		density[i] = sum * norm
	}
	return grid, density
}

// pairPlot renders the pairwise scatter grid over numeric columns onto a
// single canvas. Returns an empty path when fewer than two numeric
// columns exist.
func (r *Renderer) pairPlot(t *dataset.Table) (string, error) {
	cols := t.NumericColumns()
	if len(cols) < 2 {
		return "", nil
	}

	// Rows complete across all numeric columns, matching a dropna over
	// the numeric subset.
	data := make([][]float64, len(cols))
	for i, name := range cols {
		col, err := t.Column(name)
		if err != nil {
			return "", err
		}
		data[i] = col.Float()
	}
	var keep []int
	for row := 0; row < t.Rows(); row++ {
		ok := true
		for _, colVals := range data {
			if row >= len(colVals) || math.IsNaN(colVals[row]) {
				ok = false
				break
			}
		}
		if ok {
			keep = append(keep, row)
		}
	}

	n := len(cols)
	plots := make([][]*plot.Plot, n)
	for i := 0; i < n; i++ {
		plots[i] = make([]*plot.Plot, n)
		for j := 0; j < n; j++ {
			p := plot.New()
			if i == n-1 {
				p.X.Label.Text = cols[j]
			}
			if j == 0 {
				p.Y.Label.Text = cols[i]
			}
			if i == j {
				vals := make(plotter.Values, 0, len(keep))
				for _, row := range keep {
					vals = append(vals, data[i][row])
				}
				if len(vals) > 0 {
					if h, err := plotter.NewHist(vals, histBins(len(vals))); err == nil {
						h.FillColor = fillBlue
						p.Add(h)
					}
				}
			} else {
				xys := make(plotter.XYs, 0, len(keep))
				for _, row := range keep {
					xys = append(xys, plotter.XY{X: data[j][row], Y: data[i][row]})
				}
				if s, err := plotter.NewScatter(xys); err == nil {
					s.GlyphStyle.Radius = vg.Points(1.5)
					s.GlyphStyle.Color = fillBlue
					p.Add(s)
				}
			}
			plots[i][j] = p
		}
	}

	side := vg.Length(n) * 2.5 * vg.Inch
	img := vgimg.New(side, side)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: n, Cols: n,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
		PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	rel := filepath.Join(Dir, "pairplot.png")
	f, err := os.Create(filepath.Join(r.outDir, rel))
	if err != nil {
		return "", err
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", err
	}
	return rel, nil
}
