package visuals

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/datalens/datalens/dataset"
)

// interactiveScatter renders the first two numeric columns as a scatter
// chart wrapped in a standalone HTML page. Requires at least two numeric
// columns; otherwise no artifact is produced.
func (r *Renderer) interactiveScatter(t *dataset.Table) (string, error) {
	cols := t.NumericColumns()
	if len(cols) < 2 {
		return "", nil
	}
	xName, yName := cols[0], cols[1]

	colX, errX := t.Column(xName)
	colY, errY := t.Column(yName)
	if errX != nil {
		return "", errX
	}
	if errY != nil {
		return "", errY
	}

	rawX := colX.Float()
	rawY := colY.Float()
	var xs, ys []float64
	for i := 0; i < len(rawX) && i < len(rawY); i++ {
		if math.IsNaN(rawX[i]) || math.IsNaN(rawY[i]) {
			continue
		}
		xs = append(xs, rawX[i])
		ys = append(ys, rawY[i])
	}
	if len(xs) == 0 {
		return "", nil
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s vs %s", xName, yName),
		Width:  900,
		Height: 600,
		XAxis:  chart.XAxis{Name: xName},
		YAxis:  chart.YAxis{Name: yName},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    drawing.ColorBlue,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var svg bytes.Buffer
	if err := graph.Render(chart.SVG, &svg); err != nil {
		return "", err
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Interactive Scatter</title></head>
<body style="margin:0;display:flex;justify-content:center;">%s</body>
</html>
`, svg.String())

	rel := filepath.Join(Dir, "interactive_scatter.html")
	if err := os.WriteFile(filepath.Join(r.outDir, rel), []byte(page), 0o644); err != nil {
		return "", err
	}
	return rel, nil
}
