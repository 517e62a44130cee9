// Package profile generates the optional extended profiling report: one
// detail block per column with distribution tables and quality notes.
// Generation is best-effort; callers treat any error as a warning.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/pkg/errors"
	"github.com/datalens/datalens/report"
)

const css = `
body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 2rem; background: #f8fafc; color: #1e293b; }
h1 { color: #2563eb; }
.column { background: #ffffff; padding: 1.5rem; margin-bottom: 1.5rem; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
.column h2 { color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 0.5rem; }
table { border-collapse: collapse; margin: 0.5rem 0; }
th, td { border: 1px solid #e2e8f0; padding: 6px 12px; text-align: left; }
th { background-color: #2563eb; color: white; }
.verdict { font-weight: bold; }
.ok { color: #16a34a; }
.warn { color: #d97706; }
`

// Generate writes the extended profiling report for every column.
func Generate(t *dataset.Table, rep *report.Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create profile dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	blocks := make([]g.Node, 0, t.Cols())
	for _, name := range t.Names() {
		blocks = append(blocks, columnBlock(t, rep, name))
	}

	doc := h.HTML(
		h.Lang("en"),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.TitleEl(g.Text("datalens Profiling Report")),
			h.StyleEl(g.Raw(css)),
		),
		h.Body(
			h.H1(g.Text("datalens Profiling Report")),
			h.P(g.Text(fmt.Sprintf("Dataset %q: %d rows × %d columns. Generated %s by %s.",
				t.Name(), t.Rows(), t.Cols(), rep.GeneratedAt, rep.Engine))),
			g.Group(blocks),
		),
	)
	if err := doc.Render(f); err != nil {
		return errors.Wrap(err, "render profiling report")
	}
	return nil
}

func columnBlock(t *dataset.Table, rep *report.Report, name string) g.Node {
	cs := rep.DescriptiveStats.Columns[name]

	facts := [][2]string{
		{"Type", cs.DType},
		{"Distinct values", strconv.Itoa(cs.Unique)},
		{"Missing", fmt.Sprintf("%d (%v%%)", cs.Missing, cs.MissingPercent)},
	}
	if cs.Mean != nil {
		facts = append(facts, [2]string{"Mean", fmt.Sprintf("%.4f", *cs.Mean)})
	}
	if cs.Median != nil {
		facts = append(facts, [2]string{"Median", fmt.Sprintf("%.4f", *cs.Median)})
	}
	if cs.Std != nil {
		facts = append(facts, [2]string{"Std", fmt.Sprintf("%.4f", *cs.Std)})
	}
	if cs.Min != nil && cs.Max != nil {
		facts = append(facts, [2]string{"Range", fmt.Sprintf("%.4f … %.4f", *cs.Min, *cs.Max)})
	}
	if out, ok := rep.Outliers[name]; ok {
		facts = append(facts, [2]string{
			"Outliers",
			fmt.Sprintf("%d (%v%%), fences [%v, %v]", out.OutlierCount, out.OutlierPercent, out.LowerBound, out.UpperBound),
		})
	}

	factRows := make([]g.Node, 0, len(facts))
	for _, kv := range facts {
		factRows = append(factRows, h.Tr(h.Th(g.Text(kv[0])), h.Td(g.Text(kv[1]))))
	}

	nodes := []g.Node{
		h.Class("column"),
		h.H2(g.Text(name)),
		verdict(cs.MissingPercent),
		h.Table(g.Group(factRows)),
	}

	if counts := dataset.LimitCategories(t.ValueCounts(name), dataset.DefaultMaxCategories); !t.IsNumeric(name) && len(counts) > 0 {
		rows := make([]g.Node, 0, len(counts)+1)
		rows = append(rows, h.Tr(h.Th(g.Text("Value")), h.Th(g.Text("Count"))))
		for _, c := range counts {
			rows = append(rows, h.Tr(h.Td(g.Text(c.Value)), h.Td(g.Text(strconv.Itoa(c.Count)))))
		}
		nodes = append(nodes, h.H3(g.Text("Top values")), h.Table(g.Group(rows)))
	}

	return h.Div(nodes...)
}

// verdict renders a rough per-column health note based on missingness.
func verdict(missingPercent float64) g.Node {
	switch {
	case missingPercent == 0:
		return h.P(h.Class("verdict ok"), g.Text("Complete column, no missing values."))
	case missingPercent >= cleaning.SevereMissingThreshold:
		return h.P(h.Class("verdict warn"), g.Text("Severely incomplete column, consider dropping or imputing."))
	default:
		return h.P(h.Class("verdict"), g.Text("Some missing values present."))
	}
}
