package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/datalens/datalens/correlation"
	"github.com/datalens/datalens/pkg/errors"
)

const css = `
:root { --primary: #2563eb; --bg: #f8fafc; --card: #ffffff; }
body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 2rem; background: var(--bg); color: #1e293b; }
header { text-align: center; margin-bottom: 2rem; }
header h1 { color: var(--primary); margin-bottom: 0.5rem; }
.timestamp { color: #64748b; font-size: 0.9rem; }
nav { text-align: center; margin-bottom: 2rem; padding: 1rem; background: var(--card); border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
nav a { color: var(--primary); text-decoration: none; padding: 0.5rem; }
nav a:hover { text-decoration: underline; }
.table { border-collapse: collapse; width: 100%; }
.table th, .table td { border: 1px solid #e2e8f0; padding: 10px; text-align: left; }
.table th { background-color: var(--primary); color: white; }
.table tr:nth-child(even) { background-color: #f1f5f9; }
section { background: var(--card); padding: 1.5rem; margin-bottom: 1.5rem; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
section h2 { color: var(--primary); border-bottom: 2px solid var(--primary); padding-bottom: 0.5rem; }
footer { text-align: center; color: #64748b; margin-top: 2rem; padding: 1rem; }
img { border-radius: 8px; margin: 0.5rem 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); max-width: 100%; }
iframe { width: 100%; height: 520px; border: 0; }
`

var navLinks = []struct{ Label, Href string }{
	{"Summary", "#summary"},
	{"Missing Values", "#missing"},
	{"Duplicates", "#duplicates"},
	{"Statistics", "#stats"},
	{"Correlation", "#correlation"},
	{"Visualizations", "#visuals"},
}

// WriteHTML renders the styled report document. Chart paths inside the
// report are relative to the report file's directory.
func WriteHTML(r *Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create report dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()
	if err := page(r).Render(f); err != nil {
		return errors.Wrap(err, "render html report")
	}
	return nil
}

func page(r *Report) g.Node {
	generated := r.GeneratedAt
	if t, err := time.Parse(time.RFC3339, r.GeneratedAt); err == nil {
		generated = t.Format("2006-01-02 15:04:05")
	}

	nav := make([]g.Node, 0, len(navLinks))
	for i, link := range navLinks {
		if i > 0 {
			nav = append(nav, g.Text(" | "))
		}
		nav = append(nav, h.A(h.Href(link.Href), g.Text(link.Label)))
	}

	return h.Doctype(h.HTML(
		h.Lang("en"),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.TitleEl(g.Text("datalens EDA Report")),
			h.StyleEl(g.Raw(css)),
		),
		h.Body(
			h.Header(
				h.H1(g.Text("datalens EDA Report")),
				h.P(h.Class("timestamp"), g.Text("Generated: "+generated)),
			),
			h.Nav(g.Group(nav)),
			h.Div(h.ID("summary"), section("Dataset Summary", summarySection(r))),
			h.Div(h.ID("missing"), section("Missing Values", missingTable(r))),
			h.Div(h.ID("duplicates"), section("Duplicate Rows", duplicatesSection(r))),
			h.Div(h.ID("stats"), section("Descriptive Statistics", statsTable(r))),
			h.Div(h.ID("correlation"), section("Correlation",
				h.H3(g.Text("Numeric (Pearson)")),
				matrixTable(r.Correlation.Numeric),
				h.H3(g.Text("Categorical (Cramér's V)")),
				matrixTable(r.Correlation.Categorical),
			)),
			h.Div(h.ID("visuals"), section("Visualizations", visualsSection(r))),
			h.Footer(h.P(g.Text("Powered by "+r.Engine))),
		),
	))
}

func section(title string, body ...g.Node) g.Node {
	return h.Section(append([]g.Node{h.H2(g.Text(title))}, body...)...)
}

func table(header []string, rows [][]g.Node) g.Node {
	ths := make([]g.Node, len(header))
	for i, th := range header {
		ths[i] = h.Th(g.Text(th))
	}
	trs := make([]g.Node, len(rows))
	for i, row := range rows {
		tds := make([]g.Node, len(row))
		for j, cell := range row {
			tds[j] = h.Td(cell)
		}
		trs[i] = h.Tr(tds...)
	}
	return h.Table(h.Class("table"), h.THead(h.Tr(ths...)), h.TBody(trs...))
}

func summarySection(r *Report) g.Node {
	names := make([]string, 0, len(r.DatasetSummary.DTypes))
	for n := range r.DatasetSummary.DTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	rows := make([][]g.Node, 0, len(names))
	for _, n := range names {
		rows = append(rows, []g.Node{g.Text(n), g.Text(r.DatasetSummary.DTypes[n])})
	}
	return g.Group([]g.Node{
		h.P(g.Text(fmt.Sprintf("%d rows × %d columns. Quality score: %s (completeness %s, uniqueness %s).",
			r.DatasetSummary.Rows, r.DatasetSummary.Columns,
			fmtFloat(r.Quality.OverallScore), fmtFloat(r.Quality.CompletenessScore), fmtFloat(r.Quality.UniquenessScore)))),
		table([]string{"Column", "Type"}, rows),
	})
}

func missingTable(r *Report) g.Node {
	if len(r.MissingValues) == 0 {
		return h.P(g.Text("No data."))
	}
	rows := make([][]g.Node, 0, len(r.MissingValues))
	for _, m := range r.MissingValues {
		rows = append(rows, []g.Node{
			g.Text(m.Column),
			g.Text(strconv.Itoa(m.MissingCount)),
			g.Text(fmtFloat(m.MissingPercent) + "%"),
			g.Text(m.DType),
		})
	}
	return table([]string{"Column", "Missing", "Missing %", "Type"}, rows)
}

func duplicatesSection(r *Report) g.Node {
	d := r.Duplicates
	cols := make([]string, 0, len(d.DuplicatesByColumn))
	for c := range d.DuplicatesByColumn {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	rows := make([][]g.Node, 0, len(cols))
	for _, c := range cols {
		rows = append(rows, []g.Node{g.Text(c), g.Text(strconv.Itoa(d.DuplicatesByColumn[c]))})
	}
	return g.Group([]g.Node{
		h.P(g.Text(fmt.Sprintf("%d duplicate rows (%s%%) out of %d; %d unique.",
			d.DuplicateRows, fmtFloat(d.DuplicatePercent), d.TotalRows, d.UniqueRows))),
		table([]string{"Column", "Duplicated values"}, rows),
	})
}

func statsTable(r *Report) g.Node {
	names := make([]string, 0, len(r.DescriptiveStats.Columns))
	for n := range r.DescriptiveStats.Columns {
		names = append(names, n)
	}
	sort.Strings(names)

	rows := make([][]g.Node, 0, len(names))
	for _, n := range names {
		cs := r.DescriptiveStats.Columns[n]
		mostCommon := ""
		if cs.MostCommon != nil {
			mostCommon = *cs.MostCommon
			if cs.MostCommonCount != nil {
				mostCommon += fmt.Sprintf(" (%d)", *cs.MostCommonCount)
			}
		}
		rows = append(rows, []g.Node{
			g.Text(n),
			g.Text(cs.DType),
			g.Text(strconv.Itoa(cs.Unique)),
			g.Text(fmtFloat(cs.MissingPercent) + "%"),
			g.Text(fmtPtr(cs.Mean)),
			g.Text(fmtPtr(cs.Median)),
			g.Text(fmtPtr(cs.Std)),
			g.Text(fmtPtr(cs.Min)),
			g.Text(fmtPtr(cs.Max)),
			g.Text(fmtPtr(cs.Skewness)),
			g.Text(fmtPtr(cs.Kurtosis)),
			g.Text(mostCommon),
		})
	}
	return table([]string{"Column", "Type", "Unique", "Missing %", "Mean", "Median", "Std", "Min", "Max", "Skew", "Kurtosis", "Top value"}, rows)
}

func matrixTable(m correlation.Matrix) g.Node {
	if m.Empty() {
		return h.P(g.Text("No data."))
	}
	labels := m.Labels()
	header := append([]string{""}, labels...)
	rows := make([][]g.Node, 0, len(labels))
	for i, x := range labels {
		row := make([]g.Node, 0, len(labels)+1)
		row = append(row, h.Strong(g.Text(x)))
		for j := range labels {
			row = append(row, g.Text(fmt.Sprintf("%.4f", m.At(i, j))))
		}
		rows = append(rows, row)
	}
	return table(header, rows)
}

func visualsSection(r *Report) g.Node {
	categories := make([]string, 0, len(r.Visuals))
	for c := range r.Visuals {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var nodes []g.Node
	for _, cat := range categories {
		paths := r.Visuals[cat]
		if len(paths) == 0 {
			continue
		}
		nodes = append(nodes, h.H3(g.Text(cat)))
		for _, p := range paths {
			if strings.HasSuffix(p, ".html") {
				nodes = append(nodes, h.IFrame(h.Src(p)))
			} else {
				nodes = append(nodes, h.Img(h.Src(p), h.Alt(cat)))
			}
		}
	}
	if len(nodes) == 0 {
		return h.P(g.Text("No charts produced."))
	}
	return g.Group(nodes)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtPtr(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.4f", *v)
}
