// Package report assembles every computed summary into one aggregate and
// serializes it to JSON and HTML. The assembler only merges and stamps;
// all computation happens upstream.
package report

import (
	"time"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/correlation"
	"github.com/datalens/datalens/stats"
)

// Engine is the fixed version string stamped into every report.
const Engine = "datalens v1.0"

// DatasetSummary is the table shape and declared column types.
type DatasetSummary struct {
	Rows    int               `json:"rows"`
	Columns int               `json:"columns"`
	DTypes  map[string]string `json:"dtypes"`
}

// Correlation groups the two association matrices.
type Correlation struct {
	Numeric     correlation.Matrix `json:"numeric"`
	Categorical correlation.Matrix `json:"categorical"`
}

// Report is the aggregate of every independently computed summary plus a
// generation timestamp. Built once per run, written once, never mutated
// afterward.
type Report struct {
	DatasetSummary   DatasetSummary                     `json:"dataset_summary"`
	MissingValues    []cleaning.ColumnMissing           `json:"missing_values"`
	Duplicates       cleaning.DuplicateSummary          `json:"duplicates"`
	Quality          cleaning.QualitySummary            `json:"quality"`
	Outliers         map[string]cleaning.ColumnOutliers `json:"outliers"`
	DescriptiveStats stats.Description                  `json:"descriptive_stats"`
	Correlation      Correlation                        `json:"correlation"`
	Visuals          map[string][]string                `json:"visuals"`
	GeneratedAt      string                             `json:"generated_at"`
	Engine           string                             `json:"engine"`
}

// Finalize stamps the generation time and engine version.
func (r *Report) Finalize(now time.Time) {
	r.GeneratedAt = now.Format(time.RFC3339)
	r.Engine = Engine
}
