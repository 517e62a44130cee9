package cleaning

import (
	"strings"

	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/internal/round"
)

// DuplicateSummary describes exact duplicate rows and per-column duplicate
// values. A duplicate is any occurrence after the first; missing values
// compare equal to each other.
type DuplicateSummary struct {
	DuplicateRows      int            `json:"duplicate_rows"`
	DuplicatePercent   float64        `json:"duplicate_percent"`
	TotalRows          int            `json:"total_rows"`
	UniqueRows         int            `json:"unique_rows"`
	DuplicatesByColumn map[string]int `json:"duplicates_by_column"`
}

// DuplicateRowsSummary counts full-row duplicates and, independently,
// duplicated values within each single column.
func DuplicateRowsSummary(t *dataset.Table) DuplicateSummary {
	rows := t.Rows()
	recs := t.RowRecords()

	seen := make(map[string]struct{}, rows)
	dupRows := 0
	for _, rec := range recs {
		key := strings.Join(rec, "\x1f")
		if _, ok := seen[key]; ok {
			dupRows++
			continue
		}
		seen[key] = struct{}{}
	}

	byColumn := make(map[string]int, t.Cols())
	for _, name := range t.Names() {
		col, err := t.Column(name)
		if err != nil {
			continue
		}
		values := col.Records()
		colSeen := make(map[string]struct{}, len(values))
		dups := 0
		for _, v := range values {
			if _, ok := colSeen[v]; ok {
				dups++
				continue
			}
			colSeen[v] = struct{}{}
		}
		byColumn[name] = dups
	}

	percent := 0.0
	if rows > 0 {
		percent = round.To(float64(dupRows)/float64(rows)*100, 2)
	}
	return DuplicateSummary{
		DuplicateRows:      dupRows,
		DuplicatePercent:   percent,
		TotalRows:          rows,
		UniqueRows:         rows - dupRows,
		DuplicatesByColumn: byColumn,
	}
}
