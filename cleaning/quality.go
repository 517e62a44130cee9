package cleaning

import (
	"github.com/datalens/datalens/dataset"
	"github.com/datalens/datalens/internal/round"
)

// QualitySummary is the composite data-quality score.
type QualitySummary struct {
	CompletenessScore float64 `json:"completeness_score"`
	UniquenessScore   float64 `json:"uniqueness_score"`
	OverallScore      float64 `json:"overall_score"`
}

// QualityScore combines completeness (share of filled cells) and
// uniqueness (share of non-duplicate rows) into one score. An empty table
// scores 100 on both axes.
func QualityScore(t *dataset.Table) QualitySummary {
	cells := t.Rows() * t.Cols()
	completeness := 100.0
	if cells > 0 {
		completeness = (1 - float64(t.TotalMissing())/float64(cells)) * 100
	}

	uniqueness := 100.0
	if t.Rows() > 0 {
		dup := DuplicateRowsSummary(t)
		uniqueness = float64(t.Rows()-dup.DuplicateRows) / float64(t.Rows()) * 100
	}

	return QualitySummary{
		CompletenessScore: round.To(completeness, 2),
		UniquenessScore:   round.To(uniqueness, 2),
		OverallScore:      round.To((completeness+uniqueness)/2, 2),
	}
}
