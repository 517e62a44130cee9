package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/datalens/datalens/pkg/errors"
)

// readSpreadsheet reads one sheet of an xlsx workbook. The first row is the
// header; rows shorter than the header are padded with missing cells.
func readSpreadsheet(path, sheet string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open spreadsheet %s", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, errors.Wrap(errors.ErrEmptyData, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "read sheet %q", sheet)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, errors.Wrapf(errors.ErrEmptyData, "sheet %q", sheet)
	}

	header := rows[0]
	records := make([][]string, 0, len(rows))
	records = append(records, header)
	for _, row := range rows[1:] {
		rec := make([]string, len(header))
		for i := range header {
			if i < len(row) {
				rec[i] = row[i]
			}
		}
		records = append(records, rec)
	}

	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	), nil
}
