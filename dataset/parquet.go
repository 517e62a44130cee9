package dataset

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"
	"github.com/apache/arrow/go/v7/parquet/file"
	"github.com/apache/arrow/go/v7/parquet/pqarrow"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/datalens/datalens/pkg/errors"
)

// readParquet reads a parquet file through the arrow bridge and converts
// each column into a typed series. Null cells become missing values.
func readParquet(path string) (dataframe.DataFrame, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open parquet %s", path)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "parquet arrow reader %s", path)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "read parquet table %s", path)
	}
	defer tbl.Release()

	ncols := int(tbl.NumCols())
	if ncols == 0 {
		return dataframe.DataFrame{}, errors.Wrapf(errors.ErrEmptyData, "parquet %s", path)
	}

	cols := make([]series.Series, 0, ncols)
	for i := 0; i < ncols; i++ {
		col := tbl.Column(i)
		values := make([]string, 0, int(tbl.NumRows()))
		st := series.String
		for _, chunk := range col.Data().Chunks() {
			chunkVals, chunkType, err := chunkStrings(chunk)
			if err != nil {
				return dataframe.DataFrame{}, errors.Wrapf(err, "parquet column %q", col.Name())
			}
			values = append(values, chunkVals...)
			st = chunkType
		}
		cols = append(cols, series.New(values, st, col.Name()))
	}
	return dataframe.New(cols...), nil
}

// chunkStrings renders one arrow array as string cells with "NaN" for
// nulls, plus the series type the cells should load as.
func chunkStrings(arr arrow.Array) ([]string, series.Type, error) {
	n := arr.Len()
	out := make([]string, n)

	render := func(st series.Type, value func(int) string) ([]string, series.Type, error) {
		for i := 0; i < n; i++ {
			if arr.IsNull(i) {
				out[i] = "NaN"
				continue
			}
			out[i] = value(i)
		}
		return out, st, nil
	}

	switch a := arr.(type) {
	case *array.Float64:
		return render(series.Float, func(i int) string { return fmt.Sprintf("%v", a.Value(i)) })
	case *array.Float32:
		return render(series.Float, func(i int) string { return fmt.Sprintf("%v", a.Value(i)) })
	case *array.Int64:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Int32:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Int16:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Int8:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Uint64:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Uint32:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Uint16:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Uint8:
		return render(series.Int, func(i int) string { return fmt.Sprintf("%d", a.Value(i)) })
	case *array.Boolean:
		return render(series.Bool, func(i int) string { return fmt.Sprintf("%t", a.Value(i)) })
	case *array.String:
		return render(series.String, func(i int) string { return a.Value(i) })
	default:
		// Timestamps, decimals and the rest round-trip through the
		// array's JSON representation as text cells.
		raw, err := json.Marshal(arr)
		if err != nil {
			return nil, series.String, errors.Wrapf(err, "unsupported arrow type %s", arr.DataType().Name())
		}
		var generic []interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, series.String, errors.Wrapf(err, "unsupported arrow type %s", arr.DataType().Name())
		}
		if len(generic) != n {
			return nil, series.String, errors.NewDimensionError("chunkStrings", n, len(generic))
		}
		for i, v := range generic {
			if v == nil || arr.IsNull(i) {
				out[i] = "NaN"
				continue
			}
			out[i] = fmt.Sprintf("%v", v)
		}
		return out, series.String, nil
	}
}
