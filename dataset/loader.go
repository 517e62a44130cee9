package dataset

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/datalens/datalens/pkg/errors"
)

// Format identifies the source file family a table was loaded from.
type Format string

const (
	FormatCSV         Format = "csv"
	FormatSpreadsheet Format = "spreadsheet"
	FormatJSON        Format = "json"
	FormatParquet     Format = "parquet"
)

// supportedExtensions lists what Load understands, for error messages.
var supportedExtensions = []string{".csv", ".tsv", ".txt", ".xlsx", ".json", ".jsonl", ".parquet"}

// naValues are the cell contents treated as missing when parsing text input.
var naValues = []string{"", "NA", "NaN", "null", "NULL"}

// Options controls loading behavior.
type Options struct {
	// Sheet selects a spreadsheet sheet by name; empty means first sheet.
	Sheet string
}

// Load reads the file at path into a Table, selecting the parser by
// extension. A missing file or an unrecognized extension is fatal; there
// is no content sniffing.
func Load(path string, opts Options) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		df     dataframe.DataFrame
		format Format
		err    error
	)
	switch ext {
	case ".csv", ".txt":
		df, err = readDelimited(path, ',')
		format = FormatCSV
	case ".tsv":
		df, err = readDelimited(path, '\t')
		format = FormatCSV
	case ".xlsx":
		df, err = readSpreadsheet(path, opts.Sheet)
		format = FormatSpreadsheet
	case ".json":
		df, err = readJSON(path)
		format = FormatJSON
	case ".jsonl":
		df, err = readJSONLines(path)
		format = FormatJSON
	case ".parquet":
		df, err = readParquet(path)
		format = FormatParquet
	default:
		return nil, errors.NewUnsupportedFormatError(path, ext, supportedExtensions)
	}
	if err != nil {
		return nil, err
	}
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "load %s", path)
	}
	return New(df, Stem(path), format), nil
}

func readDelimited(path string, delimiter rune) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return readDelimitedFrom(f, delimiter), nil
}

func readDelimitedFrom(r io.Reader, delimiter rune) dataframe.DataFrame {
	return dataframe.ReadCSV(r,
		dataframe.WithDelimiter(delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
}

// readJSON accepts either an array of objects or a single object, which
// becomes a one-row table.
func readJSON(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var doc interface{}
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "parse json %s", path)
	}

	var rows []map[string]interface{}
	switch v := doc.(type) {
	case []interface{}:
		for _, item := range v {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return dataframe.DataFrame{}, errors.NewValueError("readJSON", "array elements must be objects")
			}
			rows = append(rows, obj)
		}
	case map[string]interface{}:
		rows = append(rows, v)
	default:
		return dataframe.DataFrame{}, errors.NewValueError("readJSON", "document must be an object or an array of objects")
	}
	return loadMaps(rows), nil
}

// readJSONLines parses newline-delimited JSON objects, skipping blank lines.
func readJSONLines(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var rows []map[string]interface{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return dataframe.DataFrame{}, errors.Wrapf(err, "parse jsonl %s", path)
		}
		rows = append(rows, obj)
	}
	if err := scanner.Err(); err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "read %s", path)
	}
	return loadMaps(rows), nil
}

func loadMaps(rows []map[string]interface{}) dataframe.DataFrame {
	return dataframe.LoadMaps(rows,
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
}
