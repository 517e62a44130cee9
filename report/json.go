package report

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/datalens/datalens/pkg/errors"
)

// WriteJSON serializes the report to path with two-space indentation.
func WriteJSON(r *Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create report dir")
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// ReadJSON loads a previously written report. Scalar values survive the
// round trip exactly; matrix label order comes back sorted.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return &r, nil
}
