// Package log configures structured logging for a datalens run.
//
// Every run writes human-readable console output and a JSON log file under
// the report output directory (logs/datalens.log). The returned
// zerolog.Logger is passed down to the analysis and rendering stages; typed
// errors from pkg/errors attach themselves to events as structured objects.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LogFileName is the file created under the run's log directory.
const LogFileName = "datalens.log"

// Setup builds the run logger. Console output goes to stderr; a JSON copy
// goes to logDir/datalens.log, truncated at the start of each run so the
// file holds exactly one run and never grows across invocations. The
// returned closer flushes and closes the log file and is safe to call once
// at the end of the run.
func Setup(logDir string, level zerolog.Level) (zerolog.Logger, func() error, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, LogFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(zerolog.MultiLevelWriter(console, file)).
		Level(level).
		With().
		Timestamp().
		Str("component", "datalens").
		Logger()

	return logger, file.Close, nil
}

// ToLevel maps the CLI verbosity flag to a zerolog level.
func ToLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// NewTestLogger returns a logger writing to w, for assertions in tests.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
