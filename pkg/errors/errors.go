// Package errors provides structured error and warning handling for the
// whole project. Errors carry stack traces via cockroachdb/errors and can
// attach themselves to zerolog events as structured objects.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("datalens-warning: %v\n", w)
	}
)

// SetWarningHandler replaces the process-wide warning handler. Best-effort
// steps (chart rendering, extended profiling) report failures here instead
// of returning an error to the caller.
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn reports a non-fatal condition through the current warning handler.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// UnsupportedFormatError is returned when the input file extension does not
// map to a known loader.
type UnsupportedFormatError struct {
	Path      string
	Extension string
	Supported []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("datalens: unsupported file format %q for %s. Supported: %v", e.Extension, e.Path, e.Supported)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *UnsupportedFormatError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("extension", e.Extension).
		Strs("supported", e.Supported).
		Str("type", "UnsupportedFormatError")
}

// NewUnsupportedFormatError creates an UnsupportedFormatError with a stack trace.
func NewUnsupportedFormatError(path, ext string, supported []string) error {
	err := &UnsupportedFormatError{Path: path, Extension: ext, Supported: supported}
	return errors.WithStack(err)
}

// DimensionError is returned when two column slices that must align do not.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("datalens: %s: length mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// ValueError indicates an argument value that is invalid for the operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("datalens: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// RenderWarning is emitted when an optional visualization backend fails.
// The run continues with no artifact produced for that chart.
type RenderWarning struct {
	Chart  string
	Column string
	Err    error
}

func (w *RenderWarning) Error() string {
	if w.Column != "" {
		return fmt.Sprintf("failed to render %s for column %q: %v", w.Chart, w.Column, w.Err)
	}
	return fmt.Sprintf("failed to render %s: %v", w.Chart, w.Err)
}

func (w *RenderWarning) Unwrap() error {
	return w.Err
}

// MarshalZerologObject adds structured warning information to a zerolog event.
func (w *RenderWarning) MarshalZerologObject(event *zerolog.Event) {
	event.Str("chart", w.Chart).
		Str("column", w.Column).
		AnErr("cause", w.Err).
		Str("type", "RenderWarning")
}

// NewRenderWarning creates a RenderWarning.
func NewRenderWarning(chart, column string, err error) *RenderWarning {
	return &RenderWarning{Chart: chart, Column: column, Err: err}
}

// ===========================================================================
//
//	cockroachdb/errors passthroughs
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when a loaded table has no usable content.
	ErrEmptyData = New("empty data")

	// ErrNoSuchColumn is returned when a column name is not present in the table.
	ErrNoSuchColumn = New("no such column")
)
