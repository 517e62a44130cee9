package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalens/datalens/pkg/errors"
)

func TestUnsupportedFormatError(t *testing.T) {
	err := errors.NewUnsupportedFormatError("data.docx", ".docx", []string{".csv", ".json"})

	var ufe *errors.UnsupportedFormatError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, ".docx", ufe.Extension)
	assert.Contains(t, err.Error(), "unsupported file format")
	assert.Contains(t, err.Error(), "data.docx")
}

func TestDimensionError(t *testing.T) {
	err := errors.NewDimensionError("contingency", 4, 3)

	var de *errors.DimensionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 4, de.Expected)
	assert.Equal(t, 3, de.Got)
}

func TestValueError(t *testing.T) {
	err := errors.NewValueError("ParseOutlierMethod", "method must be iqr or zscore")

	var ve *errors.ValueError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "ParseOutlierMethod")
}

func TestRenderWarningUnwrap(t *testing.T) {
	cause := errors.New("canvas too small")
	w := errors.NewRenderWarning("histogram", "amount", cause)

	assert.Contains(t, w.Error(), "histogram")
	assert.Contains(t, w.Error(), "amount")
	assert.True(t, errors.Is(w, cause))

	bare := errors.NewRenderWarning("pairplot", "", cause)
	assert.NotContains(t, bare.Error(), "column")
}

func TestWarningHandler(t *testing.T) {
	var captured []error
	errors.SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer errors.SetWarningHandler(nil)

	w := errors.NewRenderWarning("boxplot", "x", errors.New("boom"))
	errors.Warn(w)

	require.Len(t, captured, 1)
	assert.Same(t, error(w), captured[0])
}

func TestWrapKeepsIdentity(t *testing.T) {
	wrapped := errors.Wrap(errors.ErrEmptyData, "loading csv")
	assert.True(t, errors.Is(wrapped, errors.ErrEmptyData))
	assert.Contains(t, wrapped.Error(), "loading csv")
}
