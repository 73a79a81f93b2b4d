package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	cause := stderrors.New("permission denied")

	withCause := NewExportError("failed to save workbook", cause)
	assert.Equal(t, "[EXPORT] failed to save workbook: permission denied", withCause.Error())

	withoutCause := NewMalformedInputError("trade history missing required column", nil)
	assert.Equal(t, "[MALFORMED_INPUT] trade history missing required column", withoutCause.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := NewMissingFileError("data/historical_data.csv", cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeMissingFile, appErr.Type)
}

func TestIsType(t *testing.T) {
	err := NewMissingFileError("absent.csv", nil)

	assert.True(t, IsType(err, ErrTypeMissingFile))
	assert.False(t, IsType(err, ErrTypeExport))
	assert.False(t, IsType(stderrors.New("plain"), ErrTypeMissingFile))
	assert.False(t, IsType(nil, ErrTypeMissingFile))

	// Wrapped AppErrors are still recognized.
	wrapped := fmt.Errorf("load step: %w", err)
	assert.True(t, IsType(wrapped, ErrTypeMissingFile))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewMalformedInputError("missing column", nil).
		WithContext("column", "Closed PnL").
		WithContext("path", "trades.csv")

	assert.Equal(t, "Closed PnL", err.Context["column"])
	assert.Equal(t, "trades.csv", err.Context["path"])
}
