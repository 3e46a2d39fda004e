package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewEmptyInputError(),
			want: "[EMPTY_INPUT] Uploaded file is empty",
		},
		{
			name: "with cause",
			err:  NewStorageError("failed to save upload", errors.New("disk full")),
			want: "[STORAGE_FAILURE] failed to save upload: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_IsMatchesByType(t *testing.T) {
	sentinel := NewAppError(ErrTypeParseFailure, "failed to read file", nil)

	err := fmt.Errorf("cleaning sales.csv: %w", NewParseError(errors.New("bad quote")))

	assert.True(t, errors.Is(err, sentinel))
	assert.False(t, errors.Is(err, NewEmptyInputError()))

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to read file: bad quote", appErr.Message)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewStorageError("failed to write", cause)

	assert.ErrorIs(t, err, cause)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{"unsupported format", NewUnsupportedFormatError("notes.txt"), ErrTypeUnsupportedFormat, "Only CSV or Excel files are allowed"},
		{"parse without cause", NewParseError(nil), ErrTypeParseFailure, "Failed to read file"},
		{"empty input", NewEmptyInputError(), ErrTypeEmptyInput, "Uploaded file is empty"},
		{"plot render", NewPlotRenderError("price", errors.New("boom")), ErrTypePlotRender, `failed to render plot for "price"`},
		{"artifact not found", NewArtifactNotFoundError("cleaned_x.csv"), ErrTypeArtifactNotFound, "File not found"},
		{"config", NewConfigError("bad config", nil), ErrTypeConfig, "bad config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeStorage, Message: "x"}
	err.WithContext("path", "/tmp/a").WithContext("size", 3)

	assert.Equal(t, "/tmp/a", err.Context["path"])
	assert.Equal(t, 3, err.Context["size"])
}
