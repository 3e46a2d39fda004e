package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclean/internal/dataprocessing"
	apperrors "dataclean/internal/errors"
	"dataclean/internal/shared/testutil"
)

func TestFileValidator_ValidateUploadName(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    dataprocessing.Format
		wantErr bool
	}{
		{name: "csv", file: "data.csv", want: dataprocessing.FormatCSV},
		{name: "upper case csv", file: "DATA.CSV", want: dataprocessing.FormatCSV},
		{name: "xlsx", file: "book.xlsx", want: dataprocessing.FormatXLSX},
		{name: "mixed case xlsx", file: "Book.XLSX", want: dataprocessing.FormatXLSX},
		{name: "txt", file: "notes.txt", wantErr: true},
		{name: "legacy xls", file: "old.xls", wantErr: true},
		{name: "no extension", file: "README", wantErr: true},
		{name: "tilde dollar prefix", file: "~$budget.csv", want: dataprocessing.FormatCSV},
		{name: "double dot in stem", file: "report..v2.csv", want: dataprocessing.FormatCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, handler := testutil.NewTestLogger(t)
			validator := NewFileValidator(logger)

			format, err := validator.ValidateUploadName(tt.file)
			if tt.wantErr {
				var appErr *apperrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, apperrors.ErrTypeUnsupportedFormat, appErr.Type)
				assert.Equal(t, dataprocessing.FormatUnknown, format)
				assert.NotZero(t, handler.Count())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestFileValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(file, []byte("a\n1\n"), 0644))

	validator := NewFileValidator(nil)

	assert.NoError(t, validator.ValidateFile(file))

	err := validator.ValidateFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	err = validator.ValidateFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestFileValidator_ValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	csvFile := filepath.Join(dir, "data.csv")
	txtFile := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(csvFile, []byte("a\n1\n"), 0644))
	require.NoError(t, os.WriteFile(txtFile, []byte("a\n1\n"), 0644))

	validator := NewFileValidator(nil)

	format, err := validator.ValidateInputFile(csvFile)
	require.NoError(t, err)
	assert.Equal(t, dataprocessing.FormatCSV, format)

	_, err = validator.ValidateInputFile(txtFile)
	assert.Error(t, err)

	_, err = validator.ValidateInputFile(filepath.Join(dir, "absent.xlsx"))
	assert.Error(t, err)

	lockFile := filepath.Join(dir, "~$book.xlsx")
	require.NoError(t, os.WriteFile(lockFile, []byte("lock"), 0644))
	format, err = validator.ValidateInputFile(lockFile)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeUnsupportedFormat, appErr.Type)
	assert.Equal(t, dataprocessing.FormatUnknown, format)
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	validator := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, validator.ValidateOutputDirectory(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file removed")

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, validator.ValidateOutputDirectory(filepath.Join(file, "sub")))
}
