package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeParseFailure      ErrorType = "PARSE_FAILURE"
	ErrTypeEmptyInput        ErrorType = "EMPTY_INPUT"
	ErrTypePlotRender        ErrorType = "PLOT_RENDER_FAILURE"
	ErrTypeArtifactNotFound  ErrorType = "ARTIFACT_NOT_FOUND"
	ErrTypeStorage           ErrorType = "STORAGE_FAILURE"
	ErrTypeConfig            ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type, so any
// failure matches the package-level sentinel of its kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewUnsupportedFormatError rejects a file by its name before anything is stored.
func NewUnsupportedFormatError(filename string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat, "Only CSV or Excel files are allowed", nil).
		WithContext("filename", filename)
}

// NewParseError reports a file that could not be read as a table.
func NewParseError(cause error) *AppError {
	msg := "Failed to read file"
	if cause != nil {
		msg = fmt.Sprintf("Failed to read file: %v", cause)
	}
	return NewAppError(ErrTypeParseFailure, msg, cause)
}

// NewEmptyInputError reports a table without data rows.
func NewEmptyInputError() *AppError {
	return NewAppError(ErrTypeEmptyInput, "Uploaded file is empty", nil)
}

// NewPlotRenderError reports a chart that could not be drawn.
func NewPlotRenderError(column string, cause error) *AppError {
	return NewAppError(ErrTypePlotRender, fmt.Sprintf("failed to render plot for %q", column), cause).
		WithContext("column", column)
}

// NewArtifactNotFoundError reports a missing download.
func NewArtifactNotFoundError(name string) *AppError {
	return NewAppError(ErrTypeArtifactNotFound, "File not found", nil).
		WithContext("filename", name)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
