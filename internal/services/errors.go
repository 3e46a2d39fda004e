package services

import (
	apperrors "dataclean/internal/errors"
)

// Cleaning service errors. Every failure returned by CleaningService matches
// one of these with errors.Is.
var (
	ErrUnsupportedFormat = apperrors.NewAppError(apperrors.ErrTypeUnsupportedFormat, "unsupported format", nil)
	ErrParseFailure      = apperrors.NewAppError(apperrors.ErrTypeParseFailure, "parse failure", nil)
	ErrEmptyInput        = apperrors.NewAppError(apperrors.ErrTypeEmptyInput, "empty input", nil)
	ErrArtifactNotFound  = apperrors.NewAppError(apperrors.ErrTypeArtifactNotFound, "artifact not found", nil)
	ErrStorageFailure    = apperrors.NewAppError(apperrors.ErrTypeStorage, "storage failure", nil)
)
