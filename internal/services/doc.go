// Package services implements the business logic between the HTTP handlers
// and the cleaning pipeline.
//
// CleaningService takes an upload through validation, storage, parsing,
// cleaning and export, recording metrics for every outcome. Its errors are
// *errors.AppError values that match the sentinels in errors.go:
//
//	result, err := svc.Process(ctx, header.Filename, file)
//	switch {
//	case errors.Is(err, services.ErrUnsupportedFormat):
//	    // 400
//	case errors.Is(err, services.ErrEmptyInput):
//	    // 400
//	}
//
// HealthService reports liveness, readiness of the storage directory and
// build information.
package services
