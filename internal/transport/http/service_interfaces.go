package http

import (
	"context"
	"io"
	"os"

	"dataclean/internal/services"
	"dataclean/pkg/contracts/domain"
)

// CleaningServiceInterface is what the cleaning handler needs from the service layer
type CleaningServiceInterface interface {
	Process(ctx context.Context, filename string, r io.Reader) (*domain.CleaningResult, error)
	OpenArtifact(ctx context.Context, name string) (*os.File, os.FileInfo, error)
}

// HealthServiceInterface is what the health handler needs from the service layer
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}

var (
	_ CleaningServiceInterface = (*services.CleaningService)(nil)
	_ HealthServiceInterface   = (*services.HealthService)(nil)
)
