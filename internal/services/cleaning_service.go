package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"dataclean/internal/dataprocessing"
	apperrors "dataclean/internal/errors"
	"dataclean/internal/exporter"
	"dataclean/internal/files"
	"dataclean/internal/infrastructure"
	"dataclean/internal/validation"
	"dataclean/pkg/contracts/domain"
)

// CleaningService runs uploads through the cleaning pipeline and stores the
// cleaned artifact next to the upload.
type CleaningService struct {
	validator     *validation.FileValidator
	store         *files.Store
	cleaner       *dataprocessing.Cleaner
	writer        *exporter.CSVWriter
	metrics       *infrastructure.CleaningMetrics
	publicBaseURL string
	logger        *slog.Logger
}

// FileReport is the outcome of cleaning a local file.
type FileReport struct {
	Source string                 `json:"source"`
	Output string                 `json:"output"`
	Result *domain.CleaningResult `json:"result"`
}

// NewCleaningService creates a cleaning service. Cleaned files are written by
// writer; download URLs are built from publicBaseURL. metrics may be nil.
func NewCleaningService(
	store *files.Store,
	cleaner *dataprocessing.Cleaner,
	writer *exporter.CSVWriter,
	publicBaseURL string,
	metrics *infrastructure.CleaningMetrics,
	logger *slog.Logger,
) *CleaningService {
	logger = infrastructure.WithComponent(logger, "cleaning_service")
	return &CleaningService{
		validator:     validation.NewFileValidator(logger),
		store:         store,
		cleaner:       cleaner,
		writer:        writer,
		metrics:       metrics,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Process stores an upload verbatim, cleans it and writes the cleaned CSV.
// The extension is checked before anything is stored.
func (s *CleaningService) Process(ctx context.Context, filename string, r io.Reader) (*domain.CleaningResult, error) {
	start := time.Now()
	ctx, span := infrastructure.StartSpan(ctx, "CleaningService.Process",
		attribute.String("file.name", files.BaseName(filename)))
	defer span.End()

	format, err := s.validator.ValidateUploadName(filename)
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}

	path, err := s.store.SaveUpload(filename, r)
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}

	result, cleanedName, err := s.cleanFile(ctx, path, filename, format)
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}

	report := result.Report
	s.metrics.RecordCleaningRun(ctx, infrastructure.OutcomeSuccess, report.OriginalRows, report.CleanedRows, time.Since(start))

	s.logger.InfoContext(ctx, "Upload cleaned",
		slog.String("file_name", files.BaseName(filename)),
		slog.String("artifact", cleanedName),
		slog.Int("total_rows", report.OriginalRows),
		slog.Int("cleaned_rows", report.CleanedRows),
		slog.Duration("duration", time.Since(start)))

	return report.ToResult(s.DownloadURL(cleanedName)), nil
}

// CleanFile cleans a file from the local file system and writes the cleaned
// CSV through the service's writer. Nothing is copied into the store.
func (s *CleaningService) CleanFile(ctx context.Context, path string) (*FileReport, error) {
	start := time.Now()
	ctx, span := infrastructure.StartSpan(ctx, "CleaningService.CleanFile",
		attribute.String("file.path", path))
	defer span.End()

	format, err := s.validator.ValidateInputFile(path)
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}

	result, cleanedName, err := s.cleanFile(ctx, path, path, format)
	if err != nil {
		return nil, s.fail(ctx, err, start)
	}

	report := result.Report
	s.metrics.RecordCleaningRun(ctx, infrastructure.OutcomeSuccess, report.OriginalRows, report.CleanedRows, time.Since(start))

	return &FileReport{
		Source: path,
		Output: s.writer.Path(cleanedName),
		Result: report.ToResult(""),
	}, nil
}

// OpenArtifact opens a stored file for download.
func (s *CleaningService) OpenArtifact(ctx context.Context, name string) (*os.File, os.FileInfo, error) {
	f, info, err := s.store.Open(name)
	if err != nil {
		s.logger.DebugContext(ctx, "Artifact not found", slog.String("file_name", name))
		return nil, nil, err
	}
	return f, info, nil
}

// DownloadURL returns the public URL of a stored artifact
func (s *CleaningService) DownloadURL(name string) string {
	return s.publicBaseURL + "/download/" + url.PathEscape(name)
}

// cleanFile parses the file at path, cleans it and writes the cleaned CSV
// named after uploadName.
func (s *CleaningService) cleanFile(ctx context.Context, path, uploadName string, format dataprocessing.Format) (*dataprocessing.Result, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", apperrors.NewStorageError("failed to open stored upload", err)
	}
	raw, err := dataprocessing.ReadTable(f, format)
	f.Close()
	if err != nil {
		return nil, "", err
	}

	result, err := s.cleaner.Clean(ctx, raw)
	if err != nil {
		return nil, "", err
	}

	if perr := result.Report.PlotError; perr != nil {
		column := ""
		var appErr *apperrors.AppError
		if errors.As(perr, &appErr) {
			column, _ = appErr.Context["column"].(string)
		}
		s.metrics.RecordPlotFailure(ctx, column)
	}

	cleanedName := files.CleanedName(uploadName)
	if _, err := s.writer.WriteTableFile(cleanedName, result.Table); err != nil {
		return nil, "", apperrors.NewStorageError("failed to write cleaned file", err)
	}

	return result, cleanedName, nil
}

// fail records the failed run and passes err through.
func (s *CleaningService) fail(ctx context.Context, err error, start time.Time) error {
	outcome := outcomeFor(err)
	infrastructure.RecordError(ctx, err)
	s.metrics.RecordCleaningRun(ctx, outcome, 0, 0, time.Since(start))
	s.logger.WarnContext(ctx, "Cleaning failed",
		slog.String("outcome", outcome),
		slog.String("error", err.Error()))
	return err
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return infrastructure.OutcomeUnsupportedFormat
	case errors.Is(err, ErrParseFailure):
		return infrastructure.OutcomeParseFailure
	case errors.Is(err, ErrEmptyInput):
		return infrastructure.OutcomeEmptyInput
	default:
		return infrastructure.OutcomeStorageFailure
	}
}
