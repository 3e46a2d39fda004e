package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "dataclean/internal/errors"
	"dataclean/internal/middleware"
)

// UploadField is the multipart field carrying the uploaded file
const UploadField = "file"

// CleaningHandler serves the upload and download endpoints
type CleaningHandler struct {
	service        CleaningServiceInterface
	maxUploadBytes int64
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewCleaningHandler creates a cleaning handler. Upload bodies larger than
// maxUploadBytes are rejected with 413.
func NewCleaningHandler(service CleaningServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CleaningHandler {
	return &CleaningHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "cleaning_handler")),
		errorHandler:   errorHandler,
	}
}

// RegisterRoutes adds the upload and download routes to r
func (h *CleaningHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.ContentTypeValidator(h.errorHandler, "multipart/form-data")).Post("/upload", h.Upload)
	r.Get("/download/{filename}", h.Download)
}

// Upload handles POST /upload
func (h *CleaningHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		h.errorHandler.HandleError(w, r, formFileError(err))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "Upload received",
		slog.String("file_name", header.Filename),
		slog.Int64("size", header.Size))

	result, err := h.service.Process(r.Context(), header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// Download handles GET /download/{filename}
func (h *CleaningHandler) Download(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "filename")
	name, err := url.PathUnescape(raw)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewArtifactNotFoundError(raw))
		return
	}

	f, info, err := h.service.OpenArtifact(r.Context(), name)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name()))

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// formFileError maps multipart parsing failures to API errors.
func formFileError(err error) error {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return err
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return apierrors.MissingFormField(UploadField)
	default:
		return apierrors.InvalidRequestWithError(err)
	}
}
