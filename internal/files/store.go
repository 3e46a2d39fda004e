package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dataclean/internal/config"
	apperrors "dataclean/internal/errors"
	"dataclean/internal/infrastructure"
)

// CleanedPrefix prefixes the name of every cleaned artifact.
const CleanedPrefix = "cleaned_"

// Store keeps uploads and cleaned artifacts in one flat directory, addressed
// by file name. Writing a name that already exists replaces the file.
type Store struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewStore creates a new store on paths.StorageDir
func NewStore(paths *config.Paths, logger *slog.Logger) *Store {
	return &Store{
		paths:  paths,
		logger: infrastructure.WithComponent(logger, "file_store"),
	}
}

// BaseName strips any directory part from a client supplied file name,
// accepting both slash and backslash separators.
func BaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// CleanedName returns the artifact name for an upload: "cleaned_<stem>.csv".
func CleanedName(uploadName string) string {
	base := BaseName(uploadName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return CleanedPrefix + stem + ".csv"
}

// SaveUpload copies r into the store under the base name of name and
// returns the stored path. An existing file of the same name is replaced.
func (s *Store) SaveUpload(name string, r io.Reader) (string, error) {
	base := BaseName(name)
	if !validName(base) {
		return "", apperrors.NewStorageError(fmt.Sprintf("invalid upload name %q", name), nil)
	}

	if err := os.MkdirAll(s.paths.StorageDir, 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create storage directory", err)
	}

	target := filepath.Join(s.paths.StorageDir, base)
	tmp, err := os.CreateTemp(s.paths.StorageDir, ".upload-*")
	if err != nil {
		return "", apperrors.NewStorageError("failed to create upload file", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", apperrors.NewStorageError("failed to write upload", err)
	}
	if err := tmp.Close(); err != nil {
		return "", apperrors.NewStorageError("failed to write upload", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", apperrors.NewStorageError("failed to store upload", err)
	}

	s.logger.Info("Upload stored",
		slog.String("file_name", base),
		slog.Int64("size_bytes", written))

	return target, nil
}

// Open opens a stored file for reading. Names carrying a directory part or
// naming anything but a regular file are reported as not found.
func (s *Store) Open(name string) (*os.File, os.FileInfo, error) {
	if !validName(name) || BaseName(name) != name {
		return nil, nil, apperrors.NewArtifactNotFoundError(name)
	}

	path := filepath.Join(s.paths.StorageDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, nil, apperrors.NewArtifactNotFoundError(name)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewArtifactNotFoundError(name)
	}
	return f, info, nil
}

// Exists reports whether name is a stored regular file
func (s *Store) Exists(name string) bool {
	f, _, err := s.Open(name)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// validName expects a name without directory part.
func validName(name string) bool {
	return name != "" && name != "." && name != ".."
}
