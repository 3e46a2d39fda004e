package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved directories the service writes to.
type Paths struct {
	WorkingDir string
	StorageDir string
	LogsDir    string
}

// ResolvePaths turns the configured (possibly relative) directories into
// absolute paths anchored at the current working directory.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return &Paths{
		WorkingDir: wd,
		StorageDir: absFrom(wd, cfg.StorageDir),
		LogsDir:    absFrom(wd, cfg.LogsDir),
	}, nil
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// EnsureDirectories creates every directory in Paths if missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.StorageDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs the resolved directories.
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Resolved application paths",
		slog.String("working_dir", p.WorkingDir),
		slog.String("storage_dir", p.StorageDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
