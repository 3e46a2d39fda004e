package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"dataclean/internal/config"
	"dataclean/internal/dataprocessing"
	"dataclean/internal/infrastructure"
)

// CSVWriter writes cleaned tables into the storage directory.
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{
		paths:  paths,
		logger: infrastructure.WithComponent(logger, "csv_writer"),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to filePath, relative paths resolving into the storage
// directory. The file is written to a temporary name and renamed into place,
// so readers never see a partial file. It returns the final path.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(fullPath)+"-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRecords(tmp, options); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	return fullPath, nil
}

// WriteTableFile writes a cleaned table as CSV under name and returns the
// final path.
func (w *CSVWriter) WriteTableFile(name string, table *dataprocessing.Table) (string, error) {
	headers, records := TableRecords(table)
	return w.WriteCSV(name, WriteOptions{Headers: headers, Records: records})
}

// WriteTable streams a cleaned table as CSV: header row, no index column, no
// byte order mark.
func WriteTable(out io.Writer, table *dataprocessing.Table) error {
	headers, records := TableRecords(table)
	return writeRecords(out, WriteOptions{Headers: headers, Records: records})
}

// TableRecords converts a table into a header row and string records.
func TableRecords(table *dataprocessing.Table) ([]string, [][]string) {
	headers := table.ColumnNames()
	records := make([][]string, table.RowCount())
	for row := range records {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i] = formatCell(col, row)
		}
		records[row] = record
	}
	return headers, records
}

const emptyRecord = "\"\"\n"

func writeRecords(out io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		// A lone empty field would be written as a blank line, which readers skip.
		if len(record) == 1 && record[0] == "" {
			writer.Flush()
			if err := writer.Error(); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
			if _, err := io.WriteString(out, emptyRecord); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
			continue
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// resolvePath places relative paths in the storage directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.paths.StorageDir, filePath)
}

// Path returns where WriteCSV would place filePath
func (w *CSVWriter) Path(filePath string) string {
	return w.resolvePath(filePath)
}
