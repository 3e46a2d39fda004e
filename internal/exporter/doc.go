// Package exporter writes cleaned tables as CSV files.
//
// CSVWriter resolves relative names into the storage directory and replaces
// files atomically. Numeric cells use the shortest decimal form that reads
// back as the same value, and absent numeric cells are written empty.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	path, err := writer.WriteTableFile("cleaned_sales.csv", result.Table)
package exporter
