package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "dataclean/internal/errors"
)

// Format identifies a supported input file type.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}

// FormatFromName maps a file name to its format by extension, ignoring case.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// missingTokens are the cell values read as missing, in addition to blanks.
// This is the default NA vocabulary of common dataframe readers.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// newRawCell classifies a cell value as present or missing.
func newRawCell(value string) RawCell {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return RawCell{Value: value}
	}
	if _, ok := missingTokens[trimmed]; ok {
		return RawCell{Value: value}
	}
	return RawCell{Value: value, Present: true}
}

// ReadTable parses r according to format.
func ReadTable(r io.Reader, format Format) (*RawTable, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return nil, apperrors.NewUnsupportedFormatError(format.String())
	}
}

// ReadCSV parses comma-separated text with a header row. A UTF-8 or UTF-16
// byte order mark is honoured and stripped. Short records are padded with
// missing cells; records longer than the header are rejected.
func ReadCSV(r io.Reader) (*RawTable, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewParseError(errors.New("no columns to parse from file"))
	}
	if err != nil {
		return nil, apperrors.NewParseError(err)
	}

	names := uniqueColumnNames(header)
	table := &RawTable{
		Columns: names,
		Cells:   make([][]RawCell, len(names)),
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewParseError(err)
		}
		if len(record) > len(names) {
			line, _ := reader.FieldPos(0)
			return nil, apperrors.NewParseError(
				fmt.Errorf("line %d: expected %d fields, saw %d", line, len(names), len(record)))
		}
		appendRow(table, record)
	}

	return table, nil
}

// ReadXLSX parses the first worksheet of a workbook, using its first row as
// the header. Cells are read as raw values, so numbers keep full precision
// regardless of display formatting.
func ReadXLSX(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParseError(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParseError(errors.New("workbook has no worksheets"))
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParseError(err)
	}
	if len(rows) == 0 {
		return &RawTable{}, nil
	}

	// excelize trims trailing empty cells, so the widest row sets the width.
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	header := make([]string, width)
	copy(header, rows[0])

	names := uniqueColumnNames(header)
	table := &RawTable{
		Columns: names,
		Cells:   make([][]RawCell, len(names)),
	}
	for _, row := range rows[1:] {
		appendRow(table, row)
	}

	return table, nil
}

// appendRow adds one record, padding missing trailing cells.
func appendRow(table *RawTable, record []string) {
	for i := range table.Columns {
		if i < len(record) {
			table.Cells[i] = append(table.Cells[i], newRawCell(record[i]))
		} else {
			table.Cells[i] = append(table.Cells[i], RawCell{})
		}
	}
}

// uniqueColumnNames names blank headers "Unnamed: <index>" and suffixes
// repeated names with ".1", ".2", ... so every column is addressable.
func uniqueColumnNames(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]struct{}, len(header))
	counts := make(map[string]int, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		candidate := name
		for {
			if _, taken := used[candidate]; !taken {
				break
			}
			counts[name]++
			candidate = name + "." + strconv.Itoa(counts[name])
		}

		used[candidate] = struct{}{}
		names[i] = candidate
	}

	return names
}
