package testutil

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// CSV joins rows of already-escaped fields into CSV text with a trailing newline.
func CSV(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

// XLSX builds a workbook whose first sheet holds rows, returned as file bytes.
// Empty strings leave the cell unset.
func XLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			if s, ok := v.(string); ok && s == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// NumericColumnCSV builds a two-column CSV ("id", name) from the given values.
func NumericColumnCSV(name string, values ...string) string {
	rows := make([]string, 0, len(values)+1)
	rows = append(rows, "id,"+name)
	for i, v := range values {
		rows = append(rows, strings.Join([]string{strconv.Itoa(i + 1), v}, ","))
	}
	return CSV(rows...)
}
