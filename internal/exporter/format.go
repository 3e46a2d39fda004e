package exporter

import (
	"strconv"

	"dataclean/internal/dataprocessing"
)

// formatFloat renders the shortest decimal form that reads back as f.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatCell renders row i of col; absent numbers become empty cells.
func formatCell(col *dataprocessing.Column, i int) string {
	if col.Kind != dataprocessing.KindNumeric {
		return col.Texts[i]
	}
	n := col.Numbers[i]
	if !n.Valid {
		return ""
	}
	return formatFloat(n.Float64)
}
