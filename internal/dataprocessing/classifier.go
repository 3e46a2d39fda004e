package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// dropSparseColumns returns the indices of raw columns whose missing fraction
// does not exceed threshold.
func dropSparseColumns(raw *RawTable, threshold float64) []int {
	rows := raw.RowCount()
	kept := make([]int, 0, len(raw.Columns))

	for i, cells := range raw.Cells {
		if rows == 0 {
			kept = append(kept, i)
			continue
		}
		missing := 0
		for _, cell := range cells {
			if !cell.Present {
				missing++
			}
		}
		if float64(missing)/float64(rows) > threshold {
			continue
		}
		kept = append(kept, i)
	}

	return kept
}

// parseNumber interprets a cell as a real number. NaN and hexadecimal forms
// are rejected; infinities parse and are left for outlier masking.
func parseNumber(cell RawCell) (float64, bool) {
	if !cell.Present {
		return 0, false
	}
	s := strings.TrimSpace(cell.Value)
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !isRangeError(err) {
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// isRangeError reports an out-of-range literal; ParseFloat then returns ±Inf.
func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// classifyColumn builds a working column from raw cells. The column is numeric
// when the share of parseable cells strictly exceeds numericShare; unparseable
// cells then become absent. Otherwise every cell is trimmed and blanks become
// the text sentinel.
func classifyColumn(name string, cells []RawCell, numericShare float64) *Column {
	numbers := make([]NullFloat, len(cells))
	parsed := 0
	for i, cell := range cells {
		if v, ok := parseNumber(cell); ok {
			numbers[i] = NullFloat{Float64: v, Valid: true}
			parsed++
		}
	}

	if len(cells) > 0 && float64(parsed)/float64(len(cells)) > numericShare {
		return &Column{Name: name, Kind: KindNumeric, Numbers: numbers}
	}

	texts := make([]string, len(cells))
	for i, cell := range cells {
		if !cell.Present {
			texts[i] = SentinelText
			continue
		}
		texts[i] = strings.TrimSpace(cell.Value)
	}
	return &Column{Name: name, Kind: KindText, Texts: texts}
}
