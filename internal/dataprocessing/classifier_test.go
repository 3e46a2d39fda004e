package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cells(values ...string) []RawCell {
	out := make([]RawCell, len(values))
	for i, v := range values {
		out[i] = newRawCell(v)
	}
	return out
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"42", 42, true},
		{" 42 ", 42, true},
		{"-3.5", -3.5, true},
		{"1e3", 1000, true},
		{".5", 0.5, true},
		{"abc", 0, false},
		{"1,000", 0, false},
		{"0x10", 0, false},
		{"1_000", 0, false},
		{"NaN", 0, false},
		{"nan", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(newRawCell(tt.in))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseNumber_Infinity(t *testing.T) {
	for _, in := range []string{"inf", "-Infinity", "1e400"} {
		v, ok := parseNumber(newRawCell(in))
		require.True(t, ok, in)
		assert.True(t, math.IsInf(v, 0), in)
	}
}

func TestClassifyColumn(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		wantKind ColumnKind
	}{
		{
			name:     "all numeric",
			values:   []string{"1", "2", "3"},
			wantKind: KindNumeric,
		},
		{
			name:     "six of ten parse",
			values:   []string{"1", "2", "3", "4", "5", "6", "a", "b", "c", "d"},
			wantKind: KindNumeric,
		},
		{
			name:     "exactly half parse",
			values:   []string{"1", "2", "3", "4", "5", "a", "b", "c", "d", "e"},
			wantKind: KindText,
		},
		{
			name:     "blanks count against the share",
			values:   []string{"1", "2", "", "", ""},
			wantKind: KindText,
		},
		{
			name:     "entirely blank",
			values:   []string{"", "NA", " "},
			wantKind: KindText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := classifyColumn("c", cells(tt.values...), 0.5)
			assert.Equal(t, tt.wantKind, col.Kind)
			assert.Equal(t, len(tt.values), col.Len())
		})
	}
}

func TestClassifyColumn_NumericMarksFailuresAbsent(t *testing.T) {
	col := classifyColumn("price", cells("10", "oops", "2.5", "", "7"), 0.5)
	require.Equal(t, KindNumeric, col.Kind)

	assert.Equal(t, []NullFloat{
		{Float64: 10, Valid: true},
		{},
		{Float64: 2.5, Valid: true},
		{},
		{Float64: 7, Valid: true},
	}, col.Numbers)
	assert.Nil(t, col.Texts)
}

func TestClassifyColumn_TextTrimsAndFillsSentinel(t *testing.T) {
	col := classifyColumn("city", cells(" Basra ", "", "NULL", "Mosul", "12"), 0.5)
	require.Equal(t, KindText, col.Kind)

	assert.Equal(t, []string{"Basra", SentinelText, SentinelText, "Mosul", "12"}, col.Texts)
	for i := range col.Texts {
		assert.False(t, col.Absent(i))
	}
}

func TestDropSparseColumns(t *testing.T) {
	raw := &RawTable{
		Columns: []string{"full", "seventy", "eighty", "empty"},
		Cells: [][]RawCell{
			cells("1", "2", "3", "4", "5", "6", "7", "8", "9", "10"),
			cells("1", "2", "3", "", "", "", "", "", "", ""),
			cells("1", "2", "", "", "", "", "", "", "", ""),
			cells("", "", "", "", "", "", "", "", "", ""),
		},
	}

	assert.Equal(t, []int{0, 1}, dropSparseColumns(raw, 0.7))
	assert.Equal(t, []int{0, 1, 2, 3}, dropSparseColumns(raw, 1))
}

func TestDropSparseColumns_NoRows(t *testing.T) {
	raw := &RawTable{Columns: []string{"a", "b"}, Cells: [][]RawCell{nil, nil}}
	assert.Equal(t, []int{0, 1}, dropSparseColumns(raw, 0.7))
}
