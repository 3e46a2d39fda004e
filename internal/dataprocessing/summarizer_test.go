package dataprocessing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemovedPercent(t *testing.T) {
	tests := []struct {
		name       string
		orig, kept int
		want       float64
		wantString string
	}{
		{"no rows", 0, 0, 0, "0.0%"},
		{"nothing removed", 7, 7, 0, "0.0%"},
		{"tenth removed", 10, 9, 10, "10.0%"},
		{"third removed", 3, 2, 33.33, "33.33%"},
		{"two thirds removed", 3, 1, 66.67, "66.67%"},
		{"eighth removed", 8, 7, 12.5, "12.5%"},
		{"all removed", 4, 0, 100, "100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Report{RemovedPercent: removedPercent(tt.orig, tt.kept)}
			assert.Equal(t, tt.want, r.RemovedPercent)
			assert.Equal(t, tt.wantString, r.RemovedPercentString())
		})
	}
}

func TestCountMissing(t *testing.T) {
	nan := math.NaN()
	table := &Table{
		Rows: 3,
		Columns: []*Column{
			{Name: "n", Kind: KindNumeric, Numbers: numbers(nan, 1, nan)},
			{Name: "t", Kind: KindText, Texts: []string{SentinelText, "x", "y"}},
		},
	}

	assert.Equal(t, 3, countMissing(table))
}

func TestModeOf(t *testing.T) {
	t.Run("highest count wins", func(t *testing.T) {
		col := &Column{Kind: KindText, Texts: []string{"b", "a", "b", SentinelText, SentinelText, SentinelText}}
		mode, ok := modeOf(categoryCounts(col))
		require.True(t, ok)
		assert.Equal(t, CategoryCount{Value: "b", Count: 2}, mode)
	})

	t.Run("tie goes to smallest value", func(t *testing.T) {
		col := &Column{Kind: KindText, Texts: []string{"pear", "apple", "pear", "apple", "fig"}}
		mode, ok := modeOf(categoryCounts(col))
		require.True(t, ok)
		assert.Equal(t, CategoryCount{Value: "apple", Count: 2}, mode)
	})

	t.Run("only sentinels", func(t *testing.T) {
		col := &Column{Kind: KindText, Texts: []string{SentinelText}}
		_, ok := modeOf(categoryCounts(col))
		assert.False(t, ok)
	})
}

func TestTopCategories(t *testing.T) {
	counts := []CategoryCount{
		{"c", 1}, {"a", 3}, {"d", 1}, {"b", 3}, {"e", 2},
	}

	assert.Equal(t, []CategoryCount{{"a", 3}, {"b", 3}, {"e", 2}}, topCategories(counts, 3))
	assert.Equal(t, []CategoryCount{{"a", 3}, {"b", 3}, {"e", 2}, {"c", 1}, {"d", 1}}, topCategories(counts, 10))
	// input order is preserved
	assert.Equal(t, "c", counts[0].Value)
}

func TestCategorySummary(t *testing.T) {
	table := &Table{
		Rows: 4,
		Columns: []*Column{
			{Name: "n", Kind: KindNumeric, Numbers: numbers(1, 2, 3, 4)},
			{Name: "city", Kind: KindText, Texts: []string{"Basra", "Erbil", "Basra", SentinelText}},
			{Name: "blank", Kind: KindText, Texts: []string{SentinelText, SentinelText, SentinelText, SentinelText}},
		},
	}

	assert.Equal(t, map[string]string{"city": "Basra (2 times)"}, categorySummary(table))
}

func TestBuildPreview(t *testing.T) {
	nan := math.NaN()
	table := &Table{
		Rows: 3,
		Columns: []*Column{
			{Name: "z", Kind: KindNumeric, Numbers: numbers(1.5, nan, 3)},
			{Name: "a", Kind: KindText, Texts: []string{"x", SentinelText, "y"}},
		},
	}

	preview := buildPreview(table, 2)
	require.Len(t, preview, 2)

	data, err := json.Marshal(preview)
	require.NoError(t, err)
	assert.Equal(t, `[{"z":1.5,"a":"x"},{"z":null,"a":"N/A"}]`, string(data))

	assert.Len(t, buildPreview(table, 5), 3)
	assert.Empty(t, buildPreview(table, 0))
}

func TestReport_ToResult(t *testing.T) {
	report := &Report{
		OriginalRows:    10,
		CleanedRows:     9,
		RemovedPercent:  10,
		MissingValues:   2,
		Columns:         []string{"id"},
		CategorySummary: map[string]string{},
		Plots:           map[string]string{},
	}

	result := report.ToResult("http://127.0.0.1:8000/download/cleaned_x.csv")

	assert.Equal(t, 10, result.TotalRows)
	assert.Equal(t, 9, result.CleanedRows)
	assert.Equal(t, "10.0%", result.RowsRemovedPercent)
	assert.Equal(t, 2, result.MissingValues)
	assert.Equal(t, "http://127.0.0.1:8000/download/cleaned_x.csv", result.DownloadURL)
	assert.NotNil(t, result.SampleData)
}
