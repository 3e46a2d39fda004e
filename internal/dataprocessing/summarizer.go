package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"dataclean/pkg/contracts/domain"
)

// CategoryCount is a text value and its number of occurrences.
type CategoryCount struct {
	Value string
	Count int
}

// Report holds the statistics of one cleaning run. It is built once from the
// final table and not modified afterwards.
type Report struct {
	OriginalRows    int
	CleanedRows     int
	RemovedPercent  float64
	MissingValues   int
	Columns         []string
	CategorySummary map[string]string
	Preview         []domain.Record
	// Plots maps column names to PNG data URIs.
	Plots map[string]string
	// PlotError is the render failure that caused Plots to be discarded.
	PlotError error
}

// RemovedPercentString renders RemovedPercent with a percent sign, keeping
// at least one decimal ("0.0%", "12.5%", "33.33%").
func (r *Report) RemovedPercentString() string {
	s := strconv.FormatFloat(r.RemovedPercent, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "%"
}

// ToResult converts the report into the response contract.
func (r *Report) ToResult(downloadURL string) *domain.CleaningResult {
	preview := r.Preview
	if preview == nil {
		preview = []domain.Record{}
	}
	return &domain.CleaningResult{
		TotalRows:          r.OriginalRows,
		CleanedRows:        r.CleanedRows,
		RowsRemovedPercent: r.RemovedPercentString(),
		MissingValues:      r.MissingValues,
		Columns:            r.Columns,
		SampleData:         preview,
		DownloadURL:        downloadURL,
		CategorySummary:    r.CategorySummary,
		Plots:              r.Plots,
	}
}

// removedPercent returns the share of dropped rows in percent, rounded to two
// decimals, and 0 when there were no rows.
func removedPercent(original, cleaned int) float64 {
	if original == 0 {
		return 0
	}
	return round2(float64(original-cleaned) / float64(original) * 100)
}

// countMissing counts numeric absents and text sentinels.
func countMissing(t *Table) int {
	missing := 0
	for _, col := range t.Columns {
		if col.Kind == KindNumeric {
			for _, n := range col.Numbers {
				if !n.Valid {
					missing++
				}
			}
			continue
		}
		for _, s := range col.Texts {
			if s == SentinelText {
				missing++
			}
		}
	}
	return missing
}

// categoryCounts counts the non-sentinel values of a text column in order of
// first occurrence.
func categoryCounts(col *Column) []CategoryCount {
	index := make(map[string]int)
	var counts []CategoryCount
	for _, s := range col.Texts {
		if s == SentinelText {
			continue
		}
		if i, ok := index[s]; ok {
			counts[i].Count++
			continue
		}
		index[s] = len(counts)
		counts = append(counts, CategoryCount{Value: s, Count: 1})
	}
	return counts
}

// modeOf returns the most frequent value; ties go to the lexicographically
// smallest value.
func modeOf(counts []CategoryCount) (CategoryCount, bool) {
	if len(counts) == 0 {
		return CategoryCount{}, false
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count > best.Count || (c.Count == best.Count && c.Value < best.Value) {
			best = c
		}
	}
	return best, true
}

// topCategories returns up to n values by descending count, ties kept in
// order of first occurrence.
func topCategories(counts []CategoryCount, n int) []CategoryCount {
	sorted := make([]CategoryCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// categorySummary describes the mode of every text column that has at least
// one non-sentinel value.
func categorySummary(t *Table) map[string]string {
	summary := make(map[string]string)
	for _, col := range t.Columns {
		if col.Kind != KindText {
			continue
		}
		if mode, ok := modeOf(categoryCounts(col)); ok {
			summary[col.Name] = fmt.Sprintf("%s (%d times)", mode.Value, mode.Count)
		}
	}
	return summary
}

// buildPreview returns the first n rows as ordered records.
func buildPreview(t *Table, n int) []domain.Record {
	if n > t.Rows {
		n = t.Rows
	}
	preview := make([]domain.Record, n)
	for row := 0; row < n; row++ {
		rec := make(domain.Record, len(t.Columns))
		for i, col := range t.Columns {
			rec[i] = domain.Field{Name: col.Name, Value: col.Value(row)}
		}
		preview[row] = rec
	}
	return preview
}
