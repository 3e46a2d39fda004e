package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestRecord_MarshalJSONKeepsColumnOrder(t *testing.T) {
	rec := Record{
		{Name: "zeta", Value: floatPtr(1.5)},
		{Name: "alpha", Value: "N/A"},
		{Name: "mid", Value: (*float64)(nil)},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1.5,"alpha":"N/A","mid":null}`, string(data))
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"b":2,"a":"x","c":null}`), &rec))

	require.Len(t, rec, 3)
	assert.Equal(t, "b", rec[0].Name)
	assert.Equal(t, float64(2), rec[0].Value)
	assert.Equal(t, "a", rec[1].Name)

	v, ok := rec.Get("c")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}

func TestRecord_UnmarshalJSONRejectsArrays(t *testing.T) {
	var rec Record
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &rec))
}

func TestCleaningResult_JSONKeys(t *testing.T) {
	res := CleaningResult{
		TotalRows:          10,
		CleanedRows:        9,
		RowsRemovedPercent: "10.0%",
		Columns:            []string{"a"},
		SampleData:         []Record{{{Name: "a", Value: floatPtr(1)}}},
		DownloadURL:        "http://127.0.0.1:8000/download/cleaned_x.csv",
		CategorySummary:    map[string]string{},
		Plots:              map[string]string{},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	for _, key := range []string{
		"total_rows", "cleaned_rows", "rows_removed_percent", "missing_values",
		"columns", "sample_data", "download_url", "category_summary", "plots",
	} {
		assert.Contains(t, body, key)
	}
	assert.Equal(t, "10.0%", body["rows_removed_percent"])
}
