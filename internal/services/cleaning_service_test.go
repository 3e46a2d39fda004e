package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataclean/internal/charts"
	"dataclean/internal/config"
	"dataclean/internal/dataprocessing"
	"dataclean/internal/exporter"
	"dataclean/internal/files"
	"dataclean/internal/infrastructure"
	"dataclean/internal/shared/testutil"
)

type serviceFixture struct {
	service *CleaningService
	dir     string
	metrics http.Handler
	logs    *testutil.BufferedSlogHandler
}

func newServiceFixture(t *testing.T, renderer dataprocessing.PlotRenderer) *serviceFixture {
	t.Helper()

	logger, logs := testutil.NewTestLogger(t)
	dir := filepath.Join(t.TempDir(), "uploads")
	paths := &config.Paths{StorageDir: dir}

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { providers.Shutdown(context.Background()) })

	metrics, err := infrastructure.CreateCleaningMetrics(providers.Meter)
	require.NoError(t, err)

	svc := NewCleaningService(
		files.NewStore(paths, logger),
		dataprocessing.NewCleaner(config.DefaultCleaning(), renderer, logger),
		exporter.NewCSVWriter(paths, logger),
		"http://127.0.0.1:8000/",
		metrics,
		logger,
	)

	return &serviceFixture{service: svc, dir: dir, metrics: providers.PrometheusHTTP, logs: logs}
}

func (f *serviceFixture) scrape(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	f.metrics.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

type panickingRenderer struct{}

func (panickingRenderer) Histogram(string, []float64) ([]byte, error) { panic("no canvas") }

func (panickingRenderer) BarChart(string, []string, []int) ([]byte, error) { panic("no canvas") }

func TestCleaningService_ProcessCSV(t *testing.T) {
	f := newServiceFixture(t, charts.NewRenderer())

	body := testutil.CSV(
		"id,value,city",
		"1,1,Basra", "2,2,", "3,3,Erbil", "4,4e10,Basra", "5,5,",
		"6,6,Mosul", "7,7,", "8,8,Basra", "9,9,", "10,10,Erbil",
	)

	result, err := f.service.Process(context.Background(), "sales.csv", strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalRows)
	assert.Equal(t, 10, result.CleanedRows)
	assert.Equal(t, "0.0%", result.RowsRemovedPercent)
	assert.Equal(t, 4, result.MissingValues)
	assert.Equal(t, []string{"id", "value", "city"}, result.Columns)
	assert.Equal(t, map[string]string{"city": "Basra (3 times)"}, result.CategorySummary)
	assert.Equal(t, "http://127.0.0.1:8000/download/cleaned_sales.csv", result.DownloadURL)
	require.Len(t, result.SampleData, 5)

	v, ok := result.SampleData[3].Get("value")
	require.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, 6.0, *(v.(*float64)))

	require.Len(t, result.Plots, 3)
	for name, uri := range result.Plots {
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), name)
	}

	upload, err := os.ReadFile(filepath.Join(f.dir, "sales.csv"))
	require.NoError(t, err)
	assert.Equal(t, body, string(upload), "upload stored verbatim")

	cleaned, err := os.ReadFile(filepath.Join(f.dir, "cleaned_sales.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(cleaned)), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "id,value,city", lines[0])
	assert.Equal(t, "4,6,Basra", lines[4])
	assert.Equal(t, "5,5,N/A", lines[5])

	metrics := f.scrape(t)
	assert.Contains(t, metrics, `outcome="success"`)
	assert.Regexp(t, `rows_ingested_total(\{[^}]*\})? 10\n`, metrics)
	testutil.AssertNoErrors(t, f.logs)
}

func TestCleaningService_ProcessXLSX(t *testing.T) {
	f := newServiceFixture(t, nil)

	data := testutil.XLSX(t, [][]any{
		{"product", "price"},
		{"tea", 2.5},
		{"coffee", 4},
		{"tea", -3},
	})

	result, err := f.service.Process(context.Background(), "Prices.XLSX", bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, "http://127.0.0.1:8000/download/cleaned_Prices.csv", result.DownloadURL)
	assert.Equal(t, "tea (2 times)", result.CategorySummary["product"])
	assert.Empty(t, result.Plots)

	cleaned, err := os.ReadFile(filepath.Join(f.dir, "cleaned_Prices.csv"))
	require.NoError(t, err)
	assert.Equal(t, "product,price\ntea,2.5\ncoffee,4\ntea,3.25\n", string(cleaned))
}

func TestCleaningService_UnsupportedFormatStoresNothing(t *testing.T) {
	f := newServiceFixture(t, nil)

	_, err := f.service.Process(context.Background(), "notes.txt", strings.NewReader("a,b\n1,2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, statErr := os.Stat(f.dir)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "storage directory untouched")

	assert.Contains(t, f.scrape(t), `outcome="unsupported_format"`)
}

func TestCleaningService_AcceptsUnusualCSVNames(t *testing.T) {
	f := newServiceFixture(t, nil)

	tests := []struct {
		upload  string
		cleaned string
	}{
		{upload: "report..v2.csv", cleaned: "cleaned_report..v2.csv"},
		{upload: "~$budget.csv", cleaned: "cleaned_~$budget.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.upload, func(t *testing.T) {
			result, err := f.service.Process(context.Background(), tt.upload, strings.NewReader("a\n1\n2\n"))
			require.NoError(t, err)
			assert.Equal(t, 2, result.CleanedRows)
			assert.Equal(t, "http://127.0.0.1:8000/download/"+tt.cleaned, result.DownloadURL)

			file, _, err := f.service.OpenArtifact(context.Background(), tt.cleaned)
			require.NoError(t, err)
			file.Close()
		})
	}
}

func TestCleaningService_EmptyInput(t *testing.T) {
	f := newServiceFixture(t, nil)

	_, err := f.service.Process(context.Background(), "empty.csv", strings.NewReader("a,b\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, statErr := os.Stat(filepath.Join(f.dir, "cleaned_empty.csv"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
	assert.Contains(t, f.scrape(t), `outcome="empty_input"`)
}

func TestCleaningService_ParseFailure(t *testing.T) {
	f := newServiceFixture(t, nil)

	tests := []struct {
		name string
		file string
		body string
	}{
		{"empty csv", "blank.csv", ""},
		{"ragged csv", "ragged.csv", "a\n1,2\n"},
		{"corrupt workbook", "broken.xlsx", "this is not a zip archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Process(context.Background(), tt.file, strings.NewReader(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParseFailure)
		})
	}
}

func TestCleaningService_PlotFailureStillSucceeds(t *testing.T) {
	f := newServiceFixture(t, panickingRenderer{})

	result, err := f.service.Process(context.Background(), "data.csv",
		strings.NewReader(testutil.NumericColumnCSV("v", "1", "2", "3")))
	require.NoError(t, err)

	assert.NotNil(t, result.Plots)
	assert.Empty(t, result.Plots)
	assert.Contains(t, f.scrape(t), "plot_failures_total")
}

func TestCleaningService_OpenArtifact(t *testing.T) {
	f := newServiceFixture(t, nil)

	_, err := f.service.Process(context.Background(), "data.csv",
		strings.NewReader(testutil.NumericColumnCSV("v", "1", "2")))
	require.NoError(t, err)

	file, info, err := f.service.OpenArtifact(context.Background(), "cleaned_data.csv")
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "id,v\n1,1\n2,2\n", string(data))
	assert.Equal(t, int64(len(data)), info.Size())

	_, _, err = f.service.OpenArtifact(context.Background(), "../data.csv")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
	_, _, err = f.service.OpenArtifact(context.Background(), "nope.csv")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestCleaningService_SameNameUploadsOverwrite(t *testing.T) {
	f := newServiceFixture(t, nil)
	ctx := context.Background()

	_, err := f.service.Process(ctx, "data.csv", strings.NewReader(testutil.NumericColumnCSV("v", "1", "2")))
	require.NoError(t, err)
	result, err := f.service.Process(ctx, "data.csv", strings.NewReader(testutil.NumericColumnCSV("w", "7")))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "w"}, result.Columns)

	cleaned, err := os.ReadFile(filepath.Join(f.dir, "cleaned_data.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,w\n1,7\n", string(cleaned))
}

func TestCleaningService_CleanFile(t *testing.T) {
	f := newServiceFixture(t, nil)

	input := filepath.Join(t.TempDir(), "local.csv")
	require.NoError(t, os.WriteFile(input, []byte(testutil.NumericColumnCSV("v", "1", "-5", "3")), 0644))

	report, err := f.service.CleanFile(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, input, report.Source)
	assert.Equal(t, filepath.Join(f.dir, "cleaned_local.csv"), report.Output)
	assert.Equal(t, 3, report.Result.TotalRows)
	assert.Empty(t, report.Result.DownloadURL)

	cleaned, err := os.ReadFile(report.Output)
	require.NoError(t, err)
	assert.Equal(t, "id,v\n1,1\n2,2\n3,3\n", string(cleaned))

	_, statErr := os.Stat(filepath.Join(f.dir, "local.csv"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "input not copied into storage")
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, infrastructure.OutcomeUnsupportedFormat, outcomeFor(ErrUnsupportedFormat))
	assert.Equal(t, infrastructure.OutcomeParseFailure, outcomeFor(ErrParseFailure))
	assert.Equal(t, infrastructure.OutcomeEmptyInput, outcomeFor(ErrEmptyInput))
	assert.Equal(t, infrastructure.OutcomeStorageFailure, outcomeFor(errors.New("disk full")))
}
