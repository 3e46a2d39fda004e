package dataprocessing

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"dataclean/internal/config"
	apperrors "dataclean/internal/errors"
	"dataclean/internal/infrastructure"
)

// pngDataURIPrefix prefixes every rendered plot.
const pngDataURIPrefix = "data:image/png;base64,"

// PlotRenderer draws the per-column charts as PNG images.
type PlotRenderer interface {
	// Histogram draws the distribution of a numeric column.
	Histogram(column string, values []float64) ([]byte, error)
	// BarChart draws category counts of a text column in the given order.
	BarChart(column string, labels []string, counts []int) ([]byte, error)
}

// Result is the outcome of one cleaning run.
type Result struct {
	Table  *Table
	Report *Report
}

// Cleaner runs the cleaning pipeline with fixed thresholds.
type Cleaner struct {
	cfg      config.CleaningConfig
	renderer PlotRenderer
	logger   *slog.Logger
}

// NewCleaner creates a cleaner. A nil renderer disables plots.
func NewCleaner(cfg config.CleaningConfig, renderer PlotRenderer, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		cfg:      cfg,
		renderer: renderer,
		logger:   infrastructure.WithComponent(logger, "cleaner"),
	}
}

// Clean classifies, sanitizes and prunes raw, then builds the report for the
// resulting table. A table without data rows fails with an EMPTY_INPUT error.
func (c *Cleaner) Clean(ctx context.Context, raw *RawTable) (*Result, error) {
	if raw.RowCount() == 0 {
		return nil, apperrors.NewEmptyInputError()
	}

	ctx, span := infrastructure.StartSpan(ctx, "dataprocessing.Clean",
		attribute.Int("rows", raw.RowCount()),
		attribute.Int("columns", len(raw.Columns)),
	)
	defer span.End()

	table := c.classify(ctx, raw)
	c.sanitize(ctx, table)
	cleaned := c.prune(ctx, table)
	report := c.summarize(ctx, raw.RowCount(), cleaned)

	span.SetAttributes(
		attribute.Int("cleaned_rows", report.CleanedRows),
		attribute.Int("missing_values", report.MissingValues),
	)

	c.logger.InfoContext(ctx, "table cleaned",
		slog.Int("rows_in", report.OriginalRows),
		slog.Int("rows_out", report.CleanedRows),
		slog.Int("columns_in", len(raw.Columns)),
		slog.Int("columns_out", len(cleaned.Columns)),
		slog.Int("missing_values", report.MissingValues))

	return &Result{Table: cleaned, Report: report}, nil
}

func (c *Cleaner) classify(ctx context.Context, raw *RawTable) *Table {
	_, span := infrastructure.StartSpan(ctx, "dataprocessing.classify")
	defer span.End()

	kept := dropSparseColumns(raw, c.cfg.ColDropThreshold)
	if dropped := len(raw.Columns) - len(kept); dropped > 0 {
		c.logger.DebugContext(ctx, "sparse columns dropped", slog.Int("count", dropped))
	}

	table := &Table{Columns: make([]*Column, 0, len(kept)), Rows: raw.RowCount()}
	for _, i := range kept {
		table.Columns = append(table.Columns,
			classifyColumn(raw.Columns[i], raw.Cells[i], c.cfg.NumericShareThreshold))
	}
	return table
}

func (c *Cleaner) sanitize(ctx context.Context, table *Table) {
	_, span := infrastructure.StartSpan(ctx, "dataprocessing.sanitize")
	defer span.End()

	for _, col := range table.Columns {
		sanitizeColumn(col, c.cfg.OutlierMin, c.cfg.OutlierMax)
	}
}

func (c *Cleaner) prune(ctx context.Context, table *Table) *Table {
	_, span := infrastructure.StartSpan(ctx, "dataprocessing.prune")
	defer span.End()

	return pruneRows(table, c.cfg.RowDropThreshold)
}

func (c *Cleaner) summarize(ctx context.Context, originalRows int, table *Table) *Report {
	ctx, span := infrastructure.StartSpan(ctx, "dataprocessing.summarize")
	defer span.End()

	report := &Report{
		OriginalRows:    originalRows,
		CleanedRows:     table.RowCount(),
		RemovedPercent:  removedPercent(originalRows, table.RowCount()),
		MissingValues:   countMissing(table),
		Columns:         table.ColumnNames(),
		CategorySummary: categorySummary(table),
		Preview:         buildPreview(table, c.cfg.PreviewRows),
	}

	plots, err := c.renderPlots(table)
	if err != nil {
		c.logger.WarnContext(ctx, "plot rendering failed, discarding plots", slog.String("error", err.Error()))
		infrastructure.RecordError(ctx, err)
		report.PlotError = err
		plots = map[string]string{}
	}
	report.Plots = plots

	return report
}

// renderPlots draws one chart per column. The first failure, including a
// panic inside the renderer, aborts the whole set.
func (c *Cleaner) renderPlots(table *Table) (plots map[string]string, err error) {
	plots = make(map[string]string)
	if c.renderer == nil {
		return plots, nil
	}

	var current string
	defer func() {
		if r := recover(); r != nil {
			plots = nil
			err = apperrors.NewPlotRenderError(current, fmt.Errorf("panic: %v", r))
		}
	}()

	for _, col := range table.Columns {
		current = col.Name

		var png []byte
		switch col.Kind {
		case KindNumeric:
			values := make([]float64, 0, len(col.Numbers))
			for _, n := range col.Numbers {
				if n.Valid {
					values = append(values, n.Float64)
				}
			}
			png, err = c.renderer.Histogram(col.Name, values)
		default:
			top := topCategories(categoryCounts(col), c.cfg.TopCategories)
			if len(top) == 0 {
				continue
			}
			labels := make([]string, len(top))
			counts := make([]int, len(top))
			for i, cc := range top {
				labels[i] = cc.Value
				counts[i] = cc.Count
			}
			png, err = c.renderer.BarChart(col.Name, labels, counts)
		}
		if err != nil {
			return nil, apperrors.NewPlotRenderError(col.Name, err)
		}

		plots[col.Name] = pngDataURIPrefix + base64.StdEncoding.EncodeToString(png)
	}

	return plots, nil
}
