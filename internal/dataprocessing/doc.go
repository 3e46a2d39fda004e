// Package dataprocessing implements the table cleaning pipeline.
//
// An uploaded file is read into a RawTable (ReadCSV, ReadXLSX) and handed to a
// Cleaner, which runs four ordered stages on its own working Table:
//
//  1. Column classification: sparse raw columns are dropped, then every
//     surviving column becomes KindNumeric or KindText.
//  2. Numeric sanitization: out-of-range values are masked, gaps are filled
//     with the column median and values are rounded to two decimals.
//  3. Row pruning: rows with too many absent cells are removed.
//  4. Summary: row statistics, missing count, category modes, a preview and
//     one plot per column.
//
// Usage:
//
//	raw, err := dataprocessing.ReadTable(file, dataprocessing.FormatCSV)
//	if err != nil {
//	    return err
//	}
//	cleaner := dataprocessing.NewCleaner(cfg.Cleaning, charts.NewRenderer(), logger)
//	result, err := cleaner.Clean(ctx, raw)
//
// A Table is never shared between runs, so one Cleaner may serve concurrent
// requests.
package dataprocessing
