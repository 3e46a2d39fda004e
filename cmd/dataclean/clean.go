package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dataclean/internal/app"
	"dataclean/internal/config"
	"dataclean/internal/files"
	"dataclean/internal/infrastructure"
	"dataclean/internal/services"
	"dataclean/internal/validation"
)

type cleanOptions struct {
	outDir   string
	parallel int
	jsonOut  bool
}

func newCleanCmd() *cobra.Command {
	opts := cleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean [files...]",
		Short: "Clean local CSV or Excel files",
		Long:  `The clean command runs the cleaning pipeline on local files and writes cleaned_<name>.csv for each into the output directory.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			logger := infrastructure.NewJSONLogger(cmd.ErrOrStderr(), "warn")
			return runClean(cmd.Context(), cfg, args, opts, cmd.OutOrStdout(), logger)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Directory for the cleaned CSV files")
	cmd.Flags().IntVar(&opts.parallel, "parallel", runtime.NumCPU(), "Maximum number of files cleaned at once")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the reports as JSON")
	return cmd
}

// runClean cleans every file, at most opts.parallel at a time. A failing file
// does not stop the others; all failures are returned joined. Inputs that
// would produce the same cleaned file name are refused before any work.
func runClean(ctx context.Context, cfg *config.Config, inputs []string, opts cleanOptions, out io.Writer, logger *slog.Logger) error {
	if opts.parallel < 1 {
		return fmt.Errorf("--parallel must be at least 1, got %d", opts.parallel)
	}
	if err := checkOutputCollisions(inputs); err != nil {
		return err
	}

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(opts.outDir); err != nil {
		return err
	}
	paths, err := config.ResolvePaths(config.PathsConfig{StorageDir: opts.outDir, LogsDir: cfg.Paths.LogsDir})
	if err != nil {
		return err
	}

	svc := app.NewCleaningService(cfg, paths, nil, logger)

	reports := make([]*services.FileReport, len(inputs))
	errs := make([]error, len(inputs))

	var g errgroup.Group
	g.SetLimit(opts.parallel)
	for i, input := range inputs {
		g.Go(func() error {
			report, err := svc.CleanFile(ctx, input)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", input, err)
				return nil
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := printReports(out, reports, opts.jsonOut); err != nil {
		return err
	}
	return errors.Join(errs...)
}

func checkOutputCollisions(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		name := files.CleanedName(input)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, input, name)
		}
		seen[name] = input
	}
	return nil
}

func printReports(out io.Writer, reports []*services.FileReport, asJSON bool) error {
	done := make([]*services.FileReport, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			done = append(done, r)
		}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(done)
	}

	for _, r := range done {
		res := r.Result
		if _, err := fmt.Fprintf(out, "%s -> %s: rows %d -> %d (%s removed), %d missing, %d plots\n",
			r.Source, r.Output, res.TotalRows, res.CleanedRows, res.RowsRemovedPercent, res.MissingValues, len(res.Plots)); err != nil {
			return err
		}
	}
	return nil
}

