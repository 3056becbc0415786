package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ctreport/internal/exporter"
	"ctreport/internal/files"
	"ctreport/internal/render"
	"ctreport/internal/services"
	"ctreport/internal/validation"
	"ctreport/pkg/contracts/domain"
)

type analyzeOptions struct {
	csvDir  string
	pdfPath string
	verbose bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <report-file-or-directory>",
		Short: "Analyze a treatment report and print its findings",
		Long:  "Analyze a single report. Given a directory, the most recent report in it is analyzed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("file %s does not exist", args[0])
			}
			path := args[0]
			if info.IsDir() {
				if path, err = latestReportIn(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "=== %s\n", filepath.Base(path))
			}
			return runAnalyze(cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.csvDir, "csv-dir", "", "export table, quality and violation CSVs into this directory")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "render parameter charts to this PDF file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

// latestReportIn resolves a directory argument to the newest report source
// inside it. Operators drop dated exports into a shared folder; the newest
// one is the report they mean.
func latestReportIn(dir string) (string, error) {
	sources, err := files.FindReportSources(dir)
	if err != nil {
		return "", err
	}
	latest, ok := files.Latest(sources)
	if !ok {
		return "", fmt.Errorf("no report files found in %s", dir)
	}
	return latest.Path, nil
}

func runAnalyze(cmd *cobra.Command, path string, opts *analyzeOptions) error {
	logger := newCLILogger(opts.verbose)

	v := validation.NewReportValidator(logger, 0)
	if err := v.ValidateReportFile(path); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	renderer := render.NewPDFRenderer(render.DefaultOptions(), logger)
	svc := services.NewReportService(logger, renderer, nil, 0)

	req := services.AnalyzeRequest{Filename: filepath.Base(path)}
	result, err := svc.Analyze(cmd.Context(), req, file)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), result)

	if opts.csvDir != "" {
		if err := exportCSVs(logger, opts.csvDir, result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "CSV exports written to %s\n", opts.csvDir)
	}

	if opts.pdfPath != "" {
		pdf, err := renderer.Render(cmd.Context(), result.Table, result.Limits)
		if err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
		if err := os.WriteFile(opts.pdfPath, pdf, 0644); err != nil {
			return fmt.Errorf("write PDF: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart report written to %s\n", opts.pdfPath)
	}

	return nil
}

func printSummary(w io.Writer, result *domain.AnalysisResult) {
	fmt.Fprintf(w, "Parameters: %d, readings: %d\n", len(result.Table.Columns), len(result.Table.Rows))

	if min, max, ok := result.Table.DateRange(); ok {
		fmt.Fprintf(w, "Date range: %s to %s\n", min.Format("2006-01-02"), max.Format("2006-01-02"))
	}

	if len(result.Quality.MissingDates) > 0 {
		fmt.Fprintf(w, "Missing dates: %d\n", len(result.Quality.MissingDates))
		for _, d := range result.Quality.MissingDates {
			fmt.Fprintf(w, "  %s\n", d.Format("2006-01-02"))
		}
	}

	for _, name := range result.Table.Columns {
		if n := result.Quality.MissingValueCounts[name]; n > 0 {
			fmt.Fprintf(w, "Missing values in %s: %d\n", name, n)
		}
	}

	if len(result.Violations) == 0 {
		fmt.Fprintln(w, "All readings within control limits.")
		return
	}

	fmt.Fprintf(w, "Limit violations: %d\n", len(result.Violations))
	for _, viol := range result.Violations {
		fmt.Fprintf(w, "  %s  %-12s %g (%s limit %g)\n",
			viol.Date.Format("2006-01-02"), viol.Parameter, viol.Value, viol.Bound, viol.Limit)
	}
}

func exportCSVs(logger *slog.Logger, dir string, result *domain.AnalysisResult) error {
	w := exporter.NewCSVWriter(logger)

	targets := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"table.csv", func(out io.Writer) error { return w.WriteTable(out, result.Table) }},
		{"quality.csv", func(out io.Writer) error { return w.WriteQuality(out, result.Quality) }},
		{"violations.csv", func(out io.Writer) error { return w.WriteViolations(out, result.Violations) }},
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	for _, target := range targets {
		path := filepath.Join(dir, target.name)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := target.write(file); err != nil {
			file.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

func newCLILogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
