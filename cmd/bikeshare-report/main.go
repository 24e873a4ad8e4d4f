// Command bikeshare-report writes the statistics for one city and filter to
// a CSV or XLSX file without prompting.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bikeshare/internal/app"
	"bikeshare/internal/config"
	"bikeshare/internal/exporter"
	"bikeshare/internal/filter"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts/domain"
)

// options are the parsed command line flags
type options struct {
	City    string
	Month   string
	Day     string
	Format  string
	Out     string
	Rows    string
	DataDir string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bikeshare-report: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("bikeshare-report", flag.ContinueOnError)
	fs.StringVar(&opts.City, "city", "", "city to analyze: chicago, new york city or washington (required)")
	fs.StringVar(&opts.Month, "month", "0", "month filter: 0 or all, 1-6, or a month name")
	fs.StringVar(&opts.Day, "day", "0", "day filter: 0 or all, 1-7 (Monday=1), or a day name")
	fs.StringVar(&opts.Format, "format", "csv", "output format: csv or xlsx")
	fs.StringVar(&opts.Out, "out", "", "output file; relative names go to the reports directory")
	fs.StringVar(&opts.Rows, "rows", "", "also write the filtered raw rows to this CSV file")
	fs.StringVar(&opts.DataDir, "data", "", "directory holding the city datasets (overrides config)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if strings.TrimSpace(opts.City) == "" {
		return opts, fmt.Errorf("-city is required")
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	format, err := exporter.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	f, err := filter.Parse(opts.Month, opts.Day)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.DataDir != "" {
		cfg.Data.Dir = opts.DataDir
	}

	paths, err := config.GetPaths(cfg.Data)
	if err != nil {
		return err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}
	cfg.Logging.FilePath = paths.ResolveFile(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	container, err := app.NewServiceContainer(cfg, paths, nil, logger)
	if err != nil {
		return err
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	q := services.Query{City: opts.City, Filter: f}

	table, err := container.Analysis.Load(ctx, q)
	if err != nil {
		return err
	}
	report := container.Analysis.Report(ctx, table, f, domain.SectionAll)

	path, err := container.Exporter.Export(report, format, opts.Out)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Report written to %s\n", path)

	if opts.Rows != "" {
		rowsPath, err := container.Exporter.ExportRows(table, opts.Rows)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Raw rows written to %s\n", rowsPath)
	}

	logger.InfoContext(ctx, "Report run complete",
		slog.String("city", report.City),
		slog.String("filter", f.String()),
		slog.Int("rows", report.RowCount))
	return nil
}
