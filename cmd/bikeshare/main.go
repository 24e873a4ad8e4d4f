// Command bikeshare runs the interactive bikeshare explorer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bikeshare/internal/app"
	"bikeshare/internal/config"
	"bikeshare/internal/console"
	"bikeshare/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "bikeshare: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("bikeshare", flag.ContinueOnError)
	dataDir := fs.String("data", "", "directory holding the city datasets (overrides config)")
	logOutput := fs.String("log-output", "", "log destination: console, file or both (default file)")
	logFile := fs.String("log-file", "", "log file path (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	// Log lines on stdout would interleave with the prompts
	switch {
	case *logOutput != "":
		cfg.Logging.Output = *logOutput
	case os.Getenv(config.EnvPrefix+"_LOGGING_OUTPUT") == "":
		cfg.Logging.Output = "file"
	}

	paths, err := config.GetPaths(cfg.Data)
	if err != nil {
		return err
	}
	if *logFile != "" {
		cfg.Logging.FilePath = *logFile
	}
	cfg.Logging.FilePath = paths.ResolveFile(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	ctx = infrastructure.EnsureTraceID(ctx)
	logger.InfoContext(ctx, "Console session starting",
		slog.String("version", config.AppVersion),
		slog.String("data_dir", paths.DataDir))

	container, err := app.NewServiceContainer(cfg, paths, nil, logger)
	if err != nil {
		return err
	}

	return console.NewSession(stdin, stdout, container.Analysis, logger).Run(ctx)
}
