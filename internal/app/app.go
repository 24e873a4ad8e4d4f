package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	"bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	customMiddleware "bikeshare/internal/middleware"
	handlers "bikeshare/internal/transport/http"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Services      *ServiceContainer
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.AnalysisMetrics
}

// NewApplication loads configuration, initializes logging and builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New builds the application from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	paths, err := config.GetPaths(cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}

	logger.Info("Ensuring required directories exist")
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewAnalysisMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	container, err := NewServiceContainer(cfg, paths, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		Services:      container,
		OTelProviders: otelProviders,
		Metrics:       metrics,
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the Chi router with middleware and routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Ordering: RequestID → RealIP → Logger → Recoverer → Telemetry → RateLimit
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.Telemetry(a.OTelProviders.Tracer, a.Metrics))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger, false)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r, errorHandler)

	// Prometheus scrape endpoint stays outside the API timeout group
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router, errorHandler *errors.ErrorHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		handlers.NewHealthHandler(a.Services.Health, a.Logger).Routes(r)

		statsHandler := handlers.NewStatsHandler(a.Services.Analysis, a.Services.Exporter, a.Logger, errorHandler)
		r.Mount("/", statsHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start starts serving in the background. A listener failure cancels ctx
// through cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level),
		slog.String("data_dir", a.Paths.DataDir))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupHealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Startup health check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
		a.Logger.WarnContext(ctx, "Server stopped unexpectedly")
	}

	return a.Stop(context.Background())
}

// performStartupHealthCheck verifies the data directory and the writable directories
func (a *Application) performStartupHealthCheck(ctx context.Context) error {
	var warnings []string

	if !config.FileExists(a.Paths.DataDir) {
		warnings = append(warnings, fmt.Sprintf("data directory not found: %s", a.Paths.DataDir))
	}

	for _, city := range dataset.Cities {
		if !a.Services.Files.Available(city) {
			a.Logger.InfoContext(ctx, "Dataset not found",
				slog.String("city", city.String()),
				slog.String("data_dir", a.Paths.DataDir))
		}
	}

	directories := map[string]string{
		"Reports": a.Paths.ReportsDir,
		"Logs":    a.Paths.LogsDir,
	}
	for name, dir := range directories {
		testFile := filepath.Join(dir, ".write_test")
		if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s directory not writable: %s", name, dir))
		} else {
			os.Remove(testFile)
		}
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup health check warnings: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "Startup health check passed")
	return nil
}
