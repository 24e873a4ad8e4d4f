package app

import (
	"fmt"
	"log/slog"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	"bikeshare/internal/exporter"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
)

// ServiceContainer holds all application services
type ServiceContainer struct {
	Files    *dataset.FileLoader
	Loader   dataset.Loader
	Analysis *services.AnalysisService
	Health   *services.HealthService
	Exporter *exporter.ReportExporter
}

// NewServiceContainer builds the loader and services over paths. metrics may be nil.
func NewServiceContainer(cfg *config.Config, paths *config.Paths, metrics *infrastructure.AnalysisMetrics, logger *slog.Logger) (*ServiceContainer, error) {
	if cfg == nil || paths == nil {
		return nil, fmt.Errorf("config and paths are required")
	}

	files := dataset.NewFileLoader(paths.DataDir, logger)

	var loader dataset.Loader = files
	if cfg.Data.Cache {
		loader = dataset.NewCachedLoader(files, logger)
		logger.Info("Dataset cache enabled")
	}

	return &ServiceContainer{
		Files:    files,
		Loader:   loader,
		Analysis: services.NewAnalysisService(loader, files, metrics, logger),
		Health:   services.NewHealthService(config.AppVersion, paths.DataDir, files, logger),
		Exporter: exporter.NewReportExporter(paths, logger),
	}, nil
}
