package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	dataDir   string
	catalog   Catalog
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version, dataDir string, catalog Catalog, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("data_dir", dataDir))

	return &HealthService{
		version:   version,
		dataDir:   dataDir,
		catalog:   catalog,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready when the data directory exists and at least
// one city dataset can be resolved.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	status.Services["data"] = hs.checkDataHealth()
	for _, city := range dataset.Cities {
		status.Services["dataset:"+city.BaseName()] = hs.checkDatasetHealth(city)
	}

	if data := status.Services["data"].(ServiceHealth); data.Status != "ready" || hs.availableDatasets() == 0 {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "Readiness check failed",
			slog.String("data_dir", hs.dataDir),
			slog.Int("available_datasets", hs.availableDatasets()))
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetBuildInfo()
	return map[string]interface{}{
		"version":       hs.version,
		"api_version":   info.APIVersion,
		"report_format": info.ReportFormat,
		"build_time":    info.BuildTime,
		"git_commit":    info.GitCommit,
		"go_version":    info.GoVersion,
		"os":            info.OS,
		"arch":          info.Architecture,
		"uptime":        time.Since(hs.startTime).Seconds(),
		"start_time":    hs.startTime.Format(time.RFC3339),
		"current_time":  time.Now().Format(time.RFC3339),
	}
}

// checkDataHealth checks that the data directory is readable
func (hs *HealthService) checkDataHealth() ServiceHealth {
	info, err := os.Stat(hs.dataDir)
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Data directory not accessible: %s", hs.dataDir),
		}
	}
	if !info.IsDir() {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Data path is not a directory: %s", hs.dataDir),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: "Data directory is readable",
	}
}

func (hs *HealthService) checkDatasetHealth(city dataset.City) ServiceHealth {
	if hs.catalog == nil {
		return ServiceHealth{Status: "unknown"}
	}
	if _, err := hs.catalog.Resolve(city); err != nil {
		return ServiceHealth{Status: "missing", Message: err.Error()}
	}
	return ServiceHealth{Status: "ready"}
}

func (hs *HealthService) availableDatasets() int {
	if hs.catalog == nil {
		return 0
	}
	n := 0
	for _, city := range dataset.Cities {
		if _, err := hs.catalog.Resolve(city); err == nil {
			n++
		}
	}
	return n
}
