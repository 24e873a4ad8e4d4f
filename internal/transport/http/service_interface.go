package http

import (
	"context"

	"bikeshare/internal/exporter"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis operations used by handlers
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, q services.Query, section domain.Section) (*domain.AnalysisReport, error)
	Rows(ctx context.Context, q services.Query, offset int) (*domain.RowPage, error)
	Cities(ctx context.Context) []domain.CityInfo
}

// ReportExporterInterface writes reports to the reports directory
type ReportExporterInterface interface {
	Export(report *domain.AnalysisReport, format exporter.Format, name string) (string, error)
}
