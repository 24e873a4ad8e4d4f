package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bikeshare/internal/dataset"
	"bikeshare/internal/filter"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/stats"
	"bikeshare/pkg/contracts/domain"
)

// Catalog reports which datasets exist on disk
type Catalog interface {
	Resolve(city dataset.City) (string, error)
}

// Query selects a city and an optional month/day filter
type Query struct {
	City   string        `json:"city"`
	Filter filter.Filter `json:"filter"`
}

// AnalysisService runs the load, filter and statistics pipeline
type AnalysisService struct {
	loader  dataset.Loader
	catalog Catalog
	metrics *infrastructure.AnalysisMetrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewAnalysisService creates an analysis service. catalog may be nil. A nil
// metrics records nothing; AnalysisMetrics methods accept a nil receiver.
func NewAnalysisService(loader dataset.Loader, catalog Catalog, metrics *infrastructure.AnalysisMetrics, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		loader:  loader,
		catalog: catalog,
		metrics: metrics,
		tracer:  otel.Tracer(infrastructure.MeterName),
		logger:  logger.With(slog.String("component", "analysis_service")),
	}
}

// Load returns the filtered table for q
func (s *AnalysisService) Load(ctx context.Context, q Query) (*dataset.Table, error) {
	city, err := dataset.ParseCity(q.City)
	if err != nil {
		return nil, err
	}
	if err := q.Filter.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.String("city", city.String())))
	defer span.End()

	table, err := s.loader.Load(ctx, city)
	if err != nil {
		infrastructure.RecordError(ctx, err, "dataset load failed")
		return nil, err
	}

	filtered := filter.Apply(table, q.Filter)

	infrastructure.SetSpanAttributes(ctx,
		attribute.Int("rows.loaded", table.Len()),
		attribute.Int("rows.matched", filtered.Len()),
		attribute.String("filter", q.Filter.String()))

	s.metrics.RecordDatasetLoad(ctx, city.String(), table.Len(), filtered.Len())

	s.logger.DebugContext(ctx, "Filter applied",
		slog.String("city", city.String()),
		slog.String("filter", q.Filter.String()),
		slog.Int("rows_loaded", table.Len()),
		slog.Int("rows_matched", filtered.Len()))

	return filtered, nil
}

// Report computes the reports for section over an already filtered table
func (s *AnalysisService) Report(ctx context.Context, table *dataset.Table, f filter.Filter, section domain.Section) *domain.AnalysisReport {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "stats.analyze",
		trace.WithAttributes(
			attribute.String("city", table.City.String()),
			attribute.String("section", string(section)),
			attribute.Int("rows", table.Len())))
	defer span.End()

	report := stats.AnalyzeSection(table, f.Summary(), section)
	if report.NoData {
		infrastructure.AddSpanEvent(ctx, "no matching trips")
	}

	s.metrics.RecordAnalysis(ctx, table.City.String(), string(section), time.Since(start), nil)

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.String("city", table.City.String()),
		slog.String("filter", f.String()),
		slog.String("section", string(section)),
		slog.Int("rows", table.Len()),
		slog.Bool("no_data", report.NoData),
		slog.Duration("duration", time.Since(start)))

	return report
}

// Analyze loads, filters and reports in one call
func (s *AnalysisService) Analyze(ctx context.Context, q Query, section domain.Section) (*domain.AnalysisReport, error) {
	start := time.Now()

	table, err := s.Load(ctx, q)
	if err != nil {
		s.metrics.RecordAnalysis(ctx, q.City, string(section), time.Since(start), err)
		s.logger.ErrorContext(ctx, "Analysis failed",
			slog.String("city", q.City),
			slog.String("filter", q.Filter.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	return s.Report(ctx, table, q.Filter, section), nil
}

// Rows returns one raw-row page of the filtered table
func (s *AnalysisService) Rows(ctx context.Context, q Query, offset int) (*domain.RowPage, error) {
	table, err := s.Load(ctx, q)
	if err != nil {
		return nil, err
	}

	return RowPage(table, offset), nil
}

// RowPage converts a GetRows window into its transport form
func RowPage(table *dataset.Table, offset int) *domain.RowPage {
	if offset < 0 {
		offset = 0
	}
	rows, hasMore := dataset.GetRows(table, offset)

	page := &domain.RowPage{
		City:       table.City.String(),
		Columns:    table.Columns,
		Rows:       make([]map[string]string, len(rows)),
		Offset:     offset,
		NextOffset: offset + len(rows),
		HasMore:    hasMore,
		Total:      table.Len(),
	}
	for i, row := range rows {
		page.Rows[i] = row.Record(table.Columns)
	}
	return page
}

// Cities lists the supported datasets and whether each is present on disk
func (s *AnalysisService) Cities(ctx context.Context) []domain.CityInfo {
	infos := make([]domain.CityInfo, 0, len(dataset.Cities))
	for _, city := range dataset.Cities {
		info := domain.CityInfo{Name: city.String()}
		if s.catalog != nil {
			if path, err := s.catalog.Resolve(city); err == nil {
				info.File = filepath.Base(path)
				info.Available = true
			}
		}
		infos = append(infos, info)
	}
	return infos
}
