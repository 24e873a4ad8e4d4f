package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"bikeshare/internal/config"
)

const (
	ServiceName = config.AppName
	MeterName   = "bikeshare"
)

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Registry       *promclient.Registry
	Logger         *slog.Logger
}

// InitializeOTel wires tracing and metrics according to cfg. Disabled
// signals fall back to the no-op global providers.
func InitializeOTel(cfg config.TelemetryConfig, logger *slog.Logger) (*OTelProviders, error) {
	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", ServiceName),
		slog.String("version", config.AppVersion),
		slog.String("environment", cfg.Environment),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metric_exporter", cfg.MetricExporter))

	res := createResource(cfg)

	providers := &OTelProviders{
		Logger: logger,
		Tracer: otel.Tracer(MeterName),
		Meter:  otel.Meter(MeterName),
	}

	if err := initializeTracing(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		semconv.ServiceInstanceID(NewTraceID()),
	)
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics on a dedicated registry
func initializeMetrics(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		registry := promclient.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)

		providers.Registry = registry
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))
		otel.SetMeterProvider(mp)
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))

	return nil
}

// AnalysisMetrics holds the instruments recorded by the analysis paths
type AnalysisMetrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
	AnalysisErrors   metric.Int64Counter
	RowsLoaded       metric.Int64Counter
	RowsMatched      metric.Int64Counter
	DatasetLoads     metric.Int64Counter
}

// NewAnalysisMetrics creates the application instruments on meter
func NewAnalysisMetrics(meter metric.Meter) (*AnalysisMetrics, error) {
	var errs []error
	m := &AnalysisMetrics{}

	var err error
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	errs = append(errs, err)

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	errs = append(errs, err)

	m.AnalysesTotal, err = meter.Int64Counter(
		"analyses_total",
		metric.WithDescription("Total number of analysis runs"),
	)
	errs = append(errs, err)

	m.AnalysisDuration, err = meter.Float64Histogram(
		"analysis_duration_seconds",
		metric.WithDescription("Analysis run duration in seconds"),
		metric.WithUnit("s"),
	)
	errs = append(errs, err)

	m.AnalysisErrors, err = meter.Int64Counter(
		"analysis_errors_total",
		metric.WithDescription("Total number of failed analysis runs"),
	)
	errs = append(errs, err)

	m.RowsLoaded, err = meter.Int64Counter(
		"dataset_rows_loaded_total",
		metric.WithDescription("Total number of trip rows parsed from disk"),
	)
	errs = append(errs, err)

	m.RowsMatched, err = meter.Int64Counter(
		"filter_rows_matched_total",
		metric.WithDescription("Total number of trip rows kept by filters"),
	)
	errs = append(errs, err)

	m.DatasetLoads, err = meter.Int64Counter(
		"dataset_loads_total",
		metric.WithDescription("Dataset load requests by cache outcome"),
	)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordAnalysis records one analysis run
func (m *AnalysisMetrics) RecordAnalysis(ctx context.Context, city, section string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("city", city),
		attribute.String("section", section),
		attribute.Bool("success", err == nil),
	)
	m.AnalysesTotal.Add(ctx, 1, attrs)
	m.AnalysisDuration.Record(ctx, duration.Seconds(), attrs)
	if err != nil {
		m.AnalysisErrors.Add(ctx, 1, attrs)
	}
}

// RecordDatasetLoad records one dataset load and how many rows the filter kept
func (m *AnalysisMetrics) RecordDatasetLoad(ctx context.Context, city string, loaded, matched int) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("city", city))
	m.DatasetLoads.Add(ctx, 1, attrs)
	m.RowsLoaded.Add(ctx, int64(loaded), attrs)
	m.RowsMatched.Add(ctx, int64(matched), attrs)
}

// RecordHTTPRequest records one served request
func (m *AnalysisMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// Shutdown gracefully shuts down all providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown tracer provider: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown meter provider: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.HasTraceID() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// AddSpanEvent adds an event to the current span
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records an error in the current span
func RecordError(ctx context.Context, err error, description string) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, description)
}

// SetSpanAttributes sets attributes on the current span
func SetSpanAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attrs...)
}
