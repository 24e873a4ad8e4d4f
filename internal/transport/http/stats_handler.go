package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "bikeshare/internal/errors"
	"bikeshare/internal/exporter"
	"bikeshare/internal/filter"
	mw "bikeshare/internal/middleware"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts/domain"
)

// statsParams are the query parameters shared by the stats, rows and export routes
type statsParams struct {
	City   string `json:"city" validate:"required"`
	Month  string `json:"month"`
	Day    string `json:"day"`
	Format string `json:"format" validate:"omitempty,oneof=csv xlsx"`
}

// StatsHandler serves the statistics API with RFC 7807 errors
type StatsHandler struct {
	service        AnalysisServiceInterface
	exporter       ReportExporterInterface
	validator      *mw.Validator
	queryValidator *mw.QueryParamValidator
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewStatsHandler creates a stats handler. exporter may be nil, which
// disables the export route.
func NewStatsHandler(service AnalysisServiceInterface, exporter ReportExporterInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *StatsHandler {
	return &StatsHandler{
		service:        service,
		exporter:       exporter,
		validator:      mw.NewValidator(),
		queryValidator: mw.NewQueryParamValidator(logger, errorHandler),
		logger:         logger.With(slog.String("component", "stats_handler")),
		errorHandler:   errorHandler,
	}
}

// Routes returns the stats routes
func (h *StatsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/cities", h.GetCities)
	r.Get("/stats", h.GetStats)
	r.Get("/stats/{section}", h.GetSection)
	r.Get("/rows", h.GetRows)
	if h.exporter != nil {
		r.Get("/export", h.Export)
	}

	return r
}

// GetCities handles GET /api/cities
func (h *StatsHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	cities := h.service.Cities(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   cities,
		"count":  len(cities),
	})
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	h.analyze(w, r, domain.SectionAll)
}

// GetSection handles GET /api/stats/{section}
func (h *StatsHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	section, err := domain.ParseSection(chi.URLParam(r, "section"))
	if err != nil || section == domain.SectionAll {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("section",
			fmt.Sprintf("section must be one of: %s, %s, %s, %s",
				domain.SectionTime, domain.SectionStations, domain.SectionDuration, domain.SectionUsers)))
		return
	}
	h.analyze(w, r, section)
}

func (h *StatsHandler) analyze(w http.ResponseWriter, r *http.Request, section domain.Section) {
	q, _, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "computing statistics",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("city", q.City),
		slog.String("filter", q.Filter.String()),
		slog.String("section", string(section)),
	)

	report, err := h.service.Analyze(r.Context(), q, section)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
	})
}

// GetRows handles GET /api/rows
func (h *StatsHandler) GetRows(w http.ResponseWriter, r *http.Request) {
	q, _, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	offset, ok := h.queryValidator.ValidateInt(w, r, "offset", 0, math.MaxInt32, 0)
	if !ok {
		return
	}

	page, err := h.service.Rows(r.Context(), q, offset)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   page,
	})
}

// Export handles GET /api/export. The report is written to the reports
// directory and sent back as an attachment.
func (h *StatsHandler) Export(w http.ResponseWriter, r *http.Request) {
	q, params, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	if params.Format == "" {
		params.Format = string(exporter.FormatCSV)
	}
	format, err := exporter.ParseFormat(params.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Analyze(r.Context(), q, domain.SectionAll)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	path, err := h.exporter.Export(report, format, "")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "serving exported report",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", path),
	)

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

// parseQuery validates the common query parameters. On failure the problem
// response has already been written.
func (h *StatsHandler) parseQuery(w http.ResponseWriter, r *http.Request) (services.Query, statsParams, bool) {
	query := r.URL.Query()
	params := statsParams{
		City:   query.Get("city"),
		Month:  query.Get("month"),
		Day:    query.Get("day"),
		Format: query.Get("format"),
	}

	if err := h.validator.ValidateStruct(params); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return services.Query{}, params, false
	}

	f, err := filter.Parse(params.Month, params.Day)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return services.Query{}, params, false
	}

	return services.Query{City: params.City, Filter: f}, params, true
}
