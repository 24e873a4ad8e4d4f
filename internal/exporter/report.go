package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// Format selects the output file type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", apperrors.NewAppValidationError(fmt.Sprintf("unsupported export format %q (want csv or xlsx)", s))
	}
}

// Sheet is one section of a report in tabular form
type Sheet struct {
	Name    string
	Headers []string
	Records [][]string
}

var sectionHeaders = []string{"Metric", "Value", "Count"}

// Sheets flattens a report into a summary sheet followed by one sheet per
// section, in display order.
func Sheets(report *domain.AnalysisReport) []Sheet {
	return []Sheet{
		summarySheet(report),
		timeSheet(report.Time),
		stationSheet(report.Stations),
		durationSheet(report.Duration),
		userSheet(report.Demographics),
	}
}

func summarySheet(r *domain.AnalysisReport) Sheet {
	return Sheet{
		Name:    "summary",
		Headers: []string{"Field", "Value"},
		Records: [][]string{
			{"City", r.City},
			{"Filter", r.Filter.Description},
			{"Trips", formatInt(r.RowCount)},
			{"Generated", r.GeneratedAt.Format(time.RFC3339)},
		},
	}
}

func timeSheet(r domain.TimeReport) Sheet {
	s := Sheet{Name: string(domain.SectionTime), Headers: sectionHeaders}
	if r.NoData {
		return s
	}
	s.Records = [][]string{
		{"Most common month", domain.MonthName(r.PopularMonth.Value), formatInt(r.PopularMonth.Count)},
		{"Most common day of week", domain.DayName(r.PopularDay.Value), formatInt(r.PopularDay.Count)},
		{"Most common start hour", formatInt(r.PopularHour.Value), formatInt(r.PopularHour.Count)},
	}
	return s
}

func stationSheet(r domain.StationReport) Sheet {
	s := Sheet{Name: string(domain.SectionStations), Headers: sectionHeaders}
	if r.NoData {
		return s
	}
	s.Records = [][]string{
		{"Most common start station", r.PopularStart.Value, formatInt(r.PopularStart.Count)},
		{"Most common end station", r.PopularEnd.Value, formatInt(r.PopularEnd.Count)},
		{"Most common trip route", r.PopularRoute.Value, formatInt(r.PopularRoute.Count)},
	}
	return s
}

func durationSheet(r domain.DurationReport) Sheet {
	s := Sheet{Name: string(domain.SectionDuration), Headers: sectionHeaders}
	if r.NoData {
		return s
	}
	s.Records = [][]string{
		{"Total travel time (s)", formatFloat(r.TotalSeconds), formatInt(r.TripCount)},
		{"Average travel time (s)", r.MeanDisplay(), formatInt(r.TripCount)},
	}
	return s
}

func userSheet(r domain.DemographicsReport) Sheet {
	s := Sheet{Name: string(domain.SectionUsers), Headers: sectionHeaders}
	if r.NoData {
		return s
	}
	appendFrequencies := func(label string, f *domain.FrequencyReport) {
		if f == nil {
			return
		}
		for _, c := range f.Counts {
			s.Records = append(s.Records, []string{label, c.Value, formatInt(c.Count)})
		}
		if f.Missing > 0 {
			s.Records = append(s.Records, []string{label, "(missing)", formatInt(f.Missing)})
		}
	}
	appendFrequencies("User Type", r.UserTypes)
	appendFrequencies("Gender", r.Genders)

	if by := r.BirthYears; by != nil && !by.NoData {
		s.Records = append(s.Records,
			[]string{"Earliest birth year", formatInt(by.Earliest), ""},
			[]string{"Most recent birth year", formatInt(by.MostRecent), ""},
			[]string{"Most common birth year", formatInt(by.MostCommon.Value), formatInt(by.MostCommon.Count)},
		)
	}
	return s
}

// ReportExporter writes reports in CSV or XLSX form
type ReportExporter struct {
	csv    *CSVWriter
	paths  *config.Paths
	logger *slog.Logger
}

// NewReportExporter creates an exporter writing relative paths under the reports directory
func NewReportExporter(paths *config.Paths, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "report_exporter"))
	return &ReportExporter{
		csv:    NewCSVWriter(paths, logger),
		paths:  paths,
		logger: logger,
	}
}

// DefaultFileName builds "<city>_<month>_<day>.<ext>"
func DefaultFileName(report *domain.AnalysisReport, format Format) string {
	city := strings.ReplaceAll(report.City, " ", "_")
	month := strings.ToLower(domain.MonthName(report.Filter.Month))
	day := strings.ToLower(domain.DayName(report.Filter.Day))
	return fmt.Sprintf("%s_%s_%s.%s", city, month, day, format)
}

// Export writes report to name and returns the written path. Reports with
// no matching trips are refused.
func (e *ReportExporter) Export(report *domain.AnalysisReport, format Format, name string) (string, error) {
	if report == nil || report.NoData {
		return "", apperrors.NewEmptyResultError("no matching trips to export")
	}
	if name == "" {
		name = DefaultFileName(report, format)
	}

	var (
		path string
		err  error
	)
	switch format {
	case FormatCSV:
		path, err = e.writeReportCSV(report, name)
	case FormatXLSX:
		path, err = e.writeReportXLSX(report, e.resolvePath(name))
	default:
		return "", apperrors.NewAppValidationError(fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to export report to %s", name), err)
	}

	e.logger.Info("Report exported",
		slog.String("city", report.City),
		slog.String("filter", report.Filter.Description),
		slog.String("format", string(format)),
		slog.String("path", path))
	return path, nil
}

// writeReportCSV writes every sheet into one long-form CSV with a leading
// section column.
func (e *ReportExporter) writeReportCSV(report *domain.AnalysisReport, name string) (string, error) {
	var records [][]string
	for _, sheet := range Sheets(report) {
		for _, rec := range sheet.Records {
			row := make([]string, 0, 4)
			row = append(row, sheet.Name)
			row = append(row, rec...)
			for len(row) < 4 {
				row = append(row, "")
			}
			records = append(records, row)
		}
	}

	return e.csv.WriteCSV(name, WriteOptions{
		Headers:   []string{"Section", "Metric", "Value", "Count"},
		Records:   records,
		BOMPrefix: true,
	})
}

// ExportRows streams the raw rows of table to a CSV file
func (e *ReportExporter) ExportRows(table *dataset.Table, name string) (string, error) {
	if table.IsEmpty() {
		return "", apperrors.NewEmptyResultError("no matching trips to export")
	}

	stream, err := e.csv.CreateStreamWriter(name, table.Columns)
	if err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to create %s", name), err)
	}

	for _, row := range table.Rows {
		if err := stream.WriteRecord(row.Values); err != nil {
			stream.Close()
			return "", apperrors.NewStorageError(fmt.Sprintf("failed to write %s", name), err)
		}
	}
	if err := stream.Close(); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to write %s", name), err)
	}

	e.logger.Info("Raw rows exported",
		slog.String("city", table.City.String()),
		slog.Int("rows", table.Len()),
		slog.String("path", stream.Path()))
	return stream.Path(), nil
}

func (e *ReportExporter) resolvePath(name string) string {
	if filepath.IsAbs(name) || e.paths == nil {
		return name
	}
	return e.paths.GetReportPath(name)
}
