package stats

import (
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/pkg/contracts/domain"
)

// Analyze runs every report over t
func Analyze(t *dataset.Table, filter domain.FilterSummary) *domain.AnalysisReport {
	return &domain.AnalysisReport{
		City:         t.City.String(),
		Filter:       filter,
		RowCount:     t.Len(),
		NoData:       t.IsEmpty(),
		Time:         Temporal(t),
		Stations:     Stations(t),
		Duration:     Durations(t),
		Demographics: Demographics(t),
		GeneratedAt:  time.Now().UTC(),
	}
}

// AnalyzeSection runs only the report for section s. SectionAll runs them all.
func AnalyzeSection(t *dataset.Table, filter domain.FilterSummary, s domain.Section) *domain.AnalysisReport {
	report := &domain.AnalysisReport{
		City:        t.City.String(),
		Filter:      filter,
		RowCount:    t.Len(),
		NoData:      t.IsEmpty(),
		GeneratedAt: time.Now().UTC(),
	}

	switch s {
	case domain.SectionTime:
		report.Time = Temporal(t)
	case domain.SectionStations:
		report.Stations = Stations(t)
	case domain.SectionDuration:
		report.Duration = Durations(t)
	case domain.SectionUsers:
		report.Demographics = Demographics(t)
	default:
		return Analyze(t, filter)
	}
	return report
}
