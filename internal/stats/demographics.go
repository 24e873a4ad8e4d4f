package stats

import (
	"slices"
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/pkg/contracts/domain"
)

// Demographics reports user type and gender counts and birth year extremes.
// Only columns present in the table's schema produce a block.
func Demographics(t *dataset.Table) domain.DemographicsReport {
	start := time.Now()

	if t.IsEmpty() {
		return domain.DemographicsReport{NoData: true, Elapsed: time.Since(start)}
	}

	var report domain.DemographicsReport
	if t.Schema.HasUserType {
		report.UserTypes = frequencyReport(t.Rows, func(row dataset.Trip) string { return row.UserType })
	}
	if t.Schema.HasGender {
		report.Genders = frequencyReport(t.Rows, func(row dataset.Trip) string { return row.Gender })
	}
	if t.Schema.HasBirthYear {
		report.BirthYears = birthYearReport(t.Rows)
	}

	report.Elapsed = time.Since(start)
	return report
}

// frequencyReport counts the non-empty values of a categorical column
func frequencyReport(rows []dataset.Trip, value func(dataset.Trip) string) *domain.FrequencyReport {
	values := make([]string, 0, len(rows))
	missing := 0
	for _, row := range rows {
		v := value(row)
		if v == "" {
			missing++
			continue
		}
		values = append(values, v)
	}

	counts := Frequencies(values)
	report := &domain.FrequencyReport{
		Counts:  make([]domain.CountEntry, len(counts)),
		Missing: missing,
	}
	for i, c := range counts {
		report.Counts[i] = domain.CountEntry{Value: c.Value, Count: c.N}
	}
	return report
}

func birthYearReport(rows []dataset.Trip) *domain.BirthYearReport {
	years := make([]int, 0, len(rows))
	for _, row := range rows {
		if row.BirthYear != nil {
			years = append(years, int(*row.BirthYear))
		}
	}

	missing := len(rows) - len(years)
	common, err := Mode(years)
	if err != nil {
		return &domain.BirthYearReport{NoData: true, Missing: missing}
	}

	return &domain.BirthYearReport{
		Earliest:   slices.Min(years),
		MostRecent: slices.Max(years),
		MostCommon: intMode(common),
		Missing:    missing,
	}
}
