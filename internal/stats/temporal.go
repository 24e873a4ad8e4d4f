package stats

import (
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/pkg/contracts/domain"
)

// Temporal reports the most common month, day of week and start hour
func Temporal(t *dataset.Table) domain.TimeReport {
	start := time.Now()

	months := make([]int, 0, t.Len())
	days := make([]int, 0, t.Len())
	hours := make([]int, 0, t.Len())
	for _, row := range t.Rows {
		months = append(months, row.Month)
		days = append(days, row.DayOfWeek)
		hours = append(hours, row.Hour())
	}

	month, err := Mode(months)
	if err != nil {
		return domain.TimeReport{NoData: true, Elapsed: time.Since(start)}
	}
	day, _ := Mode(days)
	hour, _ := Mode(hours)

	return domain.TimeReport{
		PopularMonth: intMode(month),
		PopularDay:   intMode(day),
		PopularHour:  intMode(hour),
		Elapsed:      time.Since(start),
	}
}

func intMode(c Count[int]) *domain.IntMode {
	return &domain.IntMode{Value: c.Value, Count: c.N}
}

func stringMode(c Count[string]) *domain.StringMode {
	return &domain.StringMode{Value: c.Value, Count: c.N}
}
