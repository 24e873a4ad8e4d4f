package stats

import (
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/pkg/contracts/domain"
)

// Durations reports the total and mean trip duration in seconds
func Durations(t *dataset.Table) domain.DurationReport {
	start := time.Now()

	if t.IsEmpty() {
		return domain.DurationReport{NoData: true, Elapsed: time.Since(start)}
	}

	var total float64
	for _, row := range t.Rows {
		total += row.Duration
	}

	n := t.Len()
	return domain.DurationReport{
		TripCount:    n,
		TotalSeconds: total,
		MeanSeconds:  total / float64(n),
		Elapsed:      time.Since(start),
	}
}
