package stats

import (
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/pkg/contracts/domain"
)

// Stations reports the most common start station, end station and route
func Stations(t *dataset.Table) domain.StationReport {
	start := time.Now()

	starts := make([]string, 0, t.Len())
	ends := make([]string, 0, t.Len())
	routes := make([]string, 0, t.Len())
	for _, row := range t.Rows {
		starts = append(starts, row.StartStation)
		ends = append(ends, row.EndStation)
		routes = append(routes, row.Route())
	}

	startMode, err := Mode(starts)
	if err != nil {
		return domain.StationReport{NoData: true, Elapsed: time.Since(start)}
	}
	endMode, _ := Mode(ends)
	routeMode, _ := Mode(routes)

	return domain.StationReport{
		PopularStart: stringMode(startMode),
		PopularEnd:   stringMode(endMode),
		PopularRoute: stringMode(routeMode),
		Elapsed:      time.Since(start),
	}
}
