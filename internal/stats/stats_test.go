package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/dataset"
	"bikeshare/internal/shared/testutil"
	"bikeshare/pkg/contracts/domain"
)

func load(t *testing.T, city dataset.City) *dataset.Table {
	t.Helper()
	table, err := dataset.NewFileLoader(testutil.DatasetDir(t), nil).Load(context.Background(), city)
	require.NoError(t, err)
	return table
}

func tripsAt(times ...string) *dataset.Table {
	rows := make([]dataset.Trip, len(times))
	for i, ts := range times {
		start, _ := time.Parse("2006-01-02 15:04", ts)
		rows[i] = dataset.Trip{
			StartTime: start,
			Month:     int(start.Month()),
			DayOfWeek: domain.DayOfWeek(start.Weekday()),
		}
	}
	return &dataset.Table{Rows: rows}
}

func TestTemporal(t *testing.T) {
	report := Temporal(load(t, dataset.Chicago))

	assert.False(t, report.NoData)
	assert.Equal(t, &domain.IntMode{Value: 1, Count: 2}, report.PopularMonth)
	assert.Equal(t, &domain.IntMode{Value: 1, Count: 2}, report.PopularDay)
	assert.Equal(t, &domain.IntMode{Value: 9, Count: 2}, report.PopularHour)
}

func TestTemporal_DayTieBreak(t *testing.T) {
	// Monday, Monday, Tuesday, Tuesday
	table := tripsAt("2017-01-02 08:00", "2017-01-09 08:00", "2017-01-03 09:00", "2017-01-10 09:00")

	report := Temporal(table)
	assert.Equal(t, 1, report.PopularDay.Value)
	assert.Equal(t, 8, report.PopularHour.Value)
}

func TestStations(t *testing.T) {
	report := Stations(load(t, dataset.Chicago))

	assert.Equal(t, &domain.StringMode{Value: "A", Count: 3}, report.PopularStart)
	assert.Equal(t, &domain.StringMode{Value: "B", Count: 3}, report.PopularEnd)
	assert.Equal(t, &domain.StringMode{Value: "A to B", Count: 2}, report.PopularRoute)
}

func TestStations_ThreeTrips(t *testing.T) {
	table := &dataset.Table{Rows: []dataset.Trip{
		{StartStation: "A", EndStation: "X"},
		{StartStation: "A", EndStation: "Y"},
		{StartStation: "B", EndStation: "X"},
	}}

	report := Stations(table)
	assert.Equal(t, "A", report.PopularStart.Value)
	assert.Equal(t, "X", report.PopularEnd.Value)
	assert.Equal(t, "A to X", report.PopularRoute.Value)
}

func TestDurations(t *testing.T) {
	table := &dataset.Table{Rows: []dataset.Trip{{Duration: 60}, {Duration: 120}, {Duration: 180}}}

	report := Durations(table)
	assert.Equal(t, 3, report.TripCount)
	assert.Equal(t, 360.0, report.TotalSeconds)
	assert.Equal(t, 120.0, report.MeanSeconds)
	assert.Equal(t, "120.00", report.MeanDisplay())

	chicago := Durations(load(t, dataset.Chicago))
	assert.Equal(t, 600.0, chicago.TotalSeconds)
	assert.Equal(t, "150.00", chicago.MeanDisplay())

	washington := Durations(load(t, dataset.Washington))
	assert.Equal(t, 400.5, washington.TotalSeconds)
	assert.Equal(t, "200.25", washington.MeanDisplay())
}

func TestDemographics_AllColumns(t *testing.T) {
	report := Demographics(load(t, dataset.Chicago))

	require.NotNil(t, report.UserTypes)
	assert.Equal(t, []domain.CountEntry{{Value: "Subscriber", Count: 3}, {Value: "Customer", Count: 1}}, report.UserTypes.Counts)
	assert.Zero(t, report.UserTypes.Missing)

	require.NotNil(t, report.Genders)
	assert.Equal(t, []domain.CountEntry{{Value: "Male", Count: 2}, {Value: "Female", Count: 1}}, report.Genders.Counts)
	assert.Equal(t, 1, report.Genders.Missing)

	require.NotNil(t, report.BirthYears)
	assert.Equal(t, 1985, report.BirthYears.Earliest)
	assert.Equal(t, 1990, report.BirthYears.MostRecent)
	assert.Equal(t, &domain.IntMode{Value: 1990, Count: 2}, report.BirthYears.MostCommon)
	assert.Equal(t, 1, report.BirthYears.Missing)
}

func TestDemographics_NewYorkCityGenderTie(t *testing.T) {
	report := Demographics(load(t, dataset.NewYorkCity))

	assert.Equal(t, []domain.CountEntry{{Value: "Female", Count: 1}, {Value: "Male", Count: 1}}, report.Genders.Counts)
	assert.Equal(t, &domain.IntMode{Value: 1970, Count: 1}, report.BirthYears.MostCommon)
}

func TestDemographics_MissingColumns(t *testing.T) {
	report := Demographics(load(t, dataset.Washington))

	assert.False(t, report.NoData)
	require.NotNil(t, report.UserTypes)
	assert.Nil(t, report.Genders)
	assert.Nil(t, report.BirthYears)
}

func TestDemographics_OnlyNullBirthYears(t *testing.T) {
	table := &dataset.Table{
		Schema: dataset.Schema{HasBirthYear: true},
		Rows:   []dataset.Trip{{}, {}},
	}

	report := Demographics(table)
	require.NotNil(t, report.BirthYears)
	assert.True(t, report.BirthYears.NoData)
	assert.Nil(t, report.BirthYears.MostCommon)
	assert.Equal(t, 2, report.BirthYears.Missing)
}

func TestEmptyTableYieldsNoData(t *testing.T) {
	empty := load(t, dataset.Chicago).WithRows(nil)

	assert.True(t, Temporal(empty).NoData)
	assert.Nil(t, Temporal(empty).PopularMonth)
	assert.True(t, Stations(empty).NoData)
	assert.Nil(t, Stations(empty).PopularRoute)
	assert.True(t, Durations(empty).NoData)
	assert.True(t, Demographics(empty).NoData)
	assert.Nil(t, Demographics(empty).UserTypes)

	report := Analyze(empty, domain.FilterSummary{Month: 2})
	assert.True(t, report.NoData)
	assert.Zero(t, report.RowCount)
	assert.Equal(t, "chicago", report.City)
}

func TestAnalyze(t *testing.T) {
	table := load(t, dataset.NewYorkCity)
	report := Analyze(table, domain.FilterSummary{Description: "month=all, day=all"})

	assert.Equal(t, "new york city", report.City)
	assert.Equal(t, 3, report.RowCount)
	assert.False(t, report.NoData)
	assert.Equal(t, 4, report.Time.PopularMonth.Value)
	assert.Equal(t, 7, report.Time.PopularHour.Value)
	assert.Equal(t, "Broadway", report.Stations.PopularStart.Value)
	assert.Equal(t, "Broadway to Wall St", report.Stations.PopularRoute.Value)
	assert.Equal(t, 1500.0, report.Duration.TotalSeconds)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestAnalyzeSection(t *testing.T) {
	table := load(t, dataset.Chicago)

	report := AnalyzeSection(table, domain.FilterSummary{}, domain.SectionDuration)
	assert.Equal(t, 4, report.Duration.TripCount)
	assert.Nil(t, report.Time.PopularMonth)
	assert.Nil(t, report.Demographics.UserTypes)

	full := AnalyzeSection(table, domain.FilterSummary{}, domain.SectionAll)
	assert.NotNil(t, full.Time.PopularMonth)
	assert.NotNil(t, full.Demographics.UserTypes)
}
