package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		input   string
		want    Section
		wantErr bool
	}{
		{"time", SectionTime, false},
		{" Stations ", SectionStations, false},
		{"DURATION", SectionDuration, false},
		{"users", SectionUsers, false},
		{"all", SectionAll, false},
		{"weather", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSection(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeanDisplay(t *testing.T) {
	assert.Equal(t, "120.00", DurationReport{MeanSeconds: 120}.MeanDisplay())
	assert.Equal(t, "200.25", DurationReport{MeanSeconds: 200.25}.MeanDisplay())
	assert.Equal(t, "0.33", DurationReport{MeanSeconds: 1.0 / 3}.MeanDisplay())
}

func TestCalendarNames(t *testing.T) {
	assert.Equal(t, "all", MonthName(0))
	assert.Equal(t, "March", MonthName(3))
	assert.Equal(t, "", MonthName(13))
	assert.Equal(t, "Monday", DayName(1))
	assert.Equal(t, "Sunday", DayName(7))
	assert.Equal(t, "", DayName(8))

	assert.Equal(t, 7, DayOfWeek(time.Sunday))
	assert.Equal(t, 1, DayOfWeek(time.Monday))
	assert.Equal(t, 6, DayOfWeek(time.Saturday))

	assert.Equal(t, 2, ParseMonthName("feb"))
	assert.Equal(t, 6, ParseMonthName("June"))
	assert.Equal(t, 0, ParseMonthName("ju"))
	assert.Equal(t, 3, ParseDayName("wednesday"))
	assert.Equal(t, 0, ParseDayName("funday"))
}

func TestDemographicsReportOmitsAbsentBlocks(t *testing.T) {
	report := DemographicsReport{
		UserTypes: &FrequencyReport{Counts: []CountEntry{{Value: "Subscriber", Count: 1}}},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "user_types")
	assert.NotContains(t, decoded, "genders")
	assert.NotContains(t, decoded, "birth_years")
	assert.NotContains(t, decoded, "no_data")
}

func TestSectionReport(t *testing.T) {
	report := &AnalysisReport{
		Duration: DurationReport{TripCount: 3, TotalSeconds: 360, MeanSeconds: 120},
	}

	assert.Equal(t, report.Duration, report.SectionReport(SectionDuration))
	assert.Same(t, report, report.SectionReport(SectionAll))
}

func TestZeroAggregatesAreSerialized(t *testing.T) {
	data, err := json.Marshal(DemographicsReport{BirthYears: &BirthYearReport{MostCommon: &IntMode{}}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"earliest":0`)
	assert.Contains(t, string(data), `"most_recent":0`)

	data, err = json.Marshal(DurationReport{TripCount: 2})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(0), decoded["total_seconds"])
	assert.Equal(t, float64(0), decoded["mean_seconds"])
	assert.Equal(t, float64(2), decoded["trip_count"])
}
