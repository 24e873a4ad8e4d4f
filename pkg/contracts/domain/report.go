package domain

import (
	"fmt"
	"strings"
	"time"
)

// Section identifies one of the statistics reports
type Section string

const (
	SectionAll      Section = "all"
	SectionTime     Section = "time"
	SectionStations Section = "stations"
	SectionDuration Section = "duration"
	SectionUsers    Section = "users"
)

// Sections lists the individual report sections in display order
var Sections = []Section{SectionTime, SectionStations, SectionDuration, SectionUsers}

// ParseSection validates a section name
func ParseSection(s string) (Section, error) {
	switch sec := Section(strings.ToLower(strings.TrimSpace(s))); sec {
	case SectionAll, SectionTime, SectionStations, SectionDuration, SectionUsers:
		return sec, nil
	default:
		return "", fmt.Errorf("unknown section %q", s)
	}
}

// Title returns the heading printed above a section
func (s Section) Title() string {
	switch s {
	case SectionTime:
		return "The Most Frequent Times of Travel"
	case SectionStations:
		return "The Most Popular Stations and Trip"
	case SectionDuration:
		return "Trip Duration"
	case SectionUsers:
		return "User Stats"
	default:
		return "Bikeshare Statistics"
	}
}

// IntMode is the most frequent integer value and how often it occurred
type IntMode struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// StringMode is the most frequent text value and how often it occurred
type StringMode struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TimeReport holds the most frequent times of travel
type TimeReport struct {
	NoData       bool          `json:"no_data,omitempty"`
	PopularMonth *IntMode      `json:"popular_month,omitempty"`
	PopularDay   *IntMode      `json:"popular_day,omitempty"`
	PopularHour  *IntMode      `json:"popular_hour,omitempty"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// StationReport holds the most popular stations and route
type StationReport struct {
	NoData       bool          `json:"no_data,omitempty"`
	PopularStart *StringMode   `json:"popular_start_station,omitempty"`
	PopularEnd   *StringMode   `json:"popular_end_station,omitempty"`
	PopularRoute *StringMode   `json:"popular_route,omitempty"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// DurationReport holds trip duration aggregates in seconds
type DurationReport struct {
	NoData       bool          `json:"no_data,omitempty"`
	TripCount    int           `json:"trip_count"`
	TotalSeconds float64       `json:"total_seconds"`
	MeanSeconds  float64       `json:"mean_seconds"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// MeanDisplay formats the mean travel time with two decimals
func (r DurationReport) MeanDisplay() string {
	return fmt.Sprintf("%.2f", r.MeanSeconds)
}

// CountEntry is one distinct value and its frequency
type CountEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FrequencyReport lists distinct values by descending count. Missing counts
// rows whose cell was empty.
type FrequencyReport struct {
	Counts  []CountEntry `json:"counts"`
	Missing int          `json:"missing"`
}

// BirthYearReport summarizes the non-null birth years
type BirthYearReport struct {
	NoData     bool     `json:"no_data,omitempty"`
	Earliest   int      `json:"earliest"`
	MostRecent int      `json:"most_recent"`
	MostCommon *IntMode `json:"most_common,omitempty"`
	Missing    int      `json:"missing"`
}

// DemographicsReport holds user statistics. Blocks for columns absent from
// the dataset are nil.
type DemographicsReport struct {
	NoData     bool             `json:"no_data,omitempty"`
	UserTypes  *FrequencyReport `json:"user_types,omitempty"`
	Genders    *FrequencyReport `json:"genders,omitempty"`
	BirthYears *BirthYearReport `json:"birth_years,omitempty"`
	Elapsed    time.Duration    `json:"elapsed_ns"`
}

// FilterSummary echoes the filter an analysis ran with
type FilterSummary struct {
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	Description string `json:"description"`
}

// AnalysisReport combines the four statistics reports for one filtered table
type AnalysisReport struct {
	City         string             `json:"city"`
	Filter       FilterSummary      `json:"filter"`
	RowCount     int                `json:"row_count"`
	NoData       bool               `json:"no_data,omitempty"`
	Time         TimeReport         `json:"time"`
	Stations     StationReport      `json:"stations"`
	Duration     DurationReport     `json:"duration"`
	Demographics DemographicsReport `json:"demographics"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// SectionReport returns the report for one section, or the whole analysis for SectionAll
func (r *AnalysisReport) SectionReport(s Section) interface{} {
	switch s {
	case SectionTime:
		return r.Time
	case SectionStations:
		return r.Stations
	case SectionDuration:
		return r.Duration
	case SectionUsers:
		return r.Demographics
	default:
		return r
	}
}

// RowPage is one window of raw trip rows
type RowPage struct {
	City       string              `json:"city"`
	Columns    []string            `json:"columns"`
	Rows       []map[string]string `json:"rows"`
	Offset     int                 `json:"offset"`
	NextOffset int                 `json:"next_offset"`
	HasMore    bool                `json:"has_more"`
	Total      int                 `json:"total"`
}

// CityInfo describes one supported dataset
type CityInfo struct {
	Name      string `json:"name"`
	File      string `json:"file"`
	Available bool   `json:"available"`
}
