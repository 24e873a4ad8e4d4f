package dataset

import (
	"time"
)

// Source column names
const (
	ColStartTime    = "Start Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// RequiredColumns must be present in every dataset
var RequiredColumns = []string{ColStartTime, ColTripDuration, ColStartStation, ColEndStation}

// Schema records which optional columns a dataset carries
type Schema struct {
	HasUserType  bool
	HasGender    bool
	HasBirthYear bool
}

// Trip is one row of a trip table
type Trip struct {
	StartTime    time.Time
	Duration     float64
	StartStation string
	EndStation   string

	// Empty when the column is absent or the cell is blank
	UserType string
	Gender   string
	// Nil when the column is absent or the cell is blank
	BirthYear *float64

	Month     int
	DayOfWeek int

	// Values holds the raw cells aligned with Table.Columns
	Values []string
}

// Hour returns the start hour (0-23)
func (t Trip) Hour() int {
	return t.StartTime.Hour()
}

// Route returns "<start> to <end>"
func (t Trip) Route() string {
	return t.StartStation + " to " + t.EndStation
}

// Record returns the raw row keyed by column name
func (t Trip) Record(columns []string) map[string]string {
	record := make(map[string]string, len(columns))
	for i, col := range columns {
		if i < len(t.Values) {
			record[col] = t.Values[i]
		} else {
			record[col] = ""
		}
	}
	return record
}

// Table is an ordered set of trips from one dataset. A Table is never
// mutated after it is built; derived tables share Columns and trip values.
type Table struct {
	City    City
	Source  string
	Columns []string
	Schema  Schema
	Rows    []Trip
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty reports whether the table has no rows
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// WithRows returns a new table with the same columns and schema
func (t *Table) WithRows(rows []Trip) *Table {
	return &Table{
		City:    t.City,
		Source:  t.Source,
		Columns: t.Columns,
		Schema:  t.Schema,
		Rows:    rows,
	}
}
