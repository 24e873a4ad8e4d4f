// Package dataset loads city trip files into immutable in-memory tables.
//
// A Table keeps every source column verbatim for raw-row display and adds
// typed fields for the columns the statistics need, plus the derived month
// and day_of_week of each trip's start time.
package dataset
