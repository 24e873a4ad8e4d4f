// Package stats computes descriptive statistics over filtered trip tables.
//
// Temporal, Stations, Durations and Demographics are independent and never
// fail: an empty table yields a report with NoData set. Modes break ties in
// favour of the smallest value.
package stats
