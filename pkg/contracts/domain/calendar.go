package domain

import (
	"strings"
	"time"
)

// Months covered by the trip datasets, indexed from 1.
var monthNames = []string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

// Day names indexed from 1 with Monday first.
var dayNames = []string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MonthName returns the English name of month m (1-12), "all" for 0
func MonthName(m int) string {
	if m == 0 {
		return "all"
	}
	if m < 0 || m >= len(monthNames) {
		return ""
	}
	return monthNames[m]
}

// DayName returns the English name of day d (1-7, Monday = 1), "all" for 0
func DayName(d int) string {
	if d == 0 {
		return "all"
	}
	if d < 0 || d >= len(dayNames) {
		return ""
	}
	return dayNames[d]
}

// DayOfWeek maps a time.Weekday onto the Monday = 1 ... Sunday = 7 numbering.
func DayOfWeek(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// ParseMonthName resolves a month name or its three letter prefix, returning 0 if unknown
func ParseMonthName(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0
	}
	for i := 1; i < len(monthNames); i++ {
		if strings.HasPrefix(strings.ToLower(monthNames[i]), s) {
			return i
		}
	}
	return 0
}

// ParseDayName resolves a day name or its three letter prefix, returning 0 if unknown
func ParseDayName(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0
	}
	for i := 1; i < len(dayNames); i++ {
		if strings.HasPrefix(strings.ToLower(dayNames[i]), s) {
			return i
		}
	}
	return 0
}
