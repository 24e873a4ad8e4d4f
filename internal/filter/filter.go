// Package filter restricts trip tables to a month and day of week.
package filter

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"bikeshare/internal/dataset"
	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

const (
	// MaxMonth is the last month present in the trip datasets
	MaxMonth = 6
	MaxDay   = 7
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Filter selects trips by month (1-6) and day of week (1-7, Monday = 1).
// Zero means no restriction.
type Filter struct {
	Month int `json:"month" validate:"min=0,max=6"`
	Day   int `json:"day" validate:"min=0,max=7"`
}

// Validate checks the field ranges
func (f Filter) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewAppValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return apperrors.NewAppValidationError(strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "month":
		return fmt.Sprintf("month must be between 0 and %d, got %v", MaxMonth, fe.Value())
	case "day":
		return fmt.Sprintf("day must be between 0 and %d, got %v", MaxDay, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// IsZero reports whether the filter keeps every row
func (f Filter) IsZero() bool {
	return f.Month == 0 && f.Day == 0
}

// String renders the filter as "month=March, day=Monday"
func (f Filter) String() string {
	return fmt.Sprintf("month=%s, day=%s", domain.MonthName(f.Month), domain.DayName(f.Day))
}

// Summary returns the filter in report form
func (f Filter) Summary() domain.FilterSummary {
	return domain.FilterSummary{
		Month:       f.Month,
		Day:         f.Day,
		Description: f.String(),
	}
}

// Apply returns a new table holding the rows of t that match f, in order.
// t is never modified.
func Apply(t *dataset.Table, f Filter) *dataset.Table {
	rows := make([]dataset.Trip, 0, t.Len())
	for _, row := range t.Rows {
		if f.Month != 0 && row.Month != f.Month {
			continue
		}
		if f.Day != 0 && row.DayOfWeek != f.Day {
			continue
		}
		rows = append(rows, row)
	}
	return t.WithRows(rows)
}

// Parse builds a validated filter from user supplied text. Each value may be
// empty, "all", a number, or a month/day name.
func Parse(month, day string) (Filter, error) {
	m, err := parseField("month", month, domain.ParseMonthName)
	if err != nil {
		return Filter{}, err
	}
	d, err := parseField("day", day, domain.ParseDayName)
	if err != nil {
		return Filter{}, err
	}

	f := Filter{Month: m, Day: d}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func parseField(field, value string, byName func(string) int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return 0, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	if n := byName(value); n != 0 {
		return n, nil
	}
	return 0, apperrors.NewAppValidationError(fmt.Sprintf("%s: unrecognized value %q", field, value))
}
