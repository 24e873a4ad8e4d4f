package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

const (
	extCSV  = ".csv"
	extXLSX = ".xlsx"

	// cancelCheckInterval is how many rows are parsed between context checks
	cancelCheckInterval = 1024
)

// timeLayouts are tried in order when parsing Start Time
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
}

// Loader loads the trip table for a city
type Loader interface {
	Load(ctx context.Context, city City) (*Table, error)
}

// FileLoader reads datasets from a directory of CSV or XLSX files
type FileLoader struct {
	dir    string
	logger *slog.Logger
}

// NewFileLoader creates a loader rooted at dir
func NewFileLoader(dir string, logger *slog.Logger) *FileLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLoader{
		dir:    dir,
		logger: logger.With(slog.String("component", "dataset_loader")),
	}
}

// Dir returns the data directory
func (l *FileLoader) Dir() string {
	return l.dir
}

// Resolve returns the file backing city. The CSV file wins when both exist.
func (l *FileLoader) Resolve(city City) (string, error) {
	base := city.BaseName()
	if base == "" {
		return "", apperrors.NewDatasetNotFoundError(city.String(), nil)
	}

	for _, ext := range []string{extCSV, extXLSX} {
		path := filepath.Join(l.dir, base+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", apperrors.NewDatasetNotFoundError(city.String(), os.ErrNotExist).
		WithContext("dir", l.dir)
}

// Available reports whether a dataset file exists for city
func (l *FileLoader) Available(city City) bool {
	_, err := l.Resolve(city)
	return err == nil
}

// Load reads and parses the dataset for city
func (l *FileLoader) Load(ctx context.Context, city City) (*Table, error) {
	start := time.Now()

	path, err := l.Resolve(city)
	if err != nil {
		return nil, err
	}

	var table *Table
	switch strings.ToLower(filepath.Ext(path)) {
	case extXLSX:
		table, err = l.loadXLSX(ctx, path)
	default:
		table, err = l.loadCSV(ctx, path)
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to load dataset",
			slog.String("city", city.String()),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}
	table.City = city

	l.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("city", city.String()),
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)),
		slog.Duration("duration", time.Since(start)))

	return table, nil
}

func (l *FileLoader) loadCSV(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDatasetNotFoundError(filepath.Base(path), err)
	}
	defer f.Close()

	return ReadCSV(ctx, filepath.Base(path), f)
}

func (l *FileLoader) loadXLSX(ctx context.Context, path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewDatasetNotFoundError(filepath.Base(path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewMalformedDataError(fmt.Sprintf("%s: workbook has no sheets", filepath.Base(path)), nil)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, apperrors.NewMalformedDataError(fmt.Sprintf("%s: cannot read sheet %q", filepath.Base(path), sheets[0]), err)
	}
	defer rows.Close()

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	// Raw values keep date cells as serial numbers instead of the locale
	// display format; Start Time serials are rewritten to a parseable layout.
	startCol := -1
	next := func() ([]string, error) {
		if !rows.Next() {
			if err := rows.Error(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		record, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}

		if startCol < 0 {
			startCol = len(record)
			for i, name := range normalizeHeader(record) {
				if name == ColStartTime {
					startCol = i
					break
				}
			}
			return record, nil
		}
		if startCol < len(record) {
			record[startCol] = serialToTimestamp(record[startCol], date1904)
		}
		return record, nil
	}

	return parseRecords(ctx, filepath.Base(path), next)
}

// serialToTimestamp converts an Excel date serial to "2006-01-02 15:04:05".
// Text values are returned unchanged.
func serialToTimestamp(value string, date1904 bool) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return value
	}
	return t.Round(time.Second).Format(timeLayouts[0])
}

// ReadCSV parses a trip table from CSV data
func ReadCSV(ctx context.Context, source string, r io.Reader) (*Table, error) {
	return parseRecords(ctx, source, csv.NewReader(r).Read)
}

// parseRecords builds a table from a header record followed by data records.
// next returns io.EOF after the last record.
func parseRecords(ctx context.Context, source string, next func() ([]string, error)) (*Table, error) {
	header, err := next()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewMalformedDataError(fmt.Sprintf("%s: missing header row", source), nil)
	}
	if err != nil {
		return nil, apperrors.NewMalformedDataError(fmt.Sprintf("%s: cannot read header", source), err)
	}

	columns := normalizeHeader(header)
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingColumnsError(source, missing)
	}

	userTypeIdx, hasUserType := index[ColUserType]
	genderIdx, hasGender := index[ColGender]
	birthYearIdx, hasBirthYear := index[ColBirthYear]

	table := &Table{
		Source:  source,
		Columns: columns,
		Schema: Schema{
			HasUserType:  hasUserType,
			HasGender:    hasGender,
			HasBirthYear: hasBirthYear,
		},
	}

	for row := 1; ; row++ {
		if row%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewMalformedDataError(fmt.Sprintf("%s: row %d: cannot read record", source, row), err).
				WithContext("source", source).
				WithContext("row", row)
		}
		if isBlank(record) {
			row--
			continue
		}

		values := make([]string, len(columns))
		copy(values, record)

		trip := Trip{
			StartStation: strings.TrimSpace(values[index[ColStartStation]]),
			EndStation:   strings.TrimSpace(values[index[ColEndStation]]),
			Values:       values,
		}

		rawStart := strings.TrimSpace(values[index[ColStartTime]])
		trip.StartTime, err = parseTimestamp(rawStart)
		if err != nil {
			return nil, apperrors.NewInvalidValueError(source, row, ColStartTime, rawStart, err)
		}
		trip.Month = int(trip.StartTime.Month())
		trip.DayOfWeek = domain.DayOfWeek(trip.StartTime.Weekday())

		rawDuration := strings.TrimSpace(values[index[ColTripDuration]])
		trip.Duration, err = parseFinite(rawDuration)
		if err != nil {
			return nil, apperrors.NewInvalidValueError(source, row, ColTripDuration, rawDuration, err)
		}

		if hasUserType {
			trip.UserType = strings.TrimSpace(values[userTypeIdx])
		}
		if hasGender {
			trip.Gender = strings.TrimSpace(values[genderIdx])
		}
		if hasBirthYear {
			if raw := strings.TrimSpace(values[birthYearIdx]); raw != "" {
				year, err := parseFinite(raw)
				if err != nil {
					return nil, apperrors.NewInvalidValueError(source, row, ColBirthYear, raw, err)
				}
				trip.BirthYear = &year
			}
		}

		table.Rows = append(table.Rows, trip)
	}

	return table, nil
}

// normalizeHeader strips a UTF-8 BOM and surrounding whitespace
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[i] = strings.TrimSpace(name)
	}
	return columns
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseFinite parses a float and rejects NaN and the infinities, which
// strconv accepts
func parseFinite(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", value)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
