package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/filter"
	"bikeshare/internal/shared/testutil"
	"bikeshare/internal/stats"
	"bikeshare/pkg/contracts/domain"
)

func setupExporter(t *testing.T) (*ReportExporter, *config.Paths) {
	t.Helper()
	base := t.TempDir()
	paths := &config.Paths{
		BaseDir:    base,
		ReportsDir: filepath.Join(base, "reports"),
	}
	logger, _ := testutil.NewTestLogger(t)
	return NewReportExporter(paths, logger), paths
}

func chicagoReport(t *testing.T, f filter.Filter) (*dataset.Table, *domain.AnalysisReport) {
	t.Helper()
	table, err := dataset.NewFileLoader(testutil.DatasetDir(t), nil).Load(context.Background(), dataset.Chicago)
	require.NoError(t, err)
	filtered := filter.Apply(table, f)
	return filtered, stats.Analyze(filtered, f.Summary())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM), "CSV should start with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
}

func TestSheets(t *testing.T) {
	_, report := chicagoReport(t, filter.Filter{})
	sheets := Sheets(report)

	require.Len(t, sheets, 5)
	assert.Equal(t, []string{"summary", "time", "stations", "duration", "users"},
		[]string{sheets[0].Name, sheets[1].Name, sheets[2].Name, sheets[3].Name, sheets[4].Name})

	assert.Equal(t, []string{"Most common month", "January", "2"}, sheets[1].Records[0])
	assert.Equal(t, []string{"Most common trip route", "A to B", "2"}, sheets[2].Records[2])
	assert.Equal(t, []string{"Average travel time (s)", "150.00", "4"}, sheets[3].Records[1])
	assert.Contains(t, sheets[4].Records, []string{"Gender", "(missing)", "1"})
	assert.Contains(t, sheets[4].Records, []string{"Most common birth year", "1990", "2"})
}

func TestExport_CSV(t *testing.T) {
	exp, paths := setupExporter(t)
	_, report := chicagoReport(t, filter.Filter{Month: 1})

	path, err := exp.Export(report, FormatCSV, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.ReportsDir, "chicago_january_all.csv"), path)

	records := readCSV(t, path)
	assert.Equal(t, []string{"Section", "Metric", "Value", "Count"}, records[0])
	assert.Equal(t, []string{"summary", "City", "chicago", ""}, records[1])
	assert.Contains(t, records, []string{"duration", "Total travel time (s)", "180.00", "2"})
	assert.Contains(t, records, []string{"users", "User Type", "Subscriber", "2"})
}

func TestExport_XLSX(t *testing.T) {
	exp, _ := setupExporter(t)
	_, report := chicagoReport(t, filter.Filter{})

	out := filepath.Join(t.TempDir(), "nested", "report.xlsx")
	path, err := exp.Export(report, FormatXLSX, out)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"summary", "time", "stations", "duration", "users"}, f.GetSheetList())

	rows, err := f.GetRows("stations")
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value", "Count"}, rows[0])
	assert.Equal(t, []string{"Most common start station", "A", "3"}, rows[1])

	value, err := f.GetCellValue("summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "chicago", value)
}

func TestExport_RefusesEmptyReport(t *testing.T) {
	exp, _ := setupExporter(t)
	_, report := chicagoReport(t, filter.Filter{Month: 2})
	require.True(t, report.NoData)

	_, err := exp.Export(report, FormatCSV, "empty.csv")
	require.Error(t, err)
	assert.True(t, apperrors.IsEmptyResult(err))
}

func TestExportRows(t *testing.T) {
	exp, paths := setupExporter(t)
	table, _ := chicagoReport(t, filter.Filter{Day: 1})

	path, err := exp.ExportRows(table, "rows.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.ReportsDir, "rows.csv"), path)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, table.Columns, records[0])
	assert.Equal(t, "2017-01-02 09:07:57", records[1][1])

	_, err = exp.ExportRows(table.WithRows(nil), "none.csv")
	assert.True(t, apperrors.IsEmptyResult(err))
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	w := NewCSVWriter(&config.Paths{ReportsDir: t.TempDir()}, nil)
	target := filepath.Join(t.TempDir(), "sub", "plain.csv")

	path, err := w.WriteCSV(target, WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "x,y"}},
	})
	require.NoError(t, err)
	assert.Equal(t, target, path)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n", string(data))
}
