package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bikeshare/pkg/contracts/domain"
)

// writeReportXLSX writes one worksheet per report sheet
func (e *ReportExporter) writeReportXLSX(report *domain.AnalysisReport, fullPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range Sheets(report) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return "", fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	rows := make([][]string, 0, len(sheet.Records)+1)
	rows = append(rows, sheet.Headers)
	rows = append(rows, sheet.Records...)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet.Name, i+1, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(sheet.Headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet.Name, err)
	}
	return f.SetColWidth(sheet.Name, "A", last, 28)
}
