// Package exporter writes analysis reports and raw trip rows to files.
//
// CSVWriter: core CSV writing with headers, streaming and a UTF-8 BOM for
// Excel compatibility.
//
// ReportExporter: flattens a domain.AnalysisReport into one table per
// section and writes it as a long-form CSV or as an XLSX workbook with one
// sheet per section.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(paths, logger)
//	path, err := exp.Export(report, exporter.FormatXLSX, "chicago_march.xlsx")
package exporter
