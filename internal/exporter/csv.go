package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bikeshare/internal/config"
)

// utf8BOM helps Excel recognize UTF-8 CSV files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// WriteCSV writes data to a CSV file and returns the resolved path
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	stream, err := w.createStream(fullPath, options.Headers, options.BOMPrefix)
	if err != nil {
		return "", err
	}

	for i, record := range options.Records {
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("failed to finish %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer with a BOM and headers
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("Creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	return w.createStream(fullPath, headers, true)
}

func (w *CSVWriter) createStream(fullPath string, headers []string, bom bool) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if bom {
		if _, err := file.Write(utf8BOM); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{path: fullPath, file: file, writer: writer}, nil
}

// Path returns the file being written
func (s *StreamWriter) Path() string {
	return s.path
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath places relative paths in the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetReportPath(filePath)
}
