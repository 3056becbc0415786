package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// utf8BOM helps Excel recognize UTF-8 encoded CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes headers and records to w
func (c *CSVWriter) WriteCSV(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes a CSV file at filePath, creating parent directories
func (c *CSVWriter) WriteFile(filePath string, options WriteOptions) error {
	c.logger.Info("writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := c.WriteCSV(file, options); err != nil {
		return err
	}
	return file.Close()
}

// StreamWriter provides streaming CSV writing for large result sets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (c *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	c.logger.Info("creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
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
