// Package validation checks report sources before they reach the parsing
// pipeline: path validation for the CLI and upload validation for the HTTP
// boundary.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ReportValidator validates report sources before analysis
type ReportValidator struct {
	logger       *slog.Logger
	maxSizeBytes int64
}

// NewReportValidator creates a new report validator. maxSizeBytes of zero
// disables the size check.
func NewReportValidator(logger *slog.Logger, maxSizeBytes int64) *ReportValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportValidator{
		logger:       logger,
		maxSizeBytes: maxSizeBytes,
	}
}

// AllowedExtension reports whether ext (with leading dot, any case) is an
// accepted report source format.
func AllowedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

// ValidateUpload checks an uploaded report's filename and declared size.
// Used at the HTTP boundary before the body is read.
func (v *ReportValidator) ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedExtension(ext) {
		v.logger.Warn("rejected upload with unsupported extension",
			slog.String("filename", filename),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported report format %q, expected .xlsx, .xls or .csv", ext)
	}

	if strings.HasPrefix(filepath.Base(filename), "~$") {
		v.logger.Warn("rejected temporary Excel file",
			slog.String("filename", filename))
		return fmt.Errorf("%s is a temporary Excel lock file", filename)
	}

	if v.maxSizeBytes > 0 && size > v.maxSizeBytes {
		v.logger.Warn("rejected oversized upload",
			slog.String("filename", filename),
			slog.Int64("size", size),
			slog.Int64("limit", v.maxSizeBytes))
		return fmt.Errorf("report is %d bytes, limit is %d", size, v.maxSizeBytes)
	}

	return nil
}

// ValidateReportFile checks that path points to a readable report source on
// disk. Used by the CLI.
func (v *ReportValidator) ValidateReportFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("report file does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("failed to stat report file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("path is a directory, not a file",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	if err := v.ValidateUpload(path, info.Size()); err != nil {
		return err
	}

	// Confirm readability before handing the path downstream.
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("report file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("report file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the export directory exists and is writable
func (v *ReportValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}
