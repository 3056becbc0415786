// Package files locates report sources on disk.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ctreport/internal/validation"
)

// FileInfo represents information about a discovered report source
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// FindReportSources lists the report files (.xlsx, .xls, .csv) directly
// inside dir, skipping Excel lock files, sorted by name.
func FindReportSources(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !validation.AllowedExtension(filepath.Ext(name)) {
			continue
		}
		if strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindByPattern finds report sources matching a glob pattern under dir
func FindByPattern(dir, pattern string) ([]FileInfo, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Latest returns the most recently modified file from a list
func Latest(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}
	return latest, true
}
