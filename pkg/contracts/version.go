package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application
	Version = "0.1.0"

	// DataFormatVersion is the version of the analysis result format
	DataFormatVersion = "v1"
)

var (
	// BuildTime is set during build using ldflags
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags
	GitCommit = "unknown"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	DataFormat   string `json:"data_format"`
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		DataFormat:   DataFormatVersion,
	}
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("CT Report Analyzer v%s", Version)
}
