package config

// Application metadata
const (
	AppName        = "CT Report Analyzer"
	AppDescription = "Cooling tower water treatment report analysis"
)

// MaxUploadBytes is the hard cap on report uploads regardless of config.
const MaxUploadBytes = 50 << 20
