// Package services holds the application services behind the HTTP and CLI
// boundaries. ReportService runs the full analysis pipeline over an
// uploaded report; HealthService reports process health for probes.
package services
