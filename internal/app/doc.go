// Package app wires the application together: configuration, logging,
// OpenTelemetry, services, middleware chain and the HTTP server with
// graceful shutdown.
package app
