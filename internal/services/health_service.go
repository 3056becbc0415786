package services

import (
	"context"
	"log/slog"
	"time"

	"ctreport/pkg/contracts"
)

// HealthStatus is the payload returned by the health endpoint
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthService reports process health for probes
type HealthService struct {
	logger  *slog.Logger
	started time.Time
}

// NewHealthService creates a health service
func NewHealthService(logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		logger:  logger.With(slog.String("component", "health_service")),
		started: time.Now(),
	}
}

// Check returns the current health status
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Version:   contracts.Version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}
}
