package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "ct-report-analyzer"
	ServiceVersion = "0.1.0"
	MeterName      = "ctreport"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers along with the report
// pipeline instruments recorded by the service layer.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger

	ReportsAnalyzed  metric.Int64Counter
	ViolationsFound  metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		EnableMetrics:  true,
		EnableTracing:  true,
		SampleRatio:    1.0,
	}
}

// InitializeOTel sets up tracing (stdout exporter) and metrics (Prometheus
// exporter) for the report pipeline.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{Logger: logger}

	if cfg.EnableTracing {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(MeterName)
	}

	if cfg.EnableMetrics {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		providers.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exporter),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(providers.MeterProvider)
		providers.Meter = providers.MeterProvider.Meter(MeterName)
		providers.PrometheusHTTP = promhttp.Handler()

		if err := providers.createInstruments(); err != nil {
			return nil, fmt.Errorf("failed to create instruments: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

// createResource builds the service resource. The attributes carry the
// 1.28.0 schema URL, so the SDK default resource is not merged in.
func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	)
}

// createInstruments registers the report pipeline instruments.
func (p *OTelProviders) createInstruments() error {
	var err error

	p.ReportsAnalyzed, err = p.Meter.Int64Counter(
		"ctreport_reports_analyzed_total",
		metric.WithDescription("Number of report uploads analyzed"),
	)
	if err != nil {
		return err
	}

	p.ViolationsFound, err = p.Meter.Int64Counter(
		"ctreport_violations_found_total",
		metric.WithDescription("Number of control-limit violations detected"),
	)
	if err != nil {
		return err
	}

	p.AnalysisDuration, err = p.Meter.Float64Histogram(
		"ctreport_analysis_duration_seconds",
		metric.WithDescription("Wall time spent analyzing one upload"),
		metric.WithUnit("s"),
	)
	return err
}

// RecordAnalysis records one completed analysis.
func (p *OTelProviders) RecordAnalysis(ctx context.Context, violations int, seconds float64) {
	if p == nil || p.ReportsAnalyzed == nil {
		return
	}
	p.ReportsAnalyzed.Add(ctx, 1)
	p.ViolationsFound.Add(ctx, int64(violations))
	p.AnalysisDuration.Record(ctx, seconds)
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown tracer provider: %w", err)
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}
	return nil
}
