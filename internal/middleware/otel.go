package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"ctreport/internal/infrastructure"
)

// OTelMiddleware provides OpenTelemetry instrumentation for HTTP requests.
type OTelMiddleware struct {
	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestCount    metric.Int64Counter
}

// NewOTelMiddleware creates HTTP instrumentation from the shared providers.
func NewOTelMiddleware(providers *infrastructure.OTelProviders) (*OTelMiddleware, error) {
	if providers == nil || providers.Tracer == nil || providers.Meter == nil {
		return nil, fmt.Errorf("telemetry providers not initialized")
	}

	duration, err := providers.Meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	count, err := providers.Meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total HTTP requests handled"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	return &OTelMiddleware{
		tracer:          providers.Tracer,
		requestDuration: duration,
		requestCount:    count,
	}, nil
}

// Handler returns the middleware handler function
func (m *OTelMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Extract trace context from incoming request
		ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(r.Header))

		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		ctx, span := m.tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
				attribute.String("user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		// Span trace ID takes over as the logging trace_id.
		ctx = infrastructure.WithTraceID(ctx, span.SpanContext().TraceID().String())
		r = r.WithContext(ctx)

		ww := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start).Seconds()

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", r.URL.Path),
			attribute.Int("http.status_code", ww.statusCode),
		)
		m.requestDuration.Record(ctx, elapsed, attrs)
		m.requestCount.Add(ctx, 1, attrs)

		span.SetAttributes(attribute.Int("http.status_code", ww.statusCode))
		if ww.statusCode >= 500 {
			span.SetStatus(codes.Error, http.StatusText(ww.statusCode))
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
