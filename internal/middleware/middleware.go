package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"ctreport/internal/infrastructure"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "request-id"

// RequestID middleware generates a unique request ID for each request.
// This should be the FIRST middleware in the chain.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)

		// The request ID doubles as the trace_id for log correlation.
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = infrastructure.WithTraceID(ctx, requestID)

		// If there's an active span, its trace ID wins.
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			ctx = infrastructure.WithTraceID(ctx, span.SpanContext().TraceID().String())
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context, falling back to the trace ID.
func GetRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		return reqID
	}
	return infrastructure.GetTraceID(ctx)
}

// StructuredLogger provides Chi-compatible structured logging middleware using slog.
// This should come AFTER RequestID and RealIP middlewares.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := r.Context()
			traceID := infrastructure.GetTraceID(ctx)
			if traceID == "" {
				traceID, _ = ctx.Value(RequestIDKey).(string)
			}

			reqLogger := logger
			if traceID != "" {
				reqLogger = logger.With("trace_id", traceID)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLogger.InfoContext(ctx, "request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)

			next.ServeHTTP(ww, r)

			reqLogger.InfoContext(ctx, "request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		})
	}
}

// Recoverer recovers from panics and logs them with slog.
func Recoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					ctx := r.Context()

					logger.ErrorContext(ctx, "panic recovered",
						"panic", rvr,
						"stack", string(debug.Stack()),
						"method", r.Method,
						"path", r.URL.Path,
					)

					w.Header().Set("Content-Type", "application/problem+json")
					w.WriteHeader(http.StatusInternalServerError)

					traceID := infrastructure.GetTraceID(ctx)
					if traceID == "" {
						if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
							traceID = reqID
						}
					}

					response := `{"type":"/errors/internal-server-error","title":"Internal Server Error","status":500,"detail":"An unexpected error occurred","trace_id":"` + traceID + `"}`
					w.Write([]byte(response))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter provides rate limiting functionality with logging
type RateLimiter struct {
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimiter creates a new rate limiter with logging
func NewRateLimiter(rps float64, burst int, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Handler implements rate limiting middleware
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !rl.limiter.Allow() {
			rl.logger.WarnContext(ctx, "rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			w.Header().Set("Content-Type", "application/problem+json")
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)

			traceID := infrastructure.GetTraceID(ctx)
			response := `{"type":"/errors/rate-limit-exceeded","title":"Too Many Requests","status":429,"detail":"Rate limit exceeded. Please retry after 60 seconds","trace_id":"` + traceID + `"}`
			w.Write([]byte(response))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Timeout middleware with context and logging. The handler runs on the
// request goroutine and is expected to honor its context deadline; once it
// returns with the deadline exceeded and nothing written, a 504 problem
// response is emitted. Writing the timeout response from a second goroutine
// would race the handler, so none is spawned.
func Timeout(timeout time.Duration, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if ctx.Err() != context.DeadlineExceeded || ww.Status() != 0 || ww.BytesWritten() > 0 {
				return
			}

			logger.ErrorContext(r.Context(), "request timeout",
				"method", r.Method,
				"path", r.URL.Path,
				"timeout", timeout.String(),
			)

			ww.Header().Set("Content-Type", "application/problem+json")
			ww.WriteHeader(http.StatusGatewayTimeout)

			traceID := infrastructure.GetTraceID(r.Context())
			response := `{"type":"/errors/request-timeout","title":"Request Timeout","status":504,"detail":"The request took too long to process","trace_id":"` + traceID + `"}`
			ww.Write([]byte(response))
		})
	}
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Logger           *slog.Logger
}

// CORS middleware with logging
func CORS(config CORSConfig) func(next http.Handler) http.Handler {
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(config.AllowedHeaders) == 0 {
		config.AllowedHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
	}
	if config.MaxAge == 0 {
		config.MaxAge = 300
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			if len(config.AllowedOrigins) == 0 {
				allowed = true
			} else {
				for _, allowedOrigin := range config.AllowedOrigins {
					if allowedOrigin == "*" || strings.EqualFold(allowedOrigin, origin) {
						allowed = true
						break
					}
				}
			}

			if allowed && origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			} else if len(config.AllowedOrigins) > 0 && config.AllowedOrigins[0] == "*" {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))

			if len(config.ExposedHeaders) > 0 {
				w.Header().Set("Access-Control-Expose-Headers", strings.Join(config.ExposedHeaders, ", "))
			}

			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

			if r.Method == "OPTIONS" {
				if config.Logger != nil {
					config.Logger.DebugContext(r.Context(), "CORS preflight request",
						"origin", origin,
						"allowed", allowed,
					)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds security-related headers
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")

		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// Compress provides response compression middleware using Chi's implementation
func Compress(level int) func(next http.Handler) http.Handler {
	return middleware.Compress(level)
}

// RealIP extracts the real client IP using Chi's implementation
func RealIP(next http.Handler) http.Handler {
	return middleware.RealIP(next)
}

// StripSlashes removes trailing slashes from requests
func StripSlashes(next http.Handler) http.Handler {
	return middleware.StripSlashes(next)
}
