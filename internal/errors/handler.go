package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"ctreport/internal/grid"
)

// Common error types following RFC 7807
const (
	TypeValidation      = "/errors/validation"
	TypeNotFound        = "/errors/not-found"
	TypeRateLimit       = "/errors/rate-limit"
	TypeInternal        = "/errors/internal"
	TypeServiceDown     = "/errors/service-unavailable"
	TypeTimeout         = "/errors/timeout"
	TypePayloadTooLarge = "/errors/payload-too-large"
)

// Domain-specific error types
const (
	TypeUnreadableSource = "/errors/report/unreadable-source"
	TypeNoPlottableData  = "/errors/report/no-plottable-data"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	// Check for context errors first
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	// A source that cannot be read as a grid is fatal to the request and is
	// shown to the end user with its cause verbatim.
	var srcErr *grid.SourceFormatError
	if errors.As(err, &srcErr) {
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeUnreadableSource,
			"Unreadable Report Source",
			srcErr.Error(),
			r.URL.Path,
		)
	}

	// Check for our custom API errors
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return h.appErrorToProblem(appErr, r)
	}

	// Generic error mapping by message shape
	switch {
	case strings.Contains(err.Error(), "not found"):
		return NewProblemDetails(
			http.StatusNotFound,
			TypeNotFound,
			"Resource Not Found",
			err.Error(),
			r.URL.Path,
		)

	case strings.Contains(err.Error(), "rate limit"):
		return NewProblemDetails(
			http.StatusTooManyRequests,
			TypeRateLimit,
			"Rate Limit Exceeded",
			"Too many requests. Please try again later.",
			r.URL.Path,
		).WithExtension("retry_after", 60)

	case strings.Contains(err.Error(), "payload too large"):
		return NewProblemDetails(
			http.StatusRequestEntityTooLarge,
			TypePayloadTooLarge,
			"Payload Too Large",
			"The request body exceeds the maximum allowed size",
			r.URL.Path,
		)

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Internal Server Error",
			"An unexpected error occurred while processing your request",
			r.URL.Path,
		)
	}
}

// apiErrorToProblem converts APIError to ProblemDetails
func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	// Map error codes to problem types
	problemType := TypeInternal
	switch apiErr.ErrorCode {
	case "VALIDATION_FAILED", "INVALID_REQUEST", "MISSING_PARAMETER":
		problemType = TypeValidation
	case "NOT_FOUND":
		problemType = TypeNotFound
	case "RATE_LIMIT_EXCEEDED":
		problemType = TypeRateLimit
	case "PAYLOAD_TOO_LARGE":
		problemType = TypePayloadTooLarge
	case "UNREADABLE_SOURCE":
		problemType = TypeUnreadableSource
	case "NO_PLOTTABLE_DATA":
		problemType = TypeNoPlottableData
	}

	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType,
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}

	return problem
}

// appErrorToProblem converts AppError to ProblemDetails
func (h *ErrorHandler) appErrorToProblem(appErr *AppError, r *http.Request) *ProblemDetails {
	status := http.StatusInternalServerError
	problemType := TypeInternal

	switch appErr.Type {
	case ErrTypeValidation:
		status = http.StatusBadRequest
		problemType = TypeValidation
	case ErrTypeNotFound:
		status = http.StatusNotFound
		problemType = TypeNotFound
	}

	problem := NewProblemDetails(
		status,
		problemType,
		http.StatusText(status),
		appErr.Message,
		r.URL.Path,
	).WithExtension("error_type", string(appErr.Type))

	if len(appErr.Context) > 0 {
		problem.WithExtension("context", appErr.Context)
	}

	return problem
}

// HandlePanic recovers from panics and returns RFC 7807 error
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeValidation,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this resource", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// getStackTrace returns the current stack trace
func getStackTrace() string {
	return string(debug.Stack())
}
