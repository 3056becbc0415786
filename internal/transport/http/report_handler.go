package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "ctreport/internal/errors"
	"ctreport/internal/services"
	"ctreport/internal/validation"
	"ctreport/pkg/contracts/domain"
)

// uploadField is the multipart form field carrying the report file.
const uploadField = "report"

// ReportServiceInterface defines the service contract for report handlers
type ReportServiceInterface interface {
	Analyze(ctx context.Context, req services.AnalyzeRequest, r io.Reader) (*domain.AnalysisResult, error)
	RenderPDF(ctx context.Context, req services.AnalyzeRequest, r io.Reader) ([]byte, error)
}

// ReportHandler handles report analysis HTTP requests
type ReportHandler struct {
	service      ReportServiceInterface
	validator    *validation.ReportValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxUpload    int64
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, validator *validation.ReportValidator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUpload int64) *ReportHandler {
	return &ReportHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
		maxUpload:    maxUpload,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/analyze", h.Analyze)
	r.Post("/render", h.Render)

	return r
}

// AnalyzeResponse wraps an analysis result for JSON rendering
type AnalyzeResponse struct {
	Success bool                   `json:"success"`
	Data    *domain.AnalysisResult `json:"data"`
}

// Render implements the render.Renderer interface
func (resp *AnalyzeResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}

// Analyze handles POST /analyze. The report file is submitted as
// multipart form data under the "report" field.
func (h *ReportHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.service.Analyze(r.Context(), req, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Render(w, r, &AnalyzeResponse{Success: true, Data: result})
}

// Render handles POST /render, returning the chart report as PDF
func (h *ReportHandler) Render(w http.ResponseWriter, r *http.Request) {
	req, file, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	pdf, err := h.service.RenderPDF(r.Context(), req, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="report.pdf"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// openUpload extracts and validates the uploaded report file. On failure
// it writes the error response and returns ok=false.
func (h *ReportHandler) openUpload(w http.ResponseWriter, r *http.Request) (services.AnalyzeRequest, io.ReadCloser, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.logger.WarnContext(r.Context(), "failed to parse multipart form",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return services.AnalyzeRequest{}, nil, false
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadField, "A report file is required under the \"report\" form field"))
		return services.AnalyzeRequest{}, nil, false
	}

	if err := h.validator.ValidateUpload(header.Filename, header.Size); err != nil {
		file.Close()
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadField, err.Error()))
		return services.AnalyzeRequest{}, nil, false
	}

	req := services.AnalyzeRequest{
		Filename: header.Filename,
		Size:     header.Size,
	}
	return req, file, true
}
