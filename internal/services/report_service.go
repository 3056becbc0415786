package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"ctreport/internal/dataprocessing"
	apierrors "ctreport/internal/errors"
	"ctreport/internal/grid"
	"ctreport/internal/infrastructure"
	"ctreport/internal/render"
	"ctreport/internal/validation"
	"ctreport/pkg/contracts/domain"
)

// AnalyzeRequest describes one report submitted for analysis
type AnalyzeRequest struct {
	Filename string `json:"filename" validate:"required,reportfile"`
	Size     int64  `json:"size" validate:"gte=0"`
}

// ReportService runs the analysis pipeline over uploaded reports
type ReportService struct {
	logger    *slog.Logger
	validator *validator.Validate
	renderer  *render.PDFRenderer
	metrics   *infrastructure.OTelProviders
	maxSize   int64
}

// NewReportService creates a report service. metrics may be nil when
// observability is disabled (CLI runs).
func NewReportService(logger *slog.Logger, renderer *render.PDFRenderer, metrics *infrastructure.OTelProviders, maxSize int64) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()
	v.RegisterValidation("reportfile", isReportFile)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ReportService{
		logger:    logger.With(slog.String("component", "report_service")),
		validator: v,
		renderer:  renderer,
		metrics:   metrics,
		maxSize:   maxSize,
	}
}

// isReportFile accepts filenames with a supported report extension.
func isReportFile(fl validator.FieldLevel) bool {
	return validation.AllowedExtension(filepath.Ext(fl.Field().String()))
}

// Analyze reads a report source, recovers its schema and returns the
// cleaned table with quality findings and limit violations.
func (s *ReportService) Analyze(ctx context.Context, req AnalyzeRequest, r io.Reader) (*domain.AnalysisResult, error) {
	start := time.Now()

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if s.maxSize > 0 && req.Size > s.maxSize {
		return nil, apierrors.NewWithDetails(
			apierrors.ErrPayloadTooLarge.StatusCode,
			apierrors.ErrPayloadTooLarge.ErrorCode,
			apierrors.ErrPayloadTooLarge.Message,
			map[string]interface{}{"size": req.Size, "max_size": s.maxSize},
		)
	}

	g, err := grid.ReadGrid(req.Filename, r)
	if err != nil {
		// SourceFormatError carries the cause verbatim for the error handler.
		return nil, err
	}

	schema := dataprocessing.DetectSchema(g)
	table := dataprocessing.LoadTable(g, schema.HeaderRow)
	quality := dataprocessing.AnalyzeQuality(table)
	violations := dataprocessing.CheckViolations(table, schema.Limits)

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordAnalysis(ctx, len(violations), elapsed.Seconds())
	}

	s.logger.InfoContext(ctx, "report analyzed",
		slog.String("filename", req.Filename),
		slog.Int("header_row", schema.HeaderRow),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)),
		slog.Int("limits", len(schema.Limits)),
		slog.Int("violations", len(violations)),
		slog.Duration("duration", elapsed))

	return &domain.AnalysisResult{
		Table:      table,
		Limits:     schema.Limits,
		Quality:    quality,
		Violations: violations,
	}, nil
}

// RenderPDF analyzes a report and renders its parameter charts to PDF
func (s *ReportService) RenderPDF(ctx context.Context, req AnalyzeRequest, r io.Reader) ([]byte, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("renderer not configured")
	}

	result, err := s.Analyze(ctx, req, r)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(ctx, result.Table, result.Limits)
	if err != nil {
		if errors.Is(err, render.ErrNoPlottableData) {
			return nil, apierrors.ErrNoPlottableData
		}
		return nil, apierrors.NewRenderingError("failed to render chart report", err)
	}
	return pdf, nil
}

// validateRequest runs struct validation and converts failures to API errors.
func (s *ReportService) validateRequest(req AnalyzeRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apierrors.ValidationError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: validationMessage(fe),
			})
		}
		return apierrors.NewValidationErrors(fields)
	}
	return apierrors.InvalidRequestWithError(err)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "reportfile":
		return "filename must end in .xlsx, .xls or .csv"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
