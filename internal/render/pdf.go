package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/sync/errgroup"

	"ctreport/pkg/contracts/domain"
)

// ErrNoPlottableData is returned when no parameter column contains a
// single numeric reading.
var ErrNoPlottableData = errors.New("no plottable parameter data")

// A4 portrait layout, millimeters.
const (
	pageWidth    = 210.0
	pageMarginX  = 10.0
	pageMarginY  = 12.0
	chartSpacing = 6.0
)

// Options configures the PDF renderer
type Options struct {
	ChartsPerPage int
	ChartWidth    int // pixels
	ChartHeight   int // pixels
}

// DefaultOptions returns the standard report layout
func DefaultOptions() Options {
	return Options{
		ChartsPerPage: 3,
		ChartWidth:    1100,
		ChartHeight:   420,
	}
}

// PDFRenderer renders analysis results into a paginated chart report
type PDFRenderer struct {
	opts   Options
	logger *slog.Logger
}

// NewPDFRenderer creates a renderer with the given layout options
func NewPDFRenderer(opts Options, logger *slog.Logger) *PDFRenderer {
	if opts.ChartsPerPage <= 0 {
		opts.ChartsPerPage = 3
	}
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = 1100
	}
	if opts.ChartHeight <= 0 {
		opts.ChartHeight = 420
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFRenderer{opts: opts, logger: logger}
}

// Render draws one chart per parameter column and assembles them into a
// PDF, ChartsPerPage to an A4 page. Columns without numeric data are
// skipped; if every column is empty it returns ErrNoPlottableData.
func (r *PDFRenderer) Render(ctx context.Context, table *domain.ParameterTable, limits domain.LimitMap) ([]byte, error) {
	if table == nil || table.Empty() {
		return nil, ErrNoPlottableData
	}

	var plottable []series
	for _, column := range table.Columns {
		s := extractSeries(table, column, limits[column])
		if len(s.values) == 0 {
			r.logger.DebugContext(ctx, "skipping column with no numeric data",
				slog.String("column", column))
			continue
		}
		plottable = append(plottable, s)
	}
	if len(plottable) == 0 {
		return nil, ErrNoPlottableData
	}

	start := time.Now()

	// Charts are independent, so rasterize them concurrently.
	images := make([][]byte, len(plottable))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range plottable {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			png, err := s.renderPNG(r.opts.ChartWidth, r.opts.ChartHeight)
			if err != nil {
				return fmt.Errorf("chart %q: %w", s.name, err)
			}
			images[i] = png
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pdf, err := r.assemble(images)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "rendered chart report",
		slog.Int("charts", len(plottable)),
		slog.Int("bytes", len(pdf)),
		slog.Duration("duration", time.Since(start)))
	return pdf, nil
}

// assemble lays the chart images onto A4 pages.
func (r *PDFRenderer) assemble(images [][]byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	chartW := pageWidth - 2*pageMarginX
	chartH := chartW * float64(r.opts.ChartHeight) / float64(r.opts.ChartWidth)
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	for i, img := range images {
		slot := i % r.opts.ChartsPerPage
		if slot == 0 {
			pdf.AddPage()
		}

		name := fmt.Sprintf("chart-%d", i)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		y := pageMarginY + float64(slot)*(chartH+chartSpacing)
		pdf.ImageOptions(name, pageMarginX, y, chartW, chartH, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
