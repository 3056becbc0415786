package render

import (
	"bytes"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"ctreport/internal/dataprocessing"
	"ctreport/pkg/contracts/domain"
)

// yPaddingRatio widens the y-axis beyond the data so points and limit
// lines never sit on the frame. Flat series get a fixed pad instead.
const (
	yPaddingRatio = 0.2
	yFlatPadding  = 1.0
)

// series is one parameter's plottable data plus its control limits.
type series struct {
	name   string
	dates  []time.Time
	values []float64
	limit  domain.LimitBound
}

// extractSeries pulls the numeric readings for one column. Rows whose
// value does not parse as a number are skipped.
func extractSeries(table *domain.ParameterTable, column string, limit domain.LimitBound) series {
	s := series{name: column, limit: limit}
	for _, row := range table.Rows {
		value, ok := dataprocessing.ParseNumber(row.Value(column))
		if !ok {
			continue
		}
		s.dates = append(s.dates, row.Date)
		s.values = append(s.values, value)
	}
	return s
}

// yRange computes the padded y-axis range over the data and any limits.
func (s series) yRange() (min, max float64) {
	min, max = s.values[0], s.values[0]
	for _, v := range s.values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if s.limit.Min != nil && *s.limit.Min < min {
		min = *s.limit.Min
	}
	if s.limit.Max != nil && *s.limit.Max > max {
		max = *s.limit.Max
	}

	pad := (max - min) * yPaddingRatio
	if pad == 0 {
		pad = yFlatPadding
	}
	return min - pad, max + pad
}

// renderPNG draws the series as a time-series chart and returns the PNG bytes.
func (s series) renderPNG(width, height int) ([]byte, error) {
	yMin, yMax := s.yRange()

	plots := []chart.Series{
		chart.TimeSeries{
			Name:    s.name,
			XValues: s.dates,
			YValues: s.values,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 1.5,
				DotColor:    chart.ColorBlue,
				DotWidth:    2.0,
			},
		},
	}
	plots = append(plots, s.limitLines()...)

	graph := chart.Chart{
		Title:  s.name,
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: plots,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// limitLines builds dashed horizontal reference lines for the control limits.
func (s series) limitLines() []chart.Series {
	if len(s.dates) == 0 {
		return nil
	}
	span := []time.Time{s.dates[0], s.dates[len(s.dates)-1]}
	if len(s.dates) == 1 {
		// A single reading still needs a nonzero x span to draw a line.
		span = []time.Time{s.dates[0].Add(-12 * time.Hour), s.dates[0].Add(12 * time.Hour)}
	}

	dashed := func(name string, value float64, color drawing.Color) chart.Series {
		return chart.TimeSeries{
			Name:    name,
			XValues: span,
			YValues: []float64{value, value},
			Style: chart.Style{
				StrokeColor:     color,
				StrokeWidth:     1.0,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		}
	}

	var lines []chart.Series
	if s.limit.Min != nil {
		lines = append(lines, dashed("min limit", *s.limit.Min, chart.ColorOrange))
	}
	if s.limit.Max != nil {
		lines = append(lines, dashed("max limit", *s.limit.Max, chart.ColorRed))
	}
	return lines
}
