package render

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctreport/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTable() *domain.ParameterTable {
	return &domain.ParameterTable{
		Columns: []string{"pH", "TDS", "Remarks"},
		Rows: []domain.Row{
			{Date: day(2024, 1, 1), Values: map[string]string{"pH": "7.2", "TDS": "1500", "Remarks": "ok"}},
			{Date: day(2024, 1, 2), Values: map[string]string{"pH": "7.4", "TDS": "1620", "Remarks": "ok"}},
			{Date: day(2024, 1, 3), Values: map[string]string{"pH": "7.1", "TDS": "1580", "Remarks": "blowdown"}},
		},
	}
}

func TestExtractSeriesSkipsNonNumeric(t *testing.T) {
	table := sampleTable()

	s := extractSeries(table, "pH", domain.LimitBound{})
	assert.Len(t, s.values, 3)

	s = extractSeries(table, "Remarks", domain.LimitBound{})
	assert.Empty(t, s.values, "free-text column has no plottable points")
}

func TestYRangePadding(t *testing.T) {
	s := series{values: []float64{10, 20}}
	min, max := s.yRange()
	assert.InDelta(t, 8.0, min, 1e-9)
	assert.InDelta(t, 22.0, max, 1e-9)
}

func TestYRangeFlatSeries(t *testing.T) {
	s := series{values: []float64{7.0, 7.0, 7.0}}
	min, max := s.yRange()
	assert.InDelta(t, 6.0, min, 1e-9)
	assert.InDelta(t, 8.0, max, 1e-9)
}

func TestYRangeIncludesLimits(t *testing.T) {
	s := series{
		values: []float64{7.0, 7.5},
		limit:  domain.NewRange(6.0, 9.0),
	}
	min, max := s.yRange()
	assert.Less(t, min, 6.0, "range extends below the min limit")
	assert.Greater(t, max, 9.0, "range extends above the max limit")
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewPDFRenderer(DefaultOptions(), nil)

	limits := domain.LimitMap{
		"pH":  domain.NewRange(6.5, 8.5),
		"TDS": domain.NewCeiling(2000),
	}

	pdf, err := r.Render(context.Background(), sampleTable(), limits)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output starts with the PDF magic")
}

func TestRenderNoPlottableData(t *testing.T) {
	r := NewPDFRenderer(DefaultOptions(), nil)

	table := &domain.ParameterTable{
		Columns: []string{"Remarks"},
		Rows: []domain.Row{
			{Date: day(2024, 1, 1), Values: map[string]string{"Remarks": "ok"}},
		},
	}

	_, err := r.Render(context.Background(), table, nil)
	assert.ErrorIs(t, err, ErrNoPlottableData)
}

func TestRenderEmptyTable(t *testing.T) {
	r := NewPDFRenderer(DefaultOptions(), nil)

	_, err := r.Render(context.Background(), &domain.ParameterTable{}, nil)
	assert.ErrorIs(t, err, ErrNoPlottableData)

	_, err = r.Render(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoPlottableData)
}

func TestRenderCancelled(t *testing.T) {
	r := NewPDFRenderer(DefaultOptions(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, sampleTable(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderSingleReading(t *testing.T) {
	r := NewPDFRenderer(DefaultOptions(), nil)

	table := &domain.ParameterTable{
		Columns: []string{"pH"},
		Rows: []domain.Row{
			{Date: day(2024, 1, 1), Values: map[string]string{"pH": "7.2"}},
		},
	}

	pdf, err := r.Render(context.Background(), table, domain.LimitMap{"pH": domain.NewRange(6.5, 8.5)})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
