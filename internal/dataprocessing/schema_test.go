package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctreport/pkg/contracts/domain"
)

func TestDetectSchemaHeaderRow(t *testing.T) {
	tests := []struct {
		name string
		grid domain.Grid
		want int
	}{
		{
			name: "header below banner rows",
			grid: domain.Grid{
				{"MEE Cooling Tower Report"},
				{"Site: Unit 4", "Month: January"},
				{"Parameters", "Date", "pH", "TDS"},
				{"", "2024-01-01", "7.2", "410"},
			},
			want: 2,
		},
		{
			name: "header on first row",
			grid: domain.Grid{
				{"Date", "pH", "Hardness"},
				{"2024-01-01", "7.2", "120"},
			},
			want: 0,
		},
		{
			name: "single keyword is not enough",
			grid: domain.Grid{
				{"Date of issue: 2024-02-01"},
				{"some", "free", "text"},
			},
			want: 0,
		},
		{
			name: "no header at all falls back to row zero",
			grid: domain.Grid{
				{"lorem", "ipsum"},
				{"dolor"},
			},
			want: 0,
		},
		{
			name: "keyword match is case insensitive",
			grid: domain.Grid{
				{"notes"},
				{"PARAMETERS", "DATE", "PH"},
			},
			want: 1,
		},
		{
			name: "empty grid",
			grid: domain.Grid{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := DetectSchema(tt.grid)
			assert.Equal(t, tt.want, schema.HeaderRow)
		})
	}
}

func TestDetectSchemaScanLimit(t *testing.T) {
	// A header buried below the scan limit is never found.
	grid := make(domain.Grid, 0, headerScanLimit+2)
	for i := 0; i < headerScanLimit; i++ {
		grid = append(grid, []string{"banner"})
	}
	grid = append(grid, []string{"Parameters", "Date", "pH"})

	schema := DetectSchema(grid)
	assert.Equal(t, 0, schema.HeaderRow)
}

func TestDetectSchemaLimits(t *testing.T) {
	grid := domain.Grid{
		{"CT Daily Monitoring"},
		{"Parameters", "Date", "pH", "TDS", "Hardness", "Notes"},
		{"Control Limit", "", "7.0-8.5", "< 500", "N/A"},
		{"", "2024-01-01", "7.4", "390", "110", "ok"},
	}

	schema := DetectSchema(grid)
	require.Equal(t, 1, schema.HeaderRow)

	require.Len(t, schema.Limits, 2)

	ph, ok := schema.Limits["pH"]
	require.True(t, ok)
	require.NotNil(t, ph.Min)
	require.NotNil(t, ph.Max)
	assert.Equal(t, 7.0, *ph.Min)
	assert.Equal(t, 8.5, *ph.Max)

	tds, ok := schema.Limits["TDS"]
	require.True(t, ok)
	require.NotNil(t, tds.Min)
	require.NotNil(t, tds.Max)
	assert.Equal(t, 0.0, *tds.Min)
	assert.Equal(t, 500.0, *tds.Max)

	// Hardness had no parseable limit, Notes had no limit cell at all.
	_, ok = schema.Limits["Hardness"]
	assert.False(t, ok)
	_, ok = schema.Limits["Notes"]
	assert.False(t, ok)
}

func TestDetectSchemaNoLimitRow(t *testing.T) {
	grid := domain.Grid{
		{"Parameters", "Date", "pH"},
		{"", "2024-01-01", "7.2"},
	}

	schema := DetectSchema(grid)
	assert.Empty(t, schema.Limits)
	assert.NotNil(t, schema.Limits)
}

func TestDetectSchemaLimitRowLabelMatching(t *testing.T) {
	// The label must equal "control limit" after trimming and lowercasing;
	// a substring inside a longer sentence does not qualify.
	grid := domain.Grid{
		{"Parameters", "Date", "pH"},
		{"values outside control limit are flagged", "", "7.0-8.0"},
		{"  CONTROL LIMIT  ", "", "6.5-8.5"},
	}

	schema := DetectSchema(grid)
	require.Len(t, schema.Limits, 1)
	ph := schema.Limits["pH"]
	require.NotNil(t, ph.Min)
	assert.Equal(t, 6.5, *ph.Min)
}

func TestDetectSchemaIsPure(t *testing.T) {
	grid := domain.Grid{
		{"Parameters", "Date", "pH"},
		{"Control Limit", "", "7.0-8.0"},
	}
	first := DetectSchema(grid)
	second := DetectSchema(grid)
	assert.Equal(t, first, second)
}
