package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctreport/pkg/contracts/domain"
)

func tableOf(rows ...domain.Row) *domain.ParameterTable {
	columns := []string{}
	if len(rows) > 0 {
		for name := range rows[0].Values {
			columns = append(columns, name)
		}
	}
	return &domain.ParameterTable{Columns: columns, Rows: rows}
}

func TestAnalyzeQualityMissingDates(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "7.1"}},
			{Date: day(2024, time.January, 3), Values: map[string]string{"pH": "7.2"}},
			{Date: day(2024, time.January, 5), Values: map[string]string{"pH": "7.3"}},
		},
	}

	report := AnalyzeQuality(table)

	require.NotNil(t, report.DateRange)
	assert.Equal(t, day(2024, time.January, 1), report.DateRange.Start)
	assert.Equal(t, day(2024, time.January, 5), report.DateRange.End)
	assert.Equal(t, 5, report.TotalDays)
	assert.Equal(t, []time.Time{
		day(2024, time.January, 2),
		day(2024, time.January, 4),
	}, report.MissingDates)
	assert.Empty(t, report.MissingValueCounts)
	assert.False(t, report.Complete())
}

func TestAnalyzeQualityUnbrokenSequence(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "7.1"}},
			{Date: day(2024, time.January, 2), Values: map[string]string{"pH": "7.2"}},
			{Date: day(2024, time.January, 3), Values: map[string]string{"pH": "7.3"}},
		},
	}

	report := AnalyzeQuality(table)
	assert.Empty(t, report.MissingDates)
	assert.Equal(t, 3, report.TotalDays)
	assert.True(t, report.Complete())
}

func TestAnalyzeQualityDuplicateDatesCountOnce(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "7.1"}},
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "7.2"}},
			{Date: day(2024, time.January, 2), Values: map[string]string{"pH": "7.3"}},
		},
	}

	report := AnalyzeQuality(table)
	assert.Empty(t, report.MissingDates)
	assert.Equal(t, 2, report.TotalDays)
}

func TestAnalyzeQualityMissingValues(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH", "TDS"},
		Rows: []domain.Row{
			{Date: day(2024, time.February, 1), Values: map[string]string{"pH": "7.2", "TDS": "402"}},
			{Date: day(2024, time.February, 2), Values: map[string]string{"pH": "Nil", "TDS": "398"}},
			{Date: day(2024, time.February, 3), Values: map[string]string{"pH": "", "TDS": "405"}},
			{Date: day(2024, time.February, 4), Values: map[string]string{"pH": "6.9", "TDS": "401"}},
		},
	}

	report := AnalyzeQuality(table)

	// Complete columns are omitted entirely.
	assert.Equal(t, map[string]int{"pH": 2}, report.MissingValueCounts)
}

func TestAnalyzeQualityPlaceholderValues(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"Hardness"},
		Rows: []domain.Row{
			{Date: day(2024, time.February, 1), Values: map[string]string{"Hardness": "-"}},
			{Date: day(2024, time.February, 2), Values: map[string]string{"Hardness": "n/a"}},
			{Date: day(2024, time.February, 3), Values: map[string]string{}},
			{Date: day(2024, time.February, 4), Values: map[string]string{"Hardness": "NaN"}},
		},
	}

	report := AnalyzeQuality(table)
	assert.Equal(t, map[string]int{"Hardness": 4}, report.MissingValueCounts)
}

func TestAnalyzeQualityEmptyTable(t *testing.T) {
	report := AnalyzeQuality(&domain.ParameterTable{})

	assert.Nil(t, report.DateRange)
	assert.Zero(t, report.TotalDays)
	assert.Empty(t, report.MissingDates)
	assert.Empty(t, report.MissingValueCounts)
	assert.True(t, report.Complete())
}

func TestAnalyzeQualityIdempotent(t *testing.T) {
	table := tableOf(
		domain.Row{Date: day(2024, time.March, 1), Values: map[string]string{"pH": "bad"}},
		domain.Row{Date: day(2024, time.March, 4), Values: map[string]string{"pH": "7.0"}},
	)

	first := AnalyzeQuality(table)
	second := AnalyzeQuality(table)
	assert.Equal(t, first, second)
}
