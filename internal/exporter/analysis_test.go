package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctreport/pkg/contracts/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWriteViolations(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSVWriter(nil)

	violations := []domain.Violation{
		{Date: day(2024, 1, 2), Parameter: "pH", Value: 9.1, Bound: domain.MaxBound, Limit: 8.5},
		{Date: day(2024, 1, 3), Parameter: "TDS", Value: 120, Bound: domain.MinBound, Limit: 500},
	}

	require.NoError(t, c.WriteViolations(&buf, violations))

	content := strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Parameter,Value,Bound,Limit", lines[0])
	assert.Equal(t, "2024-01-02,pH,9.1,max,8.5", lines[1])
	assert.Equal(t, "2024-01-03,TDS,120,min,500", lines[2])
}

func TestWriteQuality(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSVWriter(nil)

	report := &domain.QualityReport{
		MissingDates: []time.Time{day(2024, 1, 2), day(2024, 1, 4)},
		MissingValueCounts: map[string]int{
			"pH":  2,
			"TDS": 1,
		},
	}

	require.NoError(t, c.WriteQuality(&buf, report))

	content := strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Issue,Subject,Count", lines[0])
	assert.Equal(t, "missing_date,2024-01-02,", lines[1])
	assert.Equal(t, "missing_date,2024-01-04,", lines[2])
	// Parameter rows come out in sorted order.
	assert.Equal(t, "missing_values,TDS,1", lines[3])
	assert.Equal(t, "missing_values,pH,2", lines[4])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSVWriter(nil)

	table := &domain.ParameterTable{
		Columns: []string{"pH", "TDS"},
		Rows: []domain.Row{
			{Date: day(2024, 1, 1), Values: map[string]string{"pH": "7.2", "TDS": "1500"}},
			{Date: day(2024, 1, 2), Values: map[string]string{"pH": "7.4"}},
		},
	}

	require.NoError(t, c.WriteTable(&buf, table))

	content := strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "DATE,pH,TDS", lines[0])
	assert.Equal(t, "2024-01-01,7.2,1500", lines[1])
	assert.Equal(t, "2024-01-02,7.4,", lines[2])
}

func TestWriteViolationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSVWriter(nil)

	require.NoError(t, c.WriteViolations(&buf, nil))

	content := strings.TrimPrefix(buf.String(), "\xEF\xBB\xBF")
	assert.Equal(t, "Date,Parameter,Value,Bound,Limit", strings.TrimSpace(content))
}
