package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctreport/pkg/contracts/domain"
)

func TestCheckViolations(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH", "TDS"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "9.0", "TDS": "480"}},
			{Date: day(2024, time.January, 2), Values: map[string]string{"pH": "5.0", "TDS": "510"}},
			{Date: day(2024, time.January, 3), Values: map[string]string{"pH": "7.0", "TDS": "Nil"}},
		},
	}
	limits := domain.LimitMap{
		"pH":  domain.NewRange(6.5, 8.5),
		"TDS": domain.NewCeiling(500),
	}

	violations := CheckViolations(table, limits)

	require.Len(t, violations, 3)

	// Row-then-column scan order.
	assert.Equal(t, domain.Violation{
		Date:      day(2024, time.January, 1),
		Parameter: "pH",
		Value:     9.0,
		Bound:     domain.MaxBound,
		Limit:     8.5,
	}, violations[0])
	assert.Equal(t, domain.Violation{
		Date:      day(2024, time.January, 2),
		Parameter: "pH",
		Value:     5.0,
		Bound:     domain.MinBound,
		Limit:     6.5,
	}, violations[1])
	assert.Equal(t, domain.Violation{
		Date:      day(2024, time.January, 2),
		Parameter: "TDS",
		Value:     510,
		Bound:     domain.MaxBound,
		Limit:     500,
	}, violations[2])
}

func TestCheckViolationsBoundaryValuesAreInLimit(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "8.5"}},
			{Date: day(2024, time.January, 2), Values: map[string]string{"pH": "6.5"}},
		},
	}

	violations := CheckViolations(table, domain.LimitMap{"pH": domain.NewRange(6.5, 8.5)})
	assert.Empty(t, violations)
}

func TestCheckViolationsOpenBounds(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"ORP"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"ORP": "40"}},
			{Date: day(2024, time.January, 2), Values: map[string]string{"ORP": "900"}},
		},
	}

	// Floor only: no ceiling ever fires.
	violations := CheckViolations(table, domain.LimitMap{"ORP": domain.NewFloor(50)})
	require.Len(t, violations, 1)
	assert.Equal(t, domain.MinBound, violations[0].Bound)
	assert.Equal(t, 40.0, violations[0].Value)
}

// A malformed source with min > max reports both crossings for one value.
// That is deliberate: the duplication flags bad upstream data.
func TestCheckViolationsInvertedBounds(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "7.0"}},
		},
	}

	violations := CheckViolations(table, domain.LimitMap{"pH": domain.NewRange(8.0, 6.0)})
	require.Len(t, violations, 2)
	assert.Equal(t, domain.MaxBound, violations[0].Bound)
	assert.Equal(t, 6.0, violations[0].Limit)
	assert.Equal(t, domain.MinBound, violations[1].Bound)
	assert.Equal(t, 8.0, violations[1].Limit)
}

func TestCheckViolationsColumnsWithoutLimitsIgnored(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH", "Notes"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "7.0", "Notes": "9999"}},
		},
	}

	violations := CheckViolations(table, domain.LimitMap{"pH": domain.NewRange(6.5, 8.5)})
	assert.Empty(t, violations)
}

func TestCheckViolationsEmptyInputs(t *testing.T) {
	assert.Empty(t, CheckViolations(&domain.ParameterTable{}, domain.LimitMap{"pH": domain.NewFloor(1)}))
	assert.Empty(t, CheckViolations(tableOf(
		domain.Row{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "12"}},
	), domain.LimitMap{}))
}

func TestCheckViolationsIdempotent(t *testing.T) {
	table := &domain.ParameterTable{
		Columns: []string{"pH"},
		Rows: []domain.Row{
			{Date: day(2024, time.January, 1), Values: map[string]string{"pH": "9.9"}},
		},
	}
	limits := domain.LimitMap{"pH": domain.NewRange(6.5, 8.5)}

	first := CheckViolations(table, limits)
	second := CheckViolations(table, limits)
	assert.Equal(t, first, second)
}
