package dataprocessing

import (
	"ctreport/pkg/contracts/domain"
)

// CheckViolations scans a loaded table against a limit map and returns one
// entry per (row, parameter, bound-crossed) triple, in row-then-column scan
// order. Comparisons are strict: a value equal to a bound is in limit.
// Non-numeric cells are skipped here, not reported; counting those is the
// quality analyzer's job.
//
// When a malformed source yields min > max, both bounds can fire for the
// same value. That duplication is reported as-is: it points at bad upstream
// data, and suppressing one side would hide it.
func CheckViolations(table *domain.ParameterTable, limits domain.LimitMap) []domain.Violation {
	var violations []domain.Violation
	if table.Empty() || len(limits) == 0 {
		return violations
	}

	for _, row := range table.Rows {
		for _, column := range table.Columns {
			bound, ok := limits[column]
			if !ok {
				continue
			}
			value, ok := ParseNumber(row.Value(column))
			if !ok {
				continue
			}
			if bound.Max != nil && value > *bound.Max {
				violations = append(violations, domain.Violation{
					Date:      row.Date,
					Parameter: column,
					Value:     value,
					Bound:     domain.MaxBound,
					Limit:     *bound.Max,
				})
			}
			if bound.Min != nil && value < *bound.Min {
				violations = append(violations, domain.Violation{
					Date:      row.Date,
					Parameter: column,
					Value:     value,
					Bound:     domain.MinBound,
					Limit:     *bound.Min,
				})
			}
		}
	}

	return violations
}
