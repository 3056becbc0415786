package dataprocessing

import (
	"time"

	"ctreport/pkg/contracts/domain"
)

// AnalyzeQuality computes the completeness report for a loaded table: the
// observed date range, the calendar dates inside it with no row, and the
// per-column counts of values that fail numeric coercion. An empty table
// yields an all-empty report, not an error. The function is pure and
// idempotent; nothing on the table is mutated.
func AnalyzeQuality(table *domain.ParameterTable) *domain.QualityReport {
	report := &domain.QualityReport{
		MissingDates:       []time.Time{},
		MissingValueCounts: map[string]int{},
	}
	if table.Empty() {
		return report
	}

	min, max, _ := table.DateRange()
	report.DateRange = &domain.DateRange{Start: min, End: max}

	present := make(map[time.Time]struct{}, len(table.Rows))
	for _, row := range table.Rows {
		present[row.Date] = struct{}{}
	}

	for d := min; !d.After(max); d = d.AddDate(0, 0, 1) {
		report.TotalDays++
		if _, ok := present[d]; !ok {
			report.MissingDates = append(report.MissingDates, d)
		}
	}

	for _, column := range table.Columns {
		missing := 0
		for _, row := range table.Rows {
			if _, ok := ParseNumber(row.Value(column)); !ok {
				missing++
			}
		}
		if missing > 0 {
			report.MissingValueCounts[column] = missing
		}
	}

	return report
}
