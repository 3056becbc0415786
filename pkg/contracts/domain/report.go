package domain

import (
	"time"
)

// DateColumn is the canonical key assigned to the date column of a loaded
// table, regardless of how the source file labeled it.
const DateColumn = "DATE"

// Grid is the raw, untyped cell matrix read from an uploaded report before
// any schema is known. Rows may have differing lengths; cells carry the
// stringified form of whatever the source contained. A Grid is built once
// per upload and discarded after the table is loaded.
type Grid [][]string

// Row represents a single dated observation in a loaded report.
// Values maps a parameter column name to the raw cell text; whether a value
// is numeric is decided per analysis, never stored.
type Row struct {
	Date   time.Time         `json:"date" validate:"required"`
	Values map[string]string `json:"values"`
}

// Value returns the raw cell text for a column, or the empty string when the
// row has no cell for it.
func (r Row) Value(column string) string {
	return r.Values[column]
}

// ParameterTable is the recovered dataset of a monitoring report: one row per
// calendar day that survived date coercion, sorted ascending by date.
// Columns lists the parameter columns in source order, date excluded.
type ParameterTable struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows" validate:"dive"`
}

// Empty reports whether the table has no dated rows.
func (t *ParameterTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// DateRange returns the minimum and maximum dates present in the table.
// ok is false for an empty table.
func (t *ParameterTable) DateRange() (min, max time.Time, ok bool) {
	if t.Empty() {
		return time.Time{}, time.Time{}, false
	}
	min, max = t.Rows[0].Date, t.Rows[0].Date
	for _, row := range t.Rows[1:] {
		if row.Date.Before(min) {
			min = row.Date
		}
		if row.Date.After(max) {
			max = row.Date
		}
	}
	return min, max, true
}

// AnalysisResult bundles everything derived from a single uploaded report.
// All fields are recomputed from scratch on every upload; nothing is cached
// across requests.
type AnalysisResult struct {
	Table      *ParameterTable `json:"table" validate:"required"`
	Limits     LimitMap        `json:"limits"`
	Quality    *QualityReport  `json:"quality" validate:"required"`
	Violations []Violation     `json:"violations"`
}
