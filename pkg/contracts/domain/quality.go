package domain

import (
	"time"
)

// DateRange is the observed calendar span of a loaded table.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// QualityReport summarizes completeness of a loaded report: calendar days
// with no row inside the observed range, and per-parameter counts of values
// that fail numeric coercion. It is derived in full on every analysis call;
// there is no persisted state.
type QualityReport struct {
	// DateRange is nil when the table had no dated rows.
	DateRange *DateRange `json:"date_range,omitempty"`

	// TotalDays is the number of calendar days in the observed range,
	// endpoints included. Zero for an empty table.
	TotalDays int `json:"total_days"`

	// MissingDates lists, in ascending order, calendar dates inside the
	// observed range with no corresponding row.
	MissingDates []time.Time `json:"missing_dates"`

	// MissingValueCounts maps a parameter column to the number of rows whose
	// value fails numeric coercion. Columns with no missing values are
	// omitted: absence means complete, not unknown.
	MissingValueCounts map[string]int `json:"missing_value_counts"`
}

// Complete reports whether the table had no date gaps and no missing values.
func (q *QualityReport) Complete() bool {
	return len(q.MissingDates) == 0 && len(q.MissingValueCounts) == 0
}

// BoundKind identifies which side of a control limit a violation crossed.
type BoundKind string

const (
	// MinBound marks a value strictly below the parameter's floor.
	MinBound BoundKind = "min"
	// MaxBound marks a value strictly above the parameter's ceiling.
	MaxBound BoundKind = "max"
)

// Violation is one out-of-limit observation: a single (row, parameter,
// bound-crossed) triple. The list is not deduplicated; when a malformed
// source yields min > max, both kinds can fire for the same value.
type Violation struct {
	Date      time.Time `json:"date" validate:"required"`
	Parameter string    `json:"parameter" validate:"required"`
	Value     float64   `json:"value"`
	Bound     BoundKind `json:"bound" validate:"oneof=min max"`
	Limit     float64   `json:"limit"`
}
