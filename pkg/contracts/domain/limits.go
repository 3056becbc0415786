package domain

// LimitBound is the acceptable range recovered for one parameter from the
// report's control-limit row. Either side may be nil for an open-ended
// bound, but a bound with both sides nil is never recorded.
type LimitBound struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// HasBound reports whether at least one side of the range is set.
func (b LimitBound) HasBound() bool {
	return b.Min != nil || b.Max != nil
}

// LimitMap maps a trimmed parameter column name to its control limits.
// Built once during schema detection, read-only afterward.
type LimitMap map[string]LimitBound

// NewRange is a convenience constructor for a fully closed range.
func NewRange(min, max float64) LimitBound {
	return LimitBound{Min: &min, Max: &max}
}

// NewFloor is a convenience constructor for a floor-only limit.
func NewFloor(min float64) LimitBound {
	return LimitBound{Min: &min}
}

// NewCeiling is a convenience constructor for a ceiling-only limit.
func NewCeiling(max float64) LimitBound {
	return LimitBound{Max: &max}
}
