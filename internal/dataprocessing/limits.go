package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"

	"ctreport/pkg/contracts/domain"
)

var (
	// limitNormalizer folds the several ways operators write a range
	// separator into a plain hyphen, so "6 to 10" and "6–10" parse alike.
	limitNormalizer = strings.NewReplacer("–", "-", "to", "-")

	limitRangeRe = regexp.MustCompile(`(\d+\.?\d*)\s*-\s*(\d+\.?\d*)`)
	limitBelowRe = regexp.MustCompile(`<\s*(\d+\.?\d*)`)
	limitAboveRe = regexp.MustCompile(`>\s*(\d+\.?\d*)`)
)

// ParseLimit extracts a numeric bound pair from a free-text limit cell such
// as "7.0 - 8.5", "< 500" or "> 50". Patterns are tried in that priority
// order and the first match wins. A bare ceiling gets an implicit floor of
// zero: treatment parameters are non-negative concentrations, so "< 500"
// means the 0–500 band. Decimal numbers only; scientific notation, negative
// numbers and thousands separators are not recognized.
//
// ok is false when nothing matches. That is not an error: it means no
// constraint is known for the column, and callers must record nothing.
func ParseLimit(text string) (domain.LimitBound, bool) {
	clean := limitNormalizer.Replace(strings.ToLower(strings.TrimSpace(text)))

	if m := limitRangeRe.FindStringSubmatch(clean); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		max, _ := strconv.ParseFloat(m[2], 64)
		return domain.NewRange(min, max), true
	}

	if m := limitBelowRe.FindStringSubmatch(clean); m != nil {
		max, _ := strconv.ParseFloat(m[1], 64)
		return domain.NewRange(0, max), true
	}

	if m := limitAboveRe.FindStringSubmatch(clean); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		return domain.NewFloor(min), true
	}

	return domain.LimitBound{}, false
}
