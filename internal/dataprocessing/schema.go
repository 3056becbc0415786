package dataprocessing

import (
	"strings"

	"ctreport/pkg/contracts/domain"
)

const (
	// headerScanLimit caps how deep the header search looks. Real reports
	// carry at most a dozen banner/metadata rows above the table.
	headerScanLimit = 15
	// limitScanLimit caps the control-limit row search.
	limitScanLimit = 20
	// headerKeywordThreshold is the number of distinct keywords a row must
	// match to be accepted as the header.
	headerKeywordThreshold = 2
	// limitRowLabel is the cell text that marks the control-limit row.
	limitRowLabel = "control limit"
)

// headerKeywords are column labels typical of a CT monitoring report.
// Matched as substrings of lowercased cell text.
var headerKeywords = []string{"parameters", "date", "ph", "tds", "hardness", "alkalinity"}

// Schema is the recovered layout of a raw report grid.
type Schema struct {
	// HeaderRow is the index of the column-name row.
	HeaderRow int
	// Limits holds the control limits recovered from the limit row, keyed by
	// trimmed header text. Empty when the grid has no limit row.
	Limits domain.LimitMap
}

// headerStrategy proposes a header row index, or -1 for no match.
// Strategies run in priority order; the last one never declines, which keeps
// the gave-up path explicit and testable.
type headerStrategy func(grid domain.Grid) int

var headerStrategies = []headerStrategy{
	keywordHeaderRow,
	defaultHeaderRow,
}

// DetectSchema scans a raw grid for its header row and optional control-limit
// row. Pure function: the grid is never modified.
//
// A wrong guess here is not a failure. When no row looks like a header the
// detector settles on row 0 and lets the quality analyzer surface whatever
// garbage that produces downstream.
func DetectSchema(grid domain.Grid) Schema {
	headerRow := 0
	for _, strategy := range headerStrategies {
		if i := strategy(grid); i >= 0 {
			headerRow = i
			break
		}
	}

	limits := domain.LimitMap{}
	if limitRow := findLimitRow(grid); limitRow >= 0 {
		limits = extractLimits(grid[headerRow], grid[limitRow])
	}

	return Schema{HeaderRow: headerRow, Limits: limits}
}

// keywordHeaderRow accepts the first row in which at least
// headerKeywordThreshold distinct keywords appear as substrings of some cell.
func keywordHeaderRow(grid domain.Grid) int {
	for i := 0; i < len(grid) && i < headerScanLimit; i++ {
		matched := 0
		for _, keyword := range headerKeywords {
			for _, cell := range grid[i] {
				if strings.Contains(strings.ToLower(cell), keyword) {
					matched++
					break
				}
			}
		}
		if matched >= headerKeywordThreshold {
			return i
		}
	}
	return -1
}

// defaultHeaderRow is the terminal fallback: assume the grid starts with the
// header.
func defaultHeaderRow(domain.Grid) int {
	return 0
}

// findLimitRow returns the index of the first row containing a cell labeled
// "control limit", or -1 when the report carries no limit row.
func findLimitRow(grid domain.Grid) int {
	for i := 0; i < len(grid) && i < limitScanLimit; i++ {
		for _, cell := range grid[i] {
			if strings.ToLower(strings.TrimSpace(cell)) == limitRowLabel {
				return i
			}
		}
	}
	return -1
}

// extractLimits pairs header cells with limit cells positionally, stopping at
// the shorter row, and records only cells the limit parser recognizes.
func extractLimits(headerRow, limitRow []string) domain.LimitMap {
	limits := domain.LimitMap{}
	n := len(headerRow)
	if len(limitRow) < n {
		n = len(limitRow)
	}
	for i := 0; i < n; i++ {
		bound, ok := ParseLimit(limitRow[i])
		if !ok {
			continue
		}
		column := strings.TrimSpace(headerRow[i])
		if column == "" {
			continue
		}
		limits[column] = bound
	}
	return limits
}
