package dataprocessing

import (
	"fmt"
	"sort"
	"strings"

	"ctreport/pkg/contracts/domain"
)

// LoadTable re-interprets a raw grid using headerRow as the column-name row.
// Rows above the header are discarded. The date column (the first column,
// unless a later column's name contains "date" or "parameters") is renamed
// to the canonical key, every data cell in it is coerced to a calendar date,
// and rows whose date fails coercion are dropped entirely. That is how
// embedded metadata rows, unit rows and blank trailers are eliminated.
// The result is sorted ascending by date.
func LoadTable(grid domain.Grid, headerRow int) *domain.ParameterTable {
	if headerRow < 0 || headerRow >= len(grid) {
		return &domain.ParameterTable{}
	}

	names := columnNames(grid[headerRow])
	dateIdx := dateColumnIndex(names)

	columns := make([]string, 0, len(names))
	for i, name := range names {
		if i == dateIdx || name == "" {
			continue
		}
		columns = append(columns, name)
	}

	rows := make([]domain.Row, 0, len(grid)-headerRow-1)
	for _, raw := range grid[headerRow+1:] {
		if dateIdx >= len(raw) {
			continue
		}
		date, ok := ParseDate(raw[dateIdx])
		if !ok {
			continue
		}
		values := make(map[string]string, len(columns))
		for i, name := range names {
			if i == dateIdx || name == "" {
				continue
			}
			if i < len(raw) {
				values[name] = raw[i]
			} else {
				values[name] = ""
			}
		}
		rows = append(rows, domain.Row{Date: date, Values: values})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})

	return &domain.ParameterTable{Columns: columns, Rows: rows}
}

// columnNames stringifies and trims the header cells, deduplicating repeats
// so every column keys a distinct map entry.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if name != "" {
			if n := seen[name]; n > 0 {
				name = fmt.Sprintf("%s_%d", name, n+1)
			}
			seen[strings.TrimSpace(cell)]++
		}
		names[i] = name
	}
	return names
}

// dateColumnIndex picks the date column: the first column whose lowercased
// name contains "date" or "parameters" (source files label it either way),
// defaulting to column 0.
func dateColumnIndex(names []string) int {
	for i, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "date") || strings.Contains(lower, "parameters") {
			return i
		}
	}
	return 0
}
