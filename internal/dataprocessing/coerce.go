package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// thousandsCleaner strips the separators Excel likes to format into numbers.
var thousandsCleaner = strings.NewReplacer(",", "")

// ParseNumber attempts numeric coercion of a raw cell value. Empty strings,
// textual placeholders ("Nil", a bare hyphen) and anything else that is not
// a decimal number fail soft: ok is false and no error is raised. Callers
// decide what a failure means: the loader never sees numbers and the quality
// analyzer counts failures, while the violation checker skips them.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(thousandsCleaner.Replace(s), 64)
	if err != nil {
		return 0, false
	}
	// ParseFloat accepts "NaN" and "Inf" spellings. In a report cell those
	// are placeholder text for a missing reading, not a measurement.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// dateLayouts are tried in order. Numeric layouts are month-first, matching
// how the source reports are produced.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"1-2-2006",
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate attempts calendar-date coercion of a raw cell value. Besides the
// textual layouts above it accepts Excel serial day numbers, which is what a
// date-formatted cell degrades to when the workbook loses its number format.
// Any time-of-day component is discarded.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnight(t), true
		}
	}

	// Excel serial number. 60 skips the fictional 1900 leap day; the upper
	// bound keeps plain measurement values from turning into far-future dates.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 60 && serial < 200000 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return midnight(t), true
		}
	}

	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
