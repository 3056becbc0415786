package exporter

import (
	"io"
	"sort"
	"strconv"

	"ctreport/pkg/contracts/domain"
)

const dateFormat = "2006-01-02"

// ViolationHeaders are the columns of a violations export.
var ViolationHeaders = []string{"Date", "Parameter", "Value", "Bound", "Limit"}

// ViolationRecords converts limit violations to CSV records
func ViolationRecords(violations []domain.Violation) [][]string {
	records := make([][]string, 0, len(violations))
	for _, v := range violations {
		records = append(records, []string{
			v.Date.Format(dateFormat),
			v.Parameter,
			formatFloat(v.Value),
			string(v.Bound),
			formatFloat(v.Limit),
		})
	}
	return records
}

// WriteViolations exports limit violations as CSV
func (c *CSVWriter) WriteViolations(w io.Writer, violations []domain.Violation) error {
	return c.WriteCSV(w, WriteOptions{
		Headers:   ViolationHeaders,
		Records:   ViolationRecords(violations),
		BOMPrefix: true,
	})
}

// WriteQuality exports a data quality report as CSV. Missing dates come
// first, then per-parameter missing value counts.
func (c *CSVWriter) WriteQuality(w io.Writer, report *domain.QualityReport) error {
	records := make([][]string, 0, len(report.MissingDates)+len(report.MissingValueCounts))
	for _, d := range report.MissingDates {
		records = append(records, []string{"missing_date", d.Format(dateFormat), ""})
	}
	for _, name := range sortedKeys(report.MissingValueCounts) {
		records = append(records, []string{"missing_values", name, strconv.Itoa(report.MissingValueCounts[name])})
	}

	return c.WriteCSV(w, WriteOptions{
		Headers:   []string{"Issue", "Subject", "Count"},
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteTable exports the cleaned parameter table as CSV, date column first
func (c *CSVWriter) WriteTable(w io.Writer, table *domain.ParameterTable) error {
	headers := append([]string{domain.DateColumn}, table.Columns...)

	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		record := make([]string, 0, len(headers))
		record = append(record, row.Date.Format(dateFormat))
		for _, col := range table.Columns {
			record = append(record, row.Value(col))
		}
		records = append(records, record)
	}

	return c.WriteCSV(w, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
