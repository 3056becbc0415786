// Package render turns an analyzed parameter table into a PDF chart report.
//
// One time-series chart is drawn per parameter column, with dashed
// reference lines for any control limits. Charts render concurrently to
// PNG and are then laid out a fixed number per A4 page.
package render
