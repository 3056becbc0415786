// Package exporter writes analysis results to CSV files.
//
// The package has two layers. csv.go is the generic writer: headers,
// records, optional UTF-8 BOM for Excel compatibility, file or stream
// output. analysis.go maps domain results (parameter tables, quality
// reports, limit violations) onto that writer.
package exporter
