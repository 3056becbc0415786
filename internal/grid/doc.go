// Package grid reads uploaded report bytes into the raw cell matrix the
// schema detector consumes. The filename extension selects the parsing
// strategy: .csv goes through encoding/csv with a Windows-1252 fallback for
// non-UTF-8 exports, anything else is opened as an Excel workbook.
//
// Structural failures, meaning bytes that cannot be interpreted as a grid at
// all, surface as *SourceFormatError with the underlying cause attached. Per-cell
// dirtiness is not this package's concern; dirty cells travel downstream
// untouched for the dataprocessing package to absorb.
package grid
