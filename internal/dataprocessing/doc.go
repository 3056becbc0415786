// Package dataprocessing recovers the schema of a loosely structured
// water-treatment monitoring report and analyzes the recovered data.
//
// # Architecture
//
// The package is organized into five components, applied in order:
//
// 1. Limit parser: extracts numeric (min, max) bounds from free-text limit cells
// 2. Schema detector: locates the header row and the control-limit row in a raw grid
// 3. Table loader: re-reads the grid with the detected header and coerces the date column
// 4. Quality analyzer: finds calendar-date gaps and missing parameter values
// 5. Violation checker: flags observations outside their control limits
//
// # Data Flow
//
//	Raw Grid → DetectSchema → (header row, limits) → LoadTable → ParameterTable
//	                                                     ├→ AnalyzeQuality → QualityReport
//	                                                     └→ CheckViolations → []Violation
//
// # Error Handling
//
// Everything in this package is a pure function over an in-memory grid or
// table, and none of it fails: cells that cannot be coerced are dropped,
// counted, or skipped depending on the component, and missing schema rows
// fall back to documented defaults. Structural read failures belong to the
// grid package, which produces the Grid this package consumes.
package dataprocessing
