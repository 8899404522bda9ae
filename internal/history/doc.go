// Package history provides SQLite-based storage for benchmark run results.
//
// Each benchmark run is stored as one row keyed by the target document's
// content fingerprint, so history survives file renames and copies. The
// store backs the `pdfcrack history` command and the regression check of
// `pdfcrack bench`: a run's verification rate is compared against the median
// rate of recent completed runs for the same document and scenario shape.
package history
