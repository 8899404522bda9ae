// Package main provides the entry point for the pdfcrack CLI.
//
// pdfcrack recovers lost PDF passwords by brute-force search over a
// configurable character set and length range, verifying candidates
// concurrently across worker goroutines.
//
// Usage:
//
//	pdfcrack crack <pdf-file>
//	pdfcrack bench <pdf-file>
//
// See --help for all available options.
package main

// main is the entry point for pdfcrack.
func main() {
	Execute()
}
