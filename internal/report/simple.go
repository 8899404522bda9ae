package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdfcrack/pdfcrack/internal/engine"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeOutcome(&sb, summary)
	w.writeStats(&sb, summary)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         PDFCRACK REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Document:       %s\n", summary.Document)
	if w.verbose && summary.Fingerprint != "" {
		fmt.Fprintf(sb, "Fingerprint:    %s\n", summary.Fingerprint)
	}
	fmt.Fprintf(sb, "Length Range:   %d-%d\n", summary.MinLen, summary.MaxLen)
	fmt.Fprintf(sb, "Charset:        %s\n", summary.Charset)
	fmt.Fprintf(sb, "Workers:        %d\n", summary.Workers)
	if w.verbose {
		fmt.Fprintf(sb, "Batch Size:     %d\n", summary.BatchSize)
	}
	sb.WriteString("\n")
}

// writeOutcome writes the status line and, when found, the password.
func (w *SimpleWriter) writeOutcome(sb *strings.Builder, summary *Summary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	switch summary.Result.Status {
	case engine.StatusFound:
		fmt.Fprintf(sb, "Status:         PASSWORD FOUND\n")
		fmt.Fprintf(sb, "Password:       %s\n", summary.Result.Password)
	case engine.StatusNotFound:
		sb.WriteString("Status:         NOT FOUND (keyspace exhausted)\n")
	case engine.StatusInterrupted:
		sb.WriteString("Status:         INTERRUPTED (partial results)\n")
	case engine.StatusNotEncrypted:
		sb.WriteString("Status:         NOT ENCRYPTED (document opens without a password)\n")
	case engine.StatusFileReadError:
		fmt.Fprintf(sb, "Status:         FILE READ ERROR - %s\n", summary.Result.ErrorMessage)
	case engine.StatusInitializationError:
		fmt.Fprintf(sb, "Status:         INITIALIZATION ERROR - %s\n", summary.Result.ErrorMessage)
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writeStats writes the search statistics section.
func (w *SimpleWriter) writeStats(sb *strings.Builder, summary *Summary) {
	res := summary.Result
	if res.Status == engine.StatusFileReadError || res.Status == engine.StatusInitializationError {
		return
	}

	fmt.Fprintf(sb, "Checked:        %d", res.PasswordsChecked)
	if res.TotalCandidates > 0 {
		fmt.Fprintf(sb, " / %d candidates", res.TotalCandidates)
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Elapsed:        %s\n", res.Elapsed.Round(time.Millisecond))
	if res.Rate > 0 {
		fmt.Fprintf(sb, "Rate:           %.0f passwords/sec\n", res.Rate)
	}
	sb.WriteString("\n")
}
