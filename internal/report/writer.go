package report

import (
	"io"
	"time"

	"github.com/pdfcrack/pdfcrack/internal/engine"
)

// Summary is the full description of one search run: the document it ran
// against, the scenario that was searched, and the terminal result.
type Summary struct {
	// Document is the path of the target PDF as given on the command line.
	Document string `json:"document"`

	// Fingerprint identifies the document content, independent of path.
	Fingerprint string `json:"fingerprint,omitempty"`

	// MinLen and MaxLen bound the candidate lengths that were searched.
	MinLen int `json:"min_len"`
	MaxLen int `json:"max_len"`

	// Charset is the alphabet candidates were drawn from.
	Charset string `json:"charset"`

	// Workers is the number of concurrent verification workers.
	Workers int `json:"workers"`

	// BatchSize is the number of candidates each worker claimed at a time.
	BatchSize int `json:"batch_size"`

	// StartedAt is when the search began.
	StartedAt time.Time `json:"started_at"`

	// Result is the terminal outcome of the search.
	Result engine.Result `json:"result"`
}

// Writer defines the interface for report output.
// Implementations write search results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *Summary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write summaries, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(summary *Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
