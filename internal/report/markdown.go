package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/pdfcrack/pdfcrack/internal/engine"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeOutcome(md, summary)
	w.writeStats(md, summary)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *Summary) {
	md.H1("pdfcrack Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + summary.Document + "`"},
			{"Length Range", fmt.Sprintf("%d-%d", summary.MinLen, summary.MaxLen)},
			{"Charset", "`" + summary.Charset + "`"},
			{"Workers", strconv.Itoa(summary.Workers)},
			{"Batch Size", strconv.Itoa(summary.BatchSize)},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
}

// writeOutcome writes the result section with a status alert.
func (w *MarkdownWriter) writeOutcome(md *markdown.Markdown, summary *Summary) {
	md.H2("Result")
	md.PlainText("")

	switch summary.Result.Status {
	case engine.StatusFound:
		md.Importantf("Password found: `%s`", summary.Result.Password)
	case engine.StatusNotFound:
		md.Note("No password matched. The configured keyspace was fully exhausted.")
	case engine.StatusInterrupted:
		md.Warning("Search interrupted before the keyspace was exhausted. Counts below are partial.")
	case engine.StatusNotEncrypted:
		md.Note("The document opens without a password. Nothing to search.")
	case engine.StatusFileReadError, engine.StatusInitializationError:
		md.Cautionf("Search failed: %s", summary.Result.ErrorMessage)
	}
	md.PlainText("")
}

// writeStats writes the search statistics table.
func (w *MarkdownWriter) writeStats(md *markdown.Markdown, summary *Summary) {
	res := summary.Result
	if res.Status == engine.StatusFileReadError || res.Status == engine.StatusInitializationError {
		return
	}

	md.H2("Statistics")
	md.PlainText("")

	rows := [][]string{
		{"Status", res.Status.String()},
		{"Passwords Checked", strconv.FormatUint(res.PasswordsChecked, 10)},
	}
	if res.TotalCandidates > 0 {
		rows = append(rows, []string{"Total Candidates", strconv.FormatUint(res.TotalCandidates, 10)})
	}
	rows = append(rows, []string{"Elapsed", res.Elapsed.Round(time.Millisecond).String()})
	if res.Rate > 0 {
		rows = append(rows, []string{"Rate", fmt.Sprintf("%.0f passwords/sec", res.Rate)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}
