package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pdfcrack/pdfcrack/internal/config"
	"github.com/pdfcrack/pdfcrack/internal/history"
	"github.com/pdfcrack/pdfcrack/internal/pdf"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command inspects benchmark runs stored by 'pdfcrack bench'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [pdf-file]",
		Short: "Show stored benchmark runs",
		Long: `History displays benchmark runs stored by 'pdfcrack bench'.

Runs are keyed by the document's content fingerprint, so history follows
the file even when it is renamed or moved. Given a PDF file, the command
fingerprints it and lists its stored runs, newest first.

Examples:
  # Show benchmark history for a document
  pdfcrack history testdata/encrypted.pdf

  # Show only the five most recent runs
  pdfcrack history --limit 5 testdata/encrypted.pdf

  # List every document with stored runs
  pdfcrack history --list-documents

  # Output history in JSON format
  pdfcrack history --json testdata/encrypted.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-documents", "L", false,
		"List all documents with stored benchmark runs")
	cmd.Flags().IntP("limit", "n", 0,
		"Maximum number of runs to show (0 = all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listDocuments, err := cmd.Flags().GetBool("list-documents")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if !listDocuments && len(args) == 0 {
		return errors.New("specify a PDF file, or --list-documents to list all documents")
	}

	// Open read-only: history must never create an empty database.
	opts := history.DefaultOptions()
	opts.CreateIfNotExists = false

	store, err := history.Open(config.XDGDataDir(), opts)
	if err != nil {
		return fmt.Errorf("no benchmark history found (run 'pdfcrack bench' first): %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	if listDocuments {
		return listStoredDocuments(ctx, store, jsonOutput)
	}

	return listRuns(ctx, store, args[0], limit, jsonOutput)
}

// listStoredDocuments lists every document with stored benchmark runs.
func listStoredDocuments(ctx context.Context, store *history.Store, jsonOutput bool) error {
	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No benchmark runs stored.")
		fmt.Println("\nUse 'pdfcrack bench <pdf-file>' to record one.")
		return nil
	}

	fmt.Printf("Benchmarked documents (%d):\n\n", len(docs))
	fmt.Printf("  %-44s  %-5s  %-20s  %s\n", "Fingerprint", "Runs", "Last Run", "Document")
	fmt.Println("  " + strings.Repeat("-", 100))
	for _, d := range docs {
		fmt.Printf("  %-44s  %-5d  %-20s  %s\n",
			shortFingerprint(d.Fingerprint),
			d.Runs,
			d.LastRun.Format("2006-01-02 15:04:05"),
			d.Document,
		)
	}
	fmt.Println("\nUse 'pdfcrack history <pdf-file>' to see the runs for a document.")

	return nil
}

// listRuns lists stored benchmark runs for one document.
func listRuns(ctx context.Context, store *history.Store, target string, limit int, jsonOutput bool) error {
	runs, err := lookupRuns(ctx, store, target, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Printf("No benchmark runs stored for %s\n", target)
		fmt.Println("\nUse 'pdfcrack bench' to record one.")
		return nil
	}

	fmt.Printf("Benchmark history for %s (%d runs):\n\n", target, len(runs))
	fmt.Printf("  %-6s  %-20s  %-12s  %-9s  %-7s  %-10s  %s\n",
		"ID", "Date", "Status", "Checked", "Workers", "Elapsed", "Rate")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, r := range runs {
		fmt.Printf("  %-6d  %-20s  %-12s  %-9d  %-7d  %-10s  %.0f/s\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Status,
			r.PasswordsChecked,
			r.Workers,
			r.Elapsed.Round(time.Millisecond),
			r.Rate,
		)
	}

	if delta, ok := latestRateDelta(runs); ok {
		fmt.Printf("\nLatest vs previous: %+.1f%% rate change\n", delta)
	}
	fmt.Println("\nUse 'pdfcrack bench --check' to compare a new run against these.")

	return nil
}

// latestRateDelta returns the percentage rate change between the two most
// recent runs. Reported only when both runs completed and are comparable.
func latestRateDelta(runs []history.Run) (float64, bool) {
	if len(runs) < 2 {
		return 0, false
	}
	latest, previous := runs[0], runs[1]
	if previous.Rate <= 0 {
		return 0, false
	}
	if latest.Status != "not_found" || previous.Status != "not_found" {
		return 0, false
	}
	return (latest.Rate - previous.Rate) / previous.Rate * 100.0, true
}

// lookupRuns finds the stored runs for a target. The content fingerprint is
// the primary key; when the file no longer exists on disk, the stored
// document path is used instead so old history stays reachable.
func lookupRuns(ctx context.Context, store *history.Store, target string, limit int) ([]history.Run, error) {
	document, err := os.ReadFile(target)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		if limit <= 0 {
			limit = 100
		}
		runs, err := store.LatestByDocument(ctx, target, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to get benchmark history: %w", err)
		}
		return runs, nil
	}

	runs, err := store.History(ctx, pdf.Fingerprint(document), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get benchmark history: %w", err)
	}
	return runs, nil
}

// shortFingerprint truncates a fingerprint for table display.
func shortFingerprint(fp string) string {
	if len(fp) > 40 {
		return fp[:40] + "..."
	}
	return fp
}
