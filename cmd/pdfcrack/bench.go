package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pdfcrack/pdfcrack/internal/config"
	"github.com/pdfcrack/pdfcrack/internal/engine"
	"github.com/pdfcrack/pdfcrack/internal/history"
	"github.com/pdfcrack/pdfcrack/internal/log"
	"github.com/pdfcrack/pdfcrack/internal/pdf"
	"github.com/spf13/cobra"
)

// NewBenchCmd creates the bench command.
func NewBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [pdf-file]",
		Short: "Benchmark search throughput against a document",
		Long: `Bench measures verification throughput by running a full search.

Use a scenario whose password is NOT in the keyspace (or a small keyspace)
so the search exhausts it and the measured rate covers the whole run. Each
run is stored in a local SQLite database keyed by the document's content
fingerprint, so results survive file renames.

With --check, the run's rate is compared against the median rate of the
most recent stored runs for the same document and scenario. The command
exits non-zero when the rate dropped more than the threshold, which makes
it usable as a CI performance gate.

Examples:
  # Benchmark the default 4-5 digit scenario and store the result
  pdfcrack bench testdata/encrypted.pdf

  # Benchmark and fail if throughput regressed more than 10%
  pdfcrack bench --check testdata/encrypted.pdf

  # Use a stricter regression threshold
  pdfcrack bench --check --threshold 5 testdata/encrypted.pdf

  # Measure without storing the result
  pdfcrack bench --save=false testdata/encrypted.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: runBenchCmd,
	}

	addSearchFlags(cmd)

	cmd.Flags().Bool("save", true,
		"Store the run in the benchmark history database")
	cmd.Flags().Bool("check", false,
		"Compare the run against the stored baseline and fail on regression")
	cmd.Flags().Float64("threshold", history.DefaultRegressionThreshold,
		"Rate drop in percent that counts as a regression (with --check)")

	return cmd
}

// runBenchCmd executes the bench command.
func runBenchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	threshold, err := cmd.Flags().GetFloat64("threshold")
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	// The fingerprint identifies the document content across renames.
	document, err := os.ReadFile(cfg.Target)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	fingerprint := pdf.Fingerprint(document)

	summary, err := runSearch(ctx, cfg, logger)
	if err != nil {
		return err
	}
	summary.Fingerprint = fingerprint

	res := summary.Result
	fmt.Printf("Benchmark: %s\n", cfg.Target)
	fmt.Printf("  status:   %s\n", res.Status)
	fmt.Printf("  checked:  %d candidates\n", res.PasswordsChecked)
	fmt.Printf("  elapsed:  %s\n", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("  rate:     %.0f passwords/sec\n", res.Rate)

	if res.Status == engine.StatusInterrupted {
		return errors.New("benchmark interrupted; result discarded")
	}

	run := &history.Run{
		Fingerprint:      fingerprint,
		Document:         cfg.Target,
		Timestamp:        summary.StartedAt,
		MinLen:           cfg.MinLen,
		MaxLen:           cfg.MaxLen,
		Charset:          summary.Charset,
		Workers:          cfg.Workers,
		BatchSize:        cfg.BatchSize,
		Status:           res.Status.String(),
		PasswordsChecked: res.PasswordsChecked,
		Elapsed:          res.Elapsed,
		Rate:             res.Rate,
	}

	store, err := history.Open(config.XDGDataDir(), history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open benchmark history: %w", err)
	}
	defer store.Close()

	// Check before saving so the run under test is not part of its own
	// baseline.
	var regressionErr error
	if check {
		regressionErr = checkRegression(ctx, store, run, threshold)
	}

	if save {
		if _, err := store.Insert(ctx, run); err != nil {
			return fmt.Errorf("failed to store benchmark run: %w", err)
		}
		logger.Info("benchmark run stored", "fingerprint", fingerprint)
	}

	return regressionErr
}

// checkRegression compares the run against its baseline and prints the
// verdict. Returns an error when the drop exceeds the threshold.
func checkRegression(ctx context.Context, store *history.Store, run *history.Run, threshold float64) error {
	rep, err := store.CheckRegression(ctx, run, threshold)
	if err != nil {
		if errors.Is(err, history.ErrNoRuns) {
			fmt.Printf("\nNo baseline yet: %v\n", err)
			return nil
		}
		return fmt.Errorf("failed to check regression: %w", err)
	}

	fmt.Printf("\nBaseline: %.0f passwords/sec (median of %d runs)\n",
		rep.BaselineRate, rep.BaselineRuns)
	if rep.DropPercent >= 0 {
		fmt.Printf("Change:   -%.1f%%\n", rep.DropPercent)
	} else {
		fmt.Printf("Change:   +%.1f%%\n", -rep.DropPercent)
	}

	if rep.Regression {
		return fmt.Errorf("performance regression: rate dropped %.1f%% (threshold %.1f%%)",
			rep.DropPercent, rep.Threshold)
	}

	fmt.Println("No regression detected.")
	return nil
}
