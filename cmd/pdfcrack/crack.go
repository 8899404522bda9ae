package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pdfcrack/pdfcrack/internal/config"
	"github.com/pdfcrack/pdfcrack/internal/engine"
	"github.com/pdfcrack/pdfcrack/internal/keyspace"
	"github.com/pdfcrack/pdfcrack/internal/log"
	"github.com/pdfcrack/pdfcrack/internal/pdf"
	"github.com/pdfcrack/pdfcrack/internal/report"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// NewCrackCmd creates the crack command.
func NewCrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crack [pdf-file]",
		Short: "Recover the password of an encrypted PDF document",
		Long: `Crack performs an exhaustive password search against an encrypted PDF.

It enumerates every candidate in the configured character set and length
range, shortest lengths first, and verifies candidates concurrently. The
search stops as soon as one worker finds a matching password.

By default only digits 0-9 are tried, at lengths 4 to 5. Add character
groups or a custom character string to widen the search.

Examples:
  # Try 4-5 digit passwords (default)
  pdfcrack crack secret.pdf

  # Try 1-4 character passwords over digits and letters
  pdfcrack crack --min-len 1 --max-len 4 --letters secret.pdf

  # Add specific extra characters to the set
  pdfcrack crack --charset "-_." secret.pdf

  # Output JSON report to a file
  pdfcrack crack --json -o report.json secret.pdf

  # Use a custom configuration file
  pdfcrack crack -c myconfig.yaml secret.pdf

Configuration file (.pdfcrack) example:
  defaults:
    workers: 8
  documents:
    invoices/vendor-x.pdf:
      minLen: 6
      maxLen: 6
    archive/old.pdf:
      charset: "abc123"`,
		Args: cobra.ExactArgs(1),
		RunE: runCrackCmd,
	}

	addSearchFlags(cmd)

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// addSearchFlags registers the flags shared by crack and bench.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-len", config.DefaultMinLen,
		"Minimum password length to try (inclusive)")
	cmd.Flags().Int("max-len", config.DefaultMaxLen,
		"Maximum password length to try (inclusive)")

	// Character set flags
	cmd.Flags().Bool("numbers", false,
		"Include digits 0-9 in the character set (default when no other set is chosen)")
	cmd.Flags().Bool("letters", false,
		"Include ASCII letters a-z and A-Z in the character set")
	cmd.Flags().Bool("special", false,
		"Include special characters "+keyspace.GroupSpecial+" in the character set")
	cmd.Flags().String("charset", "",
		"Additional characters to include in the character set")

	// Concurrency flags
	cmd.Flags().IntP("workers", "w", 0,
		"Number of parallel verification workers (default: number of CPUs)")
	cmd.Flags().IntP("batch-size", "b", config.DefaultBatchSize,
		"Number of candidates each worker claims per batch")

	// Behavior flags
	cmd.Flags().Bool("worker-errors", false,
		"Log per-candidate verification errors instead of absorbing them")
	cmd.Flags().Bool("no-progress", false,
		"Disable the live progress bar")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pdfcrack in current or home directory)")
}

// runCrackCmd executes the crack command.
func runCrackCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with password masking
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	summary, err := runSearch(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return outputReport(cfg, summary)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Target = args[0]
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.MinLen, err = cmd.Flags().GetInt("min-len")
	if err != nil {
		return nil, err
	}

	cfg.MaxLen, err = cmd.Flags().GetInt("max-len")
	if err != nil {
		return nil, err
	}

	cfg.CharsetNumbers, err = cmd.Flags().GetBool("numbers")
	if err != nil {
		return nil, err
	}

	cfg.CharsetLetters, err = cmd.Flags().GetBool("letters")
	if err != nil {
		return nil, err
	}

	cfg.CharsetSpecial, err = cmd.Flags().GetBool("special")
	if err != nil {
		return nil, err
	}

	cfg.CharsetCustom, err = cmd.Flags().GetString("charset")
	if err != nil {
		return nil, err
	}

	// Digits are the default character set when the user selects nothing.
	if !cfg.CharsetNumbers && !cfg.CharsetLetters && !cfg.CharsetSpecial && cfg.CharsetCustom == "" {
		cfg.CharsetNumbers = true
	}

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		cfg.Workers = workers
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch-size")
	if err != nil {
		return nil, err
	}

	cfg.ReportWorkerErrors, err = cmd.Flags().GetBool("worker-errors")
	if err != nil {
		return nil, err
	}

	cfg.NoProgress, err = cmd.Flags().GetBool("no-progress")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-document configurations from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.DocumentConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.DocumentConfigs = &config.File{
			Documents: make(map[string]config.DocumentConfig),
		}
	}

	applyDocumentConfig(cfg)

	// Report flags exist only on commands that write reports.
	if cmd.Flags().Lookup("json") != nil {
		cfg.JSONReport, err = cmd.Flags().GetBool("json")
		if err != nil {
			return nil, err
		}

		cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
		if err != nil {
			return nil, err
		}

		cfg.ReportFile, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyDocumentConfig merges per-document overrides from the config file
// into the global configuration.
func applyDocumentConfig(cfg *config.Config) {
	if cfg.DocumentConfigs == nil {
		return
	}

	dc := cfg.DocumentConfigs.GetDocumentConfig(cfg.Target)
	if dc.MinLen > 0 {
		cfg.MinLen = dc.MinLen
	}
	if dc.MaxLen > 0 {
		cfg.MaxLen = dc.MaxLen
	}
	if dc.Charset != "" {
		cfg.CharsetCustom = cfg.CharsetCustom + dc.Charset
	}
	if dc.Workers > 0 {
		cfg.Workers = dc.Workers
	}
	if dc.BatchSize > 0 {
		cfg.BatchSize = dc.BatchSize
	}
}

// runSearch executes the password search and returns the report summary.
func runSearch(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*report.Summary, error) {
	charset, err := keyspace.NewCharset(cfg.CharsetCustom,
		cfg.CharsetNumbers, cfg.CharsetLetters, cfg.CharsetSpecial)
	if err != nil {
		return nil, err
	}

	logger.Info("starting search",
		"document", cfg.Target,
		"minLen", cfg.MinLen,
		"maxLen", cfg.MaxLen,
		"charsetSize", len(charset),
		"workers", cfg.Workers,
		"batchSize", cfg.BatchSize,
	)

	opts := []engine.Option{
		engine.WithWorkers(cfg.Workers),
		engine.WithBatchSize(cfg.BatchSize),
		engine.WithVerifyErrorReporting(cfg.ReportWorkerErrors),
		engine.WithLogger(logger),
	}

	// The progress bar is created on the first update because the keyspace
	// size is not known until the engine has computed it.
	var bar *progressbar.ProgressBar
	if !cfg.NoProgress {
		opts = append(opts, engine.WithProgress(func(checked, total uint64) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "cracking") //nolint:gosec // sizes are validated
			}
			_ = bar.Set64(int64(checked)) //nolint:gosec // checked <= total
		}))
	}

	cracker := engine.New(cfg.Target, cfg.MinLen, cfg.MaxLen, charset, pdf.NewVerifier(), opts...)

	startedAt := time.Now()
	result := cracker.Run(ctx)

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	// Failures before the search started are command errors, not reports.
	switch result.Status {
	case engine.StatusFileReadError, engine.StatusInitializationError:
		return nil, result.Err
	}

	return &report.Summary{
		Document:  cfg.Target,
		MinLen:    cfg.MinLen,
		MaxLen:    cfg.MaxLen,
		Charset:   charset.String(),
		Workers:   cfg.Workers,
		BatchSize: cfg.BatchSize,
		StartedAt: startedAt,
		Result:    result,
	}, nil
}

// outputReport writes the summary in the requested format.
func outputReport(cfg *config.Config, summary *report.Summary) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain the recovered password; keep them owner-readable only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(summary)
	return err
}
