package config

import (
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These match the original pdf-pycrack defaults where applicable.
const (
	// DefaultMinLen is the shortest password length tried when the user does
	// not specify one. Four digits covers the common PIN-style passwords
	// without an excessive search space.
	DefaultMinLen = 4

	// DefaultMaxLen is the longest password length tried by default.
	DefaultMaxLen = 5

	// DefaultBatchSize is the number of candidates a worker verifies between
	// progress reports. Larger batches reduce channel traffic; smaller ones
	// keep the progress display and cancellation checks responsive.
	DefaultBatchSize = 100

	// AppName is the application name used for XDG directory paths.
	AppName = "pdfcrack"
)

// Config holds all options for a pdfcrack invocation.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., SearchConfig, ReportConfig). The number of options is manageable,
// and nesting would add complexity without significant benefit.
type Config struct {
	// Target is the path of the PDF document to crack.
	Target string

	// MinLen is the minimum password length to try (inclusive).
	MinLen int

	// MaxLen is the maximum password length to try (inclusive).
	MaxLen int

	// CharsetNumbers includes the digits 0-9 in the character set.
	CharsetNumbers bool

	// CharsetLetters includes lowercase and uppercase ASCII letters.
	CharsetLetters bool

	// CharsetSpecial includes common special characters.
	CharsetSpecial bool

	// CharsetCustom is an additional user-provided character string.
	// It is merged with the selected groups, deduplicated, and sorted.
	CharsetCustom string

	// Workers is the number of parallel verification workers.
	// Zero means use all available CPUs.
	Workers int

	// BatchSize is the number of candidates a worker pulls per batch.
	BatchSize int

	// ReportWorkerErrors surfaces per-candidate verification errors in the
	// log instead of absorbing them silently. Either way a failing candidate
	// counts as a non-match and never aborts the search.
	ReportWorkerErrors bool

	// NoProgress disables the live progress bar, for non-interactive runs.
	NoProgress bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pdfcrack in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DocumentConfigs holds per-document overrides loaded from the config
	// file. Populated by LoadConfigFile.
	DocumentConfigs *File

	// JSONReport enables JSON report output instead of human-readable text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on zero
// values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		MinLen:    DefaultMinLen,
		MaxLen:    DefaultMaxLen,
		BatchSize: DefaultBatchSize,
		Workers:   runtime.NumCPU(),
	}
}

// Validate checks the configuration for errors that must stop the run
// before any worker is started.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}
	if c.MinLen <= 0 || c.MaxLen <= 0 || c.MinLen > c.MaxLen {
		return ErrInvalidLengthRange
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkerCount
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGDataDir returns the XDG data directory for pdfcrack.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/pdfcrack
// On macOS: ~/Library/Application Support/pdfcrack
// On Windows: %LOCALAPPDATA%\pdfcrack
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pdfcrack.
// On Linux: ~/.config/pdfcrack
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
