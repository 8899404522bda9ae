package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values, so that changes to defaults are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default MinLen is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.MinLen != 4 {
			t.Errorf("expected MinLen to be 4, got %d", cfg.MinLen)
		}
	})

	t.Run("default MaxLen is 5", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxLen != 5 {
			t.Errorf("expected MaxLen to be 5, got %d", cfg.MaxLen)
		}
	})

	t.Run("default BatchSize is 100", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 100 {
			t.Errorf("expected BatchSize to be 100, got %d", cfg.BatchSize)
		}
	})

	t.Run("default Workers is positive", func(t *testing.T) {
		t.Parallel()
		if cfg.Workers <= 0 {
			t.Errorf("expected positive worker count, got %d", cfg.Workers)
		}
	})

	t.Run("no charset group selected by default", func(t *testing.T) {
		t.Parallel()
		if cfg.CharsetNumbers || cfg.CharsetLetters || cfg.CharsetSpecial {
			t.Error("expected no charset group selected by default")
		}
	})
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case exercises one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		return &Config{
			Target:    "locked.pdf",
			MinLen:    4,
			MaxLen:    5,
			Workers:   2,
			BatchSize: 100,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing target",
			mutate:  func(c *Config) { c.Target = "" },
			wantErr: ErrNoTarget,
		},
		{
			name:    "zero min length",
			mutate:  func(c *Config) { c.MinLen = 0 },
			wantErr: ErrInvalidLengthRange,
		},
		{
			name:    "min greater than max",
			mutate:  func(c *Config) { c.MinLen = 6 },
			wantErr: ErrInvalidLengthRange,
		},
		{
			name:    "negative max length",
			mutate:  func(c *Config) { c.MaxLen = -1 },
			wantErr: ErrInvalidLengthRange,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: ErrInvalidWorkerCount,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads documents and defaults", func(t *testing.T) {
		t.Parallel()

		content := `
defaults:
  minLen: 3
  maxLen: 6
documents:
  invoices/q1.pdf:
    minLen: 6
    maxLen: 6
    charset: "0123456789"
  report.pdf:
    workers: 2
`
		path := filepath.Join(t.TempDir(), ".pdfcrack")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Defaults.MinLen != 3 || cf.Defaults.MaxLen != 6 {
			t.Errorf("unexpected defaults: %+v", cf.Defaults)
		}
		if len(cf.Documents) != 2 {
			t.Fatalf("expected 2 documents, got %d", len(cf.Documents))
		}
		if cf.Documents["invoices/q1.pdf"].Charset != "0123456789" {
			t.Errorf("unexpected charset: %q", cf.Documents["invoices/q1.pdf"].Charset)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".pdfcrack")
		if err := os.WriteFile(path, []byte("documents: [not a map"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestGetDocumentConfig(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: DocumentConfig{MinLen: 3, MaxLen: 8, BatchSize: 50},
		Documents: map[string]DocumentConfig{
			"pinned.pdf": {MinLen: 6, MaxLen: 6, Charset: "0123456789"},
		},
	}

	t.Run("unknown document gets defaults", func(t *testing.T) {
		t.Parallel()

		dc := cf.GetDocumentConfig("other.pdf")
		if dc.MinLen != 3 || dc.MaxLen != 8 || dc.BatchSize != 50 {
			t.Errorf("expected defaults, got %+v", dc)
		}
	})

	t.Run("document entry overrides defaults", func(t *testing.T) {
		t.Parallel()

		dc := cf.GetDocumentConfig("pinned.pdf")
		if dc.MinLen != 6 || dc.MaxLen != 6 {
			t.Errorf("expected overridden lengths, got %+v", dc)
		}
		if dc.Charset != "0123456789" {
			t.Errorf("expected overridden charset, got %q", dc.Charset)
		}
		if dc.BatchSize != 50 {
			t.Errorf("expected default batch size to survive, got %d", dc.BatchSize)
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if dir := XDGDataDir(); filepath.Base(dir) != AppName {
		t.Errorf("expected data dir to end in %q, got %q", AppName, dir)
	}
	if dir := XDGConfigDir(); filepath.Base(dir) != AppName {
		t.Errorf("expected config dir to end in %q, got %q", AppName, dir)
	}
}
