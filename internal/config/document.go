package config

// DocumentConfig holds per-document overrides for a single PDF file.
// This allows keeping known search parameters (for example, "invoices from
// vendor X always use 6-digit PINs") next to the document path instead of
// retyping them as flags.
type DocumentConfig struct {
	// MinLen overrides the global minimum password length.
	// If zero, the global value is used.
	MinLen int `yaml:"minLen,omitempty"`

	// MaxLen overrides the global maximum password length.
	MaxLen int `yaml:"maxLen,omitempty"`

	// Charset is a custom character string for this document. Merged with
	// the character groups selected by flags, deduplicated, and sorted.
	Charset string `yaml:"charset,omitempty"`

	// Workers overrides the global worker count.
	Workers int `yaml:"workers,omitempty"`

	// BatchSize overrides the global per-worker batch size.
	BatchSize int `yaml:"batchSize,omitempty"`
}

// File represents the structure of the .pdfcrack configuration file.
type File struct {
	// Documents maps PDF file paths to their per-document configurations.
	// Keys are matched against the target path as given on the command line.
	Documents map[string]DocumentConfig `yaml:"documents,omitempty"`

	// Defaults contains overrides applied to all documents unless a
	// document-specific entry overrides them again.
	Defaults DocumentConfig `yaml:"defaults,omitempty"`
}

// GetDocumentConfig returns the configuration for a specific document path.
// It merges the document-specific configuration with the file-level defaults.
func (cf *File) GetDocumentConfig(path string) DocumentConfig {
	result := cf.Defaults

	dc, ok := cf.Documents[path]
	if !ok {
		return result
	}
	if dc.MinLen != 0 {
		result.MinLen = dc.MinLen
	}
	if dc.MaxLen != 0 {
		result.MaxLen = dc.MaxLen
	}
	if dc.Charset != "" {
		result.Charset = dc.Charset
	}
	if dc.Workers != 0 {
		result.Workers = dc.Workers
	}
	if dc.BatchSize != 0 {
		result.BatchSize = dc.BatchSize
	}
	return result
}
