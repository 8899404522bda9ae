// Package config provides configuration structures and utilities for
// pdfcrack. It defines the main options for a cracking run (length range,
// character set selection, worker tuning) and report generation preferences,
// plus the optional .pdfcrack YAML file with per-document overrides.
package config
