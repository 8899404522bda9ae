package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic error handling while still providing human-readable
// messages.
var (
	// ErrNoTarget is returned when no PDF document path is specified.
	ErrNoTarget = errors.New("no target specified: provide the path of a PDF document")

	// ErrInvalidLengthRange is returned when the password length range is
	// not positive or the minimum exceeds the maximum.
	ErrInvalidLengthRange = errors.New("invalid length range: lengths must be positive and min-len <= max-len")

	// ErrInvalidWorkerCount is returned when the worker count is not
	// positive. Zero workers would mean no verification at all.
	ErrInvalidWorkerCount = errors.New("invalid worker count: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
