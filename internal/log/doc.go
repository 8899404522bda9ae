// Package log provides secure logging functionality with automatic masking
// of password material, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of candidate and recovered passwords in log output
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why mask passwords in our own logs
//
// Verbose logs are routinely pasted into bug reports and CI output. A
// recovered password belongs in the report the user asked for, not in a
// debug line that outlives the run. The SecureHandler masks any attribute
// whose key names password material, so components can log freely without
// auditing every call site.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("verification failed",
//	    "candidate", "hunter2",  // Will be masked
//	    "worker", 3,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
