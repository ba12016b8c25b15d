// Package logging provides structured logging utilities for msc and mscd.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults:
// JSON records on stderr, module/version attributes on every record, and source
// locations for debug logs. Results and traces go to stdout, so logs never mix
// with the program output that users pipe around.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("mscd", "v1.0.0")
//	    slog.Info("compiling", "expression", expr)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("msc", "v1.0.0", "warn")
//
// # Environment Configuration
//
//	LOG_LEVEL=debug mscd
//
// If LOG_LEVEL is not set, defaults to INFO level.
package logging
