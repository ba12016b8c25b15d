// Package errors provides structured error types for better observability
// and programmatic error handling across the compiler, the CLI and the API.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnknownLiteral,
//	    "failed to scan expression",
//	    scanErr,
//	    map[string]any{
//	        "position": 12,
//	    },
//	)
package errors
