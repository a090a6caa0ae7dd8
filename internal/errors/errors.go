package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// RootMissing indicates the analysis root directory does not exist or is unreadable
	RootMissing ErrorCode = "ROOT_MISSING"
	// DiscoveryPath indicates a candidate path could not be normalized relative to root
	DiscoveryPath ErrorCode = "DISCOVERY_PATH"
	// ParseFailure indicates a file could not be parsed into a syntax tree
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// ResolutionAmbiguity indicates a relative import could not be resolved to a concrete module
	ResolutionAmbiguity ErrorCode = "RESOLUTION_AMBIGUITY"
	// NameCollision indicates two file paths normalized to the same module name
	NameCollision ErrorCode = "NAME_COLLISION"
	// UnsupportedFormat indicates an unknown output format was requested
	UnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AnalyzerError represents a depviz error with a stable code and message
type AnalyzerError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new AnalyzerError
func New(code ErrorCode, message string, cause error) *AnalyzerError {
	return &AnalyzerError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *AnalyzerError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalyzerError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AnalyzerError) WithDetails(details interface{}) *AnalyzerError {
	e.Details = details
	return e
}

// IsFatal reports whether an error code aborts the whole run.
// Per the propagation policy only a missing root directory (or an internal
// bug) is fatal; every per-file failure is recorded as a diagnostic and the
// run continues with the remaining files.
func IsFatal(code ErrorCode) bool {
	return code == RootMissing || code == InternalError
}

// Diagnostic is a per-file, non-fatal finding recorded during a run.
// The run completes and reports the diagnostic list alongside whatever
// graph could be built from the remaining files.
type Diagnostic struct {
	Code    ErrorCode `json:"code"`
	File    string    `json:"file,omitempty"`
	Message string    `json:"message"`
}

// NewDiagnostic creates a Diagnostic attributed to a file
func NewDiagnostic(code ErrorCode, file, message string) Diagnostic {
	return Diagnostic{Code: code, File: file, Message: message}
}

// String formats the diagnostic for human output
func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("[%s] %s: %s", d.Code, d.File, d.Message)
	}
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}
