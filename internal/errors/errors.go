// Package errors provides a lightweight structured error type (SiteError)
// for category-based classification of load failures in the CLI and callers.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a sitebuilder error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Extension errors (plugins, presets)
	CategoryPlugin ErrorCategory = "plugin"

	// Build and output errors
	CategoryBuild      ErrorCategory = "build"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ErrorKind identifies a specific failure within a category. Callers branch on
// kinds (IsKind) rather than on message text.
type ErrorKind string

const (
	KindUnspecified         ErrorKind = ""
	KindConfigNotFound      ErrorKind = "config_not_found"
	KindMissingFields       ErrorKind = "missing_required_fields"
	KindUnrecognizedFields  ErrorKind = "unrecognized_fields"
	KindInvalidPluginFormat ErrorKind = "invalid_plugin_format"
	KindInvalidPresetFormat ErrorKind = "invalid_preset_format"
	KindPluginInstantiation ErrorKind = "plugin_instantiation"
	KindInvalidRoute        ErrorKind = "invalid_route"
	KindArtifactWrite       ErrorKind = "artifact_write"
)

// SiteError is a structured error with category, kind, and context
type SiteError struct {
	Category  ErrorCategory `json:"category"`
	Kind      ErrorKind     `json:"kind,omitempty"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for SiteError
type ContextFields map[string]any

// Error implements the error interface
func (e *SiteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *SiteError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *SiteError) WithContext(key string, value any) *SiteError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithKind tags the error with a specific kind
func (e *SiteError) WithKind(kind ErrorKind) *SiteError {
	e.Kind = kind
	return e
}

// New creates a new SiteError
func New(category ErrorCategory, severity ErrorSeverity, message string) *SiteError {
	return &SiteError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new SiteError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *SiteError {
	return &SiteError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// As returns the outermost SiteError in err's chain.
func As(err error) (*SiteError, bool) {
	var se *SiteError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if se, ok := As(err); ok {
		return se.Category == category
	}
	return false
}

// IsKind reports whether any SiteError in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var se *SiteError
		if !stdErrors.As(err, &se) {
			return false
		}
		if se.Kind == kind {
			return true
		}
		err = se.Cause
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if se, ok := As(err); ok {
		return se.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a SiteError
func GetCategory(err error) ErrorCategory {
	if se, ok := As(err); ok {
		return se.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error
func ValidationError(message string) *SiteError {
	return &SiteError{
		Category:  CategoryValidation,
		Severity:  SeverityFatal,
		Message:   message,
		Retryable: false,
	}
}

// WrapError wraps an existing error with a new SiteError
func WrapError(err error, category ErrorCategory, message string) *SiteError {
	return &SiteError{
		Category:  category,
		Severity:  SeverityError,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}
