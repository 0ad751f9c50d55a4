// Package errors provides structured error types for pilotdeck.
// Errors include context, causes, and actionable suggestions.
package errors

import (
	"fmt"
	"strings"
)

// Category classifies errors for consistent handling and display.
type Category string

const (
	CategoryConfig     Category = "config"     // Configuration loading/parsing errors
	CategoryValidation Category = "validation" // Input validation errors
	CategoryRender     Category = "render"     // Report layout/serialization errors
	CategoryExport     Category = "export"     // Artifact writing errors
	CategoryCommand    Category = "command"    // Shell/CLI command errors
	CategoryNetwork    Category = "network"    // Network/connectivity errors
	CategoryIO         Category = "io"         // File/IO errors
	CategoryInternal   Category = "internal"   // Internal/unexpected errors
)

// DeckError is a structured error with context and suggestions.
// It implements the error interface and supports error wrapping.
type DeckError struct {
	// Code is a unique identifier for this error type (e.g., "RENDER_INVALID_SPEC")
	Code string

	// Category classifies this error for consistent handling
	Category Category

	// Message is the primary error message describing what went wrong
	Message string

	// Context provides additional key-value details about the error
	Context map[string]string

	// Cause is the underlying error that triggered this error (for wrapping)
	Cause error

	// Suggestions are actionable remediation steps for the user
	Suggestions []string
}

// Error implements the error interface.
// Returns a simple string representation for compatibility with standard error handling.
func (e *DeckError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
// This enables errors.Is() and errors.As() to work with DeckError.
func (e *DeckError) Unwrap() error {
	return e.Cause
}

// Is reports whether e matches target for errors.Is() checks.
// Two DeckErrors match if they have the same Code.
func (e *DeckError) Is(target error) bool {
	if t, ok := target.(*DeckError); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new DeckError with the given code, category, and message.
func New(code string, category Category, message string) *DeckError {
	return &DeckError{
		Code:     code,
		Category: category,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// WithContext adds a context key-value pair and returns the error for chaining.
func (e *DeckError) WithContext(key, value string) *DeckError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause wraps an underlying error and returns the error for chaining.
func (e *DeckError) WithCause(cause error) *DeckError {
	e.Cause = cause
	return e
}

// WithSuggestion adds a remediation suggestion and returns the error for chaining.
func (e *DeckError) WithSuggestion(suggestion string) *DeckError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple remediation suggestions.
func (e *DeckError) WithSuggestions(suggestions ...string) *DeckError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// HasContext returns true if the error has context information.
func (e *DeckError) HasContext() bool {
	return len(e.Context) > 0
}

// HasSuggestions returns true if the error has suggestions.
func (e *DeckError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// ContextString returns a formatted string of all context entries.
func (e *DeckError) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	var parts []string
	for k, v := range e.Context {
		parts = append(parts, fmt.Sprintf("%s=%q", k, v))
	}
	return strings.Join(parts, ", ")
}

// Wrap wraps an existing error with a DeckError.
func Wrap(err error, code string, category Category, message string) *DeckError {
	return New(code, category, message).WithCause(err)
}

// AsDeckError attempts to convert an error to a DeckError.
// Returns the DeckError and true if successful, nil and false otherwise.
func AsDeckError(err error) (*DeckError, bool) {
	if err == nil {
		return nil, false
	}
	if de, ok := err.(*DeckError); ok {
		return de, true
	}
	return nil, false
}

// IsCategory checks if an error is a DeckError with the given category.
func IsCategory(err error, category Category) bool {
	if de, ok := AsDeckError(err); ok {
		return de.Category == category
	}
	return false
}

// IsCode checks if an error is a DeckError with the given code.
func IsCode(err error, code string) bool {
	if de, ok := AsDeckError(err); ok {
		return de.Code == code
	}
	return false
}
