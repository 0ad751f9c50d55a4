// Package errors provides smart error constructors that auto-attach suggestions.
// These constructors combine error creation with suggestion lookup for convenience.
package errors

import "fmt"

// -----------------------------------------------------------------------------
// Smart Constructors with Auto-Attached Suggestions
// -----------------------------------------------------------------------------
// These constructors create DeckErrors and automatically attach appropriate
// suggestions from the global registry based on the error code and context.
// Use these for creating user-facing errors that need remediation guidance.

// Config creates a configuration error with auto-attached suggestions.
// The error code should be one of the ErrConfig* constants.
func Config(code, message string) *DeckError {
	err := New(code, CategoryConfig, message)
	return AttachSuggestions(err)
}

// Configf creates a configuration error with a formatted message.
func Configf(code, format string, args ...interface{}) *DeckError {
	return Config(code, fmt.Sprintf(format, args...))
}

// ConfigWrap wraps an error as a configuration error with suggestions.
func ConfigWrap(cause error, code, message string) *DeckError {
	err := Wrap(cause, code, CategoryConfig, message)
	return AttachSuggestions(err)
}

// ConfigWrapf wraps an error as a configuration error with formatted message.
func ConfigWrapf(cause error, code, format string, args ...interface{}) *DeckError {
	return ConfigWrap(cause, code, fmt.Sprintf(format, args...))
}

// Validation creates a validation error with auto-attached suggestions.
// The error code should be one of the ErrValidation* constants.
func Validation(code, message string) *DeckError {
	err := New(code, CategoryValidation, message)
	return AttachSuggestions(err)
}

// Validationf creates a validation error with a formatted message.
func Validationf(code, format string, args ...interface{}) *DeckError {
	return Validation(code, fmt.Sprintf(format, args...))
}

// Render creates a render error with auto-attached suggestions.
// The error code should be one of the ErrRender* constants.
func Render(code, message string) *DeckError {
	err := New(code, CategoryRender, message)
	return AttachSuggestions(err)
}

// Renderf creates a render error with a formatted message.
func Renderf(code, format string, args ...interface{}) *DeckError {
	return Render(code, fmt.Sprintf(format, args...))
}

// RenderWrap wraps an error as a render error with suggestions.
func RenderWrap(cause error, code, message string) *DeckError {
	err := Wrap(cause, code, CategoryRender, message)
	return AttachSuggestions(err)
}

// Export creates an export error with auto-attached suggestions.
// The error code should be one of the ErrExport* constants.
func Export(code, message string) *DeckError {
	err := New(code, CategoryExport, message)
	return AttachSuggestions(err)
}

// Exportf creates an export error with a formatted message.
func Exportf(code, format string, args ...interface{}) *DeckError {
	return Export(code, fmt.Sprintf(format, args...))
}

// ExportWrap wraps an error as an export error with suggestions.
func ExportWrap(cause error, code, message string) *DeckError {
	err := Wrap(cause, code, CategoryExport, message)
	return AttachSuggestions(err)
}

// Command creates a shell/CLI command error with auto-attached suggestions.
// The error code should be one of the ErrCommand* constants.
func Command(code, message string) *DeckError {
	err := New(code, CategoryCommand, message)
	return AttachSuggestions(err)
}

// Commandf creates a command error with a formatted message.
func Commandf(code, format string, args ...interface{}) *DeckError {
	return Command(code, fmt.Sprintf(format, args...))
}

// Network creates a network error with auto-attached suggestions.
// The error code should be one of the ErrNetwork* constants.
func Network(code, message string) *DeckError {
	err := New(code, CategoryNetwork, message)
	return AttachSuggestions(err)
}

// NetworkWrap wraps an error as a network error with suggestions.
func NetworkWrap(cause error, code, message string) *DeckError {
	err := Wrap(cause, code, CategoryNetwork, message)
	return AttachSuggestions(err)
}

// IO creates an I/O error with auto-attached suggestions.
// The error code should be one of the ErrIO* constants.
func IO(code, message string) *DeckError {
	err := New(code, CategoryIO, message)
	return AttachSuggestions(err)
}

// IOWrap wraps an error as an I/O error with suggestions.
func IOWrap(cause error, code, message string) *DeckError {
	err := Wrap(cause, code, CategoryIO, message)
	return AttachSuggestions(err)
}

// IOWrapf wraps an error as an I/O error with formatted message.
func IOWrapf(cause error, code, format string, args ...interface{}) *DeckError {
	return IOWrap(cause, code, fmt.Sprintf(format, args...))
}

// Internal creates an internal error with auto-attached suggestions.
func Internal(code, message string) *DeckError {
	err := New(code, CategoryInternal, message)
	return AttachSuggestions(err)
}

// InternalWrap wraps an error as an internal error with suggestions.
func InternalWrap(cause error, code, message string) *DeckError {
	err := Wrap(cause, code, CategoryInternal, message)
	return AttachSuggestions(err)
}

// -----------------------------------------------------------------------------
// Domain-Specific Constructors
// -----------------------------------------------------------------------------
// Shortcuts for the error shapes the rest of the codebase raises repeatedly.

// InvalidSpec creates the error returned when a report spec fails validation.
func InvalidSpec(reason string) *DeckError {
	return Renderf(ErrRenderInvalidSpec, "invalid spec: %s", reason)
}

// SerializeFailed wraps a PDF serialization failure.
func SerializeFailed(cause error) *DeckError {
	return RenderWrap(cause, ErrRenderSerializeFailed, "PDF serialization failed")
}

// OutOfRange creates a range validation error with field context.
func OutOfRange(field string, value, min, max float64) *DeckError {
	return Validationf(ErrValidationOutOfRange,
		"%s must be between %g and %g, got %g", field, min, max, value).
		WithContext("field", field)
}

// UnknownField creates an error for an unrecognized assumption field name.
func UnknownField(field string) *DeckError {
	return Validationf(ErrValidationUnknownField, "unknown field %q", field).
		WithContext("field", field)
}

// MissingArgs creates an error for a command invoked without required arguments.
func MissingArgs(command, usage string) *DeckError {
	return Commandf(ErrCommandMissingArgs, "%s requires arguments", command).
		WithContext("usage", usage)
}

// UnknownCommand creates an error for an unrecognized shell command.
func UnknownCommand(name string) *DeckError {
	return Commandf(ErrCommandNotFound, "unknown command: %s", name)
}
