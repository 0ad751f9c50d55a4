// Package errors provides error code constants for pilotdeck.
// Error codes are organized by category for consistent handling and lookup.
package errors

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------
// Use these codes for errors related to config file loading, parsing,
// and validation.

const (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = "CONFIG_NOT_FOUND"

	// ErrConfigParseFailed indicates the configuration file could not be parsed.
	// Usually a YAML syntax error or invalid structure.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values are invalid.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigInitFailed indicates config initialization failed.
	// Unable to create config file or directory.
	ErrConfigInitFailed = "CONFIG_INIT_FAILED"

	// ErrConfigWriteFailed indicates the config file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Validation Error Codes
// -----------------------------------------------------------------------------
// Use these codes for input validation errors, including assumption
// field updates.

const (
	// ErrValidationRequired indicates a required field is missing or empty.
	ErrValidationRequired = "VALIDATION_REQUIRED"

	// ErrValidationInvalidValue indicates a value is invalid.
	ErrValidationInvalidValue = "VALIDATION_INVALID_VALUE"

	// ErrValidationOutOfRange indicates a value is outside its allowed range.
	ErrValidationOutOfRange = "VALIDATION_OUT_OF_RANGE"

	// ErrValidationUnknownField indicates an unrecognized field name.
	ErrValidationUnknownField = "VALIDATION_UNKNOWN_FIELD"
)

// -----------------------------------------------------------------------------
// Render Error Codes
// -----------------------------------------------------------------------------
// Use these codes for report layout and PDF serialization errors.

const (
	// ErrRenderInvalidSpec indicates the report spec failed validation.
	// Empty title or watermark text.
	ErrRenderInvalidSpec = "RENDER_INVALID_SPEC"

	// ErrRenderSerializeFailed indicates PDF serialization failed.
	// The render produces no output when this occurs.
	ErrRenderSerializeFailed = "RENDER_SERIALIZE_FAILED"

	// ErrRenderSourceInvalid indicates a markdown brief could not be
	// turned into a renderable spec.
	ErrRenderSourceInvalid = "RENDER_SOURCE_INVALID"
)

// -----------------------------------------------------------------------------
// Export Error Codes
// -----------------------------------------------------------------------------
// Use these codes for artifact writing errors (PDF files, CSV, manifests).

const (
	// ErrExportWriteFailed indicates file write failed during export.
	ErrExportWriteFailed = "EXPORT_WRITE_FAILED"

	// ErrExportCSVFailed indicates CSV generation failed.
	ErrExportCSVFailed = "EXPORT_CSV_FAILED"

	// ErrExportNoData indicates no data available to export.
	ErrExportNoData = "EXPORT_NO_DATA"
)

// -----------------------------------------------------------------------------
// Command Error Codes
// -----------------------------------------------------------------------------
// Use these codes for shell and CLI command errors.

const (
	// ErrCommandNotFound indicates the command does not exist.
	ErrCommandNotFound = "COMMAND_NOT_FOUND"

	// ErrCommandMissingArgs indicates required arguments are missing.
	ErrCommandMissingArgs = "COMMAND_MISSING_ARGS"

	// ErrCommandInvalidArg indicates an argument value is invalid.
	ErrCommandInvalidArg = "COMMAND_INVALID_ARG"
)

// -----------------------------------------------------------------------------
// Network Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrNetworkBindFailed indicates the API server could not bind its port.
	ErrNetworkBindFailed = "NETWORK_BIND_FAILED"

	// ErrNetworkTimeout indicates a network operation timed out.
	ErrNetworkTimeout = "NETWORK_TIMEOUT"
)

// -----------------------------------------------------------------------------
// I/O Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrIOReadFailed indicates a file read operation failed.
	ErrIOReadFailed = "IO_READ_FAILED"

	// ErrIOWriteFailed indicates a file write operation failed.
	ErrIOWriteFailed = "IO_WRITE_FAILED"

	// ErrIOWatchFailed indicates a filesystem watch could not be established.
	ErrIOWatchFailed = "IO_WATCH_FAILED"
)

// -----------------------------------------------------------------------------
// Internal Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrInternalError indicates an unexpected internal error.
	ErrInternalError = "INTERNAL_ERROR"

	// ErrInternalPanic indicates a panic was recovered.
	ErrInternalPanic = "INTERNAL_PANIC"
)

// -----------------------------------------------------------------------------
// Error Code Lookup Helpers
// -----------------------------------------------------------------------------

// CodeCategory returns the category for a given error code.
// Returns CategoryInternal if the code is not recognized.
func CodeCategory(code string) Category {
	switch code {
	case ErrConfigNotFound, ErrConfigParseFailed, ErrConfigInvalid,
		ErrConfigInitFailed, ErrConfigWriteFailed:
		return CategoryConfig

	case ErrValidationRequired, ErrValidationInvalidValue,
		ErrValidationOutOfRange, ErrValidationUnknownField:
		return CategoryValidation

	case ErrRenderInvalidSpec, ErrRenderSerializeFailed, ErrRenderSourceInvalid:
		return CategoryRender

	case ErrExportWriteFailed, ErrExportCSVFailed, ErrExportNoData:
		return CategoryExport

	case ErrCommandNotFound, ErrCommandMissingArgs, ErrCommandInvalidArg:
		return CategoryCommand

	case ErrNetworkBindFailed, ErrNetworkTimeout:
		return CategoryNetwork

	case ErrIOReadFailed, ErrIOWriteFailed, ErrIOWatchFailed:
		return CategoryIO

	case ErrInternalError, ErrInternalPanic:
		return CategoryInternal

	default:
		return CategoryInternal
	}
}

// IsRenderCode returns true if the code is a render error code.
func IsRenderCode(code string) bool {
	return CodeCategory(code) == CategoryRender
}

// IsValidationCode returns true if the code is a validation error code.
func IsValidationCode(code string) bool {
	return CodeCategory(code) == CategoryValidation
}

// IsExportCode returns true if the code is an export error code.
func IsExportCode(code string) bool {
	return CodeCategory(code) == CategoryExport
}
