// Package errors provides a suggestions registry for error remediation.
// Maps error codes to context-aware suggestions that help users fix issues.
package errors

import (
	"runtime"
	"strings"
)

// Context keys used to select appropriate suggestions.
const (
	// ContextOS is the operating system (e.g., "linux", "darwin", "windows")
	ContextOS = "os"

	// ContextArch is the CPU architecture (e.g., "amd64", "arm64")
	ContextArch = "arch"
)

// OS values for platform-specific suggestions.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// -----------------------------------------------------------------------------
// Suggestion Type
// -----------------------------------------------------------------------------

// Suggestion represents a remediation suggestion with optional conditions.
// Conditions allow context-aware suggestions (e.g., OS-specific fixes).
type Suggestion struct {
	// Text is the suggestion message displayed to the user.
	Text string

	// Conditions are optional key-value pairs that must match the error context.
	// If empty, the suggestion applies to all contexts.
	Conditions map[string]string
}

// Matches returns true if this suggestion's conditions match the given context.
// Empty conditions match any context.
func (s *Suggestion) Matches(ctx map[string]string) bool {
	if len(s.Conditions) == 0 {
		return true
	}
	for key, value := range s.Conditions {
		if ctx[key] != value {
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------
// Suggestions Registry
// -----------------------------------------------------------------------------

// Registry maps error codes to their remediation suggestions.
type Registry struct {
	suggestions map[string][]Suggestion
}

// NewRegistry creates a new suggestion registry.
func NewRegistry() *Registry {
	return &Registry{
		suggestions: make(map[string][]Suggestion),
	}
}

// Register adds a suggestion for an error code.
func (r *Registry) Register(code, text string) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{
		Text: text,
	})
	return r
}

// RegisterWithCondition adds a conditional suggestion for an error code.
// The suggestion only applies when the context matches the conditions.
func (r *Registry) RegisterWithCondition(code, text string, conditions map[string]string) *Registry {
	r.suggestions[code] = append(r.suggestions[code], Suggestion{
		Text:       text,
		Conditions: conditions,
	})
	return r
}

// Get returns all suggestions for an error code that match the given context.
func (r *Registry) Get(code string, ctx map[string]string) []string {
	all, ok := r.suggestions[code]
	if !ok {
		return nil
	}
	var result []string
	for _, s := range all {
		if s.Matches(ctx) {
			result = append(result, s.Text)
		}
	}
	return result
}

// HasSuggestions returns true if any suggestions exist for the error code.
func (r *Registry) HasSuggestions(code string) bool {
	return len(r.suggestions[code]) > 0
}

// -----------------------------------------------------------------------------
// Platform Detection
// -----------------------------------------------------------------------------

// DefaultContext returns a context map with current platform information.
func DefaultContext() map[string]string {
	return map[string]string{
		ContextOS:   runtime.GOOS,
		ContextArch: runtime.GOARCH,
	}
}

// MergeContext combines multiple context maps into one.
// Later maps override earlier ones for duplicate keys.
func MergeContext(contexts ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, ctx := range contexts {
		for k, v := range ctx {
			result[k] = v
		}
	}
	return result
}

// -----------------------------------------------------------------------------
// Global Default Registry
// -----------------------------------------------------------------------------

// defaultRegistry is the global registry with built-in suggestions.
var defaultRegistry = NewRegistry()

// GetSuggestions returns suggestions for an error code using the default registry.
func GetSuggestions(code string) []string {
	return defaultRegistry.Get(code, DefaultContext())
}

// DefaultRegistry returns the global default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// -----------------------------------------------------------------------------
// Built-in Suggestions
// -----------------------------------------------------------------------------

func init() {
	registerConfigSuggestions()
	registerValidationSuggestions()
	registerRenderSuggestions()
	registerExportSuggestions()
	registerCommandSuggestions()
	registerNetworkSuggestions()
	registerIOSuggestions()
}

func registerConfigSuggestions() {
	defaultRegistry.Register(ErrConfigNotFound,
		"Run 'pilotdeck config --init' to create a default configuration file")
	defaultRegistry.Register(ErrConfigNotFound,
		"Check that ~/.config/pilotdeck/config.yaml exists")
	defaultRegistry.RegisterWithCondition(ErrConfigNotFound,
		"On macOS, config may be at ~/Library/Application Support/pilotdeck/config.yaml",
		map[string]string{ContextOS: OSDarwin})

	defaultRegistry.Register(ErrConfigParseFailed,
		"Check your config file for YAML syntax errors")
	defaultRegistry.Register(ErrConfigParseFailed,
		"Common issues: incorrect indentation, missing colons, or unquoted special characters")

	defaultRegistry.Register(ErrConfigInvalid,
		"Review the error context for which field is invalid")
	defaultRegistry.Register(ErrConfigInvalid,
		"Run 'pilotdeck config --init' to see an example configuration")

	defaultRegistry.Register(ErrConfigInitFailed,
		"Check that the config directory is writable")
	defaultRegistry.RegisterWithCondition(ErrConfigInitFailed,
		"Try: mkdir -p ~/.config/pilotdeck && chmod 755 ~/.config/pilotdeck",
		map[string]string{ContextOS: OSLinux})

	defaultRegistry.Register(ErrConfigWriteFailed,
		"Check file and directory permissions")
}

func registerValidationSuggestions() {
	defaultRegistry.Register(ErrValidationRequired,
		"Provide a non-empty value for the field")

	defaultRegistry.Register(ErrValidationOutOfRange,
		"Check the allowed range in the error context")
	defaultRegistry.Register(ErrValidationOutOfRange,
		"Run '/assumptions' in the shell to see current values and bounds")

	defaultRegistry.Register(ErrValidationUnknownField,
		"Run '/assumptions' to list the field names that can be set")
}

func registerRenderSuggestions() {
	defaultRegistry.Register(ErrRenderInvalidSpec,
		"Reports require a non-empty title and watermark text")
	defaultRegistry.Register(ErrRenderInvalidSpec,
		"Check the proposal section of your configuration")

	defaultRegistry.Register(ErrRenderSourceInvalid,
		"Markdown briefs need a top-level '# Title' heading")
	defaultRegistry.Register(ErrRenderSourceInvalid,
		"Sections come from '## Heading' blocks with list items as bullets")
}

func registerExportSuggestions() {
	defaultRegistry.Register(ErrExportWriteFailed,
		"Check that the output directory exists and is writable")
	defaultRegistry.Register(ErrExportWriteFailed,
		"Check available disk space")

	defaultRegistry.Register(ErrExportNoData,
		"Nothing to export; check that the proposal has sections")
}

func registerCommandSuggestions() {
	defaultRegistry.Register(ErrCommandNotFound,
		"Type '/help' to see available commands")

	defaultRegistry.Register(ErrCommandMissingArgs,
		"Check '/help <command>' for the expected arguments")
}

func registerNetworkSuggestions() {
	defaultRegistry.Register(ErrNetworkBindFailed,
		"Check if another process is using the port")
	defaultRegistry.RegisterWithCondition(ErrNetworkBindFailed,
		"Try: lsof -i :<port> to find the conflicting process",
		map[string]string{ContextOS: OSLinux})
	defaultRegistry.RegisterWithCondition(ErrNetworkBindFailed,
		"Try: lsof -i :<port> to find the conflicting process",
		map[string]string{ContextOS: OSDarwin})
	defaultRegistry.Register(ErrNetworkBindFailed,
		"Change the port in the server section of your config")
}

func registerIOSuggestions() {
	defaultRegistry.Register(ErrIOReadFailed,
		"Check that the file exists and is readable")

	defaultRegistry.Register(ErrIOWriteFailed,
		"Check file and directory permissions")

	defaultRegistry.Register(ErrIOWatchFailed,
		"Check that the watched file's directory exists")
}

// -----------------------------------------------------------------------------
// Suggestion Helpers for DeckError
// -----------------------------------------------------------------------------

// AttachSuggestions adds suggestions from the registry to a DeckError.
// Uses the error's context for conditional suggestion matching.
func AttachSuggestions(err *DeckError) *DeckError {
	if err == nil {
		return nil
	}

	ctx := MergeContext(DefaultContext(), err.Context)
	suggestions := defaultRegistry.Get(err.Code, ctx)
	if len(suggestions) > 0 {
		err.Suggestions = append(err.Suggestions, suggestions...)
	}
	return err
}

// FormatSuggestionList formats a list of suggestions for display.
func FormatSuggestionList(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString("→ ")
		sb.WriteString(s)
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
