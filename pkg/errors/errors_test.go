// Package errors tests for structured error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// DeckError Construction Tests
// -----------------------------------------------------------------------------

func TestNew(t *testing.T) {
	de := New("TEST_ERROR", CategoryConfig, "test message")

	if de.Code != "TEST_ERROR" {
		t.Errorf("expected Code 'TEST_ERROR', got %q", de.Code)
	}
	if de.Category != CategoryConfig {
		t.Errorf("expected Category CategoryConfig, got %v", de.Category)
	}
	if de.Message != "test message" {
		t.Errorf("expected Message 'test message', got %q", de.Message)
	}
	if de.Context == nil {
		t.Error("expected Context map to be initialized, got nil")
	}
	if de.Cause != nil {
		t.Errorf("expected Cause to be nil, got %v", de.Cause)
	}
}

func TestDeckError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *DeckError
		expected string
	}{
		{
			name: "without cause",
			setup: func() *DeckError {
				return New("CONFIG_NOT_FOUND", CategoryConfig, "configuration file not found")
			},
			expected: "CONFIG_NOT_FOUND: configuration file not found",
		},
		{
			name: "with cause",
			setup: func() *DeckError {
				return New("IO_READ_FAILED", CategoryIO, "failed to read file").
					WithCause(fmt.Errorf("permission denied"))
			},
			expected: "IO_READ_FAILED: failed to read file: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := tt.setup()
			if got := de.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	de := New("TEST", CategoryConfig, "test").
		WithContext("file", "/path/to/config.yaml").
		WithContext("line", "42")

	if de.Context["file"] != "/path/to/config.yaml" {
		t.Errorf("expected file context '/path/to/config.yaml', got %q", de.Context["file"])
	}
	if de.Context["line"] != "42" {
		t.Errorf("expected line context '42', got %q", de.Context["line"])
	}
}

// -----------------------------------------------------------------------------
// Error Chain Tests
// -----------------------------------------------------------------------------

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	de := Wrap(cause, "TEST", CategoryIO, "wrapped")

	if unwrapped := errors.Unwrap(de); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestErrorsIs_MatchesByCode(t *testing.T) {
	err1 := New("RENDER_INVALID_SPEC", CategoryRender, "first")
	err2 := New("RENDER_INVALID_SPEC", CategoryRender, "second")
	err3 := New("RENDER_SERIALIZE_FAILED", CategoryRender, "third")

	if !errors.Is(err1, err2) {
		t.Error("expected errors with the same code to match")
	}
	if errors.Is(err1, err3) {
		t.Error("expected errors with different codes not to match")
	}
}

func TestErrorsIs_ThroughWrapping(t *testing.T) {
	inner := InvalidSpec("title must not be empty")
	outer := fmt.Errorf("render failed: %w", inner)

	target := &DeckError{Code: ErrRenderInvalidSpec}
	if !errors.Is(outer, target) {
		t.Error("expected wrapped DeckError to match by code")
	}
}

func TestAsDeckError(t *testing.T) {
	de, ok := AsDeckError(New("TEST", CategoryInternal, "x"))
	if !ok || de == nil {
		t.Fatal("expected AsDeckError to succeed for DeckError")
	}

	if _, ok := AsDeckError(fmt.Errorf("plain")); ok {
		t.Error("expected AsDeckError to fail for plain error")
	}
	if _, ok := AsDeckError(nil); ok {
		t.Error("expected AsDeckError to fail for nil")
	}
}

// -----------------------------------------------------------------------------
// Code Category Tests
// -----------------------------------------------------------------------------

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code string
		want Category
	}{
		{ErrConfigNotFound, CategoryConfig},
		{ErrConfigParseFailed, CategoryConfig},
		{ErrValidationOutOfRange, CategoryValidation},
		{ErrValidationUnknownField, CategoryValidation},
		{ErrRenderInvalidSpec, CategoryRender},
		{ErrRenderSerializeFailed, CategoryRender},
		{ErrExportWriteFailed, CategoryExport},
		{ErrCommandNotFound, CategoryCommand},
		{ErrNetworkBindFailed, CategoryNetwork},
		{ErrIOWatchFailed, CategoryIO},
		{ErrInternalPanic, CategoryInternal},
		{"NO_SUCH_CODE", CategoryInternal},
	}

	for _, tt := range tests {
		if got := CodeCategory(tt.code); got != tt.want {
			t.Errorf("CodeCategory(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsCategory(t *testing.T) {
	err := Render(ErrRenderInvalidSpec, "bad spec")

	if !IsCategory(err, CategoryRender) {
		t.Error("expected render category match")
	}
	if IsCategory(err, CategoryConfig) {
		t.Error("did not expect config category match")
	}
	if IsCategory(fmt.Errorf("plain"), CategoryRender) {
		t.Error("plain errors have no category")
	}
}

// -----------------------------------------------------------------------------
// Constructor Tests
// -----------------------------------------------------------------------------

func TestInvalidSpec(t *testing.T) {
	err := InvalidSpec("watermark text must not be empty")

	if err.Code != ErrRenderInvalidSpec {
		t.Errorf("expected code %s, got %s", ErrRenderInvalidSpec, err.Code)
	}
	if !strings.HasPrefix(err.Message, "invalid spec:") {
		t.Errorf("expected 'invalid spec:' prefix, got %q", err.Message)
	}
	if !strings.Contains(err.Message, "watermark") {
		t.Errorf("expected reason in message, got %q", err.Message)
	}
}

func TestOutOfRange(t *testing.T) {
	err := OutOfRange("floors", 0, 1, 50)

	if err.Code != ErrValidationOutOfRange {
		t.Errorf("expected code %s, got %s", ErrValidationOutOfRange, err.Code)
	}
	if err.Context["field"] != "floors" {
		t.Errorf("expected field context 'floors', got %q", err.Context["field"])
	}
	if !strings.Contains(err.Message, "between 1 and 50") {
		t.Errorf("expected range in message, got %q", err.Message)
	}
}

func TestSerializeFailed_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("zlib: short write")
	err := SerializeFailed(cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
	if err.Category != CategoryRender {
		t.Errorf("expected render category, got %v", err.Category)
	}
}

// -----------------------------------------------------------------------------
// Suggestion Registry Tests
// -----------------------------------------------------------------------------

func TestAttachSuggestions(t *testing.T) {
	err := Config(ErrConfigNotFound, "no config file")

	if !err.HasSuggestions() {
		t.Fatal("expected registry suggestions to be attached")
	}

	found := false
	for _, s := range err.Suggestions {
		if strings.Contains(s, "pilotdeck config --init") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected init suggestion, got %v", err.Suggestions)
	}
}

func TestRegistry_ConditionalSuggestions(t *testing.T) {
	r := NewRegistry()
	r.Register("X", "always")
	r.RegisterWithCondition("X", "linux only", map[string]string{ContextOS: OSLinux})

	linux := r.Get("X", map[string]string{ContextOS: OSLinux})
	if len(linux) != 2 {
		t.Errorf("expected 2 suggestions on linux, got %d", len(linux))
	}

	windows := r.Get("X", map[string]string{ContextOS: OSWindows})
	if len(windows) != 1 {
		t.Errorf("expected 1 suggestion on windows, got %d", len(windows))
	}
}

func TestRegistry_UnknownCode(t *testing.T) {
	if got := GetSuggestions("NOT_REGISTERED"); got != nil {
		t.Errorf("expected nil for unknown code, got %v", got)
	}
}
