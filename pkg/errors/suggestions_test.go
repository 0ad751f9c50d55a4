package errors

import (
	"runtime"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Suggestion Matching Tests
// -----------------------------------------------------------------------------

func TestSuggestion_Matches_NoConditions(t *testing.T) {
	s := Suggestion{Text: "test suggestion"}

	if !s.Matches(nil) {
		t.Error("suggestion with no conditions should match nil context")
	}
	if !s.Matches(map[string]string{}) {
		t.Error("suggestion with no conditions should match empty context")
	}
	if !s.Matches(map[string]string{ContextOS: OSLinux}) {
		t.Error("suggestion with no conditions should match any context")
	}
}

func TestSuggestion_Matches_WithConditions(t *testing.T) {
	s := Suggestion{
		Text:       "Linux-specific suggestion",
		Conditions: map[string]string{ContextOS: OSLinux},
	}

	tests := []struct {
		name string
		ctx  map[string]string
		want bool
	}{
		{
			name: "matching condition",
			ctx:  map[string]string{ContextOS: OSLinux},
			want: true,
		},
		{
			name: "non-matching condition",
			ctx:  map[string]string{ContextOS: OSDarwin},
			want: false,
		},
		{
			name: "missing key in context",
			ctx:  map[string]string{ContextArch: "arm64"},
			want: false,
		},
		{
			name: "nil context",
			ctx:  nil,
			want: false,
		},
		{
			name: "matching with extra context",
			ctx:  map[string]string{ContextOS: OSLinux, ContextArch: "amd64"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Matches(tt.ctx); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.ctx, got, tt.want)
			}
		})
	}
}

func TestSuggestion_Matches_MultipleConditions(t *testing.T) {
	s := Suggestion{
		Text: "macOS arm64 suggestion",
		Conditions: map[string]string{
			ContextOS:   OSDarwin,
			ContextArch: "arm64",
		},
	}

	if !s.Matches(map[string]string{ContextOS: OSDarwin, ContextArch: "arm64"}) {
		t.Error("expected match when all conditions are satisfied")
	}
	if s.Matches(map[string]string{ContextOS: OSDarwin, ContextArch: "amd64"}) {
		t.Error("expected no match when only one condition is satisfied")
	}
	if s.Matches(map[string]string{ContextOS: OSLinux, ContextArch: "arm64"}) {
		t.Error("expected no match when only one condition is satisfied")
	}
}

// -----------------------------------------------------------------------------
// Registry Tests
// -----------------------------------------------------------------------------

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("TEST_CODE", "First suggestion")
	r.Register("TEST_CODE", "Second suggestion")

	suggestions := r.Get("TEST_CODE", nil)
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0] != "First suggestion" {
		t.Errorf("expected 'First suggestion', got %q", suggestions[0])
	}
	if suggestions[1] != "Second suggestion" {
		t.Errorf("expected 'Second suggestion', got %q", suggestions[1])
	}
}

func TestRegistry_RegisterWithCondition(t *testing.T) {
	r := NewRegistry()
	r.RegisterWithCondition("TEST_CODE", "Linux fix", map[string]string{ContextOS: OSLinux})
	r.RegisterWithCondition("TEST_CODE", "macOS fix", map[string]string{ContextOS: OSDarwin})
	r.Register("TEST_CODE", "General fix")

	linux := r.Get("TEST_CODE", map[string]string{ContextOS: OSLinux})
	if len(linux) != 2 {
		t.Errorf("expected 2 suggestions for linux, got %d: %v", len(linux), linux)
	}
	if linux[0] != "Linux fix" || linux[1] != "General fix" {
		t.Errorf("unexpected linux suggestions: %v", linux)
	}

	mac := r.Get("TEST_CODE", map[string]string{ContextOS: OSDarwin})
	if len(mac) != 2 {
		t.Errorf("expected 2 suggestions for darwin, got %d: %v", len(mac), mac)
	}

	// Windows matches only the unconditional suggestion.
	win := r.Get("TEST_CODE", map[string]string{ContextOS: OSWindows})
	if len(win) != 1 || win[0] != "General fix" {
		t.Errorf("unexpected windows suggestions: %v", win)
	}
}

func TestRegistry_HasSuggestions(t *testing.T) {
	r := NewRegistry()
	r.Register("KNOWN", "a fix")

	if !r.HasSuggestions("KNOWN") {
		t.Error("expected HasSuggestions to be true for registered code")
	}
	if r.HasSuggestions("UNKNOWN") {
		t.Error("expected HasSuggestions to be false for unregistered code")
	}
}

// -----------------------------------------------------------------------------
// Platform Context Tests
// -----------------------------------------------------------------------------

func TestDefaultContext(t *testing.T) {
	ctx := DefaultContext()

	if ctx[ContextOS] != runtime.GOOS {
		t.Errorf("expected os %q, got %q", runtime.GOOS, ctx[ContextOS])
	}
	if ctx[ContextArch] != runtime.GOARCH {
		t.Errorf("expected arch %q, got %q", runtime.GOARCH, ctx[ContextArch])
	}
}

func TestMergeContext(t *testing.T) {
	base := map[string]string{"a": "1", "b": "2"}
	override := map[string]string{"b": "3", "c": "4"}

	merged := MergeContext(base, override)

	if merged["a"] != "1" {
		t.Errorf("expected a=1, got %q", merged["a"])
	}
	if merged["b"] != "3" {
		t.Errorf("expected later map to override, got b=%q", merged["b"])
	}
	if merged["c"] != "4" {
		t.Errorf("expected c=4, got %q", merged["c"])
	}

	if got := MergeContext(); len(got) != 0 {
		t.Errorf("expected empty merge result, got %v", got)
	}
}

// -----------------------------------------------------------------------------
// Default Registry Tests
// -----------------------------------------------------------------------------

func TestDefaultRegistry_BuiltinCodes(t *testing.T) {
	registered := []string{
		ErrConfigNotFound,
		ErrConfigParseFailed,
		ErrConfigInvalid,
		ErrValidationOutOfRange,
		ErrValidationUnknownField,
		ErrRenderInvalidSpec,
		ErrRenderSourceInvalid,
		ErrExportWriteFailed,
		ErrCommandNotFound,
		ErrCommandMissingArgs,
		ErrNetworkBindFailed,
		ErrIOReadFailed,
		ErrIOWatchFailed,
	}

	for _, code := range registered {
		if !DefaultRegistry().HasSuggestions(code) {
			t.Errorf("expected built-in suggestions for %s", code)
		}
	}

	if DefaultRegistry().HasSuggestions(ErrInternalPanic) {
		t.Error("did not expect built-in suggestions for ErrInternalPanic")
	}
}

// -----------------------------------------------------------------------------
// AttachSuggestions Tests
// -----------------------------------------------------------------------------

func TestAttachSuggestions_Nil(t *testing.T) {
	if got := AttachSuggestions(nil); got != nil {
		t.Errorf("expected nil for nil error, got %v", got)
	}
}

func TestAttachSuggestions_UsesErrorContext(t *testing.T) {
	// The error's own context overrides the platform context, so a
	// darwin-conditional suggestion applies regardless of the host OS.
	err := New(ErrConfigNotFound, CategoryConfig, "missing").
		WithContext(ContextOS, OSDarwin)

	AttachSuggestions(err)

	found := false
	for _, s := range err.Suggestions {
		if strings.Contains(s, "macOS") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected darwin-conditional suggestion, got %v", err.Suggestions)
	}
}

func TestAttachSuggestions_AppendsToExisting(t *testing.T) {
	err := New(ErrCommandNotFound, CategoryCommand, "no such command").
		WithSuggestion("custom suggestion")

	AttachSuggestions(err)

	if len(err.Suggestions) < 2 {
		t.Fatalf("expected registry suggestions appended, got %v", err.Suggestions)
	}
	if err.Suggestions[0] != "custom suggestion" {
		t.Errorf("expected explicit suggestion to stay first, got %v", err.Suggestions)
	}
}

// -----------------------------------------------------------------------------
// FormatSuggestionList Tests
// -----------------------------------------------------------------------------

func TestFormatSuggestionList(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []string
		want        string
	}{
		{
			name:        "empty",
			suggestions: nil,
			want:        "",
		},
		{
			name:        "single",
			suggestions: []string{"do the thing"},
			want:        "→ do the thing",
		},
		{
			name:        "multiple",
			suggestions: []string{"first", "second"},
			want:        "→ first\n→ second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSuggestionList(tt.suggestions); got != tt.want {
				t.Errorf("FormatSuggestionList(%v) = %q, want %q", tt.suggestions, got, tt.want)
			}
		})
	}
}
