package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dsgeops/pilotdeck/pkg/errors"
	"github.com/dsgeops/pilotdeck/pkg/export"
	"github.com/dsgeops/pilotdeck/pkg/history"
	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/proposal"
	"github.com/dsgeops/pilotdeck/pkg/report"
)

var testClock = time.Date(2026, 3, 17, 10, 30, 0, 0, time.UTC)

// newTestShell wires a shell to a mock prompter and an in-memory output
// buffer. The readline instance stays nil; command handlers never touch
// it. The renderer clock is fixed so renders are byte-identical.
func newTestShell(t *testing.T) (*Shell, *strings.Builder, *MockPrompter) {
	t.Helper()

	out := &strings.Builder{}
	prompter := NewMockPrompter(true)

	r := report.NewRenderer()
	r.Now = func() time.Time { return testClock }

	s := &Shell{
		store:     pilot.NewStore(pilot.Default()),
		renderer:  r,
		log:       history.NewLog(history.DefaultTTL),
		prompter:  prompter,
		out:       out,
		errs:      &errors.Formatter{Writer: out, Indent: "  "},
		outputDir: t.TempDir(),
	}
	return s, out, prompter
}

// run dispatches one command line and fails the test on error.
func run(t *testing.T, s *Shell, line string) {
	t.Helper()
	if err := s.handleCommand(line); err != nil {
		t.Fatalf("handleCommand(%q) returned %v", line, err)
	}
}

// plain returns the captured output with ANSI codes stripped.
func plain(out *strings.Builder) string {
	return stripANSI(out.String())
}

func TestHandleSetUpdatesStore(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/set floors 10")

	if got := s.store.Get().Floors; got != 10 {
		t.Errorf("Floors = %d, want 10", got)
	}
	if text := plain(out); !strings.Contains(text, "floors = 10") {
		t.Errorf("expected confirmation in output, got %q", text)
	}
}

func TestHandleSetValueWithSpaces(t *testing.T) {
	s, _, _ := newTestShell(t)

	run(t, s, "/set program_name Strap Recovery Pilot")

	if got := s.store.Get().ProgramName; got != "Strap Recovery Pilot" {
		t.Errorf("ProgramName = %q, want %q", got, "Strap Recovery Pilot")
	}
}

func TestHandleSetReportsMetrics(t *testing.T) {
	s, out, _ := newTestShell(t)

	// 8 floors x 20 gaylords x 20 workdays x 100 lbs = 160 tons/month.
	run(t, s, "/set floors 8")

	text := plain(out)
	if !strings.Contains(text, "160.0 tons") {
		t.Errorf("expected updated tonnage in output, got %q", text)
	}
	if !strings.Contains(text, "$46,400") {
		t.Errorf("expected updated net value in output, got %q", text)
	}
}

func TestHandleSetErrors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantCode string
	}{
		{"no args", "/set", errors.ErrCommandMissingArgs},
		{"missing value", "/set floors", errors.ErrCommandMissingArgs},
		{"unknown field", "/set conveyor_count 3", errors.ErrValidationUnknownField},
		{"bad int", "/set floors ten", errors.ErrValidationInvalidValue},
		{"bad date", "/set project_start tomorrow", errors.ErrValidationInvalidValue},
		{"out of range", "/set floors 999", errors.ErrValidationOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestShell(t)

			err := s.handleCommand(tt.line)
			if err == nil {
				t.Fatalf("handleCommand(%q) returned nil, want code %s", tt.line, tt.wantCode)
			}
			if !errors.IsCode(err, tt.wantCode) {
				t.Errorf("handleCommand(%q) error = %v, want code %s", tt.line, err, tt.wantCode)
			}
		})
	}
}

func TestHandleSetRejectedValueLeavesStore(t *testing.T) {
	s, _, _ := newTestShell(t)

	if err := s.handleCommand("/set floors 999"); err == nil {
		t.Fatal("expected an out of range error")
	}
	if got := s.store.Get().Floors; got != 4 {
		t.Errorf("Floors = %d, want the default 4 after a rejected update", got)
	}
}

func TestHandleReset(t *testing.T) {
	s, out, prompter := newTestShell(t)
	run(t, s, "/set floors 10")

	run(t, s, "/reset")

	if got := s.store.Get().Floors; got != 4 {
		t.Errorf("Floors = %d, want default 4 after reset", got)
	}
	if got := prompter.LastPrompt(); got != "Reset all assumptions to defaults?" {
		t.Errorf("prompt = %q", got)
	}
	if text := plain(out); !strings.Contains(text, "Assumptions restored to defaults.") {
		t.Errorf("expected reset confirmation, got %q", text)
	}
}

func TestHandleResetDeclined(t *testing.T) {
	s, out, prompter := newTestShell(t)
	run(t, s, "/set floors 10")
	prompter.Response = false

	run(t, s, "/reset")

	if got := s.store.Get().Floors; got != 10 {
		t.Errorf("Floors = %d, want 10 after declined reset", got)
	}
	if text := plain(out); !strings.Contains(text, "Reset cancelled.") {
		t.Errorf("expected cancellation notice, got %q", text)
	}
}

func TestQuitCommands(t *testing.T) {
	for _, line := range []string{"/quit", "/exit", "/q"} {
		s, _, _ := newTestShell(t)
		if err := s.handleCommand(line); err != errQuit {
			t.Errorf("handleCommand(%q) = %v, want errQuit", line, err)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	s, _, _ := newTestShell(t)

	err := s.handleCommand("/teleport")
	if !errors.IsCode(err, errors.ErrCommandNotFound) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCommandNotFound)
	}
	if !strings.Contains(err.Error(), "/teleport") {
		t.Errorf("error %q should name the command", err.Error())
	}
}

func TestHandleHelpListsEveryCommand(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/help")

	text := plain(out)
	for _, cmd := range Commands {
		if !strings.Contains(text, cmd.Name) {
			t.Errorf("help output missing %s", cmd.Name)
		}
	}
	if !strings.Contains(text, "Tab completes commands") {
		t.Error("help output missing the completion hint")
	}
}

func TestHandleHelpCommandDetail(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/help set")

	text := plain(out)
	if !strings.Contains(text, "/set <field> <value>") {
		t.Errorf("detail view missing usage, got %q", text)
	}
	if !strings.Contains(text, "/set floors 6") {
		t.Errorf("detail view missing example, got %q", text)
	}
}

func TestHandleHelpShortcutAlias(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/h quit")

	if text := plain(out); !strings.Contains(text, "/quit") {
		t.Errorf("expected /quit detail, got %q", text)
	}
}

func TestHandleHelpUnknownCommand(t *testing.T) {
	s, _, _ := newTestShell(t)

	err := s.handleCommand("/help teleport")
	if !errors.IsCode(err, errors.ErrCommandNotFound) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCommandNotFound)
	}
}

func TestPrintAssumptions(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/assumptions")

	text := plain(out)
	for _, name := range pilot.FieldNames() {
		if !strings.Contains(text, name) {
			t.Errorf("assumptions table missing field %s", name)
		}
	}
	if !strings.Contains(text, "30 to 180") {
		t.Error("assumptions table missing pilot_days bounds")
	}
	if !strings.Contains(text, "/set <field> <value>") {
		t.Error("assumptions output missing the edit hint")
	}
}

func TestPrintMetrics(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/metrics")

	text := plain(out)
	for _, want := range []string{
		"Pilot Snapshot",
		"4-floor facility (pilot)",
		"80.0",
		"$23,200",
		"100%",
		"Loads/month",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q:\n%s", want, text)
		}
	}
}

func TestPrintSections(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/sections")

	text := plain(out)
	for _, want := range []string{
		"Proposal Sections",
		"1. Executive Summary (5 bullets)",
		"6. Abbreviations (8 bullets)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("sections output missing %q:\n%s", want, text)
		}
	}
}

func TestPrintWBS(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/wbs")

	text := plain(out)
	for _, want := range []string{
		"Work Breakdown Structure",
		"1.0 Program Management",
		"3.0 MEASURE",
		"5.5 DOE (Design of Experiments) for compaction settings and bale targets",
		"6.0 CONTROL",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("wbs output missing %q", want)
		}
	}
}

func TestPrintTimeline(t *testing.T) {
	s, out, _ := newTestShell(t)
	run(t, s, "/set project_start 2026-01-05")
	out.Reset()

	run(t, s, "/timeline")

	text := plain(out)
	for _, want := range []string{
		"DMAIC Timeline",
		"(starts 2026-01-05)",
		"DEFINE",
		"CONTROL",
		"2026-01-05",
		"2026-04-06", // week 13 closes the CONTROL gate
		"Gate: Sponsor approval",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("timeline output missing %q:\n%s", want, text)
		}
	}
}

func TestPrintCTQ(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/ctq")

	text := plain(out)
	for _, want := range []string{
		"Critical to Quality",
		"Contamination %",
		"Ops Lead",
		"≥ break-even",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("ctq output missing %q", want)
		}
	}
}

func TestPrintCriteria(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/criteria")

	text := plain(out)
	for _, want := range []string{
		"Success Criteria",
		"Exit Criteria",
		"(any one stops the pilot)",
		"No disruption to fulfillment operations (Ops confirms)",
		"Any recordable safety incident tied to pilot activities",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("criteria output missing %q", want)
		}
	}
}

func TestHandleRenderWritesPDF(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/render")

	path := filepath.Join(s.outputDir, export.Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}

	a := s.store.Get()
	want, err := s.renderer.RenderDocument(proposal.BuildSpec(a, pilot.Compute(a)))
	if err != nil {
		t.Fatalf("reference render: %v", err)
	}
	if !bytes.Equal(data, want.Bytes) {
		t.Error("file bytes differ from a reference render with the same clock")
	}

	if got := s.log.Len(); got != 1 {
		t.Fatalf("log.Len() = %d, want 1", got)
	}
	rec := s.log.Recent(1)[0]
	if rec.Source != history.SourceShell {
		t.Errorf("record source = %q, want %q", rec.Source, history.SourceShell)
	}
	if rec.SHA256 != export.Digest(data) {
		t.Error("record digest does not match the written file")
	}

	text := plain(out)
	if !strings.Contains(text, "Wrote "+path) {
		t.Errorf("expected success line naming %s, got %q", path, text)
	}
	if !strings.Contains(text, fmt.Sprintf("Pages: %d", want.Pages)) {
		t.Errorf("expected page count %d in output, got %q", want.Pages, text)
	}
}

func TestHandleRenderWritesManifest(t *testing.T) {
	s, out, _ := newTestShell(t)
	s.writeManifest = true

	run(t, s, "/render")

	pdfPath := filepath.Join(s.outputDir, export.Filename)
	pdfData, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}

	manData, err := os.ReadFile(pdfPath + ".manifest.json")
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var man export.Manifest
	if err := json.Unmarshal(manData, &man); err != nil {
		t.Fatalf("unmarshaling manifest: %v", err)
	}

	if man.Filename != export.Filename {
		t.Errorf("manifest filename = %q, want %q", man.Filename, export.Filename)
	}
	if !man.Verify(pdfData) {
		t.Error("manifest does not verify the written PDF")
	}
	if got := man.Assumptions.SiteName; got != "4-floor facility (pilot)" {
		t.Errorf("manifest assumptions site = %q", got)
	}
	if text := plain(out); !strings.Contains(text, "Manifest: ") {
		t.Errorf("expected manifest path in output, got %q", text)
	}
}

func TestHandleRenderOverwriteDeclined(t *testing.T) {
	s, out, prompter := newTestShell(t)
	prompter.Response = false

	path := filepath.Join(s.outputDir, export.Filename)
	if err := os.WriteFile(path, []byte("sentinel"), 0644); err != nil {
		t.Fatal(err)
	}

	run(t, s, "/render")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "sentinel" {
		t.Error("declined overwrite should leave the file untouched")
	}
	if got := prompter.LastPrompt(); !strings.Contains(got, path) {
		t.Errorf("prompt %q should name the path", got)
	}
	if text := plain(out); !strings.Contains(text, "Render cancelled.") {
		t.Errorf("expected cancellation notice, got %q", text)
	}
	if s.log.Len() != 0 {
		t.Error("declined render should not be logged")
	}
}

func TestHandleRenderCustomPath(t *testing.T) {
	s, _, _ := newTestShell(t)
	path := filepath.Join(s.outputDir, "board-review.pdf")

	run(t, s, "/render "+path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading rendered PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestHandleCSV(t *testing.T) {
	s, out, _ := newTestShell(t)
	run(t, s, "/set project_start 2026-01-05")
	out.Reset()

	run(t, s, "/csv")

	path := filepath.Join(s.outputDir, export.TimelineFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("CSV has %d lines, want header plus 7 tasks", len(lines))
	}
	if lines[0] != "task,phase,start,finish,gate" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2026-01-05") {
		t.Errorf("first task row %q should start at the project start", lines[1])
	}
	if text := plain(out); !strings.Contains(text, "(7 tasks)") {
		t.Errorf("expected task count in output, got %q", text)
	}
}

func TestHandleSaveLoadRoundTrip(t *testing.T) {
	s, out, _ := newTestShell(t)
	run(t, s, "/set floors 10")

	run(t, s, "/save")
	path := filepath.Join(s.outputDir, "assumptions.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected saved file at %s: %v", path, err)
	}

	run(t, s, "/set floors 3")
	run(t, s, "/load")

	if got := s.store.Get().Floors; got != 10 {
		t.Errorf("Floors = %d, want 10 after reload", got)
	}
	text := plain(out)
	if !strings.Contains(text, "Saved assumptions to "+path) {
		t.Errorf("missing save confirmation in %q", text)
	}
	if !strings.Contains(text, "Loaded assumptions from "+path) {
		t.Errorf("missing load confirmation in %q", text)
	}
}

func TestHandleSaveOverwriteDeclined(t *testing.T) {
	s, out, prompter := newTestShell(t)

	run(t, s, "/save")
	prompter.Response = false
	run(t, s, "/save")

	if prompter.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1 (no prompt for a new file)", prompter.CallCount)
	}
	if text := plain(out); !strings.Contains(text, "Save cancelled.") {
		t.Errorf("expected cancellation notice, got %q", text)
	}
}

func TestPrintHistoryEmpty(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/history")

	if text := plain(out); !strings.Contains(text, "No renders yet. Try /render.") {
		t.Errorf("expected empty notice, got %q", text)
	}
}

func TestPrintHistoryAfterRender(t *testing.T) {
	s, out, _ := newTestShell(t)
	run(t, s, "/render")
	out.Reset()

	run(t, s, "/history")

	text := plain(out)
	if !strings.Contains(text, "Last 1 renders") {
		t.Errorf("expected history header, got %q", text)
	}
	rec := s.log.Recent(1)[0]
	if !strings.Contains(text, export.ShortDigest(rec.SHA256)) {
		t.Error("history output missing the render digest")
	}
	if !strings.Contains(text, history.SourceShell) {
		t.Error("history output missing the render source")
	}
}

func TestPrintConfig(t *testing.T) {
	s, out, _ := newTestShell(t)

	run(t, s, "/config")

	text := plain(out)
	for _, want := range []string{
		"Shell Configuration",
		proposal.WatermarkText,
		s.outputDir,
		"110 runes",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("config output missing %q:\n%s", want, text)
		}
	}
}

func TestPrintConfigWatermarkOverride(t *testing.T) {
	s, out, _ := newTestShell(t)
	s.watermark = "INTERNAL DRAFT"

	run(t, s, "/config")

	if text := plain(out); !strings.Contains(text, "INTERNAL DRAFT") {
		t.Errorf("expected overridden watermark, got %q", text)
	}
}
