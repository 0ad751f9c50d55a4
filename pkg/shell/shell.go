// Package shell provides the interactive REPL for pilotdeck: editing
// assumptions, previewing proposal content, and rendering the
// watermarked PDF without leaving the terminal.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/dsgeops/pilotdeck/pkg/errors"
	"github.com/dsgeops/pilotdeck/pkg/export"
	"github.com/dsgeops/pilotdeck/pkg/history"
	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/proposal"
	"github.com/dsgeops/pilotdeck/pkg/report"
	"github.com/dsgeops/pilotdeck/pkg/spinner"
)

// Shell is the interactive command-line interface.
type Shell struct {
	store    *pilot.Store
	renderer *report.Renderer
	log      *history.Log
	rl       *readline.Instance
	prompter Prompter
	out      io.Writer
	errs     *errors.Formatter

	watermark       string
	assumptionsFile string
	outputDir       string
	writeManifest   bool
}

// Config holds shell configuration.
type Config struct {
	// HistoryFile is the readline history path. Empty disables
	// persistent input history.
	HistoryFile string

	// AssumptionsFile is the default path for /save and /load.
	AssumptionsFile string

	// OutputDir is where /render and /csv write when no path is given.
	OutputDir string

	// WatermarkText overrides the default watermark when non-empty.
	WatermarkText string

	// WriteManifest controls whether /render writes a provenance
	// sidecar next to the PDF.
	WriteManifest bool
}

// New creates the interactive shell.
func New(store *pilot.Store, renderer *report.Renderer, log *history.Log, cfg Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mpilotdeck>\033[0m ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewShellCompleter(),
	})
	if err != nil {
		return nil, err
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	return &Shell{
		store:    store,
		renderer: renderer,
		log:      log,
		rl:       rl,
		prompter: NewInteractivePrompter(),
		out:      os.Stdout,
		errs: &errors.Formatter{
			UseColor: errors.IsTTY(os.Stdout),
			Writer:   os.Stdout,
			Indent:   "  ",
		},
		watermark:       cfg.WatermarkText,
		assumptionsFile: cfg.AssumptionsFile,
		outputDir:       outputDir,
		writeManifest:   cfg.WriteManifest,
	}, nil
}

// Run starts the interactive loop and blocks until the user exits or
// ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	defer s.rl.Close()

	fmt.Fprintln(s.out, "Pilot proposal workbench. Edit assumptions, preview content, render the PDF.")
	fmt.Fprintln(s.out, "Commands: /assumptions, /set, /metrics, /render, /help, /quit")
	fmt.Fprintln(s.out)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, "/") {
			fmt.Fprintln(s.out, "Commands start with '/'. Try /help.")
			continue
		}

		if err := s.handleCommand(line); err != nil {
			if err == errQuit {
				return nil
			}
			s.errs.Display(err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func (s *Shell) handleCommand(line string) error {
	parts := strings.Fields(line)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit", "/q":
		return errQuit

	case "/help", "/h":
		return s.handleHelp(parts[1:])

	case "/assumptions":
		s.printAssumptions()

	case "/set":
		return s.handleSet(parts[1:])

	case "/reset":
		return s.handleReset()

	case "/metrics":
		s.printMetrics()

	case "/save":
		return s.handleSave(parts[1:])

	case "/load":
		return s.handleLoad(parts[1:])

	case "/sections":
		s.printSections()

	case "/wbs":
		s.printWBS()

	case "/timeline":
		s.printTimeline()

	case "/ctq":
		s.printCTQ()

	case "/criteria":
		s.printCriteria()

	case "/render":
		return s.handleRender(parts[1:])

	case "/csv":
		return s.handleCSV(parts[1:])

	case "/history":
		s.printHistory()

	case "/config":
		s.printConfig()

	default:
		return errors.UnknownCommand(cmd)
	}

	return nil
}

func (s *Shell) handleHelp(args []string) error {
	if len(args) == 0 {
		writeHelp(s.out)
		return nil
	}
	cmd, ok := LookupCommand(args[0])
	if !ok {
		return errors.UnknownCommand(args[0])
	}
	writeCommandHelp(s.out, cmd)
	return nil
}

func (s *Shell) printAssumptions() {
	a := s.store.Get()

	rows := [][]string{{
		styleHeading("FIELD"), styleHeading("VALUE"), styleHeading("RANGE"), styleHeading("LABEL"),
	}}
	for _, f := range pilot.Fields() {
		value, _ := a.Value(f.Name)
		bounds := ""
		if f.Bounded() {
			bounds = fmt.Sprintf("%g to %g", f.Min, f.Max)
		}
		rows = append(rows, []string{styleCommand(f.Name), value, bounds, styleDim(f.Label)})
	}

	fmt.Fprintln(s.out)
	writeTable(s.out, rows)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleDim("Change a value with /set <field> <value>."))
	fmt.Fprintln(s.out)
}

func (s *Shell) handleSet(args []string) error {
	if len(args) < 2 {
		return errors.MissingArgs("/set", "/set <field> <value>")
	}

	field := args[0]
	// Values like program names may contain spaces.
	value := strings.Join(args[1:], " ")

	a := s.store.Get()
	if err := a.Set(field, value); err != nil {
		return err
	}
	if err := s.store.Update(a); err != nil {
		return err
	}

	newValue, _ := a.Value(field)
	m := pilot.Compute(a)
	fmt.Fprintf(s.out, "%s = %s\n", styleCommand(field), newValue)
	fmt.Fprintf(s.out, "%s\n", styleDim(fmt.Sprintf("Now %s/month at %s net value.",
		pilot.FormatTons(m.TonsPerMonth)+" tons", pilot.FormatCurrency(m.NetValuePerMonth))))
	return nil
}

func (s *Shell) handleReset() error {
	ok, err := s.prompter.Confirm("Reset all assumptions to defaults?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Reset cancelled.")
		return nil
	}
	if err := s.store.Update(pilot.Default()); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Assumptions restored to defaults.")
	return nil
}

func (s *Shell) printMetrics() {
	a := s.store.Get()
	m := pilot.Compute(a)

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("Pilot Snapshot")+styleDim(" ("+a.SiteName+")"))
	writeTable(s.out, [][]string{
		{"Tons diverted/month", pilot.FormatTons(m.TonsPerMonth)},
		{"Net value/month", pilot.FormatCurrency(m.NetValuePerMonth)},
		{"Payload utilization", pilot.FormatPercent(m.PayloadUtilPct)},
		{"Loads/month", pilot.FormatCount(m.LoadsPerMonth)},
	})
	fmt.Fprintln(s.out)
}

func (s *Shell) defaultSavePath() string {
	if s.assumptionsFile != "" {
		return s.assumptionsFile
	}
	return filepath.Join(s.outputDir, "assumptions.yaml")
}

func (s *Shell) handleSave(args []string) error {
	path := s.defaultSavePath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		ok, err := s.prompter.Confirm(fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.out, "Save cancelled.")
			return nil
		}
	}

	if err := s.store.Get().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved assumptions to %s\n", path)
	return nil
}

func (s *Shell) handleLoad(args []string) error {
	path := s.defaultSavePath()
	if len(args) > 0 {
		path = args[0]
	}

	a, err := pilot.Load(path)
	if err != nil {
		return err
	}
	if err := s.store.Update(a); err != nil {
		return err
	}

	m := pilot.Compute(a)
	fmt.Fprintf(s.out, "Loaded assumptions from %s\n", path)
	fmt.Fprintf(s.out, "%s\n", styleDim(fmt.Sprintf("%s, %s/month at %s net value.",
		a.ProgramName, pilot.FormatTons(m.TonsPerMonth)+" tons", pilot.FormatCurrency(m.NetValuePerMonth))))
	return nil
}

func (s *Shell) printSections() {
	a := s.store.Get()
	sections := proposal.Sections(a, pilot.Compute(a))

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("Proposal Sections"))
	for i, sec := range sections {
		fmt.Fprintf(s.out, "%s%d. %s %s\n", indentCommand, i+1, sec.Heading,
			styleDim(fmt.Sprintf("(%d bullets)", len(sec.Bullets))))
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) printWBS() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("Work Breakdown Structure"))
	for _, wp := range proposal.WBS() {
		fmt.Fprintln(s.out, indentCommand+styleCommand(wp.Name))
		for _, item := range wp.Items {
			fmt.Fprintln(s.out, indentExample+item)
		}
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) printTimeline() {
	a := s.store.Get()
	tasks := proposal.Timeline(a.ProjectStart)

	rows := [][]string{{
		styleHeading("PHASE"), styleHeading("START"), styleHeading("FINISH"), styleHeading("TASK"),
	}}
	for _, t := range tasks {
		rows = append(rows, []string{
			styleCommand(t.Phase),
			t.Start.Format("2006-01-02"),
			t.Finish.Format("2006-01-02"),
			t.Task + " " + styleDim(t.Gate),
		})
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("DMAIC Timeline")+styleDim(
		" (starts "+a.ProjectStart.Format("2006-01-02")+")"))
	writeTable(s.out, rows)
	fmt.Fprintln(s.out)
}

func (s *Shell) printCTQ() {
	a := s.store.Get()

	rows := [][]string{{
		styleHeading("CTQ"), styleHeading("TARGET"), styleHeading("OWNER"), styleHeading("REACTION PLAN"),
	}}
	for _, c := range proposal.CTQTable(a) {
		rows = append(rows, []string{c.Name, c.Target, c.Owner, styleDim(c.Reaction)})
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("Critical to Quality"))
	writeTable(s.out, rows)
	fmt.Fprintln(s.out)
}

func (s *Shell) printCriteria() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("Success Criteria"))
	for _, c := range proposal.SuccessCriteria() {
		fmt.Fprintln(s.out, indentCommand+"- "+c)
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("Exit Criteria")+styleDim(" (any one stops the pilot)"))
	for _, c := range proposal.ExitCriteria() {
		fmt.Fprintln(s.out, indentCommand+"- "+c)
	}
	fmt.Fprintln(s.out)
}

func (s *Shell) handleRender(args []string) error {
	path := filepath.Join(s.outputDir, export.Filename)
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		ok, err := s.prompter.Confirm(fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.out, "Render cancelled.")
			return nil
		}
	}

	a := s.store.Get()
	spec := proposal.BuildSpec(a, pilot.Compute(a))
	if s.watermark != "" {
		spec.WatermarkText = s.watermark
	}

	spin := spinner.NewWithConfig(spinner.Config{
		Message: fmt.Sprintf("Rendering %s", filepath.Base(path)),
		Writer:  s.out,
	})
	spin.Start()

	doc, err := s.renderer.RenderDocument(spec)
	if err != nil {
		spin.Fail("Render failed")
		return err
	}

	if err := os.WriteFile(path, doc.Bytes, 0644); err != nil {
		spin.Fail("Render failed")
		return errors.ExportWrap(err, errors.ErrExportWriteFailed,
			fmt.Sprintf("write %s", path)).WithContext("path", path)
	}

	if s.writeManifest {
		if err := writeManifestFile(path, doc, a); err != nil {
			spin.Fail("Render failed")
			return err
		}
	}

	rec := s.log.Add(history.NewRecord(doc, spec.Title, history.SourceShell))

	spin.Success(fmt.Sprintf("Wrote %s", path))
	fmt.Fprintf(s.out, "  Pages: %d\n", doc.Pages)
	fmt.Fprintf(s.out, "  Bytes: %d\n", len(doc.Bytes))
	fmt.Fprintf(s.out, "  SHA-256: %s\n", export.ShortDigest(rec.SHA256))
	if s.writeManifest {
		fmt.Fprintf(s.out, "  Manifest: %s\n", manifestPath(path))
	}
	fmt.Fprintln(s.out)
	return nil
}

// manifestPath is the provenance sidecar next to a rendered PDF.
func manifestPath(pdfPath string) string {
	return pdfPath + ".manifest.json"
}

func writeManifestFile(pdfPath string, doc report.Document, a pilot.Assumptions) error {
	man := export.NewManifest(doc, a)
	man.Filename = filepath.Base(pdfPath)

	f, err := os.Create(manifestPath(pdfPath))
	if err != nil {
		return errors.ExportWrap(err, errors.ErrExportWriteFailed,
			fmt.Sprintf("create %s", manifestPath(pdfPath)))
	}
	defer f.Close()

	return man.WriteJSON(f)
}

func (s *Shell) handleCSV(args []string) error {
	path := filepath.Join(s.outputDir, export.TimelineFilename)
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		ok, err := s.prompter.Confirm(fmt.Sprintf("Overwrite %s?", path))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.out, "Export cancelled.")
			return nil
		}
	}

	a := s.store.Get()
	tasks := proposal.Timeline(a.ProjectStart)

	f, err := os.Create(path)
	if err != nil {
		return errors.ExportWrap(err, errors.ErrExportWriteFailed,
			fmt.Sprintf("create %s", path)).WithContext("path", path)
	}
	defer f.Close()

	if err := export.ExportTimelineToCSV(f, tasks, export.DefaultCSVConfig()); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Wrote %s (%d tasks)\n", path, len(tasks))
	return nil
}

func (s *Shell) printHistory() {
	recs := s.log.Recent(10)
	if len(recs) == 0 {
		fmt.Fprintln(s.out, "No renders yet. Try /render.")
		return
	}

	rows := [][]string{{
		styleHeading("WHEN"), styleHeading("PAGES"), styleHeading("BYTES"),
		styleHeading("SHA-256"), styleHeading("SOURCE"), styleHeading("TITLE"),
	}}
	for _, r := range recs {
		rows = append(rows, []string{
			r.At.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.Pages),
			fmt.Sprintf("%d", r.Bytes),
			export.ShortDigest(r.SHA256),
			r.Source,
			truncateDisplay(r.Title, 40),
		})
	}

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "%s%s\n", indentCategory, styleHeading(fmt.Sprintf("Last %d renders", len(recs))))
	writeTable(s.out, rows)
	fmt.Fprintln(s.out)
}

func (s *Shell) printConfig() {
	watermark := s.watermark
	if watermark == "" {
		watermark = proposal.WatermarkText
	}
	assumptionsFile := s.assumptionsFile
	if assumptionsFile == "" {
		assumptionsFile = styleDim("(not set, /save defaults to " + s.defaultSavePath() + ")")
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, indentCategory+styleHeading("Shell Configuration"))
	writeTable(s.out, [][]string{
		{"Watermark", watermark},
		{"Output directory", s.outputDir},
		{"Assumptions file", assumptionsFile},
		{"Write manifest", fmt.Sprintf("%t", s.writeManifest)},
		{"Page wrap width", fmt.Sprintf("%d runes", s.renderer.Layout.WrapWidth)},
	})
	fmt.Fprintln(s.out)
}
