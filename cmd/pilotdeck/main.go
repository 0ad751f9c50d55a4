// PilotDeck - Pilot Proposal Workbench
//
// PilotDeck turns a small set of operational assumptions into a
// watermarked pilot proposal PDF, with derived monthly metrics, a
// DMAIC timeline, and CSV exports.
//
// Components:
//   - pilot:    assumptions, derived metrics, file watching
//   - proposal: narrative sections, WBS, timeline, CTQs
//   - report:   deterministic PDF rendering
//   - export:   CSV exports, digests, provenance manifests
//   - api:      REST + WebSocket server
//   - shell:    interactive workbench
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dsgeops/pilotdeck/pkg/api"
	"github.com/dsgeops/pilotdeck/pkg/config"
	"github.com/dsgeops/pilotdeck/pkg/export"
	"github.com/dsgeops/pilotdeck/pkg/history"
	"github.com/dsgeops/pilotdeck/pkg/pilot"
	"github.com/dsgeops/pilotdeck/pkg/proposal"
	"github.com/dsgeops/pilotdeck/pkg/report"
	"github.com/dsgeops/pilotdeck/pkg/shell"
	"github.com/dsgeops/pilotdeck/pkg/spinner"
)

const version = "1.0.0"

var (
	// Global flags
	cfgFile string
	verbose bool

	// Resolved by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// Per-command flags
var (
	watchAssumptions bool

	renderOut         string
	renderFrom        string
	renderTitle       string
	renderWatermark   string
	renderAssumptions string

	timelineOut         string
	timelineAssumptions string

	snapshotCSV         bool
	snapshotAssumptions string

	inspectText bool

	configInit bool
)

// rootCmd launches the interactive workbench when run bare.
var rootCmd = &cobra.Command{
	Use:   "pilotdeck",
	Short: "PilotDeck - pilot proposal workbench",
	Long: `PilotDeck renders a watermarked pilot proposal PDF from a small set
of operational assumptions.

The assumptions drive everything: monthly diversion metrics, the DMAIC
timeline, and the narrative sections are all derived from them. Every
render carries a diagonal watermark and, optionally, a provenance
manifest that lets a reviewer verify the bytes they hold.

Run without arguments to start the interactive workbench.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadOrDefault(configPath())
		if err != nil {
			return err
		}

		// The interactive workbench does its own output; skip the logger.
		if cmd.Name() == "pilotdeck" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if !cfg.Logging.JSON {
			zcfg.Encoding = "console"
			zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		}
		zcfg.Level = zap.NewAtomicLevelAt(logLevel(cfg.Logging.Level))
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runShell,
}

// serveCmd runs the HTTP API with WebSocket updates.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and WebSocket server",
	Long: `Serves the REST API for assumptions, metrics, proposal content, and
PDF/CSV exports, plus a WebSocket endpoint at /ws that pushes metric
and render events as they happen.

With --watch, edits to the configured assumptions file are picked up
and broadcast without restarting the server.`,
	RunE: runServe,
}

// renderCmd renders the proposal PDF once and exits.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the watermarked proposal PDF",
	Long: `Renders the proposal PDF from the current assumptions and writes it
to the export output directory, or to --out.

A Markdown brief can take the place of the built-in proposal content:

  pilotdeck render --from brief.md --title "Dock Pilot" -o dock.pdf`,
	RunE: runRender,
}

// timelineCmd exports the DMAIC timeline as CSV.
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Export the DMAIC timeline as CSV",
	Long: `Writes the seven-task DMAIC timeline, dated from the project start
in the assumptions, as a CSV file. Use --out - to write to stdout.`,
	RunE: runTimeline,
}

// snapshotCmd prints the derived monthly metrics.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Show the derived monthly metrics",
	Long: `Prints the monthly metrics derived from the current assumptions:
tons diverted, net value, payload utilization, and trailer loads.

With --csv, writes a single wide row of assumptions and metrics to
stdout for spreadsheet or pandas consumption.`,
	RunE: runSnapshot,
}

// inspectCmd verifies a rendered PDF.
var inspectCmd = &cobra.Command{
	Use:   "inspect [pdf]",
	Short: "Inspect a rendered PDF and verify its manifest",
	Long: `Reports the page count, size, and SHA-256 digest of a rendered PDF.
When a .manifest.json sidecar sits next to the file, the digest is
checked against it and a mismatch fails the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

// configCmd shows or initializes the config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the effective configuration as YAML. With --init, writes a
default config file instead, without overwriting an existing one.`,
	RunE: runConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (default: pilotdeck.yaml or ~/.config/pilotdeck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	serveCmd.Flags().BoolVar(&watchAssumptions, "watch", false, "Reload the assumptions file when it changes on disk")

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output PDF path (default: <output_dir>/"+export.Filename+")")
	renderCmd.Flags().StringVar(&renderFrom, "from", "", "Render a Markdown brief instead of the built-in proposal")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Override the document title")
	renderCmd.Flags().StringVar(&renderWatermark, "watermark", "", "Override the watermark text")
	renderCmd.Flags().StringVar(&renderAssumptions, "assumptions", "", "Assumptions YAML file (default: from config)")

	timelineCmd.Flags().StringVarP(&timelineOut, "out", "o", "", "Output CSV path, or - for stdout (default: <output_dir>/"+export.TimelineFilename+")")
	timelineCmd.Flags().StringVar(&timelineAssumptions, "assumptions", "", "Assumptions YAML file (default: from config)")

	snapshotCmd.Flags().BoolVar(&snapshotCSV, "csv", false, "Write one wide CSV row to stdout instead of a table")
	snapshotCmd.Flags().StringVar(&snapshotAssumptions, "assumptions", "", "Assumptions YAML file (default: from config)")

	inspectCmd.Flags().BoolVar(&inspectText, "text", false, "Print the extracted text of every page")

	configCmd.Flags().BoolVar(&configInit, "init", false, "Create a default config file if none exists")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runShell starts the interactive workbench.
func runShell(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	fmt.Println("╔═══════════════════════════════════════════════════════════╗")
	fmt.Println("║            PilotDeck - Pilot Proposal Workbench           ║")
	fmt.Println("╚═══════════════════════════════════════════════════════════╝")
	fmt.Println()

	path := configPath()
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config: %s\n", path)
	} else {
		fmt.Printf("Config: (using defaults, run 'pilotdeck config --init' to create)\n")
	}

	a, err := pilot.LoadOrDefault(cfg.Proposal.AssumptionsFile)
	if err != nil {
		return err
	}
	if cfg.Proposal.AssumptionsFile != "" {
		fmt.Printf("Assumptions: %s\n", cfg.Proposal.AssumptionsFile)
	} else {
		fmt.Printf("Assumptions: (built-in defaults)\n")
	}
	fmt.Println()

	store := pilot.NewStore(a)
	renders := history.NewLog(history.DefaultTTL)

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".pilotdeck_history")

	sh, err := shell.New(store, cfg.Renderer(), renders, shell.Config{
		HistoryFile:     historyFile,
		AssumptionsFile: cfg.Proposal.AssumptionsFile,
		OutputDir:       cfg.Export.OutputDir,
		WatermarkText:   cfg.Proposal.WatermarkText,
		WriteManifest:   cfg.Export.WriteManifest,
	})
	if err != nil {
		return fmt.Errorf("failed to create shell: %w", err)
	}

	if err := sh.Run(ctx); err != nil && err != context.Canceled {
		return err
	}

	fmt.Println("Goodbye!")
	return nil
}

// runServe wires the store, handlers, and hub together and serves
// until interrupted.
func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	a, err := pilot.LoadOrDefault(cfg.Proposal.AssumptionsFile)
	if err != nil {
		return err
	}
	store := pilot.NewStore(a)
	renderer := cfg.Renderer()
	renders := history.NewLog(history.DefaultTTL)

	hub := api.NewHub()
	go hub.Run()
	defer hub.Stop()
	events := api.NewHubEventBroadcaster(hub)

	srv := api.NewServer(&api.ServerConfig{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		CORSOrigins:   cfg.Server.CORSOrigins,
		EnableLogging: cfg.Server.EnableLogging,
	})
	router := srv.Router()
	api.NewPilotHandler(store).RegisterRoutes(router)
	api.NewProposalHandler(store).RegisterRoutes(router)
	api.NewExportHandler(store, renderer, renders, events).RegisterRoutes(router)
	router.GET("/ws", api.NewWebSocketHandler(hub).HandleFunc())

	if watchAssumptions {
		if cfg.Proposal.AssumptionsFile == "" {
			return fmt.Errorf("--watch requires proposal.assumptions_file in the config")
		}
		watcher, err := pilot.NewWatcher(cfg.Proposal.AssumptionsFile, store, logger)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
		logger.Info("Watching assumptions file",
			zap.String("path", cfg.Proposal.AssumptionsFile))
	}

	if err := srv.Start(); err != nil {
		return err
	}
	logger.Info("API server listening", zap.String("addr", srv.Address()))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		api.ForwardStoreEvents(gctx, store, events)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// runRender renders one PDF and reports its identity.
func runRender(cmd *cobra.Command, args []string) error {
	a, err := loadAssumptions(renderAssumptions)
	if err != nil {
		return err
	}
	m := pilot.Compute(a)

	var spec report.ReportSpec
	if renderFrom != "" {
		f, err := os.Open(renderFrom)
		if err != nil {
			return err
		}
		spec, err = proposal.LoadMarkdown(f)
		f.Close()
		if err != nil {
			return err
		}
	} else {
		spec = proposal.BuildSpec(a, m)
	}
	if renderTitle != "" {
		spec.Title = renderTitle
	}
	if renderWatermark != "" {
		spec.WatermarkText = renderWatermark
	} else if cfg.Proposal.WatermarkText != "" {
		spec.WatermarkText = cfg.Proposal.WatermarkText
	}

	out := renderOut
	if out == "" {
		out = filepath.Join(cfg.Export.OutputDir, export.Filename)
	}

	spin := spinner.New(fmt.Sprintf("Rendering %s", filepath.Base(out)))
	spin.Start()

	doc, err := cfg.Renderer().RenderDocument(spec)
	if err != nil {
		spin.Fail("Render failed")
		return err
	}
	if err := os.WriteFile(out, doc.Bytes, 0644); err != nil {
		spin.Fail("Render failed")
		return err
	}

	spin.Success(fmt.Sprintf("Wrote %s", out))
	fmt.Printf("  Pages: %d\n", doc.Pages)
	fmt.Printf("  Bytes: %d\n", len(doc.Bytes))
	fmt.Printf("  SHA-256: %s\n", export.ShortDigest(export.Digest(doc.Bytes)))

	if cfg.Export.WriteManifest {
		manPath := out + ".manifest.json"
		man := export.NewManifest(doc, a)
		man.Filename = filepath.Base(out)

		mf, err := os.Create(manPath)
		if err != nil {
			return err
		}
		if err := man.WriteJSON(mf); err != nil {
			mf.Close()
			return err
		}
		if err := mf.Close(); err != nil {
			return err
		}
		fmt.Printf("  Manifest: %s\n", manPath)
	}
	return nil
}

// runTimeline exports the DMAIC timeline as CSV.
func runTimeline(cmd *cobra.Command, args []string) error {
	a, err := loadAssumptions(timelineAssumptions)
	if err != nil {
		return err
	}
	tasks := proposal.Timeline(a.ProjectStart)

	out := timelineOut
	if out == "" {
		out = filepath.Join(cfg.Export.OutputDir, export.TimelineFilename)
	}
	if out == "-" {
		return export.ExportTimelineToCSV(os.Stdout, tasks, export.DefaultCSVConfig())
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := export.ExportTimelineToCSV(f, tasks, export.DefaultCSVConfig()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d tasks)\n", out, len(tasks))
	return nil
}

// runSnapshot prints the derived metrics as a table or CSV row.
func runSnapshot(cmd *cobra.Command, args []string) error {
	a, err := loadAssumptions(snapshotAssumptions)
	if err != nil {
		return err
	}
	m := pilot.Compute(a)

	if snapshotCSV {
		return export.ExportMetricsToCSV(os.Stdout, a, m, export.DefaultCSVConfig())
	}

	heading := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)

	heading.Print("Pilot Snapshot")
	dim.Printf(" (%s)\n", a.SiteName)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Metric", "Value"})
	table.Append([]string{"Tons diverted/month", pilot.FormatTons(m.TonsPerMonth)})
	table.Append([]string{"Net value/month", pilot.FormatCurrency(m.NetValuePerMonth)})
	table.Append([]string{"Payload utilization", pilot.FormatPercent(m.PayloadUtilPct)})
	table.Append([]string{"Loads/month", pilot.FormatCount(m.LoadsPerMonth)})
	table.Render()

	dim.Printf("%d-day pilot starting %s. Use --csv for a machine-readable row.\n",
		a.PilotDays, a.ProjectStart.Format("2006-01-02"))
	return nil
}

// runInspect reports a rendered PDF's identity and checks its
// manifest sidecar when one exists.
func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	defer f.Close()

	fmt.Printf("File:    %s\n", path)
	fmt.Printf("Bytes:   %d\n", len(data))
	fmt.Printf("Pages:   %d\n", reader.NumPage())
	fmt.Printf("SHA-256: %s\n", export.Digest(data))

	manPath := path + ".manifest.json"
	if raw, err := os.ReadFile(manPath); err == nil {
		var man export.Manifest
		if err := json.Unmarshal(raw, &man); err != nil {
			return fmt.Errorf("parse %s: %w", manPath, err)
		}
		if !man.Verify(data) {
			return fmt.Errorf("manifest %s does not match %s", manPath, path)
		}
		fmt.Printf("Manifest: verified (rendered %s)\n", man.RenderedAt.Format(time.RFC3339))
	}

	if inspectText {
		fmt.Println()
		for i := 1; i <= reader.NumPage(); i++ {
			page := reader.Page(i)
			if page.V.IsNull() {
				continue
			}
			text, err := page.GetPlainText(nil)
			if err != nil {
				continue
			}
			fmt.Printf("--- page %d ---\n%s\n", i, text)
		}
	}
	return nil
}

// runConfig prints the effective config, or writes a default file.
func runConfig(cmd *cobra.Command, args []string) error {
	path := configPath()

	if configInit {
		if err := config.InitConfig(path); err != nil {
			return err
		}
		fmt.Printf("Config initialized at: %s\n", path)
		fmt.Println("Edit this file to adjust the server, layout, and export settings.")
		return nil
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("# %s\n", path)
	} else {
		fmt.Println("# built-in defaults (run 'pilotdeck config --init' to create a file)")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadAssumptions resolves the per-command override against the
// configured assumptions file.
func loadAssumptions(override string) (pilot.Assumptions, error) {
	path := override
	if path == "" {
		path = cfg.Proposal.AssumptionsFile
	}
	return pilot.LoadOrDefault(path)
}

func logLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
