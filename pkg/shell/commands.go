package shell

// commands.go is the registry behind /help and tab completion. Every
// shell command is described here once; the help renderer and the
// completer both read from this slice.

import "strings"

// Category groups related commands in help output.
type Category string

const (
	// CategoryAssumptions covers viewing and editing the pilot
	// assumptions and the metrics derived from them.
	CategoryAssumptions Category = "assumptions"

	// CategoryProposal covers the proposal content views: sections,
	// WBS, timeline, CTQs, criteria.
	CategoryProposal Category = "proposal"

	// CategoryExport covers rendering and file output.
	CategoryExport Category = "export"

	// CategoryGeneral covers help and shell control.
	CategoryGeneral Category = "general"
)

// CategoryOrder fixes the display order in /help.
var CategoryOrder = []Category{
	CategoryAssumptions,
	CategoryProposal,
	CategoryExport,
	CategoryGeneral,
}

// DisplayName returns the heading used for the category in /help.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAssumptions:
		return "Assumptions & Metrics"
	case CategoryProposal:
		return "Proposal Content"
	case CategoryExport:
		return "Render & Export"
	case CategoryGeneral:
		return "General"
	}
	return string(c)
}

// Command describes one shell command for help display.
type Command struct {
	// Name includes the leading slash, e.g. "/render".
	Name string

	// Shortcut is an optional alias, e.g. "/h" for "/help".
	Shortcut string

	Category    Category
	Description string

	// Usage shows the syntax with arguments, e.g. "/set <field> <value>".
	Usage string

	// Examples are concrete invocations with what they do.
	Examples []Example
}

// Example is one sample invocation of a command.
type Example struct {
	Command     string
	Description string
}

// Commands is the registry of every shell command.
var Commands = []Command{
	{
		Name:        "/assumptions",
		Category:    CategoryAssumptions,
		Description: "Show editable assumptions with current values and bounds",
		Usage:       "/assumptions",
	},
	{
		Name:        "/set",
		Category:    CategoryAssumptions,
		Description: "Set an assumption field (validated against its bounds)",
		Usage:       "/set <field> <value>",
		Examples: []Example{
			{Command: "/set floors 6", Description: "Use six floors"},
			{Command: "/set sale_price_per_ton 410", Description: "Raise the sale price"},
			{Command: "/set project_start 2026-09-01", Description: "Move the start date"},
			{Command: "/set program_name Strap Recovery Pilot", Description: "Rename the program"},
		},
	},
	{
		Name:        "/reset",
		Category:    CategoryAssumptions,
		Description: "Restore all assumptions to their defaults",
		Usage:       "/reset",
	},
	{
		Name:        "/metrics",
		Category:    CategoryAssumptions,
		Description: "Show monthly tonnage, net value, payload utilization, and loads",
		Usage:       "/metrics",
	},
	{
		Name:        "/save",
		Category:    CategoryAssumptions,
		Description: "Write the current assumptions to a YAML file",
		Usage:       "/save [path]",
		Examples: []Example{
			{Command: "/save", Description: "Write to the configured assumptions file"},
			{Command: "/save drafts/site-b.yaml", Description: "Write to a specific path"},
		},
	},
	{
		Name:        "/load",
		Category:    CategoryAssumptions,
		Description: "Load assumptions from a YAML file",
		Usage:       "/load [path]",
		Examples: []Example{
			{Command: "/load drafts/site-b.yaml", Description: "Load a saved scenario"},
		},
	},
	{
		Name:        "/sections",
		Category:    CategoryProposal,
		Description: "Preview the proposal sections and their bullet counts",
		Usage:       "/sections",
	},
	{
		Name:        "/wbs",
		Category:    CategoryProposal,
		Description: "Show the work breakdown structure",
		Usage:       "/wbs",
	},
	{
		Name:        "/timeline",
		Category:    CategoryProposal,
		Description: "Show the DMAIC timeline with dates and gates",
		Usage:       "/timeline",
	},
	{
		Name:        "/ctq",
		Category:    CategoryProposal,
		Description: "Show the CTQ table (targets, owners, reaction plans)",
		Usage:       "/ctq",
	},
	{
		Name:        "/criteria",
		Category:    CategoryProposal,
		Description: "Show the success and exit criteria",
		Usage:       "/criteria",
	},
	{
		Name:        "/render",
		Category:    CategoryExport,
		Description: "Render the watermarked proposal PDF",
		Usage:       "/render [path]",
		Examples: []Example{
			{Command: "/render", Description: "Write the default filename to the output directory"},
			{Command: "/render out/proposal.pdf", Description: "Write to a specific path"},
		},
	},
	{
		Name:        "/csv",
		Category:    CategoryExport,
		Description: "Export the timeline as CSV",
		Usage:       "/csv [path]",
	},
	{
		Name:        "/history",
		Category:    CategoryExport,
		Description: "List recent renders with page counts and digests",
		Usage:       "/history",
	},
	{
		Name:        "/config",
		Category:    CategoryGeneral,
		Description: "Show the active shell configuration",
		Usage:       "/config",
	},
	{
		Name:        "/help",
		Shortcut:    "/h",
		Category:    CategoryGeneral,
		Description: "Show this help, or detailed help for one command",
		Usage:       "/help [command]",
		Examples: []Example{
			{Command: "/help", Description: "List all commands"},
			{Command: "/help set", Description: "Show /set syntax and examples"},
		},
	},
	{
		Name:        "/quit",
		Shortcut:    "/q",
		Category:    CategoryGeneral,
		Description: "Exit the shell (/exit works too)",
		Usage:       "/quit",
	},
}

// CommandsByCategory returns the registry entries in cat, in
// registration order.
func CommandsByCategory(cat Category) []Command {
	var out []Command
	for _, cmd := range Commands {
		if cmd.Category == cat {
			out = append(out, cmd)
		}
	}
	return out
}

// LookupCommand finds a command by name or shortcut, with or without
// the leading slash.
func LookupCommand(name string) (Command, bool) {
	if name != "" && !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if name == "/exit" {
		name = "/quit"
	}
	for _, cmd := range Commands {
		if cmd.Name == name || (cmd.Shortcut != "" && cmd.Shortcut == name) {
			return cmd, true
		}
	}
	return Command{}, false
}

// commandNames returns every completable command word without the
// leading slash: names, shortcuts, and the /exit alias.
func commandNames() []string {
	names := make([]string, 0, len(Commands)+3)
	for _, cmd := range Commands {
		names = append(names, strings.TrimPrefix(cmd.Name, "/"))
		if cmd.Shortcut != "" {
			names = append(names, strings.TrimPrefix(cmd.Shortcut, "/"))
		}
	}
	names = append(names, "exit")
	return names
}
