package shell

// help.go renders /help from the command registry: a category-grouped
// listing, plus a detail view for /help <command>.

import (
	"fmt"
	"io"
	"strings"
)

const (
	// commandColumn fits the widest name + shortcut ("/help (or /h)").
	commandColumn = 22

	indentCategory = "  "
	indentCommand  = "    "
	indentExample  = "      "
)

// writeHelp writes the full command listing grouped by category.
func writeHelp(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, indentCategory+colorBold+colorCyan+"pilotdeck Commands"+colorReset)
	fmt.Fprintln(w)

	for _, cat := range CategoryOrder {
		writeCategory(w, cat)
	}

	fmt.Fprintln(w, indentCategory+styleDim("Tab completes commands and field names. Ctrl+D exits."))
	fmt.Fprintln(w)
}

func writeCategory(w io.Writer, cat Category) {
	cmds := CommandsByCategory(cat)
	if len(cmds) == 0 {
		return
	}

	fmt.Fprintln(w, indentCategory+styleHeading(cat.DisplayName()))
	for _, cmd := range cmds {
		writeCommandLine(w, cmd)
	}
	fmt.Fprintln(w)
}

func writeCommandLine(w io.Writer, cmd Command) {
	name := styleCommand(cmd.Name)
	if cmd.Shortcut != "" {
		name += styleDim(" (or ") + styleCommand(cmd.Shortcut) + styleDim(")")
	}
	fmt.Fprintln(w, indentCommand+padRight(name, commandColumn)+styleDim(cmd.Description))

	// At most one inline example; the rest live in /help <command>.
	if len(cmd.Examples) > 0 {
		fmt.Fprintln(w, indentExample+styleDim("e.g. ")+styleArg(cmd.Examples[0].Command))
	}
}

// writeCommandHelp writes the detail view for a single command.
func writeCommandHelp(w io.Writer, cmd Command) {
	fmt.Fprintln(w)
	name := styleCommand(cmd.Name)
	if cmd.Shortcut != "" {
		name += styleDim(" (or ") + styleCommand(cmd.Shortcut) + styleDim(")")
	}
	fmt.Fprintln(w, indentCategory+name)
	fmt.Fprintln(w, indentCategory+styleDim(cmd.Description))
	fmt.Fprintln(w)
	fmt.Fprintln(w, indentCategory+colorBold+"Usage:"+colorReset+" "+styleArg(cmd.Usage))

	if len(cmd.Examples) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, indentCategory+colorBold+"Examples:"+colorReset)
		for _, ex := range cmd.Examples {
			fmt.Fprintln(w, indentCommand+styleArg(ex.Command)+styleDim(" - "+ex.Description))
		}
	}
	fmt.Fprintln(w)
}

// writeTable writes rows as columns padded to each column's widest
// cell. Cells may carry ANSI codes; widths are computed on the
// visible text.
func writeTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if cw := displayWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	for _, row := range rows {
		var b strings.Builder
		b.WriteString(indentCommand)
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(padRight(cell, widths[i]+2))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}
