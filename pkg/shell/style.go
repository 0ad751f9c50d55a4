package shell

// style.go holds the ANSI styling and width helpers shared by the
// help renderer and the table views.

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// styleHeading styles a category or table heading (bold green).
func styleHeading(s string) string {
	return colorBold + colorGreen + s + colorReset
}

// styleCommand styles a command name (cyan).
func styleCommand(s string) string {
	return colorCyan + s + colorReset
}

// styleArg styles arguments and example invocations (yellow).
func styleArg(s string) string {
	return colorYellow + s + colorReset
}

// styleDim styles secondary text (gray).
func styleDim(s string) string {
	return colorGray + s + colorReset
}

// stripANSI removes escape sequences of the form ESC [ ... m.
func stripANSI(s string) string {
	if !strings.ContainsRune(s, '\033') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\033':
			inEscape = true
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// displayWidth returns the terminal cell width of s, ignoring ANSI
// codes and counting wide runes as two cells.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

// padRight pads s with spaces to the given display width. Strings
// already at or past the width are returned unchanged.
func padRight(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncateDisplay cuts s to at most width cells, appending "..." when
// something was removed. Input is assumed to carry no ANSI codes.
func truncateDisplay(s string, width int) string {
	if displayWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	return runewidth.Truncate(s, width-3, "") + "..."
}
