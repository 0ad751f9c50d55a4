package shell

import (
	"strings"

	"github.com/chzyer/readline"

	"github.com/dsgeops/pilotdeck/pkg/pilot"
)

// fieldCommands are the commands whose arguments are assumption field
// names. Typing "/set pil<Tab>" completes to "/set pilot_days ".
var fieldCommands = []string{"set"}

// ShellCompleter implements readline.AutoCompleter for the pilotdeck
// shell. It completes command names after "/" and assumption field
// names in /set arguments.
type ShellCompleter struct {
	commands []string
	fields   []string
}

// NewShellCompleter builds a completer over the command registry and
// the assumption field table.
func NewShellCompleter() *ShellCompleter {
	return &ShellCompleter{
		commands: commandNames(),
		fields:   pilot.FieldNames(),
	}
}

var _ readline.AutoCompleter = (*ShellCompleter)(nil)

// Do implements readline.AutoCompleter. It returns candidate suffixes
// for the word under the cursor and the length of the prefix being
// completed.
func (c *ShellCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if len(line) == 0 || pos <= 0 {
		return nil, 0
	}
	if pos > len(line) {
		pos = len(line)
	}

	lineStr := string(line[:pos])
	wordStart := findWordStart(lineStr)
	currentWord := lineStr[wordStart:]
	if currentWord == "" {
		return nil, 0
	}

	if strings.HasPrefix(currentWord, "/") {
		return c.completeCommand(currentWord)
	}

	if isFieldCommandContext(lineStr, wordStart) {
		return c.completeField(currentWord)
	}

	return nil, 0
}

// findWordStart returns the index where the word under the cursor
// begins: one past the last space or tab, or 0.
func findWordStart(s string) int {
	wordStart := strings.LastIndex(s, " ")
	if t := strings.LastIndex(s, "\t"); t > wordStart {
		wordStart = t
	}
	return wordStart + 1
}

// isFieldCommandContext reports whether the text before the current
// word is a command that takes field-name arguments.
func isFieldCommandContext(line string, wordStart int) bool {
	before := strings.TrimRight(line[:wordStart], " \t")
	if !strings.HasPrefix(before, "/") {
		return false
	}

	cmdName := strings.TrimPrefix(before, "/")
	if i := strings.IndexAny(cmdName, " \t"); i != -1 {
		cmdName = cmdName[:i]
	}

	for _, fc := range fieldCommands {
		if cmdName == fc {
			return true
		}
	}
	return false
}

// completeCommand matches registry command names against the prefix
// (which includes the leading "/").
func (c *ShellCompleter) completeCommand(prefix string) ([][]rune, int) {
	cmdPrefix := strings.TrimPrefix(prefix, "/")

	var matches [][]rune
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, cmdPrefix) {
			matches = append(matches, []rune(cmd[len(cmdPrefix):]+" "))
		}
	}
	return matches, len(prefix)
}

// completeField matches assumption field names against the prefix.
func (c *ShellCompleter) completeField(prefix string) ([][]rune, int) {
	var matches [][]rune
	for _, name := range c.fields {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, []rune(name[len(prefix):]+" "))
		}
	}
	return matches, len(prefix)
}
