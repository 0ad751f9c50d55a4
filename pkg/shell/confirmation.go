package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks the user to confirm before the shell overwrites a
// file or discards edits. The interface exists so tests can script
// the answers.
type Prompter interface {
	// Confirm shows message and returns true only when the user
	// explicitly answers yes.
	Confirm(message string) (bool, error)
}

// InteractivePrompter reads confirmations from a terminal.
type InteractivePrompter struct {
	reader io.Reader
	writer io.Writer
}

// NewInteractivePrompter returns a prompter on stdin/stdout.
func NewInteractivePrompter() *InteractivePrompter {
	return &InteractivePrompter{reader: os.Stdin, writer: os.Stdout}
}

// NewInteractivePrompterWithIO returns a prompter on custom streams.
func NewInteractivePrompterWithIO(reader io.Reader, writer io.Writer) *InteractivePrompter {
	return &InteractivePrompter{reader: reader, writer: writer}
}

// Confirm prints "message [y/N]: " and reads one line. Only "y" or
// "yes" (case-insensitive) confirms; empty input and EOF mean no.
func (p *InteractivePrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", message)

	scanner := bufio.NewScanner(p.reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		return false, nil
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "yes" || response == "y", nil
}

var _ Prompter = (*InteractivePrompter)(nil)

// MockPrompter scripts Confirm answers for tests and records every
// prompt it was shown.
type MockPrompter struct {
	Response  bool
	Error     error
	Prompts   []string
	CallCount int
}

// NewMockPrompter returns a prompter that always answers response.
func NewMockPrompter(response bool) *MockPrompter {
	return &MockPrompter{Response: response}
}

// NewMockPrompterWithError returns a prompter whose Confirm fails.
func NewMockPrompterWithError(err error) *MockPrompter {
	return &MockPrompter{Error: err}
}

// Confirm records the message and returns the scripted answer.
func (m *MockPrompter) Confirm(message string) (bool, error) {
	m.CallCount++
	m.Prompts = append(m.Prompts, message)
	if m.Error != nil {
		return false, m.Error
	}
	return m.Response, nil
}

// LastPrompt returns the most recent prompt, or "" if none.
func (m *MockPrompter) LastPrompt() string {
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

// Reset clears recorded prompts.
func (m *MockPrompter) Reset() {
	m.Prompts = nil
	m.CallCount = 0
}

var _ Prompter = (*MockPrompter)(nil)
