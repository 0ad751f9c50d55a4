// Package spinner renders an animated status line for operations that
// take more than an instant, with a static fallback when output is not
// a terminal.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"

	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"

	symbolSuccess = "✓"
	symbolFailure = "✗"
)

// frames is the braille animation cycle.
var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Config controls spinner output.
type Config struct {
	// Message is the text shown next to the spinner.
	Message string

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// Interval is the frame rate. Defaults to 80ms.
	Interval time.Duration

	// IsTTY overrides terminal detection. When the writer is not a
	// terminal the spinner prints static lines instead of animating.
	IsTTY *bool
}

// Spinner shows an animated status line while an operation runs. All
// methods are safe for concurrent use.
type Spinner struct {
	mu sync.Mutex

	message  string
	writer   io.Writer
	interval time.Duration
	isTTY    bool

	active  bool
	started time.Time
	frame   int
	lastLen int
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New returns a spinner with the given message writing to stderr.
func New(message string) *Spinner {
	return NewWithConfig(Config{Message: message})
}

// NewWithConfig returns a spinner with explicit options.
func NewWithConfig(cfg Config) *Spinner {
	if cfg.Writer == nil {
		cfg.Writer = os.Stderr
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 80 * time.Millisecond
	}

	isTTY := false
	if f, ok := cfg.Writer.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	if cfg.IsTTY != nil {
		isTTY = *cfg.IsTTY
	}

	return &Spinner{
		message:  cfg.Message,
		writer:   cfg.Writer,
		interval: cfg.Interval,
		isTTY:    isTTY,
	}
}

// Start begins the animation. On non-terminal writers it prints the
// message once instead. Starting an active spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}
	s.active = true
	s.started = time.Now()
	s.frame = 0

	if !s.isTTY {
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	fmt.Fprint(s.writer, hideCursor)
	go s.spin(s.stopCh, s.doneCh)
}

// Stop halts the animation and erases the line without printing a
// status. Stopping an inactive spinner is a no-op.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false

	if !s.isTTY {
		s.mu.Unlock()
		return
	}
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh

	s.mu.Lock()
	s.clear()
	fmt.Fprint(s.writer, showCursor)
	s.mu.Unlock()
}

// Update replaces the message. It takes effect on the next frame, or
// on the next Start when the spinner is idle.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Success stops the spinner with a green check and the final message.
// An empty message keeps the one the spinner was started with.
func (s *Spinner) Success(message string) {
	s.finish(symbolSuccess, colorGreen, message)
}

// Fail stops the spinner with a red cross and the final message. An
// empty message keeps the one the spinner was started with.
func (s *Spinner) Fail(message string) {
	s.finish(symbolFailure, colorRed, message)
}

// Message returns the current message.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Elapsed returns the time since Start, or zero before the first
// Start.
func (s *Spinner) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		return 0
	}
	return time.Since(s.started)
}

// IsTTY reports whether output goes to a terminal.
func (s *Spinner) IsTTY() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isTTY
}

// spin renders frames until stopCh closes.
func (s *Spinner) spin(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.renderFrame()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.renderFrame()
		}
	}
}

func (s *Spinner) renderFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	line := fmt.Sprintf("%s %s %s",
		frames[s.frame%len(frames)], s.message, formatElapsed(time.Since(s.started)))
	s.frame++
	s.overwrite(line)
}

// overwrite replaces the spinner line. Caller holds the mutex.
func (s *Spinner) overwrite(line string) {
	if s.lastLen > 0 {
		fmt.Fprint(s.writer, "\r"+strings.Repeat(" ", s.lastLen)+"\r")
	}
	fmt.Fprint(s.writer, line)
	s.lastLen = len(line)
}

// clear erases the spinner line. Caller holds the mutex.
func (s *Spinner) clear() {
	if s.lastLen > 0 {
		fmt.Fprint(s.writer, "\r"+strings.Repeat(" ", s.lastLen)+"\r")
		s.lastLen = 0
	}
}

// finish stops the spinner and prints a final status line. Spinners
// that never started print the status without an elapsed suffix.
func (s *Spinner) finish(symbol, color, message string) {
	s.mu.Lock()

	if message == "" {
		message = s.message
	}
	elapsed := ""
	if !s.started.IsZero() {
		elapsed = " " + formatElapsed(time.Since(s.started))
	}

	wasActive := s.active
	s.active = false

	if wasActive && s.isTTY {
		stopCh, doneCh := s.stopCh, s.doneCh
		s.mu.Unlock()

		close(stopCh)
		<-doneCh

		s.mu.Lock()
		s.clear()
		fmt.Fprint(s.writer, showCursor)
	}

	if s.isTTY {
		fmt.Fprintf(s.writer, "%s%s%s %s%s\n", color, symbol, colorReset, message, elapsed)
	} else {
		fmt.Fprintf(s.writer, "%s %s%s\n", symbol, message, elapsed)
	}
	s.mu.Unlock()
}

// formatElapsed renders a duration as "(42ms)", "(1.2s)", or
// "(1m 30s)" depending on magnitude.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("(%dms)", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("(%.1fs)", d.Seconds())
	default:
		return fmt.Sprintf("(%dm %ds)", int(d.Minutes()), int(d.Seconds())%60)
	}
}
