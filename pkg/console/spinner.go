package console

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// SpinnerWrapper shows progress on stderr while a batch of files is scanned.
// It is a no-op unless stderr is a terminal so reports on stdout stay clean.
type SpinnerWrapper struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	enabled bool
	label   string
}

// NewSpinner creates a new spinner with the given label
func NewSpinner(label string) *SpinnerWrapper {
	enabled := isatty.IsTerminal(os.Stderr.Fd())

	s := &SpinnerWrapper{
		enabled: enabled,
		label:   label,
	}

	if enabled {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.spinner.Suffix = " " + label
		_ = s.spinner.Color("cyan")
	}

	return s
}

// Start begins the spinner animation
func (s *SpinnerWrapper) Start() {
	if s.enabled && s.spinner != nil {
		s.spinner.Start()
	}
}

// Stop stops the spinner animation
func (s *SpinnerWrapper) Stop() {
	if s.enabled && s.spinner != nil {
		s.spinner.Stop()
	}
}

// Advance updates the suffix with a done/total counter. Safe for concurrent use.
func (s *SpinnerWrapper) Advance(done, total int) {
	if !s.enabled || s.spinner == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spinner.Lock()
	s.spinner.Suffix = fmt.Sprintf(" %s (%d/%d)", s.label, done, total)
	s.spinner.Unlock()
}

// IsEnabled returns whether the spinner is enabled (i.e., running in a TTY)
func (s *SpinnerWrapper) IsEnabled() bool {
	return s.enabled
}
