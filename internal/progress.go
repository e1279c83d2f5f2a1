package internal

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultWidth = 80

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Deadpan status lines shown while a long scan is running.
var waitingMessages = []string{
	"counting syllables nobody asked for",
	"reading the classics so you don't have to",
	"looking for poetry in all the wrong places",
	"consulting the pronouncing dictionary",
	"still reading",
	"the frog has not jumped yet",
	"seventeen syllables at a time",
}

// RandomMessage picks one of the waiting messages.
func RandomMessage() string {
	return waitingMessages[rand.IntN(len(waitingMessages))]
}

// Spinner draws a single status line on a terminal. On anything that is not
// a terminal it stays silent, so piped output is never polluted.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	width   int
	frame   int
	drawn   bool
	style   *color.Color
}

// NewSpinner attaches a spinner to f, enabled only when f is a terminal.
func NewSpinner(f *os.File) *Spinner {
	fd := int(f.Fd())
	enabled := term.IsTerminal(fd)
	width := defaultWidth
	if enabled {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			width = w
		}
	}
	return newSpinner(f, enabled, width)
}

func newSpinner(w io.Writer, enabled bool, width int) *Spinner {
	return &Spinner{
		w:       w,
		enabled: enabled,
		width:   width,
		style:   color.New(color.FgHiBlack),
	}
}

// Enabled reports whether the spinner writes anything.
func (s *Spinner) Enabled() bool {
	return s != nil && s.enabled
}

// Step advances the spinner and shows msg next to it.
func (s *Spinner) Step(msg string) {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	s.frame++
	line := fitWidth(frame+" "+msg, s.width-1)
	fmt.Fprintf(s.w, "\r\x1b[2K%s", s.style.Sprint(line))
	s.drawn = true
}

// Print clears the status line and writes text to w, which is usually
// stdout while the spinner itself draws on stderr.
func (s *Spinner) Print(w io.Writer, text string) {
	if s == nil {
		fmt.Fprint(w, text)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	fmt.Fprint(w, text)
}

// Done erases the status line.
func (s *Spinner) Done() {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Spinner) clearLocked() {
	if s.drawn {
		fmt.Fprint(s.w, "\r\x1b[2K")
		s.drawn = false
	}
}
