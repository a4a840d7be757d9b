package readln

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts the terminal for testability and
// cross-platform support. It is the reader's single key-source capability
// (ReadRune blocks until one input rune is available) plus the scoped
// raw-mode guard around it.
//
// Implementations:
//   - realTerminal: go-tty for input, golang.org/x/term for raw mode
//   - mockTerminal: scripted input for tests
type terminalInterface interface {
	SetRaw() error                        // Enter raw (non-canonical, no-echo) mode
	Restore() error                       // Restore the saved terminal state
	Size() (width, height int, err error) // Terminal dimensions with safe fallbacks
	ReadRune() (rune, int, error)         // Block until one input rune is available
	Close() error                         // Release the tty, safe to call twice
}

// realTerminal is the production terminal. go-tty covers both the Unix
// per-byte termios read and the Windows console-input-record read behind one
// ReadRune call; golang.org/x/term provides the save/restore raw-mode guard
// so the prior mode is reinstated on every exit path.
type realTerminal struct {
	tty           *tty.TTY
	output        io.Writer
	closed        bool // prevent double-close panic on Windows
	stdinFd       int
	originalState *term.State
}

func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		// go-colorable translates ANSI escapes for the Windows console.
		output = colorable.NewColorableStdout()
	}

	return &realTerminal{
		tty:     t,
		output:  output,
		stdinFd: int(os.Stdin.Fd()),
	}, nil
}

// SetRaw saves the current terminal state and enters raw mode. The saved
// state is captured fresh on every call so repeated acquire/release cycles
// stay balanced.
func (t *realTerminal) SetRaw() error {
	if term.IsTerminal(t.stdinFd) {
		state, err := term.GetState(t.stdinFd)
		if err != nil {
			return err
		}
		t.originalState = state

		if _, err = term.MakeRaw(t.stdinFd); err != nil {
			return err
		}
	}
	return nil
}

// Restore reinstates the state captured by the last SetRaw. A Restore
// without a matching SetRaw is a no-op.
func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.stdinFd) {
		err := term.Restore(t.stdinFd, t.originalState)
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) Size() (width, height int, err error) {
	w, h, err := t.tty.Size()
	if err != nil || w <= 0 || h <= 0 {
		// Safe fallback so callers never divide by zero.
		return 80, 24, err
	}
	return w, h, nil
}

func (t *realTerminal) ReadRune() (rune, int, error) {
	r, err := t.tty.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	return r, 1, nil
}

func (t *realTerminal) Close() error {
	if t.closed {
		return nil
	}
	if t.tty != nil {
		err := t.tty.Close()
		t.closed = true
		return err
	}
	return nil
}
