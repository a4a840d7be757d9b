// Package readln provides interactive line editing with history recall for
// terminal applications.
//
// The package reads raw key events one at a time, maintains an editable line
// buffer with a cursor, and redraws the prompt after every keystroke. It is
// deliberately small: a single editable line, no completion engine, no
// terminal UI framework.
//
// Key Features:
//
//   - Character and word-wise editing (Backspace, Ctrl+Backspace/Ctrl+W,
//     Ctrl+Left/Right, Home/End, Ctrl+U, Ctrl+K)
//   - Up/Down history recall with copy-on-edit: browsing and tentatively
//     editing old entries never mutates the stored history; submitting
//     appends a new entry
//   - Reverse history search (Ctrl+R) with fuzzy ranking
//   - Optional history persistence with size-based file rotation
//   - Configurable key bindings including custom escape sequences
//   - Cross-platform terminal handling (Windows, macOS, Linux)
//   - Context support for timeouts and cancellation
//
// Quick Start:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/Stuff7/readln"
//	)
//
//	func main() {
//		r, err := readln.New(">>> ")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer r.Close()
//
//		line, err := r.ReadLine()
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("You entered: %s\n", line)
//	}
//
// History:
//
// ReadLine keeps an append-only history. Up and Down switch the active
// buffer between the in-progress line and private working copies of stored
// entries, so an entry edited during recall keeps the edits while browsing
// but the log itself only changes when the line is submitted:
//
//	r, err := readln.New("history> ",
//		readln.WithFileHistory(readln.DefaultHistoryFile(), 1000),
//	)
//
// Editing without history:
//
// Edit reads a single line with the same editing keys but no recall, seeded
// with caller-supplied initial text:
//
//	name, err := r.Edit("default-name")
//
// Errors:
//
// I/O failures from the terminal abort the read and are surfaced to the
// caller; Ctrl+C yields ErrInterrupted and Ctrl+D on an empty line yields
// ErrEOF. Unrecognized or incomplete escape sequences are not errors: they
// decode to a no-op key and leave the buffer untouched.
package readln
