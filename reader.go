package readln

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
)

// Common errors
var (
	// ErrEOF is returned when the user presses Ctrl+D on an empty line or
	// the input stream ends.
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
)

// Config holds the configuration for a Reader.
type Config struct {
	Prefix        string         // Prompt prefix (e.g., "$ ")
	HistoryConfig *HistoryConfig // History configuration (nil for default)
	ColorScheme   *ColorScheme   // Color scheme (nil for default)
	KeyMap        *KeyMap        // Key bindings (nil for default)
}

// Option represents a configuration option for a Reader.
type Option func(*Config)

// WithHistory configures history settings with the provided configuration.
//
// Example:
//
//	readln.New("$ ", readln.WithHistory(&readln.HistoryConfig{
//		Enabled:    true,
//		MaxEntries: 100,
//		File:       "~/.myapp_history",
//	}))
func WithHistory(historyConfig *HistoryConfig) Option {
	return func(c *Config) {
		c.HistoryConfig = historyConfig
	}
}

// WithMemoryHistory is a convenience option for memory-only history.
func WithMemoryHistory(maxEntries int) Option {
	return func(c *Config) {
		if maxEntries <= 0 {
			maxEntries = 1000
		}
		c.HistoryConfig = &HistoryConfig{
			Enabled:    true,
			MaxEntries: maxEntries,
		}
	}
}

// WithFileHistory is a convenience option for history with file persistence.
func WithFileHistory(file string, maxEntries int) Option {
	return func(c *Config) {
		if maxEntries <= 0 {
			maxEntries = 1000
		}
		c.HistoryConfig = &HistoryConfig{
			Enabled:     true,
			MaxEntries:  maxEntries,
			File:        file,
			MaxFileSize: 1024 * 1024,
			MaxBackups:  3,
		}
	}
}

// WithColorScheme sets the color scheme.
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithKeyMap sets the key bindings.
func WithKeyMap(keyMap *KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keyMap
	}
}

// Reader reads lines interactively from the terminal. A Reader owns the
// terminal for the duration of a ReadLine or Edit call: it enters raw mode,
// decodes key events one at a time, applies them to the active line buffer,
// and redraws the prompt line after every accepted key. ReadLine adds
// Up/Down history recall on top of the plain editing that Edit provides.
type Reader struct {
	config         Config
	output         io.Writer
	historyManager *HistoryManager
	terminal       terminalInterface
	decoder        *decoder
	renderer       *renderer
}

// New creates a new Reader with the given prompt prefix.
//
// Example:
//
//	r, err := readln.New("$ ",
//		readln.WithMemoryHistory(100),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	line, err := r.ReadLine()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("You entered: %s\n", line)
func New(prefix string, options ...Option) (*Reader, error) {
	config := Config{
		Prefix: prefix,
	}
	for _, option := range options {
		option(&config)
	}
	return newFromConfig(config)
}

func newFromConfig(config Config) (*Reader, error) {
	if config.HistoryConfig == nil {
		config.HistoryConfig = DefaultHistoryConfig()
	} else {
		if config.HistoryConfig.MaxEntries <= 0 {
			config.HistoryConfig.MaxEntries = 1000
		}
		if config.HistoryConfig.MaxFileSize <= 0 {
			config.HistoryConfig.MaxFileSize = 1024 * 1024
		}
		if config.HistoryConfig.MaxBackups <= 0 {
			config.HistoryConfig.MaxBackups = 3
		}
	}
	if config.ColorScheme == nil {
		config.ColorScheme = ThemeDefault
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}

	var output io.Writer = os.Stdout
	if runtime.GOOS == "windows" {
		output = colorable.NewColorableStdout()
	}

	terminal, err := newRealTerminal()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}

	historyManager := NewHistoryManager(config.HistoryConfig)
	if err := historyManager.Load(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	r := &Reader{
		config:         config,
		output:         output,
		historyManager: historyManager,
		terminal:       terminal,
	}
	r.decoder = newDecoder(terminal, config.KeyMap)
	r.renderer = newRenderer(output, config.ColorScheme)
	return r, nil
}

// ReadLine reads one line with history recall, blocking until Enter.
//
// This is a convenience method that calls ReadLineContext with a background
// context.
func (r *Reader) ReadLine() (string, error) {
	return r.ReadLineContext(context.Background())
}

// ReadLineContext reads one line with history recall. Up/Down switch the
// active buffer between the in-progress line and editable copies of stored
// entries; the stored history is only changed on submit, when non-empty
// input is appended as a new, newest entry. Submitting an empty line returns
// "" without touching history.
//
// The context is checked between key events, so a cancelled or expired
// context ends the read with the context's error.
func (r *Reader) ReadLineContext(ctx context.Context) (string, error) {
	if err := r.terminal.SetRaw(); err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}

	restored := false
	defer func() {
		if !restored {
			if err := r.terminal.Restore(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
			}
		}
	}()

	nav := newNavigator(r.historyManager.Entries())
	buf := nav.Active()

	for {
		if err := r.renderer.renderLine(r.config.Prefix, buf.String(), buf.Cursor()); err != nil {
			return "", fmt.Errorf("failed to render prompt: %w", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		key, err := r.decoder.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrEOF
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		switch key.Kind {
		case KeyEnter:
			fmt.Fprint(r.output, "\r\n")
			result := nav.Active().String()
			if result == "" {
				return "", nil
			}
			r.historyManager.Append(result)
			return result, nil

		case KeyArrowUp:
			buf = nav.Up()

		case KeyArrowDown:
			buf = nav.Down()

		case KeySearch:
			result, err := r.searchHistory()
			if err != nil {
				return "", err
			}
			if result != "" {
				nav.hpos = len(nav.entries)
				buf = nav.Active()
				buf.Set(result)
			}

		case KeyInterrupt:
			if err := r.terminal.Restore(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal state: %v\n", err)
			}
			restored = true
			fmt.Fprint(r.output, "^C\r\n")
			return "", ErrInterrupted

		case KeyEOF:
			if buf.Len() == 0 {
				return "", ErrEOF
			}

		default:
			buf.Apply(key)
		}
	}
}

// Edit reads one line without history recall: the caller-supplied initial
// text is placed in the buffer with the cursor at its end, the same editing
// keys apply, and the final contents are returned on Enter. History is
// neither consulted nor modified.
func (r *Reader) Edit(initial string) (string, error) {
	return r.EditContext(context.Background(), initial)
}

// EditContext is Edit with context cancellation between key events.
func (r *Reader) EditContext(ctx context.Context, initial string) (string, error) {
	if err := r.terminal.SetRaw(); err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}

	restored := false
	defer func() {
		if !restored {
			if err := r.terminal.Restore(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
			}
		}
	}()

	buf := NewLineBuffer(initial)

	for {
		if err := r.renderer.renderLine(r.config.Prefix, buf.String(), buf.Cursor()); err != nil {
			return "", fmt.Errorf("failed to render prompt: %w", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		key, err := r.decoder.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrEOF
			}
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		switch key.Kind {
		case KeyEnter:
			fmt.Fprint(r.output, "\r\n")
			return buf.String(), nil

		case KeyInterrupt:
			if err := r.terminal.Restore(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal state: %v\n", err)
			}
			restored = true
			fmt.Fprint(r.output, "^C\r\n")
			return "", ErrInterrupted

		case KeyEOF:
			if buf.Len() == 0 {
				return "", ErrEOF
			}

		case KeyArrowUp, KeyArrowDown, KeySearch:
			// No recall in this mode.

		default:
			buf.Apply(key)
		}
	}
}

// searchHistory implements incremental reverse history search (Ctrl+R).
// Typing narrows the fuzzy matches, Up/Down move the selection, Enter
// accepts, Ctrl+C cancels.
func (r *Reader) searchHistory() (string, error) {
	search := NewHistorySearcher(r.historyManager.Entries())
	query := []rune{}
	results := search("")
	selected := 0
	lastLines := 0

	defer func() {
		_ = r.renderer.clearSearch(lastLines)
	}()

	for {
		if err := r.renderer.clearSearch(lastLines); err != nil {
			return "", err
		}
		if err := r.renderer.renderSearch(string(query), results, selected); err != nil {
			return "", err
		}
		lastLines = len(results)
		if lastLines > 5 {
			lastLines = 5
		}

		key, err := r.decoder.ReadKey()
		if err != nil {
			return "", err
		}

		switch key.Kind {
		case KeyEnter:
			if selected < len(results) {
				return results[selected], nil
			}
			return string(query), nil

		case KeyInterrupt:
			return "", nil

		case KeyBackspace:
			if len(query) > 0 {
				query = query[:len(query)-1]
				results = search(string(query))
				selected = 0
			}

		case KeyArrowUp:
			if selected > 0 {
				selected--
			}

		case KeyArrowDown:
			if selected < len(results)-1 {
				selected++
			}

		case KeyChar:
			query = append(query, key.Rune)
			results = search(string(query))
			selected = 0
		}
	}
}

// History management methods

// History returns a copy of the current command history, oldest first.
func (r *Reader) History() []string {
	return r.historyManager.Entries()
}

// AddHistory appends a line to the history as its newest entry.
func (r *Reader) AddHistory(line string) {
	r.historyManager.Append(line)
}

// ClearHistory removes all history entries.
func (r *Reader) ClearHistory() {
	r.historyManager.Clear()
}

// SetHistory replaces the entire history.
func (r *Reader) SetHistory(history []string) {
	r.historyManager.SetEntries(history)
}

// SetPrefix changes the prompt prefix.
func (r *Reader) SetPrefix(prefix string) {
	r.config.Prefix = prefix
}

// SetColorScheme changes the color scheme.
func (r *Reader) SetColorScheme(scheme *ColorScheme) {
	r.config.ColorScheme = scheme
	r.renderer = newRenderer(r.output, scheme)
}

// Close saves the history file (when configured) and releases the terminal.
// It is safe to call Close multiple times; use defer for cleanup.
func (r *Reader) Close() error {
	if r.output != nil {
		fmt.Fprint(r.output, "\x1b[?25h") // Show cursor
	}

	if r.historyManager != nil {
		if err := r.historyManager.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
		}
	}

	if r.terminal != nil {
		return r.terminal.Close()
	}
	return nil
}
