package readln

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestReader builds a Reader wired to a mock terminal that replays the
// given key input, with output captured in a buffer.
func newTestReader(t *testing.T, input string, options ...Option) (*Reader, *bytes.Buffer) {
	t.Helper()

	config := Config{Prefix: "> "}
	for _, option := range options {
		option(&config)
	}
	if config.HistoryConfig == nil {
		config.HistoryConfig = DefaultHistoryConfig()
	}
	if config.ColorScheme == nil {
		config.ColorScheme = ThemeDefault
	}
	if config.KeyMap == nil {
		config.KeyMap = NewDefaultKeyMap()
	}

	terminal := newMockTerminal(input)
	output := &bytes.Buffer{}

	r := &Reader{
		config:         config,
		output:         output,
		historyManager: NewHistoryManager(config.HistoryConfig),
		terminal:       terminal,
	}
	r.decoder = newDecoder(terminal, config.KeyMap)
	r.renderer = newRenderer(output, config.ColorScheme)
	return r, output
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options []Option
	}{
		{name: "defaults"},
		{name: "with memory history", options: []Option{WithMemoryHistory(100)}},
		{name: "with color scheme", options: []Option{WithColorScheme(ThemeDark)}},
		{name: "with key map", options: []Option{WithKeyMap(NewDefaultKeyMap())}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newTestReader(t, "test\r", tt.options...)
			require.NotNil(t, r)
			require.NotNil(t, r.config.HistoryConfig)
			assert.Greater(t, r.config.HistoryConfig.MaxEntries, 0)
			assert.NotNil(t, r.config.ColorScheme)
		})
	}
}

func TestReadLineTypedInput(t *testing.T) {
	t.Parallel()

	r, _ := newTestReader(t, "hello\r")

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	assert.Equal(t, []string{"hello"}, r.History())
}

func TestReadLineEmptySubmit(t *testing.T) {
	t.Parallel()

	r, _ := newTestReader(t, "\r")
	r.SetHistory([]string{"x"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "", line)
	assert.Equal(t, []string{"x"}, r.History(), "empty submit must not touch history")
}

func TestReadLineEditingKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "backspace",
			input: "heyy\x7fllo\r",
			want:  "hello",
		},
		{
			name:  "arrow left then insert",
			input: "helo\x1b[D\x1b[Dl\r",
			want:  "hello",
		},
		{
			name:  "delete word backwards",
			input: "hello world\x17\r",
			want:  "hello ",
		},
		{
			name:  "ctrl+u clears line",
			input: "junk\x15ok\r",
			want:  "ok",
		},
		{
			name:  "home then insert",
			input: "bc\x01a\r",
			want:  "abc",
		},
		{
			name:  "unknown escape discarded",
			input: "ab\x1b[1;5Zq\r",
			want:  "ab",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newTestReader(t, tt.input)
			line, err := r.ReadLine()
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestReadLineHistoryRecallRoundTrip(t *testing.T) {
	t.Parallel()

	// Up twice reaches the oldest entry; submitting it appends a new
	// entry rather than moving the old one.
	r, _ := newTestReader(t, "\x1b[A\x1b[A\r")
	r.SetHistory([]string{"alpha", "beta"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "alpha", line)
	assert.Equal(t, []string{"alpha", "beta", "alpha"}, r.History())
}

func TestReadLineEditedRecallAppendsNewEntry(t *testing.T) {
	t.Parallel()

	// Recall "alpha", append "X", submit: stored "alpha" is untouched and
	// "alphaX" becomes the newest entry.
	r, _ := newTestReader(t, "\x1b[A\x1b[AX\r")
	r.SetHistory([]string{"alpha", "beta"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "alphaX", line)
	assert.Equal(t, []string{"alpha", "beta", "alphaX"}, r.History())
}

func TestReadLineDownFromFreshIsNoOp(t *testing.T) {
	t.Parallel()

	r, _ := newTestReader(t, "x\x1b[B\r")
	r.SetHistory([]string{"alpha"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "x", line)
}

func TestReadLineDownRestoresInProgressLine(t *testing.T) {
	t.Parallel()

	// Type, recall, come back down: the in-progress line reappears.
	r, _ := newTestReader(t, "draft\x1b[A\x1b[B!\r")
	r.SetHistory([]string{"alpha"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "draft!", line)
}

func TestReadLineShadowReusedAcrossVisits(t *testing.T) {
	t.Parallel()

	// Edit "beta" during recall, browse away and back: the edit is still
	// there, and submitting appends it as new.
	r, _ := newTestReader(t, "\x1b[A!\x1b[A\x1b[B\r")
	r.SetHistory([]string{"alpha", "beta"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "beta!", line)
	assert.Equal(t, []string{"alpha", "beta", "beta!"}, r.History())
}

func TestReadLineResubmitIdenticalAppends(t *testing.T) {
	t.Parallel()

	// Submitting an unedited recalled entry still appends a new entry,
	// even though the text duplicates the stored one.
	r, _ := newTestReader(t, "\x1b[A\r")
	r.SetHistory([]string{"beta"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "beta", line)
	assert.Equal(t, []string{"beta", "beta"}, r.History())
}

func TestReadLineInterrupt(t *testing.T) {
	t.Parallel()

	r, output := newTestReader(t, "ab\x03")

	_, err := r.ReadLine()
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Contains(t, output.String(), "^C")
}

func TestReadLineCtrlD(t *testing.T) {
	t.Parallel()

	t.Run("empty buffer yields EOF", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestReader(t, "\x04")
		_, err := r.ReadLine()
		assert.ErrorIs(t, err, ErrEOF)
	})

	t.Run("non-empty buffer ignores it", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestReader(t, "a\x04b\r")
		line, err := r.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, "ab", line)
	})
}

func TestReadLineInputExhausted(t *testing.T) {
	t.Parallel()

	r, _ := newTestReader(t, "abc") // no Enter
	_, err := r.ReadLine()
	assert.ErrorIs(t, err, ErrEOF)
}

func TestReadLineContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _ := newTestReader(t, "hello\r")
	_, err := r.ReadLineContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadLineRawModeRestored(t *testing.T) {
	t.Parallel()

	r, _ := newTestReader(t, "hi\r")
	mock := r.terminal.(*mockTerminal)

	_, err := r.ReadLine()
	require.NoError(t, err)
	assert.False(t, mock.rawMode, "raw mode must be released after the read")
}

func TestReadLineHistorySearch(t *testing.T) {
	t.Parallel()

	// Ctrl+R, type "git", accept the best match with Enter, then submit.
	r, _ := newTestReader(t, "\x12git\r\r")
	r.SetHistory([]string{"git status", "docker ps"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "git status", line)
	assert.Equal(t, []string{"git status", "docker ps", "git status"}, r.History())
}

func TestReadLineHistorySearchCancelled(t *testing.T) {
	t.Parallel()

	// Ctrl+R then Ctrl+C leaves the typed line as it was.
	r, _ := newTestReader(t, "draft\x12git\x03\r")
	r.SetHistory([]string{"git status"})

	line, err := r.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "draft", line)
}

func TestEdit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial string
		input   string
		want    string
	}{
		{
			name:    "plain typing",
			initial: "",
			input:   "hello\r",
			want:    "hello",
		},
		{
			name:    "initial text edited from the end",
			initial: "hello",
			input:   " world\r",
			want:    "hello world",
		},
		{
			name:    "initial text deletable",
			initial: "abc",
			input:   "\x7f\x7f\r",
			want:    "a",
		},
		{
			name:    "empty result allowed",
			initial: "",
			input:   "\r",
			want:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := newTestReader(t, tt.input)
			line, err := r.Edit(tt.initial)
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestEditIgnoresHistoryKeys(t *testing.T) {
	t.Parallel()

	r, _ := newTestReader(t, "x\x1b[A\x1b[By\r")
	r.SetHistory([]string{"alpha"})

	line, err := r.Edit("")
	require.NoError(t, err)
	assert.Equal(t, "xy", line)
	assert.Equal(t, []string{"alpha"}, r.History(), "Edit must not touch history")
}

func TestReaderHistoryManagement(t *testing.T) {
	t.Parallel()

	r, _ := newTestReader(t, "")

	r.AddHistory("one")
	r.AddHistory("two")
	r.AddHistory("two") // duplicates are kept
	assert.Equal(t, []string{"one", "two", "two"}, r.History())

	r.SetHistory([]string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, r.History())

	r.ClearHistory()
	assert.Empty(t, r.History())
}

func TestReaderClose(t *testing.T) {
	t.Parallel()

	r, output := newTestReader(t, "")
	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "Close must be safe to call twice")
	assert.Contains(t, output.String(), "\x1b[?25h", "cursor visibility restored")
}

func TestRenderOutputAfterEachKey(t *testing.T) {
	t.Parallel()

	r, output := newTestReader(t, "ab\r")
	_, err := r.ReadLine()
	require.NoError(t, err)

	out := output.String()
	assert.Contains(t, out, "\r\x1b[2K", "line cleared before redraw")
	assert.Contains(t, out, "> ", "prefix rendered")
	assert.Contains(t, out, "ab", "buffer contents rendered")
	assert.Contains(t, out, "\r\n", "newline printed on submit")
}
