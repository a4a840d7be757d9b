package readln

// Key is one decoded, platform-independent input event. Exactly one Key is
// produced per call to the decoder; unrecognized input decodes to a Key with
// Kind KeyNone, which the editor silently ignores.
type Key struct {
	Kind KeyKind
	Rune rune // payload for KeyChar, zero otherwise
}

// KeyKind identifies the action a Key represents.
type KeyKind int

// Key kinds produced by the decoder.
const (
	KeyNone KeyKind = iota // unrecognized or incomplete input
	KeyChar                // printable character insert
	KeyEnter
	KeyBackspace
	KeyCtrlBackspace // delete word backwards
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyCtrlArrowLeft  // move word left
	KeyCtrlArrowRight // move word right
	KeyHome
	KeyEnd
	KeyDelete     // forward delete
	KeyDeleteLine // Ctrl+U
	KeyKillToEnd  // Ctrl+K
	KeySearch     // Ctrl+R reverse history search
	KeyInterrupt  // Ctrl+C
	KeyEOF        // Ctrl+D
)

// SequenceBinding maps one escape sequence (without the leading ESC) to a
// key kind. Bindings are matched in declaration order: sequences need not be
// prefix-disjoint, the first complete match wins.
type SequenceBinding struct {
	Seq  string
	Kind KeyKind
}

// KeyMap holds the key binding configuration: a control-rune table for
// single-rune keys and an ordered escape-sequence table.
type KeyMap struct {
	controls  map[rune]KeyKind
	sequences []SequenceBinding
}

// NewDefaultKeyMap creates the default key bindings.
//
// Default bindings:
//   - Enter (\r or \n): submit input
//   - Backspace (0x7f): delete character backwards
//   - Ctrl+Backspace (0x08) / Ctrl+W (0x17): delete word backwards
//   - Ctrl+A: move to beginning of line
//   - Ctrl+E: move to end of line
//   - Ctrl+U: delete entire line
//   - Ctrl+K: delete from cursor to end of line
//   - Ctrl+R: reverse history search
//   - Ctrl+C: interrupt
//   - Ctrl+D: EOF when the buffer is empty
//   - Arrow keys: move cursor / navigate history
//   - Ctrl+Left/Right: move by word
//   - Home/End, Delete: line navigation and forward delete
func NewDefaultKeyMap() *KeyMap {
	km := &KeyMap{
		controls: make(map[rune]KeyKind),
	}

	km.controls['\r'] = KeyEnter
	km.controls['\n'] = KeyEnter
	km.controls['\x7f'] = KeyBackspace
	km.controls['\b'] = KeyCtrlBackspace   // Ctrl+Backspace
	km.controls['\x17'] = KeyCtrlBackspace // Ctrl+W
	km.controls['\x01'] = KeyHome          // Ctrl+A
	km.controls['\x05'] = KeyEnd           // Ctrl+E
	km.controls['\x15'] = KeyDeleteLine    // Ctrl+U
	km.controls['\x0b'] = KeyKillToEnd     // Ctrl+K
	km.controls['\x12'] = KeySearch        // Ctrl+R
	km.controls['\x03'] = KeyInterrupt     // Ctrl+C
	km.controls['\x04'] = KeyEOF           // Ctrl+D

	// Escape sequences, in match-priority order.
	km.sequences = []SequenceBinding{
		{"[A", KeyArrowUp},
		{"[B", KeyArrowDown},
		{"[C", KeyArrowRight},
		{"[D", KeyArrowLeft},
		{"[1;5C", KeyCtrlArrowRight}, // Ctrl+Right
		{"[1;5D", KeyCtrlArrowLeft},  // Ctrl+Left
		{"[H", KeyHome},
		{"[F", KeyEnd},
		{"[3~", KeyDelete},
	}

	return km
}

// Bind adds or updates a binding for a single control rune.
//
// Example:
//
//	keyMap := readln.NewDefaultKeyMap()
//	// Bind Ctrl+L (\x0C) to clear the current line
//	keyMap.Bind('\x0C', readln.KeyDeleteLine)
func (km *KeyMap) Bind(key rune, kind KeyKind) {
	km.controls[key] = kind
}

// BindSequence adds or updates an escape sequence binding. The sequence must
// not include the initial ESC character. An existing binding for the same
// sequence is replaced in place, keeping its match priority; a new sequence
// is appended with the lowest priority.
//
// Example:
//
//	keyMap := readln.NewDefaultKeyMap()
//	// Bind Shift+Tab (ESC + [Z) to history-up
//	keyMap.BindSequence("[Z", readln.KeyArrowUp)
func (km *KeyMap) BindSequence(seq string, kind KeyKind) {
	for i, sb := range km.sequences {
		if sb.Seq == seq {
			km.sequences[i].Kind = kind
			return
		}
	}
	km.sequences = append(km.sequences, SequenceBinding{Seq: seq, Kind: kind})
}

// ControlKind returns the kind bound to a control rune, or KeyNone.
func (km *KeyMap) ControlKind(r rune) KeyKind {
	if km == nil || km.controls == nil {
		return KeyNone
	}
	if kind, exists := km.controls[r]; exists {
		return kind
	}
	return KeyNone
}

// maxSequenceLen returns the length of the longest bound escape sequence.
// The decoder's read budget for one escape is this length plus one.
func (km *KeyMap) maxSequenceLen() int {
	maxLen := 0
	for _, sb := range km.sequences {
		if len(sb.Seq) > maxLen {
			maxLen = len(sb.Seq)
		}
	}
	return maxLen
}
