package readln

// LineBuffer is an editable line of text with a cursor. The buffer is a rune
// slice and the cursor is a rune offset in [0, Len()], so edits never split a
// multi-byte character. All mutations preserve that invariant.
type LineBuffer struct {
	runes  []rune
	cursor int
}

// NewLineBuffer creates a buffer holding text with the cursor at the end.
func NewLineBuffer(text string) *LineBuffer {
	runes := []rune(text)
	return &LineBuffer{runes: runes, cursor: len(runes)}
}

// String returns the buffer contents.
func (b *LineBuffer) String() string {
	return string(b.runes)
}

// Cursor returns the cursor offset in runes.
func (b *LineBuffer) Cursor() int {
	return b.cursor
}

// Len returns the buffer length in runes.
func (b *LineBuffer) Len() int {
	return len(b.runes)
}

// Set replaces the contents and moves the cursor to the end.
func (b *LineBuffer) Set(text string) {
	b.runes = []rune(text)
	b.cursor = len(b.runes)
}

// Apply performs the state transition for one key event. Keys the editor does
// not handle (submit, history navigation, KeyNone) leave the buffer and
// cursor unchanged.
func (b *LineBuffer) Apply(key Key) {
	switch key.Kind {
	case KeyChar:
		b.Insert(key.Rune)
	case KeyBackspace:
		b.DeleteBack()
	case KeyCtrlBackspace:
		b.DeleteWordBack()
	case KeyArrowLeft:
		b.MoveLeft()
	case KeyArrowRight:
		b.MoveRight()
	case KeyCtrlArrowLeft:
		b.MoveWordLeft()
	case KeyCtrlArrowRight:
		b.MoveWordRight()
	case KeyHome:
		b.cursor = 0
	case KeyEnd:
		b.cursor = len(b.runes)
	case KeyDelete:
		b.DeleteForward()
	case KeyDeleteLine:
		b.runes = b.runes[:0]
		b.cursor = 0
	case KeyKillToEnd:
		b.runes = b.runes[:b.cursor]
	}
}

// Insert places r at the cursor and advances the cursor past it.
func (b *LineBuffer) Insert(r rune) {
	b.runes = append(b.runes[:b.cursor], append([]rune{r}, b.runes[b.cursor:]...)...)
	b.cursor++
}

// DeleteBack removes the rune immediately before the cursor. No-op at the
// start of the buffer.
func (b *LineBuffer) DeleteBack() {
	if b.cursor > 0 {
		b.runes = append(b.runes[:b.cursor-1], b.runes[b.cursor:]...)
		b.cursor--
	}
}

// DeleteForward removes the rune at the cursor. No-op at the end.
func (b *LineBuffer) DeleteForward() {
	if b.cursor < len(b.runes) {
		b.runes = append(b.runes[:b.cursor], b.runes[b.cursor+1:]...)
	}
}

// DeleteWordBack removes the maximal run of non-space runes immediately
// before the cursor and moves the cursor to the start of the removed range.
// A space just before the cursor stays in place.
func (b *LineBuffer) DeleteWordBack() {
	start := b.scanWordLeft()
	b.runes = append(b.runes[:start], b.runes[b.cursor:]...)
	b.cursor = start
}

// MoveLeft moves the cursor one rune left, clamping at 0.
func (b *LineBuffer) MoveLeft() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveRight moves the cursor one rune right, clamping at the buffer length.
func (b *LineBuffer) MoveRight() {
	if b.cursor < len(b.runes) {
		b.cursor++
	}
}

// MoveWordLeft moves the cursor to the start of the non-space run before it,
// without mutating the buffer.
func (b *LineBuffer) MoveWordLeft() {
	b.cursor = b.scanWordLeft()
}

// MoveWordRight advances the cursor to the next space, or to the end of the
// buffer if there is none. The cursor always advances by at least one rune
// unless it is already at the end.
func (b *LineBuffer) MoveWordRight() {
	for b.cursor < len(b.runes) {
		b.cursor++
		if b.cursor < len(b.runes) && b.runes[b.cursor] == ' ' {
			break
		}
	}
}

// scanWordLeft finds the position just after the nearest space before the
// cursor, or 0 if there is none. Word boundaries use the single space
// delimiter, not general whitespace.
func (b *LineBuffer) scanWordLeft() int {
	pos := b.cursor
	for pos > 0 && b.runes[pos-1] != ' ' {
		pos--
	}
	return pos
}
