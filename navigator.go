package readln

// navigator drives history recall for one read session. It tracks a recall
// cursor hpos in [0, len(entries)], where len(entries) means "not recalling,
// editing the fresh line". Recalled entries are edited through lazily cloned
// shadow copies so the stored history is never mutated by browsing; one
// shadow per visited index is kept for the whole session, so leaving and
// revisiting an index keeps its edits.
type navigator struct {
	entries []string            // stored history, oldest first; never mutated here
	shadows map[int]*LineBuffer // edited working copies, keyed by history index
	fresh   *LineBuffer         // the in-progress line before any recall
	hpos    int
}

func newNavigator(entries []string) *navigator {
	return &navigator{
		entries: entries,
		shadows: make(map[int]*LineBuffer),
		fresh:   NewLineBuffer(""),
		hpos:    len(entries),
	}
}

// Active returns the buffer edits currently apply to: the fresh line, or the
// shadow copy of the recalled entry.
func (n *navigator) Active() *LineBuffer {
	if n.hpos >= len(n.entries) {
		return n.fresh
	}
	shadow, ok := n.shadows[n.hpos]
	if !ok {
		shadow = NewLineBuffer(n.entries[n.hpos])
		n.shadows[n.hpos] = shadow
	}
	return shadow
}

// Up moves one entry older, saturating at the oldest. The returned buffer
// has its cursor at the end of the recalled text.
func (n *navigator) Up() *LineBuffer {
	if n.hpos > 0 {
		n.hpos--
	}
	return n.rederive()
}

// Down moves one entry newer. Moving past the newest entry restores the
// fresh line with whatever was typed before the first recall; Down while
// already fresh is a no-op.
func (n *navigator) Down() *LineBuffer {
	if n.hpos < len(n.entries) {
		n.hpos++
	}
	return n.rederive()
}

// rederive re-resolves the active buffer after a recall move and places the
// cursor at its end.
func (n *navigator) rederive() *LineBuffer {
	buf := n.Active()
	buf.cursor = len(buf.runes)
	return buf
}

// Recalling reports whether the active buffer is a history shadow rather
// than the fresh line.
func (n *navigator) Recalling() bool {
	return n.hpos < len(n.entries)
}
