package readln

// runeSource is the single capability the decoder needs from a terminal:
// block until one input rune is available and return it.
type runeSource interface {
	ReadRune() (rune, int, error)
}

// decoder turns raw terminal input into logical Keys. It resolves multi-rune
// escape sequences against the key map's ordered sequence table and maps
// control runes through the control table; everything printable becomes a
// KeyChar.
type decoder struct {
	source runeSource
	keyMap *KeyMap
}

func newDecoder(source runeSource, keyMap *KeyMap) *decoder {
	if keyMap == nil {
		keyMap = NewDefaultKeyMap()
	}
	return &decoder{source: source, keyMap: keyMap}
}

const escIntroducer = '\x1b'

// ReadKey blocks until one logical key event is available. I/O failures from
// the underlying source are returned unchanged; decoding ambiguity is not an
// error and yields a KeyNone key instead.
func (d *decoder) ReadKey() (Key, error) {
	r, _, err := d.source.ReadRune()
	if err != nil {
		return Key{}, err
	}

	if r == escIntroducer {
		return d.readEscape()
	}
	if kind := d.keyMap.ControlKind(r); kind != KeyNone {
		return Key{Kind: kind}, nil
	}
	if r >= 32 {
		return Key{Kind: KeyChar, Rune: r}, nil
	}
	return Key{}, nil
}

// readEscape consumes runes after an ESC until a bound sequence completes.
// Each rune is compared against every table entry at the current position;
// an entry wins when the rune matches its final position. The read budget is
// the longest bound sequence length plus one; when it is exhausted the
// consumed runes are discarded and KeyNone is returned.
func (d *decoder) readEscape() (Key, error) {
	budget := d.keyMap.maxSequenceLen() + 1

	for pos := 0; pos < budget; pos++ {
		r, _, err := d.source.ReadRune()
		if err != nil {
			return Key{}, err
		}

		for _, sb := range d.keyMap.sequences {
			if pos >= len(sb.Seq) {
				continue
			}
			if rune(sb.Seq[pos]) == r && pos == len(sb.Seq)-1 {
				return Key{Kind: sb.Kind}, nil
			}
		}
	}

	return Key{}, nil
}
