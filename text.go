package cmenu

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// placeholder replaces runes that have no defined display width.
const placeholder = '.'

// Text is one decoded cell value. It remembers the last width it was
// truncated for so redraws at an unchanged width cost nothing.
type Text struct {
	runes     []rune
	truncated int
	lastWidth int
}

// NewText decodes s as UTF-8. Invalid sequences decode to U+FFFD.
func NewText(s string) *Text {
	return &Text{runes: []rune(s), lastWidth: -1}
}

// NewTextBytes decodes a protocol line without its terminator.
func NewTextBytes(b []byte) *Text {
	rs := make([]rune, 0, utf8.RuneCount(b))
	for len(b) > 0 {
		r, n := utf8.DecodeRune(b)
		rs = append(rs, r)
		b = b[n:]
	}
	return &Text{runes: rs, lastWidth: -1}
}

// String returns the text as stored, including placeholder substitutions.
func (t *Text) String() string {
	return string(t.runes)
}

// Len returns the number of runes in the text.
func (t *Text) Len() int {
	return len(t.runes)
}

// Runes returns the leading n runes. The slice aliases the text.
func (t *Text) Runes(n int) []rune {
	if n > len(t.runes) {
		n = len(t.runes)
	}
	return t.runes[:n]
}

// Truncate returns how many leading runes fit in width terminal cells.
// Runes without a defined width count as one cell and are replaced by a
// placeholder glyph so they render predictably.
func (t *Text) Truncate(width int) int {
	if t.lastWidth == width {
		return t.truncated
	}

	cur := 0
	i := 0
	for ; i < len(t.runes); i++ {
		w := runeWidth(t.runes[i])
		if w < 0 {
			t.runes[i] = placeholder
			w = 1
		}
		cur += w
		if cur > width {
			break
		}
	}

	t.truncated = i
	t.lastWidth = width
	return i
}

// runeWidth reports the cell width of r, or -1 when r has none.
func runeWidth(r rune) int {
	if unicode.IsControl(r) || !utf8.ValidRune(r) {
		return -1
	}
	return runewidth.RuneWidth(r)
}
