package cmenu

import "github.com/mattn/go-runewidth"

// Buffer is a 2D grid of cells representing a drawable surface.
//
// Wide characters occupy their first cell; the cells they cover to the right
// hold a zero rune placeholder which the screen skips when flushing.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a new buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates.
// Returns an empty cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set sets the cell at the given coordinates.
// Does nothing if out of bounds.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// Fill fills the entire buffer with the given cell.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// Clear clears the buffer to empty cells with default style.
func (b *Buffer) Clear() {
	b.Fill(EmptyCell())
}

// HLine draws a horizontal line of the given rune.
func (b *Buffer) HLine(x, y, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		b.Set(x+i, y, NewCell(r, style))
	}
}

// WriteString writes a string at the given coordinates with the given style.
// Returns the number of columns consumed.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	return b.WriteRunes(x, y, []rune(s), style)
}

// WriteRunes writes runes starting at x, advancing by each rune's display
// width. Writing stops at the right edge; a wide rune that would straddle
// the edge is not drawn.
func (b *Buffer) WriteRunes(x, y int, rs []rune, style Style) int {
	start := x
	for _, r := range rs {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			// combining marks have no cell of their own here
			continue
		}
		if x+w > b.width || !b.InBounds(x, y) {
			break
		}
		b.Set(x, y, NewCell(r, style))
		for i := 1; i < w; i++ {
			b.Set(x+i, y, NewCell(0, style))
		}
		x += w
	}
	return x - start
}

// GetLine returns the content of a single line as a string (trimmed).
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var line []byte
	lastNonSpace := -1
	for x := 0; x < b.width; x++ {
		r := b.Get(x, y).Rune
		if r == 0 {
			continue
		}
		line = append(line, string(r)...)
		if r != ' ' {
			lastNonSpace = len(line)
		}
	}
	if lastNonSpace >= 0 {
		return string(line[:lastNonSpace])
	}
	return ""
}

// Resize resizes the buffer to new dimensions, clearing its content.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == b.width && height == b.height && b.cells != nil {
		return
	}
	b.cells = make([]Cell, width*height)
	b.width = width
	b.height = height
	b.Clear()
}
