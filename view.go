package cmenu

import "fmt"

const needMoreSize = "(Need more size)"

// View draws the list onto a Buffer: the header row, then as many rows as
// fit with the selection kept mid-screen.
type View struct {
	list  *List
	theme Theme

	info string // transient overlay drawn over the header
}

// NewView draws list using theme.
func NewView(list *List, theme Theme) *View {
	return &View{list: list, theme: theme}
}

// ShowInfo turns on the position overlay.
func (v *View) ShowInfo() {
	v.info = fmt.Sprintf("--- %d/%d --- (ESC to hide this)", v.list.Selected()+1, v.list.Len())
}

// HideInfo turns the overlay off.
func (v *View) HideInfo() {
	v.info = ""
}

// Info returns the overlay text, empty when hidden.
func (v *View) Info() string {
	return v.info
}

// Layout recomputes column widths for width cells.
func (v *View) Layout(width int) bool {
	return v.list.Columns().Layout(width)
}

// Draw renders into buf and returns the row the cursor belongs on.
func (v *View) Draw(buf *Buffer) (cursorY int) {
	buf.Clear()
	width, height := buf.Width(), buf.Height()

	if height < 3 || v.list.Columns().NeedMoreSpace() {
		buf.WriteString(0, 0, needMoreSize, DefaultStyle())
		return 0
	}

	cols := v.list.Columns()
	headers := make(Row, cols.Len())
	for i := range headers {
		headers[i] = cols.At(i).Header
	}
	v.drawRow(buf, 0, width, headers, v.theme.Header)

	if v.info != "" {
		buf.WriteString(0, 0, v.info, DefaultStyle())
	}

	size := v.list.Len()
	if size == 0 {
		return 1
	}

	selected := v.list.Selected()
	from := selected - height/2
	if from < 0 {
		from = 0
	}
	to := from + height - 1
	if to > size {
		to = size
	}

	for i := from; i < to; i++ {
		y := i - from + 1
		style := v.theme.Entry
		if i == selected {
			style = v.theme.Highlight
			cursorY = y
		}
		v.drawRow(buf, y, width, v.list.At(i), style)
	}
	return cursorY
}

// drawRow fills the line with style, then writes each cell truncated to its
// column width.
func (v *View) drawRow(buf *Buffer, y, width int, row Row, style Style) {
	buf.HLine(0, y, width, ' ', style)

	cols := v.list.Columns()
	x := 0
	for i, t := range row {
		w := cols.At(i).Width
		n := t.Truncate(w)
		buf.WriteRunes(x, y, t.Runes(n), style)
		x += w
	}
}
