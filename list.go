package cmenu

// Row is one list entry: a cell value per column.
type Row []*Text

// List is the ordered, mutable collection of rows plus the selection.
// If the list is non-empty, 0 <= Selected() < Len(); otherwise Selected() is 0.
// The methods below are the only mutators.
type List struct {
	cols     *Columns
	rows     []Row
	selected int
}

// NewList creates an empty list over the given columns.
func NewList(cols *Columns) *List {
	return &List{cols: cols}
}

// Columns returns the column set.
func (l *List) Columns() *Columns {
	return l.cols
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.rows)
}

// At returns the row at index i, or nil if out of bounds.
func (l *List) At(i int) Row {
	if i < 0 || i >= len(l.rows) {
		return nil
	}
	return l.rows[i]
}

// Selected returns the selection index.
func (l *List) Selected() int {
	return l.selected
}

// Add appends a row. The selection is unchanged.
func (l *List) Add(row Row) {
	l.rows = append(l.rows, row)
}

// Delete removes the row at index, shifting later rows down. A selection at
// or after the removed row moves up by one. Returns false, changing
// nothing, if index is out of range.
func (l *List) Delete(index uint64) bool {
	if index >= uint64(len(l.rows)) {
		return false
	}
	i := int(index)

	if l.selected > 0 && l.selected >= i {
		l.selected--
	}

	copy(l.rows[i:], l.rows[i+1:])
	l.rows[len(l.rows)-1] = nil
	l.rows = l.rows[:len(l.rows)-1]
	return true
}

// Replace swaps the row at index for row. Returns false, changing nothing,
// if index is out of range.
func (l *List) Replace(index uint64, row Row) bool {
	if index >= uint64(len(l.rows)) {
		return false
	}
	l.rows[index] = row
	return true
}

// Clear drops every row and resets the selection.
func (l *List) Clear() {
	clear(l.rows)
	l.rows = l.rows[:0]
	l.selected = 0
}

// MoveUp moves the selection up by n rows, stopping at the first row.
func (l *List) MoveUp(n int) {
	if l.selected < n {
		l.selected = 0
	} else {
		l.selected -= n
	}
}

// MoveDown moves the selection down by n rows, stopping at the last row.
func (l *List) MoveDown(n int) {
	if len(l.rows) == 0 {
		l.selected = 0
		return
	}
	if n > len(l.rows)-1-l.selected {
		l.selected = len(l.rows) - 1
	} else {
		l.selected += n
	}
}

// First selects the first row.
func (l *List) First() {
	l.selected = 0
}

// Last selects the last row, or 0 on an empty list.
func (l *List) Last() {
	if len(l.rows) == 0 {
		l.selected = 0
		return
	}
	l.selected = len(l.rows) - 1
}
