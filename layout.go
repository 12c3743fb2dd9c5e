package cmenu

import (
	"math"
	"math/bits"
)

// Column is one column of the list. A negative weight marks a fixed width
// of -Weight cells; otherwise the column takes Weight shares of whatever
// the fixed columns leave over.
type Column struct {
	Weight int32
	Header *Text

	// Width is the current width in cells, set by Columns.Layout.
	Width int
}

// Fixed reports whether the column has a literal width.
func (c *Column) Fixed() bool {
	return c.Weight < 0
}

// Columns is the ordered set of columns with the totals needed for layout.
type Columns struct {
	cols     []Column
	denom    uint64 // sum of proportional weights, at least 1
	fixedSum uint64

	needMoreSpace bool
}

// NewColumns computes the layout totals. The caller validates that the sums
// fit; see ParseHeader and Config.Validate.
func NewColumns(cols []Column) *Columns {
	c := &Columns{cols: cols}
	for i := range c.cols {
		w := int64(c.cols[i].Weight)
		if w < 0 {
			c.fixedSum += uint64(-w)
		} else {
			c.denom += uint64(w)
		}
	}
	if c.denom == 0 {
		c.denom = 1
	}
	return c
}

// Len returns the number of columns.
func (c *Columns) Len() int {
	return len(c.cols)
}

// At returns the i-th column.
func (c *Columns) At(i int) *Column {
	return &c.cols[i]
}

// FixedSum returns the total width of the fixed columns.
func (c *Columns) FixedSum() int {
	if c.fixedSum > math.MaxInt {
		return math.MaxInt
	}
	return int(c.fixedSum)
}

// NeedMoreSpace reports whether the last Layout call lacked room for the
// fixed columns.
func (c *Columns) NeedMoreSpace() bool {
	return c.needMoreSpace
}

// Layout apportions available cells between the columns. Fixed columns get
// their declared width, proportional columns split the rest by weight, and
// the rounding leftover goes to the last proportional column so the widths
// add up to available exactly. When the fixed columns alone don't fit it
// returns false and leaves the widths untouched.
func (c *Columns) Layout(available int) bool {
	if available < 0 || uint64(available) < c.fixedSum {
		c.needMoreSpace = true
		return false
	}
	remaining := uint64(available) - c.fixedSum

	var sum uint64
	last := -1
	for i := range c.cols {
		col := &c.cols[i]
		if col.Weight < 0 {
			col.Width = int(-int64(col.Weight))
			continue
		}
		// weight <= denom, so the quotient fits and Div64 cannot panic
		hi, lo := bits.Mul64(remaining, uint64(col.Weight))
		w, _ := bits.Div64(hi, lo, c.denom)
		col.Width = int(w)
		sum += w
		last = i
	}
	if last >= 0 {
		c.cols[last].Width += int(remaining - sum)
	}

	c.needMoreSpace = false
	return true
}
