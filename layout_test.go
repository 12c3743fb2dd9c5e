package cmenu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func columns(weights ...int32) *Columns {
	cols := make([]Column, len(weights))
	for i, w := range weights {
		cols[i] = Column{Weight: w, Header: NewText("")}
	}
	return NewColumns(cols)
}

func widths(c *Columns) []int {
	out := make([]int, c.Len())
	for i := range out {
		out[i] = c.At(i).Width
	}
	return out
}

func TestLayoutFixedAndProportional(t *testing.T) {
	c := columns(-10, 1)
	require.True(t, c.Layout(40))
	assert.Equal(t, []int{10, 30}, widths(c))
	assert.False(t, c.NeedMoreSpace())
}

func TestLayoutLeftoverGoesToLastProportional(t *testing.T) {
	c := columns(1, 1, 1, -2)
	require.True(t, c.Layout(12))
	assert.Equal(t, []int{3, 3, 4, 2}, widths(c))
}

func TestLayoutSumsToAvailable(t *testing.T) {
	for _, weights := range [][]int32{
		{1},
		{2, 1},
		{3, 5, 7},
		{-4, 1, -3, 2},
		{1, 0, 1},
	} {
		c := columns(weights...)
		for avail := c.FixedSum(); avail < 200; avail++ {
			require.True(t, c.Layout(avail))
			sum := 0
			for _, w := range widths(c) {
				assert.GreaterOrEqual(t, w, 0)
				sum += w
			}
			assert.Equal(t, avail, sum, "weights %v at %d", weights, avail)
		}
	}
}

func TestLayoutNeedMoreSpace(t *testing.T) {
	c := columns(-10, 1)
	require.True(t, c.Layout(40))

	assert.False(t, c.Layout(9))
	assert.True(t, c.NeedMoreSpace())
	assert.Equal(t, []int{10, 30}, widths(c), "widths untouched")

	assert.True(t, c.Layout(10))
	assert.False(t, c.NeedMoreSpace())
	assert.Equal(t, []int{10, 0}, widths(c))
}

func TestLayoutZeroWeights(t *testing.T) {
	c := columns(0, -5)
	require.True(t, c.Layout(8))
	assert.Equal(t, []int{3, 5}, widths(c))
}

func TestLayoutOnlyFixed(t *testing.T) {
	c := columns(-3, -4)
	require.True(t, c.Layout(100))
	assert.Equal(t, []int{3, 4}, widths(c))
}

func TestLayoutLargeWeights(t *testing.T) {
	c := columns(math.MaxInt32, math.MaxInt32)
	require.True(t, c.Layout(1<<40))
	assert.Equal(t, []int{1 << 39, 1 << 39}, widths(c))
}
