package cmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func row(cells ...string) Row {
	r := make(Row, len(cells))
	for i, c := range cells {
		r[i] = NewText(c)
	}
	return r
}

func names(l *List) []string {
	out := make([]string, l.Len())
	for i := range out {
		out[i] = l.At(i)[0].String()
	}
	return out
}

func filled(cells ...string) *List {
	l := NewList(columns(1))
	for _, c := range cells {
		l.Add(row(c))
	}
	return l
}

func TestListAdd(t *testing.T) {
	l := filled("a", "b")
	l.MoveDown(1)
	l.Add(row("c"))
	assert.Equal(t, []string{"a", "b", "c"}, names(l))
	assert.Equal(t, 1, l.Selected())
}

func TestListDelete(t *testing.T) {
	t.Run("before selection", func(t *testing.T) {
		l := filled("a", "b", "c")
		l.MoveDown(2)
		assert.True(t, l.Delete(0))
		assert.Equal(t, []string{"b", "c"}, names(l))
		assert.Equal(t, 1, l.Selected())
	})
	t.Run("selected row", func(t *testing.T) {
		l := filled("a", "b", "c")
		l.MoveDown(1)
		assert.True(t, l.Delete(1))
		assert.Equal(t, []string{"a", "c"}, names(l))
		assert.Equal(t, 0, l.Selected())
	})
	t.Run("after selection", func(t *testing.T) {
		l := filled("a", "b", "c")
		assert.True(t, l.Delete(2))
		assert.Equal(t, 0, l.Selected())
	})
	t.Run("last selected row", func(t *testing.T) {
		l := filled("a", "b")
		l.Last()
		assert.True(t, l.Delete(1))
		assert.Equal(t, 0, l.Selected())
	})
	t.Run("only row", func(t *testing.T) {
		l := filled("a")
		assert.True(t, l.Delete(0))
		assert.Equal(t, 0, l.Len())
		assert.Equal(t, 0, l.Selected())
	})
	t.Run("out of range", func(t *testing.T) {
		l := filled("a", "b")
		l.MoveDown(1)
		assert.False(t, l.Delete(5))
		assert.Equal(t, []string{"a", "b"}, names(l))
		assert.Equal(t, 1, l.Selected())
	})
}

func TestListReplace(t *testing.T) {
	l := filled("a", "b")
	assert.True(t, l.Replace(1, row("z")))
	assert.Equal(t, []string{"a", "z"}, names(l))
	assert.False(t, l.Replace(2, row("y")))
	assert.Equal(t, []string{"a", "z"}, names(l))
}

func TestListClear(t *testing.T) {
	l := filled("a", "b", "c")
	l.Last()
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Selected())
	assert.Nil(t, l.At(0))
}

func TestListMoveSaturates(t *testing.T) {
	l := filled("a", "b", "c", "d")
	l.MoveUp(1)
	assert.Equal(t, 0, l.Selected())
	l.MoveDown(2)
	assert.Equal(t, 2, l.Selected())
	l.MoveDown(100)
	assert.Equal(t, 3, l.Selected())
	l.MoveUp(2)
	assert.Equal(t, 1, l.Selected())
	l.MoveUp(100)
	assert.Equal(t, 0, l.Selected())
	l.Last()
	assert.Equal(t, 3, l.Selected())
	l.First()
	assert.Equal(t, 0, l.Selected())
}

func TestListEmptyMoves(t *testing.T) {
	l := filled()
	l.MoveDown(3)
	l.Last()
	l.MoveUp(1)
	assert.Equal(t, 0, l.Selected())
}
