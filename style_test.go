package cmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in   string
		want RawStyle
	}{
		{"normal", RawStyle{FG: -1, BG: -1}},
		{"bold", RawStyle{Attr: AttrBold, FG: -1, BG: -1}},
		{"bold,f=7,b=2", RawStyle{Attr: AttrBold, FG: 7, BG: 2}},
		{"reverse", RawStyle{Attr: AttrInverse, FG: -1, BG: -1}},
		{"standout,underline", RawStyle{Attr: AttrInverse | AttrUnderline, FG: -1, BG: -1}},
		{"dim,blink,b=200", RawStyle{Attr: AttrDim | AttrBlink, FG: -1, BG: 200}},
		{"f=32767", RawStyle{FG: 32767, BG: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStyleErrors(t *testing.T) {
	for _, in := range []string{"", "italic", "bold,", "f=", "f=-1", "b=x", "f=32768", "F=1"} {
		_, err := ParseStyle(in)
		assert.Error(t, err, "%q", in)
	}
}

func TestRawStyleString(t *testing.T) {
	assert.Equal(t, "normal", RawStyle{FG: -1, BG: -1}.String())
	assert.Equal(t, "bold,f=7,b=2", DefaultHeaderStyle.String())

	rs, err := ParseStyle(DefaultHighlightStyle.String())
	require.NoError(t, err)
	assert.Equal(t, DefaultHighlightStyle, rs)
}

func TestRawStyleResolve(t *testing.T) {
	assert.Equal(t, DefaultStyle(), DefaultEntryStyle.Resolve())

	got := DefaultHeaderStyle.Resolve()
	assert.Equal(t, Style{FG: White, BG: Green, Attr: AttrBold}, got)

	got = RawStyle{FG: 200, BG: 15}.Resolve()
	assert.Equal(t, PaletteColor(200), got.FG)
	assert.Equal(t, BasicColor(15), got.BG)

	assert.Equal(t, DefaultStyle(), RawStyle{Attr: AttrBold, FG: 300, BG: 1}.Resolve())
}

func TestAttribute(t *testing.T) {
	a := AttrNone.With(AttrBold).With(AttrInverse)
	assert.True(t, a.Has(AttrBold))
	assert.True(t, a.Has(AttrInverse))
	assert.False(t, a.Has(AttrDim))
}
