// Package cmenu implements a terminal list picker driven by a controller
// process over a pair of file descriptors.
//
// The controller streams a small line protocol into the picker (add, replace,
// delete and clear rows, batched into acknowledged envelopes) while the user
// browses. When the user commits a row, its index is written back on the
// output descriptor.
package cmenu

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Attribute represents text styling attributes that can be combined.
type Attribute uint8

const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim
	AttrUnderline
	AttrBlink
	AttrInverse
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// ColorMode represents the color mode for a color value.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // Terminal default
	Color16                       // Basic 16 colors (0-15)
	Color256                      // 256 color palette (0-255)
)

// Color represents a terminal color.
type Color struct {
	Mode  ColorMode
	Index uint8
}

// DefaultColor returns the terminal's default color.
func DefaultColor() Color {
	return Color{Mode: ColorDefault}
}

// BasicColor returns one of the 16 basic terminal colors.
func BasicColor(index uint8) Color {
	return Color{Mode: Color16, Index: index}
}

// PaletteColor returns one of the 256 palette colors.
func PaletteColor(index uint8) Color {
	return Color{Mode: Color256, Index: index}
}

// Standard basic colors for convenience.
var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)
)

// Style combines foreground, background colors and attributes.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns a style with default colors and no attributes.
func DefaultStyle() Style {
	return Style{
		FG: DefaultColor(),
		BG: DefaultColor(),
	}
}

// Equal returns true if two styles are equal.
func (s Style) Equal(other Style) bool {
	return s == other
}

// Cell represents a single character cell on the terminal.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a cell with a space and default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// NewCell creates a cell with the given rune and style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}

// RawStyle is a style as written on the command line: attribute flags plus
// foreground and background color numbers, where -1 means the terminal
// default.
type RawStyle struct {
	Attr Attribute
	FG   int
	BG   int
}

// Default raw styles for the three row kinds.
var (
	DefaultHeaderStyle    = RawStyle{Attr: AttrBold, FG: 7, BG: 2}
	DefaultHighlightStyle = RawStyle{FG: 7, BG: 4}
	DefaultEntryStyle     = RawStyle{FG: -1, BG: -1}
)

// maxColor bounds color numbers the same way curses color indices are bounded.
const maxColor = 32767

// ParseStyle parses a comma separated style description such as
// "bold,f=7,b=2". Recognised segments are normal, bold, blink, dim,
// reverse, standout, underline, f=<n> and b=<n>. Colors not mentioned stay
// at the terminal default.
func ParseStyle(s string) (RawStyle, error) {
	rs := RawStyle{FG: -1, BG: -1}
	for _, seg := range strings.Split(s, ",") {
		switch seg {
		case "normal":
		case "bold":
			rs.Attr = rs.Attr.With(AttrBold)
		case "blink":
			rs.Attr = rs.Attr.With(AttrBlink)
		case "dim":
			rs.Attr = rs.Attr.With(AttrDim)
		case "reverse", "standout":
			rs.Attr = rs.Attr.With(AttrInverse)
		case "underline":
			rs.Attr = rs.Attr.With(AttrUnderline)
		default:
			switch {
			case strings.HasPrefix(seg, "f="):
				c, err := parseColor(seg[2:])
				if err != nil {
					return RawStyle{}, err
				}
				rs.FG = c
			case strings.HasPrefix(seg, "b="):
				c, err := parseColor(seg[2:])
				if err != nil {
					return RawStyle{}, err
				}
				rs.BG = c
			default:
				return RawStyle{}, errors.Errorf("invalid style segment: %q", seg)
			}
		}
	}
	return rs, nil
}

func parseColor(s string) (int, error) {
	n, err := ParseUint(s, maxColor)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid color number %q", s)
	}
	return int(n), nil
}

// String renders the style back into the command line syntax.
func (rs RawStyle) String() string {
	var segs []string
	if rs.Attr.Has(AttrBold) {
		segs = append(segs, "bold")
	}
	if rs.Attr.Has(AttrDim) {
		segs = append(segs, "dim")
	}
	if rs.Attr.Has(AttrUnderline) {
		segs = append(segs, "underline")
	}
	if rs.Attr.Has(AttrBlink) {
		segs = append(segs, "blink")
	}
	if rs.Attr.Has(AttrInverse) {
		segs = append(segs, "reverse")
	}
	if rs.FG >= 0 {
		segs = append(segs, "f="+strconv.Itoa(rs.FG))
	}
	if rs.BG >= 0 {
		segs = append(segs, "b="+strconv.Itoa(rs.BG))
	}
	if len(segs) == 0 {
		return "normal"
	}
	return strings.Join(segs, ",")
}

// Resolve turns the raw description into a renderer style. Colors outside
// the 256 color palette fall back to the plain style, mirroring a terminal
// that cannot allocate the requested pair.
func (rs RawStyle) Resolve() Style {
	if rs.FG > 255 || rs.BG > 255 {
		return DefaultStyle()
	}
	return Style{FG: resolveColor(rs.FG), BG: resolveColor(rs.BG), Attr: rs.Attr}
}

func resolveColor(n int) Color {
	switch {
	case n < 0:
		return DefaultColor()
	case n < 16:
		return BasicColor(uint8(n))
	default:
		return PaletteColor(uint8(n))
	}
}

// Theme holds the resolved styles used when drawing the list.
type Theme struct {
	Header    Style
	Highlight Style
	Entry     Style
}

// NewTheme resolves the three raw styles once, at start-up.
func NewTheme(header, highlight, entry RawStyle) Theme {
	return Theme{
		Header:    header.Resolve(),
		Highlight: highlight.Resolve(),
		Entry:     entry.Resolve(),
	}
}
