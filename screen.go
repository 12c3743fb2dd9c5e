package cmenu

import (
	"bytes"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Screen manages the terminal display with double buffering and diff-based updates.
type Screen struct {
	front  *Buffer   // What's currently displayed
	back   *Buffer   // What we're drawing to
	writer io.Writer // Output destination (the controlling tty)
	fd     int       // File descriptor for terminal operations

	width  int
	height int

	// Terminal state
	origState *term.State
	inRawMode bool

	// Resize notifications, drained by the event loop between frames
	sigChan chan os.Signal

	// Cursor placement after each flush
	cursorX, cursorY int

	// Rendering state
	lastStyle Style        // Last style we emitted (for optimization)
	buf       bytes.Buffer // Reusable buffer for building output
}

// Size represents dimensions.
type Size struct {
	Width  int
	Height int
}

// NewScreen creates a screen rendering to w and querying the terminal on fd.
func NewScreen(fd int, w io.Writer) *Screen {
	s := &Screen{
		writer:    w,
		fd:        fd,
		sigChan:   make(chan os.Signal, 1),
		lastStyle: DefaultStyle(),
	}
	s.front = NewBuffer(0, 0)
	s.back = NewBuffer(0, 0)
	s.QuerySize()
	return s
}

// getTerminalSize returns the current terminal dimensions.
func getTerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// QuerySize re-reads the terminal dimensions and resizes both buffers. The
// next flush repaints every cell.
func (s *Screen) QuerySize() Size {
	width, height, err := getTerminalSize(s.fd)
	if err != nil || width <= 0 || height <= 0 {
		// Default fallback
		width, height = 80, 24
	}
	s.resize(width, height)
	return s.Size()
}

func (s *Screen) resize(width, height int) {
	s.width = width
	s.height = height
	s.back.Resize(width, height)
	s.front.Resize(width, height)
	s.Invalidate()
}

// Invalidate forgets what is on the terminal so the next flush writes
// everything after clearing the display.
func (s *Screen) Invalidate() {
	// a NUL-styled front buffer never equals a drawn cell
	s.front.Fill(Cell{Rune: -1})
	s.buf.WriteString("\x1b[2J")
}

// Size returns the current screen dimensions.
func (s *Screen) Size() Size {
	return Size{Width: s.width, Height: s.height}
}

// Buffer returns the back buffer for drawing.
func (s *Screen) Buffer() *Buffer {
	return s.back
}

// Resized reports, without blocking, whether a SIGWINCH arrived since the
// last call.
func (s *Screen) Resized() bool {
	select {
	case <-s.sigChan:
		return true
	default:
		return false
	}
}

// EnterRawMode puts the terminal into raw mode for TUI operation.
func (s *Screen) EnterRawMode() error {
	if s.inRawMode {
		return nil
	}

	state, err := term.MakeRaw(s.fd)
	if err != nil {
		return errors.Wrap(err, "failed to set raw mode")
	}
	s.origState = state
	s.inRawMode = true

	// Start listening for resize signals
	signal.Notify(s.sigChan, syscall.SIGWINCH)

	s.writeString("\x1b[?1049h") // Enter alternate screen
	s.writeString("\x1b[2J")     // Clear screen
	s.writeString("\x1b[H")      // Move cursor to home position
	s.writeString("\x1b[?25l")   // Hide cursor
	return nil
}

// ExitRawMode restores the terminal to its original state.
func (s *Screen) ExitRawMode() error {
	if !s.inRawMode {
		return nil
	}

	s.writeString("\x1b[0m")     // Reset style
	s.writeString("\x1b[?25h")   // Show cursor
	s.writeString("\x1b[?1049l") // Exit alternate screen

	signal.Stop(s.sigChan)
	s.inRawMode = false

	if s.origState != nil {
		if err := term.Restore(s.fd, s.origState); err != nil {
			return errors.Wrap(err, "failed to restore terminal")
		}
	}
	return nil
}

// SetCursor records where the cursor is left after the next flush.
func (s *Screen) SetCursor(x, y int) {
	s.cursorX, s.cursorY = x, y
}

// Flush renders the back buffer to the terminal using per-cell diff.
// Only cells that actually changed are written, with cursor positioning for each run.
func (s *Screen) Flush() error {
	cursorX, cursorY := -1, -1

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			backCell := s.back.Get(x, y)
			if backCell == s.front.Get(x, y) {
				continue
			}
			s.front.Set(x, y, backCell)

			// skip placeholder cells (second half of double-width chars)
			if backCell.Rune == 0 {
				continue
			}

			if cursorX != x || cursorY != y {
				s.buf.WriteString("\x1b[")
				s.writeIntToBuf(y + 1)
				s.buf.WriteByte(';')
				s.writeIntToBuf(x + 1)
				s.buf.WriteByte('H')
			}

			s.writeCell(backCell)
			rw := runewidth.RuneWidth(backCell.Rune)
			if rw == 0 {
				rw = 1 // zero-width chars still advance cursor by 1 in most terminals
			}
			cursorX = x + rw
			cursorY = y
		}
	}

	if s.buf.Len() == 0 {
		return nil
	}

	s.buf.WriteString("\x1b[0m")
	s.lastStyle = DefaultStyle()
	s.buf.WriteString("\x1b[")
	s.writeIntToBuf(s.cursorY + 1)
	s.buf.WriteByte(';')
	s.writeIntToBuf(s.cursorX + 1)
	s.buf.WriteByte('H')

	_, err := s.writer.Write(s.buf.Bytes())
	s.buf.Reset()
	if err != nil {
		return errors.Wrap(err, "write to terminal")
	}
	return nil
}

// writeIntToBuf writes an integer to the buffer without allocation.
func (s *Screen) writeIntToBuf(n int) {
	if n == 0 {
		s.buf.WriteByte('0')
		return
	}
	var scratch [20]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	s.buf.Write(scratch[i:])
}

// writeCell writes a cell's style and rune to the buffer.
func (s *Screen) writeCell(cell Cell) {
	// Only emit style changes
	if !cell.Style.Equal(s.lastStyle) {
		s.writeStyle(cell.Style)
		s.lastStyle = cell.Style
	}
	s.buf.WriteRune(cell.Rune)
}

// writeStyle writes ANSI escape codes for the given style.
func (s *Screen) writeStyle(style Style) {
	// Reset first if we need to turn off attributes
	s.buf.WriteString("\x1b[0")

	if style.Attr.Has(AttrBold) {
		s.buf.WriteString(";1")
	}
	if style.Attr.Has(AttrDim) {
		s.buf.WriteString(";2")
	}
	if style.Attr.Has(AttrUnderline) {
		s.buf.WriteString(";4")
	}
	if style.Attr.Has(AttrBlink) {
		s.buf.WriteString(";5")
	}
	if style.Attr.Has(AttrInverse) {
		s.buf.WriteString(";7")
	}

	s.writeColor(style.FG, true)
	s.writeColor(style.BG, false)

	s.buf.WriteByte('m')
}

// writeColor writes the ANSI escape code for a color (allocation-free).
func (s *Screen) writeColor(c Color, fg bool) {
	switch c.Mode {
	case ColorDefault:
		if fg {
			s.buf.WriteString(";39")
		} else {
			s.buf.WriteString(";49")
		}
	case Color16:
		base := 30
		if !fg {
			base = 40
		}
		if c.Index >= 8 {
			// Bright colors
			base += 60
			s.buf.WriteByte(';')
			s.writeIntToBuf(base + int(c.Index-8))
		} else {
			s.buf.WriteByte(';')
			s.writeIntToBuf(base + int(c.Index))
		}
	case Color256:
		if fg {
			s.buf.WriteString(";38;5;")
		} else {
			s.buf.WriteString(";48;5;")
		}
		s.writeIntToBuf(int(c.Index))
	}
}

// writeString is a helper to write a string directly to the terminal.
func (s *Screen) writeString(str string) {
	io.WriteString(s.writer, str)
}
