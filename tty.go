package cmenu

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// TTY is the controlling terminal: a Screen for output and an Input for
// keys, both on /dev/tty so the process's own stdin and stdout stay free
// for the controller.
type TTY struct {
	*Screen
	*Input

	fd   int
	file *os.File
}

// OpenTTY opens the controlling terminal. The descriptor is opened
// blocking, outside the runtime poller, so the event loop can poll it
// alongside the protocol descriptor.
func OpenTTY() (*TTY, error) {
	fd, err := unix.Open("/dev/tty", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, ioError(err, "open /dev/tty")
	}
	if !term.IsTerminal(fd) {
		unix.Close(fd)
		return nil, ioError(errors.New("not a terminal"), "open /dev/tty")
	}
	return newTTY(fd), nil
}

func newTTY(fd int) *TTY {
	// os.File loops over short writes and EINTR for us
	file := os.NewFile(uintptr(fd), "/dev/tty")
	t := &TTY{fd: fd, file: file}
	t.Screen = NewScreen(fd, file)
	t.Input = NewInput(FD(fd), fd, t.Screen.Resized)
	return t
}

// Fd returns the terminal descriptor.
func (t *TTY) Fd() int {
	return t.fd
}

// Start enters raw mode on the alternate screen.
func (t *TTY) Start() error {
	if err := t.EnterRawMode(); err != nil {
		return ioError(err, "start terminal")
	}
	return nil
}

// Close restores the terminal and closes the descriptor.
func (t *TTY) Close() error {
	err := t.ExitRawMode()
	if cerr := t.file.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return ioError(err, "restore terminal")
	}
	return nil
}
