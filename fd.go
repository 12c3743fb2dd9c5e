package cmenu

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// FD is a raw, blocking file descriptor. Unlike *os.File it bypasses the
// runtime poller, so reads block the calling goroutine and EINTR reaches
// the caller instead of being retried silently.
type FD int

// Read implements io.Reader. A zero count with a nil error is end of stream.
func (fd FD) Read(p []byte) (int, error) {
	n, err := unix.Read(int(fd), p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Write implements io.Writer. Short writes are returned as is.
func (fd FD) Write(p []byte) (int, error) {
	n, err := unix.Write(int(fd), p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Close closes the descriptor.
func (fd FD) Close() error {
	return unix.Close(int(fd))
}

// CheckFD fails if fd is not an open descriptor.
func CheckFD(fd int, what string) error {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return ioError(err, "cannot fstat() "+what+" fd")
	}
	return nil
}

// readiness is the outcome of one wait.
type readiness struct {
	input       bool // protocol descriptor is readable or hung up
	terminal    bool // terminal descriptor is readable
	interrupted bool // the wait was cut short by a signal
}

// waitReady blocks until the input or terminal descriptor is readable, a
// signal interrupts the wait, or tick elapses. A negative input descriptor
// is left out of the set.
func waitReady(input, terminal int, tick time.Duration) (readiness, error) {
	fds := make([]unix.PollFd, 0, 2)
	fds = append(fds, unix.PollFd{Fd: int32(terminal), Events: unix.POLLIN})
	if input >= 0 {
		fds = append(fds, unix.PollFd{Fd: int32(input), Events: unix.POLLIN})
	}

	n, err := unix.Poll(fds, int(tick/time.Millisecond))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return readiness{interrupted: true}, nil
		}
		return readiness{}, ioError(err, "poll")
	}

	var r readiness
	if n == 0 {
		return r, nil
	}
	r.terminal = fds[0].Revents != 0
	if input >= 0 {
		r.input = fds[1].Revents != 0
	}
	return r, nil
}
