package cmenu

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// DefaultEscDelay is how long a lone ESC waits for the rest of a sequence.
const DefaultEscDelay = 50 * time.Millisecond

// Event is one unit of terminal input.
type Event struct {
	Key    string // raw key sequence; empty if none
	Resize bool   // the terminal changed size
}

// Input decodes keys from the terminal one at a time. Bytes read together
// (fast typing, pastes) are queued and handed out on later calls.
type Input struct {
	src      io.Reader
	fd       int
	escDelay time.Duration
	resized  func() bool

	pending []byte
	scratch [256]byte
}

// NewInput reads keys from src, whose descriptor fd is used to wait out the
// escape delay. resized reports pending resize notifications and may be nil.
func NewInput(src io.Reader, fd int, resized func() bool) *Input {
	return &Input{
		src:      src,
		fd:       fd,
		escDelay: DefaultEscDelay,
		resized:  resized,
	}
}

// Pending reports whether a decoded key is queued, so the caller should not
// block waiting for the descriptor.
func (in *Input) Pending() bool {
	return len(in.pending) > 0
}

// Next returns the next event. ready says the descriptor is known to be
// readable; otherwise only resize notifications and queued keys are
// considered and Next never blocks.
func (in *Input) Next(ready bool) (Event, error) {
	if in.resized != nil && in.resized() {
		return Event{Resize: true}, nil
	}

	if len(in.pending) == 0 {
		if !ready {
			return Event{}, nil
		}
		if err := in.fill(); err != nil {
			return Event{}, err
		}
	}

	n, complete := splitKey(in.pending)
	if !complete {
		// give the rest of an escape sequence a moment to arrive
		ok, err := pollReadable(in.fd, in.escDelay)
		if err != nil {
			return Event{}, err
		}
		if ok {
			if err := in.fill(); err != nil {
				return Event{}, err
			}
		}
		n, _ = splitKey(in.pending)
	}

	key := string(in.pending[:n])
	in.pending = in.pending[n:]
	if len(in.pending) == 0 {
		in.pending = nil
	}
	return Event{Key: key}, nil
}

func (in *Input) fill() error {
	for {
		n, err := in.src.Read(in.scratch[:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil && err != io.EOF {
			return ioError(err, "read terminal")
		}
		if n == 0 {
			return ioError(io.ErrUnexpectedEOF, "read terminal")
		}
		in.pending = append(in.pending, in.scratch[:n]...)
		return nil
	}
}

// pollReadable waits up to d for fd to become readable.
func pollReadable(fd int, d time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(d/time.Millisecond))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, ioError(err, "poll terminal")
		}
		return n > 0, nil
	}
}
