package cmenu

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Output markers written to the controller.
const (
	resultMarker = "result\n"
	customMarker = "custom\n"
	ackMarker    = "ok\n"
)

// Responder writes acknowledgments and the final outcome to the output
// descriptor.
type Responder struct {
	w   io.Writer
	buf []byte
}

// NewResponder writes to w. Writes failing with EINTR are retried and short
// writes are continued until the payload is out.
func NewResponder(w io.Writer) *Responder {
	return &Responder{w: w}
}

// Ack acknowledges a completed protocol envelope.
func (r *Responder) Ack() error {
	return r.write(append(r.buf[:0], ackMarker...))
}

// EmitResult reports the committed row index.
func (r *Responder) EmitResult(index int) error {
	b := append(r.buf[:0], resultMarker...)
	b = strconv.AppendUint(b, uint64(index), 10)
	b = append(b, '\n')
	return r.write(b)
}

// EmitCustom reports that the user took the custom escape.
func (r *Responder) EmitCustom() error {
	return r.write(append(r.buf[:0], customMarker...))
}

func (r *Responder) write(p []byte) error {
	r.buf = p
	for len(p) > 0 {
		n, err := r.w.Write(p)
		if n > 0 {
			p = p[n:]
		}
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return ioError(err, "write output fd")
		}
		if n == 0 {
			return ioError(io.ErrShortWrite, "write output fd")
		}
	}
	return nil
}
