package cmenu

import (
	"bytes"
	"io"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// readerChunk is the size of the scratch block each read fills.
const readerChunk = 1024

// lineBufStart is the first capacity the line accumulator grows to.
const lineBufStart = 64

// BufferedReader splits a possibly slow stream into newline terminated
// records. It reads in fixed size chunks and keeps whatever follows a
// newline for the next call, so a burst of lines costs one read.
//
// Reads failing with EINTR are retried; the interruption is reported to the
// caller so it can service whatever signal caused it. Records have no length
// limit: the accumulator doubles as needed and is never shrunk, trading
// memory reclamation for simplicity.
type BufferedReader struct {
	src    io.Reader
	chunk  [readerChunk]byte
	offset int // read cursor into chunk
	size   int // valid bytes in chunk; offset <= size <= len(chunk)

	line []byte
}

// NewBufferedReader reads records from src.
func NewBufferedReader(src io.Reader) *BufferedReader {
	return &BufferedReader{src: src}
}

// Buffered reports whether unread bytes are waiting in the scratch block.
func (r *BufferedReader) Buffered() bool {
	return r.offset != r.size
}

// Reset drops any buffered bytes and detaches the source.
func (r *BufferedReader) Reset() {
	r.offset = 0
	r.size = 0
	r.src = nil
}

// ReadLine returns the next record including its '\n'. At end of stream it
// returns whatever was accumulated, which lacks the terminator and may be
// empty; callers treat a missing terminator as end of stream. The returned
// slice is only valid until the next call.
//
// interrupted is set if any read was retried after EINTR.
func (r *BufferedReader) ReadLine() (line []byte, interrupted bool, err error) {
	r.line = r.line[:0]

	if r.offset != r.size {
		pending := r.chunk[r.offset:r.size]
		if nl := bytes.IndexByte(pending, '\n'); nl >= 0 {
			r.appendLine(pending[:nl+1])
			r.offset += nl + 1
			return r.line, false, nil
		}
		r.appendLine(pending)
	}
	r.offset, r.size = 0, 0

	if r.src == nil {
		return r.line, false, nil
	}

	for {
		n, err := r.src.Read(r.chunk[:])
		if errors.Is(err, unix.EINTR) {
			interrupted = true
			continue
		}
		if n == 0 && (err == nil || err == io.EOF) {
			return r.line, interrupted, nil
		}
		if err != nil && err != io.EOF {
			return nil, interrupted, ioError(err, "read input fd")
		}

		if nl := bytes.IndexByte(r.chunk[:n], '\n'); nl >= 0 {
			r.appendLine(r.chunk[:nl+1])
			r.offset = nl + 1
			r.size = n
			return r.line, interrupted, nil
		}
		r.appendLine(r.chunk[:n])
	}
}

// appendLine copies p onto the accumulator, doubling its capacity as needed.
func (r *BufferedReader) appendLine(p []byte) {
	need := len(r.line) + len(p)
	if need < len(r.line) {
		panic(ErrOutOfMemory)
	}
	if need > cap(r.line) {
		c := cap(r.line)
		if c == 0 {
			c = lineBufStart
		}
		for c < need {
			if c > math.MaxInt/2 {
				panic(ErrOutOfMemory)
			}
			c *= 2
		}
		grown := make([]byte, len(r.line), c)
		copy(grown, r.line)
		r.line = grown
	}
	r.line = append(r.line, p...)
}
