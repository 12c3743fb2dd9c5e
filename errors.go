package cmenu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies fatal errors by how the process should exit.
type Kind int

const (
	// KindIO covers descriptor validation and failed reads, writes and waits.
	KindIO Kind = iota + 1
	// KindProtocol covers malformed or truncated controller input.
	KindProtocol
	// KindConfig covers invalid command line or config file settings.
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "i/o"
	case KindProtocol:
		return "protocol"
	case KindConfig:
		return "config"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ExitCode maps the kind onto the process exit status.
func (k Kind) ExitCode() int {
	if k == KindConfig {
		return 2
	}
	return 1
}

// Error is a fatal error carrying its Kind. Every error returned from Run
// is an *Error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit status for the error.
func (e *Error) ExitCode() int {
	return e.Kind.ExitCode()
}

// ErrOutOfMemory is the panic value raised when a buffer would grow past
// the largest representable size.
var ErrOutOfMemory = errors.New("out of memory")

func ioError(err error, msg string) error {
	return &Error{Kind: KindIO, Err: errors.Wrap(err, msg)}
}

func protocolErrorf(format string, args ...any) error {
	return &Error{Kind: KindProtocol, Err: errors.Errorf(format, args...)}
}

func configError(err error) error {
	return &Error{Kind: KindConfig, Err: err}
}

func configErrorf(format string, args ...any) error {
	return &Error{Kind: KindConfig, Err: errors.Errorf(format, args...)}
}

// ExitCode returns the exit status for any error: 0 for nil, the kind's
// code for an *Error, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode()
	}
	return 1
}
