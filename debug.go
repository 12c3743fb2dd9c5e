package cmenu

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

// DebugEnv names the environment variable holding a debug log path. The
// terminal is owned by the picker, so debug output only ever goes to a file.
const DebugEnv = "CMENU_DEBUG"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenDebugLog returns a debug level logger appending to path. An empty
// path yields a logger that discards everything.
func OpenDebugLog(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return discardLogger(), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, configError(errors.Wrap(err, "open debug log"))
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(handler).With("pid", os.Getpid()), f, nil
}
