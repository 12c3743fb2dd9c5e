package cmenu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("plain")))
	assert.Equal(t, 1, ExitCode(ioError(os.ErrClosed, "write")))
	assert.Equal(t, 1, ExitCode(protocolErrorf("bad")))
	assert.Equal(t, 2, ExitCode(configErrorf("bad")))
	assert.Equal(t, 2, ExitCode(errors.Wrap(configErrorf("bad"), "outer")))
}

func TestErrorWrapping(t *testing.T) {
	err := ioError(os.ErrClosed, "read input fd")
	assert.Equal(t, "read input fd: "+os.ErrClosed.Error(), err.Error())
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, "i/o", KindIO.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestOpenDebugLog(t *testing.T) {
	log, closer, err := OpenDebugLog("")
	require.NoError(t, err)
	log.Debug("dropped")
	require.NoError(t, closer.Close())

	path := filepath.Join(t.TempDir(), "debug.log")
	log, closer, err = OpenDebugLog(path)
	require.NoError(t, err)
	log.Debug("envelope", "count", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=envelope")
	assert.Contains(t, string(data), "count=3")
	assert.Contains(t, string(data), "pid=")

	_, _, err = OpenDebugLog(filepath.Join(t.TempDir(), "missing", "debug.log"))
	requireKind(t, err, KindConfig)
}
