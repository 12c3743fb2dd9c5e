package cmenu

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// testTerm is a terminal whose keys come from a pipe and whose frames go
// to a buffer. The size falls back to 80x24 since a pipe has no window.
type testTerm struct {
	*Screen
	*Input
	fd int
}

func (t *testTerm) Fd() int { return t.fd }

// trackedInput records whether the app closed the protocol input.
type trackedInput struct {
	io.Reader
	closed bool
}

func (r *trackedInput) Close() error {
	r.closed = true
	return nil
}

type appHarness struct {
	app    *App
	screen bytes.Buffer
	out    bytes.Buffer
	keys   int // write end of the keyboard pipe
	proto  int // write end of the protocol pipe
	input  *trackedInput
}

func newAppHarness(t *testing.T, custom bool) *appHarness {
	t.Helper()
	h := &appHarness{}

	kr, kw := pipe(t)
	h.keys = kw
	term := &testTerm{fd: kr}
	term.Screen = NewScreen(kr, &h.screen)
	term.Input = NewInput(FD(kr), kr, term.Screen.Resized)

	pr, pw := pipe(t)
	h.proto = pw
	h.input = &trackedInput{Reader: FD(pr)}

	cols := NewColumns([]Column{{Weight: 1, Header: NewText("Name")}})
	h.app = NewApp(term, NewList(cols), AppOptions{
		InputFd:      pr,
		Input:        h.input,
		Output:       &h.out,
		EnableCustom: custom,
		Theme:        NewTheme(DefaultHeaderStyle, DefaultHighlightStyle, DefaultEntryStyle),
		Tick:         10 * time.Millisecond,
	})
	return h
}

func (h *appHarness) run(t *testing.T) (Outcome, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := h.app.Run(ctx)
	require.NoError(t, ctx.Err(), "app did not finish")
	return outcome, err
}

const aliceBob = "n 2\n+\nAlice\n+\nBob\n"

func TestAppCommit(t *testing.T) {
	h := newAppHarness(t, false)
	send(t, h.proto, aliceBob)
	send(t, h.keys, "j\r")

	outcome, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, OutcomeResult, outcome)
	assert.Equal(t, "ok\nresult\n1\n", h.out.String())
	assert.Contains(t, h.screen.String(), "Alice")
	assert.Contains(t, h.screen.String(), "Bob")
}

func TestAppCommitFirstRow(t *testing.T) {
	h := newAppHarness(t, false)
	send(t, h.proto, aliceBob)
	send(t, h.keys, KeyDown+KeyUp+KeyEnterSS3)

	outcome, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, OutcomeResult, outcome)
	assert.Equal(t, "ok\nresult\n0\n", h.out.String())
}

func TestAppCommitEmptyListIgnored(t *testing.T) {
	h := newAppHarness(t, false)
	send(t, h.keys, "\rq")

	outcome, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.Empty(t, h.out.String())
}

func TestAppCustom(t *testing.T) {
	h := newAppHarness(t, true)
	send(t, h.proto, aliceBob)
	send(t, h.keys, "c")

	outcome, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCustom, outcome)
	assert.Equal(t, "ok\ncustom\n", h.out.String())
}

func TestAppCustomDisabled(t *testing.T) {
	h := newAppHarness(t, false)
	send(t, h.proto, aliceBob)
	send(t, h.keys, "cq")

	outcome, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.Equal(t, "ok\n", h.out.String())
}

func TestAppProtocolError(t *testing.T) {
	h := newAppHarness(t, false)
	send(t, h.proto, "n 1\nz\n")

	_, err := h.run(t)
	requireKind(t, err, KindProtocol)
	assert.Empty(t, h.out.String())
}

func TestAppInputClosed(t *testing.T) {
	h := newAppHarness(t, false)
	send(t, h.proto, "n 1\n+\nAlice\n")
	require.NoError(t, unix.Close(h.proto))
	send(t, h.keys, "\r")

	outcome, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, OutcomeResult, outcome)
	assert.Equal(t, "ok\nresult\n0\n", h.out.String())
	assert.True(t, h.input.closed)
	assert.Equal(t, -1, h.app.inputFd)
}

func TestAppTerminalClosed(t *testing.T) {
	h := newAppHarness(t, false)
	require.NoError(t, unix.Close(h.keys))

	_, err := h.run(t)
	requireKind(t, err, KindIO)
}

func TestAppInfoOverlay(t *testing.T) {
	h := newAppHarness(t, false)
	send(t, h.proto, aliceBob)
	// every key is followed by a frame, so the overlay is drawn before q
	send(t, h.keys, "j"+KeyCtrlG+"q")

	outcome, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.Contains(t, h.screen.String(), "--- 2/2 ---")
}

func TestAppCancelled(t *testing.T) {
	h := newAppHarness(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := h.app.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.Empty(t, h.out.String())
}

func TestAppNavigation(t *testing.T) {
	h := newAppHarness(t, false)
	var rows strings.Builder
	rows.WriteString("n 40\n")
	for i := 0; i < 40; i++ {
		rows.WriteString("+\nrow\n")
	}
	send(t, h.proto, rows.String())
	// 24 rows high: page down, half page down, up, end, home, down
	send(t, h.keys, KeyPageDown+KeyCtrlD+"k"+KeyEnd+"g"+KeyCtrlN+"\r")

	_, err := h.run(t)
	require.NoError(t, err)
	assert.Equal(t, "ok\nresult\n1\n", h.out.String())
}
