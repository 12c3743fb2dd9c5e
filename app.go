package cmenu

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// DefaultTick bounds each readiness wait so resize signals are noticed
// while nothing else is happening.
const DefaultTick = 100 * time.Millisecond

// state is the event loop's position in its cycle.
type state int

const (
	stateRendering state = iota
	stateAwaiting
	stateDraining
	stateTerminal
	stateClosed
)

var stateNames = [...]string{
	stateRendering: "rendering",
	stateAwaiting:   "awaiting-readiness",
	stateDraining:   "draining-protocol",
	stateTerminal:   "handling-terminal-key",
	stateClosed:     "closed",
}

func (s state) String() string {
	return stateNames[s]
}

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeQuit Outcome = iota
	OutcomeResult
	OutcomeCustom
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResult:
		return "result"
	case OutcomeCustom:
		return "custom"
	}
	return "quit"
}

// Terminal is the rendering and keyboard side of the picker.
type Terminal interface {
	// Fd is the descriptor polled for keyboard input.
	Fd() int
	// Buffer returns the surface to draw the next frame on.
	Buffer() *Buffer
	// QuerySize re-reads the terminal dimensions.
	QuerySize() Size
	// SetCursor places the cursor after the next flush.
	SetCursor(x, y int)
	// Flush puts the frame on the terminal.
	Flush() error
	// Next returns one input event; see Input.Next.
	Next(ready bool) (Event, error)
	// Pending reports whether decoded input is queued.
	Pending() bool
}

// App is the picker's event loop. It owns the list, both descriptors and
// the terminal for the whole run; nothing here is safe for concurrent use.
type App struct {
	term   Terminal
	list   *List
	view   *View
	proto  *Interpreter
	out    *Responder
	keys   Keymap
	log    *slog.Logger
	tick   time.Duration
	custom bool

	inputFd     int       // protocol descriptor, -1 once retired
	inputCloser io.Closer // closes the protocol descriptor on retirement

	requery bool
	height  int
	state   state
	outcome Outcome
}

// AppOptions configures an App.
type AppOptions struct {
	// InputFd is the protocol descriptor, polled for readiness.
	InputFd int
	// Input is read for protocol lines; usually FD(InputFd).
	Input io.Reader
	// Output receives acknowledgments and the outcome.
	Output io.Writer
	// EnableCustom allows the custom escape key.
	EnableCustom bool
	Theme        Theme
	Keymap       Keymap
	Logger       *slog.Logger
	// Tick overrides DefaultTick.
	Tick time.Duration
}

// NewApp wires a picker over list.
func NewApp(term Terminal, list *List, opts AppOptions) *App {
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	keys := opts.Keymap
	if keys == nil {
		keys = DefaultKeymap()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	out := NewResponder(opts.Output)
	a := &App{
		term:    term,
		list:    list,
		view:    NewView(list, opts.Theme),
		out:     out,
		keys:    keys,
		log:     log,
		tick:    tick,
		custom:  opts.EnableCustom,
		inputFd: opts.InputFd,
		requery: true,
	}
	a.proto = NewInterpreter(NewBufferedReader(opts.Input), list, out, log)
	if c, ok := opts.Input.(io.Closer); ok {
		a.inputCloser = c
	}
	return a
}

// List returns the list the app drives.
func (a *App) List() *List {
	return a.list
}

// View returns the app's view.
func (a *App) View() *View {
	return a.view
}

// Run drives the picker until the user commits, takes the custom escape or
// quits, or a fatal error occurs. Cancelling ctx quits between iterations.
// The outcome has already been written to the output when Run returns.
func (a *App) Run(ctx context.Context) (Outcome, error) {
	a.state = stateRendering
	for a.state != stateClosed {
		if err := ctx.Err(); err != nil {
			a.log.Debug("cancelled", "err", err)
			a.finish(OutcomeQuit)
			break
		}
		next, err := a.step()
		if err != nil {
			a.log.Debug("fatal", "state", a.state.String(), "err", err)
			a.state = stateClosed
			return a.outcome, err
		}
		a.state = next
	}
	return a.outcome, nil
}

// step runs the current state and returns the next one.
func (a *App) step() (state, error) {
	switch a.state {
	case stateRendering:
		if err := a.render(); err != nil {
			return stateClosed, err
		}
		// already buffered protocol input wins so bursts drain before any
		// further terminal interaction
		if a.inputFd >= 0 && a.proto.Buffered() {
			return stateDraining, nil
		}
		if a.term.Pending() {
			return stateTerminal, nil
		}
		return stateAwaiting, nil

	case stateAwaiting:
		r, err := waitReady(a.inputFd, a.term.Fd(), a.tick)
		if err != nil {
			return stateClosed, err
		}
		if r.interrupted {
			return stateTerminal, nil
		}
		if r.input {
			return stateDraining, nil
		}
		return a.handleTerminal(r.terminal)

	case stateDraining:
		res, err := a.proto.Step()
		if err != nil {
			return stateClosed, err
		}
		if res.Closed {
			a.retireInput()
		}
		if res.Interrupted {
			return stateTerminal, nil
		}
		return stateRendering, nil

	case stateTerminal:
		return a.handleTerminal(a.term.Pending())
	}
	return stateClosed, nil
}

// retireInput drops the protocol descriptor from the readiness set for
// good; the loop continues on terminal input alone.
func (a *App) retireInput() {
	a.log.Debug("input retired")
	if a.inputCloser != nil {
		a.inputCloser.Close()
	}
	a.proto.r.Reset()
	a.inputFd = -1
}

func (a *App) render() error {
	buf := a.term.Buffer()
	if a.requery {
		size := a.term.QuerySize()
		a.height = size.Height
		a.view.Layout(size.Width)
		a.requery = false
		a.log.Debug("layout", "width", size.Width, "height", size.Height,
			"need_more_space", a.list.Columns().NeedMoreSpace())
	}
	y := a.view.Draw(buf)
	a.term.SetCursor(0, y)
	if err := a.term.Flush(); err != nil {
		return ioError(err, "draw")
	}
	return nil
}

// handleTerminal reads one event and dispatches it.
func (a *App) handleTerminal(ready bool) (state, error) {
	ev, err := a.term.Next(ready)
	if err != nil {
		return stateClosed, err
	}
	if ev.Resize {
		a.requery = true
		return stateRendering, nil
	}
	if ev.Key == "" {
		return stateRendering, nil
	}
	return a.dispatch(a.keys.Lookup(ev.Key))
}

func (a *App) dispatch(act Action) (state, error) {
	switch act {
	case ActUp:
		a.list.MoveUp(1)
	case ActDown:
		a.list.MoveDown(1)
	case ActPageUp:
		a.list.MoveUp(a.height)
	case ActPageDown:
		a.list.MoveDown(a.height)
	case ActHalfPageUp:
		a.list.MoveUp(a.height / 2)
	case ActHalfPageDown:
		a.list.MoveDown(a.height / 2)
	case ActFirst:
		a.list.First()
	case ActLast:
		a.list.Last()
	case ActShowInfo:
		a.view.ShowInfo()
	case ActHideInfo:
		a.view.HideInfo()
	case ActRefresh:
		a.requery = true

	case ActCommit:
		if a.list.Len() == 0 {
			break
		}
		if err := a.out.EmitResult(a.list.Selected()); err != nil {
			return stateClosed, err
		}
		a.log.Debug("commit", "index", a.list.Selected())
		a.finish(OutcomeResult)
		return stateClosed, nil

	case ActCustom:
		if !a.custom {
			break
		}
		if err := a.out.EmitCustom(); err != nil {
			return stateClosed, err
		}
		a.log.Debug("custom")
		a.finish(OutcomeCustom)
		return stateClosed, nil

	case ActQuit:
		a.log.Debug("quit")
		a.finish(OutcomeQuit)
		return stateClosed, nil
	}
	return stateRendering, nil
}

func (a *App) finish(o Outcome) {
	a.outcome = o
	a.state = stateClosed
}
