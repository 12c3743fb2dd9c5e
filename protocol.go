package cmenu

import (
	"bytes"
	"log/slog"
	"math"
)

// StepResult describes what one protocol step did.
type StepResult struct {
	// Closed is set once the controller closed the stream between envelopes.
	// The input should be retired; the list stays as it is.
	Closed bool
	// Interrupted is set when a read was retried after a signal, so terminal
	// input should be looked at next.
	Interrupted bool
}

// Interpreter applies controller commands to a List. Commands arrive in
// envelopes: "n <count>" followed by count commands, after which "ok" is
// written back. Each Step consumes one envelope header or one command.
type Interpreter struct {
	r    *BufferedReader
	list *List
	out  *Responder
	log  *slog.Logger

	remaining  uint64 // commands left in the current envelope
	inEnvelope bool
}

// NewInterpreter reads commands from r into list, acknowledging on out.
func NewInterpreter(r *BufferedReader, list *List, out *Responder, log *slog.Logger) *Interpreter {
	if log == nil {
		log = discardLogger()
	}
	return &Interpreter{r: r, list: list, out: out, log: log}
}

// Buffered reports whether input is already waiting, so Step will not block
// on the descriptor for its first line.
func (p *Interpreter) Buffered() bool {
	return p.r.Buffered()
}

// Step handles exactly one protocol unit. Any error is fatal.
func (p *Interpreter) Step() (StepResult, error) {
	var res StepResult

	line, ok, err := p.readLine(&res)
	if err != nil {
		return res, err
	}
	if !ok {
		if p.inEnvelope {
			return res, protocolErrorf("input closed with %d commands of the envelope outstanding", p.remaining)
		}
		p.log.Debug("input closed")
		res.Closed = true
		return res, nil
	}

	if !p.inEnvelope {
		return res, p.startEnvelope(line)
	}

	if err := p.command(line, &res); err != nil {
		return res, err
	}
	p.remaining--
	if p.remaining == 0 {
		return res, p.finishEnvelope()
	}
	return res, nil
}

func (p *Interpreter) startEnvelope(line []byte) error {
	arg, ok := bytes.CutPrefix(line, []byte("n "))
	if !ok {
		return protocolErrorf("expected envelope 'n <count>', got %q", line)
	}
	n, err := ParseUint(string(arg), math.MaxInt64)
	if err != nil {
		return protocolErrorf("cannot parse envelope count: %v", err)
	}
	p.log.Debug("envelope", "count", n)
	if n == 0 {
		return p.finishEnvelope()
	}
	p.inEnvelope = true
	p.remaining = uint64(n)
	return nil
}

func (p *Interpreter) finishEnvelope() error {
	p.inEnvelope = false
	p.remaining = 0
	p.log.Debug("envelope done", "rows", p.list.Len())
	return p.out.Ack()
}

func (p *Interpreter) command(line []byte, res *StepResult) error {
	switch {
	case string(line) == "+":
		row, err := p.readRow("+", res)
		if err != nil {
			return err
		}
		p.list.Add(row)
		p.log.Debug("add", "size", p.list.Len())
		return nil

	case bytes.HasPrefix(line, []byte("= ")):
		idx, err := parseIndex("=", line[2:])
		if err != nil {
			return err
		}
		row, err := p.readRow("=", res)
		if err != nil {
			return err
		}
		ok := p.list.Replace(idx, row)
		p.log.Debug("replace", "index", idx, "applied", ok)
		return nil

	case bytes.HasPrefix(line, []byte("- ")):
		idx, err := parseIndex("-", line[2:])
		if err != nil {
			return err
		}
		ok := p.list.Delete(idx)
		p.log.Debug("delete", "index", idx, "applied", ok)
		return nil

	case string(line) == "x":
		p.list.Clear()
		p.log.Debug("clear")
		return nil
	}
	return protocolErrorf("invalid command: %q", line)
}

// readRow reads one line per column.
func (p *Interpreter) readRow(cmd string, res *StepResult) (Row, error) {
	ncols := p.list.Columns().Len()
	row := make(Row, 0, ncols)
	for len(row) < ncols {
		line, ok, err := p.readLine(res)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, protocolErrorf("unterminated '%s' command", cmd)
		}
		row = append(row, NewTextBytes(line))
	}
	return row, nil
}

// readLine returns the next line without its terminator. ok is false at end
// of stream, including a final line that lacks a terminator.
func (p *Interpreter) readLine(res *StepResult) (line []byte, ok bool, err error) {
	line, interrupted, err := p.r.ReadLine()
	if interrupted {
		res.Interrupted = true
	}
	if err != nil {
		return nil, false, err
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		return nil, false, nil
	}
	return line[:len(line)-1], true, nil
}

func parseIndex(cmd string, arg []byte) (uint64, error) {
	n, err := ParseUint(string(arg), math.MaxInt64)
	if err != nil {
		return 0, protocolErrorf("cannot parse '%s' index: %v", cmd, err)
	}
	return uint64(n), nil
}
