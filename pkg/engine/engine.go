package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/wildfunctions/sci_calculator/pkg/calc"
	"github.com/wildfunctions/sci_calculator/pkg/keypad"
	"github.com/wildfunctions/sci_calculator/pkg/parser"
)

// Engine is one calculator session: a keypad, the current state and the
// expressions evaluated so far.
type Engine struct {
	cfg     Config
	layout  *keypad.Layout
	calc    calc.Calculator
	state   calc.State
	history []Evaluation
	log     *slog.Logger
}

// New creates an engine from the given config. A nil logger means
// slog.Default().
func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Format {
	case "text", "json", "latex":
	default:
		return nil, fmt.Errorf("unknown output format: %s", cfg.Format)
	}

	var (
		layout *keypad.Layout
		err    error
	)
	if cfg.LayoutFile != "" {
		layout, err = keypad.Load(cfg.LayoutFile)
	} else {
		layout, err = keypad.Get(cfg.Layout)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("layout loaded", "name", layout.Name, "buttons", len(layout.Buttons()))

	return &Engine{
		cfg:    cfg,
		layout: layout,
		calc: calc.Calculator{
			Parser: parser.Parser{MaxDepth: cfg.MaxDepth},
			Digits: cfg.Digits,
		},
		log: logger,
	}, nil
}

// State returns the current calculator state.
func (e *Engine) State() calc.State {
	return e.state
}

// Layout returns the keypad in use.
func (e *Engine) Layout() *keypad.Layout {
	return e.layout
}

// History returns the evaluations made with "equals", oldest first.
func (e *Engine) History() []Evaluation {
	return e.history
}

// Press applies one key. A key that is not on the keypad but whose
// characters all are ("12", "3.5") is pressed one character at a time.
func (e *Engine) Press(key string) error {
	action, err := e.layout.Resolve(key)
	if err == nil {
		e.apply(key, action)
		return nil
	}
	if !errors.Is(err, keypad.ErrUnknownKey) || len([]rune(key)) < 2 {
		return err
	}

	runes := []rune(key)
	actions := make([]calc.Action, len(runes))
	for i, r := range runes {
		a, rerr := e.layout.Resolve(string(r))
		if rerr != nil {
			return err
		}
		actions[i] = a
	}
	for i, a := range actions {
		e.apply(string(runes[i]), a)
	}
	return nil
}

func (e *Engine) apply(key string, a calc.Action) {
	before := e.state
	e.state = e.calc.Apply(e.state, a)
	e.log.Debug("key", "key", key, "action", a.Kind,
		"expression", e.state.Expression, "pending", e.state.Pending, "result", e.state.Result)

	if a.Kind == calc.KindEquals {
		e.record(before.Expression, e.state.Result)
	} else if e.state.IsError() && !before.IsError() {
		e.log.Info("operation rejected", "key", key, "operand", before.Pending)
	}
}

// record adds an evaluation to the history.
func (e *Engine) record(expression, result string) Evaluation {
	ev := Evaluation{
		Expression: expression,
		Result:     result,
		Timestamp:  time.Now().UTC(),
	}
	if node, err := e.calc.Parser.Parse(expression); err == nil {
		ev.LaTeX = node.LaTeX()
		e.log.Debug("parsed", "expression", expression, "nodes", node.NodeCount(), "depth", node.Depth())
	}
	if result == calc.ErrorMarker {
		_, err := e.calc.Eval(expression)
		e.log.Info("evaluation failed", "expression", expression, "err", err)
	}
	e.history = append(e.history, ev)
	return ev
}

// Eval evaluates a typed expression directly, bypassing the keypad.
// The session state is left alone.
func (e *Engine) Eval(input string) Evaluation {
	result := e.calc.Calculate(input)
	return e.record(input, result)
}

// Run reads lines of keys from r, presses them and writes both displays
// to w after every line. Keys are separated by spaces; quote a label
// that contains one. Lines starting with ':' are commands: :keys,
// :history, :clear, :quit. Run returns when r is exhausted or as soon as
// ctx is done, even while a read is blocked.
func (e *Engine) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(r, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var (
			raw string
			ok  bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok = <-lines:
		}
		if !ok {
			return <-readErr
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			quit, err := e.command(line[1:], w)
			if err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		keys, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		for _, key := range keys {
			if err := e.Press(key); err != nil {
				e.log.Warn("key ignored", "key", key, "err", err)
				fmt.Fprintf(w, "error: %v\n", err)
			}
		}
		WriteDisplay(w, e.state)
	}
}

// readLines scans r on its own goroutine. The lines channel is closed at
// end of input, after which readErr yields the scan error (nil at EOF).
// Closing done stops delivery; a read already blocked in r is abandoned.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				readErr <- nil
				return
			}
		}
		readErr <- sc.Err()
	}()
	return lines, readErr
}

func (e *Engine) command(cmd string, w io.Writer) (quit bool, err error) {
	switch strings.TrimSpace(cmd) {
	case "keys":
		e.layout.WriteGrid(w)
	case "history":
		WriteHistory(w, e.history)
	case "clear":
		e.state = calc.Clear(e.state)
		WriteDisplay(w, e.state)
	case "quit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command: %s", cmd)
	}
	return false, nil
}

// Report summarizes the session.
func (e *Engine) Report() Report {
	return Report{
		Config:      e.cfg,
		Layout:      e.layout.Name,
		Evaluations: e.history,
		Final:       e.state,
	}
}
