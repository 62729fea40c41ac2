package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/wildfunctions/sci_calculator/pkg/calc"
	"github.com/wildfunctions/sci_calculator/pkg/keypad"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func pressAll(t *testing.T, e *Engine, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := e.Press(k); err != nil {
			t.Fatalf("Press(%q): %v", k, err)
		}
	}
}

func TestEngine_Press(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	pressAll(t, e, "1", "2", "+", "3", "0", "sin", "=")

	s := e.State()
	if s.Expression != "12 + sin(30)" {
		t.Errorf("Expression = %q", s.Expression)
	}
	if s.Result != "12.5" {
		t.Errorf("Result = %q, want 12.5", s.Result)
	}
	h := e.History()
	if len(h) != 1 {
		t.Fatalf("history has %d entries, want 1", len(h))
	}
	if h[0].Expression != "12 + sin(30)" || h[0].Result != "12.5" {
		t.Errorf("history[0] = %+v", h[0])
	}
	if h[0].LaTeX == "" {
		t.Error("expected LaTeX rendering in history")
	}
}

func TestEngine_PressSplitsRunes(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	pressAll(t, e, "12", "*", "3.5", "=")
	if got := e.State().Result; got != "42" {
		t.Errorf("Result = %q, want 42", got)
	}
	if err := e.Press("1%"); !errors.Is(err, keypad.ErrUnknownKey) {
		t.Errorf("Press(1%%) error = %v, want ErrUnknownKey", err)
	}
	// nothing from the rejected key was applied
	if got := e.State().Expression; got != "12 × 3.5" {
		t.Errorf("Expression = %q", got)
	}
}

func TestEngine_Errors(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	pressAll(t, e, "5", "÷", "0", "=")
	if !e.State().IsError() {
		t.Errorf("5 ÷ 0 result = %q, want Error", e.State().Result)
	}
	pressAll(t, e, "C")
	if e.State() != (calc.State{}) {
		t.Errorf("after clear: %+v", e.State())
	}
}

func TestEngine_Digits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Digits = 4
	e := newEngine(t, cfg)
	if got := e.Eval("1 ÷ 3").Result; got != "0.3333" {
		t.Errorf("Eval(1 ÷ 3) = %q, want 0.3333", got)
	}
}

func TestEngine_MaxDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 3
	e := newEngine(t, cfg)
	if got := e.Eval("((((1))))").Result; got != calc.ErrorMarker {
		t.Errorf("deep expression = %q, want Error", got)
	}
}

func TestEngine_BadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout = "abacus"
	if _, err := New(cfg, quietLogger()); err == nil {
		t.Error("expected unknown layout error")
	}

	cfg = DefaultConfig()
	cfg.Format = "xml"
	if _, err := New(cfg, quietLogger()); err == nil {
		t.Error("expected unknown format error")
	}
}

func TestEngine_Run(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	input := strings.Join([]string{
		"2 + 2 =",
		"",
		`"x²" =`,
		":history",
		"7 % 1",
		":bogus",
		":quit",
		"9 =",
	}, "\n")

	var out strings.Builder
	if err := e.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	for _, want := range []string{
		"  2 + 2\n= 4\n",
		"  4²\n= 16\n",
		"  1: 2 + 2 = 4\n",
		"  2: 4² = 16\n",
		"error: unknown key",
		"error: unknown command: bogus",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "= 9") {
		t.Error("input after :quit was processed")
	}
}

func TestEngine_RunCancelled(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Run(ctx, strings.NewReader("1 + 1 =\n"), io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestReportFormats(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	pressAll(t, e, "9", "√", "=", "1", "÷", "0", "=")
	r := e.Report()

	var js strings.Builder
	if err := WriteReport(&js, "json", r); err != nil {
		t.Fatal(err)
	}
	var decoded Report
	if err := json.Unmarshal([]byte(js.String()), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Evaluations) != 2 || decoded.Evaluations[0].Result != "3" {
		t.Errorf("decoded evaluations = %+v", decoded.Evaluations)
	}
	if decoded.Layout != "scientific" {
		t.Errorf("Layout = %q", decoded.Layout)
	}

	var tex strings.Builder
	if err := WriteReport(&tex, "latex", r); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`\sqrt{9} = 3`, `\frac{1}{0} = \text{Error}`, `\end{document}`} {
		if !strings.Contains(tex.String(), want) {
			t.Errorf("LaTeX missing %q:\n%s", want, tex.String())
		}
	}

	var txt strings.Builder
	if err := WriteReport(&txt, "text", r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(txt.String(), "Evaluations: 2") {
		t.Errorf("text report:\n%s", txt.String())
	}
}

func TestEngine_RunCancelWhileReading(t *testing.T) {
	e := newEngine(t, DefaultConfig())
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- e.Run(ctx, pr, io.Discard)
	}()

	// the line is consumed; Run then waits on an idle reader
	if _, err := io.WriteString(pw, "1 + 1 =\n"); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel while input was idle")
	}
}

func TestEngine_LogsParseSize(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e, err := New(DefaultConfig(), logger)
	if err != nil {
		t.Fatal(err)
	}
	e.Eval("√(2 + 3²)")
	out := buf.String()
	if !strings.Contains(out, "nodes=5") || !strings.Contains(out, "depth=4") {
		t.Errorf("debug log lacks tree size:\n%s", out)
	}
}

func TestLaTeXReportEscapesUnparsed(t *testing.T) {
	r := Report{
		Layout: "pipe_keys",
		Evaluations: []Evaluation{
			{Expression: "1 | 2 & {3}", Result: calc.ErrorMarker},
		},
	}
	var tex strings.Builder
	WriteLaTeXReport(&tex, r)
	got := tex.String()
	want := `\texttt{1 \textbar{} 2 \& \{3\}} = Error`
	if !strings.Contains(got, want) {
		t.Errorf("LaTeX missing %q:\n%s", want, got)
	}
	if strings.Contains(got, `\verb`) {
		t.Errorf("LaTeX still uses \\verb:\n%s", got)
	}
	if !strings.Contains(got, `\texttt{pipe\_keys}`) {
		t.Errorf("layout name not escaped:\n%s", got)
	}
}
