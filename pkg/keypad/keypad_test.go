package keypad

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wildfunctions/sci_calculator/pkg/calc"
)

func TestBuiltinLayouts(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("Names() = %v, want basic and scientific", names)
	}
	for _, name := range names {
		l, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if l.Name != name {
			t.Errorf("layout file %s declares name %q", name, l.Name)
		}
		for d := 0; d <= 9; d++ {
			key := string(rune('0' + d))
			a, err := l.Resolve(key)
			if err != nil {
				t.Errorf("%s: Resolve(%s): %v", name, key, err)
				continue
			}
			if a.Kind != calc.KindDigit || a.Token != key {
				t.Errorf("%s: Resolve(%s) = %+v", name, key, a)
			}
		}
	}
}

func TestUnknownLayout(t *testing.T) {
	if _, err := Get("abacus"); err == nil {
		t.Error("Get(abacus) should fail")
	}
}

func TestResolve(t *testing.T) {
	l, err := Get("scientific")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		key  string
		want calc.Action
	}{
		{"7", calc.Action{Kind: calc.KindDigit, Token: "7"}},
		{".", calc.Action{Kind: calc.KindDigit, Token: "."}},
		{"+", calc.Action{Kind: calc.KindAdd, Token: "+"}},
		{"add", calc.Action{Kind: calc.KindAdd, Token: "+"}},
		{"*", calc.Action{Kind: calc.KindMultiply, Token: "×"}},
		{"/", calc.Action{Kind: calc.KindDivide, Token: "÷"}},
		{"√", calc.Action{Kind: calc.KindSqrt}},
		{"sqrt", calc.Action{Kind: calc.KindSqrt}},
		{"sin", calc.Action{Kind: calc.KindSin}},
		{"x²", calc.Action{Kind: calc.KindSquare}},
		{"pi", calc.Action{Kind: calc.KindPi}},
		{"=", calc.Action{Kind: calc.KindEquals}},
		{"enter", calc.Action{Kind: calc.KindEquals}},
		{"C", calc.Action{Kind: calc.KindClear}},
		{"backspace", calc.Action{Kind: calc.KindDelete}},
	}
	for _, tc := range cases {
		got, err := l.Resolve(tc.key)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tc.key, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Resolve(%q) = %+v, want %+v", tc.key, got, tc.want)
		}
	}

	if _, err := l.Resolve("%"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Resolve(%%) error = %v, want ErrUnknownKey", err)
	}
}

func TestBasicHasNoScientificKeys(t *testing.T) {
	l, err := Get("basic")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Resolve("sin"); err == nil {
		t.Error("basic layout should not resolve sin")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"no name", "rows: [[{label: '1'}]]", "no name"},
		{"no rows", "name: x", "no buttons"},
		{"empty label", "name: x\nrows: [[{label: ''}]]", "empty label"},
		{"bad action", "name: x\nrows: [[{label: '%', action: modulo}]]", "unknown action"},
		{"duplicate label", "name: x\nrows: [[{label: '1'}, {label: '1'}]]", "used by both"},
		{"alias clash", "name: x\nrows: [[{label: '+', action: add}, {label: 'p', action: pi, keys: ['add']}]]", "used by both"},
		{"bad yaml", "name: [", "decoding layout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	doc := `name: tiny
rows:
  - [{label: "1"}, {label: "plus", action: add}, {label: "go", action: equals}]
`
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	var s calc.State
	for _, key := range []string{"1", "plus", "1", "go"} {
		a, err := l.Resolve(key)
		if err != nil {
			t.Fatal(err)
		}
		s = calc.Apply(s, a)
	}
	if s.Expression != "1 plus 1" {
		t.Errorf("Expression = %q", s.Expression)
	}
	// "plus" is not an operator the parser knows
	if !s.IsError() {
		t.Errorf("Result = %q, want Error", s.Result)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestWriteGrid(t *testing.T) {
	l, err := Get("basic")
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	l.WriteGrid(&sb)
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != len(l.Rows) {
		t.Fatalf("got %d lines, want %d", len(lines), len(l.Rows))
	}
	if !strings.HasPrefix(lines[1], "[7  ]") {
		t.Errorf("row 2 = %q", lines[1])
	}
}

func TestExplicitDigitAction(t *testing.T) {
	l, err := Parse([]byte("name: x\nrows: [[{label: '5', action: digit}, {label: '+', action: add}, {label: '=', action: equals}]]"))
	if err != nil {
		t.Fatal(err)
	}
	a, err := l.Resolve("5")
	if err != nil {
		t.Fatal(err)
	}
	if a != (calc.Action{Kind: calc.KindDigit, Token: "5"}) {
		t.Errorf("Resolve(5) = %+v", a)
	}

	var s calc.State
	for _, key := range []string{"digit", "+", "5", "="} {
		a, err := l.Resolve(key)
		if err != nil {
			t.Fatal(err)
		}
		s = calc.Apply(s, a)
	}
	if s.Result != "10" {
		t.Errorf("5 + 5 = %q, want 10", s.Result)
	}
}

func TestFunctionKeysAreRegistered(t *testing.T) {
	for _, k := range calc.Kinds() {
		if err := checkFunc(k); err != nil {
			t.Errorf("checkFunc(%s): %v", k, err)
		}
	}
}
