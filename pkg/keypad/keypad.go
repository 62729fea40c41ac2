// Package keypad describes calculator button layouts and maps button
// presses to calculator actions.
package keypad

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/sci_calculator/pkg/calc"
	"github.com/wildfunctions/sci_calculator/pkg/expr"
)

// ErrUnknownKey is returned by Resolve for keys the layout does not have.
var ErrUnknownKey = errors.New("unknown key")

// Button is one key. A button without an action enters its label as a
// digit. Keys lists extra names the button answers to.
type Button struct {
	Label  string   `yaml:"label"`
	Action string   `yaml:"action,omitempty"`
	Keys   []string `yaml:"keys,omitempty"`
}

// Layout is a named grid of buttons.
type Layout struct {
	Name string     `yaml:"name"`
	Rows [][]Button `yaml:"rows"`
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Load reads a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Validate checks that every action is known and that no two buttons
// answer to the same key.
func (l *Layout) Validate() error {
	if l.Name == "" {
		return errors.New("layout has no name")
	}
	if len(l.Rows) == 0 {
		return fmt.Errorf("layout %s has no buttons", l.Name)
	}
	seen := map[string]string{}
	claim := func(key, label string) error {
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("layout %s: key %q used by both %q and %q", l.Name, key, prev, label)
		}
		seen[key] = label
		return nil
	}
	for _, row := range l.Rows {
		for _, b := range row {
			if b.Label == "" {
				return fmt.Errorf("layout %s: button with empty label", l.Name)
			}
			if err := claim(b.Label, b.Label); err != nil {
				return err
			}
			if b.Action != "" {
				kind, err := calc.ParseKind(b.Action)
				if err != nil {
					return fmt.Errorf("layout %s: button %q: %w", l.Name, b.Label, err)
				}
				if err := checkFunc(kind); err != nil {
					return fmt.Errorf("layout %s: button %q: %w", l.Name, b.Label, err)
				}
				// the action id also resolves, unless it is the label itself
				if b.Action != b.Label {
					if err := claim(b.Action, b.Label); err != nil {
						return err
					}
				}
			}
			for _, k := range b.Keys {
				if err := claim(k, b.Label); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Buttons returns all buttons in row order.
func (l *Layout) Buttons() []Button {
	var out []Button
	for _, row := range l.Rows {
		out = append(out, row...)
	}
	return out
}

// Resolve maps a pressed key to an action. A key matches a button's
// label, its action id, or one of its extra keys.
func (l *Layout) Resolve(key string) (calc.Action, error) {
	for _, b := range l.Buttons() {
		if key == b.Label || (b.Action != "" && key == b.Action) || contains(b.Keys, key) {
			return b.Press(), nil
		}
	}
	return calc.Action{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Press returns the action a click on b produces.
func (b Button) Press() calc.Action {
	kind := calc.Kind(b.Action)
	if b.Action == "" || kind == calc.KindDigit {
		return calc.Action{Kind: calc.KindDigit, Token: b.Label}
	}
	if kind.IsOperator() {
		return calc.Action{Kind: kind, Token: b.Label}
	}
	return calc.Action{Kind: kind}
}

// checkFunc makes sure a function key has a parser function behind it.
func checkFunc(kind calc.Kind) error {
	switch kind {
	case calc.KindSin, calc.KindCos, calc.KindTan, calc.KindLog, calc.KindSqrt:
		_, err := expr.LookupFunc(string(kind))
		return err
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// WriteGrid draws the layout as rows of bracketed labels.
func (l *Layout) WriteGrid(w io.Writer) {
	width := 0
	for _, b := range l.Buttons() {
		if n := len([]rune(b.Label)); n > width {
			width = n
		}
	}
	for _, row := range l.Rows {
		cells := make([]string, len(row))
		for i, b := range row {
			pad := width - len([]rune(b.Label))
			cells[i] = "[" + b.Label + strings.Repeat(" ", pad) + "]"
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}
}
