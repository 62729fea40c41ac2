// Package calc holds the calculator state and the pure functions that
// update it in response to button presses.
package calc

import (
	"strings"
	"unicode/utf8"

	"github.com/wildfunctions/sci_calculator/pkg/expr"
	"github.com/wildfunctions/sci_calculator/pkg/parser"
)

// ErrorMarker is shown in the result display when evaluation fails.
const ErrorMarker = "Error"

// State is the whole calculator. Pending is always a suffix of
// Expression. Functions in this package never modify their argument.
type State struct {
	Expression string `json:"expression"`
	Pending    string `json:"pending"`
	Result     string `json:"result"`

	// set by Evaluate, cleared by the next token
	evaluated bool
}

// HasResult reports whether a numeric result is showing.
func (s State) HasResult() bool {
	return s.Result != "" && s.Result != ErrorMarker
}

// IsError reports whether the result display shows Error.
func (s State) IsError() bool {
	return s.Result == ErrorMarker
}

// fresh reports whether the next token starts a new expression: equals
// produced the result showing and nothing has been typed since. An Error
// from a rejected square root in the middle of an expression keeps it.
func (s State) fresh() bool {
	return s.evaluated && s.Result != "" && s.Pending == ""
}

// AppendDigit appends a digit or decimal point to the expression and the
// pending operand.
func AppendDigit(s State, token string) State {
	if token == "" {
		return s
	}
	if s.fresh() {
		s.Expression = ""
	}
	s.Expression += token
	s.Pending += token
	s.Result = ""
	s.evaluated = false
	return s
}

// ApplyOperator appends a binary operator. It needs an operand to the
// left: either a pending one or a numeric result, which then seeds the
// expression.
func ApplyOperator(s State, symbol string) State {
	if s.Pending == "" && !s.HasResult() {
		return s
	}
	if s.Result != "" {
		if s.Pending == "" {
			s.Expression = s.Result
		}
		s.Result = ""
	}
	s.Expression += " " + symbol + " "
	s.Pending = ""
	s.evaluated = false
	return s
}

// ApplyUnary replaces the operand at the end of the expression with its
// symbolic form: √(4), sin(30), 3², or appends π. An empty operand means
// the pending operand, or the numeric result when nothing is pending.
// The square root of a negative operand puts the state in Error and
// otherwise leaves it alone.
func ApplyUnary(s State, kind Kind, operand string) State {
	if !kind.IsUnary() {
		return s
	}

	base := strings.TrimSuffix(s.Expression, s.Pending)
	if s.fresh() {
		base = ""
	}

	if kind == KindPi {
		if s.fresh() {
			s.Pending = ""
		}
		s.Expression = base + s.Pending + "π"
		s.Pending += "π"
		s.Result = ""
		s.evaluated = false
		return s
	}

	if operand == "" {
		switch {
		case s.Pending != "":
			operand = s.Pending
		case s.HasResult():
			operand = s.Result
		default:
			return s
		}
	}

	if kind == KindSqrt {
		if v, err := EvalString(operand); err == nil && v < 0 {
			s.Result = ErrorMarker
			return s
		}
	}

	var rendered string
	switch kind {
	case KindSquare:
		rendered = groupOperand(operand) + "²"
	case KindSqrt:
		rendered = "√(" + operand + ")"
	default:
		rendered = string(kind) + "(" + operand + ")"
	}

	s.Expression = base + rendered
	s.Pending = rendered
	s.Result = ""
	s.evaluated = false
	return s
}

// groupOperand parenthesizes operands that would not bind tighter than a
// postfix ², such as "-3" or "2π".
func groupOperand(operand string) string {
	node, err := parser.Parse(operand)
	if err != nil {
		return operand
	}
	switch n := node.(type) {
	case *expr.BinaryNode:
		return "(" + operand + ")"
	case *expr.UnaryNode:
		if n.Op == expr.OpNeg {
			return "(" + operand + ")"
		}
	}
	return operand
}

// Delete removes the last character of the pending operand from both the
// operand and the expression, and clears the result.
func Delete(s State) State {
	if s.Pending != "" {
		_, size := utf8.DecodeLastRuneInString(s.Pending)
		s.Pending = s.Pending[:len(s.Pending)-size]
		s.Expression = s.Expression[:len(s.Expression)-size]
	}
	s.Result = ""
	s.evaluated = false
	return s
}

// Clear returns the empty state.
func Clear(State) State {
	return State{}
}

// Evaluate computes the expression with the default calculator.
func Evaluate(s State) State {
	return Default.Evaluate(s)
}

// Apply dispatches one action with the default calculator.
func Apply(s State, a Action) State {
	return Default.Apply(s, a)
}
