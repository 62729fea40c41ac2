package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/wildfunctions/sci_calculator/pkg/parser"
)

// ErrEvaluation is the single failure kind. Every error returned by
// EvalString wraps it.
var ErrEvaluation = errors.New("evaluation error")

// DefaultDigits is the number of significant digits shown in results.
const DefaultDigits = 12

// Calculator carries the settings used by Evaluate and Apply.
type Calculator struct {
	Parser parser.Parser
	Digits int
}

// Default uses DefaultDigits and parser.DefaultMaxDepth.
var Default = Calculator{Digits: DefaultDigits}

// EvalString parses and evaluates an expression with the default calculator.
func EvalString(input string) (float64, error) {
	return Default.Eval(input)
}

// Calculate returns the display form of an expression's value, or
// ErrorMarker.
func Calculate(input string) string {
	return Default.Calculate(input)
}

// Eval parses and evaluates input.
func (c Calculator) Eval(input string) (float64, error) {
	node, err := c.Parser.Parse(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	v, ok := node.Eval()
	if !ok {
		return 0, fmt.Errorf("%w: %s has no finite value", ErrEvaluation, node)
	}
	return v, nil
}

// Calculate returns the formatted value of input, or ErrorMarker.
func (c Calculator) Calculate(input string) string {
	v, err := c.Eval(input)
	if err != nil {
		return ErrorMarker
	}
	return FormatResult(v, c.Digits)
}

// Evaluate computes the expression into Result and clears Pending.
func (c Calculator) Evaluate(s State) State {
	s.Result = c.Calculate(s.Expression)
	s.Pending = ""
	s.evaluated = true
	return s
}

// Apply is the single input handler: it dispatches on the action kind.
func (c Calculator) Apply(s State, a Action) State {
	switch {
	case a.Kind == KindDigit:
		return AppendDigit(s, a.Token)
	case a.Kind == KindClear:
		return Clear(s)
	case a.Kind == KindDelete:
		return Delete(s)
	case a.Kind == KindEquals:
		return c.Evaluate(s)
	case a.Kind.IsUnary():
		return ApplyUnary(s, a.Kind, a.Operand)
	case a.Kind.IsOperator():
		symbol := a.Token
		if symbol == "" {
			symbol = a.Kind.Symbol()
		}
		return ApplyOperator(s, symbol)
	default:
		return s
	}
}

// FormatResult rounds v to digits significant digits and prints it in
// plain decimal notation, switching to exponent notation below 1e-7 and
// from 1e21 up.
func FormatResult(v float64, digits int) string {
	if digits <= 0 {
		digits = DefaultDigits
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		return ErrorMarker
	}
	if r == 0 {
		return "0"
	}
	if abs := math.Abs(r); abs >= 1e21 || abs < 1e-7 {
		return strconv.FormatFloat(r, 'g', -1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
