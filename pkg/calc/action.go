package calc

import (
	"fmt"
	"sort"
)

// Kind is the action identifier carried by a button press.
type Kind string

const (
	KindDigit    Kind = "digit"
	KindClear    Kind = "clear"
	KindDelete   Kind = "delete"
	KindEquals   Kind = "equals"
	KindAdd      Kind = "add"
	KindSubtract Kind = "subtract"
	KindMultiply Kind = "multiply"
	KindDivide   Kind = "divide"
	KindPower    Kind = "power"
	KindPi       Kind = "pi"
	KindSquare   Kind = "square"
	KindSqrt     Kind = "sqrt"
	KindSin      Kind = "sin"
	KindCos      Kind = "cos"
	KindTan      Kind = "tan"
	KindLog      Kind = "log"
)

// default display symbol for each operator kind
var operatorSymbols = map[Kind]string{
	KindAdd:      "+",
	KindSubtract: "-",
	KindMultiply: "×",
	KindDivide:   "÷",
	KindPower:    "^",
}

var unaryKinds = map[Kind]bool{
	KindPi:     true,
	KindSquare: true,
	KindSqrt:   true,
	KindSin:    true,
	KindCos:    true,
	KindTan:    true,
	KindLog:    true,
}

// Action is one input event. Token is the button label for digits and
// operators; Operand overrides the pending operand for unary kinds.
type Action struct {
	Kind    Kind
	Token   string
	Operand string
}

// IsOperator reports whether k is a binary operator.
func (k Kind) IsOperator() bool {
	_, ok := operatorSymbols[k]
	return ok
}

// IsUnary reports whether k applies to the current operand.
func (k Kind) IsUnary() bool {
	return unaryKinds[k]
}

// Symbol returns the default display symbol of an operator kind.
func (k Kind) Symbol() string {
	return operatorSymbols[k]
}

// Kinds returns every known action kind, sorted.
func Kinds() []Kind {
	kinds := []Kind{KindDigit, KindClear, KindDelete, KindEquals}
	for k := range operatorSymbols {
		kinds = append(kinds, k)
	}
	for k := range unaryKinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseKind validates an action identifier.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	switch {
	case k == KindDigit, k == KindClear, k == KindDelete, k == KindEquals:
		return k, nil
	case k.IsOperator(), k.IsUnary():
		return k, nil
	}
	return "", fmt.Errorf("unknown action: %s", s)
}
