package expr

import (
	"fmt"
	"math"
	"sort"
)

// Pi is the constant node produced for "π" and "pi".
var Pi = &ConstNode{Name: "π", Val: math.Pi}

var funcRegistry = map[string]UnaryOp{}

func init() {
	RegisterFunc("sin", OpSin)
	RegisterFunc("cos", OpCos)
	RegisterFunc("tan", OpTan)
	RegisterFunc("log", OpLog)
	RegisterFunc("sqrt", OpSqrt)
}

// RegisterFunc makes a named single-argument function available to the parser.
func RegisterFunc(name string, op UnaryOp) {
	funcRegistry[name] = op
}

// LookupFunc returns the op registered under name.
func LookupFunc(name string) (UnaryOp, error) {
	op, ok := funcRegistry[name]
	if !ok {
		return 0, fmt.Errorf("unknown function: %s (available: %v)", name, FuncNames())
	}
	return op, nil
}

// FuncNames returns all registered function names, sorted.
func FuncNames() []string {
	names := make([]string, 0, len(funcRegistry))
	for k := range funcRegistry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
