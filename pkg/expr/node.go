package expr

// Node is the interface for all expression tree nodes.
type Node interface {
	Eval() (float64, bool)
	String() string
	LaTeX() string
	NodeCount() int
	Depth() int
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpSquare
	OpSqrt
	OpSin // degrees
	OpCos // degrees
	OpTan // degrees
	OpLog // base 10
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// NumNode is a numeric literal. Text keeps the digits as typed so the
// display form round-trips ("2.50" stays "2.50").
type NumNode struct {
	Val  float64
	Text string
}

// ConstNode is a named constant such as π.
type ConstNode struct {
	Name string
	Val  float64
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child Node
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right Node
}
