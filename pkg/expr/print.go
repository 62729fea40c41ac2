package expr

import (
	"fmt"
	"strconv"
)

var unaryOpNames = map[UnaryOp]string{
	OpNeg:    "-",
	OpSquare: "²",
	OpSqrt:   "√",
	OpSin:    "sin",
	OpCos:    "cos",
	OpTan:    "tan",
	OpLog:    "log",
}

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "×",
	OpDiv: "÷",
	OpPow: "^",
}

// binding strength used to decide where parentheses are needed
func precedence(n Node) int {
	switch v := n.(type) {
	case *BinaryNode:
		switch v.Op {
		case OpAdd, OpSub:
			return 1
		case OpMul, OpDiv:
			return 2
		default:
			return 4
		}
	case *UnaryNode:
		if v.Op == OpNeg {
			return 3
		}
		return 5
	default:
		return 6
	}
}

func wrap(s string) string {
	return "(" + s + ")"
}

// String methods

func (n *NumNode) String() string {
	if n.Text != "" {
		return n.Text
	}
	return strconv.FormatFloat(n.Val, 'f', -1, 64)
}

func (c *ConstNode) String() string {
	return c.Name
}

func (u *UnaryNode) String() string {
	child := u.Child.String()
	switch u.Op {
	case OpNeg:
		if precedence(u.Child) < 3 {
			child = wrap(child)
		}
		return "-" + child
	case OpSquare:
		if precedence(u.Child) < 5 {
			child = wrap(child)
		}
		return child + "²"
	default:
		return unaryOpNames[u.Op] + wrap(child)
	}
}

func (b *BinaryNode) String() string {
	p := precedence(b)
	left := b.Left.String()
	right := b.Right.String()
	if b.Op == OpPow {
		// right-associative
		if precedence(b.Left) <= p {
			left = wrap(left)
		}
		if precedence(b.Right) < p {
			right = wrap(right)
		}
		return left + "^" + right
	}
	if precedence(b.Left) < p {
		left = wrap(left)
	}
	if precedence(b.Right) <= p {
		right = wrap(right)
	}
	return fmt.Sprintf("%s %s %s", left, binaryOpSymbols[b.Op], right)
}

// LaTeX methods

func (n *NumNode) LaTeX() string {
	return n.String()
}

func (c *ConstNode) LaTeX() string {
	if c.Name == "π" {
		return `\pi`
	}
	return c.Name
}

func (u *UnaryNode) LaTeX() string {
	child := u.Child.LaTeX()
	switch u.Op {
	case OpNeg:
		return fmt.Sprintf("-{%s}", child)
	case OpSquare:
		return fmt.Sprintf("{%s}^{2}", child)
	case OpSqrt:
		return fmt.Sprintf("\\sqrt{%s}", child)
	case OpSin:
		return fmt.Sprintf("\\sin{(%s^\\circ)}", child)
	case OpCos:
		return fmt.Sprintf("\\cos{(%s^\\circ)}", child)
	case OpTan:
		return fmt.Sprintf("\\tan{(%s^\\circ)}", child)
	case OpLog:
		return fmt.Sprintf("\\log_{10}{(%s)}", child)
	default:
		return child
	}
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("{%s} + {%s}", left, right)
	case OpSub:
		return fmt.Sprintf("{%s} - {%s}", left, right)
	case OpMul:
		return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	case OpPow:
		return fmt.Sprintf("{%s}^{%s}", left, right)
	default:
		return ""
	}
}
