package expr

import "math"

const degToRad = math.Pi / 180

// Eval for NumNode returns the literal value.
func (n *NumNode) Eval() (float64, bool) {
	return n.Val, finite(n.Val)
}

// Eval for ConstNode returns the constant value.
func (c *ConstNode) Eval() (float64, bool) {
	return c.Val, true
}

// Eval for UnaryNode dispatches on op.
func (u *UnaryNode) Eval() (float64, bool) {
	child, ok := u.Child.Eval()
	if !ok {
		return 0, false
	}

	switch u.Op {
	case OpNeg:
		return -child, true

	case OpSquare:
		return checked(child * child)

	case OpSqrt:
		if child < 0 {
			return 0, false
		}
		return math.Sqrt(child), true

	case OpSin:
		return sinDeg(child)

	case OpCos:
		return cosDeg(child)

	case OpTan:
		return tanDeg(child)

	case OpLog:
		if child <= 0 {
			return 0, false
		}
		return math.Log10(child), true

	default:
		return 0, false
	}
}

// Eval for BinaryNode dispatches on op.
func (b *BinaryNode) Eval() (float64, bool) {
	left, ok := b.Left.Eval()
	if !ok {
		return 0, false
	}
	right, ok := b.Right.Eval()
	if !ok {
		return 0, false
	}

	switch b.Op {
	case OpAdd:
		return checked(left + right)

	case OpSub:
		return checked(left - right)

	case OpMul:
		return checked(left * right)

	case OpDiv:
		if right == 0 {
			return 0, false
		}
		return checked(left / right)

	case OpPow:
		// Negative base with a fractional exponent has no real value.
		if left < 0 && right != math.Trunc(right) {
			return 0, false
		}
		if left == 0 && right < 0 {
			return 0, false
		}
		return checked(math.Pow(left, right))

	default:
		return 0, false
	}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func checked(v float64) (float64, bool) {
	if !finite(v) {
		return 0, false
	}
	return v, true
}

// Exact multiples of 90° are special-cased so that sin(180) is 0 and
// cos(90) is 0 rather than ~1e-16.

func sinDeg(deg float64) (float64, bool) {
	if !finite(deg) {
		return 0, false
	}
	if q, ok := quadrant(deg); ok {
		return [4]float64{0, 1, 0, -1}[q], true
	}
	return math.Sin(deg * degToRad), true
}

func cosDeg(deg float64) (float64, bool) {
	if !finite(deg) {
		return 0, false
	}
	if q, ok := quadrant(deg); ok {
		return [4]float64{1, 0, -1, 0}[q], true
	}
	return math.Cos(deg * degToRad), true
}

func tanDeg(deg float64) (float64, bool) {
	if !finite(deg) {
		return 0, false
	}
	if q, ok := quadrant(deg); ok {
		if q%2 == 1 {
			// tan(90 + 180k) is undefined
			return 0, false
		}
		return 0, true
	}
	return checked(math.Tan(deg * degToRad))
}

// quadrant reports which multiple of 90° deg is, modulo 360, when deg is an
// exact multiple.
func quadrant(deg float64) (int, bool) {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	// a tiny negative angle rounds up to exactly 360
	if m >= 360 {
		m -= 360
	}
	if m != math.Trunc(m) || int(m)%90 != 0 {
		return 0, false
	}
	return int(m) / 90, true
}
