// Package parser turns calculator expressions such as "2 × √(9) + sin(30)"
// into expression trees.
package parser

import (
	"github.com/wildfunctions/sci_calculator/pkg/expr"
)

// DefaultMaxDepth bounds parenthesis and operator nesting.
const DefaultMaxDepth = 64

// Parser holds parse settings. The zero value uses DefaultMaxDepth.
type Parser struct {
	MaxDepth int
}

// Parse parses input with the default settings.
func Parse(input string) (expr.Node, error) {
	return Parser{}.Parse(input)
}

// Parse parses a complete expression. Trailing input is an error.
func (p Parser) Parse(input string) (expr.Node, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	st := &state{tokens: tokens, maxDepth: maxDepth}
	if st.peek().Type == TokenEOF {
		return nil, syntaxErrorf(0, "empty expression")
	}
	node, err := st.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := st.peek(); tok.Type != TokenEOF {
		return nil, syntaxErrorf(tok.Pos, "unexpected %s", describe(tok))
	}
	return node, nil
}

type state struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
}

func (s *state) peek() Token {
	return s.tokens[s.pos]
}

func (s *state) next() Token {
	tok := s.tokens[s.pos]
	if tok.Type != TokenEOF {
		s.pos++
	}
	return tok
}

func (s *state) expect(typ TokenType) (Token, error) {
	tok := s.next()
	if tok.Type != typ {
		return tok, syntaxErrorf(tok.Pos, "expected %s, found %s", typ, describe(tok))
	}
	return tok, nil
}

func (s *state) enter() error {
	s.depth++
	if s.depth > s.maxDepth {
		return syntaxErrorf(s.peek().Pos, "expression nested deeper than %d", s.maxDepth)
	}
	return nil
}

func (s *state) leave() {
	s.depth--
}

// expr := term (('+' | '-') term)*
func (s *state) parseExpr() (expr.Node, error) {
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()

	left, err := s.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op expr.BinaryOp
		switch s.peek().Type {
		case TokenPlus:
			op = expr.OpAdd
		case TokenMinus:
			op = expr.OpSub
		default:
			return left, nil
		}
		s.next()
		right, err := s.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &expr.BinaryNode{Op: op, Left: left, Right: right}
	}
}

// term := unary (('*' | '/') unary | implicit-product)*
func (s *state) parseTerm() (expr.Node, error) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := expr.OpMul
		switch s.peek().Type {
		case TokenMul:
			s.next()
		case TokenDiv:
			op = expr.OpDiv
			s.next()
		case TokenPi, TokenIdent, TokenSqrt, TokenLParen:
			// 2π, 3(4), 2√(9)
		default:
			return left, nil
		}
		right, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &expr.BinaryNode{Op: op, Left: left, Right: right}
	}
}

// unary := ('-' | '+') unary | power
func (s *state) parseUnary() (expr.Node, error) {
	switch s.peek().Type {
	case TokenMinus:
		s.next()
		if err := s.enter(); err != nil {
			return nil, err
		}
		defer s.leave()
		child, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		return &expr.UnaryNode{Op: expr.OpNeg, Child: child}, nil
	case TokenPlus:
		s.next()
		return s.parseUnary()
	}
	return s.parsePower()
}

// power := postfix ('^' unary)?
func (s *state) parsePower() (expr.Node, error) {
	base, err := s.parsePostfix()
	if err != nil {
		return nil, err
	}
	if s.peek().Type != TokenPow {
		return base, nil
	}
	s.next()
	if err := s.enter(); err != nil {
		return nil, err
	}
	defer s.leave()
	exp, err := s.parseUnary()
	if err != nil {
		return nil, err
	}
	return &expr.BinaryNode{Op: expr.OpPow, Left: base, Right: exp}, nil
}

// postfix := primary '²'*
func (s *state) parsePostfix() (expr.Node, error) {
	node, err := s.parsePrimary()
	if err != nil {
		return nil, err
	}
	for s.peek().Type == TokenSquare {
		s.next()
		node = &expr.UnaryNode{Op: expr.OpSquare, Child: node}
	}
	return node, nil
}

// primary := number | π | func '(' expr ')' | '√' primary | '(' expr ')'
func (s *state) parsePrimary() (expr.Node, error) {
	tok := s.next()
	switch tok.Type {
	case TokenNumber:
		return &expr.NumNode{Val: tok.Num, Text: tok.Text}, nil

	case TokenPi:
		return expr.Pi, nil

	case TokenSqrt:
		if err := s.enter(); err != nil {
			return nil, err
		}
		defer s.leave()
		child, err := s.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &expr.UnaryNode{Op: expr.OpSqrt, Child: child}, nil

	case TokenIdent:
		op, err := expr.LookupFunc(tok.Text)
		if err != nil {
			return nil, syntaxErrorf(tok.Pos, "%v", err)
		}
		if _, err := s.expect(TokenLParen); err != nil {
			return nil, err
		}
		arg, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(TokenRParen); err != nil {
			return nil, err
		}
		return &expr.UnaryNode{Op: op, Child: arg}, nil

	case TokenLParen:
		inner, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, syntaxErrorf(tok.Pos, "unexpected %s", describe(tok))
	}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenNumber, TokenIdent:
		return tok.Type.String() + " " + tok.Text
	default:
		return `"` + tok.Text + `"`
	}
}
