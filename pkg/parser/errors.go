package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every error the lexer and parser return.
var ErrSyntax = errors.New("syntax error")

// SyntaxError locates a syntax error in the input.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
