package parser

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenIdent
	TokenPi
	TokenSqrt
	TokenSquare
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenPow
	TokenLParen
	TokenRParen
)

var tokenNames = map[TokenType]string{
	TokenEOF:    "end of input",
	TokenNumber: "number",
	TokenIdent:  "identifier",
	TokenPi:     "π",
	TokenSqrt:   "√",
	TokenSquare: "²",
	TokenPlus:   "+",
	TokenMinus:  "-",
	TokenMul:    "×",
	TokenDiv:    "÷",
	TokenPow:    "^",
	TokenLParen: "(",
	TokenRParen: ")",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is one lexical unit. Pos is the byte offset into the input.
type Token struct {
	Type TokenType
	Text string
	Num  float64
	Pos  int
}

// runes that map one-to-one onto a token
var symbolTokens = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'−': TokenMinus,
	'*': TokenMul,
	'×': TokenMul,
	'/': TokenDiv,
	'÷': TokenDiv,
	'^': TokenPow,
	'(': TokenLParen,
	')': TokenRParen,
	'π': TokenPi,
	'√': TokenSqrt,
	'²': TokenSquare,
}

// Lex splits input into tokens, ending with a TokenEOF.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		switch {
		case r == utf8.RuneError && size == 1:
			return nil, syntaxErrorf(pos, "invalid UTF-8")

		case unicode.IsSpace(r):
			pos += size

		case isDigit(r) || r == '.':
			tok, err := lexNumber(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			pos += len(tok.Text)

		case unicode.IsLetter(r) && r != 'π':
			start := pos
			for pos < len(input) {
				r, size := utf8.DecodeRuneInString(input[pos:])
				if !unicode.IsLetter(r) || r == 'π' {
					break
				}
				pos += size
			}
			word := input[start:pos]
			if word == "pi" {
				tokens = append(tokens, Token{Type: TokenPi, Text: word, Pos: start})
			} else {
				tokens = append(tokens, Token{Type: TokenIdent, Text: word, Pos: start})
			}

		default:
			typ, ok := symbolTokens[r]
			if !ok {
				return nil, syntaxErrorf(pos, "unexpected character %q", r)
			}
			tokens = append(tokens, Token{Type: typ, Text: string(r), Pos: pos})
			pos += size
		}
	}
	tokens = append(tokens, Token{Type: TokenEOF, Pos: len(input)})
	return tokens, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// lexNumber reads digits with an optional decimal point and exponent.
// "2." and ".5" are accepted; a lone "." is not.
func lexNumber(input string, start int) (Token, error) {
	pos := start
	digits := 0
	for pos < len(input) && isDigit(rune(input[pos])) {
		pos++
		digits++
	}
	if pos < len(input) && input[pos] == '.' {
		pos++
		for pos < len(input) && isDigit(rune(input[pos])) {
			pos++
			digits++
		}
		if pos < len(input) && input[pos] == '.' {
			return Token{}, syntaxErrorf(pos, "second decimal point in number")
		}
	}
	if digits == 0 {
		return Token{}, syntaxErrorf(start, "malformed number")
	}
	// exponent, as produced when large results are formatted
	if pos < len(input) && (input[pos] == 'e' || input[pos] == 'E') {
		p := pos + 1
		if p < len(input) && (input[p] == '+' || input[p] == '-') {
			p++
		}
		if p < len(input) && isDigit(rune(input[p])) {
			for p < len(input) && isDigit(rune(input[p])) {
				p++
			}
			pos = p
		}
	}
	text := input[start:pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, syntaxErrorf(start, "malformed number %q", text)
	}
	return Token{Type: TokenNumber, Text: text, Num: v, Pos: start}, nil
}
