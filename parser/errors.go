package parser

import (
	"fmt"

	"grol.io/calc/token"
)

type ErrorKind uint8

const (
	_ ErrorKind = iota
	UnexpectedToken
	InvalidNumberLiteral
	InvalidOperator
	InvalidUnit
	MaxDepth
	Internal
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case InvalidNumberLiteral:
		return "invalid number literal"
	case InvalidOperator:
		return "invalid operator"
	case InvalidUnit:
		return "invalid unit"
	case MaxDepth:
		return "max depth"
	case Internal:
		return "unknown error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is the error returned by the parser. Use errors.As to inspect it.
type Error struct {
	Kind     ErrorKind
	Token    token.Token // offending token.
	Expected token.Type  // for UnexpectedToken.
	Limit    int         // for MaxDepth.
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token %q, expected %s", e.Token.String(), describe(e.Expected))
	case InvalidNumberLiteral:
		return fmt.Sprintf("invalid number literal %q", e.Token.Literal)
	case InvalidOperator:
		return fmt.Sprintf("invalid operator %q", e.Token.Literal)
	case InvalidUnit:
		return fmt.Sprintf("unit %q without a value", e.Token.Literal)
	case MaxDepth:
		return fmt.Sprintf("expression nested deeper than %d", e.Limit)
	default:
		return fmt.Sprintf("%s near %q", e.Kind, e.Token.String())
	}
}

// Pos is the byte offset of the offending token in the input.
func (e *Error) Pos() int {
	return e.Token.Pos
}

func describe(t token.Type) string {
	switch t {
	case token.NUMBER:
		return "a number"
	case token.IDENT:
		return "an identifier"
	case token.EOF:
		return "end of input"
	default:
		return fmt.Sprintf("%q", t.Literal())
	}
}
