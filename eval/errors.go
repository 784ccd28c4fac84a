package eval

import (
	"fmt"
	"strings"
)

type ErrorKind uint8

const (
	_ ErrorKind = iota
	UndefinedVar
	UndefinedFn
	ArgCount
	FactorialDomain
	DivisionByZero
	InvalidNumberLiteral
	Domain
	MaxDepth
	InvalidPrecision
	Overflow
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVar:
		return "undefined variable"
	case UndefinedFn:
		return "undefined function"
	case ArgCount:
		return "wrong number of arguments"
	case FactorialDomain:
		return "factorial domain"
	case DivisionByZero:
		return "division by zero"
	case InvalidNumberLiteral:
		return "invalid number literal"
	case Domain:
		return "domain"
	case MaxDepth:
		return "max depth"
	case InvalidPrecision:
		return "invalid precision"
	case Overflow:
		return "overflow"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// Error is an evaluation error. Stack lists the user functions being
// evaluated when it occurred, innermost first.
type Error struct {
	Kind     ErrorKind
	Name     string // variable, function or operator involved.
	Expected int    // for ArgCount and MaxDepth.
	Actual   int    // for ArgCount.
	Value    string // offending value or literal.
	Stack    []string
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case UndefinedVar:
		msg = fmt.Sprintf("undefined variable %q", e.Name)
	case UndefinedFn:
		msg = fmt.Sprintf("undefined function %q", e.Name)
	case ArgCount:
		msg = fmt.Sprintf("%s: wrong number of arguments, expected %d, got %d", e.Name, e.Expected, e.Actual)
	case FactorialDomain:
		msg = fmt.Sprintf("factorial of %s: only defined for integers from 0 to %d", e.Value, MaxFactorial)
	case DivisionByZero:
		msg = "division by zero"
	case InvalidNumberLiteral:
		msg = fmt.Sprintf("invalid number literal %q", e.Value)
	case Domain:
		msg = fmt.Sprintf("%s: argument out of domain", e.Name)
	case MaxDepth:
		msg = fmt.Sprintf("max depth %d reached", e.Expected)
	case InvalidPrecision:
		msg = "precision must be at least 1 bit"
	case Overflow:
		msg = fmt.Sprintf("%s: result exceeds the exponent range", e.Name)
	default:
		msg = e.Kind.String()
	}
	if len(e.Stack) > 0 {
		msg += " (in " + strings.Join(e.Stack, " < ") + ")"
	}
	return msg
}
