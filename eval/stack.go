package eval

import (
	"math/big"

	"fortio.org/log"
)

// frame holds the evaluated arguments of a user function call. Frames
// without a name hide the caller's arguments while a global variable's
// expression is evaluated. units records the suffix of arguments given
// with one, e.g. 90 in f(90 deg).
type frame struct {
	name  string
	args  map[string]*big.Float
	units map[string]AngleUnit
}

// Stack returns the names of the user functions being evaluated, innermost first.
func (in *interpreter) Stack() []string {
	stack := make([]string, 0, len(in.frames))
	for i := len(in.frames) - 1; i >= 0; i-- {
		if n := in.frames[i].name; n != "" {
			stack = append(stack, n)
		}
	}
	log.Debugf("Stack() len %d, depth %d returning %v", len(stack), in.depth, stack)
	return stack
}

// Error attaches the current stack to e.
func (in *interpreter) Error(e *Error) *Error {
	e.Stack = in.Stack()
	return e
}
