// Package eval evaluates parsed statements to arbitrary precision numbers.
package eval

import (
	"fmt"
	"math/big"

	"fortio.org/log"
	"grol.io/calc/ast"
	"grol.io/calc/bignum"
	"grol.io/calc/symbols"
	"grol.io/calc/token"
)

const (
	// DefaultMaxDepth bounds nested user function calls and variable expansions.
	DefaultMaxDepth = 10_000
	// MaxFactorial is the largest n for which n! is computed.
	MaxFactorial = 100_000
	// Extra bits for intermediate results such as angle conversions.
	guardBits = 64
)

type interpreter struct {
	syms     *symbols.Table
	unit     AngleUnit // effective unit, changed by unit suffixes.
	hint     AngleUnit // unit suffix seen in a trigonometric argument.
	hinted   bool
	prec     uint
	cache    Cache
	frames   []frame
	depth    int
	maxDepth int
}

// Interpret evaluates stmts in order and returns the value of the last one,
// or nil if it is a declaration. Variable declarations are inserted in syms.
func Interpret(stmts []ast.Stmt, syms *symbols.Table, unit AngleUnit, prec uint) (*big.Float, error) {
	in := &interpreter{syms: syms, unit: unit, prec: prec, cache: NewCache(), maxDepth: DefaultMaxDepth}
	return in.run(stmts)
}

func (in *interpreter) run(stmts []ast.Stmt) (*big.Float, error) {
	if in.prec == 0 {
		return nil, &Error{Kind: InvalidPrecision}
	}
	var result *big.Float
	for _, stmt := range stmts {
		log.LogVf("eval %s", stmt)
		in.hinted = false
		switch stmt := stmt.(type) {
		case *ast.ExprStmt:
			v, err := in.eval(stmt.Expr)
			if err != nil {
				return nil, err
			}
			result = v
		case *ast.VarDecl:
			in.syms.Insert(stmt.Name, stmt)
			result = nil
		case *ast.FnDecl:
			// Normally already inserted by the parser.
			if cur, ok := in.syms.Fn(stmt.Name); !ok || cur != stmt {
				in.syms.Insert(symbols.FnKey(stmt.Name), stmt)
			}
			result = nil
		default:
			return nil, fmt.Errorf("unknown statement type %T", stmt)
		}
	}
	return result, nil
}

func (in *interpreter) newFloat() *big.Float {
	return new(big.Float).SetPrec(in.prec)
}

func (in *interpreter) eval(expr ast.Expr) (*big.Float, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return in.literal(e.Value)
	case *ast.Group:
		return in.eval(e.Inner)
	case *ast.Unary:
		return in.unary(e)
	case *ast.Binary:
		return in.binary(e)
	case *ast.Var:
		return in.variable(e.Name)
	case *ast.FnCall:
		return in.call(e)
	case *ast.Unit:
		return in.withUnit(e)
	default:
		return nil, fmt.Errorf("unknown node type %T", expr)
	}
}

func (in *interpreter) literal(text string) (*big.Float, error) {
	if v, ok := in.cache.Get(text, in.prec); ok {
		return v, nil
	}
	v, _, err := in.newFloat().Parse(text, 0)
	if err != nil {
		log.LogVf("literal %q: %v", text, err)
		return nil, in.Error(&Error{Kind: InvalidNumberLiteral, Value: text})
	}
	in.cache.Set(text, in.prec, v)
	return v, nil
}

func (in *interpreter) unary(u *ast.Unary) (*big.Float, error) {
	v, err := in.eval(u.Right)
	if err != nil {
		return nil, err
	}
	switch u.Op { //nolint:exhaustive // only - and ! are unary.
	case token.MINUS:
		return in.newFloat().Neg(v), nil
	case token.BANG:
		return in.factorial(v)
	default:
		return nil, fmt.Errorf("unknown unary operator %s", u.Op)
	}
}

func (in *interpreter) factorial(v *big.Float) (*big.Float, error) {
	n, acc := v.Int64()
	if !v.IsInt() || acc != big.Exact || n < 0 || n > MaxFactorial {
		return nil, in.Error(&Error{Kind: FactorialDomain, Name: "!", Value: v.Text('g', 10)})
	}
	return bignum.Factorial(in.newFloat(), n), nil
}

func (in *interpreter) binary(b *ast.Binary) (*big.Float, error) {
	left, err := in.eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(b.Right)
	if err != nil {
		return nil, err
	}
	switch b.Op { //nolint:exhaustive // binary operators only.
	case token.SLASH:
		if right.Sign() == 0 {
			return nil, in.Error(&Error{Kind: DivisionByZero, Name: "/"})
		}
	case token.POWER:
		if left.Sign() == 0 && right.Sign() < 0 {
			return nil, in.Error(&Error{Kind: DivisionByZero, Name: "^"})
		}
		if left.Sign() < 0 && !right.IsInt() {
			return nil, in.Error(&Error{Kind: Domain, Name: "^", Value: right.Text('g', 10)})
		}
	}
	return in.guard(b.Op.Literal(), func(z *big.Float) *big.Float {
		switch b.Op { //nolint:exhaustive // binary operators only.
		case token.PLUS:
			return z.Add(left, right)
		case token.MINUS:
			return z.Sub(left, right)
		case token.ASTERISK:
			return z.Mul(left, right)
		case token.SLASH:
			return z.Quo(left, right)
		case token.POWER:
			return bignum.Pow(z, left, right)
		default:
			panic(fmt.Sprintf("unknown binary operator %s", b.Op))
		}
	})
}

// guard converts the big.ErrNaN panics of math/big and bignum into Domain
// errors and infinite results into Overflow errors.
func (in *interpreter) guard(name string, f func(z *big.Float) *big.Float) (res *big.Float, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); !ok {
				panic(r)
			}
			log.LogVf("%s: %v", name, r)
			res, err = nil, in.Error(&Error{Kind: Domain, Name: name})
		}
	}()
	res = f(in.newFloat())
	if res.IsInf() {
		log.LogVf("%s: overflow", name)
		return nil, in.Error(&Error{Kind: Overflow, Name: name})
	}
	return res, nil
}

func (in *interpreter) enter() error {
	if in.depth >= in.maxDepth {
		log.LogVf("max depth %d reached", in.maxDepth)
		return in.Error(&Error{Kind: MaxDepth, Expected: in.maxDepth})
	}
	in.depth++
	return nil
}

func (in *interpreter) leave() {
	in.depth--
}

// push evaluates expr in a new frame.
func (in *interpreter) push(f frame, expr ast.Expr) (*big.Float, error) {
	if err := in.enter(); err != nil {
		return nil, err
	}
	in.frames = append(in.frames, f)
	v, err := in.eval(expr)
	in.frames = in.frames[:len(in.frames)-1]
	in.leave()
	return v, err
}

// Variables resolve to the arguments of the current call, then to global
// declarations and finally to constants.
func (in *interpreter) variable(name string) (*big.Float, error) {
	if n := len(in.frames); n > 0 {
		f := in.frames[n-1]
		if v, ok := f.args[name]; ok {
			if u, ok := f.units[name]; ok {
				in.hint, in.hinted = u, true
			}
			return in.newFloat().Set(v), nil
		}
	}
	if decl, ok := in.syms.Var(name); ok {
		// globals only see globals.
		return in.push(frame{}, decl.Value)
	}
	if c, ok := constants[name]; ok {
		return c(in.newFloat()), nil
	}
	return nil, in.Error(&Error{Kind: UndefinedVar, Name: name})
}

func (in *interpreter) args(exprs []ast.Expr) ([]*big.Float, error) {
	values := make([]*big.Float, 0, len(exprs))
	for _, e := range exprs {
		v, err := in.eval(e)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func (in *interpreter) call(c *ast.FnCall) (*big.Float, error) {
	if b, ok := builtins[c.Name]; ok {
		return in.builtin(b, c.Args)
	}
	fn, ok := in.syms.Fn(c.Name)
	if !ok {
		return nil, in.Error(&Error{Kind: UndefinedFn, Name: c.Name})
	}
	if len(c.Args) != len(fn.Params) {
		return nil, in.Error(&Error{Kind: ArgCount, Name: c.Name, Expected: len(fn.Params), Actual: len(c.Args)})
	}
	f := frame{name: c.Name, args: make(map[string]*big.Float, len(c.Args))}
	hint, hinted := in.hint, in.hinted
	for i, e := range c.Args {
		in.hinted = false
		v, err := in.eval(e)
		if err != nil {
			return nil, err
		}
		f.args[fn.Params[i]] = v
		if in.hinted {
			if f.units == nil {
				f.units = make(map[string]AngleUnit)
			}
			f.units[fn.Params[i]] = in.hint
		}
	}
	in.hint, in.hinted = hint, hinted
	return in.push(f, fn.Body)
}

func (in *interpreter) builtin(b Builtin, exprs []ast.Expr) (*big.Float, error) {
	n := len(exprs)
	if n < b.MinArgs || (b.MaxArgs != -1 && n > b.MaxArgs) {
		expected := b.MinArgs
		if n > b.MinArgs {
			expected = b.MaxArgs
		}
		return nil, in.Error(&Error{Kind: ArgCount, Name: b.Name, Expected: expected, Actual: n})
	}
	if b.Kind == Trig {
		x, unit, err := in.trigArg(exprs[0])
		if err != nil {
			return nil, err
		}
		return in.guard(b.Name, func(z *big.Float) *big.Float {
			s, c := in.sinCos(x, unit)
			return b.Ratio(z, s, c)
		})
	}
	args, err := in.args(exprs)
	if err != nil {
		return nil, err
	}
	switch b.Kind { //nolint:exhaustive // Trig handled above.
	case Inverse:
		return in.guard(b.Name, func(z *big.Float) *big.Float {
			r := b.Callback(new(big.Float).SetPrec(in.prec+guardBits), args)
			return in.fromRadians(z, r)
		})
	default:
		return in.guard(b.Name, func(z *big.Float) *big.Float {
			return b.Callback(z, args)
		})
	}
}

// sinCos returns the sine and cosine of x. Multiples of 90 degrees are exact.
func (in *interpreter) sinCos(x *big.Float, unit AngleUnit) (*big.Float, *big.Float) {
	prec := in.prec + guardBits
	if unit == Degrees {
		if q, ok := bignum.QuarterTurns(x); ok {
			sines := [4]int64{0, 1, 0, -1}
			return new(big.Float).SetPrec(prec).SetInt64(sines[q]), new(big.Float).SetPrec(prec).SetInt64(sines[(q+1)%4])
		}
		x = bignum.ToRadians(new(big.Float).SetPrec(prec), x)
	}
	return bignum.Sin(new(big.Float).SetPrec(prec), x), bignum.Cos(new(big.Float).SetPrec(prec), x)
}

func (in *interpreter) fromRadians(z, r *big.Float) *big.Float {
	if in.unit == Degrees {
		return bignum.ToDegrees(z, r)
	}
	return z.Set(r)
}

// The suffixed expression is evaluated in its own unit and the unit is
// noted for the enclosing trigonometric function: in sin(pi/2 rad) the
// argument is in radians whatever the session's unit.
func (in *interpreter) withUnit(u *ast.Unit) (*big.Float, error) {
	outer := in.unit
	in.unit = unitOf(u.Unit)
	v, err := in.eval(u.Inner)
	in.hint, in.hinted = in.unit, true
	in.unit = outer
	return v, err
}

// trigArg evaluates the argument of a trigonometric function and returns
// the unit it's expressed in.
func (in *interpreter) trigArg(arg ast.Expr) (*big.Float, AngleUnit, error) {
	hint, hinted := in.hint, in.hinted
	in.hinted = false
	v, err := in.eval(arg)
	unit := in.unit
	if in.hinted {
		unit = in.hint
	}
	in.hint, in.hinted = hint, hinted
	return v, unit, err
}
