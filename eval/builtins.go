package eval

import (
	"errors"
	"fmt"
	"math/big"

	"fortio.org/log"
	"fortio.org/sets"
	"grol.io/calc/bignum"
)

// Kind tells the interpreter how angles flow through a builtin.
type Kind uint8

const (
	Plain   Kind = iota
	Trig         // argument is an angle in the effective unit.
	Inverse      // result is an angle in the effective unit.
)

// Callback computes a builtin into z, at z's precision. Arguments outside
// the domain make it panic with big.ErrNaN.
type Callback func(z *big.Float, args []*big.Float) *big.Float

// Ratio computes a trigonometric function from the sine and cosine of its argument.
type Ratio func(z, sin, cos *big.Float) *big.Float

type Builtin struct {
	Name     string
	MinArgs  int
	MaxArgs  int // -1 for variadic.
	Kind     Kind
	Callback Callback // Plain and Inverse.
	Ratio    Ratio    // Trig.
}

var (
	builtins  = make(map[string]Builtin)
	constants = map[string]func(z *big.Float) *big.Float{
		"pi":  bignum.Pi,
		"tau": tau,
		"e":   euler,
		"phi": phi,
	}
)

// register validates b and adds it to the registry.
func register(b Builtin) error {
	if b.Name == "" {
		return errors.New("empty builtin name")
	}
	if b.MaxArgs != -1 && b.MinArgs > b.MaxArgs {
		return fmt.Errorf("%s: min args > max args", b.Name)
	}
	if (b.Kind == Trig) != (b.Ratio != nil) || (b.Kind != Trig && b.Callback == nil) {
		return fmt.Errorf("%s: callback does not match kind %d", b.Name, b.Kind)
	}
	if _, ok := builtins[b.Name]; ok {
		return fmt.Errorf("%s: already defined", b.Name)
	}
	builtins[b.Name] = b
	return nil
}

// LookupBuiltin returns the builtin function name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// BuiltinNames returns the sorted names of builtin functions and constants.
func BuiltinNames() []string {
	names := sets.New[string]()
	for n := range builtins {
		names.Add(n)
	}
	for n := range constants {
		names.Add(n)
	}
	return sets.Sort(names)
}

func tau(z *big.Float) *big.Float {
	bignum.Pi(z)
	return z.SetMantExp(z, 1)
}

func euler(z *big.Float) *big.Float {
	return bignum.Exp(z, big.NewFloat(1))
}

func phi(z *big.Float) *big.Float {
	prec := z.Prec() + 64
	r := new(big.Float).SetPrec(prec).SetInt64(5)
	r.Sqrt(r)
	r.Add(r, big.NewFloat(1))
	return z.Set(r.SetMantExp(r, -1))
}

type oneArg func(z, x *big.Float) *big.Float

func unary(f oneArg) Callback {
	return func(z *big.Float, args []*big.Float) *big.Float {
		return f(z, args[0])
	}
}

// inverse returns 1/f(x).
func inverse(f oneArg) oneArg {
	return func(z, x *big.Float) *big.Float {
		r := f(new(big.Float).SetPrec(z.Prec()+64), x)
		if r.Sign() == 0 {
			panic(big.ErrNaN{})
		}
		return z.Quo(big.NewFloat(1), r)
	}
}

// ofInverse returns f(1/x).
func ofInverse(f oneArg) oneArg {
	return func(z, x *big.Float) *big.Float {
		if x.Sign() == 0 {
			panic(big.ErrNaN{})
		}
		r := new(big.Float).SetPrec(z.Prec()+64).Quo(big.NewFloat(1), x)
		return f(z, r)
	}
}

func rounding(mode bignum.RoundMode) oneArg {
	return func(z, x *big.Float) *big.Float {
		return bignum.Round(z, x, mode)
	}
}

func quo(z, n, d *big.Float) *big.Float {
	if d.Sign() == 0 {
		panic(big.ErrNaN{})
	}
	return z.Quo(n, d)
}

func abs(z, x *big.Float) *big.Float {
	return z.Abs(x)
}

func frac(z, x *big.Float) *big.Float {
	t := bignum.Round(new(big.Float).SetPrec(x.Prec()), x, bignum.Trunc)
	return z.Sub(x, t)
}

func sqrt(z, x *big.Float) *big.Float {
	if x.Sign() < 0 {
		panic(big.ErrNaN{})
	}
	return bignum.Root(z, x, 2)
}

func cbrt(z, x *big.Float) *big.Float {
	return bignum.Root(z, x, 3)
}

// root(x, n) is the n-th root of x, n a non zero integer.
func root(z *big.Float, args []*big.Float) *big.Float {
	n, acc := args[1].Int64()
	if acc != big.Exact || n == 0 {
		panic(big.ErrNaN{})
	}
	if n < 0 {
		return inverse(func(z, x *big.Float) *big.Float { return bignum.Root(z, x, -n) })(z, args[0])
	}
	return bignum.Root(z, args[0], n)
}

// log(x) is the base 10 logarithm, log(x, b) the base b one.
func logarithm(z *big.Float, args []*big.Float) *big.Float {
	prec := z.Prec() + 64
	base := big.NewFloat(10)
	if len(args) > 1 {
		base = args[1]
	}
	one := big.NewFloat(1)
	if base.Sign() <= 0 || base.Cmp(one) == 0 {
		panic(big.ErrNaN{})
	}
	n := bignum.Log(new(big.Float).SetPrec(prec), args[0])
	d := bignum.Log(new(big.Float).SetPrec(prec), base)
	return z.Quo(n, d)
}

func extremum(sign int) Callback {
	return func(z *big.Float, args []*big.Float) *big.Float {
		best := args[0]
		for _, a := range args[1:] {
			if a.Cmp(best) == sign {
				best = a
			}
		}
		return z.Set(best)
	}
}

func acot(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		bignum.Pi(z)
		return z.SetMantExp(z, -1)
	}
	return ofInverse(bignum.Atan)(z, x)
}

func init() {
	for _, b := range []Builtin{
		{Name: "abs", Callback: unary(abs)},
		{Name: "ceil", Callback: unary(rounding(bignum.Ceil))},
		{Name: "floor", Callback: unary(rounding(bignum.Floor))},
		{Name: "round", Callback: unary(rounding(bignum.Nearest))},
		{Name: "trunc", Callback: unary(rounding(bignum.Trunc))},
		{Name: "frac", Callback: unary(frac)},
		{Name: "sqrt", Callback: unary(sqrt)},
		{Name: "cbrt", Callback: unary(cbrt)},
		{Name: "root", MinArgs: 2, MaxArgs: 2, Callback: root},
		{Name: "exp", Callback: unary(bignum.Exp)},
		{Name: "ln", Callback: unary(bignum.Log)},
		{Name: "log", MaxArgs: 2, Callback: logarithm},
		{Name: "min", MaxArgs: -1, Callback: extremum(-1)},
		{Name: "max", MaxArgs: -1, Callback: extremum(1)},
		{Name: "sinh", Callback: unary(bignum.Sinh)},
		{Name: "cosh", Callback: unary(bignum.Cosh)},
		{Name: "tanh", Callback: unary(bignum.Tanh)},
		{Name: "coth", Callback: unary(inverse(bignum.Tanh))},
		{Name: "sech", Callback: unary(inverse(bignum.Cosh))},
		{Name: "csch", Callback: unary(inverse(bignum.Sinh))},
		{Name: "asinh", Callback: unary(bignum.Asinh)},
		{Name: "acosh", Callback: unary(bignum.Acosh)},
		{Name: "atanh", Callback: unary(bignum.Atanh)},
		{Name: "sin", Kind: Trig, Ratio: func(z, s, _ *big.Float) *big.Float { return z.Set(s) }},
		{Name: "cos", Kind: Trig, Ratio: func(z, _, c *big.Float) *big.Float { return z.Set(c) }},
		{Name: "tan", Kind: Trig, Ratio: func(z, s, c *big.Float) *big.Float { return quo(z, s, c) }},
		{Name: "cot", Kind: Trig, Ratio: func(z, s, c *big.Float) *big.Float { return quo(z, c, s) }},
		{Name: "sec", Kind: Trig, Ratio: func(z, _, c *big.Float) *big.Float { return quo(z, big.NewFloat(1), c) }},
		{Name: "csc", Kind: Trig, Ratio: func(z, s, _ *big.Float) *big.Float { return quo(z, big.NewFloat(1), s) }},
		{Name: "asin", Kind: Inverse, Callback: unary(bignum.Asin)},
		{Name: "acos", Kind: Inverse, Callback: unary(bignum.Acos)},
		{Name: "atan", Kind: Inverse, Callback: unary(bignum.Atan)},
		{Name: "acot", Kind: Inverse, Callback: unary(acot)},
		{Name: "asec", Kind: Inverse, Callback: unary(ofInverse(bignum.Acos))},
		{Name: "acsc", Kind: Inverse, Callback: unary(ofInverse(bignum.Asin))},
	} {
		if b.MinArgs == 0 {
			b.MinArgs = 1
		}
		if b.MaxArgs == 0 {
			b.MaxArgs = 1
		}
		if err := register(b); err != nil {
			log.Fatalf("builtin registration: %v", err)
		}
	}
}
