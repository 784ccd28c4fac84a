// Package bignum adds the big.Float functions missing from math/big and
// bigfloat: trigonometry, rounding, integer powers and factorial.
//
// Functions follow the math/big convention: the result is stored in z, at
// z's precision (which must be set), and z is returned. Arguments outside a
// function's domain make it panic with big.ErrNaN; callers check domains first.
package bignum

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Extra bits carried through intermediate computations.
const guardBits = 64

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

func workPrec(z *big.Float) uint {
	p := z.Prec()
	if p == 0 {
		p = 53
	}
	return p + guardBits
}

// Pi sets z to π.
func Pi(z *big.Float) *big.Float {
	return bigfloat.Pi(z)
}

// expRange is the largest t for which e**t is within the exponent range
// of big.Float.
const expRange = math.MaxInt32 * math.Ln2

// outOfRange sets z to the limit of e**t, +Inf or 0, when it's outside the
// exponent range.
func outOfRange(z *big.Float, t float64) (*big.Float, bool) {
	switch {
	case t > expRange:
		return z.SetInf(false), true
	case t < -expRange:
		return z.SetInt64(0), true
	default:
		return z, false
	}
}

// lnAbs estimates ln|x|, x != 0.
func lnAbs(x *big.Float) float64 {
	m := new(big.Float)
	e := x.MantExp(m)
	f, _ := m.Float64()
	return (float64(e) + math.Log2(math.Abs(f))) * math.Ln2
}

// Exp sets z to e**x. Results beyond the exponent range are +Inf or 0.
func Exp(z, x *big.Float) *big.Float {
	xf, _ := x.Float64()
	if r, ok := outOfRange(z, xf); ok {
		return r
	}
	return bigfloat.Exp(z, x)
}

// Log sets z to the natural logarithm of x, x must be > 0.
func Log(z, x *big.Float) *big.Float {
	if x.Sign() <= 0 {
		panic(big.ErrNaN{})
	}
	return bigfloat.Log(z, x)
}

// Pow sets z to x**y. Integer exponents are computed by repeated squaring,
// which also handles negative bases. Non integer exponents need x > 0.
// 0**0 is 1 and 0**y with y < 0 panics.
func Pow(z, x, y *big.Float) *big.Float {
	if x.Sign() == 0 {
		switch y.Sign() {
		case 0:
			return z.SetInt64(1)
		case 1:
			return z.SetInt64(0)
		default:
			panic(big.ErrNaN{})
		}
	}
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact {
			return PowInt(z, x, n)
		}
		return powHugeInt(z, x, y)
	}
	if x.Sign() < 0 {
		panic(big.ErrNaN{})
	}
	yf, _ := y.Float64()
	if r, ok := outOfRange(z, yf*lnAbs(x)); ok {
		return r
	}
	prec := workPrec(z)
	xx := newFloat(prec).Set(x)
	yy := newFloat(prec).Set(y)
	r := bigfloat.Pow(newFloat(prec), xx, yy)
	return z.Set(r)
}

// powHugeInt is x**y for integers y beyond int64, x != 0.
func powHugeInt(z, x, y *big.Float) *big.Float {
	// y = m·2^k with m odd, y is odd when k is 0.
	negate := x.Sign() < 0 && y.MantExp(nil) == int(y.MinPrec())
	ax := new(big.Float).Abs(x)
	if ax.Cmp(big.NewFloat(1)) == 0 {
		z.SetInt64(1)
	} else {
		yf, _ := y.Float64()
		if _, ok := outOfRange(z, yf*lnAbs(ax)); !ok {
			prec := workPrec(z)
			r := bigfloat.Pow(newFloat(prec), newFloat(prec).Set(ax), newFloat(prec).Set(y))
			z.Set(r)
		}
	}
	if negate {
		z.Neg(z)
	}
	return z
}

// PowInt sets z to x**n.
func PowInt(z, x *big.Float, n int64) *big.Float {
	neg := n < 0
	u := uint64(n)
	if neg {
		u = uint64(-n)
	}
	prec := workPrec(z) + uint(bitLen(u))
	r := newFloat(prec).SetInt64(1)
	b := newFloat(prec).Set(x)
	for u > 0 {
		if u&1 == 1 {
			r.Mul(r, b)
		}
		u >>= 1
		if u > 0 {
			b.Mul(b, b)
		}
	}
	if neg {
		if x.Sign() == 0 {
			panic(big.ErrNaN{})
		}
		if r.Sign() == 0 {
			// x**-n underflowed, its inverse is out of range.
			return z.SetInf(r.Signbit())
		}
		r.Quo(newFloat(prec).SetInt64(1), r)
	}
	return z.Set(r)
}

func bitLen(u uint64) int {
	n := 0
	for u > 0 {
		n++
		u >>= 1
	}
	return n
}

// Factorial sets z to n!.
func Factorial(z *big.Float, n int64) *big.Float {
	if n < 0 {
		panic(big.ErrNaN{})
	}
	return z.SetInt(new(big.Int).MulRange(1, n))
}

// Root sets z to the n-th root of x. Odd roots of negative numbers are negative.
func Root(z, x *big.Float, n int64) *big.Float {
	if n == 0 {
		panic(big.ErrNaN{})
	}
	if x.Sign() == 0 {
		return z.SetInt64(0)
	}
	if x.Sign() < 0 && n%2 == 0 {
		panic(big.ErrNaN{})
	}
	if n == 2 {
		return z.Sqrt(x)
	}
	prec := workPrec(z)
	ax := newFloat(prec).Abs(x)
	r := Log(newFloat(prec), ax)
	r.Quo(r, newFloat(prec).SetInt64(n))
	Exp(r, r)
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return z.Set(r)
}

// RoundMode selects how Round converts to an integer.
type RoundMode uint8

const (
	Floor RoundMode = iota
	Ceil
	Trunc
	Nearest // half away from zero
)

// Round sets z to x rounded to an integer using mode.
func Round(z, x *big.Float, mode RoundMode) *big.Float {
	if x.IsInf() || x.IsInt() {
		return z.Set(x)
	}
	if mode == Nearest {
		half := newFloat(workPrec(z)).SetFloat64(0.5)
		ax := newFloat(workPrec(z) + uint(max(0, x.MantExp(nil)))).Abs(x)
		ax.Add(ax, half)
		Round(ax, ax, Floor)
		if x.Sign() < 0 {
			ax.Neg(ax)
		}
		return z.Set(ax)
	}
	i, acc := x.Int(nil) // truncated toward zero
	switch {
	case mode == Floor && acc == big.Above:
		i.Sub(i, big.NewInt(1))
	case mode == Ceil && acc == big.Below:
		i.Add(i, big.NewInt(1))
	}
	return z.SetInt(i)
}
