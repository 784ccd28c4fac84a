package bignum

import (
	"math"
	"math/big"
)

// Number of argument halvings before the atan series.
const atanHalvings = 8

// MaxReductionExp bounds the binary exponent of arguments of Sin, Cos and
// Tan: reducing x modulo 2π needs about that many extra bits.
const MaxReductionExp = 1 << 14

// Extra bits needed to keep precision after reducing a large argument.
// Panics with big.ErrNaN above MaxReductionExp.
func extraBits(x *big.Float) uint {
	e := x.MantExp(nil)
	if e > MaxReductionExp || x.IsInf() {
		panic(big.ErrNaN{})
	}
	if e > 0 {
		return uint(e)
	}
	return 0
}

// Extra bits needed when the result of exp based formulas is much
// smaller than the exponentials involved.
func smallBits(x *big.Float) uint {
	if e := x.MantExp(nil); e < 0 {
		return uint(-e)
	}
	return 0
}

// small is true when term no longer changes sum at prec bits.
func small(term, sum *big.Float, prec uint) bool {
	if term.Sign() == 0 {
		return true
	}
	if sum.Sign() == 0 {
		return false
	}
	return term.MantExp(nil) < sum.MantExp(nil)-int(prec)
}

// reduce returns x - k·2π in [-π, π].
func reduce(x *big.Float, prec uint) *big.Float {
	twoPi := Pi(newFloat(prec))
	twoPi.SetMantExp(twoPi, 1)
	k := newFloat(prec).Quo(x, twoPi)
	Round(k, k, Nearest)
	r := newFloat(prec).Mul(k, twoPi)
	return r.Sub(x, r)
}

func sinSeries(x *big.Float, prec uint) *big.Float {
	sum := newFloat(prec).Set(x)
	term := newFloat(prec).Set(x)
	x2 := newFloat(prec).Mul(x, x)
	d := newFloat(prec)
	for n := int64(1); n < int64(prec); n++ {
		term.Mul(term, x2)
		term.Quo(term, d.SetInt64((2*n)*(2*n+1)))
		term.Neg(term)
		sum.Add(sum, term)
		if small(term, sum, prec) {
			break
		}
	}
	return sum
}

func cosSeries(x *big.Float, prec uint) *big.Float {
	sum := newFloat(prec).SetInt64(1)
	term := newFloat(prec).SetInt64(1)
	x2 := newFloat(prec).Mul(x, x)
	d := newFloat(prec)
	for n := int64(1); n < int64(prec); n++ {
		term.Mul(term, x2)
		term.Quo(term, d.SetInt64((2*n-1)*(2*n)))
		term.Neg(term)
		sum.Add(sum, term)
		if small(term, sum, prec) {
			break
		}
	}
	return sum
}

// Sin sets z to sin(x), x in radians.
func Sin(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return z.SetInt64(0)
	}
	prec := workPrec(z) + extraBits(x)
	return z.Set(sinSeries(reduce(x, prec), prec))
}

// Cos sets z to cos(x), x in radians.
func Cos(z, x *big.Float) *big.Float {
	prec := workPrec(z) + extraBits(x)
	return z.Set(cosSeries(reduce(x, prec), prec))
}

// Tan sets z to tan(x), x in radians.
func Tan(z, x *big.Float) *big.Float {
	prec := workPrec(z) + extraBits(x)
	r := reduce(x, prec)
	c := cosSeries(r, prec)
	if c.Sign() == 0 {
		panic(big.ErrNaN{})
	}
	s := sinSeries(r, prec)
	return z.Set(s.Quo(s, c))
}

// Atan sets z to atan(x), in radians.
func Atan(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return z.SetInt64(0)
	}
	prec := workPrec(z)
	one := newFloat(prec).SetInt64(1)
	t := newFloat(prec).Abs(x)
	invert := t.Cmp(one) > 0
	if invert {
		t.Quo(one, t)
	}
	// atan(t) = 2·atan(t / (1 + sqrt(1 + t²)))
	s := newFloat(prec)
	root := newFloat(prec)
	for range atanHalvings {
		s.Mul(t, t)
		s.Add(s, one)
		root.Sqrt(s)
		root.Add(root, one)
		t.Quo(t, root)
	}
	sum := newFloat(prec).Set(t)
	term := newFloat(prec).Set(t)
	t2 := newFloat(prec).Mul(t, t)
	q := newFloat(prec)
	d := newFloat(prec)
	for n := int64(1); n < int64(prec); n++ {
		term.Mul(term, t2)
		term.Neg(term)
		q.Quo(term, d.SetInt64(2*n+1))
		sum.Add(sum, q)
		if small(q, sum, prec) {
			break
		}
	}
	sum.SetMantExp(sum, atanHalvings)
	if invert {
		halfPi := Pi(newFloat(prec))
		halfPi.SetMantExp(halfPi, -1)
		sum.Sub(halfPi, sum)
	}
	if x.Sign() < 0 {
		sum.Neg(sum)
	}
	return z.Set(sum)
}

// Asin sets z to asin(x) in radians, |x| <= 1.
func Asin(z, x *big.Float) *big.Float {
	prec := workPrec(z)
	one := newFloat(prec).SetInt64(1)
	ax := newFloat(prec).Abs(x)
	switch ax.Cmp(one) {
	case 1:
		panic(big.ErrNaN{})
	case 0:
		halfPi := Pi(newFloat(prec))
		halfPi.SetMantExp(halfPi, -1)
		if x.Sign() < 0 {
			halfPi.Neg(halfPi)
		}
		return z.Set(halfPi)
	}
	// asin(x) = atan(x / sqrt(1 - x²))
	d := newFloat(prec).Mul(x, x)
	d.Sub(one, d)
	root := newFloat(prec).Sqrt(d)
	t := newFloat(prec).Quo(x, root)
	return z.Set(Atan(newFloat(prec), t))
}

// Acos sets z to acos(x) in radians, |x| <= 1.
func Acos(z, x *big.Float) *big.Float {
	prec := workPrec(z)
	halfPi := Pi(newFloat(prec))
	halfPi.SetMantExp(halfPi, -1)
	a := Asin(newFloat(prec), x)
	return z.Set(a.Sub(halfPi, a))
}

// expPair returns e**x and e**-x.
func expPair(x *big.Float, prec uint) (*big.Float, *big.Float) {
	xx := newFloat(prec).Set(x)
	ex := Exp(newFloat(prec), xx)
	emx := newFloat(prec).Quo(newFloat(prec).SetInt64(1), ex)
	return ex, emx
}

// Sinh sets z to sinh(x).
func Sinh(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return z.SetInt64(0)
	}
	prec := workPrec(z) + smallBits(x)
	ex, emx := expPair(x, prec)
	ex.Sub(ex, emx)
	return z.Set(ex.SetMantExp(ex, -1))
}

// Cosh sets z to cosh(x).
func Cosh(z, x *big.Float) *big.Float {
	prec := workPrec(z)
	ex, emx := expPair(x, prec)
	ex.Add(ex, emx)
	return z.Set(ex.SetMantExp(ex, -1))
}

// Tanh sets z to tanh(x).
func Tanh(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return z.SetInt64(0)
	}
	prec := workPrec(z) + smallBits(x)
	// 1 - |tanh(x)| < 2e**-2|x|, below the precision.
	if xf, _ := x.Float64(); math.Abs(xf) > float64(prec) {
		return z.SetInt64(int64(x.Sign()))
	}
	ex, emx := expPair(x, prec)
	n := newFloat(prec).Sub(ex, emx)
	d := newFloat(prec).Add(ex, emx)
	return z.Set(n.Quo(n, d))
}

// Asinh sets z to asinh(x) = ln(x + sqrt(x² + 1)).
func Asinh(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return z.SetInt64(0)
	}
	prec := workPrec(z) + smallBits(x)
	ax := newFloat(prec).Abs(x)
	s := newFloat(prec).Mul(ax, ax)
	s.Add(s, newFloat(prec).SetInt64(1))
	r := newFloat(prec).Sqrt(s)
	r.Add(r, ax)
	Log(r, r)
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return z.Set(r)
}

// Acosh sets z to acosh(x) = ln(x + sqrt(x² - 1)), x >= 1.
func Acosh(z, x *big.Float) *big.Float {
	prec := workPrec(z)
	one := newFloat(prec).SetInt64(1)
	if x.Cmp(one) < 0 {
		panic(big.ErrNaN{})
	}
	s := newFloat(prec).Mul(x, x)
	s.Sub(s, one)
	r := newFloat(prec).Sqrt(s)
	r.Add(r, x)
	return z.Set(Log(r, r))
}

// Atanh sets z to atanh(x) = ln((1 + x) / (1 - x)) / 2, |x| < 1.
func Atanh(z, x *big.Float) *big.Float {
	if x.Sign() == 0 {
		return z.SetInt64(0)
	}
	prec := workPrec(z) + smallBits(x)
	one := newFloat(prec).SetInt64(1)
	if newFloat(prec).Abs(x).Cmp(one) >= 0 {
		panic(big.ErrNaN{})
	}
	n := newFloat(prec).Add(one, x)
	d := newFloat(prec).Sub(one, x)
	n.Quo(n, d)
	Log(n, n)
	return z.Set(n.SetMantExp(n, -1))
}

// ToRadians sets z to x degrees expressed in radians.
func ToRadians(z, x *big.Float) *big.Float {
	prec := workPrec(z)
	r := Pi(newFloat(prec))
	r.Mul(r, x)
	return z.Set(r.Quo(r, newFloat(prec).SetInt64(180)))
}

// ToDegrees sets z to x radians expressed in degrees.
func ToDegrees(z, x *big.Float) *big.Float {
	prec := workPrec(z)
	r := newFloat(prec).Mul(x, newFloat(prec).SetInt64(180))
	return z.Set(r.Quo(r, Pi(newFloat(prec))))
}

// QuarterTurns reports whether x degrees is an exact multiple of 90 and
// if so how many quarter turns (0 to 3) it represents.
func QuarterTurns(x *big.Float) (int64, bool) {
	if x.IsInf() {
		return 0, false
	}
	q := newFloat(x.Prec()+guardBits).Quo(x, big.NewFloat(90))
	if q.Acc() != big.Exact || !q.IsInt() {
		return 0, false
	}
	if q.Sign() == 0 {
		return 0, true
	}
	// q = m·2^k with m odd, a multiple of 4 when k >= 2.
	if q.MantExp(nil)-int(q.MinPrec()) >= 2 {
		return 0, true
	}
	i, _ := q.Int(nil)
	return new(big.Int).Mod(i, big.NewInt(4)).Int64(), true
}
