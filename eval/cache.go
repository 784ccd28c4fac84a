package eval

import (
	"math/big"
)

// CacheKey identifies a parsed literal: the same text parses differently
// at different precisions.
type CacheKey struct {
	Text string
	Prec uint
}

// Cache of parsed number literals, per session.
type Cache map[CacheKey]*big.Float

func NewCache() Cache {
	return make(Cache)
}

// Get returns a copy of the cached value, callers may modify it.
func (c Cache) Get(text string, prec uint) (*big.Float, bool) {
	v, ok := c[CacheKey{Text: text, Prec: prec}]
	if !ok {
		return nil, false
	}
	return new(big.Float).Copy(v), true
}

func (c Cache) Set(text string, prec uint, value *big.Float) {
	c[CacheKey{Text: text, Prec: prec}] = new(big.Float).Copy(value)
}
