package eval

import (
	"math/big"

	"fortio.org/log"
	"grol.io/calc/ast"
	"grol.io/calc/lexer"
	"grol.io/calc/parser"
	"grol.io/calc/symbols"
	"grol.io/calc/trie"
)

// Exported part of the eval package.

// Session owns the symbol table shared by successive parses and evaluations,
// the ambient angle unit and the literal cache. It is not safe for concurrent
// use.
type Session struct {
	syms  *symbols.Table
	unit  AngleUnit
	cache Cache
	// Max nested user function calls and variable expansions, default DefaultMaxDepth.
	MaxDepth int
	// Max expression nesting accepted by the parser, default parser.DefaultMaxDepth.
	MaxNesting int
	lastNumSet int64
}

func NewSession(unit AngleUnit) *Session {
	return &Session{
		syms:       symbols.New(),
		unit:       unit,
		cache:      NewCache(),
		MaxDepth:   DefaultMaxDepth,
		MaxNesting: parser.DefaultMaxDepth,
	}
}

func (s *Session) AngleUnit() AngleUnit {
	return s.unit
}

func (s *Session) SetAngleUnit(unit AngleUnit) {
	log.LogVf("angle unit set to %s", unit)
	s.unit = unit
}

func (s *Session) Symbols() *symbols.Table {
	return s.syms
}

// RegisterTrie sets up the Trie to record builtins and all declared names.
func (s *Session) RegisterTrie(t *trie.Trie) {
	for _, n := range BuiltinNames() {
		if IsBuiltin(n) {
			n += "("
		}
		t.Insert(n)
	}
	s.syms.RegisterTrie(t)
}

// UpdateNumSet returns the previous and current cumulative number of
// declarations, if unchanged nothing was declared since the last call.
func (s *Session) UpdateNumSet() (oldvalue, newvalue int64) {
	oldvalue = s.lastNumSet
	newvalue = s.syms.NumSet()
	s.lastNumSet = newvalue
	return
}

// scope is the parser's view of the session: builtins are known names too.
type scope struct {
	*symbols.Table
}

func (sc scope) ContainsVar(name string) bool {
	return sc.Table.ContainsVar(name) || IsConstant(name)
}

func (sc scope) ContainsFn(name string) bool {
	return sc.Table.ContainsFn(name) || IsBuiltin(name)
}

// Parse parses text. Function declarations are added to the session as
// they're parsed, even if a later statement fails.
func (s *Session) Parse(text string) ([]ast.Stmt, error) {
	p := parser.New(lexer.New(text).Tokens(), scope{s.syms})
	p.MaxDepth = s.MaxNesting
	return p.ParseProgram()
}

// Interpret evaluates already parsed statements with prec bits of precision.
func (s *Session) Interpret(stmts []ast.Stmt, prec uint) (*big.Float, error) {
	in := &interpreter{syms: s.syms, unit: s.unit, prec: prec, cache: s.cache, maxDepth: s.MaxDepth}
	return in.run(stmts)
}

// Eval parses and evaluates text with prec bits of precision. The result
// is nil when the last statement is a declaration.
func (s *Session) Eval(text string, prec uint) (*big.Float, error) {
	if prec == 0 {
		return nil, &Error{Kind: InvalidPrecision}
	}
	stmts, err := s.Parse(text)
	if err != nil {
		return nil, err
	}
	return s.Interpret(stmts, prec)
}
