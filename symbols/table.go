// Package symbols is the environment shared by the parser and the interpreter:
// declared names mapped to the statement that declared them.
package symbols

import (
	"strings"

	"fortio.org/log"
	"fortio.org/sets"
	"grol.io/calc/ast"
	"grol.io/calc/trie"
)

// FnSuffix distinguishes function keys from variable keys.
const FnSuffix = "()"

// FnKey is the key under which function name is stored.
func FnKey(name string) string {
	return name + FnSuffix
}

// Table is not safe for concurrent use, callers sharing one must serialize access.
type Table struct {
	store  map[string]ast.Stmt
	ids    *trie.Trie
	numSet int64
}

func New() *Table {
	return &Table{store: make(map[string]ast.Stmt)}
}

func (t *Table) Len() int {
	log.Debugf("Table.Len() called with %d entries", len(t.store))
	return len(t.store)
}

func (t *Table) Get(key string) (ast.Stmt, bool) {
	stmt, ok := t.store[key]
	return stmt, ok
}

// Insert adds or replaces (shadows) the declaration stored under key.
func (t *Table) Insert(key string, stmt ast.Stmt) {
	log.LogVf("Insert %s: %s", key, stmt)
	t.store[key] = stmt
	t.numSet++
	if t.ids != nil {
		t.ids.Insert(completionName(key))
	}
}

// Var returns the declaration of variable name.
func (t *Table) Var(name string) (*ast.VarDecl, bool) {
	stmt, ok := t.store[name]
	if !ok {
		return nil, false
	}
	v, ok := stmt.(*ast.VarDecl)
	return v, ok
}

// Fn returns the declaration of function name.
func (t *Table) Fn(name string) (*ast.FnDecl, bool) {
	stmt, ok := t.store[FnKey(name)]
	if !ok {
		return nil, false
	}
	f, ok := stmt.(*ast.FnDecl)
	return f, ok
}

func (t *Table) ContainsVar(name string) bool {
	_, ok := t.Var(name)
	return ok
}

func (t *Table) ContainsFn(name string) bool {
	_, ok := t.Fn(name)
	return ok
}

// NumSet is the cumulative number of insertions, it only grows.
func (t *Table) NumSet() int64 {
	return t.numSet
}

// Names returns the sorted keys.
func (t *Table) Names() []string {
	keys := sets.New[string]()
	for k := range t.store {
		keys.Add(k)
	}
	return sets.Sort(keys)
}

// RegisterTrie records existing and future names into tr, for completion.
func (t *Table) RegisterTrie(tr *trie.Trie) {
	t.ids = tr
	for k := range t.store {
		tr.Insert(completionName(k))
	}
}

// Functions complete up to and including their open parenthesis.
func completionName(key string) string {
	return strings.TrimSuffix(key, ")")
}
