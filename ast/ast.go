// Package ast defines the statements and expressions produced by the parser.
package ast

import (
	"strings"

	"grol.io/calc/token"
)

type Node interface {
	String() string // normalized string representation of the expression/statement.
}

// Expr is the closed set of expression nodes.
type Expr interface {
	Node
	expr()
}

// Stmt is the closed set of statement nodes.
type Stmt interface {
	Node
	stmt()
}

// Literal keeps the numeric text as lexed, it is only converted to a number
// (at the requested precision) during evaluation.
type Literal struct {
	Value string
}

type Binary struct {
	Left  Expr
	Op    token.Type
	Right Expr
}

// Unary is either a prefix MINUS or a postfix BANG (factorial).
type Unary struct {
	Op    token.Type
	Right Expr
}

type Var struct {
	Name string
}

type FnCall struct {
	Name string
	Args []Expr
}

// Group is an explicitly parenthesized expression.
type Group struct {
	Inner Expr
}

// Unit overrides the angle unit (DEG or RAD) for Inner.
type Unit struct {
	Inner Expr
	Unit  token.Type
}

func (*Literal) expr() {}
func (*Binary) expr()  {}
func (*Unary) expr()   {}
func (*Var) expr()     {}
func (*FnCall) expr()  {}
func (*Group) expr()   {}
func (*Unit) expr()    {}

// operand wraps binary expressions in parentheses so precedence is visible.
func operand(out *strings.Builder, e Expr) {
	if _, ok := e.(*Binary); ok {
		out.WriteString("(")
		out.WriteString(e.String())
		out.WriteString(")")
		return
	}
	out.WriteString(e.String())
}

func (l *Literal) String() string {
	return l.Value
}

func (b *Binary) String() string {
	out := strings.Builder{}
	operand(&out, b.Left)
	out.WriteString(" ")
	out.WriteString(b.Op.Literal())
	out.WriteString(" ")
	operand(&out, b.Right)
	return out.String()
}

func (u *Unary) String() string {
	out := strings.Builder{}
	if u.Op == token.BANG {
		operand(&out, u.Right)
		out.WriteString("!")
		return out.String()
	}
	out.WriteString(u.Op.Literal())
	operand(&out, u.Right)
	return out.String()
}

func (v *Var) String() string {
	return v.Name
}

func (f *FnCall) String() string {
	out := strings.Builder{}
	out.WriteString(f.Name)
	out.WriteString("(")
	WriteStrings(&out, f.Args, ", ")
	out.WriteString(")")
	return out.String()
}

func (g *Group) String() string {
	return "(" + g.Inner.String() + ")"
}

func (u *Unit) String() string {
	out := strings.Builder{}
	operand(&out, u.Inner)
	out.WriteString(" ")
	out.WriteString(u.Unit.Literal())
	return out.String()
}

type ExprStmt struct {
	Expr Expr
}

// VarDecl binds a name to an expression, not to its value.
type VarDecl struct {
	Name  string
	Value Expr
}

type FnDecl struct {
	Name   string
	Params []string
	Body   Expr
}

func (*ExprStmt) stmt() {}
func (*VarDecl) stmt()  {}
func (*FnDecl) stmt()   {}

func (e *ExprStmt) String() string {
	return e.Expr.String()
}

func (v *VarDecl) String() string {
	return v.Name + " = " + v.Value.String()
}

func (f *FnDecl) String() string {
	return f.Name + "(" + strings.Join(f.Params, ", ") + ") = " + f.Body.String()
}

// Program renders statements one per line.
func Program(stmts []Stmt) string {
	if len(stmts) == 0 {
		return "<empty>"
	}
	out := strings.Builder{}
	WriteStrings(&out, stmts, "\n")
	return out.String()
}

func WriteStrings[T Node](out *strings.Builder, list []T, sep string) {
	for i, p := range list {
		if i > 0 {
			out.WriteString(sep)
		}
		out.WriteString(p.String())
	}
}
