package ast_test

import (
	"testing"

	"grol.io/calc/ast"
	"grol.io/calc/token"
)

func TestString(t *testing.T) {
	two := &ast.Literal{Value: "2"}
	x := &ast.Var{Name: "x"}
	tests := []struct {
		node     ast.Node
		expected string
	}{
		{&ast.Binary{Left: &ast.Literal{Value: "1"}, Op: token.PLUS, Right: &ast.Binary{Left: two, Op: token.ASTERISK, Right: x}}, "1 + (2 * x)"},
		{&ast.Binary{Left: &ast.Group{Inner: &ast.Binary{Left: two, Op: token.MINUS, Right: x}}, Op: token.SLASH, Right: two}, "(2 - x) / 2"},
		{&ast.Unary{Op: token.MINUS, Right: &ast.Binary{Left: two, Op: token.POWER, Right: two}}, "-(2 ^ 2)"},
		{&ast.Unary{Op: token.BANG, Right: &ast.Literal{Value: "5"}}, "5!"},
		{&ast.FnCall{Name: "max", Args: []ast.Expr{x, two}}, "max(x, 2)"},
		{&ast.FnCall{Name: "f"}, "f()"},
		{&ast.Unit{Inner: &ast.Literal{Value: "90"}, Unit: token.DEG}, "90 deg"},
		{&ast.ExprStmt{Expr: x}, "x"},
		{&ast.VarDecl{Name: "y", Value: two}, "y = 2"},
		{&ast.FnDecl{Name: "f", Params: []string{"a", "b"}, Body: &ast.Binary{Left: &ast.Var{Name: "a"}, Op: token.PLUS, Right: &ast.Var{Name: "b"}}}, "f(a, b) = a + b"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("String() got %q, expected %q", got, tt.expected)
		}
	}
}

func TestProgram(t *testing.T) {
	if got := ast.Program(nil); got != "<empty>" {
		t.Errorf("empty program got %q", got)
	}
	stmts := []ast.Stmt{
		&ast.VarDecl{Name: "x", Value: &ast.Literal{Value: "3"}},
		&ast.ExprStmt{Expr: &ast.Var{Name: "x"}},
	}
	if got := ast.Program(stmts); got != "x = 3\nx" {
		t.Errorf("Program() got %q", got)
	}
}
