package parser_test

import (
	"errors"
	"strings"
	"testing"

	"grol.io/calc/ast"
	"grol.io/calc/lexer"
	"grol.io/calc/parser"
	"grol.io/calc/symbols"
	"grol.io/calc/token"
)

// newTable returns a table where x and pi are variables and sqrt a function.
func newTable() *symbols.Table {
	syms := symbols.New()
	syms.Insert("x", &ast.VarDecl{Name: "x", Value: &ast.Literal{Value: "3"}})
	syms.Insert("pi", &ast.VarDecl{Name: "pi", Value: &ast.Literal{Value: "3.14159"}})
	syms.Insert(symbols.FnKey("sqrt"), &ast.FnDecl{Name: "sqrt", Params: []string{"a"}, Body: &ast.Var{Name: "a"}})
	return syms
}

func parse(t *testing.T, syms parser.Symbols, input string) []ast.Stmt {
	t.Helper()
	stmts, err := parser.Parse(syms, input)
	if err != nil {
		t.Fatalf("parse error for %q: %v", input, err)
	}
	return stmts
}

func Test_OperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "1 + (2 * 3)"},
		{"1 - 2 - 3", "(1 - 2) - 3"},
		{"8 / 4 / 2", "(8 / 4) / 2"},
		{"2^3^2", "2 ^ (3 ^ 2)"},
		{"2 ** 3", "2 ^ 3"},
		{"-2^2", "-(2 ^ 2)"},
		{"2^-1", "2 ^ -1"},
		{"--x", "--x"},
		{"-3!", "-3!"},
		{"5!!", "5!!"},
		{"2 * 3!", "2 * 3!"},
		{"1 × 2 ÷ 3", "(1 * 2) / 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 + 2 ; 3", "1 + 2\n3"},
		{"1\n\n2;;3", "1\n2\n3"},
		{"", "<empty>"},
		{";\n", "<empty>"},
	}
	for _, tt := range tests {
		got := ast.Program(parse(t, newTable(), tt.input))
		if got != tt.expected {
			t.Errorf("for %q expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestImplicitMultiplication(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"3x", "3 * x"},
		{"2 3", "2 * 3"},
		{"2(x + 1)", "2 * (x + 1)"},
		{"(1)(2)", "(1) * (2)"},
		{"2|x|", "2 * abs(x)"},
		{"|x||x|", "abs(x) * abs(x)"},
		{"2⌈x⌉", "2 * ceil(x)"},
		{"ab", "a * b"},
		{"xyz", "(x * y) * z"},
		{"x2", "x * 2"},
		{"3x^2", "3 * (x ^ 2)"},
		{"sqrt64", "sqrt(64)"},
		{"√16", "sqrt(16)"},
		{"2π", "2 * pi"},
		{"sqrt64x", "sqrt(64) * x"},
	}
	for _, tt := range tests {
		got := ast.Program(parse(t, newTable(), tt.input))
		if got != tt.expected {
			t.Errorf("for %q expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestUnknownFunctionPrefix(t *testing.T) {
	// Without a sqrt function, the letters are variables.
	got := ast.Program(parse(t, symbols.New(), "sqrt64"))
	expected := "(((s * q) * r) * t) * 64"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestKnownVariableNotSplit(t *testing.T) {
	syms := symbols.New()
	syms.Insert("xy", &ast.VarDecl{Name: "xy", Value: &ast.Literal{Value: "1"}})
	stmts := parse(t, syms, "xy")
	stmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", stmts[0])
	}
	if v, ok := stmt.Expr.(*ast.Var); !ok || v.Name != "xy" {
		t.Errorf("expected variable xy, got %#v", stmt.Expr)
	}
}

func TestGroupFunctions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"|x - 3|", "abs(x - 3)"},
		{"⌈2.5⌉ + ⌊2.5⌋", "ceil(2.5) + floor(2.5)"},
		{"|-|x||", "abs(-abs(x))"},
		{"|(2|x|)|", "abs((2 * abs(x)))"},
		{"⌈2|x|⌉", "ceil(2 * abs(x))"},
		{"|sqrt(2|x|)|", "abs(sqrt(2 * abs(x)))"},
	}
	for _, tt := range tests {
		got := ast.Program(parse(t, newTable(), tt.input))
		if got != tt.expected {
			t.Errorf("for %q expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestUnits(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		unit     token.Type
	}{
		{"90 deg", "90 deg", token.DEG},
		{"90°", "90 deg", token.DEG},
		{"(1 + 2) rad", "(1 + 2) rad", token.RAD},
		{"x deg", "x deg", token.DEG},
	}
	for _, tt := range tests {
		stmts := parse(t, newTable(), tt.input)
		got := ast.Program(stmts)
		if got != tt.expected {
			t.Errorf("for %q expected %q, got %q", tt.input, tt.expected, got)
		}
		u, ok := stmts[0].(*ast.ExprStmt).Expr.(*ast.Unit)
		if !ok {
			t.Errorf("for %q expected *ast.Unit, got %T", tt.input, stmts[0].(*ast.ExprStmt).Expr)
			continue
		}
		if u.Unit != tt.unit {
			t.Errorf("for %q expected unit %s, got %s", tt.input, tt.unit, u.Unit)
		}
	}
	got := ast.Program(parse(t, newTable(), "sqrt(90deg) + 1"))
	if got != "sqrt(90 deg) + 1" {
		t.Errorf("unit inside call: got %q", got)
	}
}

func TestVariableDeclaration(t *testing.T) {
	syms := symbols.New()
	stmts := parse(t, syms, "y = 2x + 1")
	decl, ok := stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", stmts[0])
	}
	if decl.Name != "y" || decl.Value.String() != "(2 * x) + 1" {
		t.Errorf("unexpected declaration %q", decl.String())
	}
	// Variables are only recorded when evaluated.
	if syms.ContainsVar("y") {
		t.Errorf("parsing should not declare variables")
	}
}

func TestFunctionDeclaration(t *testing.T) {
	syms := symbols.New()
	stmts := parse(t, syms, "f(a, b) = a b + 1; f(1, 2)")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	decl, ok := stmts[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", stmts[0])
	}
	if decl.String() != "f(a, b) = (a * b) + 1" {
		t.Errorf("unexpected declaration %q", decl.String())
	}
	fn, ok := syms.Fn("f")
	if !ok || fn != decl {
		t.Errorf("declaration not inserted in symbols: %v %v", fn, ok)
	}
	call, ok := stmts[1].(*ast.ExprStmt).Expr.(*ast.FnCall)
	if !ok || call.String() != "f(1, 2)" {
		t.Errorf("expected call f(1, 2), got %v", stmts[1])
	}
}

func TestFunctionDeclarationDropsNonVariables(t *testing.T) {
	syms := symbols.New()
	stmts := parse(t, syms, "g(a, 2, b+1) = a")
	decl := stmts[0].(*ast.FnDecl)
	if len(decl.Params) != 1 || decl.Params[0] != "a" {
		t.Errorf("expected params [a], got %v", decl.Params)
	}
}

func TestFunctionAvailableLaterInSameInput(t *testing.T) {
	syms := symbols.New()
	got := ast.Program(parse(t, syms, "h(a) = 2a\nh3"))
	expected := "h(a) = 2 * a\nh(3)"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestCallIsNotDeclaration(t *testing.T) {
	syms := newTable()
	tests := []struct {
		input    string
		expected string
	}{
		{"sqrt(4) + 1", "sqrt(4) + 1"},
		{"f(2)", "f(2)"},
		{"sqrt(4)x", "sqrt(4) * x"},
		{"sqrt()", "sqrt()"},
		{"x(1)", "x(1)"},
	}
	for _, tt := range tests {
		stmts := parse(t, syms, tt.input)
		if _, ok := stmts[0].(*ast.FnDecl); ok {
			t.Errorf("for %q got a declaration", tt.input)
		}
		if got := ast.Program(stmts); got != tt.expected {
			t.Errorf("for %q expected %q, got %q", tt.input, tt.expected, got)
		}
	}
	if syms.ContainsFn("f") {
		t.Errorf("f should not have been declared")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		kind     parser.ErrorKind
		expected token.Type
		pos      int
	}{
		{"1 +", parser.UnexpectedToken, token.NUMBER, 3},
		{"(1 + 2", parser.UnexpectedToken, token.RPAREN, 6},
		{"1)", parser.UnexpectedToken, token.EOF, 1},
		{"sqrt(1, 2", parser.UnexpectedToken, token.RPAREN, 9},
		{"|x", parser.UnexpectedToken, token.PIPE, 2},
		{"⌈x⌋", parser.UnexpectedToken, token.RCEIL, 4},
		{"2 * #", parser.InvalidOperator, 0, 4},
		{"2 * .", parser.InvalidOperator, 0, 4},
		{"deg", parser.InvalidUnit, 0, 0},
		{"1 + rad", parser.InvalidUnit, 0, 4},
		{"1__0", parser.InvalidNumberLiteral, 0, 0},
		{"2 * 1_", parser.InvalidNumberLiteral, 0, 4},
		{"1.2.3", parser.InvalidNumberLiteral, 0, 0},
		{"2 + 1..5", parser.InvalidNumberLiteral, 0, 4},
		{"x = ", parser.UnexpectedToken, token.NUMBER, 4},
		{"f(a) = ", parser.UnexpectedToken, token.NUMBER, 7},
		{"= 3", parser.UnexpectedToken, token.NUMBER, 0},
	}
	for _, tt := range tests {
		stmts, err := parser.Parse(newTable(), tt.input)
		if err == nil {
			t.Errorf("for %q expected an error, got %s", tt.input, ast.Program(stmts))
			continue
		}
		var perr *parser.Error
		if !errors.As(err, &perr) {
			t.Errorf("for %q expected *parser.Error, got %T", tt.input, err)
			continue
		}
		if perr.Kind != tt.kind {
			t.Errorf("for %q expected %s, got %s (%v)", tt.input, tt.kind, perr.Kind, err)
		}
		if tt.kind == parser.UnexpectedToken && perr.Expected != tt.expected {
			t.Errorf("for %q expected to expect %s, got %s", tt.input, tt.expected, perr.Expected)
		}
		if perr.Pos() != tt.pos {
			t.Errorf("for %q expected error at %d, got %d", tt.input, tt.pos, perr.Pos())
		}
		if stmts != nil {
			t.Errorf("for %q expected no statements on error", tt.input)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := parser.Parse(newTable(), "(1")
	if err == nil || err.Error() != `unexpected token "end of input", expected ")"` {
		t.Errorf("unexpected message: %v", err)
	}
	_, err = parser.Parse(newTable(), "2 * 1__0")
	if err == nil || err.Error() != `invalid number literal "1__0"` {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 2000) + "1" + strings.Repeat(")", 2000)
	for _, input := range []string{deep, strings.Repeat("-", 5000) + "1", strings.Repeat("2^", 5000) + "2"} {
		_, err := parser.Parse(newTable(), input)
		var perr *parser.Error
		if !errors.As(err, &perr) || perr.Kind != parser.MaxDepth {
			t.Errorf("expected max depth error, got %v", err)
			continue
		}
		if perr.Limit != parser.DefaultMaxDepth {
			t.Errorf("expected limit %d, got %d", parser.DefaultMaxDepth, perr.Limit)
		}
	}
	p := parser.New(lexer.New("((((1))))").Tokens(), newTable())
	p.MaxDepth = 3
	if _, err := p.ParseProgram(); err == nil {
		t.Errorf("expected error with MaxDepth 3")
	}
	p = parser.New(lexer.New("((1))").Tokens(), newTable())
	p.MaxDepth = 10
	if _, err := p.ParseProgram(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewAddsEOF(t *testing.T) {
	tokens := []token.Token{
		token.New(token.NUMBER, "1", 0),
		token.ByType(token.PLUS, 1),
		token.New(token.NUMBER, "2", 2),
	}
	stmts, err := parser.New(tokens, newTable()).ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ast.Program(stmts); got != "1 + 2" {
		t.Errorf("got %q", got)
	}
	stmts, err = parser.New(nil, newTable()).ParseProgram()
	if err != nil || len(stmts) != 0 {
		t.Errorf("expected no statements for no tokens, got %v %v", stmts, err)
	}
}

// Printing a parsed program and parsing it again gives the same program.
func TestPrintReparse(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3 - 4 / 5",
		"-2^-3^2",
		"3x^2 + 2x - 1",
		"|x - 3| + ⌈x / 2⌉ * ⌊x⌋",
		"sqrt64 + sqrt(2, 3)",
		"f(a, b) = a^b + x",
		"f(2, 3)!",
		"y = (1 + 2) deg",
		"5!! - -x",
		"ab(c)",
	}
	for _, input := range inputs {
		first := ast.Program(parse(t, newTable(), input))
		second := ast.Program(parse(t, newTable(), first))
		if first != second {
			t.Errorf("for %q: %q reparsed as %q", input, first, second)
		}
	}
}

func TestValidNumber(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"1", true},
		{"1_000", true},
		{"1_000.5", true},
		{".5", true},
		{"1.", true},
		{"1_2_3", true},
		{"1__0", false},
		{"1_", false},
		{"_1", false},
		{"1_.5", false},
		{"1._5", false},
		{"1.2.3", false},
		{".", false},
		{"", false},
		{"1e5", false},
	}
	for _, tt := range tests {
		if got := parser.ValidNumber(tt.input); got != tt.valid {
			t.Errorf("ValidNumber(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}
