// Package parser is a recursive descent parser for calculator input.
//
// Parsing depends on what is already declared: whether "f(x) = ..." is a
// declaration or "xy" is one variable or x*y is decided by consulting the
// Symbols, and function declarations are inserted as soon as they're parsed.
package parser

import (
	"unicode/utf8"

	"fortio.org/log"
	"grol.io/calc/ast"
	"grol.io/calc/lexer"
	"grol.io/calc/symbols"
	"grol.io/calc/token"
)

// DefaultMaxDepth bounds expression nesting.
const DefaultMaxDepth = 1000

// Symbols is what the parser needs to know about declared names.
type Symbols interface {
	ContainsVar(name string) bool
	ContainsFn(name string) bool
	Insert(key string, stmt ast.Stmt)
}

type Parser struct {
	tokens   []token.Token
	pos      int
	syms     Symbols
	MaxDepth int
	depth    int
	bars     int // open |...| groups
}

// New creates a parser over tokens, an EOF token is added if missing.
func New(tokens []token.Token, syms Symbols) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		end := 0
		if len(tokens) > 0 {
			last := tokens[len(tokens)-1]
			end = last.Pos + len(last.Literal)
		}
		tokens = append(tokens, token.ByType(token.EOF, end))
	}
	return &Parser{tokens: tokens, syms: syms, MaxDepth: DefaultMaxDepth}
}

// Parse lexes and parses input.
func Parse(syms Symbols, input string) ([]ast.Stmt, error) {
	return New(lexer.New(input).Tokens(), syms).ParseProgram()
}

// ParseProgram parses statements until the end of input. On error no
// statement is returned, but function declarations parsed before the error
// stay in Symbols.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	p.pos = 0
	var stmts []ast.Stmt
	for {
		for p.is(token.SEMICOLON) {
			p.advance()
		}
		if p.atEnd() {
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if !p.is(token.SEMICOLON) && !p.atEnd() {
			return nil, p.unexpected(token.EOF)
		}
	}
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	if p.is(token.IDENT) {
		switch p.peekNext().Type { //nolint:exhaustive // only these two start declarations.
		case token.ASSIGN:
			return p.parseVarDecl()
		case token.LPAREN:
			return p.parseIdentifierStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	name := p.advance()
	p.advance() // =
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.VarDecl{Name: name.Literal, Value: value}, nil
}

// Function declarations and calls look the same up to the "=", so parse a
// call and turn it into a declaration if it's followed by one. Otherwise the
// call is thrown away and the whole statement is parsed again as an expression.
func (p *Parser) parseIdentifierStatement() (ast.Stmt, error) {
	checkpoint := p.pos
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if !p.is(token.ASSIGN) {
		log.Debugf("not a declaration, reparsing from %d", checkpoint)
		p.pos = checkpoint
		return p.parseExpressionStatement()
	}
	p.advance() // =
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	call, ok := primary.(*ast.FnCall)
	if !ok {
		return nil, &Error{Kind: Internal, Token: p.tokens[checkpoint]}
	}
	// Parameters were parsed as variable references, anything else is dropped.
	params := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		if v, ok := arg.(*ast.Var); ok {
			params = append(params, v.Name)
		}
	}
	decl := &ast.FnDecl{Name: call.Name, Params: params, Body: body}
	// Visible to the rest of the parse, e.g. for "sqrt64" style calls.
	p.syms.Insert(symbols.FnKey(call.Name), decl)
	return decl, nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.MaxDepth {
		return &Error{Kind: MaxDepth, Token: p.peek(), Limit: p.MaxDepth}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseSum()
}

func (p *Parser) parseSum() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.is(token.PLUS) || p.is(token.MINUS) {
		op := p.advance().Type
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
	return left, nil
}

// implicitMultiplication is true when the next token starts an operand
// juxtaposed to the previous one, e.g. 3x, 2 3, x y or 2(x+1).
func (p *Parser) implicitMultiplication() bool {
	switch p.peek().Type { //nolint:exhaustive // only operand starts.
	case token.IDENT, token.NUMBER, token.LPAREN, token.LCEIL, token.LFLOOR:
		return true
	case token.PIPE:
		// inside |...| a bar closes the group.
		return p.bars == 0
	default:
		return false
	}
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op token.Type
		switch {
		case p.is(token.ASTERISK) || p.is(token.SLASH):
			op = p.advance().Type
		case p.implicitMultiplication():
			op = token.ASTERISK
		default:
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op, Right: right}
	}
}

// Unary minus binds looser than ^ so -2^2 is -(2^2).
func (p *Parser) parseUnary() (ast.Expr, error) {
	if !p.is(token.MINUS) {
		return p.parseExponent()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	op := p.advance().Type
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Op: op, Right: right}, nil
}

// ^ is right associative and its right operand may be negated: 2^-1.
func (p *Parser) parseExponent() (ast.Expr, error) {
	left, err := p.parseFactorial()
	if err != nil {
		return nil, err
	}
	if !p.is(token.POWER) {
		return left, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	op := p.advance().Type
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Left: left, Op: op, Right: right}, nil
}

func (p *Parser) parseFactorial() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.is(token.BANG) {
		expr = &ast.Unary{Op: p.advance().Type, Right: expr}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	var expr ast.Expr
	var err error
	switch tok := p.peek(); tok.Type { //nolint:exhaustive // default covers the rest.
	case token.LPAREN:
		expr, err = p.parseGroup()
	case token.PIPE, token.LCEIL, token.LFLOOR:
		expr, err = p.parseGroupFn()
	case token.IDENT:
		expr, err = p.parseIdentifier()
	case token.NUMBER:
		expr, err = p.parseLiteral()
	case token.ILLEGAL:
		err = &Error{Kind: InvalidOperator, Token: tok}
	case token.DEG, token.RAD:
		err = &Error{Kind: InvalidUnit, Token: tok}
	default:
		err = p.unexpected(token.NUMBER)
	}
	if err != nil {
		return nil, err
	}
	if p.peek().Type.IsUnit() {
		expr = &ast.Unit{Inner: expr, Unit: p.advance().Type}
	}
	return expr, nil
}

func (p *Parser) parseLiteral() (ast.Expr, error) {
	tok := p.advance()
	if !ValidNumber(tok.Literal) {
		return nil, &Error{Kind: InvalidNumberLiteral, Token: tok}
	}
	return &ast.Literal{Value: tok.Literal}, nil
}

func (p *Parser) parseGroup() (ast.Expr, error) {
	p.advance() // (
	bars := p.bars
	p.bars = 0
	inner, err := p.parseExpression()
	p.bars = bars
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Group{Inner: inner}, nil
}

// |x| is abs(x), ⌈x⌉ is ceil(x) and ⌊x⌋ is floor(x).
func (p *Parser) parseGroupFn() (ast.Expr, error) {
	var name string
	var closing token.Type
	switch open := p.advance(); open.Type { //nolint:exhaustive // called only for the 3 openings.
	case token.PIPE:
		name, closing = "abs", token.PIPE
		p.bars++
		defer func() { p.bars-- }()
	case token.LCEIL:
		name, closing = "ceil", token.RCEIL
	case token.LFLOOR:
		name, closing = "floor", token.RFLOOR
	default:
		return nil, &Error{Kind: Internal, Token: open}
	}
	// A group restarts bar counting: |(2|x|)| is fine.
	bars := p.bars
	if closing != token.PIPE {
		p.bars = 0
	}
	inner, err := p.parseExpression()
	p.bars = bars
	if err != nil {
		return nil, err
	}
	if err := p.consume(closing); err != nil {
		return nil, err
	}
	return &ast.FnCall{Name: name, Args: []ast.Expr{inner}}, nil
}

func (p *Parser) parseIdentifier() (ast.Expr, error) {
	ident := p.advance()
	name := ident.Literal
	// sqrt64 is sqrt(64) when sqrt is a function.
	if p.is(token.NUMBER) && p.syms.ContainsFn(name) {
		arg, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &ast.FnCall{Name: name, Args: []ast.Expr{arg}}, nil
	}
	if p.is(token.LPAREN) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return &ast.FnCall{Name: name, Args: args}, nil
	}
	if p.syms.ContainsVar(name) {
		return &ast.Var{Name: name}, nil
	}
	// Unknown names are juxtaposed single letter variables: xy is x*y.
	first, size := utf8.DecodeRuneInString(name)
	var expr ast.Expr = &ast.Var{Name: string(first)}
	for _, r := range name[size:] {
		expr = &ast.Binary{Left: expr, Op: token.ASTERISK, Right: &ast.Var{Name: string(r)}}
	}
	return expr, nil
}

func (p *Parser) parseArguments() ([]ast.Expr, error) {
	p.advance() // (
	// Arguments are a fresh context for bars.
	bars := p.bars
	p.bars = 0
	defer func() { p.bars = bars }()
	var args []ast.Expr
	if p.is(token.RPAREN) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.is(token.COMMA) {
			break
		}
		p.advance()
	}
	if err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// ValidNumber checks the literal is digits with at most one dot and
// underscores only between digits.
func ValidNumber(s string) bool {
	digits := false
	dot := false
	prev := byte(0)
	for i := range len(s) {
		ch := s[i]
		switch {
		case '0' <= ch && ch <= '9':
			digits = true
		case ch == '.':
			if dot || prev == '_' {
				return false
			}
			dot = true
		case ch == '_':
			if prev < '0' || prev > '9' || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
		prev = ch
	}
	return digits
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

// advance returns the current token and moves to the next one, never past EOF.
func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) is(t token.Type) bool {
	res := p.peek().Type == t
	if res {
		log.Debugf("TokenIs indeed: %s", t)
	}
	return res
}

func (p *Parser) consume(t token.Type) error {
	if p.is(t) {
		p.advance()
		return nil
	}
	return p.unexpected(t)
}

func (p *Parser) unexpected(expected token.Type) error {
	tok := p.peek()
	log.LogVf("expected %s, found %s instead", expected, tok.DebugString())
	return &Error{Kind: UnexpectedToken, Token: tok, Expected: expected}
}
