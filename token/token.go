package token

import (
	"strconv"

	"fortio.org/log"
)

type Type uint8

// Token is a lexed unit of input. Tokens are values and never modified after creation.
type Token struct {
	Type    Type
	Literal string
	Pos     int // byte offset of the token in the input.
}

const (
	ILLEGAL Type = iota
	EOF

	// Identifiers + literals.
	IDENT  // x, sqrt, xy, ...
	NUMBER // 1343456, 3.14, .5, 1_000

	// Operators.
	PLUS
	MINUS
	ASTERISK
	SLASH
	POWER
	BANG
	ASSIGN

	// Delimiters.
	COMMA
	SEMICOLON // ; or newline

	LPAREN
	RPAREN
	PIPE
	LCEIL
	RCEIL
	LFLOOR
	RFLOOR

	// Angle unit suffixes.
	DEG
	RAD

	LAST
)

var names = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	NUMBER:    "NUMBER",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	ASTERISK:  "ASTERISK",
	SLASH:     "SLASH",
	POWER:     "POWER",
	BANG:      "BANG",
	ASSIGN:    "ASSIGN",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	PIPE:      "PIPE",
	LCEIL:     "LCEIL",
	RCEIL:     "RCEIL",
	LFLOOR:    "LFLOOR",
	RFLOOR:    "RFLOOR",
	DEG:       "DEG",
	RAD:       "RAD",
	LAST:      "LAST",
}

// Canonical source form of the fixed tokens, used for printing ASTs and errors.
var literals = [...]string{
	EOF:       "end of input",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	POWER:     "^",
	BANG:      "!",
	ASSIGN:    "=",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	PIPE:      "|",
	LCEIL:     "⌈",
	RCEIL:     "⌉",
	LFLOOR:    "⌊",
	RFLOOR:    "⌋",
	DEG:       "deg",
	RAD:       "rad",
	LAST:      "",
}

func (t Type) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Literal returns the canonical text for fixed tokens and "" for
// IDENT, NUMBER and ILLEGAL whose text varies.
func (t Type) Literal() string {
	if int(t) < len(literals) {
		return literals[t]
	}
	return ""
}

// IsUnit is true for the angle unit suffixes.
func (t Type) IsUnit() bool {
	return t == DEG || t == RAD
}

var keywords = map[string]Type{
	"deg": DEG,
	"rad": RAD,
}

// Single rune tokens that aren't ascii.
var runeTokens = map[rune]Type{
	'⌈': LCEIL,
	'⌉': RCEIL,
	'⌊': LFLOOR,
	'⌋': RFLOOR,
	'°': DEG,
	'×': ASTERISK,
	'÷': SLASH,
}

// Greek letters and symbols that are spelled out as identifiers.
var runeIdents = map[rune]string{
	'√': "sqrt",
	'∛': "cbrt",
	'π': "pi",
	'τ': "tau",
	'ϕ': "phi",
	'φ': "phi",
}

func New(t Type, literal string, pos int) Token {
	return Token{Type: t, Literal: literal, Pos: pos}
}

// ByType returns a fixed token with its canonical literal.
func ByType(t Type, pos int) Token {
	return Token{Type: t, Literal: t.Literal(), Pos: pos}
}

// LookupIdent returns DEG/RAD for the unit keywords and IDENT otherwise.
func LookupIdent(ident string, pos int) Token {
	if t, ok := keywords[ident]; ok {
		log.Debugf("LookupIdent(%s) found %s", ident, t)
		return Token{Type: t, Literal: ident, Pos: pos}
	}
	return Token{Type: IDENT, Literal: ident, Pos: pos}
}

// LookupRune maps the non ascii runes the lexer understands.
func LookupRune(r rune, pos int) (Token, bool) {
	if t, ok := runeTokens[r]; ok {
		return Token{Type: t, Literal: string(r), Pos: pos}, true
	}
	if name, ok := runeIdents[r]; ok {
		return Token{Type: IDENT, Literal: name, Pos: pos}, true
	}
	return Token{}, false
}

func (t Token) DebugString() string {
	return t.Type.String() + ":" + strconv.Quote(t.Literal)
}

func (t Token) String() string {
	if t.Type == EOF {
		return t.Type.Literal()
	}
	return t.Literal
}
