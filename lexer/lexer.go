// Package lexer turns calculator input into a token stream.
package lexer

import (
	"unicode/utf8"

	"grol.io/calc/token"
)

type Lexer struct {
	input string
	pos   int
}

func New(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) Pos() int {
	return l.pos
}

// Tokens lexes the whole input. The last token is always EOF.
func (l *Lexer) Tokens() []token.Token {
	var tokens []token.Token
	for {
		t := l.NextToken()
		tokens = append(tokens, t)
		if t.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	start := l.pos
	ch := l.readChar()
	switch ch {
	case 0:
		return token.ByType(token.EOF, start)
	case '\n', ';':
		return token.New(token.SEMICOLON, string(ch), start)
	case '+':
		return token.ByType(token.PLUS, start)
	case '-':
		return token.ByType(token.MINUS, start)
	case '*':
		if l.peekChar() == '*' { // ** as an alias for ^
			l.pos++
			return token.New(token.POWER, "**", start)
		}
		return token.ByType(token.ASTERISK, start)
	case '/':
		return token.ByType(token.SLASH, start)
	case '^':
		return token.ByType(token.POWER, start)
	case '!':
		return token.ByType(token.BANG, start)
	case '=':
		return token.ByType(token.ASSIGN, start)
	case ',':
		return token.ByType(token.COMMA, start)
	case '(':
		return token.ByType(token.LPAREN, start)
	case ')':
		return token.ByType(token.RPAREN, start)
	case '|':
		return token.ByType(token.PIPE, start)
	case '.':
		if !isDigit(l.peekChar()) {
			return token.New(token.ILLEGAL, ".", start)
		}
		// number can start with . eg .5
		return l.readNumber(start)
	default:
		switch {
		case isLetter(ch):
			return token.LookupIdent(l.readIdentifier(start), start)
		case isDigit(ch):
			return l.readNumber(start)
		case ch >= utf8.RuneSelf:
			return l.readRune(start)
		default:
			return token.New(token.ILLEGAL, string(ch), start)
		}
	}
}

func (l *Lexer) readRune(start int) token.Token {
	r, size := utf8.DecodeRuneInString(l.input[start:])
	l.pos = start + size
	if t, ok := token.LookupRune(r, start); ok {
		return t
	}
	return token.New(token.ILLEGAL, l.input[start:l.pos], start)
}

func isWhiteSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func (l *Lexer) skipWhitespace() {
	for isWhiteSpace(l.peekChar()) {
		l.pos++
	}
}

func (l *Lexer) readChar() byte {
	ch := l.peekChar()
	if ch != 0 {
		l.pos++
	}
	return ch
}

func (l *Lexer) peekChar() byte {
	if l.pos < 0 {
		panic("Lexer position is negative")
	}
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// Identifiers are letters only: "sqrt64" is sqrt followed by 64 and
// "x2" is x followed by 2.
func (l *Lexer) readIdentifier(start int) string {
	for isLetter(l.peekChar()) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// The whole run of digits, underscores and dots is one literal, the parser
// rejects malformed ones such as "1.2.3".
func (l *Lexer) readNumber(start int) token.Token {
	for isDigitOrUnderscore(l.peekChar()) || l.peekChar() == '.' {
		l.pos++
	}
	return token.New(token.NUMBER, l.input[start:l.pos], start)
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isDigitOrUnderscore(ch byte) bool {
	return isDigit(ch) || ch == '_'
}
