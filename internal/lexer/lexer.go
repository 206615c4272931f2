// Package lexer implements the Picto lexical analyzer: a Unicode-aware
// scanner that turns emoji-keyworded source text into a token stream for
// the parser.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/picto-lang/picto/internal/errors"
	"github.com/picto-lang/picto/internal/position"
)

const (
	commentRune       = '💬'
	variationSelector = '\uFE0F'
)

// Lexer scans Picto source text into tokens.
type Lexer struct {
	filename string
	input    string
	offset   int // byte offset of the rune at `ch`
	next     int // byte offset after `ch`
	ch       rune
	line     int
	column   int
	err      *errors.CompileError // first lexical error, if any
}

// New creates a lexer for the given source text.
func New(filename, input string) *Lexer {
	l := &Lexer{filename: filename, input: input, line: 1, column: 0}
	l.advance()
	return l
}

// Err returns the first lexical error encountered, or nil.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// advance reads the next rune into l.ch, maintaining line/column counters.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.offset = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += size
	l.column++
}

// peek returns the rune after the current one without consuming it.
func (l *Lexer) peek() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) pos() position.Position {
	return position.Position{Filename: l.filename, Line: l.line, Column: l.column, Offset: l.offset}
}

// Tokenize scans the whole input. The returned slice always ends with an
// EOF token; lexical errors surface both as an Error token and via Err.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipSpaceAndComments()

	pos := l.pos()
	ch := l.ch

	switch {
	case ch == 0:
		return Token{Type: TokenEOF, Pos: pos}
	case ch == '\n':
		l.advance()
		return Token{Type: TokenNewline, Pos: pos}
	case isIdentStart(ch):
		return l.scanIdentifier(pos)
	case unicode.IsDigit(ch):
		return l.scanNumber(pos)
	case ch == '"':
		return l.scanString(pos)
	}

	if tt, ok := keywords[ch]; ok {
		l.advance()
		if l.ch == variationSelector {
			l.advance()
		}
		return Token{Type: tt, Pos: pos}
	}
	return l.scanOperator(pos)
}

func (l *Lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.advance()
		case l.ch == commentRune:
			for l.ch != '\n' && l.ch != 0 {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanIdentifier(pos position.Position) Token {
	start := l.offset
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.advance()
	}
	lit := l.input[start:l.offset]
	if lit == "in" {
		return Token{Type: TokenIn, Pos: pos}
	}
	return Token{Type: TokenIdentifier, Literal: lit, Pos: pos}
}

// scanNumber scans an integer or float literal. A '.' is part of the number
// only when a digit follows, so range operators after an integer bound
// (`1...5`) are left intact.
func (l *Lexer) scanNumber(pos position.Position) Token {
	start := l.offset
	for unicode.IsDigit(l.ch) {
		l.advance()
	}
	isFloat := false
	if l.ch == '.' && unicode.IsDigit(l.peek()) {
		isFloat = true
		l.advance()
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
	}
	lit := l.input[start:l.offset]
	if isFloat {
		return Token{Type: TokenFloat, Literal: lit, Pos: pos}
	}
	return Token{Type: TokenInt, Literal: lit, Pos: pos}
}

func (l *Lexer) scanString(pos position.Position) Token {
	l.advance() // opening quote
	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return l.errorToken(pos, "unterminated string literal")
		}
		if l.ch == '\\' {
			l.advance()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				return l.errorToken(pos, "invalid escape sequence \\%c", l.ch)
			}
			l.advance()
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	l.advance() // closing quote
	return Token{Type: TokenString, Literal: sb.String(), Pos: pos}
}

func (l *Lexer) scanOperator(pos position.Position) Token {
	ch := l.ch
	l.advance()
	switch ch {
	case '+':
		switch l.ch {
		case '+':
			l.advance()
			return Token{Type: TokenIncrement, Pos: pos}
		case '=':
			l.advance()
			return Token{Type: TokenPlusAssign, Pos: pos}
		}
		return Token{Type: TokenPlus, Pos: pos}
	case '-':
		switch l.ch {
		case '-':
			l.advance()
			return Token{Type: TokenDecrement, Pos: pos}
		case '>':
			l.advance()
			return Token{Type: TokenArrow, Pos: pos}
		}
		return Token{Type: TokenMinus, Pos: pos}
	case '*':
		if l.ch == '*' {
			l.advance()
			return Token{Type: TokenPower, Pos: pos}
		}
		return Token{Type: TokenMul, Pos: pos}
	case '/':
		return Token{Type: TokenDiv, Pos: pos}
	case '=':
		if l.ch == '=' {
			l.advance()
			return Token{Type: TokenEq, Pos: pos}
		}
		return Token{Type: TokenAssign, Pos: pos}
	case '!':
		if l.ch == '=' {
			l.advance()
			return Token{Type: TokenNe, Pos: pos}
		}
		return Token{Type: TokenNot, Pos: pos}
	case '<':
		if l.ch == '=' {
			l.advance()
			return Token{Type: TokenLe, Pos: pos}
		}
		return Token{Type: TokenLt, Pos: pos}
	case '>':
		if l.ch == '=' {
			l.advance()
			return Token{Type: TokenGe, Pos: pos}
		}
		return Token{Type: TokenGt, Pos: pos}
	case '&':
		if l.ch == '&' {
			l.advance()
			return Token{Type: TokenAnd, Pos: pos}
		}
	case '|':
		if l.ch == '|' {
			l.advance()
			return Token{Type: TokenOr, Pos: pos}
		}
	case '?':
		switch l.ch {
		case '?':
			l.advance()
			return Token{Type: TokenCoalesce, Pos: pos}
		case '.':
			l.advance()
			return Token{Type: TokenOptChain, Pos: pos}
		}
		return Token{Type: TokenQuestion, Pos: pos}
	case '.':
		if l.ch == '.' {
			l.advance()
			switch l.ch {
			case '.':
				l.advance()
				return Token{Type: TokenClosedRange, Pos: pos}
			case '<':
				l.advance()
				return Token{Type: TokenHalfRange, Pos: pos}
			}
			return l.errorToken(pos, "unexpected '..'")
		}
		return Token{Type: TokenDot, Pos: pos}
	case '(':
		return Token{Type: TokenLParen, Pos: pos}
	case ')':
		return Token{Type: TokenRParen, Pos: pos}
	case '{':
		return Token{Type: TokenLBrace, Pos: pos}
	case '}':
		return Token{Type: TokenRBrace, Pos: pos}
	case '[':
		return Token{Type: TokenLBracket, Pos: pos}
	case ']':
		return Token{Type: TokenRBracket, Pos: pos}
	case ',':
		return Token{Type: TokenComma, Pos: pos}
	case ':':
		return Token{Type: TokenColon, Pos: pos}
	}
	return l.errorToken(pos, "unexpected character %q", ch)
}

func (l *Lexer) errorToken(pos position.Position, format string, args ...any) Token {
	err := errors.New(errors.SyntaxError, pos, format, args...)
	if l.err == nil {
		l.err = err
	}
	return Token{Type: TokenError, Literal: err.Message, Pos: pos}
}

// isIdentStart reports whether ch can start an identifier. Keyword emoji
// are symbol-class runes, so they never collide with identifiers.
func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}
