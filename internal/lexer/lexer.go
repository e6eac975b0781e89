// Package lexer scans TinyC source text into a token stream, accumulating
// positioned errors instead of aborting on the first bad character.
package lexer

import (
	"fmt"

	"github.com/ryan-tobin/tiny-c-compiler/internal/diag"
	"github.com/ryan-tobin/tiny-c-compiler/internal/source"
	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
)

// Lexer scans one source buffer into tokens on demand via NextToken, with
// PeekToken available for the parser's one-token lookahead.
type Lexer struct {
	cur     *source.Cursor
	input   string
	diags   *diag.Diagnostics
	peeked  *token.Token
}

// New creates a Lexer over input, ready to produce tokens from the start.
func New(input string) *Lexer {
	return &Lexer{
		cur:   source.New(input),
		input: input,
		diags: diag.New("Lexer"),
	}
}

// Diagnostics returns the ledger of lexical errors accumulated so far.
func (l *Lexer) Diagnostics() *diag.Diagnostics {
	return l.diags
}

// Reset rewinds the lexer to the start of its input, discarding any
// buffered lookahead token. The diagnostics ledger is kept, matching the
// accumulate-don't-discard contract the other stages follow.
func (l *Lexer) Reset() {
	l.cur = source.New(l.input)
	l.peeked = nil
}

// PeekToken returns the next token without consuming it. A second call
// without an intervening NextToken returns the same token.
func (l *Lexer) PeekToken() token.Token {
	if l.peeked == nil {
		tok := l.scan()
		l.peeked = &tok
	}
	return *l.peeked
}

// NextToken consumes and returns the next token in the stream.
func (l *Lexer) NextToken() token.Token {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok
	}
	return l.scan()
}

func isLetter(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}

// skipIgnored consumes whitespace, line comments, and block comments.
// An unterminated block comment is reported once at the position where
// it opened and the cursor is left at end of input.
func (l *Lexer) skipIgnored() {
	for !l.cur.AtEOF() {
		ch := l.cur.Current()
		switch {
		case isSpace(ch):
			l.cur.Advance()
		case ch == '/' && l.cur.Peek() == '/':
			for !l.cur.AtEOF() && l.cur.Current() != '\n' {
				l.cur.Advance()
			}
		case ch == '/' && l.cur.Peek() == '*':
			startLine, startCol := l.cur.Line(), l.cur.Column()
			l.cur.Advance() // '/'
			l.cur.Advance() // '*'
			closed := false
			for !l.cur.AtEOF() {
				if l.cur.Current() == '*' && l.cur.Peek() == '/' {
					l.cur.Advance()
					l.cur.Advance()
					closed = true
					break
				}
				l.cur.Advance()
			}
			if !closed {
				l.diags.Add("Unterminated block comment", startLine, startCol)
				return
			}
		default:
			return
		}
	}
}

// scan produces the next token, advancing the cursor past it.
func (l *Lexer) scan() token.Token {
	l.skipIgnored()

	line, col := l.cur.Line(), l.cur.Column()

	if l.cur.AtEOF() {
		return token.New(token.EOF, "", line, col)
	}

	ch := l.cur.Current()

	switch {
	case isLetter(ch):
		return l.scanIdentifier(line, col)
	case isDigit(ch):
		return l.scanNumber(line, col)
	case ch == '"':
		return l.scanString(line, col)
	}

	switch ch {
	case '+':
		l.cur.Advance()
		return token.New(token.PLUS, "+", line, col)
	case '-':
		l.cur.Advance()
		return token.New(token.MINUS, "-", line, col)
	case '*':
		l.cur.Advance()
		return token.New(token.STAR, "*", line, col)
	case '/':
		l.cur.Advance()
		return token.New(token.SLASH, "/", line, col)
	case '%':
		l.cur.Advance()
		return token.New(token.PERCENT, "%", line, col)
	case ';':
		l.cur.Advance()
		return token.New(token.SEMICOLON, ";", line, col)
	case ',':
		l.cur.Advance()
		return token.New(token.COMMA, ",", line, col)
	case '(':
		l.cur.Advance()
		return token.New(token.LPAREN, "(", line, col)
	case ')':
		l.cur.Advance()
		return token.New(token.RPAREN, ")", line, col)
	case '{':
		l.cur.Advance()
		return token.New(token.LBRACE, "{", line, col)
	case '}':
		l.cur.Advance()
		return token.New(token.RBRACE, "}", line, col)
	case '=':
		l.cur.Advance()
		if l.cur.Current() == '=' {
			l.cur.Advance()
			return token.New(token.EQ, "==", line, col)
		}
		return token.New(token.ASSIGN, "=", line, col)
	case '!':
		l.cur.Advance()
		if l.cur.Current() == '=' {
			l.cur.Advance()
			return token.New(token.NE, "!=", line, col)
		}
		return token.New(token.BANG, "!", line, col)
	case '<':
		l.cur.Advance()
		if l.cur.Current() == '=' {
			l.cur.Advance()
			return token.New(token.LE, "<=", line, col)
		}
		return token.New(token.LT, "<", line, col)
	case '>':
		l.cur.Advance()
		if l.cur.Current() == '=' {
			l.cur.Advance()
			return token.New(token.GE, ">=", line, col)
		}
		return token.New(token.GT, ">", line, col)
	case '&':
		l.cur.Advance()
		if l.cur.Current() == '&' {
			l.cur.Advance()
			return token.New(token.AND_AND, "&&", line, col)
		}
		l.diags.Add("Unexpected character", line, col)
		return token.New(token.ERROR, "&", line, col)
	case '|':
		l.cur.Advance()
		if l.cur.Current() == '|' {
			l.cur.Advance()
			return token.New(token.OR_OR, "||", line, col)
		}
		l.diags.Add("Unexpected character", line, col)
		return token.New(token.ERROR, "|", line, col)
	default:
		l.diags.Add(fmt.Sprintf("Unexpected character: '%c'", ch), line, col)
		l.cur.Advance()
		return token.New(token.ERROR, string(ch), line, col)
	}
}

func (l *Lexer) scanIdentifier(line, col int) token.Token {
	start := l.cur.Pos()
	for !l.cur.AtEOF() && (isLetter(l.cur.Current()) || isDigit(l.cur.Current())) {
		l.cur.Advance()
	}
	text := l.cur.Slice(start, l.cur.Pos())
	return token.New(token.LookupIdent(text), text, line, col)
}

func (l *Lexer) scanNumber(line, col int) token.Token {
	start := l.cur.Pos()
	for !l.cur.AtEOF() && isDigit(l.cur.Current()) {
		l.cur.Advance()
	}
	text := l.cur.Slice(start, l.cur.Pos())
	return token.New(token.NUMBER, text, line, col)
}

// scanString scans a double-quoted literal. A backslash escapes exactly
// one following character verbatim (no interpretation of \n, \t, etc. —
// the escape pair is kept as-is in the lexeme; the code generator copies it
// unchanged into a .string directive, where the assembler interprets it).
func (l *Lexer) scanString(line, col int) token.Token {
	l.cur.Advance() // opening quote
	start := l.cur.Pos()

	for !l.cur.AtEOF() && l.cur.Current() != '"' {
		if l.cur.Current() == '\\' {
			l.cur.Advance()
			if !l.cur.AtEOF() {
				l.cur.Advance()
			}
		} else {
			l.cur.Advance()
		}
	}

	if l.cur.AtEOF() {
		l.diags.Add("Unterminated string", line, col)
		return token.New(token.ERROR, "Unterminated string", line, col)
	}

	text := l.cur.Slice(start, l.cur.Pos())
	l.cur.Advance() // closing quote
	return token.New(token.STRING_LITERAL, text, line, col)
}
