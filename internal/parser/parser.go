// Package parser turns a token stream into a TinyC AST using recursive
// descent with an explicit precedence ladder for expressions and
// panic-mode error recovery for statements and declarations.
package parser

import (
	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/diag"
	"github.com/ryan-tobin/tiny-c-compiler/internal/lexer"
	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
)

// maxParseErrors is the number of recorded parse errors at which
// ParseProgram gives up on the rest of the file. The count is checked
// before each top-level declaration.
const maxParseErrors = 50

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
	prevToken token.Token

	diags     *diag.Diagnostics
	panicMode bool
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, diags: diag.New("Parser")}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) Diagnostics() *diag.Diagnostics {
	return p.diags
}

func (p *Parser) advance() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) check(kind token.Kind) bool {
	return p.curToken.Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// consume advances past curToken if it has the expected kind, otherwise
// records message as a parse error positioned at curToken.
func (p *Parser) consume(kind token.Kind, message string) {
	if p.check(kind) {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *Parser) errorAtCurrent(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.diags.Add(message, p.curToken.Line, p.curToken.Column)
}

func (p *Parser) errorAtPrevious(message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.diags.Add(message, p.prevToken.Line, p.prevToken.Column)
}

// synchronize discards tokens until it reaches a plausible declaration
// or statement boundary, so one malformed construct doesn't cascade into
// spurious errors for everything that follows it.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.check(token.EOF) {
		if p.prevToken.Kind == token.SEMICOLON {
			return
		}
		switch p.curToken.Kind {
		case token.IF, token.FOR, token.WHILE, token.RETURN, token.INT, token.CHAR, token.VOID:
			return
		}
		p.advance()
	}
}

func ParseProgram(l *lexer.Lexer) (*ast.Program, *diag.Diagnostics) {
	p := New(l)
	program := &ast.Program{}
	program.Token = p.curToken

	for !p.check(token.EOF) {
		if p.diags.Count() >= maxParseErrors {
			p.errorAtCurrent("Too many parse errors, giving up")
			break
		}

		decl := p.parseDeclaration()
		if decl != nil {
			program.Declarations = append(program.Declarations, decl)
		}

		if p.panicMode {
			p.synchronize()
		}
	}

	return program, p.diags
}
