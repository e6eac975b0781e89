package parser

import (
	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

// parseDeclaration parses a top-level or block-scoped declaration: a
// leading type followed by a name, then either a parameter list (making
// it a function) or an optional initializer (making it a variable).
func (p *Parser) parseDeclaration() ast.Declaration {
	startTok := p.curToken
	declType := p.parseType()

	if !p.check(token.IDENTIFIER) {
		p.errorAtCurrent("Expected identifier")
		return nil
	}
	name := p.curToken.Lexeme
	p.advance()

	if p.check(token.LPAREN) {
		return p.parseFunctionDecl(startTok, declType, name)
	}
	return p.parseVariableDecl(startTok, declType, name)
}

func (p *Parser) parseFunctionDecl(startTok token.Token, returnType types.DataType, name string) ast.Declaration {
	fn := &ast.FunctionDecl{ReturnType: returnType, Name: name}
	fn.Token = startTok

	p.consume(token.LPAREN, "Expected '(' after function name")

	if !p.check(token.RPAREN) {
		for {
			param := p.parseParameter()
			if param != nil {
				fn.Parameters = append(fn.Parameters, param)
			}
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expected ')' after parameters")

	if p.check(token.SEMICOLON) {
		p.advance()
		return fn
	}
	fn.Body = p.parseCompoundStmt()
	return fn
}

func (p *Parser) parseParameter() *ast.Parameter {
	startTok := p.curToken
	paramType := p.parseType()

	if !p.check(token.IDENTIFIER) {
		p.errorAtCurrent("Expected parameter name")
		return nil
	}
	name := p.curToken.Lexeme
	p.advance()

	param := &ast.Parameter{Type: paramType, Name: name}
	param.Token = startTok
	return param
}

func (p *Parser) parseVariableDecl(startTok token.Token, varType types.DataType, name string) *ast.VariableDecl {
	decl := &ast.VariableDecl{Type: varType, Name: name}
	decl.Token = startTok

	if p.match(token.ASSIGN) {
		decl.Initializer = p.parseExpression()
	}

	p.consume(token.SEMICOLON, "Expected ';' after variable declaration")
	return decl
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.check(token.LBRACE):
		return p.parseCompoundStmt()
	case p.check(token.IF):
		return p.parseIfStmt()
	case p.check(token.WHILE):
		return p.parseWhileStmt()
	case p.check(token.FOR):
		return p.parseForStmt()
	case p.check(token.RETURN):
		return p.parseReturnStmt()
	case p.atTypeKeyword():
		decl := p.parseDeclaration()
		if stmt, ok := decl.(ast.Statement); ok {
			return stmt
		}
		return nil
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseCompoundStmt() *ast.CompoundStmt {
	startTok := p.curToken
	p.consume(token.LBRACE, "Expected '{'")

	compound := &ast.CompoundStmt{}
	compound.Token = startTok

	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			compound.Statements = append(compound.Statements, stmt)
		}
		if p.panicMode {
			p.synchronize()
		}
	}

	p.consume(token.RBRACE, "Expected '}' after block")
	return compound
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	startTok := p.curToken
	p.consume(token.IF, "Expected 'if'")
	p.consume(token.LPAREN, "Expected '(' after 'if'")
	cond := p.parseExpression()
	p.consume(token.RPAREN, "Expected ')' after if condition")

	then := p.parseStatement()
	var elseStmt ast.Statement
	if p.match(token.ELSE) {
		elseStmt = p.parseStatement()
	}

	stmt := &ast.IfStmt{Condition: cond, Then: then, Else: elseStmt}
	stmt.Token = startTok
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	startTok := p.curToken
	p.consume(token.WHILE, "Expected 'while'")
	p.consume(token.LPAREN, "Expected '(' after 'while'")
	cond := p.parseExpression()
	p.consume(token.RPAREN, "Expected ')' after while condition")
	body := p.parseStatement()

	stmt := &ast.WhileStmt{Condition: cond, Body: body}
	stmt.Token = startTok
	return stmt
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	startTok := p.curToken
	p.consume(token.FOR, "Expected 'for'")
	p.consume(token.LPAREN, "Expected '(' after 'for'")

	var init ast.Statement
	if !p.check(token.SEMICOLON) {
		if p.check(token.INT) || p.check(token.CHAR) {
			if decl := p.parseDeclaration(); decl != nil {
				init, _ = decl.(ast.Statement)
			}
		} else {
			init = p.parseExpressionStmt()
		}
	} else {
		p.advance()
	}

	var cond ast.Expression
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "Expected ';' after for condition")

	var update ast.Expression
	if !p.check(token.RPAREN) {
		update = p.parseExpression()
	}
	p.consume(token.RPAREN, "Expected ')' after for clauses")

	body := p.parseStatement()

	stmt := &ast.ForStmt{Init: init, Condition: cond, Update: update, Body: body}
	stmt.Token = startTok
	return stmt
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	startTok := p.curToken
	p.consume(token.RETURN, "Expected 'return'")

	var value ast.Expression
	if !p.check(token.SEMICOLON) {
		value = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "Expected ';' after return statement")

	stmt := &ast.ReturnStmt{Value: value}
	stmt.Token = startTok
	return stmt
}

func (p *Parser) parseExpressionStmt() *ast.ExpressionStmt {
	startTok := p.curToken

	var expr ast.Expression
	if !p.check(token.SEMICOLON) {
		expr = p.parseExpression()
	}
	p.consume(token.SEMICOLON, "Expected ';' after expression")

	stmt := &ast.ExpressionStmt{Expr: expr}
	stmt.Token = startTok
	return stmt
}
