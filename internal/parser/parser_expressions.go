package parser

import (
	"strconv"

	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
)

// The expression grammar is an explicit precedence ladder, lowest to
// highest: assignment, logical-or, logical-and, equality, relational,
// additive, multiplicative, unary, postfix, primary. Each level parses
// its own operators and defers anything tighter-binding to the level
// below it.

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expression {
	expr := p.parseLogicalOr()

	if p.match(token.ASSIGN) {
		startTok := p.prevToken
		value := p.parseAssignment()
		bin := &ast.BinaryExpr{Operator: "=", Left: expr, Right: value}
		bin.Token = startTok
		return bin
	}
	return expr
}

func (p *Parser) parseLogicalOr() ast.Expression {
	expr := p.parseLogicalAnd()
	for p.match(token.OR_OR) {
		opTok := p.prevToken
		right := p.parseLogicalAnd()
		bin := &ast.BinaryExpr{Operator: "||", Left: expr, Right: right}
		bin.Token = opTok
		expr = bin
	}
	return expr
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	expr := p.parseEquality()
	for p.match(token.AND_AND) {
		opTok := p.prevToken
		right := p.parseEquality()
		bin := &ast.BinaryExpr{Operator: "&&", Left: expr, Right: right}
		bin.Token = opTok
		expr = bin
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expression {
	expr := p.parseRelational()
	for p.check(token.EQ) || p.check(token.NE) {
		op := "=="
		if p.curToken.Kind == token.NE {
			op = "!="
		}
		opTok := p.curToken
		p.advance()
		right := p.parseRelational()
		bin := &ast.BinaryExpr{Operator: op, Left: expr, Right: right}
		bin.Token = opTok
		expr = bin
	}
	return expr
}

func (p *Parser) parseRelational() ast.Expression {
	expr := p.parseAdditive()
	for p.check(token.LT) || p.check(token.LE) || p.check(token.GT) || p.check(token.GE) {
		op := relationalOp(p.curToken.Kind)
		opTok := p.curToken
		p.advance()
		right := p.parseAdditive()
		bin := &ast.BinaryExpr{Operator: op, Left: expr, Right: right}
		bin.Token = opTok
		expr = bin
	}
	return expr
}

func relationalOp(kind token.Kind) string {
	switch kind {
	case token.LT:
		return "<"
	case token.LE:
		return "<="
	case token.GT:
		return ">"
	case token.GE:
		return ">="
	default:
		return "?"
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	expr := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := "+"
		if p.curToken.Kind == token.MINUS {
			op = "-"
		}
		opTok := p.curToken
		p.advance()
		right := p.parseMultiplicative()
		bin := &ast.BinaryExpr{Operator: op, Left: expr, Right: right}
		bin.Token = opTok
		expr = bin
	}
	return expr
}

func (p *Parser) parseMultiplicative() ast.Expression {
	expr := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		op := multiplicativeOp(p.curToken.Kind)
		opTok := p.curToken
		p.advance()
		right := p.parseUnary()
		bin := &ast.BinaryExpr{Operator: op, Left: expr, Right: right}
		bin.Token = opTok
		expr = bin
	}
	return expr
}

func multiplicativeOp(kind token.Kind) string {
	switch kind {
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.PERCENT:
		return "%"
	default:
		return "?"
	}
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(token.BANG) || p.check(token.MINUS) || p.check(token.PLUS) {
		op := unaryOp(p.curToken.Kind)
		opTok := p.curToken
		p.advance()
		operand := p.parseUnary()
		u := &ast.UnaryExpr{Operator: op, Operand: operand}
		u.Token = opTok
		return u
	}
	return p.parsePostfix()
}

func unaryOp(kind token.Kind) string {
	switch kind {
	case token.BANG:
		return "!"
	case token.MINUS:
		return "-"
	case token.PLUS:
		return "+"
	default:
		return "?"
	}
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for p.check(token.LPAREN) {
		ident, ok := expr.(*ast.Identifier)
		if !ok {
			p.errorAtPrevious("Can only call identifiers")
			return nil
		}
		p.advance()

		call := &ast.CallExpr{Name: ident.Name}
		call.Token = ident.Token

		if !p.check(token.RPAREN) {
			for {
				arg := p.parseExpression()
				if arg != nil {
					call.Arguments = append(call.Arguments, arg)
				}
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		p.consume(token.RPAREN, "Expected ')' after function arguments")
		expr = call
	}

	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	switch {
	case p.check(token.NUMBER):
		tok := p.curToken
		p.advance()
		value, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		n := &ast.NumberLiteral{Value: value}
		n.Token = tok
		return n

	case p.check(token.STRING_LITERAL):
		tok := p.curToken
		p.advance()
		s := &ast.StringLiteral{Value: tok.Lexeme}
		s.Token = tok
		return s

	case p.check(token.IDENTIFIER):
		tok := p.curToken
		p.advance()
		id := &ast.Identifier{Name: tok.Lexeme}
		id.Token = tok
		return id

	case p.check(token.LPAREN):
		p.advance()
		expr := p.parseExpression()
		p.consume(token.RPAREN, "Expected ')' after expression")
		return expr

	default:
		p.errorAtCurrent("Expected expression")
		return nil
	}
}
