package parser

import (
	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

// parseType consumes a leading type keyword (int, char, or void) and, for
// char, an optional trailing '*' making it a char pointer.
func (p *Parser) parseType() types.DataType {
	switch {
	case p.match(token.INT):
		return types.INT
	case p.match(token.CHAR):
		if p.match(token.STAR) {
			return types.CHAR_PTR
		}
		return types.CHAR
	case p.match(token.VOID):
		return types.VOID
	default:
		p.errorAtCurrent("Expected type name")
		return types.VOID
	}
}

func (p *Parser) atTypeKeyword() bool {
	return token.IsTypeKeyword(p.curToken.Kind)
}
