package symbols

import (
	"testing"

	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

func TestDeclareAndLookupLocal(t *testing.T) {
	global := NewGlobalScope()
	if !global.Declare(&Symbol{Name: "x", Kind: VariableSymbol, Type: types.INT}) {
		t.Fatalf("first declaration of x should succeed")
	}
	if global.Declare(&Symbol{Name: "x", Kind: VariableSymbol, Type: types.INT}) {
		t.Fatalf("redeclaration of x in same scope should fail")
	}
	sym, ok := global.LookupLocal("x")
	if !ok || sym.Type != types.INT {
		t.Fatalf("expected to find x locally, got %+v, %v", sym, ok)
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	global := NewGlobalScope()
	global.Declare(&Symbol{Name: "g", Kind: VariableSymbol, Type: types.INT})

	fn := NewEnclosedScope(global)
	fn.Declare(&Symbol{Name: "p", Kind: ParameterSymbol, Type: types.CHAR})

	block := NewEnclosedScope(fn)

	if _, ok := block.Lookup("g"); !ok {
		t.Fatalf("expected to find global symbol from nested block")
	}
	if _, ok := block.Lookup("p"); !ok {
		t.Fatalf("expected to find parameter from nested block")
	}
	if _, ok := block.Lookup("missing"); ok {
		t.Fatalf("lookup of undeclared name should fail")
	}
}

func TestShadowingAllowedAcrossScopes(t *testing.T) {
	global := NewGlobalScope()
	global.Declare(&Symbol{Name: "x", Kind: VariableSymbol, Type: types.INT})

	inner := NewEnclosedScope(global)
	if !inner.Declare(&Symbol{Name: "x", Kind: VariableSymbol, Type: types.CHAR}) {
		t.Fatalf("shadowing an outer declaration in an inner scope should succeed")
	}

	sym, _ := inner.Lookup("x")
	if sym.Type != types.CHAR {
		t.Fatalf("expected inner shadowed symbol, got type %s", sym.Type)
	}
	outer, _ := global.Lookup("x")
	if outer.Type != types.INT {
		t.Fatalf("outer declaration should be unaffected by shadowing")
	}
}

func TestScopeLevels(t *testing.T) {
	global := NewGlobalScope()
	if global.Level() != 0 {
		t.Fatalf("global scope should be level 0")
	}
	fn := NewEnclosedScope(global)
	if fn.Level() != 1 {
		t.Fatalf("enclosed scope should be level 1, got %d", fn.Level())
	}
	if fn.Parent() != global {
		t.Fatalf("parent chain broken")
	}
}
