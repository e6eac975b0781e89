package ast

import (
	"testing"

	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

func tok(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, 1, 1)
}

func ident(name string) *Identifier {
	return &Identifier{exprBase: exprBase{base: base{Token: tok(token.IDENTIFIER, name)}}, Name: name}
}

func number(v int64) *NumberLiteral {
	return &NumberLiteral{exprBase: exprBase{base: base{Token: tok(token.NUMBER, "")}}, Value: v}
}

func TestProgramStringJoinsDeclarations(t *testing.T) {
	fn := &FunctionDecl{
		base:       base{Token: tok(token.INT, "int")},
		ReturnType: types.INT,
		Name:       "main",
		Body:       &CompoundStmt{base: base{Token: tok(token.LBRACE, "{")}},
	}
	prog := &Program{Declarations: []Declaration{fn}}

	got := prog.String()
	if got == "" {
		t.Fatalf("expected non-empty program string")
	}
}

func TestFunctionDeclStringIncludesParameters(t *testing.T) {
	fn := &FunctionDecl{
		base:       base{Token: tok(token.INT, "int")},
		ReturnType: types.INT,
		Name:       "add",
		Parameters: []*Parameter{
			{base: base{Token: tok(token.INT, "int")}, Type: types.INT, Name: "a"},
			{base: base{Token: tok(token.INT, "int")}, Type: types.INT, Name: "b"},
		},
		Body: &CompoundStmt{base: base{Token: tok(token.LBRACE, "{")}},
	}

	want := "int add(int a, int b) {\n}"
	if got := fn.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFunctionDeclWithNilBodyRendersForwardDeclaration(t *testing.T) {
	fn := &FunctionDecl{base: base{Token: tok(token.INT, "int")}, ReturnType: types.VOID, Name: "f"}
	if got := fn.String(); got != "void f();" {
		t.Fatalf("got %q", got)
	}
}

func TestVariableDeclStringWithAndWithoutInitializer(t *testing.T) {
	withInit := &VariableDecl{base: base{Token: tok(token.INT, "int")}, Type: types.INT, Name: "x", Initializer: number(5)}
	if got := withInit.String(); got != "int x = 5;" {
		t.Fatalf("got %q", got)
	}

	noInit := &VariableDecl{base: base{Token: tok(token.INT, "int")}, Type: types.INT, Name: "y"}
	if got := noInit.String(); got != "int y;" {
		t.Fatalf("got %q", got)
	}
}

func TestIfStmtStringWithElse(t *testing.T) {
	ifStmt := &IfStmt{
		base:      base{Token: tok(token.IF, "if")},
		Condition: ident("x"),
		Then:      &ExpressionStmt{base: base{Token: tok(token.IDENTIFIER, "x")}, Expr: ident("x")},
		Else:      &ExpressionStmt{base: base{Token: tok(token.IDENTIFIER, "y")}, Expr: ident("y")},
	}
	want := "if (x) x; else y;"
	if got := ifStmt.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWhileStmtString(t *testing.T) {
	w := &WhileStmt{
		base:      base{Token: tok(token.WHILE, "while")},
		Condition: ident("x"),
		Body:      &ExpressionStmt{base: base{Token: tok(token.IDENTIFIER, "x")}, Expr: ident("x")},
	}
	if got := w.String(); got != "while (x) x;" {
		t.Fatalf("got %q", got)
	}
}

func TestForStmtStringWithAllClauses(t *testing.T) {
	f := &ForStmt{
		base: base{Token: tok(token.FOR, "for")},
		Init: &VariableDecl{base: base{Token: tok(token.INT, "int")}, Type: types.INT, Name: "i", Initializer: number(0)},
		Condition: &BinaryExpr{
			exprBase: exprBase{base: base{Token: tok(token.LT, "<")}},
			Operator: "<", Left: ident("i"), Right: number(10),
		},
		Update: &BinaryExpr{
			exprBase: exprBase{base: base{Token: tok(token.ASSIGN, "=")}},
			Operator: "=", Left: ident("i"), Right: number(1),
		},
		Body: &CompoundStmt{base: base{Token: tok(token.LBRACE, "{")}},
	}
	got := f.String()
	if got == "" {
		t.Fatalf("expected non-empty for-statement string")
	}
}

func TestReturnStmtStringWithAndWithoutValue(t *testing.T) {
	withValue := &ReturnStmt{base: base{Token: tok(token.RETURN, "return")}, Value: number(0)}
	if got := withValue.String(); got != "return 0;" {
		t.Fatalf("got %q", got)
	}
	bare := &ReturnStmt{base: base{Token: tok(token.RETURN, "return")}}
	if got := bare.String(); got != "return;" {
		t.Fatalf("got %q", got)
	}
}

func TestBinaryAndUnaryExprString(t *testing.T) {
	bin := &BinaryExpr{
		exprBase: exprBase{base: base{Token: tok(token.PLUS, "+")}},
		Operator: "+", Left: ident("a"), Right: number(1),
	}
	if got := bin.String(); got != "(a + 1)" {
		t.Fatalf("got %q", got)
	}

	un := &UnaryExpr{
		exprBase: exprBase{base: base{Token: tok(token.MINUS, "-")}},
		Operator: "-", Operand: ident("a"),
	}
	if got := un.String(); got != "(-a)" {
		t.Fatalf("got %q", got)
	}
}

func TestCallExprString(t *testing.T) {
	call := &CallExpr{
		exprBase:  exprBase{base: base{Token: tok(token.IDENTIFIER, "f")}},
		Name:      "f",
		Arguments: []Expression{number(1), ident("x")},
	}
	if got := call.String(); got != "f(1, x)" {
		t.Fatalf("got %q", got)
	}
}

func TestStringLiteralStringIsQuoted(t *testing.T) {
	s := &StringLiteral{exprBase: exprBase{base: base{Token: tok(token.STRING_LITERAL, "hi")}}, Value: "hi"}
	if got := s.String(); got != `"hi"` {
		t.Fatalf("got %q", got)
	}
}

func TestResolvedTypeDefaultsToVoidUntilSet(t *testing.T) {
	n := number(1)
	if n.ResolvedType() != types.VOID {
		t.Fatalf("expected VOID before analysis, got %s", n.ResolvedType())
	}
	n.SetResolvedType(types.INT)
	if n.ResolvedType() != types.INT {
		t.Fatalf("expected INT after SetResolvedType, got %s", n.ResolvedType())
	}
}

func TestNodePosReflectsOriginatingToken(t *testing.T) {
	i := &Identifier{exprBase: exprBase{base: base{Token: token.New(token.IDENTIFIER, "x", 4, 9)}}, Name: "x"}
	line, col := i.Pos()
	if line != 4 || col != 9 {
		t.Fatalf("got (%d, %d), want (4, 9)", line, col)
	}
}

func TestCompoundStmtStringEmpty(t *testing.T) {
	c := &CompoundStmt{base: base{Token: tok(token.LBRACE, "{")}}
	if got := c.String(); got != "{\n}" {
		t.Fatalf("got %q", got)
	}
}
