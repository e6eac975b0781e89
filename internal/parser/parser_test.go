package parser

import (
	"testing"

	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/lexer"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	program, diags := ParseProgram(l)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, diags.Format())
	}
	return program
}

func TestParseSimpleFunction(t *testing.T) {
	program := parse(t, "int main() { return 0; }")
	if len(program.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(program.Declarations))
	}
	fn, ok := program.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", program.Declarations[0])
	}
	if fn.Name != "main" || fn.ReturnType != types.INT {
		t.Errorf("unexpected function decl: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body.Statements[0])
	}
	num, ok := ret.Value.(*ast.NumberLiteral)
	if !ok || num.Value != 0 {
		t.Errorf("expected return of literal 0, got %+v", ret.Value)
	}
}

func TestParseFunctionWithParameters(t *testing.T) {
	program := parse(t, "int add(int a, int b) { return a + b; }")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if fn.Parameters[0].Name != "a" || fn.Parameters[1].Name != "b" {
		t.Errorf("unexpected parameter names: %+v", fn.Parameters)
	}
}

func TestParseGlobalVariableDeclaration(t *testing.T) {
	program := parse(t, "int counter = 0;")
	v, ok := program.Declarations[0].(*ast.VariableDecl)
	if !ok {
		t.Fatalf("expected *ast.VariableDecl, got %T", program.Declarations[0])
	}
	if v.Name != "counter" || v.Type != types.INT {
		t.Errorf("unexpected global decl: %+v", v)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	program := parse(t, "int main() { return 2 + 3 * 4; }")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected top-level '+', got %+v", ret.Value)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Operator != "*" {
		t.Errorf("expected '*' to bind tighter than '+', got %+v", bin.Right)
	}
}

func TestParseIfElse(t *testing.T) {
	program := parse(t, "int main() { if (1) { return 1; } else { return 2; } }")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	ifStmt, ok := fn.Body.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", fn.Body.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Errorf("expected an else branch")
	}
}

func TestParseWhileLoop(t *testing.T) {
	program := parse(t, "int main() { while (1) { return 0; } }")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	if _, ok := fn.Body.Statements[0].(*ast.WhileStmt); !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", fn.Body.Statements[0])
	}
}

func TestParseForLoop(t *testing.T) {
	program := parse(t, "int main() { for (int i = 0; i < 10; i = i + 1) { } }")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	forStmt, ok := fn.Body.Statements[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", fn.Body.Statements[0])
	}
	if forStmt.Init == nil || forStmt.Condition == nil || forStmt.Update == nil {
		t.Errorf("expected all three for-clauses to be present: %+v", forStmt)
	}
}

func TestParseFunctionCall(t *testing.T) {
	program := parse(t, "int main() { return add(1, 2); }")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	if !ok || call.Name != "add" || len(call.Arguments) != 2 {
		t.Errorf("unexpected call expression: %+v", ret.Value)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	program := parse(t, "int main() { int a; int b; a = b = 1; }")
	fn := program.Declarations[0].(*ast.FunctionDecl)
	exprStmt := fn.Body.Statements[2].(*ast.ExpressionStmt)
	bin, ok := exprStmt.Expr.(*ast.BinaryExpr)
	if !ok || bin.Operator != "=" {
		t.Fatalf("expected top-level assignment, got %+v", exprStmt.Expr)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected nested assignment on the right, got %+v", bin.Right)
	}
}

func TestParseMissingSemicolonProducesError(t *testing.T) {
	l := lexer.New("int main() { return 0 }")
	_, diags := ParseProgram(l)
	if !diags.HasErrors() {
		t.Fatal("expected a parse error for missing semicolon")
	}
}

func TestParseRecoversAfterErrorAndKeepsParsing(t *testing.T) {
	l := lexer.New("int broken( { } int main() { return 0; }")
	program, diags := ParseProgram(l)
	if !diags.HasErrors() {
		t.Fatal("expected at least one parse error")
	}
	found := false
	for _, d := range program.Declarations {
		if fn, ok := d.(*ast.FunctionDecl); ok && fn.Name == "main" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected parser to recover and still parse 'main', got declarations: %+v", program.Declarations)
	}
}

func TestParseCharPointerType(t *testing.T) {
	program := parse(t, "char* name;")
	v := program.Declarations[0].(*ast.VariableDecl)
	if v.Type != types.CHAR_PTR {
		t.Errorf("expected CHAR_PTR, got %v", v.Type)
	}
}
