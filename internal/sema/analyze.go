package sema

import (
	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/symbols"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompoundStmt:
		a.analyzeCompoundStmt(s)
	case *ast.IfStmt:
		a.analyzeIfStmt(s)
	case *ast.WhileStmt:
		a.analyzeWhileStmt(s)
	case *ast.ForStmt:
		a.analyzeForStmt(s)
	case *ast.ReturnStmt:
		a.analyzeReturnStmt(s)
	case *ast.ExpressionStmt:
		if s.Expr != nil {
			a.analyzeExpression(s.Expr)
		}
	case *ast.VariableDecl:
		a.analyzeVariableDecl(s)
	}
}

// analyzeCompoundStmt pushes its own scope: a block can shadow names from
// its enclosing function or block.
func (a *Analyzer) analyzeCompoundStmt(stmt *ast.CompoundStmt) {
	a.pushScope()
	for _, s := range stmt.Statements {
		a.analyzeStatement(s)
	}
	a.popScope()
}

func (a *Analyzer) analyzeIfStmt(stmt *ast.IfStmt) {
	condType := a.analyzeExpression(stmt.Condition)
	if !condType.IsBooleanContext() {
		a.errorAt(stmt.Condition, "If condition must be boolean expression")
	}
	a.analyzeStatement(stmt.Then)
	if stmt.Else != nil {
		a.analyzeStatement(stmt.Else)
	}
}

func (a *Analyzer) analyzeWhileStmt(stmt *ast.WhileStmt) {
	condType := a.analyzeExpression(stmt.Condition)
	if !condType.IsBooleanContext() {
		a.errorAt(stmt.Condition, "While condition must be boolean expression")
	}
	a.analyzeStatement(stmt.Body)
}

// analyzeForStmt pushes its own scope so a declaration in the init clause
// is visible to the condition, update, and body but nowhere outside the loop.
func (a *Analyzer) analyzeForStmt(stmt *ast.ForStmt) {
	a.pushScope()

	if stmt.Init != nil {
		a.analyzeStatement(stmt.Init)
	}
	if stmt.Condition != nil {
		condType := a.analyzeExpression(stmt.Condition)
		if !condType.IsBooleanContext() {
			a.errorAt(stmt.Condition, "For condition must be boolean expression")
		}
	}
	if stmt.Update != nil {
		a.analyzeExpression(stmt.Update)
	}
	a.analyzeStatement(stmt.Body)

	a.popScope()
}

func (a *Analyzer) analyzeReturnStmt(stmt *ast.ReturnStmt) {
	if stmt.Value != nil {
		returnType := a.analyzeExpression(stmt.Value)
		if !types.Compatible(a.currentFunctionReturnType, returnType) {
			a.errorAt(stmt.Value, "Return type '%s' does not match function return type '%s'",
				returnType, a.currentFunctionReturnType)
		}
		return
	}
	if a.currentFunctionReturnType != types.VOID {
		a.errorAt(stmt, "Function '%s' must return a value", a.currentFunctionName)
	}
}

func (a *Analyzer) analyzeExpression(expr ast.Expression) types.DataType {
	var result types.DataType
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		result = a.analyzeBinaryExpr(e)
	case *ast.UnaryExpr:
		result = a.analyzeUnaryExpr(e)
	case *ast.CallExpr:
		result = a.analyzeCallExpr(e)
	case *ast.Identifier:
		result = a.analyzeIdentifier(e)
	case *ast.NumberLiteral:
		result = types.INT
	case *ast.StringLiteral:
		result = types.CHAR_PTR
	default:
		result = types.VOID
	}
	expr.SetResolvedType(result)
	return result
}

func (a *Analyzer) analyzeBinaryExpr(expr *ast.BinaryExpr) types.DataType {
	left := a.analyzeExpression(expr.Left)
	right := a.analyzeExpression(expr.Right)

	result := binaryResultType(expr.Operator, left, right)
	if result == types.VOID {
		a.errorAt(expr, "Cannot apply oper '%s' to types '%s' and '%s'", expr.Operator, left, right)
	}
	return result
}

func binaryResultType(op string, left, right types.DataType) types.DataType {
	switch op {
	case "=":
		if types.Compatible(left, right) {
			return left
		}
		return types.VOID
	case "+", "-", "*", "/", "%":
		if left.IsNumeric() && right.IsNumeric() {
			return types.INT
		}
		return types.VOID
	case "<", ">", "<=", ">=", "==", "!=":
		if types.Compatible(left, right) {
			return types.INT
		}
		return types.VOID
	case "&&", "||":
		if left.IsBooleanContext() && right.IsBooleanContext() {
			return types.INT
		}
		return types.VOID
	default:
		return types.VOID
	}
}

func (a *Analyzer) analyzeUnaryExpr(expr *ast.UnaryExpr) types.DataType {
	operand := a.analyzeExpression(expr.Operand)
	result := unaryResultType(expr.Operator, operand)
	if result == types.VOID {
		a.errorAt(expr, "Cannot apply unary oper '%s' to type '%s'", expr.Operator, operand)
	}
	return result
}

func unaryResultType(op string, operand types.DataType) types.DataType {
	switch op {
	case "-", "+":
		if operand.IsNumeric() {
			return types.INT
		}
		return types.VOID
	case "!":
		if operand.IsBooleanContext() {
			return types.INT
		}
		return types.VOID
	default:
		return types.VOID
	}
}

func (a *Analyzer) analyzeCallExpr(expr *ast.CallExpr) types.DataType {
	sym, ok := a.current.Lookup(expr.Name)
	if !ok {
		a.errorAt(expr, "Undefined function '%s'", expr.Name)
		return types.VOID
	}
	if sym.Kind != symbols.FunctionSymbol {
		a.errorAt(expr, "'%s' is not a function", expr.Name)
		return types.VOID
	}

	if len(expr.Arguments) != len(sym.ParameterTypes) {
		a.errorAt(expr, "Function '%s' expects %d arguments, got %d",
			expr.Name, len(sym.ParameterTypes), len(expr.Arguments))
		return sym.Type
	}

	for i, arg := range expr.Arguments {
		argType := a.analyzeExpression(arg)
		paramType := sym.ParameterTypes[i]
		if !types.Compatible(paramType, argType) {
			a.errorAt(arg, "Argument %d to function '%s' has type '%s', expected '%s'",
				i+1, expr.Name, argType, paramType)
		}
	}

	return sym.Type
}

func (a *Analyzer) analyzeIdentifier(expr *ast.Identifier) types.DataType {
	sym, ok := a.current.Lookup(expr.Name)
	if !ok {
		a.errorAt(expr, "Undefined identifier '%s'", expr.Name)
		return types.VOID
	}
	return sym.Type
}
