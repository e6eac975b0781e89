package codegen

import (
	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

func (g *Generator) generateExpression(expr ast.Expression) Register {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return g.generateBinary(e)
	case *ast.UnaryExpr:
		return g.generateUnary(e)
	case *ast.CallExpr:
		return g.generateCall(e)
	case *ast.Identifier:
		return g.generateIdentifierLoad(e)
	case *ast.NumberLiteral:
		return g.generateNumber(e)
	case *ast.StringLiteral:
		return g.generateString(e)
	default:
		return g.alloc.Allocate()
	}
}

func (g *Generator) generateBinary(expr *ast.BinaryExpr) Register {
	if expr.Operator == "=" {
		return g.generateAssignment(expr)
	}
	if expr.Operator == "&&" {
		return g.generateLogicalAnd(expr)
	}
	if expr.Operator == "||" {
		return g.generateLogicalOr(expr)
	}

	left := g.generateExpression(expr.Left)
	right := g.generateExpression(expr.Right)

	switch expr.Operator {
	case "+":
		g.emit("addq %%%s, %%%s", right.name(8), left.name(8))
	case "-":
		g.emit("subq %%%s, %%%s", right.name(8), left.name(8))
	case "*":
		g.emit("imulq %%%s, %%%s", right.name(8), left.name(8))
	case "/":
		result := g.emitDivMod(left, right)
		return result
	case "%":
		g.emitDivMod(left, right)
		g.alloc.Free(RAX)
		return RDX
	case "<", ">", "<=", ">=", "==", "!=":
		g.emit("cmpq %%%s, %%%s", right.name(8), left.name(8))
		g.emit("%s %%%s", setInstruction(expr.Operator), left.name(1))
		g.emit("movzbl %%%s, %%%s", left.name(1), left.name(4))
	}

	g.alloc.Free(right)
	return left
}

func setInstruction(op string) string {
	switch op {
	case "<":
		return "setl"
	case ">":
		return "setg"
	case "<=":
		return "setle"
	case ">=":
		return "setge"
	case "==":
		return "sete"
	case "!=":
		return "setne"
	default:
		return "sete"
	}
}

// emitDivMod handles both "/" (quotient) and "%" (remainder). idivq wants
// the dividend sign-extended into RAX:RDX by cqto and the divisor in any
// other register, so the divisor is copied out of RAX/RDX first if the
// allocator happened to put it there.
func (g *Generator) emitDivMod(left, right Register) Register {
	divisor := right
	if divisor == RAX || divisor == RDX {
		safe := g.alloc.Allocate()
		g.emit("movq %%%s, %%%s", divisor.name(8), safe.name(8))
		g.alloc.Free(divisor)
		divisor = safe
	}
	if left != RAX {
		g.emit("movq %%%s, %%rax", left.name(8))
		g.alloc.Free(left)
	}
	g.alloc.Use(RAX)
	g.alloc.Use(RDX)
	g.emit("cqto")
	g.emit("idivq %%%s", divisor.name(8))
	g.alloc.Free(divisor)
	return RAX
}

func (g *Generator) generateLogicalAnd(expr *ast.BinaryExpr) Register {
	falseLabel := g.newLabel("andfalse")
	endLabel := g.newLabel("andend")

	left := g.generateExpression(expr.Left)
	g.emit("testq %%%s, %%%s", left.name(8), left.name(8))
	g.alloc.Free(left)
	g.emit("jz %s", falseLabel)

	right := g.generateExpression(expr.Right)
	g.emit("testq %%%s, %%%s", right.name(8), right.name(8))
	g.alloc.Free(right)
	g.emit("jz %s", falseLabel)

	result := g.alloc.Allocate()
	g.emit("movq $1, %%%s", result.name(8))
	g.emit("jmp %s", endLabel)
	g.emitLabel(falseLabel)
	g.emit("movq $0, %%%s", result.name(8))
	g.emitLabel(endLabel)
	return result
}

func (g *Generator) generateLogicalOr(expr *ast.BinaryExpr) Register {
	trueLabel := g.newLabel("ortrue")
	endLabel := g.newLabel("orend")

	left := g.generateExpression(expr.Left)
	g.emit("testq %%%s, %%%s", left.name(8), left.name(8))
	g.alloc.Free(left)
	g.emit("jnz %s", trueLabel)

	right := g.generateExpression(expr.Right)
	g.emit("testq %%%s, %%%s", right.name(8), right.name(8))
	g.alloc.Free(right)
	g.emit("jnz %s", trueLabel)

	result := g.alloc.Allocate()
	g.emit("movq $0, %%%s", result.name(8))
	g.emit("jmp %s", endLabel)
	g.emitLabel(trueLabel)
	g.emit("movq $1, %%%s", result.name(8))
	g.emitLabel(endLabel)
	return result
}

func (g *Generator) generateAssignment(expr *ast.BinaryExpr) Register {
	right := g.generateExpression(expr.Right)

	target, ok := expr.Left.(*ast.Identifier)
	if !ok {
		return right
	}
	g.storeIdentifier(target.Name, target.ResolvedType(), right)
	return right
}

func (g *Generator) storeIdentifier(name string, typ types.DataType, value Register) {
	if v, ok := g.frame.find(name); ok {
		g.emit("mov%s %%%s, %d(%%rbp)", v.typ.Suffix(), value.sized(v.typ), v.offset)
		return
	}
	if gt, ok := g.globals[name]; ok {
		g.emit("mov%s %%%s, %s(%%rip)", gt.Suffix(), value.sized(gt), name)
	}
}

func (g *Generator) generateUnary(expr *ast.UnaryExpr) Register {
	operand := g.generateExpression(expr.Operand)

	switch expr.Operator {
	case "-":
		g.emit("negq %%%s", operand.name(8))
	case "+":
		// unary plus is a no-op
	case "!":
		g.emit("testq %%%s, %%%s", operand.name(8), operand.name(8))
		g.emit("sete %%%s", operand.name(1))
		g.emit("movzbl %%%s, %%%s", operand.name(1), operand.name(4))
	}
	return operand
}

// generateCall evaluates each argument left-to-right and pushes it onto
// the stack, then pops them off in reverse into the SysV argument
// registers. Routing arguments through the stack (rather than moving
// straight into rdi/rsi/...) sidesteps clobbering an argument register
// that a later argument's own evaluation still needs.
func (g *Generator) generateCall(expr *ast.CallExpr) Register {
	for _, arg := range expr.Arguments {
		reg := g.generateExpression(arg)
		g.emit("pushq %%%s", reg.name(8))
		g.alloc.Free(reg)
	}
	for i := len(expr.Arguments) - 1; i >= 0; i-- {
		g.emit("popq %%%s", argRegisters[i].name(8))
	}

	g.emit("call %s", expr.Name)

	result := g.alloc.Allocate()
	if result != RAX {
		g.emit("movq %%rax, %%%s", result.name(8))
	}
	return result
}

func (g *Generator) generateIdentifierLoad(expr *ast.Identifier) Register {
	if v, ok := g.frame.find(expr.Name); ok {
		reg := g.alloc.Allocate()
		if v.typ == types.CHAR {
			g.emit("movsbl %d(%%rbp), %%%s", v.offset, reg.name(4))
		} else {
			g.emit("mov%s %d(%%rbp), %%%s", v.typ.Suffix(), v.offset, reg.sized(v.typ))
		}
		return reg
	}
	if gt, ok := g.globals[expr.Name]; ok {
		reg := g.alloc.Allocate()
		if gt == types.CHAR {
			g.emit("movsbl %s(%%rip), %%%s", expr.Name, reg.name(4))
		} else {
			g.emit("mov%s %s(%%rip), %%%s", gt.Suffix(), expr.Name, reg.sized(gt))
		}
		return reg
	}
	return g.alloc.Allocate()
}

func (g *Generator) generateNumber(expr *ast.NumberLiteral) Register {
	reg := g.alloc.Allocate()
	g.emit("movq $%d, %%%s", expr.Value, reg.name(8))
	return reg
}

func (g *Generator) generateString(expr *ast.StringLiteral) Register {
	label := g.internString(expr.Value)
	reg := g.alloc.Allocate()
	g.emit("movq $%s, %%%s", label, reg.name(8))
	return reg
}
