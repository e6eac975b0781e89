package codegen

import "github.com/ryan-tobin/tiny-c-compiler/internal/ast"

func (g *Generator) generateStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompoundStmt:
		g.generateCompound(s)
	case *ast.IfStmt:
		g.generateIf(s)
	case *ast.WhileStmt:
		g.generateWhile(s)
	case *ast.ForStmt:
		g.generateFor(s)
	case *ast.ReturnStmt:
		g.generateReturn(s)
	case *ast.ExpressionStmt:
		g.generateExpressionStmt(s)
	case *ast.VariableDecl:
		g.generateLocalVariableDecl(s)
	}
}

func (g *Generator) generateCompound(stmt *ast.CompoundStmt) {
	for _, s := range stmt.Statements {
		g.generateStatement(s)
	}
}

func (g *Generator) generateIf(stmt *ast.IfStmt) {
	elseLabel := g.newLabel("else")
	endLabel := g.newLabel("endif")

	cond := g.generateExpression(stmt.Condition)
	g.emit("testq %%%s, %%%s", cond.name(8), cond.name(8))
	g.alloc.Free(cond)

	if stmt.Else != nil {
		g.emit("jz %s", elseLabel)
	} else {
		g.emit("jz %s", endLabel)
	}

	g.generateStatement(stmt.Then)

	if stmt.Else != nil {
		g.emit("jmp %s", endLabel)
		g.emitLabel(elseLabel)
		g.generateStatement(stmt.Else)
	}

	g.emitLabel(endLabel)
}

func (g *Generator) generateWhile(stmt *ast.WhileStmt) {
	loopLabel := g.newLabel("while")
	endLabel := g.newLabel("endwhile")

	g.emitLabel(loopLabel)
	cond := g.generateExpression(stmt.Condition)
	g.emit("testq %%%s, %%%s", cond.name(8), cond.name(8))
	g.alloc.Free(cond)
	g.emit("jz %s", endLabel)

	g.generateStatement(stmt.Body)
	g.emit("jmp %s", loopLabel)
	g.emitLabel(endLabel)
}

func (g *Generator) generateFor(stmt *ast.ForStmt) {
	loopLabel := g.newLabel("for")
	updateLabel := g.newLabel("forupdate")
	endLabel := g.newLabel("endfor")

	if stmt.Init != nil {
		g.generateStatement(stmt.Init)
	}

	g.emitLabel(loopLabel)
	if stmt.Condition != nil {
		cond := g.generateExpression(stmt.Condition)
		g.emit("testq %%%s, %%%s", cond.name(8), cond.name(8))
		g.alloc.Free(cond)
		g.emit("jz %s", endLabel)
	}

	g.generateStatement(stmt.Body)

	g.emitLabel(updateLabel)
	if stmt.Update != nil {
		reg := g.generateExpression(stmt.Update)
		g.alloc.Free(reg)
	}

	g.emit("jmp %s", loopLabel)
	g.emitLabel(endLabel)
}

func (g *Generator) generateReturn(stmt *ast.ReturnStmt) {
	if stmt.Value != nil {
		reg := g.generateExpression(stmt.Value)
		if reg != RAX {
			g.emit("movq %%%s, %%rax", reg.name(8))
		}
		g.alloc.Free(reg)
	}
	g.emit("jmp .Lreturn")
}

func (g *Generator) generateExpressionStmt(stmt *ast.ExpressionStmt) {
	reg := g.generateExpression(stmt.Expr)
	g.alloc.Free(reg)
}

func (g *Generator) generateLocalVariableDecl(decl *ast.VariableDecl) {
	offset := g.frame.declare(decl.Name, decl.Type)
	if decl.Initializer == nil {
		return
	}
	reg := g.generateExpression(decl.Initializer)
	g.emit("mov%s %%%s, %d(%%rbp)", decl.Type.Suffix(), reg.sized(decl.Type), offset)
	g.alloc.Free(reg)
}
