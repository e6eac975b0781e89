package codegen

import (
	"fmt"

	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/diag"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

// Generate lowers an entire program to assembly text. It never returns a
// Go error for a malformed-but-parseable program; problems are recorded
// on the returned Diagnostics and generation continues on a best-effort
// basis so the caller can report every problem at once.
func Generate(program *ast.Program) (string, *diag.Diagnostics) {
	g := New()
	g.generateProgram(program)
	return g.out.String(), g.diags
}

func (g *Generator) generateProgram(program *ast.Program) {
	g.emitComment("Generated by the TinyC compiler")

	var globalDecls []*ast.VariableDecl
	for _, decl := range program.Declarations {
		if v, ok := decl.(*ast.VariableDecl); ok {
			g.globals[v.Name] = v.Type
			globalDecls = append(globalDecls, v)
		}
	}

	// Function bodies are generated into a scratch Generator first so
	// string literals they reference are known before the .data section
	// (which must precede .text in the output) is written.
	body := New()
	body.diags = g.diags
	body.globals = g.globals
	for _, decl := range program.Declarations {
		if fn, ok := decl.(*ast.FunctionDecl); ok {
			body.generateFunction(fn)
		}
	}

	g.emitRaw(".section .data")
	for _, v := range globalDecls {
		g.emitGlobalStorage(v)
	}
	for _, s := range body.strings {
		g.emitLabel(s.label)
		g.emit(".string %s", quoteAssemblyString(s.value))
	}
	g.emitRaw("")
	g.emitRaw(".section .text")
	g.out.WriteString(body.out.String())
}

// emitGlobalStorage writes one top-level variable's .data entry. Only a
// bare integer-literal initializer is supported, since the assembler
// needs the value at assemble time; anything else is a codegen error
// rather than a silently-dropped initializer.
func (g *Generator) emitGlobalStorage(decl *ast.VariableDecl) {
	directive := globalDirective(decl.Type)
	g.emitLabel(decl.Name)
	if decl.Initializer == nil {
		g.emit(".zero %d", decl.Type.Size())
		return
	}
	num, ok := decl.Initializer.(*ast.NumberLiteral)
	if !ok {
		g.errorAt(decl, "Global variable '%s' initializer must be a constant expression", decl.Name)
		g.emit(".zero %d", decl.Type.Size())
		return
	}
	g.emit("%s %d", directive, num.Value)
}

func globalDirective(t types.DataType) string {
	switch t {
	case types.CHAR:
		return ".byte"
	case types.CHAR_PTR:
		return ".quad"
	default:
		return ".long"
	}
}

// quoteAssemblyString re-quotes a TinyC string literal's raw source text
// (already containing whatever backslash escapes the source spelled) for
// GAS's .string directive, which itself accepts C-style escapes.
func quoteAssemblyString(value string) string {
	return fmt.Sprintf("\"%s\"", value)
}

func (g *Generator) generateFunction(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return
	}

	g.frame = newFrame(fn.Name)
	g.alloc.FreeAll()

	for _, p := range fn.Parameters {
		g.frame.declare(p.Name, p.Type)
	}

	if fn.Name == "main" {
		g.emitRaw(".global main")
	}
	g.emitLabel(fn.Name)
	g.emit("pushq %%rbp")
	g.emit("movq %%rsp, %%rbp")

	// Move incoming SysV argument registers into their stack slots before
	// the allocator can hand any of them out as expression temporaries.
	for i, p := range fn.Parameters {
		v, _ := g.frame.find(p.Name)
		g.emit("mov%s %%%s, %d(%%rbp)", v.typ.Suffix(), argRegisters[i].sized(v.typ), v.offset)
	}

	// Locals are declared as the body is generated, so the body is
	// generated first and the frame reservation is written ahead of it
	// once the frame's full size is known.
	prologue := g.out.String()
	g.out.Reset()
	g.generateStatement(fn.Body)
	body := g.out.String()
	g.out.Reset()
	g.out.WriteString(prologue)
	if size := g.frame.alignedSize(); size > 0 {
		g.emit("subq $%d, %%rsp", size)
	}
	g.out.WriteString(body)

	g.emitLabel(".Lreturn")
	if fn.ReturnType == types.VOID {
		g.emit("movq $0, %%rax")
	}
	g.emit("movq %%rbp, %%rsp")
	g.emit("popq %%rbp")
	g.emit("ret")
	g.emitRaw("")

	g.frame = nil
}
