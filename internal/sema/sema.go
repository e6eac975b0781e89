// Package sema type-checks a TinyC AST and resolves every identifier and
// function call against a lexically-scoped symbol table, in two passes:
// first every function signature is declared (so forward references and
// mutual recursion work), then every function body and global initializer
// is walked and its expressions annotated with resolved types.
package sema

import (
	"fmt"

	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/diag"
	"github.com/ryan-tobin/tiny-c-compiler/internal/symbols"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

// maxCallArguments mirrors the code generator's SysV argument-register
// limit: a function cannot be declared with more parameters than can be
// passed in registers, since TinyC has no stack-argument convention.
const maxCallArguments = 6

type Analyzer struct {
	global  *symbols.Scope
	current *symbols.Scope
	diags   *diag.Diagnostics

	currentFunctionName       string
	currentFunctionReturnType types.DataType
}

func New() *Analyzer {
	global := symbols.NewGlobalScope()
	return &Analyzer{
		global:  global,
		current: global,
		diags:   diag.New("Semantic"),
	}
}

// Analyze runs both passes over program and returns the accumulated
// diagnostics. It also returns the global scope, holding every declared
// function and global variable, for the caller to inspect.
func Analyze(program *ast.Program) (*symbols.Scope, *diag.Diagnostics) {
	a := New()
	a.analyzeProgram(program)
	return a.global, a.diags
}

func (a *Analyzer) pushScope() {
	a.current = symbols.NewEnclosedScope(a.current)
}

func (a *Analyzer) popScope() {
	if parent := a.current.Parent(); parent != nil {
		a.current = parent
	}
}

func (a *Analyzer) errorAt(node ast.Node, format string, args ...interface{}) {
	line, col := node.Pos()
	a.diags.Add(fmt.Sprintf(format, args...), line, col)
}

func (a *Analyzer) analyzeProgram(program *ast.Program) {
	// First pass: declare every function signature so calls can forward-
	// reference functions defined later in the file.
	for _, decl := range program.Declarations {
		fn, ok := decl.(*ast.FunctionDecl)
		if !ok {
			continue
		}

		paramTypes := make([]types.DataType, len(fn.Parameters))
		for i, p := range fn.Parameters {
			paramTypes[i] = p.Type
		}

		if len(fn.Parameters) > maxCallArguments {
			a.errorAt(fn, "Function '%s' has too many parameters (max %d)", fn.Name, maxCallArguments)
		}

		sym := &symbols.Symbol{
			Name:           fn.Name,
			Kind:           symbols.FunctionSymbol,
			Type:           fn.ReturnType,
			ParameterTypes: paramTypes,
			Defined:        fn.Body != nil,
		}
		if !a.global.Declare(sym) {
			a.errorAt(fn, "Function '%s' already declared", fn.Name)
		}
	}

	// Second pass: analyze function bodies and global variable
	// initializers now that every function signature is visible.
	for _, decl := range program.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			a.analyzeFunctionDecl(d)
		case *ast.VariableDecl:
			a.analyzeVariableDecl(d)
		}
	}
}

func (a *Analyzer) analyzeFunctionDecl(fn *ast.FunctionDecl) {
	a.currentFunctionName = fn.Name
	a.currentFunctionReturnType = fn.ReturnType

	if fn.Body == nil {
		return
	}

	a.pushScope()
	for _, p := range fn.Parameters {
		sym := &symbols.Symbol{Name: p.Name, Kind: symbols.ParameterSymbol, Type: p.Type}
		if !a.current.Declare(sym) {
			a.errorAt(p, "Parameter '%s' already declared", p.Name)
		}
	}

	a.analyzeStatement(fn.Body)
	a.popScope()

	a.currentFunctionName = ""
	a.currentFunctionReturnType = types.VOID
}

func (a *Analyzer) analyzeVariableDecl(decl *ast.VariableDecl) {
	sym := &symbols.Symbol{Name: decl.Name, Kind: symbols.VariableSymbol, Type: decl.Type}
	if !a.current.Declare(sym) {
		a.errorAt(decl, "Variable '%s' already declared", decl.Name)
		return
	}

	if decl.Initializer == nil {
		return
	}
	initType := a.analyzeExpression(decl.Initializer)
	if !types.Compatible(decl.Type, initType) {
		a.errorAt(decl.Initializer, "Cannot initialize variable '%s' of type '%s' with expression of type '%s'",
			decl.Name, decl.Type, initType)
	}
}
