// Package ast defines the TinyC abstract syntax tree: a closed set of node
// kinds, each carrying a source token so every later stage can report a
// real (line, column). Nodes carry their first token, except that a binary
// expression (assignment included) carries its operator token.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() (line, column int)
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	// ResolvedType returns the type the semantic analyzer assigned to this
	// expression. It is types.VOID until analysis has run.
	ResolvedType() types.DataType
	SetResolvedType(types.DataType)
}

// base embeds the originating Token in every node and implements the
// position/literal half of Node so concrete node types only add their
// own fields and String().
type base struct {
	Token token.Token
}

func (b base) TokenLiteral() string { return b.Token.Lexeme }
func (b base) Pos() (int, int)      { return b.Token.Line, b.Token.Column }

// exprBase additionally carries the type the semantic analyzer resolves
// this expression to.
type exprBase struct {
	base
	resolved types.DataType
}

func (e *exprBase) expressionNode()               {}
func (e *exprBase) ResolvedType() types.DataType   { return e.resolved }
func (e *exprBase) SetResolvedType(t types.DataType) { e.resolved = t }

// Program is the root node: a sequence of top-level declarations.
type Program struct {
	base
	Declarations []Declaration
}

// Declaration is either a FunctionDecl or a top-level VariableDecl.
type Declaration interface {
	Node
	declarationNode()
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Parameter is one function parameter: a type and a name.
type Parameter struct {
	base
	Type types.DataType
	Name string
}

func (p *Parameter) String() string {
	return p.Type.String() + " " + p.Name
}

// FunctionDecl declares a function, optionally with a body. A nil Body
// means a forward declaration (a prototype ending in ';').
type FunctionDecl struct {
	base
	ReturnType types.DataType
	Name       string
	Parameters []*Parameter
	Body       *CompoundStmt
}

func (f *FunctionDecl) statementNode()   {}
func (f *FunctionDecl) declarationNode() {}
func (f *FunctionDecl) String() string {
	var out bytes.Buffer
	out.WriteString(f.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(f.Name)
	out.WriteString("(")
	parts := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		parts = append(parts, p.String())
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	if f.Body != nil {
		out.WriteString(" ")
		out.WriteString(f.Body.String())
	} else {
		out.WriteString(";")
	}
	return out.String()
}

// VariableDecl declares a variable, with an optional initializer. It
// appears both as a top-level Declaration and as a Statement inside a
// function body.
type VariableDecl struct {
	base
	Type        types.DataType
	Name        string
	Initializer Expression
}

func (v *VariableDecl) statementNode()   {}
func (v *VariableDecl) declarationNode() {}
func (v *VariableDecl) String() string {
	var out bytes.Buffer
	out.WriteString(v.Type.String())
	out.WriteString(" ")
	out.WriteString(v.Name)
	if v.Initializer != nil {
		out.WriteString(" = ")
		out.WriteString(v.Initializer.String())
	}
	out.WriteString(";")
	return out.String()
}

// CompoundStmt is a brace-delimited statement sequence, introducing its
// own lexical scope.
type CompoundStmt struct {
	base
	Statements []Statement
}

func (c *CompoundStmt) statementNode() {}
func (c *CompoundStmt) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range c.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// IfStmt represents if (cond) then [else alt]. Neither branch introduces
// a scope of its own beyond what Then/Else already do as statements.
type IfStmt struct {
	base
	Condition Expression
	Then      Statement
	Else      Statement
}

func (i *IfStmt) statementNode() {}
func (i *IfStmt) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(i.Condition.String())
	out.WriteString(") ")
	out.WriteString(i.Then.String())
	if i.Else != nil {
		out.WriteString(" else ")
		out.WriteString(i.Else.String())
	}
	return out.String()
}

// WhileStmt represents while (cond) body.
type WhileStmt struct {
	base
	Condition Expression
	Body      Statement
}

func (w *WhileStmt) statementNode() {}
func (w *WhileStmt) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// ForStmt represents for (init; cond; update) body. Init, Cond, and
// Update may each be nil. ForStmt introduces its own scope (so a
// variable declared in Init is visible to Cond/Update/Body only).
type ForStmt struct {
	base
	Init      Statement
	Condition Expression
	Update    Expression
	Body      Statement
}

func (f *ForStmt) statementNode() {}
func (f *ForStmt) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if f.Init != nil {
		out.WriteString(strings.TrimSuffix(f.Init.String(), ";"))
	}
	out.WriteString("; ")
	if f.Condition != nil {
		out.WriteString(f.Condition.String())
	}
	out.WriteString("; ")
	if f.Update != nil {
		out.WriteString(f.Update.String())
	}
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// ReturnStmt represents return [expr];. Value is nil for a bare return.
type ReturnStmt struct {
	base
	Value Expression
}

func (r *ReturnStmt) statementNode() {}
func (r *ReturnStmt) String() string {
	if r.Value != nil {
		return "return " + r.Value.String() + ";"
	}
	return "return;"
}

// ExpressionStmt is an expression evaluated for effect, then discarded.
type ExpressionStmt struct {
	base
	Expr Expression
}

func (e *ExpressionStmt) statementNode() {}
func (e *ExpressionStmt) String() string {
	return e.Expr.String() + ";"
}

// BinaryExpr represents left op right, including assignment (op "=").
type BinaryExpr struct {
	exprBase
	Operator string
	Left     Expression
	Right    Expression
}

func (b *BinaryExpr) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpr represents a prefix operator applied to Operand ("-", "!").
type UnaryExpr struct {
	exprBase
	Operator string
	Operand  Expression
}

func (u *UnaryExpr) String() string {
	return "(" + u.Operator + u.Operand.String() + ")"
}

// CallExpr represents name(arguments...). TinyC only calls identifiers,
// not arbitrary expressions, so the callee is carried as a name rather
// than a nested Expression.
type CallExpr struct {
	exprBase
	Name      string
	Arguments []Expression
}

func (c *CallExpr) String() string {
	args := make([]string, 0, len(c.Arguments))
	for _, a := range c.Arguments {
		args = append(args, a.String())
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Identifier represents a variable or parameter reference.
type Identifier struct {
	exprBase
	Name string
}

func (i *Identifier) String() string { return i.Name }

// NumberLiteral represents an integer literal; TinyC has no floats.
type NumberLiteral struct {
	exprBase
	Value int64
}

func (n *NumberLiteral) String() string { return strconv.FormatInt(n.Value, 10) }

// StringLiteral represents a double-quoted string literal; its static
// type is always CHAR_PTR.
type StringLiteral struct {
	exprBase
	Value string
}

func (s *StringLiteral) String() string { return strconv.Quote(s.Value) }
