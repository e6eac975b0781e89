// Package codegen lowers a semantically-checked TinyC AST into x86-64
// System V AT&T-syntax GAS assembly text.
package codegen

import (
	"fmt"
	"strings"

	"github.com/ryan-tobin/tiny-c-compiler/internal/ast"
	"github.com/ryan-tobin/tiny-c-compiler/internal/diag"
	"github.com/ryan-tobin/tiny-c-compiler/internal/types"
)

// stringLiteral pairs a source string value with the .LC<n> label it was
// assigned in the .data section.
type stringLiteral struct {
	value string
	label string
}

// Generator walks a Program and accumulates GAS assembly text. It is
// single-use: create one per compilation with New.
type Generator struct {
	out strings.Builder

	labelCounter  int
	stringCounter int
	strings       []stringLiteral

	alloc   registerAllocator
	frame   *frame
	globals map[string]types.DataType

	diags *diag.Diagnostics
}

func New() *Generator {
	return &Generator{diags: diag.New("Codegen"), globals: make(map[string]types.DataType)}
}

func (g *Generator) Diagnostics() *diag.Diagnostics {
	return g.diags
}

func (g *Generator) emit(format string, args ...interface{}) {
	fmt.Fprintf(&g.out, "    "+format+"\n", args...)
}

func (g *Generator) emitLabel(label string) {
	fmt.Fprintf(&g.out, "%s:\n", label)
}

func (g *Generator) emitComment(comment string) {
	fmt.Fprintf(&g.out, "    # %s\n", comment)
}

func (g *Generator) emitRaw(line string) {
	g.out.WriteString(line)
	g.out.WriteString("\n")
}

// newLabel generates a unique local label of the form .L<prefix><n>.
func (g *Generator) newLabel(prefix string) string {
	label := fmt.Sprintf(".L%s%d", prefix, g.labelCounter)
	g.labelCounter++
	return label
}

// internString returns the .LC<n> label for value, reusing an existing
// label if this exact string was already emitted (deduplication).
func (g *Generator) internString(value string) string {
	for _, s := range g.strings {
		if s.value == value {
			return s.label
		}
	}
	label := fmt.Sprintf(".LC%d", g.stringCounter)
	g.stringCounter++
	g.strings = append(g.strings, stringLiteral{value: value, label: label})
	return label
}

func (g *Generator) errorAt(node ast.Node, format string, args ...interface{}) {
	line, col := node.Pos()
	g.diags.Add(fmt.Sprintf(format, args...), line, col)
}
