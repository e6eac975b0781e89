// Package diag holds the positioned-error ledger shared by every compiler
// stage: the lexer, parser, semantic analyzer, and code generator each own
// one and append to it as they go, rather than aborting on the first
// problem found.
package diag

import (
	"fmt"
	"strings"
)

// Error is one positioned diagnostic. Context names the enclosing
// construct (usually a function name) when a stage has one handy.
type Error struct {
	Message string
	Line    int
	Column  int
	Context string
}

func (e Error) String() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d, column %d: ", e.Line, e.Column)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, "in %s: ", e.Context)
	}
	b.WriteString(e.Message)
	return b.String()
}

// Diagnostics is an append-only list of Errors owned by one pipeline stage.
// Stages never abort on the first error; they record it here and keep going.
type Diagnostics struct {
	stage  string
	errors []Error
}

// New creates an empty ledger tagged with the owning stage's name.
func New(stage string) *Diagnostics {
	return &Diagnostics{stage: stage}
}

func (d *Diagnostics) Add(message string, line, column int) {
	d.errors = append(d.errors, Error{Message: message, Line: line, Column: column})
}

func (d *Diagnostics) AddContext(message string, line, column int, context string) {
	d.errors = append(d.errors, Error{Message: message, Line: line, Column: column, Context: context})
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.errors) > 0
}

func (d *Diagnostics) Count() int {
	return len(d.errors)
}

func (d *Diagnostics) Errors() []Error {
	out := make([]Error, len(d.errors))
	copy(out, d.errors)
	return out
}

// Merge appends another ledger's errors onto this one. The merged errors
// are formatted under this ledger's stage name.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.errors = append(d.errors, other.errors...)
}

// Format renders every accumulated error as one line prefixed by the
// owning stage's name, e.g. "Parser error at line 4, column 9: ...".
func (d *Diagnostics) Format() []string {
	out := make([]string, 0, len(d.errors))
	for _, e := range d.errors {
		var b strings.Builder
		fmt.Fprintf(&b, "%s error", d.stage)
		if e.Line > 0 {
			fmt.Fprintf(&b, " at line %d, column %d", e.Line, e.Column)
		}
		if e.Context != "" {
			fmt.Fprintf(&b, " in %s", e.Context)
		}
		fmt.Fprintf(&b, ": %s", e.Message)
		out = append(out, b.String())
	}
	return out
}
