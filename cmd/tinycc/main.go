// Command tinycc compiles a single TinyC source file to a native x86-64
// executable, or, with --compile-only (-S), to a standalone assembly file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ryan-tobin/tiny-c-compiler/internal/codegen"
	"github.com/ryan-tobin/tiny-c-compiler/internal/lexer"
	"github.com/ryan-tobin/tiny-c-compiler/internal/parser"
	"github.com/ryan-tobin/tiny-c-compiler/internal/sema"
	"github.com/ryan-tobin/tiny-c-compiler/internal/symbols"
	"github.com/ryan-tobin/tiny-c-compiler/internal/token"
)

var (
	output       = flag.String("o", "out.s", "assembly output path")
	compileOnly  = flag.Bool("compile-only", false, "emit assembly only, do not assemble or link")
	compileOnlyS = flag.Bool("S", false, "alias for --compile-only")
	debugTokens  = flag.Bool("debug-tokens", false, "print the token stream and exit")
	debugAST     = flag.Bool("debug-ast", false, "print the parsed AST and exit")
	debugSymbols = flag.Bool("debug-symbols", false, "print the global symbol table and exit")
	runtimePath  = flag.String("runtime", defaultRuntimePath(), "path to the C runtime support file to link against")
)

func defaultRuntimePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "runtime/runtime.c"
	}
	return filepath.Join(filepath.Dir(exe), "..", "runtime", "runtime.c")
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tinycc [flags] <source.tc>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "tinycc: %v\n", err)
		os.Exit(1)
	}
}

func run(sourcePath string) error {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", sourcePath, err)
	}

	fmt.Println("=== LEXING ===")
	l := lexer.New(string(source))
	if *debugTokens {
		printTokens(l)
		return nil
	}

	fmt.Println("=== PARSING ===")
	l = lexer.New(string(source))
	program, parseDiags := parser.ParseProgram(l)
	lexFailed := reportDiagnostics(sourcePath, l.Diagnostics())
	parseFailed := reportDiagnostics(sourcePath, parseDiags)
	if lexFailed || parseFailed {
		fmt.Println("✗ Parsing failed with errors")
		return fmt.Errorf("parsing failed with %d error(s)", l.Diagnostics().Count()+parseDiags.Count())
	}
	fmt.Println("✓ Parsing completed successfully!")
	if *debugAST {
		fmt.Println(program.String())
		return nil
	}

	fmt.Println("=== SEMANTIC ANALYSIS ===")
	globals, semaDiags := sema.Analyze(program)
	if reportDiagnostics(sourcePath, semaDiags) {
		fmt.Println("✗ Semantic analysis failed with errors")
		return fmt.Errorf("semantic analysis failed with %d error(s)", semaDiags.Count())
	}
	fmt.Println("✓ Semantic analysis completed successfully!")
	if *debugSymbols {
		printGlobals(globals)
		return nil
	}

	fmt.Println("=== CODE GENERATION ===")
	asm, codegenDiags := codegen.Generate(program)
	if reportDiagnostics(sourcePath, codegenDiags) {
		fmt.Println("✗ Code generation failed!")
		return fmt.Errorf("code generation failed with %d error(s)", codegenDiags.Count())
	}

	if *compileOnly || *compileOnlyS {
		fmt.Println("=== WRITING ASSEMBLY ===")
		if err := codegen.AssembleOnly(asm, *output); err != nil {
			fmt.Println("✗ Code generation failed!")
			return err
		}
		fmt.Printf("✓ Code generation completed successfully!\n  Assembly written to: %s\n", *output)
		return nil
	}

	fmt.Println("=== ASSEMBLING AND LINKING ===")
	execPath := strippedExt(sourcePath)
	if err := codegen.AssembleAndLink(asm, *output, execPath, *runtimePath); err != nil {
		fmt.Printf("✗ Assembly and linking failed!\n  You can still use the assembly file: %s\n", *output)
		return err
	}
	fmt.Printf("✓ Code generation completed successfully!\n  Assembly written to: %s\n", *output)
	fmt.Printf("✓ Assembly and linking completed successfully!\n  Executable created: %s\n", execPath)

	fmt.Println("✓ Compilation completed successfully!")
	return nil
}

func reportDiagnostics(sourcePath string, diags interface {
	HasErrors() bool
	Format() []string
}) bool {
	for _, line := range diags.Format() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", sourcePath, line)
	}
	return diags.HasErrors()
}

func printTokens(l *lexer.Lexer) {
	for {
		tok := l.NextToken()
		fmt.Println(tok.String())
		if tok.Kind == token.EOF {
			break
		}
	}
}

func printGlobals(globals *symbols.Scope) {
	for _, sym := range globals.Symbols() {
		fmt.Printf("%s %s: %s\n", sym.Kind, sym.Name, sym.Type)
	}
}

func strippedExt(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}
