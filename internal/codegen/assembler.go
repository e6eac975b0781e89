package codegen

import (
	"fmt"
	"os"
	"os/exec"
)

// AssembleAndLink writes assembly text to assemblyPath and links it against
// the TinyC runtime support object into a runnable executable at execPath.
// runtimePath points at runtime/runtime.c (or an equivalent object/source
// file) supplying the helper routines TinyC programs call into; gcc
// supplies the C startup code that calls main. The assembly file is left in place at assemblyPath
// even when linking fails, so it remains usable on its own.
func AssembleAndLink(assembly, assemblyPath, execPath, runtimePath string) error {
	if err := os.WriteFile(assemblyPath, []byte(assembly), 0o644); err != nil {
		return fmt.Errorf("failed to write assembly: %v", err)
	}

	cmd := exec.Command("gcc", "-m64", "-no-pie", assemblyPath, runtimePath, "-o", execPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("link failed: %v\n%s", err, output)
	}

	return nil
}

// AssembleOnly writes the assembly text to outputPath as a standalone .s
// file, without running the assembler or linker. Used by the driver's
// --compile-only flag.
func AssembleOnly(assembly, outputPath string) error {
	return os.WriteFile(outputPath, []byte(assembly), 0o644)
}
