package codegen

import "github.com/ryan-tobin/tiny-c-compiler/internal/types"

// Register names one of the 8 general-purpose pseudo-registers the code
// generator allocates expression temporaries from. Six of them (all but
// RAX and RBX) are also the SysV argument-passing registers, reused for
// that purpose in function prologues and at call sites.
type Register int

const (
	RAX Register = iota
	RBX
	RCX
	RDX
	RSI
	RDI
	R8
	R9

	registerCount = 8
	noRegister    = Register(-1)
)

// registerNames holds, for each Register, its name at 64-bit, 32-bit,
// and 8-bit widths — the AT&T mnemonics GAS expects after a '%' sigil.
var registerNames = [registerCount][3]string{
	RAX: {"rax", "eax", "al"},
	RBX: {"rbx", "ebx", "bl"},
	RCX: {"rcx", "ecx", "cl"},
	RDX: {"rdx", "edx", "dl"},
	RSI: {"rsi", "esi", "sil"},
	RDI: {"rdi", "edi", "dil"},
	R8:  {"r8", "r8d", "r8b"},
	R9:  {"r9", "r9d", "r9b"},
}

// name returns the AT&T register mnemonic for r at the given operand
// size in bytes (8, 4, or 1); any other size falls back to the 64-bit name.
func (r Register) name(size int) string {
	switch size {
	case 1:
		return registerNames[r][2]
	case 4:
		return registerNames[r][1]
	default:
		return registerNames[r][0]
	}
}

// sized returns r's name at the width dt naturally occupies.
func (r Register) sized(dt types.DataType) string {
	return r.name(dt.Size())
}

// argRegisters is the SysV calling-convention order for the first six
// integer/pointer arguments.
var argRegisters = [6]Register{RDI, RSI, RDX, RCX, R8, R9}

// maxCallArguments is the number of SysV argument registers available;
// TinyC has no stack-argument passing convention. The code generator does
// not check it: the semantic analyzer rejects functions declared with more
// parameters than this, and calls whose argument count differs from the
// declaration.
const maxCallArguments = 6

// registerAllocator is a bitmap over the 8 pseudo-registers. Allocate
// hands out the lowest-numbered free register; once all 8 are in use it
// falls back to returning RAX again rather than failing, the same
// clobber-on-exhaustion strategy the reference backend uses.
type registerAllocator struct {
	used [registerCount]bool
}

func (a *registerAllocator) Allocate() Register {
	for i := 0; i < registerCount; i++ {
		if !a.used[i] {
			a.used[i] = true
			return Register(i)
		}
	}
	return RAX
}

// Use forcibly marks r as allocated, for registers an instruction
// dictates rather than the allocator chooses (RAX:RDX around idivq).
func (a *registerAllocator) Use(r Register) {
	a.used[r] = true
}

func (a *registerAllocator) Free(r Register) {
	a.used[r] = false
}

func (a *registerAllocator) FreeAll() {
	for i := range a.used {
		a.used[i] = false
	}
}
