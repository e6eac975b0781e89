package codegen

import "github.com/ryan-tobin/tiny-c-compiler/internal/types"

// frameVar is one local variable or parameter's activation-record slot.
type frameVar struct {
	name   string
	typ    types.DataType
	offset int // rbp-relative, always negative
}

// frame tracks one function's activation record as its body is walked:
// every declared variable and parameter gets an 8-byte-padded slot below
// rbp, growing the frame downward exactly the way the reference backend's
// function_context does.
type frame struct {
	name      string
	stackSize int
	vars      []*frameVar
}

func newFrame(name string) *frame {
	return &frame{name: name}
}

// declare reserves a new slot for name and returns its rbp-relative
// offset. Slot size is rounded up to 8 bytes so every slot is
// pointer-aligned, matching the reference backend's "(size + 7) & ~7".
func (f *frame) declare(name string, typ types.DataType) int {
	size := typ.Size()
	padded := (size + 7) &^ 7
	if padded == 0 {
		padded = 8
	}
	f.stackSize += padded
	offset := -f.stackSize
	f.vars = append(f.vars, &frameVar{name: name, typ: typ, offset: offset})
	return offset
}

func (f *frame) find(name string) (*frameVar, bool) {
	for _, v := range f.vars {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// alignedSize returns the frame's total size rounded up to 16 bytes, the
// SysV stack-alignment requirement for the `sub rsp` in the prologue.
func (f *frame) alignedSize() int {
	return (f.stackSize + 15) &^ 15
}
