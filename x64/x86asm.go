package x64

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

var x86asmRegs = [...]x86asm.Reg{
	RAX: x86asm.RAX, RCX: x86asm.RCX, RDX: x86asm.RDX, RBX: x86asm.RBX,
	RSP: x86asm.RSP, RBP: x86asm.RBP, RSI: x86asm.RSI, RDI: x86asm.RDI,
	R8: x86asm.R8, R9: x86asm.R9, R10: x86asm.R10, R11: x86asm.R11,
	R12: x86asm.R12, R13: x86asm.R13, R14: x86asm.R14, R15: x86asm.R15,
	RIP: x86asm.RIP,
}

var x86asmFRegs = [RegCount]x86asm.Reg{
	x86asm.X0, x86asm.X1, x86asm.X2, x86asm.X3,
	x86asm.X4, x86asm.X5, x86asm.X6, x86asm.X7,
	x86asm.X8, x86asm.X9, x86asm.X10, x86asm.X11,
	x86asm.X12, x86asm.X13, x86asm.X14, x86asm.X15,
}

// X86asm returns the 64-bit register as named by the disassembler. RIP maps to x86asm.RIP,
// which is how RIP-relative memory operands name their base.
func (r Reg) X86asm() x86asm.Reg {
	if int(r) >= len(x86asmRegs) {
		panic(fmt.Sprintf("BUG: %s has no disassembler name", r))
	}
	return x86asmRegs[r]
}

// X86asm returns the register as named by the disassembler.
func (f FReg) X86asm() x86asm.Reg {
	if f >= RegCount {
		panic(fmt.Sprintf("BUG: %s has no disassembler name", f))
	}
	return x86asmFRegs[f]
}

// FromX86asm returns the Register for a disassembled 64-bit general purpose, RIP or XMM register.
func FromX86asm(reg x86asm.Reg) (Register, bool) {
	for i, r := range x86asmRegs {
		if r == reg {
			return GeneralRegister(Reg(i)), true
		}
	}
	for i, f := range x86asmFRegs {
		if f == reg {
			return FloatRegister(FReg(i)), true
		}
	}
	return Register{}, false
}
