package x64

import (
	"fmt"

	"github.com/twitchyliquid64/golang-asm/obj/x86"
)

var golangAsmRegs = [RegCount]int16{
	x86.REG_AX, x86.REG_CX, x86.REG_DX, x86.REG_BX,
	x86.REG_SP, x86.REG_BP, x86.REG_SI, x86.REG_DI,
	x86.REG_R8, x86.REG_R9, x86.REG_R10, x86.REG_R11,
	x86.REG_R12, x86.REG_R13, x86.REG_R14, x86.REG_R15,
}

var golangAsmFRegs = [RegCount]int16{
	x86.REG_X0, x86.REG_X1, x86.REG_X2, x86.REG_X3,
	x86.REG_X4, x86.REG_X5, x86.REG_X6, x86.REG_X7,
	x86.REG_X8, x86.REG_X9, x86.REG_X10, x86.REG_X11,
	x86.REG_X12, x86.REG_X13, x86.REG_X14, x86.REG_X15,
}

// GolangAsm returns the register number used by obj.Addr.Reg in golang-asm.
//
// This panics with ErrInvalidPseudoRegisterUse for RIP: golang-asm expresses RIP-relative
// operands through the address name, not a register.
func (r Reg) GolangAsm() int16 {
	return golangAsmRegs[r.Index()]
}

// GolangAsm returns the register number used by obj.Addr.Reg in golang-asm.
func (f FReg) GolangAsm() int16 {
	if f >= RegCount {
		panic(fmt.Sprintf("BUG: %s has no golang-asm register", f))
	}
	return golangAsmFRegs[f]
}

// FromGolangAsm returns the Register for a golang-asm 64-bit general purpose or XMM register number.
func FromGolangAsm(reg int16) (Register, bool) {
	switch {
	case x86.REG_AX <= reg && reg <= x86.REG_R15:
		return GeneralRegister(Reg(reg - x86.REG_AX)), true
	case x86.REG_X0 <= reg && reg <= x86.REG_X15:
		return FloatRegister(FReg(reg - x86.REG_X0)), true
	default:
		return Register{}, false
	}
}
