// Package x64 names the x86-64 registers used by the code generator, derives the bits the
// instruction encoder puts into REX, ModRM and SIB, and holds the calling convention tables.
package x64

import "fmt"

// Reg identifies a general purpose register by its hardware index.
//
// Note: values are not validated on construction. Only 0-15 are hardware-addressable,
// and RIP (16) is a sentinel that every encoding operation rejects.
type Reg uint8

// FReg identifies an XMM register by its hardware index. Its namespace is disjoint from Reg.
type FReg uint8

// RegCount is the number of hardware-addressable registers in each class.
const RegCount = 16

// General purpose registers, in hardware encoding order.
// https://wiki.osdev.org/X86-64_Instruction_Encoding#Registers
const (
	RAX Reg = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15

	// RIP is the instruction pointer. It can only be used through RIP-relative addressing
	// and never as a ModRM/SIB register operand.
	RIP
)

// XMM registers.
const (
	XMM0 FReg = iota
	XMM1
	XMM2
	XMM3
	XMM4
	XMM5
	XMM6
	XMM7
	XMM8
	XMM9
	XMM10
	XMM11
	XMM12
	XMM13
	XMM14
	XMM15
)

var regNames = [...]string{
	RAX: "rax", RCX: "rcx", RDX: "rdx", RBX: "rbx", RSP: "rsp", RBP: "rbp", RSI: "rsi", RDI: "rdi",
	R8: "r8", R9: "r9", R10: "r10", R11: "r11", R12: "r12", R13: "r13", R14: "r14", R15: "r15",
	RIP: "rip",
}

// String implements fmt.Stringer.
func (r Reg) String() string {
	if int(r) < len(regNames) {
		return regNames[r]
	}
	return fmt.Sprintf("reg(%d)", uint8(r))
}

// String implements fmt.Stringer.
func (f FReg) String() string {
	if f < RegCount {
		return fmt.Sprintf("xmm%d", uint8(f))
	}
	return fmt.Sprintf("freg(%d)", uint8(f))
}

// Uint32 returns the raw identity value. Unlike Index it accepts RIP, so the result
// must not be used as an encoding.
func (r Reg) Uint32() uint32 {
	return uint32(r)
}

// Uint32 returns the raw identity value.
func (f FReg) Uint32() uint32 {
	return uint32(f)
}

// IsPseudo returns true if r has no ModRM/SIB encoding, i.e. it is RIP or out of range.
func (r Reg) IsPseudo() bool {
	return r >= RIP
}

// IsBasic returns true for RAX, RBX, RCX and RDX.
//
// These four need special treatment for byte operations: only they have an addressable
// second byte (ah, bh, ch, dh), and the same ModRM values select spl/bpl/sil/dil for the
// other registers once a REX prefix is present.
func (r Reg) IsBasic() bool {
	return r == RAX || r == RBX || r == RCX || r == RDX
}

// Index returns the full hardware index 0-15.
//
// This panics with ErrInvalidPseudoRegisterUse for RIP.
func (r Reg) Index() uint8 {
	mustEncodable(r)
	return uint8(r)
}

// HighBit returns the bit that goes into the REX (or VEX/EVEX) extension field.
//
// This panics with ErrInvalidPseudoRegisterUse for RIP.
func (r Reg) HighBit() uint8 {
	return (r.Index() >> 3) & 0x01
}

// Low3 returns the 3 bits that go into a ModRM reg/rm or SIB base/index field.
//
// This panics with ErrInvalidPseudoRegisterUse for RIP.
func (r Reg) Low3() uint8 {
	return r.Index() & 0x07
}

// Index returns the full hardware index.
func (f FReg) Index() uint8 {
	return uint8(f)
}

// HighBit returns the bit that goes into the REX (or VEX/EVEX) extension field.
func (f FReg) HighBit() uint8 {
	return (uint8(f) >> 3) & 0x01
}

// Low3 returns the 3 bits that go into a ModRM reg/rm field.
func (f FReg) Low3() uint8 {
	return uint8(f) & 0x07
}

func mustEncodable(r Reg) {
	if r.IsPseudo() {
		panic(fmt.Errorf("%w: %s has no register encoding", ErrInvalidPseudoRegisterUse, r))
	}
}
