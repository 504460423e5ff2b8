package x64

// RexPrefix represents REX prefix https://wiki.osdev.org/X86-64_Instruction_Encoding#REX_prefix
type RexPrefix = byte

// REX prefixes are independent of each other and can be combined with OR.
const (
	RexPrefixNone    RexPrefix = 0x0000_0000 // Indicates that the instruction doesn't need rexPrefix.
	RexPrefixDefault RexPrefix = 0b0100_0000
	RexPrefixW       RexPrefix = 0b0000_1000 | RexPrefixDefault
	RexPrefixR       RexPrefix = 0b0000_0100 | RexPrefixDefault
	RexPrefixX       RexPrefix = 0b0000_0010 | RexPrefixDefault
	RexPrefixB       RexPrefix = 0b0000_0001 | RexPrefixDefault
)

// SpecifierPosition represents the position in the instruction bytes where an operand register is placed.
type SpecifierPosition byte

const (
	ModRMFieldReg SpecifierPosition = iota
	ModRMFieldRM
	SIBIndex
	SIBBase
)

// String implements fmt.Stringer.
func (p SpecifierPosition) String() string {
	switch p {
	case ModRMFieldReg:
		return "modrm.reg"
	case ModRMFieldRM:
		return "modrm.rm"
	case SIBIndex:
		return "sib.index"
	case SIBBase:
		return "sib.base"
	default:
		return "invalid"
	}
}

// extension returns the REX bit that extends a 3-bit field at the position.
func (p SpecifierPosition) extension() RexPrefix {
	switch p {
	case ModRMFieldReg:
		return RexPrefixR
	case SIBIndex:
		return RexPrefixX
	default:
		// ModRM:r/m and SIB:base share REX.B.
		return RexPrefixB
	}
}

// Field returns the 3-bit field for the position and the REX prefix it requires,
// RexPrefixNone for r < R8.
//
// This panics with ErrInvalidPseudoRegisterUse for RIP.
func (r Reg) Field(pos SpecifierPosition) (bits byte, prefix RexPrefix) {
	bits = r.Low3()
	if r.HighBit() == 1 {
		prefix = pos.extension()
	}
	return
}

// Field returns the 3-bit field for the position and the REX prefix it requires,
// RexPrefixNone for f < XMM8.
func (f FReg) Field(pos SpecifierPosition) (bits byte, prefix RexPrefix) {
	bits = f.Low3()
	if f.HighBit() == 1 {
		prefix = pos.extension()
	}
	return
}
