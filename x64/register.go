package x64

import "fmt"

// RegType represents the class of a register.
type RegType byte

const (
	RegTypeInvalid RegType = iota
	RegTypeInt
	RegTypeFloat
)

// String implements fmt.Stringer.
func (t RegType) String() string {
	switch t {
	case RegTypeInt:
		return "int"
	case RegTypeFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Register holds either a Reg or an FReg, for call sites that are generic over the register
// class such as value locations. The zero value holds neither and every narrowing of it fails.
type Register struct {
	typ RegType
	id  uint8
}

// GeneralRegister returns a Register holding r.
func GeneralRegister(r Reg) Register {
	return Register{typ: RegTypeInt, id: uint8(r)}
}

// FloatRegister returns a Register holding f.
func FloatRegister(f FReg) Register {
	return Register{typ: RegTypeFloat, id: uint8(f)}
}

// Type returns the class of the held register.
func (v Register) Type() RegType {
	return v.typ
}

// IsGeneral returns true if v holds a Reg.
func (v Register) IsGeneral() bool {
	return v.typ == RegTypeInt
}

// IsFloat returns true if v holds an FReg.
func (v Register) IsFloat() bool {
	return v.typ == RegTypeFloat
}

// Reg returns the held general purpose register.
//
// This panics with ErrRegisterClassMismatch if v doesn't hold one.
func (v Register) Reg() Reg {
	r, ok := v.AsReg()
	if !ok {
		panic(fmt.Errorf("%w: expected general register, found %s", ErrRegisterClassMismatch, v.typ))
	}
	return r
}

// FReg returns the held float register.
//
// This panics with ErrRegisterClassMismatch if v doesn't hold one.
func (v Register) FReg() FReg {
	f, ok := v.AsFReg()
	if !ok {
		panic(fmt.Errorf("%w: expected float register, found %s", ErrRegisterClassMismatch, v.typ))
	}
	return f
}

// AsReg returns the held general purpose register and true, or false if v holds another class.
func (v Register) AsReg() (Reg, bool) {
	if v.typ != RegTypeInt {
		return 0, false
	}
	return Reg(v.id), true
}

// AsFReg returns the held float register and true, or false if v holds another class.
func (v Register) AsFReg() (FReg, bool) {
	if v.typ != RegTypeFloat {
		return 0, false
	}
	return FReg(v.id), true
}

// String implements fmt.Stringer.
func (v Register) String() string {
	switch v.typ {
	case RegTypeInt:
		return Reg(v.id).String()
	case RegTypeFloat:
		return FReg(v.id).String()
	default:
		return "invalid"
	}
}
