package x64

import (
	"fmt"
	"runtime"
	"strings"
)

// For the details of the calling conventions, see:
// System V: https://gitlab.com/x86-psABIs/x86-64-ABI
// Windows: https://learn.microsoft.com/en-us/cpp/build/x64-calling-convention

// ABIProfile selects the native calling convention of the target.
type ABIProfile byte

const (
	ABIInvalid ABIProfile = iota
	// ABISystemV is the System V AMD64 convention used by every non-Windows target.
	ABISystemV
	// ABIWindows is the Microsoft x64 convention.
	ABIWindows
)

// String implements fmt.Stringer.
func (p ABIProfile) String() string {
	switch p {
	case ABISystemV:
		return "sysv"
	case ABIWindows:
		return "windows"
	default:
		return "invalid"
	}
}

// ParseABIProfile returns the profile for a name as printed by ABIProfile.String.
func ParseABIProfile(s string) (ABIProfile, error) {
	switch strings.ToLower(s) {
	case "sysv", "systemv":
		return ABISystemV, nil
	case "windows", "win64":
		return ABIWindows, nil
	default:
		return ABIInvalid, fmt.Errorf("%w: unknown profile %q", ErrInvalidABI, s)
	}
}

// ABIProfileForOS returns the native profile for a runtime.GOOS value.
func ABIProfileForOS(goos string) ABIProfile {
	if goos == "windows" {
		return ABIWindows
	}
	return ABISystemV
}

// HostABIProfile returns the native profile of the running process.
func HostABIProfile() ABIProfile {
	return ABIProfileForOS(runtime.GOOS)
}

// Registers with a fixed role in generated code, identical on every profile.
const (
	// ResultReg holds the integer return value.
	ResultReg = RAX
	// TmpReg1 and TmpReg2 are temporaries for code sequences within a single operation.
	TmpReg1 = R10
	TmpReg2 = R11
	// StackPointerReg is the machine stack pointer.
	StackPointerReg = RSP
	// FramePointerReg is the frame base pointer.
	FramePointerReg = RBP
	// ThreadReg holds the pointer to the current thread context.
	ThreadReg = R15

	// FloatResultReg holds the float return value.
	FloatResultReg = XMM0
	// FloatTmpReg is the float temporary.
	FloatTmpReg = XMM1
)

// scratchRegs is in preference order.
var scratchRegs = [...]Reg{R9, R8, RDI}

// ScratchRegs returns the registers the encoder may clobber when it needs one that doesn't hold a
// live value, in preference order.
func ScratchRegs() []Reg {
	s := scratchRegs
	return s[:]
}

// ABI holds the argument passing tables of one calling convention. Instances are immutable.
type ABI struct {
	profile          ABIProfile
	intParams        []Reg
	floatParams      []FReg
	calleeSaved      RegSet
	floatCalleeSaved FRegSet
	// shadowSpace is the stack area the caller reserves for the callee to spill register arguments.
	shadowSpace    int
	stackAlignment int
}

var (
	systemV = &ABI{
		profile:        ABISystemV,
		intParams:      []Reg{RDI, RSI, RDX, RCX, R8, R9},
		floatParams:    []FReg{XMM0, XMM1, XMM2, XMM3, XMM4, XMM5, XMM6, XMM7},
		calleeSaved:    NewRegSet(RBX, RBP, R12, R13, R14, R15),
		stackAlignment: 16,
	}

	windows = &ABI{
		profile:          ABIWindows,
		intParams:        []Reg{RCX, RDX, R8, R9},
		floatParams:      []FReg{XMM0, XMM1, XMM2, XMM3},
		calleeSaved:      NewRegSet(RBX, RBP, RDI, RSI, R12, R13, R14, R15),
		floatCalleeSaved: NewFRegSet(XMM6, XMM7, XMM8, XMM9, XMM10, XMM11, XMM12, XMM13, XMM14, XMM15),
		shadowSpace:      32,
		stackAlignment:   16,
	}
)

// ABIFor returns the tables of a profile.
func ABIFor(p ABIProfile) (*ABI, error) {
	switch p {
	case ABISystemV:
		return systemV, nil
	case ABIWindows:
		return windows, nil
	default:
		return nil, fmt.Errorf("%w: no tables for profile %s", ErrInvalidABI, p)
	}
}

// Profile returns the calling convention these tables belong to.
func (a *ABI) Profile() ABIProfile {
	return a.profile
}

// IntParams returns the integer argument registers in positional order.
func (a *ABI) IntParams() []Reg {
	return append([]Reg(nil), a.intParams...)
}

// FloatParams returns the float argument registers in positional order.
func (a *ABI) FloatParams() []FReg {
	return append([]FReg(nil), a.floatParams...)
}

// IntParam returns the register of the i-th integer argument, or false if it is passed on the stack.
func (a *ABI) IntParam(i int) (Reg, bool) {
	if i < 0 || i >= len(a.intParams) {
		return 0, false
	}
	return a.intParams[i], true
}

// FloatParam returns the register of the i-th float argument, or false if it is passed on the stack.
func (a *ABI) FloatParam(i int) (FReg, bool) {
	if i < 0 || i >= len(a.floatParams) {
		return 0, false
	}
	return a.floatParams[i], true
}

// CalleeSaved returns the general purpose registers a callee must preserve.
func (a *ABI) CalleeSaved() RegSet {
	return a.calleeSaved
}

// FloatCalleeSaved returns the float registers a callee must preserve.
func (a *ABI) FloatCalleeSaved() FRegSet {
	return a.floatCalleeSaved
}

// ShadowSpace returns the bytes the caller reserves above the return address for the callee.
func (a *ABI) ShadowSpace() int {
	return a.shadowSpace
}

// StackAlignment returns the required stack alignment at call sites in bytes.
func (a *ABI) StackAlignment() int {
	return a.stackAlignment
}

// Validate checks that the tables are consistent with each other and with the fixed roles.
func (a *ABI) Validate() error {
	var wantInts, wantFloats int
	switch a.profile {
	case ABISystemV:
		wantInts, wantFloats = 6, 8
	case ABIWindows:
		wantInts, wantFloats = 4, 4
	default:
		return fmt.Errorf("%w: profile %s", ErrInvalidABI, a.profile)
	}
	if len(a.intParams) != wantInts || len(a.floatParams) != wantFloats {
		return fmt.Errorf("%w: %s expects %d int and %d float argument registers, got %d and %d",
			ErrInvalidABI, a.profile, wantInts, wantFloats, len(a.intParams), len(a.floatParams))
	}

	var ints RegSet
	for i, r := range a.intParams {
		if r.IsPseudo() {
			return fmt.Errorf("%w: %s int argument %d is %s", ErrInvalidABI, a.profile, i, r)
		}
		if ints.Has(r) {
			return fmt.Errorf("%w: %s int argument %d duplicates %s", ErrInvalidABI, a.profile, i, r)
		}
		ints = ints.Add(r)
	}

	var floats FRegSet
	for i, f := range a.floatParams {
		if f >= RegCount {
			return fmt.Errorf("%w: %s float argument %d is %s", ErrInvalidABI, a.profile, i, f)
		}
		if floats.Has(f) {
			return fmt.Errorf("%w: %s float argument %d duplicates %s", ErrInvalidABI, a.profile, i, f)
		}
		floats = floats.Add(f)
	}

	if err := validateRoles(fixedRoles, scratchRegs[:], FloatResultReg, FloatTmpReg); err != nil {
		return fmt.Errorf("%s: %w", a.profile, err)
	}
	return nil
}

type role struct {
	name string
	r    Reg
}

// fixedRoles are the single purpose registers that must stay disjoint from each other and from
// the scratch set.
var fixedRoles = []role{
	{"result", ResultReg},
	{"tmp1", TmpReg1},
	{"tmp2", TmpReg2},
	{"stack pointer", StackPointerReg},
	{"frame pointer", FramePointerReg},
	{"thread", ThreadReg},
}

// validateRoles checks that no register serves two of the roles.
func validateRoles(roles []role, scratch []Reg, floatResult, floatTmp FReg) error {
	all := append([]role(nil), roles...)
	for i, r := range scratch {
		all = append(all, role{name: fmt.Sprintf("scratch %d", i), r: r})
	}

	var used RegSet
	owner := map[Reg]string{}
	for _, ro := range all {
		if ro.r.IsPseudo() {
			return fmt.Errorf("%w: %s role is %s", ErrInvalidABI, ro.name, ro.r)
		}
		if used.Has(ro.r) {
			return fmt.Errorf("%w: %s is both %s and %s", ErrInvalidABI, ro.r, owner[ro.r], ro.name)
		}
		used = used.Add(ro.r)
		owner[ro.r] = ro.name
	}

	if floatResult == floatTmp {
		return fmt.Errorf("%w: %s is both float result and float tmp", ErrInvalidABI, floatResult)
	}
	return nil
}
