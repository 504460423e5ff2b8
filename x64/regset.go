package x64

import (
	"math/bits"
	"strings"
)

// RegSet represents a set of general purpose registers.
type RegSet uint16

// FRegSet represents a set of float registers.
type FRegSet uint16

// NewRegSet returns a new RegSet with the given registers.
//
// This panics with ErrInvalidPseudoRegisterUse if regs contains RIP.
func NewRegSet(regs ...Reg) RegSet {
	var ret RegSet
	for _, r := range regs {
		ret = ret.Add(r)
	}
	return ret
}

// Add returns rs with r added.
//
// This panics with ErrInvalidPseudoRegisterUse for RIP.
func (rs RegSet) Add(r Reg) RegSet {
	return rs | 1<<r.Index()
}

// Has returns true if r is in rs. RIP is never in a set.
func (rs RegSet) Has(r Reg) bool {
	return !r.IsPseudo() && rs&(1<<uint8(r)) != 0
}

// Intersect returns the registers in both rs and other.
func (rs RegSet) Intersect(other RegSet) RegSet {
	return rs & other
}

// Len returns the number of registers in rs.
func (rs RegSet) Len() int {
	return bits.OnesCount16(uint16(rs))
}

// Range calls f for each register in rs in index order.
func (rs RegSet) Range(f func(r Reg)) {
	for i := 0; i < RegCount; i++ {
		if rs&(1<<uint(i)) != 0 {
			f(Reg(i))
		}
	}
}

// String implements fmt.Stringer.
func (rs RegSet) String() string {
	var ret []string
	rs.Range(func(r Reg) { ret = append(ret, r.String()) })
	return "[" + strings.Join(ret, ", ") + "]"
}

// NewFRegSet returns a new FRegSet with the given registers. Registers past XMM15 are ignored.
func NewFRegSet(regs ...FReg) FRegSet {
	var ret FRegSet
	for _, f := range regs {
		ret = ret.Add(f)
	}
	return ret
}

// Add returns fs with f added.
func (fs FRegSet) Add(f FReg) FRegSet {
	if f >= RegCount {
		return fs
	}
	return fs | 1<<uint8(f)
}

// Has returns true if f is in fs.
func (fs FRegSet) Has(f FReg) bool {
	return f < RegCount && fs&(1<<uint8(f)) != 0
}

// Intersect returns the registers in both fs and other.
func (fs FRegSet) Intersect(other FRegSet) FRegSet {
	return fs & other
}

// Len returns the number of registers in fs.
func (fs FRegSet) Len() int {
	return bits.OnesCount16(uint16(fs))
}

// Range calls f for each register in fs in index order.
func (fs FRegSet) Range(f func(FReg)) {
	for i := 0; i < RegCount; i++ {
		if fs&(1<<uint(i)) != 0 {
			f(FReg(i))
		}
	}
}

// String implements fmt.Stringer.
func (fs FRegSet) String() string {
	var ret []string
	fs.Range(func(f FReg) { ret = append(ret, f.String()) })
	return "[" + strings.Join(ret, ", ") + "]"
}
