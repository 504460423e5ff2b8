package x64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegSet(t *testing.T) {
	rs := NewRegSet(RAX, R15, RDI, RAX)
	require.Equal(t, 3, rs.Len())
	require.True(t, rs.Has(RAX))
	require.True(t, rs.Has(R15))
	require.False(t, rs.Has(RCX))
	require.False(t, rs.Has(RIP))
	require.Equal(t, "[rax, rdi, r15]", rs.String())

	var got []Reg
	rs.Range(func(r Reg) { got = append(got, r) })
	require.Equal(t, []Reg{RAX, RDI, R15}, got)

	require.Equal(t, NewRegSet(RDI), rs.Intersect(NewRegSet(RDI, RSI)))
	require.Equal(t, "[]", RegSet(0).String())

	require.PanicsWithError(t, ripPanic, func() { NewRegSet(RDX, RIP) })
}

func TestFRegSet(t *testing.T) {
	fs := NewFRegSet(XMM1, XMM15, FReg(16))
	require.Equal(t, 2, fs.Len())
	require.True(t, fs.Has(XMM1))
	require.False(t, fs.Has(XMM0))
	require.False(t, fs.Has(FReg(16)))
	require.Equal(t, "[xmm1, xmm15]", fs.String())

	var got []FReg
	fs.Range(func(f FReg) { got = append(got, f) })
	require.Equal(t, []FReg{XMM1, XMM15}, got)

	require.Equal(t, FRegSet(0), fs.Intersect(NewFRegSet(XMM2)))
}
