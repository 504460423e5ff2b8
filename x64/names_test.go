package x64

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRegister(t *testing.T) {
	for _, r := range append(allRegs, RIP) {
		v, err := ParseRegister(r.String())
		require.NoError(t, err)
		require.Equal(t, GeneralRegister(r), v)
	}
	for _, f := range allFRegs {
		v, err := ParseRegister(f.String())
		require.NoError(t, err)
		require.Equal(t, FloatRegister(f), v)
	}

	v, err := ParseRegister("%R11")
	require.NoError(t, err)
	require.Equal(t, R11, v.Reg())

	v, err = ParseRegister("XMM10")
	require.NoError(t, err)
	require.Equal(t, XMM10, v.FReg())

	for _, name := range []string{"", "eax", "xmm16", "r16", "reg(3)"} {
		_, err = ParseRegister(name)
		require.True(t, errors.Is(err, ErrUnknownRegister), name)
	}
}
