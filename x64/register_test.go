package x64

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister_general(t *testing.T) {
	for _, r := range append(allRegs, RIP) {
		v := GeneralRegister(r)
		require.True(t, v.IsGeneral())
		require.False(t, v.IsFloat())
		require.Equal(t, RegTypeInt, v.Type())
		require.Equal(t, r, v.Reg())
		require.Equal(t, r.String(), v.String())

		_, ok := v.AsFReg()
		require.False(t, ok)
		require.PanicsWithError(t, "register class mismatch: expected float register, found int", func() { v.FReg() })
	}
}

func TestRegister_float(t *testing.T) {
	for _, f := range allFRegs {
		v := FloatRegister(f)
		require.True(t, v.IsFloat())
		require.False(t, v.IsGeneral())
		require.Equal(t, RegTypeFloat, v.Type())
		require.Equal(t, f, v.FReg())
		require.Equal(t, f.String(), v.String())

		_, ok := v.AsReg()
		require.False(t, ok)
		require.PanicsWithError(t, "register class mismatch: expected general register, found float", func() { v.Reg() })
	}
}

func TestRegister_zero(t *testing.T) {
	var v Register
	require.Equal(t, RegTypeInvalid, v.Type())
	require.Equal(t, "invalid", v.String())
	require.Panics(t, func() { v.Reg() })
	require.Panics(t, func() { v.FReg() })
}

func TestRegister_equality(t *testing.T) {
	require.Equal(t, GeneralRegister(RCX), GeneralRegister(RCX))
	require.NotEqual(t, GeneralRegister(RCX), FloatRegister(XMM1))
	require.True(t, GeneralRegister(R9) == GeneralRegister(R9))
}

func TestRegister_panicCause(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		require.True(t, errors.Is(err, ErrRegisterClassMismatch))
	}()
	FloatRegister(XMM2).Reg()
}

func TestRegType_String(t *testing.T) {
	require.Equal(t, "int", RegTypeInt.String())
	require.Equal(t, "float", RegTypeFloat.String())
	require.Equal(t, "invalid", RegTypeInvalid.String())
}
