package x64

import (
	"testing"

	"github.com/stretchr/testify/require"
	goasm "github.com/twitchyliquid64/golang-asm"
	"github.com/twitchyliquid64/golang-asm/obj"
	"github.com/twitchyliquid64/golang-asm/obj/x86"
	"golang.org/x/arch/x86/x86asm"
)

func assembleRegToReg(t *testing.T, inst obj.As, from, to int16) []byte {
	b, err := goasm.NewBuilder("amd64", 64)
	require.NoError(t, err)

	p := b.NewProg()
	p.As = inst
	p.From.Type = obj.TYPE_REG
	p.From.Reg = from
	p.To.Type = obj.TYPE_REG
	p.To.Reg = to
	b.AddInstruction(p)
	return b.Assemble()
}

func TestReg_GolangAsm(t *testing.T) {
	require.Equal(t, int16(x86.REG_AX), RAX.GolangAsm())
	require.Equal(t, int16(x86.REG_SP), RSP.GolangAsm())
	require.Equal(t, int16(x86.REG_R13), R13.GolangAsm())
	require.Equal(t, int16(x86.REG_X0), XMM0.GolangAsm())
	require.Equal(t, int16(x86.REG_X15), XMM15.GolangAsm())

	require.PanicsWithError(t, ripPanic, func() { RIP.GolangAsm() })
	require.Panics(t, func() { FReg(16).GolangAsm() })
}

func TestFromGolangAsm(t *testing.T) {
	for _, r := range allRegs {
		v, ok := FromGolangAsm(r.GolangAsm())
		require.True(t, ok)
		require.Equal(t, GeneralRegister(r), v)
	}
	for _, f := range allFRegs {
		v, ok := FromGolangAsm(f.GolangAsm())
		require.True(t, ok)
		require.Equal(t, FloatRegister(f), v)
	}
	for _, reg := range []int16{x86.REG_NONE, x86.REG_AL, x86.REG_R8B, x86.REG_X16} {
		_, ok := FromGolangAsm(reg)
		require.False(t, ok)
	}
}

// TestReg_Field_golangAsm checks the fields against what golang-asm actually emits for MOVQ src, dst.
func TestReg_Field_golangAsm(t *testing.T) {
	for _, src := range allRegs {
		for _, dst := range allRegs {
			src, dst := src, dst
			t.Run(src.String()+"_"+dst.String(), func(t *testing.T) {
				code := assembleRegToReg(t, x86.AMOVQ, src.GolangAsm(), dst.GolangAsm())
				require.True(t, len(code) >= 3)

				rex, opcode, modRM := code[0], code[1], code[2]
				require.Equal(t, byte(0b11), modRM>>6)

				var onReg, onRM Reg
				switch opcode {
				case 0x89: // MOV r/m64, r64
					onReg, onRM = src, dst
				case 0x8b: // MOV r64, r/m64
					onReg, onRM = dst, src
				default:
					t.Fatalf("unexpected opcode %#x in %x", opcode, code)
				}

				regBits, regPrefix := onReg.Field(ModRMFieldReg)
				rmBits, rmPrefix := onRM.Field(ModRMFieldRM)
				require.Equal(t, regBits, (modRM>>3)&0b111)
				require.Equal(t, rmBits, modRM&0b111)
				require.Equal(t, RexPrefixW|regPrefix|rmPrefix, rex)

				inst, err := x86asm.Decode(code, 64)
				require.NoError(t, err)
				require.Equal(t, x86asm.MOV, inst.Op)
				require.Equal(t, x86asm.Arg(dst.X86asm()), inst.Args[0])
				require.Equal(t, x86asm.Arg(src.X86asm()), inst.Args[1])
			})
		}
	}
}

func TestFReg_golangAsm(t *testing.T) {
	for _, src := range allFRegs {
		for _, dst := range allFRegs {
			src, dst := src, dst
			t.Run(src.String()+"_"+dst.String(), func(t *testing.T) {
				code := assembleRegToReg(t, x86.AMOVSD, src.GolangAsm(), dst.GolangAsm())

				inst, err := x86asm.Decode(code, 64)
				require.NoError(t, err)
				require.Equal(t, x86asm.Arg(dst.X86asm()), inst.Args[0])
				require.Equal(t, x86asm.Arg(src.X86asm()), inst.Args[1])

				// A REX prefix follows the F2 prefix only when one of the operands is XMM8 or above.
				hasRex := code[1]&0xf0 == RexPrefixDefault
				require.Equal(t, src.HighBit() == 1 || dst.HighBit() == 1, hasRex)
			})
		}
	}
}
