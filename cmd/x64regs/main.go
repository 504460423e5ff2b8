package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/twitchyliquid64/golang-asm/obj"
	"github.com/xlab/treeprint"

	"github.com/dorajit/backend"
	"github.com/dorajit/backend/x64"
)

func main() {
	doMain(os.Args[1:], os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	cmd := newRootCmd(stdOut, stdErr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stdErr, "error:", err)
		exit(1)
		return
	}
	exit(0)
}

type rootFlags struct {
	goos     string
	abi      string
	logLevel string
}

func newRootCmd(stdOut, stdErr io.Writer) *cobra.Command {
	var flags rootFlags
	rootCmd := &cobra.Command{
		Use:           "x64regs",
		Short:         "Inspect the x86-64 register tables of the code generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(stdOut)
	rootCmd.SetErr(stdErr)

	rootCmd.PersistentFlags().StringVar(&flags.goos, "os", runtime.GOOS, "target operating system (GOOS value)")
	rootCmd.PersistentFlags().StringVar(&flags.abi, "abi", "", "force the calling convention: sysv or windows")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "tables",
			Short: "Print the register tables of the target",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				logger, err := newLogger(stdErr, flags.logLevel)
				if err != nil {
					return err
				}
				abi, err := resolveABI(logger, flags)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tablesTree(abi, flags.goos).String())
				return nil
			},
		},
		&cobra.Command{
			Use:   "encode <register>",
			Short: "Print the encoding fields of a register",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				logger, err := newLogger(stdErr, flags.logLevel)
				if err != nil {
					return err
				}
				v, err := x64.ParseRegister(args[0])
				if err != nil {
					return err
				}
				logger.Debug("encoding register", "register", v, "class", v.Type())
				return printEncoding(cmd.OutOrStdout(), v)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Validate the tables of every calling convention",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				logger, err := newLogger(stdErr, flags.logLevel)
				if err != nil {
					return err
				}
				return checkAll(cmd.OutOrStdout(), logger)
			},
		},
	)
	return rootCmd
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func resolveABI(logger *slog.Logger, flags rootFlags) (*x64.ABI, error) {
	config := backend.NewTargetConfig().WithOS(flags.goos)
	if flags.abi != "" {
		p, err := x64.ParseABIProfile(flags.abi)
		if err != nil {
			return nil, err
		}
		config = config.WithABI(p)
	}
	if !backend.HostSupported {
		logger.Warn("host is not amd64, tables are for cross-compilation only", "goarch", runtime.GOARCH)
	}

	abi, err := config.Registers()
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved target", "os", config.OS(), "abi", abi.Profile())
	return abi, nil
}

func tablesTree(abi *x64.ABI, goos string) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("%s (%s/amd64)", abi.Profile(), goos))

	ints := tree.AddBranch("int params")
	for i, r := range abi.IntParams() {
		ints.AddMetaNode(i, describeReg(r))
	}
	floats := tree.AddBranch("float params")
	for i, f := range abi.FloatParams() {
		floats.AddMetaNode(i, describeFReg(f))
	}
	scratch := tree.AddBranch("scratch")
	for i, r := range x64.ScratchRegs() {
		scratch.AddMetaNode(i, describeReg(r))
	}

	roles := tree.AddBranch("roles")
	roles.AddMetaNode("result", describeReg(x64.ResultReg))
	roles.AddMetaNode("tmp1", describeReg(x64.TmpReg1))
	roles.AddMetaNode("tmp2", describeReg(x64.TmpReg2))
	roles.AddMetaNode("sp", describeReg(x64.StackPointerReg))
	roles.AddMetaNode("fp", describeReg(x64.FramePointerReg))
	roles.AddMetaNode("thread", describeReg(x64.ThreadReg))
	roles.AddMetaNode("float result", describeFReg(x64.FloatResultReg))
	roles.AddMetaNode("float tmp", describeFReg(x64.FloatTmpReg))

	tree.AddMetaNode("callee-saved", abi.CalleeSaved().String())
	tree.AddMetaNode("float callee-saved", abi.FloatCalleeSaved().String())
	tree.AddMetaNode("shadow space", abi.ShadowSpace())
	tree.AddMetaNode("stack alignment", abi.StackAlignment())
	return tree
}

func describeReg(r x64.Reg) string {
	return fmt.Sprintf("%-5s index=%-2d high=%d low3=%03b", r, r.Index(), r.HighBit(), r.Low3())
}

func describeFReg(f x64.FReg) string {
	return fmt.Sprintf("%-5s index=%-2d high=%d low3=%03b", f, f.Index(), f.HighBit(), f.Low3())
}

var positions = []x64.SpecifierPosition{x64.ModRMFieldReg, x64.ModRMFieldRM, x64.SIBIndex, x64.SIBBase}

// printEncoding writes the fields of v, or returns the panic cause if v has no encoding.
func printEncoding(w io.Writer, v x64.Register) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()

	var index, high, low3 uint8
	var fields [4][2]byte
	var golangAsm int16
	var disasm fmt.Stringer
	switch v.Type() {
	case x64.RegTypeInt:
		r := v.Reg()
		index, high, low3 = r.Index(), r.HighBit(), r.Low3()
		for i, pos := range positions {
			fields[i][0], fields[i][1] = r.Field(pos)
		}
		golangAsm = r.GolangAsm()
		disasm = r.X86asm()
	default:
		f := v.FReg()
		index, high, low3 = f.Index(), f.HighBit(), f.Low3()
		for i, pos := range positions {
			fields[i][0], fields[i][1] = f.Field(pos)
		}
		golangAsm = f.GolangAsm()
		disasm = f.X86asm()
	}

	fmt.Fprintf(w, "register:   %s\n", v)
	fmt.Fprintf(w, "class:      %s\n", v.Type())
	fmt.Fprintf(w, "index:      %d\n", index)
	fmt.Fprintf(w, "high bit:   %d\n", high)
	fmt.Fprintf(w, "low3:       %03b\n", low3)
	for i, pos := range positions {
		fmt.Fprintf(w, "%-11s bits=%03b rex=%#x\n", pos.String()+":", fields[i][0], fields[i][1])
	}
	if r, ok := v.AsReg(); ok {
		fmt.Fprintf(w, "basic:      %t\n", r.IsBasic())
	}
	fmt.Fprintf(w, "golang-asm: %s\n", obj.Rconv(int(golangAsm)))
	fmt.Fprintf(w, "x86asm:     %s\n", disasm)
	return nil
}

func checkAll(w io.Writer, logger *slog.Logger) error {
	for _, p := range []x64.ABIProfile{x64.ABISystemV, x64.ABIWindows} {
		abi, err := x64.ABIFor(p)
		if err != nil {
			return err
		}
		if err = abi.Validate(); err != nil {
			logger.Error("invalid register tables", "abi", p, "err", err)
			return err
		}
		logger.Info("register tables valid", "abi", p,
			"int_params", len(abi.IntParams()), "float_params", len(abi.FloatParams()))
		fmt.Fprintf(w, "%s: ok\n", p)
	}
	return nil
}
