package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/Urethramancer/casm/assembler"
	"github.com/Urethramancer/casm/isa"
)

var (
	configPath string
	outPath    string
	asText     bool
	dump       bool
)

var rootCmd = &cobra.Command{
	Use:   "casm [flags] source",
	Short: "Assembler for configurable instruction sets",
	Long: `casm translates line-oriented assembly into machine code. The
instruction set itself (mnemonics, operand shapes, opcodes) is described by
a configuration file rather than being hard-coded, so the same binary
serves any small CPU design that fits the model.`,
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.cfg", "instruction set description file")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "a.out", "output file, or - for stdout")
	rootCmd.Flags().BoolVarP(&asText, "text", "t", false, "write bit-strings, one byte per line, instead of raw bytes")
	rootCmd.Flags().BoolVarP(&dump, "dump", "d", false, "dump tokens and parsed lines to stderr")
}

func run(cmd *cobra.Command, args []string) error {
	set, err := isa.Load(configPath)
	if err != nil {
		return err
	}

	name := args[0]
	var data []byte
	if name == "-" {
		name = "<stdin>"
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}
	src := string(data)

	if dump {
		pp.Fprintf(os.Stderr, "instructions: %v\n", set.Instructions())
		tokens, _ := assembler.Tokenize(set, src)
		pp.Fprintf(os.Stderr, "tokens: %v\n", tokens)
		lines, _ := assembler.Parse(tokens)
		pp.Fprintf(os.Stderr, "lines: %v\n", lines)
	}

	prog, err := assembler.New(set).Assemble(src)
	if err != nil {
		var list assembler.ErrorList
		if errors.As(err, &list) {
			list.Render(os.Stderr, name, src)
			return fmt.Errorf("assembly failed with %d errors", len(list))
		}
		return err
	}

	out := []byte(prog)
	if asText {
		out = []byte(prog.Text())
	}
	if outPath == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(outPath, out, 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
