package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birukG09/MiniRust-Compiler/pkg/minirust"
)

var (
	irEval     string
	irOptimize bool
)

var irCmd = &cobra.Command{
	Use:   "ir [file]",
	Short: "Lower MiniRust source to textual IR",
	Long: `Tokenize, parse, and lower MiniRust source to a textual, LLVM-like IR.

This runs the IR generator directly on the parsed AST without requiring a
successful semantic analysis pass first (the stages are independent).

Examples:
  minirustc ir program.mrs
  minirustc ir --optimize program.mrs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIR,
}

func init() {
	rootCmd.AddCommand(irCmd)
	irCmd.Flags().StringVarP(&irEval, "eval", "e", "", "lower inline source instead of reading a file")
	irCmd.Flags().BoolVar(&irOptimize, "optimize", false, "run constant-folding and dead-code-elimination passes")
}

func runIR(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !irCmd.Flags().Changed("optimize") {
		irOptimize = cfg.Optimize
	}

	source, _, err := readSource(irEval, args)
	if err != nil {
		return err
	}

	tokenized := minirust.Tokenize(source)
	parsed := minirust.Parse(tokenized.Tokens)
	if parsed.AST == nil {
		return reportDiagnostics(parsed.Errors, source, cfg.Color)
	}

	generated := minirust.GenerateIR(parsed.AST, irOptimize)

	if jsonOutput {
		return emitJSON(generated)
	}

	fmt.Print(generated.IR)
	if len(generated.Errors) > 0 {
		return reportDiagnostics(generated.Errors, source, cfg.Color)
	}
	return nil
}
