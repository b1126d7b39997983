package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/birukG09/MiniRust-Compiler/internal/diag"
	"github.com/birukG09/MiniRust-Compiler/pkg/minirust"
)

var (
	compileEval     string
	compileOutput   string
	compileOwnerOpt bool
	compileOptimize bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Run the full pipeline and emit IR",
	Long: `Run tokenize -> parse -> analyze -> generateIr, halting at the first
fatal stage but always reporting every product already produced.

On success, the generated IR is written to --output (or stdout, if
--output is not given).

Examples:
  minirustc compile program.mrs -o program.ll
  minirustc compile --optimize --json program.mrs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile inline source instead of reading a file")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "write IR to this file instead of stdout")
	compileCmd.Flags().BoolVar(&compileOwnerOpt, "check-ownership", true, "run ownership/borrow-count analysis")
	compileCmd.Flags().BoolVar(&compileOptimize, "optimize", false, "run constant-folding and dead-code-elimination passes")
}

func runCompile(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !compileCmd.Flags().Changed("check-ownership") {
		compileOwnerOpt = cfg.CheckOwnership
	}
	if !compileCmd.Flags().Changed("optimize") {
		compileOptimize = cfg.Optimize
	}

	source, _, err := readSource(compileEval, args)
	if err != nil {
		return err
	}

	result := minirust.Compile(source, minirust.CompileOptions{
		CheckOwnership: compileOwnerOpt,
		Optimize:       compileOptimize,
	})

	if jsonOutput {
		return emitJSON(result)
	}

	if result.IR != "" {
		if compileOutput != "" {
			if err := os.WriteFile(compileOutput, []byte(result.IR), 0o644); err != nil {
				return fmt.Errorf("failed to write output file %s: %w", compileOutput, err)
			}
			fmt.Printf("Compiled -> %s\n", compileOutput)
		} else {
			fmt.Print(result.IR)
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Print(diag.FormatAll(result.Diagnostics, source, cfg.Color))
	}
	if !result.Success {
		return fmt.Errorf("compilation failed")
	}
	return nil
}
