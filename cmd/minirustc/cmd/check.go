package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birukG09/MiniRust-Compiler/internal/diag"
	"github.com/birukG09/MiniRust-Compiler/pkg/minirust"
)

var (
	checkEval     string
	checkOwnerOpt bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run the semantic analyzer (types + ownership/borrow checking)",
	Long: `Tokenize, parse, and semantically analyze MiniRust source, reporting
type errors, ownership/borrow errors, and unused-variable warnings.

Examples:
  minirustc check program.mrs
  minirustc check --check-ownership=false program.mrs
  minirustc check --json program.mrs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkEval, "eval", "e", "", "check inline source instead of reading a file")
	checkCmd.Flags().BoolVar(&checkOwnerOpt, "check-ownership", true, "run ownership/borrow-count analysis")
}

func runCheck(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !checkCmdFlagChanged() {
		checkOwnerOpt = cfg.CheckOwnership
	}

	source, _, err := readSource(checkEval, args)
	if err != nil {
		return err
	}

	tokenized := minirust.Tokenize(source)
	parsed := minirust.Parse(tokenized.Tokens)
	if parsed.AST == nil {
		return reportDiagnostics(parsed.Errors, source, cfg.Color)
	}
	analyzed := minirust.Analyze(parsed.AST, checkOwnerOpt)

	if jsonOutput {
		return emitJSON(analyzed)
	}

	all := append(append([]diag.Diagnostic{}, analyzed.Errors...), analyzed.Warnings...)
	return reportDiagnostics(all, source, cfg.Color)
}

func checkCmdFlagChanged() bool {
	return checkCmd.Flags().Changed("check-ownership")
}

func reportDiagnostics(diagnostics []diag.Diagnostic, source string, color bool) error {
	if len(diagnostics) == 0 {
		fmt.Println("no diagnostics")
		return nil
	}
	fmt.Print(diag.FormatAll(diagnostics, source, color))
	for _, d := range diagnostics {
		if d.Kind.Fatal() {
			return fmt.Errorf("check found fatal diagnostics")
		}
	}
	return nil
}
