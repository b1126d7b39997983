package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/birukG09/MiniRust-Compiler/internal/token"
	"github.com/birukG09/MiniRust-Compiler/pkg/minirust"
)

var (
	lexEval     string
	lexShowType bool
	lexShowPos  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a MiniRust source file",
	Long: `Tokenize a MiniRust program and print the resulting tokens.

Examples:
  minirustc lex program.mrs
  minirustc lex -e "let x: i32 = 1;"
  minirustc lex --show-type --show-pos program.mrs
  minirustc lex --json program.mrs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading a file")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show each token's kind")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column position")
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	result := minirust.Tokenize(source)

	if jsonOutput {
		return emitJSON(result)
	}

	for _, tok := range result.Tokens {
		fmt.Print(formatToken(tok))
	}
	if len(result.Errors) > 0 {
		fmt.Printf("\n%d lexical error(s):\n", len(result.Errors))
		for _, d := range result.Errors {
			fmt.Printf("  line %d:%d: %s\n", d.Line, d.Column, d.Message)
		}
		return fmt.Errorf("lexing found %d error(s)", len(result.Errors))
	}
	return nil
}

// formatToken renders one token per line, gated by --show-type/--show-pos the
// way the teacher's printToken toggles [TYPE] and @line:col segments.
func formatToken(tok token.Token) string {
	var out string
	if lexShowType {
		out += fmt.Sprintf("%-14s ", tok.Kind)
	}
	out += fmt.Sprintf("%q", tok.Lexeme)
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Line, tok.Column)
	}
	return out + "\n"
}
