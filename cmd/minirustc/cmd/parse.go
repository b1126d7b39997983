package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/pkg/minirust"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse MiniRust source and display its AST",
	Long: `Parse MiniRust source code and display the Abstract Syntax Tree.

Examples:
  minirustc parse program.mrs
  minirustc parse -e "fn main() { print(1); }"
  minirustc parse --json program.mrs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, _, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	tokenized := minirust.Tokenize(source)
	parsed := minirust.Parse(tokenized.Tokens)

	if jsonOutput {
		return emitJSON(parsed)
	}

	if parsed.AST != nil {
		dumpNode(parsed.AST, 0)
	}
	if len(parsed.Errors) > 0 {
		fmt.Printf("\n%d parse error(s):\n", len(parsed.Errors))
		for _, d := range parsed.Errors {
			fmt.Printf("  line %d:%d: %s\n", d.Line, d.Column, d.Message)
		}
		return fmt.Errorf("parsing found %d error(s)", len(parsed.Errors))
	}
	return nil
}

// dumpNode prints node and its children as an indented tree, matching the
// uniform {kind, value, children} shape spec.md §9 describes.
func dumpNode(node *ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.Value != "" {
		fmt.Printf("%s%s(%q)\n", indent, node.Kind, node.Value)
	} else {
		fmt.Printf("%s%s\n", indent, node.Kind)
	}
	for _, child := range node.Children {
		dumpNode(child, depth+1)
	}
}
