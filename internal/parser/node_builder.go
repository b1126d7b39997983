package parser

import "github.com/birukG09/MiniRust-Compiler/internal/ast"

// withValue sets n.Value and returns n, letting constructors that need a
// Value payload (BinaryOperation/UnaryOperation's operator lexeme) chain
// off ast.New instead of building the node in two statements.
func withValue(n *ast.Node, value string) *ast.Node {
	if n == nil {
		return nil
	}
	n.Value = value
	return n
}
