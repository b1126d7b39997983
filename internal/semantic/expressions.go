package semantic

import (
	"fmt"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/diag"
)

// analyzeExpression type-checks node and returns its inferred Type, marking
// read identifiers as used and (when node is a borrow expression) running
// the borrow-count side effects of §4.3.
func (a *Analyzer) analyzeExpression(node *ast.Node, scope *Scope) Type {
	if node == nil {
		return Unknown
	}
	switch node.Kind {
	case ast.IntegerLiteral:
		return I32
	case ast.FloatLiteral:
		return F64
	case ast.StringLiteral:
		return Str
	case ast.BooleanLiteral:
		return Bool
	case ast.Identifier:
		return a.analyzeIdentifier(node, scope)
	case ast.BinaryOperation:
		return a.analyzeBinaryOperation(node, scope)
	case ast.UnaryOperation:
		return a.analyzeUnaryOperation(node, scope)
	case ast.Assignment:
		return a.analyzeAssignment(node, scope)
	default:
		return Unknown
	}
}

func (a *Analyzer) analyzeIdentifier(node *ast.Node, scope *Scope) Type {
	sym, ok := scope.Resolve(node.Value)
	if !ok {
		a.diagnostics.Add(diag.SemanticError,
			fmt.Sprintf("Undefined variable: '%s'", node.Value),
			node.Line, node.Column)
		return Unknown
	}
	sym.IsUsed = true
	return sym.Type
}

func (a *Analyzer) analyzeBinaryOperation(node *ast.Node, scope *Scope) Type {
	left := a.analyzeExpression(node.Children[0], scope)
	right := a.analyzeExpression(node.Children[1], scope)

	switch node.Value {
	case "&&", "||":
		if (left != Bool && left != Unknown) || (right != Bool && right != Unknown) {
			a.diagnostics.Add(diag.TypeError,
				fmt.Sprintf("Type mismatch: expected 'bool', found '%s'", mismatchOperand(left, right)),
				node.Line, node.Column)
		}
		return Bool
	case "==", "!=", "<", "<=", ">", ">=":
		if left != right && left != Unknown && right != Unknown {
			a.diagnostics.Add(diag.TypeError,
				fmt.Sprintf("Type mismatch: expected '%s', found '%s'", left, right),
				node.Line, node.Column)
		}
		return Bool
	default: // + - * / %
		if left != right && left != Unknown && right != Unknown {
			a.diagnostics.Add(diag.TypeError,
				fmt.Sprintf("Type mismatch: expected '%s', found '%s'", left, right),
				node.Line, node.Column)
		}
		if left != Unknown {
			return left
		}
		return right
	}
}

// mismatchOperand returns whichever operand type isn't bool, for the
// logical-operator diagnostic message.
func mismatchOperand(left, right Type) Type {
	if left != Bool {
		return left
	}
	return right
}

func (a *Analyzer) analyzeUnaryOperation(node *ast.Node, scope *Scope) Type {
	operand := node.Children[0]

	switch node.Value {
	case "-":
		t := a.analyzeExpression(operand, scope)
		if !isNumeric(t) && t != Unknown {
			a.diagnostics.Add(diag.TypeError,
				fmt.Sprintf("Type mismatch: expected 'i32' or 'f64', found '%s'", t),
				node.Line, node.Column)
		}
		return t
	case "!":
		t := a.analyzeExpression(operand, scope)
		if t != Bool && t != Unknown {
			a.diagnostics.Add(diag.TypeError,
				fmt.Sprintf("Type mismatch: expected 'bool', found '%s'", t),
				node.Line, node.Column)
		}
		return Bool
	case "&", "&mut":
		return a.analyzeBorrow(node, operand, scope)
	default:
		return a.analyzeExpression(operand, scope)
	}
}

// analyzeBorrow implements the unary &/&mut rules of spec.md §4.3. Borrow
// expressions are type-transparent (see types.go): the result type is the
// operand's type, since the closed Type set never stores a derived &T.
func (a *Analyzer) analyzeBorrow(node, operand *ast.Node, scope *Scope) Type {
	operandType := a.analyzeExpression(operand, scope)

	if operand.Kind != ast.Identifier {
		return operandType
	}

	sym, ok := scope.Resolve(operand.Value)
	if !ok {
		return operandType
	}

	mutBorrow := node.Value == "&mut"

	// This check runs unconditionally, not only when borrow-count analysis
	// is enabled, per spec.md §4.3's "Additionally" clause.
	if mutBorrow && !sym.IsMutable {
		a.diagnostics.Add(diag.OwnershipError,
			fmt.Sprintf("Cannot create mutable borrow of immutable variable '%s'", sym.Name),
			node.Line, node.Column)
	}

	if a.checkOwnership {
		a.applyBorrow(sym, mutBorrow, node)
	}

	return operandType
}

func (a *Analyzer) analyzeAssignment(node *ast.Node, scope *Scope) Type {
	left, right := node.Children[0], node.Children[1]
	rightType := a.analyzeExpression(right, scope)

	if left.Kind != ast.Identifier {
		a.diagnostics.Add(diag.SemanticError, "Invalid assignment target", left.Line, left.Column)
		return rightType
	}

	sym, ok := scope.Resolve(left.Value)
	if !ok {
		a.diagnostics.Add(diag.SemanticError,
			fmt.Sprintf("Undefined variable: '%s'", left.Value),
			left.Line, left.Column)
		return rightType
	}

	if !sym.IsMutable {
		a.diagnostics.Add(diag.OwnershipError,
			fmt.Sprintf("Cannot assign to immutable variable '%s'", sym.Name),
			node.Line, node.Column)
	}

	if sym.Type != rightType && sym.Type != Unknown && rightType != Unknown {
		a.diagnostics.Add(diag.TypeError,
			fmt.Sprintf("Type mismatch: expected '%s', found '%s'", sym.Type, rightType),
			node.Line, node.Column)
	}

	sym.IsUsed = true

	if a.checkOwnership {
		a.trace = append(a.trace, fmt.Sprintf("Assignment transfers ownership to '%s'", sym.Name))
	}

	return sym.Type
}
