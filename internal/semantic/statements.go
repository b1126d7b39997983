package semantic

import (
	"fmt"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/diag"
)

// analyzeStatement dispatches on node.Kind. Anything that isn't one of the
// dedicated statement kinds is a bare expression statement (spec.md's
// exprStmt production covers any expr, including Assignment).
func (a *Analyzer) analyzeStatement(node *ast.Node, scope *Scope) {
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.FunctionDeclaration:
		a.analyzeFunctionDeclaration(node, scope)
	case ast.VariableDeclaration:
		a.analyzeVariableDeclaration(node, scope)
	case ast.IfStatement:
		a.analyzeIfStatement(node, scope)
	case ast.WhileStatement:
		a.analyzeWhileStatement(node, scope)
	case ast.PrintStatement:
		a.analyzePrintStatement(node, scope)
	case ast.ReturnStatement:
		a.analyzeReturnStatement(node, scope)
	case ast.Block:
		a.analyzeBlock(node, scope)
	default:
		a.analyzeExpression(node, scope)
	}
}

// analyzeBlock opens a scope nested under parent, predeclares sibling
// function declarations, analyzes every statement, then closes the scope.
func (a *Analyzer) analyzeBlock(node *ast.Node, parent *Scope) {
	scope := NewScope(parent)
	a.predeclareFunctions(node.Children, scope)
	for _, stmt := range node.Children {
		a.analyzeStatement(stmt, scope)
	}
	a.closeScope(scope, false)
}

// analyzeFunctionDeclaration checks a function's parameters and body.
// Children are [FunctionName, Parameters, optional ReturnType, Block].
func (a *Analyzer) analyzeFunctionDeclaration(node *ast.Node, scope *Scope) {
	params := node.Child(1)
	body := node.Children[len(node.Children)-1]

	returnType := Void
	if len(node.Children) == 4 {
		returnType = typeFromTypeName(node.Children[2].Value)
	}

	fnScope := NewScope(scope)
	for _, param := range params.Children {
		name := param.Child(0).Value
		typ := typeFromTypeName(param.Child(1).Value)
		if fnScope.DefineLocal(name) {
			a.diagnostics.Add(diag.SemanticError,
				fmt.Sprintf("Parameter '%s' is already defined in this scope", name),
				param.Line, param.Column)
			continue
		}
		fnScope.Define(&Symbol{
			Name: name, Type: typ, IsMutable: true, IsUsed: true,
			Line: param.Line, Column: param.Column,
		})
	}

	prevReturnType, prevInFunction := a.currentReturnType, a.inFunction
	a.currentReturnType, a.inFunction = returnType, true

	a.analyzeBlock(body, fnScope)

	if returnType != Void && !blockAlwaysReturns(body) {
		a.diagnostics.Add(diag.TypeError,
			fmt.Sprintf("Missing return statement in function returning '%s'", returnType),
			node.Line, node.Column)
	}

	a.currentReturnType, a.inFunction = prevReturnType, prevInFunction
	a.closeScope(fnScope, false)
}

// blockAlwaysReturns is a conservative reachability check for Open Question
// #1: a block "always returns" if its last statement is a ReturnStatement,
// or an IfStatement with an else branch whose both branches always return.
func blockAlwaysReturns(block *ast.Node) bool {
	if len(block.Children) == 0 {
		return false
	}
	last := block.Children[len(block.Children)-1]
	return statementAlwaysReturns(last)
}

func statementAlwaysReturns(stmt *ast.Node) bool {
	switch stmt.Kind {
	case ast.ReturnStatement:
		return true
	case ast.IfStatement:
		if len(stmt.Children) != 3 {
			return false // no else branch: falling through is possible
		}
		return blockAlwaysReturns(stmt.Children[1]) && blockAlwaysReturns(stmt.Children[2])
	case ast.Block:
		return blockAlwaysReturns(stmt)
	default:
		return false
	}
}

// analyzeVariableDeclaration implements spec.md §4.3's let-typing rules and,
// when enabled, logs the ownership-trace line for taking ownership.
// Children: [VariableName, Mutable, optional VariableType, optional Initializer].
func (a *Analyzer) analyzeVariableDeclaration(node *ast.Node, scope *Scope) {
	name := node.Child(0).Value
	isMutable := node.Child(1).Value == "true"

	var declaredType Type
	var declaredTypeSet bool
	var initType Type
	var hasInit bool

	idx := 2
	if idx < len(node.Children) && node.Children[idx].Kind == ast.VariableType {
		declaredType = typeFromTypeName(node.Children[idx].Value)
		declaredTypeSet = true
		idx++
	}
	if idx < len(node.Children) {
		initType = a.analyzeExpression(node.Children[idx], scope)
		hasInit = true
	}

	var finalType Type
	switch {
	case declaredTypeSet && hasInit:
		if declaredType != initType && initType != Unknown {
			a.diagnostics.Add(diag.TypeError,
				fmt.Sprintf("Type mismatch: expected '%s', found '%s'", declaredType, initType),
				node.Line, node.Column)
		}
		finalType = declaredType
	case hasInit:
		finalType = initType
	case declaredTypeSet:
		finalType = declaredType
	default:
		a.diagnostics.Add(diag.TypeError,
			fmt.Sprintf("Cannot infer type for variable '%s'", name),
			node.Line, node.Column)
		finalType = Unknown
	}

	if scope.DefineLocal(name) {
		a.diagnostics.Add(diag.SemanticError,
			fmt.Sprintf("Variable '%s' is already defined in this scope", name),
			node.Line, node.Column)
	}
	scope.Define(&Symbol{
		Name: name, Type: finalType, IsMutable: isMutable,
		Line: node.Line, Column: node.Column,
	})

	if a.checkOwnership {
		a.trace = append(a.trace, fmt.Sprintf("Variable '%s' takes ownership of its value", name))
	}
}

func (a *Analyzer) analyzeIfStatement(node *ast.Node, scope *Scope) {
	condType := a.analyzeExpression(node.Children[0], scope)
	if condType != Bool && condType != Unknown {
		a.diagnostics.Add(diag.TypeError,
			fmt.Sprintf("If condition must be of type bool, found '%s'", condType),
			node.Children[0].Line, node.Children[0].Column)
	}
	a.analyzeBlock(node.Children[1], scope)
	if len(node.Children) == 3 {
		a.analyzeBlock(node.Children[2], scope)
	}
}

func (a *Analyzer) analyzeWhileStatement(node *ast.Node, scope *Scope) {
	condType := a.analyzeExpression(node.Children[0], scope)
	if condType != Bool && condType != Unknown {
		a.diagnostics.Add(diag.TypeError,
			fmt.Sprintf("While condition must be of type bool, found '%s'", condType),
			node.Children[0].Line, node.Children[0].Column)
	}
	a.analyzeBlock(node.Children[1], scope)
}

func (a *Analyzer) analyzePrintStatement(node *ast.Node, scope *Scope) {
	a.analyzeExpression(node.Children[0], scope)
}

func (a *Analyzer) analyzeReturnStatement(node *ast.Node, scope *Scope) {
	var retType Type = Void
	if len(node.Children) == 1 {
		retType = a.analyzeExpression(node.Children[0], scope)
	}
	if !a.inFunction {
		return
	}
	if retType != Unknown && a.currentReturnType != Unknown && retType != a.currentReturnType {
		a.diagnostics.Add(diag.TypeError,
			fmt.Sprintf("Type mismatch: expected '%s', found '%s'", a.currentReturnType, retType),
			node.Line, node.Column)
	}
}
