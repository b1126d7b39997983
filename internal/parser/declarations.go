package parser

import (
	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/token"
)

// parseFunctionDeclaration parses
// "fn" IDENT "(" [ param { "," param } ] ")" [ "->" TYPE ] block
func (p *Parser) parseFunctionDeclaration() *ast.Node {
	kw := p.advance() // "fn"

	nameTok, ok := p.expectKind(token.IDENTIFIER, "a function name")
	var nameNode *ast.Node
	if ok {
		nameNode = ast.NewLeaf(ast.FunctionName, nameTok.Lexeme, nameTok.Line, nameTok.Column)
	} else {
		nameNode = ast.NewLeaf(ast.FunctionName, "", kw.Line, kw.Column)
	}

	params := p.parseParameters()

	children := []*ast.Node{nameNode, params}

	if p.cur().Kind == token.ARROW {
		p.advance()
		retTok, ok := p.expectKind(token.TYPE, "a return type")
		if ok {
			children = append(children, ast.NewLeaf(ast.ReturnType, retTok.Lexeme, retTok.Line, retTok.Column))
		}
	}

	body := p.parseBlock()
	children = append(children, body)

	return ast.New(ast.FunctionDeclaration, kw.Line, kw.Column, children...)
}

// parseParameters parses "(" [ param { "," param } ] ")" into a Parameters
// node whose children are zero or more Parameter nodes.
func (p *Parser) parseParameters() *ast.Node {
	open, ok := p.expectKind(token.LPAREN, "'('")
	line, column := open.Line, open.Column
	if !ok {
		return ast.New(ast.Parameters, line, column)
	}

	params := ast.New(ast.Parameters, line, column)
	if p.cur().Kind == token.RPAREN {
		p.advance()
		return params
	}

	for {
		params.Children = append(params.Children, p.parseParameter())
		if p.cur().Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expectKind(token.RPAREN, "')'")
	return params
}

// parseParameter parses IDENT ":" TYPE into a Parameter node whose
// children are [ParameterName, ParameterType].
func (p *Parser) parseParameter() *ast.Node {
	nameTok, ok := p.expectKind(token.IDENTIFIER, "a parameter name")
	line, column := p.cur().Line, p.cur().Column
	if ok {
		line, column = nameTok.Line, nameTok.Column
	}
	nameNode := ast.NewLeaf(ast.ParameterName, nameTok.Lexeme, line, column)

	p.expectKind(token.COLON, "':'")

	typeTok, _ := p.expectKind(token.TYPE, "a type")
	typeNode := ast.NewLeaf(ast.ParameterType, typeTok.Lexeme, typeTok.Line, typeTok.Column)

	return ast.New(ast.Parameter, line, column, nameNode, typeNode)
}
