package parser

import (
	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/token"
)

// parseStatement dispatches on the current token to one of the statement
// productions in spec.md §4.2's grammar. On failure it records a diagnostic
// (via the called production or errorUnexpected) and synchronizes, so the
// caller can keep parsing subsequent statements.
func (p *Parser) parseStatement() *ast.Node {
	switch {
	case p.curIsKeyword("fn"):
		return p.parseFunctionDeclaration()
	case p.curIsKeyword("let"):
		return p.parseVariableDeclaration()
	case p.curIsKeyword("if"):
		return p.parseIfStatement()
	case p.curIsKeyword("while"):
		return p.parseWhileStatement()
	case p.curIsKeyword("return"):
		return p.parseReturnStatement()
	case p.curIsKeyword("print"):
		return p.parsePrintStatement()
	case p.cur().Kind == token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock parses "{" { statement } "}". Per spec.md §8's invariant, no
// child of a successfully parsed Block is ever nil.
func (p *Parser) parseBlock() *ast.Node {
	open, ok := p.expectKind(token.LBRACE, "'{'")
	if !ok {
		p.synchronize()
		return ast.New(ast.Block, p.cur().Line, p.cur().Column)
	}
	block := ast.New(ast.Block, open.Line, open.Column)
	for p.cur().Kind != token.RBRACE && !p.atEOF() {
		startPos := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.Children = append(block.Children, stmt)
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	p.expectKind(token.RBRACE, "'}'")
	return block
}

func (p *Parser) parseIfStatement() *ast.Node {
	kw := p.advance() // "if"
	cond := p.parseExpression()
	thenBlock := p.parseBlock()
	children := []*ast.Node{cond, thenBlock}
	if p.curIsKeyword("else") {
		p.advance()
		elseBlock := p.parseBlock()
		children = append(children, elseBlock)
	}
	return ast.New(ast.IfStatement, kw.Line, kw.Column, children...)
}

func (p *Parser) parseWhileStatement() *ast.Node {
	kw := p.advance() // "while"
	cond := p.parseExpression()
	body := p.parseBlock()
	return ast.New(ast.WhileStatement, kw.Line, kw.Column, cond, body)
}

func (p *Parser) parseReturnStatement() *ast.Node {
	kw := p.advance() // "return"
	var children []*ast.Node
	if p.cur().Kind != token.SEMI {
		children = append(children, p.parseExpression())
	}
	p.expectKind(token.SEMI, "';'")
	return ast.New(ast.ReturnStatement, kw.Line, kw.Column, children...)
}

func (p *Parser) parsePrintStatement() *ast.Node {
	kw := p.advance() // "print"
	p.expectKind(token.LPAREN, "'('")
	arg := p.parseExpression()
	p.expectKind(token.RPAREN, "')'")
	p.expectKind(token.SEMI, "';'")
	return ast.New(ast.PrintStatement, kw.Line, kw.Column, arg)
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	tok := p.cur()
	if tok.Kind == token.EOF || tok.Kind == token.RBRACE {
		p.errorUnexpected(tok)
		p.synchronize()
		return nil
	}
	expr := p.parseExpression()
	if expr == nil {
		p.synchronize()
		return nil
	}
	p.expectKind(token.SEMI, "';'")
	return expr
}

// parseVariableDeclaration parses
// "let" [ "mut" ] IDENT [ ":" TYPE ] [ "=" expr ] ";"
// into a VariableDeclaration node whose children are always, in order,
// [VariableName, Mutable, optional VariableType, optional Initializer].
func (p *Parser) parseVariableDeclaration() *ast.Node {
	kw := p.advance() // "let"

	mutable := ast.NewLeaf(ast.Mutable, "false", kw.Line, kw.Column)
	if p.curIsKeyword("mut") {
		mutTok := p.advance()
		mutable = ast.NewLeaf(ast.Mutable, "true", mutTok.Line, mutTok.Column)
	}

	nameTok, ok := p.expectKind(token.IDENTIFIER, "an identifier")
	var nameNode *ast.Node
	if ok {
		nameNode = ast.NewLeaf(ast.VariableName, nameTok.Lexeme, nameTok.Line, nameTok.Column)
	} else {
		nameNode = ast.NewLeaf(ast.VariableName, "", kw.Line, kw.Column)
	}

	children := []*ast.Node{nameNode, mutable}

	if p.cur().Kind == token.COLON {
		p.advance()
		typeTok, ok := p.expectKind(token.TYPE, "a type")
		if ok {
			children = append(children, ast.NewLeaf(ast.VariableType, typeTok.Lexeme, typeTok.Line, typeTok.Column))
		}
	}

	if p.cur().Kind == token.ASSIGN {
		p.advance()
		children = append(children, p.parseExpression())
	}

	p.expectKind(token.SEMI, "';'")

	return ast.New(ast.VariableDeclaration, kw.Line, kw.Column, children...)
}
