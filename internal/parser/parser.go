// Package parser implements a recursive-descent, precedence-climbing parser
// for MiniRust, turning a token sequence into a Program AST node.
//
// Grounded on the shape of CWBudde-go-dws/internal/parser (a cursor over a
// token stream with expect/advance helpers split across
// declarations.go/statements.go/expressions.go/error_recovery.go), adapted
// from DWScript's Pascal-like grammar to the spec's small Rust-like one.
package parser

import (
	"fmt"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/diag"
	"github.com/birukG09/MiniRust-Compiler/internal/token"
)

// Parser consumes a token slice and produces an AST, recording diagnostics
// as it goes rather than failing the whole parse on the first error.
type Parser struct {
	tokens []token.Token
	pos    int

	diagnostics *diag.Bus
}

// New creates a Parser over tokens. tokens must be terminated by an EOF
// token, as produced by lexer.Tokenize.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, diagnostics: diag.NewBus()}
}

// Diagnostics returns every parse error recorded so far.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diagnostics.All()
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

// curIsKeyword reports whether the current token is the keyword kw.
func (p *Parser) curIsKeyword(kw string) bool {
	return p.cur().Is(token.KEYWORD, kw)
}

// expectKind consumes the current token if it has the given kind, else
// records a ParseError and returns the zero Token.
func (p *Parser) expectKind(kind token.Kind, describe string) (token.Token, bool) {
	if p.cur().Kind == kind {
		return p.advance(), true
	}
	p.errorExpected(describe)
	return token.Token{}, false
}

// expectKeyword consumes the current token if it is the keyword kw.
func (p *Parser) expectKeyword(kw string) bool {
	if p.curIsKeyword(kw) {
		p.advance()
		return true
	}
	p.errorExpected("'" + kw + "'")
	return false
}

func (p *Parser) errorExpected(describe string) {
	tok := p.cur()
	msg := fmt.Sprintf("Expected %s, but got %s('%s')", describe, tok.Kind, tok.Lexeme)
	p.diagnostics.Add(diag.ParseError, msg, tok.Line, tok.Column)
}

func (p *Parser) errorUnexpected(tok token.Token) {
	msg := fmt.Sprintf("Unexpected token %s('%s')", tok.Kind, tok.Lexeme)
	p.diagnostics.Add(diag.ParseError, msg, tok.Line, tok.Column)
}

// ParseProgram parses the full token stream into a Program node. Parsing
// never aborts: a statement that fails to parse is skipped via
// synchronize, and the Program still accumulates every sibling that parsed
// successfully.
func (p *Parser) ParseProgram() *ast.Node {
	program := ast.New(ast.Program, 1, 1)
	for !p.atEOF() {
		startPos := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			program.Children = append(program.Children, stmt)
		}
		if p.pos == startPos {
			// Safety net: parseStatement must always make progress.
			p.advance()
		}
	}
	return program
}

// Parse is the package-level entry point matching the spec's external
// interface shape: parse(tokens) -> {ast, errors[]}.
func Parse(tokens []token.Token) (*ast.Node, []diag.Diagnostic) {
	p := New(tokens)
	program := p.ParseProgram()
	return program, p.Diagnostics()
}
