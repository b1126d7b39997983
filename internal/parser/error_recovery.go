package parser

import "github.com/birukG09/MiniRust-Compiler/internal/token"

// synchronize advances past tokens until it has just consumed a SEMI or is
// positioned at the start of a new statement (fn/let/if/while/return), per
// spec.md §4.2's recovery rule. This keeps one bad statement from taking
// down the rest of the Program.
func (p *Parser) synchronize() {
	for !p.atEOF() {
		if p.cur().Kind == token.SEMI {
			p.advance()
			return
		}
		if p.curIsKeyword("fn") || p.curIsKeyword("let") || p.curIsKeyword("if") ||
			p.curIsKeyword("while") || p.curIsKeyword("return") {
			return
		}
		p.advance()
	}
}
