package lexer

import (
	"testing"

	"github.com/birukG09/MiniRust-Compiler/internal/token"
)

func TestTokenizeBasic(t *testing.T) {
	src := `fn main() { let mut x: i32 = 2 + 3 * 4; print(x); }`
	tokens, errs := Tokenize(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []token.Kind{
		token.KEYWORD, token.IDENTIFIER, token.LPAREN, token.RPAREN, token.LBRACE,
		token.KEYWORD, token.KEYWORD, token.IDENTIFIER, token.COLON, token.TYPE,
		token.ASSIGN, token.INTEGER, token.PLUS, token.INTEGER, token.STAR, token.INTEGER, token.SEMI,
		token.KEYWORD, token.LPAREN, token.IDENTIFIER, token.RPAREN, token.SEMI,
		token.RBRACE, token.EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: got %s, want %s (lexeme %q)", i, tokens[i].Kind, k, tokens[i].Lexeme)
		}
	}
}

func TestAmpMutFusion(t *testing.T) {
	tokens, _ := Tokenize("&mut x")
	if tokens[0].Kind != token.AMP_MUT || tokens[0].Lexeme != "&mut" {
		t.Fatalf("got %s(%q), want AMP_MUT(\"&mut\")", tokens[0].Kind, tokens[0].Lexeme)
	}

	tokens, _ = Tokenize("&mutable")
	if tokens[0].Kind != token.AMP {
		t.Fatalf("got %s, want AMP for '&' before a longer identifier", tokens[0].Kind)
	}
	if tokens[1].Kind != token.IDENTIFIER || tokens[1].Lexeme != "mutable" {
		t.Fatalf("got %s(%q), want IDENTIFIER(\"mutable\")", tokens[1].Kind, tokens[1].Lexeme)
	}

	tokens, _ = Tokenize("&x")
	if tokens[0].Kind != token.AMP {
		t.Fatalf("got %s, want AMP", tokens[0].Kind)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, errs := Tokenize(`"unterminated`)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Message != "Unterminated string literal" {
		t.Errorf("got message %q", errs[0].Message)
	}
}

func TestStringEscapes(t *testing.T) {
	tokens, errs := Tokenize(`"a\nb\tc"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Lexeme != "a\nb\tc" {
		t.Errorf("got %q, want %q", tokens[0].Lexeme, "a\nb\tc")
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	tokens, _ := Tokenize("let x = 1;\nlet y = 2;")
	for _, tok := range tokens {
		if tok.Line < 1 || tok.Column < 1 {
			t.Errorf("token %+v has non-positive position", tok)
		}
	}
	// "let" on the second line should report line 2.
	foundLine2 := false
	for _, tok := range tokens {
		if tok.Line == 2 {
			foundLine2 = true
			break
		}
	}
	if !foundLine2 {
		t.Error("expected at least one token on line 2")
	}
}

func TestColumnsAreRuneCountsNotByteOffsets(t *testing.T) {
	// A multi-byte rune (é, a 2-byte UTF-8 sequence) inside a block comment
	// must still advance the column by 1, not 2, so tokens later on the same
	// line land at their rune-counted column rather than one inflated by the
	// extra UTF-8 continuation byte.
	tokens, errs := Tokenize("/* café */ let x = 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Kind != token.KEYWORD || tokens[0].Lexeme != "let" {
		t.Fatalf("got %s(%q), want KEYWORD(\"let\")", tokens[0].Kind, tokens[0].Lexeme)
	}
	if tokens[0].Column != 12 {
		t.Errorf("got column %d for 'let' after a block comment with a multi-byte rune, want 12 (rune-counted)", tokens[0].Column)
	}

	// Inside a string literal, a multi-byte rune must not corrupt the bytes
	// after it: "café" should round-trip intact as the token's lexeme.
	tokens, errs = Tokenize(`"café" + 1`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if tokens[0].Kind != token.STRING || tokens[0].Lexeme != "café" {
		t.Fatalf("got %s(%q), want STRING(\"café\")", tokens[0].Kind, tokens[0].Lexeme)
	}
	// '+' is the 8th rune on the line (", c, a, f, é, ", space, +); byte-based
	// column tracking would report column 9 instead, since "café" costs 5
	// bytes but only 4 runes.
	plus := tokens[1]
	if plus.Kind != token.PLUS || plus.Column != 8 {
		t.Errorf("got %s at column %d, want PLUS at column 8 (rune-counted)", plus.Kind, plus.Column)
	}
}

func TestIllegalCharacter(t *testing.T) {
	tokens, errs := Tokenize("let x = @;")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	found := false
	for _, tok := range tokens {
		if tok.Kind == token.ILLEGAL {
			found = true
		}
	}
	if !found {
		t.Error("expected an ILLEGAL token for '@'")
	}
}
