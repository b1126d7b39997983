// Package lexer turns MiniRust source text into a token stream.
//
// Grounded on CWBudde-go-dws/internal/lexer/lexer.go: a rune-cursor scanner
// (input/position/readPosition/line/column/ch) with a functional-options
// constructor, advancing one rune at a time and recording lexical errors on
// the diagnostic bus instead of throwing. Columns are 1-based rune counts,
// matching the teacher's documented Unicode column policy.
package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/birukG09/MiniRust-Compiler/internal/diag"
	"github.com/birukG09/MiniRust-Compiler/internal/token"
)

// Lexer scans MiniRust source text into tokens.
type Lexer struct {
	input        string
	position     int
	readPosition int
	line         int
	column       int
	ch           rune

	diagnostics *diag.Bus
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// New creates a Lexer over src. Options may be supplied to customize
// behavior (currently unused, but kept as an extension point mirroring the
// teacher's LexerOption pattern).
func New(src string, opts ...Option) *Lexer {
	l := &Lexer{input: src, line: 1, column: 0, diagnostics: diag.NewBus()}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Diagnostics returns every lexical error recorded during scanning so far.
func (l *Lexer) Diagnostics() []diag.Diagnostic {
	return l.diagnostics.All()
}

// readChar advances to the next rune, decoding multi-byte UTF-8 sequences
// (which may appear in string literals and comments; MiniRust source is
// ASCII-by-contract everywhere else) as a single step so column counts stay
// rune counts, not byte offsets.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// currentPos returns the 1-based position of the current character.
func (l *Lexer) currentPos() (int, int) {
	return l.line, l.column
}

func (l *Lexer) addError(message string, line, column int) {
	l.diagnostics.Add(diag.LexicalError, message, line, column)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isLetter(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentChar(ch rune) bool { return isLetter(ch) || isDigit(ch) }

// skipWhitespaceAndComments consumes spaces, tabs, CR/LF, and line/block
// comments, advancing line/column as it goes.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.line++
			l.column = 0
			l.readChar()
		case '/':
			if l.peekChar() == '/' {
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			}
			if l.peekChar() == '*' {
				l.readChar() // consume '/'
				l.readChar() // consume '*'
				for {
					if l.ch == 0 {
						return
					}
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar()
						l.readChar()
						break
					}
					if l.ch == '\n' {
						l.line++
						l.column = 0
					}
					l.readChar()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

// NextToken scans and returns the next token, advancing past it.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	line, column := l.currentPos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Lexeme: "", Line: line, Column: column}
	case isLetter(l.ch):
		return l.readIdentifier(line, column)
	case isDigit(l.ch):
		return l.readNumber(line, column)
	case l.ch == '"':
		return l.readString(line, column)
	}

	return l.readOperator(line, column)
}

func (l *Lexer) readIdentifier(line, column int) token.Token {
	start := l.position
	for isIdentChar(l.ch) {
		l.readChar()
	}
	lexeme := normalize(l.input[start:l.position])
	kind := token.LookupIdent(lexeme)
	return token.Token{Kind: kind, Lexeme: lexeme, Line: line, Column: column}
}

func (l *Lexer) readNumber(line, column int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
		return token.Token{Kind: token.FLOAT, Lexeme: l.input[start:l.position], Line: line, Column: column}
	}
	return token.Token{Kind: token.INTEGER, Lexeme: l.input[start:l.position], Line: line, Column: column}
}

func (l *Lexer) readString(line, column int) token.Token {
	l.readChar() // consume opening quote
	var sb []byte
	for {
		if l.ch == '"' {
			l.readChar()
			break
		}
		if l.ch == 0 || l.ch == '\n' {
			l.addError("Unterminated string literal", line, column)
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb = append(sb, '\n')
			case 't':
				sb = append(sb, '\t')
			case 'r':
				sb = append(sb, '\r')
			case '\\':
				sb = append(sb, '\\')
			case '"':
				sb = append(sb, '"')
			case 0:
				l.addError("Unterminated string literal", line, column)
				return token.Token{Kind: token.STRING, Lexeme: normalize(string(sb)), Line: line, Column: column}
			default:
				sb = utf8.AppendRune(sb, l.ch)
			}
			l.readChar()
			continue
		}
		sb = utf8.AppendRune(sb, l.ch)
		l.readChar()
	}
	return token.Token{Kind: token.STRING, Lexeme: normalize(string(sb)), Line: line, Column: column}
}

// two-character operator table, checked before the single-character forms.
var twoCharOps = map[string]token.Kind{
	"==": token.EQ,
	"!=": token.NE,
	"<=": token.LE,
	">=": token.GE,
	"&&": token.AND,
	"||": token.OR,
	"->": token.ARROW,
}

func (l *Lexer) readOperator(line, column int) token.Token {
	ch := l.ch

	// &mut fuses into a single AMP_MUT token when '&' is immediately
	// followed by the keyword "mut" (spec §4.1); otherwise '&' is AMP.
	if ch == '&' {
		if l.peekChar() == 'm' && l.matchesKeywordAhead("mut") {
			l.readChar() // consume '&'
			for i := 0; i < 3; i++ {
				l.readChar() // consume 'm', 'u', 't'
			}
			return token.Token{Kind: token.AMP_MUT, Lexeme: "&mut", Line: line, Column: column}
		}
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			return token.Token{Kind: token.AND, Lexeme: "&&", Line: line, Column: column}
		}
		l.readChar()
		return token.Token{Kind: token.AMP, Lexeme: "&", Line: line, Column: column}
	}

	two := string([]rune{ch, l.peekChar()})
	if kind, ok := twoCharOps[two]; ok {
		l.readChar()
		l.readChar()
		return token.Token{Kind: kind, Lexeme: two, Line: line, Column: column}
	}

	single, kind, ok := singleCharOp(ch)
	if ok {
		l.readChar()
		return token.Token{Kind: kind, Lexeme: single, Line: line, Column: column}
	}

	l.addError(unexpectedCharMessage(ch), line, column)
	l.readChar()
	return token.Token{Kind: token.ILLEGAL, Lexeme: string(ch), Line: line, Column: column}
}

func unexpectedCharMessage(ch rune) string {
	return "Unexpected character: '" + string(ch) + "'"
}

// matchesKeywordAhead reports whether the upcoming identifier run (starting
// at readPosition, i.e. right after the current '&') spells exactly kw and
// is not itself the prefix of a longer identifier (so "&mutable" lexes as
// AMP followed by the identifier "mutable", not AMP_MUT). kw is always
// ASCII, so byte slicing against readPosition (a byte offset) is exact.
func (l *Lexer) matchesKeywordAhead(kw string) bool {
	end := l.readPosition + len(kw)
	if end > len(l.input) {
		return false
	}
	if l.input[l.readPosition:end] != kw {
		return false
	}
	if end < len(l.input) && isIdentChar(rune(l.input[end])) {
		return false
	}
	return true
}

func singleCharOp(ch rune) (string, token.Kind, bool) {
	switch ch {
	case '+':
		return "+", token.PLUS, true
	case '-':
		return "-", token.MINUS, true
	case '*':
		return "*", token.STAR, true
	case '/':
		return "/", token.SLASH, true
	case '%':
		return "%", token.PERCENT, true
	case '=':
		return "=", token.ASSIGN, true
	case '<':
		return "<", token.LT, true
	case '>':
		return ">", token.GT, true
	case '!':
		return "!", token.NOT, true
	case '(':
		return "(", token.LPAREN, true
	case ')':
		return ")", token.RPAREN, true
	case '{':
		return "{", token.LBRACE, true
	case '}':
		return "}", token.RBRACE, true
	case '[':
		return "[", token.LBRACKET, true
	case ']':
		return "]", token.RBRACKET, true
	case ';':
		return ";", token.SEMI, true
	case ':':
		return ":", token.COLON, true
	case ',':
		return ",", token.COMMA, true
	}
	return "", token.ILLEGAL, false
}

// Tokenize runs the lexer to completion, returning every token (including a
// terminal EOF) and the diagnostics recorded along the way.
func Tokenize(src string) ([]token.Token, []diag.Diagnostic) {
	l := New(src)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, l.Diagnostics()
}

// normalize canonicalizes a lexeme to Unicode NFC so that two byte-distinct
// but canonically-equal spellings (e.g. of a non-ASCII identifier smuggled
// through a string literal, or composed-vs-decomposed accents) compare
// equal as symbol-table keys and intern to the same string-literal slot.
func normalize(s string) string {
	return norm.NFC.String(s)
}
