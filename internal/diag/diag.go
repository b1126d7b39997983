// Package diag implements the compiler's shared diagnostic bus: the single
// structured representation of errors and warnings every pipeline stage
// appends to, plus a presentation layer that formats a diagnostic with a
// source snippet and a caret under the offending column.
//
// Grounded on CWBudde-go-dws/internal/errors/errors.go (CompilerError,
// Format, FormatWithContext, FormatErrors): the same header/gutter/caret
// layout, generalized to the MiniRust diagnostic Kind set.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a Diagnostic. Kinds map to severities: every kind except
// UnusedVariable and Warning is fatal for the producing stage.
type Kind int

const (
	LexicalError Kind = iota
	ParseError
	SemanticError
	TypeError
	OwnershipError
	UnusedVariable
	IRGenerationError
	Warning
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case ParseError:
		return "ParseError"
	case SemanticError:
		return "SemanticError"
	case TypeError:
		return "TypeError"
	case OwnershipError:
		return "OwnershipError"
	case UnusedVariable:
		return "UnusedVariable"
	case IRGenerationError:
		return "IRGenerationError"
	case Warning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// Fatal reports whether a diagnostic of this kind should halt the pipeline.
func (k Kind) Fatal() bool {
	return k != UnusedVariable && k != Warning
}

// icon keyed by kind, used by the presentation formatter.
var icons = map[Kind]string{
	LexicalError:      "✗",
	ParseError:        "✗",
	SemanticError:      "✗",
	TypeError:         "✗",
	OwnershipError:    "✗",
	IRGenerationError: "✗",
	UnusedVariable:    "⚠",
	Warning:           "⚠",
}

// Diagnostic is a single structured compiler error or warning.
type Diagnostic struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Suggestion string `json:"suggestion,omitempty"`
}

// New builds a Diagnostic and attaches a suggestion from the keyword-to-hint
// table when the message matches a known pattern and no suggestion was
// already supplied.
func New(kind Kind, message string, line, column int) Diagnostic {
	d := Diagnostic{Kind: kind, Message: message, Line: line, Column: column}
	d.Suggestion = suggestFor(message)
	return d
}

// suggestionTable maps a message substring to an advisory hint, matched in
// declaration order. Mirrors the teacher's approach of keying hints off
// recognizable error-message shapes rather than structured error codes.
var suggestionTable = []struct {
	keyword string
	hint    string
}{
	{"Undefined variable", "Check that the variable was declared before use and is spelled correctly."},
	{"Type mismatch", "Convert one side to match the other, or change the declared type."},
	{"Cannot assign to immutable", "Declare the variable with 'let mut' if it needs to change."},
	{"Unterminated string literal", "Add the closing '\"' to terminate the string."},
	{"Expected", "Check for a missing token just before this position."},
	{"Cannot create mutable borrow", "A variable may have one mutable borrow or any number of immutable borrows, never both; borrows are not released in this model."},
	{"already borrowed", "A variable may have one mutable borrow or any number of immutable borrows, never both; borrows are not released in this model."},
}

func suggestFor(message string) string {
	for _, entry := range suggestionTable {
		if strings.Contains(message, entry.keyword) {
			return entry.hint
		}
	}
	return ""
}

// Bus accumulates diagnostics in production order across a single compile
// call. A fresh Bus is created per stage invocation; stages never retain
// state across calls.
type Bus struct {
	diagnostics []Diagnostic
}

// NewBus returns an empty diagnostic bus.
func NewBus() *Bus {
	return &Bus{}
}

// Add appends a diagnostic, attaching a suggestion if one isn't already set.
func (b *Bus) Add(kind Kind, message string, line, column int) {
	b.diagnostics = append(b.diagnostics, New(kind, message, line, column))
}

// AddDiagnostic appends an already-built Diagnostic verbatim.
func (b *Bus) AddDiagnostic(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// All returns every diagnostic recorded so far, in production order.
func (b *Bus) All() []Diagnostic {
	return b.diagnostics
}

// HasFatal reports whether any recorded diagnostic is fatal.
func (b *Bus) HasFatal() bool {
	for _, d := range b.diagnostics {
		if d.Kind.Fatal() {
			return true
		}
	}
	return false
}

// Format renders one diagnostic with a source-line gutter and a caret under
// Column. Mirrors CompilerError.Format.
func Format(d Diagnostic, source string, color bool) string {
	var sb strings.Builder

	icon := icons[d.Kind]
	sb.WriteString(fmt.Sprintf("%s %s at line %d:%d: %s\n", icon, d.Kind, d.Line, d.Column, d.Message))

	if line := sourceLine(source, d.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", d.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(gutter)+caretOffset(d.Column)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if d.Suggestion != "" {
		sb.WriteString("hint: ")
		sb.WriteString(d.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

func caretOffset(column int) int {
	if column < 1 {
		return 0
	}
	return column - 1
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll renders every diagnostic in the slice, batching a header when
// there is more than one. Mirrors errors.FormatErrors.
func FormatAll(diagnostics []Diagnostic, source string, color bool) string {
	if len(diagnostics) == 0 {
		return ""
	}
	if len(diagnostics) == 1 {
		return Format(diagnostics[0], source, color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation produced %d diagnostic(s):\n\n", len(diagnostics)))
	for i, d := range diagnostics {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(diagnostics)))
		sb.WriteString(Format(d, source, color))
		if i < len(diagnostics)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
