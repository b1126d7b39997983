// Package minirust is the external-facing facade over the compiler
// pipeline: tokenize, parse, analyze, generateIr, and the aggregate
// compile driver described in spec.md §6/§7.
//
// Grounded on CWBudde-go-dws/pkg/dwscript's role as the stable entry point
// consumers (its CLI, its FFI layer, its test suite) call into rather than
// reaching into internal/*; generalized here from dwscript's engine/error
// shape to MiniRust's plain-data stage contracts.
package minirust

import (
	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/diag"
	"github.com/birukG09/MiniRust-Compiler/internal/ir"
	"github.com/birukG09/MiniRust-Compiler/internal/lexer"
	"github.com/birukG09/MiniRust-Compiler/internal/parser"
	"github.com/birukG09/MiniRust-Compiler/internal/semantic"
	"github.com/birukG09/MiniRust-Compiler/internal/token"
)

// TokenizeResult is tokenize(source)'s output.
type TokenizeResult struct {
	Tokens []token.Token     `json:"tokens"`
	Errors []diag.Diagnostic `json:"errors"`
}

// ParseResult is parse(tokens)'s output.
type ParseResult struct {
	AST    *ast.Node         `json:"ast"`
	Errors []diag.Diagnostic `json:"errors"`
}

// AnalyzeResult is analyze(ast, checkOwnership)'s output.
type AnalyzeResult struct {
	SymbolTable    map[string]*semantic.Symbol `json:"symbolTable"`
	Errors         []diag.Diagnostic           `json:"errors"`
	Warnings       []diag.Diagnostic           `json:"warnings"`
	OwnershipTrace []string                    `json:"ownershipInfo,omitempty"`
	Success        bool                        `json:"success"`
}

// IRResult is generateIr(ast, optimize)'s output.
type IRResult struct {
	IR      string            `json:"ir"`
	Errors  []diag.Diagnostic `json:"errors"`
	Success bool              `json:"success"`
}

// CompileOptions configures Compile's semantic and IR stages.
type CompileOptions struct {
	CheckOwnership bool
	Optimize       bool
}

// CompileResult is the aggregate of every stage that ran, per spec.md §6's
// "compile source, producing {tokens, AST, symbol table, ownership trace,
// IR, diagnostics}" contract.
type CompileResult struct {
	Tokens         []token.Token               `json:"tokens"`
	AST            *ast.Node                   `json:"ast,omitempty"`
	SymbolTable    map[string]*semantic.Symbol `json:"symbolTable,omitempty"`
	OwnershipTrace []string                    `json:"ownershipTrace,omitempty"`
	IR             string                      `json:"ir,omitempty"`
	Diagnostics    []diag.Diagnostic           `json:"diagnostics"`
	Success        bool                        `json:"success"`
}

// Tokenize runs the lexer stage.
func Tokenize(source string) (result TokenizeResult) {
	defer recoverStage(&result.Errors, diag.LexicalError)
	tokens, errs := lexer.Tokenize(source)
	result.Tokens, result.Errors = tokens, errs
	return result
}

// Parse runs the parser stage over an already-tokenized source.
func Parse(tokens []token.Token) (result ParseResult) {
	defer recoverStage(&result.Errors, diag.ParseError)
	program, errs := parser.Parse(tokens)
	result.AST, result.Errors = program, errs
	return result
}

// Analyze runs the semantic analyzer over an already-parsed AST.
func Analyze(program *ast.Node, checkOwnership bool) (result AnalyzeResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Errors = append(result.Errors, stagePanicDiagnostic(diag.SemanticError, r))
			result.Success = false
		}
	}()
	analyzed := semantic.Analyze(program, checkOwnership)
	result.SymbolTable = analyzed.SymbolTable
	result.Errors = analyzed.Errors()
	result.Warnings = analyzed.Warnings()
	result.OwnershipTrace = analyzed.OwnershipTrace
	result.Success = analyzed.Success
	return result
}

// GenerateIR runs the IR generator over an already-parsed AST.
func GenerateIR(program *ast.Node, optimize bool) (result IRResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Errors = append(result.Errors, stagePanicDiagnostic(diag.IRGenerationError, r))
			result.Success = false
		}
	}()
	module := ir.Generate(program, optimize)
	result.IR = module.String()
	result.Errors = module.Diagnostics()
	result.Success = !hasFatal(result.Errors)
	return result
}

// Compile runs the full pipeline, halting at the first stage that
// produces a fatal diagnostic but always returning every product already
// produced, per spec.md §7's pipeline-driver contract.
func Compile(source string, opts CompileOptions) CompileResult {
	var out CompileResult

	tokenized := Tokenize(source)
	out.Tokens = tokenized.Tokens
	out.Diagnostics = append(out.Diagnostics, tokenized.Errors...)
	if hasFatal(tokenized.Errors) {
		return out
	}

	parsed := Parse(tokenized.Tokens)
	out.AST = parsed.AST
	out.Diagnostics = append(out.Diagnostics, parsed.Errors...)
	if hasFatal(parsed.Errors) {
		return out
	}

	analyzed := Analyze(parsed.AST, opts.CheckOwnership)
	out.SymbolTable = analyzed.SymbolTable
	out.OwnershipTrace = analyzed.OwnershipTrace
	out.Diagnostics = append(out.Diagnostics, analyzed.Errors...)
	out.Diagnostics = append(out.Diagnostics, analyzed.Warnings...)
	if hasFatal(analyzed.Errors) {
		return out
	}

	generated := GenerateIR(parsed.AST, opts.Optimize)
	out.IR = generated.IR
	out.Diagnostics = append(out.Diagnostics, generated.Errors...)

	out.Success = !hasFatal(out.Diagnostics)
	return out
}

func hasFatal(diagnostics []diag.Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Kind.Fatal() {
			return true
		}
	}
	return false
}

// recoverStage catches a panic escaping a stage and converts it into a
// single diagnostic of kind at (0,0), per spec.md §7: "internal
// control-flow exceptions within a stage are caught at the stage boundary
// and converted into one diagnostic of the stage's kind."
func recoverStage(errs *[]diag.Diagnostic, kind diag.Kind) {
	if r := recover(); r != nil {
		*errs = append(*errs, stagePanicDiagnostic(kind, r))
	}
}

func stagePanicDiagnostic(kind diag.Kind, r interface{}) diag.Diagnostic {
	msg := "internal compiler error"
	if err, ok := r.(error); ok {
		msg = err.Error()
	} else if s, ok := r.(string); ok {
		msg = s
	}
	return diag.New(kind, msg, 0, 0)
}
