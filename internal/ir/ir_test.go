package ir

import (
	"strings"
	"testing"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/lexer"
	"github.com/birukG09/MiniRust-Compiler/internal/parser"
)

func generateSource(t *testing.T, src string, optimize bool) *Module {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(src)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	program, parseErrs := parser.Parse(tokens)
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return Generate(program, optimize)
}

func TestGenerateArithmeticAndPrint(t *testing.T) {
	mod := generateSource(t, `fn main() { let x: i32 = 2 + 3 * 4; print(x); }`, false)
	ir := mod.String()

	for _, want := range []string{"mul i32 3, 4", "add i32 2,", "alloca i32", "call void @print(i32"} {
		if !strings.Contains(ir, want) {
			t.Errorf("IR missing %q, got:\n%s", want, ir)
		}
	}
}

func TestGenerateFunctionTerminatesWithRet(t *testing.T) {
	mod := generateSource(t, `fn main() { }`, false)
	ir := mod.String()
	if !strings.Contains(ir, "ret void") {
		t.Errorf("expected defensive 'ret void' terminator, got:\n%s", ir)
	}
}

func TestGenerateNonVoidFunctionDefaultReturn(t *testing.T) {
	mod := generateSource(t, `fn zero() -> i32 { }`, false)
	ir := mod.String()
	if !strings.Contains(ir, "ret i32 0") {
		t.Errorf("expected defensive 'ret i32 0' terminator, got:\n%s", ir)
	}
}

func TestConstantFoldingAnnotatesWithoutRewriting(t *testing.T) {
	mod := generateSource(t, `fn main() { let x = 3 * 4; }`, true)
	var found *Instruction
	for _, fn := range mod.Functions {
		for bi := range fn.blocks {
			for ii := range fn.blocks[bi].Instructions {
				if fn.blocks[bi].Instructions[ii].Opcode == "mul" {
					found = &fn.blocks[bi].Instructions[ii]
				}
			}
		}
	}
	if found == nil {
		t.Fatal("expected a mul instruction")
	}
	if found.Comment != "folded: 12" {
		t.Errorf("got comment %q, want %q", found.Comment, "folded: 12")
	}
	if len(found.Operands) != 2 || found.Operands[0] != "3," || found.Operands[1] != "4" {
		t.Errorf("folding must not rewrite operands, got %v", found.Operands)
	}
}

func TestDeadCodeEliminationMarksUnreferencedResults(t *testing.T) {
	// "x + 1;" as a bare expression statement computes a temp that is never
	// stored or referenced anywhere else, so it should be marked dead.
	src := `fn main() { let x = 1; x + 1; print(x); }`
	mod := generateSource(t, src, true)
	tokens, _ := lexer.Tokenize(src)
	program, _ := parser.Parse(tokens)
	unoptimized := Generate(program, false)

	optimizedCount := countLiveInstructions(mod)
	unoptimizedCount := countLiveInstructions(unoptimized)
	if optimizedCount >= unoptimizedCount {
		t.Errorf("expected dead-code elimination to drop instructions: optimized=%d unoptimized=%d", optimizedCount, unoptimizedCount)
	}
}

func countLiveInstructions(mod *Module) int {
	n := 0
	for _, fn := range mod.Functions {
		for _, b := range fn.blocks {
			for _, instr := range b.Instructions {
				if !instr.dead {
					n++
				}
			}
		}
	}
	return n
}

func TestOptimizeFalseRemovesNothing(t *testing.T) {
	mod := generateSource(t, `fn main() { let x = 1; let y = -x; }`, false)
	for _, fn := range mod.Functions {
		for _, b := range fn.blocks {
			for _, instr := range b.Instructions {
				if instr.dead {
					t.Errorf("did not expect any dead instruction with optimize=false, got %v", instr)
				}
			}
		}
	}
}

func TestIfStatementBlockStructure(t *testing.T) {
	mod := generateSource(t, `fn main() { if true { print(1); } else { print(2); } }`, false)
	ir := mod.String()
	for _, want := range []string{"if.then:", "if.else:", "if.end:"} {
		if !strings.Contains(ir, want) {
			t.Errorf("IR missing block %q, got:\n%s", want, ir)
		}
	}
}

func TestWhileStatementBlockStructure(t *testing.T) {
	mod := generateSource(t, `fn main() { let mut i = 0; while i < 3 { i = i + 1; } }`, false)
	ir := mod.String()
	for _, want := range []string{"while.header:", "while.body:", "while.end:"} {
		if !strings.Contains(ir, want) {
			t.Errorf("IR missing block %q, got:\n%s", want, ir)
		}
	}
}

func TestStringInterningDeduplicates(t *testing.T) {
	mod := generateSource(t, `fn main() { print("hi"); print("hi"); print("bye"); }`, false)
	if len(mod.strings) != 2 {
		t.Fatalf("got %d interned strings, want 2 (deduplicated), strings=%v", len(mod.strings), mod.strings)
	}
	ir := mod.String()
	if strings.Count(ir, "@.str.0 = private unnamed_addr constant") != 1 {
		t.Errorf("expected exactly one definition of @.str.0, got:\n%s", ir)
	}
}

func TestDeclareExternsPresent(t *testing.T) {
	mod := generateSource(t, `fn main() { }`, false)
	ir := mod.String()
	if strings.Count(ir, "declare void @print(") != 3 {
		t.Errorf("expected three declare void @print(...) externs, got:\n%s", ir)
	}
}

func TestUndefinedVariableProducesIRGenerationDiagnostic(t *testing.T) {
	program := ast.New(ast.Program, 1, 1,
		ast.New(ast.FunctionDeclaration, 1, 1,
			ast.NewLeaf(ast.FunctionName, "main", 1, 1),
			ast.New(ast.Parameters, 1, 1),
			ast.New(ast.Block, 1, 1,
				ast.New(ast.PrintStatement, 1, 1, ast.NewLeaf(ast.Identifier, "missing", 1, 1)),
			),
		),
	)
	mod := Generate(program, false)
	if len(mod.Diagnostics()) == 0 {
		t.Fatal("expected an IRGenerationError diagnostic for an undefined variable")
	}
}
