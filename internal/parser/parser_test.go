package parser

import (
	"testing"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Node, []string) {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(src)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lexical errors: %v", lexErrs)
	}
	program, errs := Parse(tokens)
	var messages []string
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return program, messages
}

func TestParseFunctionDeclaration(t *testing.T) {
	program, errs := parseSource(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(program.Children) != 1 {
		t.Fatalf("got %d top-level children, want 1", len(program.Children))
	}

	fn := program.Children[0]
	if fn.Kind != ast.FunctionDeclaration {
		t.Fatalf("got %s, want FunctionDeclaration", fn.Kind)
	}
	if len(fn.Children) != 4 {
		t.Fatalf("got %d children, want 4 (name, params, returnType, body)", len(fn.Children))
	}
	if fn.Child(0).Value != "add" {
		t.Errorf("function name = %q, want %q", fn.Child(0).Value, "add")
	}

	params := fn.Child(1)
	if len(params.Children) != 2 {
		t.Fatalf("got %d parameters, want 2", len(params.Children))
	}
	if params.Children[0].Child(0).Value != "a" || params.Children[0].Child(1).Value != "i32" {
		t.Errorf("unexpected first parameter shape: %+v", params.Children[0])
	}

	if fn.Child(2).Kind != ast.ReturnType || fn.Child(2).Value != "i32" {
		t.Errorf("unexpected return type node: %+v", fn.Child(2))
	}
}

func TestParseVariableDeclarationShapes(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantChildren int
	}{
		{"declared and initialized", `fn main() { let x: i32 = 1; }`, 4},
		{"initialized only", `fn main() { let x = 1; }`, 3},
		{"declared only", `fn main() { let x: i32; }`, 3},
		{"neither", `fn main() { let x; }`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, errs := parseSource(t, tt.src)
			if len(errs) != 0 {
				t.Fatalf("unexpected parse errors: %v", errs)
			}
			body := program.Children[0].Children[len(program.Children[0].Children)-1]
			decl := body.Children[0]
			if decl.Kind != ast.VariableDeclaration {
				t.Fatalf("got %s, want VariableDeclaration", decl.Kind)
			}
			if len(decl.Children) != tt.wantChildren {
				t.Errorf("got %d children, want %d", len(decl.Children), tt.wantChildren)
			}
			if decl.Child(0).Kind != ast.VariableName || decl.Child(1).Kind != ast.Mutable {
				t.Errorf("unexpected leading children: %+v, %+v", decl.Child(0), decl.Child(1))
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	// 2 + 3 * 4 should parse as 2 + (3 * 4): BinaryOperation("+") with
	// right child BinaryOperation("*").
	program, errs := parseSource(t, `fn main() { let x = 2 + 3 * 4; }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := program.Children[0]
	body := fn.Children[len(fn.Children)-1]
	initializer := body.Children[0].Children[2]
	if initializer.Kind != ast.BinaryOperation || initializer.Value != "+" {
		t.Fatalf("got %s(%q), want BinaryOperation(\"+\")", initializer.Kind, initializer.Value)
	}
	right := initializer.Children[1]
	if right.Kind != ast.BinaryOperation || right.Value != "*" {
		t.Fatalf("got %s(%q), want BinaryOperation(\"*\") on the right", right.Kind, right.Value)
	}
}

func TestParseIfElseChildren(t *testing.T) {
	program, errs := parseSource(t, `fn main() { if true { } else { } }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	fn := program.Children[0]
	body := fn.Children[len(fn.Children)-1]
	ifStmt := body.Children[0]
	if ifStmt.Kind != ast.IfStatement {
		t.Fatalf("got %s, want IfStatement", ifStmt.Kind)
	}
	if len(ifStmt.Children) != 3 {
		t.Fatalf("got %d children, want 3 (cond, then, else)", len(ifStmt.Children))
	}
}

func TestParseErrorRecoverySynchronizes(t *testing.T) {
	// A malformed parameter list in the first function should not prevent
	// the second function from parsing successfully.
	program, errs := parseSource(t, `fn broken( { } fn main() { }`)
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error")
	}

	foundMain := false
	for _, child := range program.Children {
		if child.Kind == ast.FunctionDeclaration && child.Child(0).Value == "main" {
			foundMain = true
		}
	}
	if !foundMain {
		t.Error("expected synchronize to recover and still parse 'main'")
	}
}

func TestParseBlockNeverHasNilChildren(t *testing.T) {
	program, _ := parseSource(t, `fn main() { let x: ; }`)
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		if n.Kind != ast.Block {
			for _, c := range n.Children {
				walk(c)
			}
			return
		}
		for _, c := range n.Children {
			if c == nil {
				t.Fatal("Block contains a nil child")
			}
			walk(c)
		}
	}
	walk(program)
}
