// Package ir lowers an analyzed MiniRust AST to a small textual, LLVM-like
// intermediate representation: SSA-style temporaries, named basic blocks,
// and a module-level string-literal table, per spec.md §4.4/§6.3.
//
// Grounded on CWBudde-go-dws/internal/bytecode (compiler.go's per-function
// lowering loop and label bookkeeping, optimizer.go's named, independently
// toggleable optimization passes, disasm.go's textual rendering), adapted
// from DWScript's stack-bytecode target to a textual SSA-like target.
package ir

import (
	"fmt"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/diag"
)

// Module is the aggregate output of lowering one Program node: its
// functions in declaration order plus the interned string-literal table.
type Module struct {
	Functions []*Function

	strings   []string       // literal contents, in first-seen order
	stringIDs map[string]int // content -> index into strings

	diagnostics *diag.Bus
}

func newModule() *Module {
	return &Module{stringIDs: make(map[string]int), diagnostics: diag.NewBus()}
}

// intern returns the @.str.N global name for s, reusing an existing entry
// when s was already interned earlier in this compile. The table is
// per-Module (per compile call), not process-wide: spec.md §9 calls this
// out as a deliberate deviation from a persistent interning table, made so
// golden IR output is reproducible across separate compiles of the same
// source.
func (m *Module) intern(s string) string {
	if id, ok := m.stringIDs[s]; ok {
		return fmt.Sprintf("@.str.%d", id)
	}
	id := len(m.strings)
	m.stringIDs[s] = id
	m.strings = append(m.strings, s)
	return fmt.Sprintf("@.str.%d", id)
}

// Diagnostics returns every diagnostic recorded while lowering, in
// production order.
func (m *Module) Diagnostics() []diag.Diagnostic {
	return m.diagnostics.All()
}

// Generate lowers program to a Module, running the constant-folding and
// dead-code-elimination passes when optimize is true. An undefined variable
// produces an IRGenerationError diagnostic on the returned Module's
// Diagnostics. Generate does not recover panics: a tree missing the
// positional children the parser always emits can panic, and
// pkg/minirust.GenerateIR is where such a panic becomes a diagnostic.
func Generate(program *ast.Node, optimize bool) *Module {
	g := newGenerator()
	g.lowerProgram(program)
	if optimize {
		for _, fn := range g.module.Functions {
			foldConstants(fn)
			eliminateDeadCode(fn)
		}
	}
	return g.module
}
