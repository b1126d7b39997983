package semantic

import (
	"fmt"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/diag"
)

// applyBorrow implements the borrow-count state machine of spec.md §4.3.
// Counters are monotonic over the whole analysis (Open Question #2): they
// are never decremented when a borrowing expression's enclosing scope
// closes, matching the teaching simplification the spec calls out.
func (a *Analyzer) applyBorrow(sym *Symbol, mutBorrow bool, node *ast.Node) {
	if mutBorrow {
		switch {
		case sym.MutableBorrowCount > 0:
			a.diagnostics.Add(diag.OwnershipError,
				fmt.Sprintf("Cannot create mutable borrow: '%s' is already mutably borrowed", sym.Name),
				node.Line, node.Column)
		case sym.BorrowCount > 0:
			a.diagnostics.Add(diag.OwnershipError,
				fmt.Sprintf("Cannot create mutable borrow: '%s' is already borrowed", sym.Name),
				node.Line, node.Column)
		default:
			sym.MutableBorrowCount++
			a.trace = append(a.trace, fmt.Sprintf("Mutable borrow of '%s'", sym.Name))
		}
		return
	}

	if sym.MutableBorrowCount > 0 {
		a.diagnostics.Add(diag.OwnershipError,
			fmt.Sprintf("Cannot create immutable borrow: '%s' is already mutably borrowed", sym.Name),
			node.Line, node.Column)
		return
	}
	sym.BorrowCount++
	a.trace = append(a.trace, fmt.Sprintf("Immutable borrow of '%s'", sym.Name))
}
