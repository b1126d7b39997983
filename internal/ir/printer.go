package ir

import (
	"fmt"
	"strings"
)

// String renders m as the textual, LLVM-like module spec.md §6.3
// describes: a preamble (banner comment, string constants, print
// externs), then each function in insertion order separated by a blank
// line. Grounded on CWBudde-go-dws/internal/bytecode/disasm.go's
// instruction-by-instruction textual renderer.
func (m *Module) String() string {
	var b strings.Builder
	b.WriteString("; MiniRust Compiler - Generated LLVM IR\n")

	for i, s := range m.strings {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("@.str.%d = private unnamed_addr constant [%d x i8] c\"%s\\00\"",
			i, len(s)+1, escapeStringLiteral(s)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("declare void @print(i32)\n")
	b.WriteString("declare void @print(double)\n")
	b.WriteString("declare void @print(i8*)\n")

	for _, fn := range m.Functions {
		b.WriteString("\n")
		b.WriteString(fn.render())
	}

	return b.String()
}

// escapeStringLiteral applies the \n->\0A, \t->\09 escaping spec.md §4.4
// names; every other byte, including the bytes of multi-byte UTF-8 runes,
// passes through as-is.
func escapeStringLiteral(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			b.WriteString("\\0A")
		case '\t':
			b.WriteString("\\09")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// render renders one function definition: header, "{", each basic block
// (unindented, colon-terminated label; two-space-indented instructions),
// and the closing "}".
func (f *Function) render() string {
	var b strings.Builder

	paramList := make([]string, len(f.Params))
	for i, p := range f.Params {
		paramList[i] = fmt.Sprintf("%s %%%s", llvmType(p.Type), p.Name)
	}

	fmt.Fprintf(&b, "define %s @%s(%s) {\n", llvmType(f.ReturnType), f.Name, strings.Join(paramList, ", "))
	for _, block := range f.blocks {
		fmt.Fprintf(&b, "%s:\n", block.Name)
		for _, inst := range block.Instructions {
			if inst.dead {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", inst.String())
		}
	}
	b.WriteString("}\n")
	return b.String()
}
