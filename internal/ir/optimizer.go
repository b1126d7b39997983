package ir

import (
	"strconv"
	"strings"
)

// foldConstants implements spec.md §4.4's constant-folding pass: for every
// add/sub/mul instruction whose operands are both integer literals, it
// annotates the instruction with the folded value as a comment. It never
// rewrites the instruction's result or operands — folding here is
// pedagogy, not a rewrite — so temp/result bookkeeping stays untouched for
// the dead-code pass that may follow.
//
// Grounded on CWBudde-go-dws/internal/bytecode/optimizer.go's pattern of
// independently toggleable, named optimization passes over a function's
// instruction stream.
func foldConstants(fn *Function) {
	for _, block := range fn.blocks {
		for i := range block.Instructions {
			inst := &block.Instructions[i]
			if inst.Opcode != "add" && inst.Opcode != "sub" && inst.Opcode != "mul" {
				continue
			}
			if len(inst.Operands) != 2 {
				continue
			}
			a, ok1 := literalInt(inst.Operands[0])
			b, ok2 := literalInt(inst.Operands[1])
			if !ok1 || !ok2 {
				continue
			}
			var folded int
			switch inst.Opcode {
			case "add":
				folded = a + b
			case "sub":
				folded = a - b
			case "mul":
				folded = a * b
			}
			inst.Comment = "folded: " + strconv.Itoa(folded)
		}
	}
}

// literalInt reports whether an operand token (possibly trailing-comma
// separated, as emitted by generator.go) is a bare integer literal.
func literalInt(operand string) (int, bool) {
	token := strings.TrimSuffix(operand, ",")
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

// eliminateDeadCode implements spec.md §4.4's dead-code-elimination pass:
// compute every SSA temporary referenced as an operand anywhere in the
// function, then drop any instruction that defines a temp outside that
// set. Instructions without a result (store, br, ret, call) are always
// preserved, since they carry side effects.
func eliminateDeadCode(fn *Function) {
	used := make(map[string]bool)
	for _, block := range fn.blocks {
		for _, inst := range block.Instructions {
			for _, operand := range inst.Operands {
				for _, temp := range referencedTemps(operand) {
					used[temp] = true
				}
			}
		}
	}

	for _, block := range fn.blocks {
		for i := range block.Instructions {
			inst := &block.Instructions[i]
			if inst.Result == "" {
				continue
			}
			if !used[inst.Result] {
				inst.dead = true
			}
		}
	}
}

// referencedTemps extracts every "%tN" token embedded in an operand
// string (operands may bundle punctuation and labels, e.g. "%t3," or
// "i32*" or "label %if.then,").
func referencedTemps(operand string) []string {
	var out []string
	for _, field := range strings.FieldsFunc(operand, func(r rune) bool {
		return r == ',' || r == '(' || r == ')' || r == ' '
	}) {
		if strings.HasPrefix(field, "%t") && isAllDigits(field[2:]) {
			out = append(out, field)
		}
	}
	return out
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
