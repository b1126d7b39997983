package ir

import "strings"

// Instruction is one textual IR line. Result is empty for void instructions
// (store, br, ret void, call void @print). Opcode and Operands are rendered
// by (*Module).String; Comment, when set, is appended as a trailing "; ..."
// annotation (used by the constant-folding pass to annotate, not rewrite).
type Instruction struct {
	Result   string
	Opcode   string
	Type     string
	Operands []string
	Comment  string

	// dead is set by the dead-code-elimination pass and causes the
	// instruction to be dropped from Function.render, rather than mutating
	// the instruction slice mid-pass.
	dead bool
}

func (i Instruction) String() string {
	var b strings.Builder
	if i.Result != "" {
		b.WriteString(i.Result)
		b.WriteString(" = ")
	}
	b.WriteString(i.Opcode)
	if i.Type != "" {
		b.WriteString(" ")
		b.WriteString(i.Type)
	}
	for _, op := range i.Operands {
		b.WriteString(" ")
		b.WriteString(op)
	}
	if i.Comment != "" {
		b.WriteString(" ; ")
		b.WriteString(i.Comment)
	}
	return b.String()
}

// BasicBlock is a named, linear run of instructions ending in a terminator
// (br/ret). Terminated guards against emitting unreachable instructions
// past the block's own terminator.
type BasicBlock struct {
	Name         string
	Instructions []Instruction
	Terminated   bool
}

func newBlock(name string) *BasicBlock {
	return &BasicBlock{Name: name}
}

func (b *BasicBlock) emit(inst Instruction) {
	if b.Terminated {
		return
	}
	b.Instructions = append(b.Instructions, inst)
}

func (b *BasicBlock) terminate(inst Instruction) {
	if b.Terminated {
		return
	}
	b.Instructions = append(b.Instructions, inst)
	b.Terminated = true
}
