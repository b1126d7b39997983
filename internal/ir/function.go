package ir

import "strconv"

// Param is one lowered function parameter.
type Param struct {
	Name string
	Type mrType
}

// variable tracks one in-scope MiniRust binding's IR storage slot: the
// %name of its alloca and its MiniRust type (needed to pick int-vs-double
// opcodes at every use site).
type variable struct {
	slot        string
	typ         mrType
	isParameter bool
}

// env is a chain of lexical scopes mirroring the AST's block nesting,
// mapping MiniRust variable names to their alloca slots. Kept separate from
// internal/semantic's Scope: the IR generator runs as its own stage per the
// pipeline contract and must not depend on a prior successful analysis.
type env struct {
	vars   map[string]variable
	parent *env
}

func newEnv(parent *env) *env {
	return &env{vars: make(map[string]variable), parent: parent}
}

func (e *env) define(name string, v variable) {
	e.vars[name] = v
}

func (e *env) resolve(name string) (variable, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return variable{}, false
}

// Function is one lowered MiniRust function: a named, ordered list of basic
// blocks plus the fresh-name counters used while lowering its body.
type Function struct {
	Name       string
	ReturnType mrType
	Params     []Param

	blocks  []*BasicBlock
	current *BasicBlock

	tempSeq  int
	blockSeq int
}

func newFunction(name string, returnType mrType, params []Param) *Function {
	f := &Function{Name: name, ReturnType: returnType, Params: params}
	entry := newBlock("entry")
	f.blocks = append(f.blocks, entry)
	f.current = entry
	return f
}

// freshTemp returns the next %tN SSA-style temporary name for this function.
func (f *Function) freshTemp() string {
	name := "%t" + strconv.Itoa(f.tempSeq)
	f.tempSeq++
	return name
}

// freshBlock appends and switches to a new named basic block, disambiguated
// with a numeric suffix on repeat use of the same base name (if.then,
// if.then1, if.then2, ...).
func (f *Function) freshBlock(base string) *BasicBlock {
	b := newBlock(f.uniqueBlockName(base))
	f.blocks = append(f.blocks, b)
	return b
}

func (f *Function) uniqueBlockName(base string) string {
	count := 0
	for _, b := range f.blocks {
		if b.Name == base || hasNumericSuffix(b.Name, base) {
			count++
		}
	}
	if count == 0 {
		return base
	}
	return base + strconv.Itoa(count)
}

func hasNumericSuffix(name, base string) bool {
	if len(name) <= len(base) || name[:len(base)] != base {
		return false
	}
	for _, c := range name[len(base):] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (f *Function) switchTo(b *BasicBlock) {
	f.current = b
}
