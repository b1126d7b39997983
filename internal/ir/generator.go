package ir

import (
	"fmt"
	"strings"

	"github.com/birukG09/MiniRust-Compiler/internal/ast"
	"github.com/birukG09/MiniRust-Compiler/internal/diag"
)

// generator holds the mutable state threaded through one Module's worth of
// lowering: the module under construction, the function currently being
// lowered, and its lexical environment chain.
type generator struct {
	module *Module
	fn     *Function
	env    *env
}

func newGenerator() *generator {
	return &generator{module: newModule()}
}

// lowerProgram lowers every top-level FunctionDeclaration into the module,
// in source order. Non-function top-level statements are accepted by the
// grammar but have no IR contract of their own (spec.md §4.4 only
// describes function and statement/expression lowering), so they are
// skipped rather than guessed at.
func (g *generator) lowerProgram(program *ast.Node) {
	for _, child := range program.Children {
		if child.Kind == ast.FunctionDeclaration {
			g.lowerFunction(child)
		}
	}
}

// lowerFunction lowers one FunctionDeclaration. Children are
// [FunctionName, Parameters, optional ReturnType, Block].
func (g *generator) lowerFunction(node *ast.Node) {
	name := node.Child(0).Value
	paramsNode := node.Child(1)
	body := node.Children[len(node.Children)-1]

	returnType := typeVoid
	if len(node.Children) == 4 {
		returnType = typeFromName(node.Children[2].Value)
	}

	var params []Param
	for _, p := range paramsNode.Children {
		params = append(params, Param{
			Name: p.Child(0).Value,
			Type: typeFromName(p.Child(1).Value),
		})
	}

	fn := newFunction(name, returnType, params)
	g.fn = fn
	g.env = newEnv(nil)
	for _, p := range params {
		g.env.define(p.Name, variable{slot: "%" + p.Name, typ: p.Type, isParameter: true})
	}

	g.lowerStatements(body.Children)

	if !g.fn.current.Terminated {
		if returnType == typeVoid {
			g.fn.current.terminate(Instruction{Opcode: "ret", Type: "void"})
		} else {
			g.fn.current.terminate(Instruction{Opcode: "ret", Type: llvmType(returnType),
				Operands: []string{defaultValue(returnType)}})
		}
	}

	g.module.Functions = append(g.module.Functions, fn)
}

func (g *generator) lowerStatements(stmts []*ast.Node) {
	for _, stmt := range stmts {
		g.lowerStatement(stmt)
	}
}

// lowerBlockScoped opens a nested environment for a Block's own variable
// bindings, lowers its statements, then restores the enclosing environment.
func (g *generator) lowerBlockScoped(block *ast.Node) {
	prev := g.env
	g.env = newEnv(prev)
	g.lowerStatements(block.Children)
	g.env = prev
}

func (g *generator) lowerStatement(node *ast.Node) {
	if node == nil || g.fn.current.Terminated {
		return
	}
	switch node.Kind {
	case ast.VariableDeclaration:
		g.lowerVariableDeclaration(node)
	case ast.IfStatement:
		g.lowerIfStatement(node)
	case ast.WhileStatement:
		g.lowerWhileStatement(node)
	case ast.PrintStatement:
		g.lowerPrintStatement(node)
	case ast.ReturnStatement:
		g.lowerReturnStatement(node)
	case ast.Block:
		g.lowerBlockScoped(node)
	default:
		g.lowerExpression(node)
	}
}

// lowerVariableDeclaration emits "alloca <T>" then "store <T> <init>, <T>*
// <slot>", per spec.md §4.4. Children: [VariableName, Mutable, optional
// VariableType, optional Initializer].
func (g *generator) lowerVariableDeclaration(node *ast.Node) {
	name := node.Child(0).Value

	var declaredType mrType
	var hasDeclared bool
	var initValue string
	var initType mrType
	var hasInit bool

	idx := 2
	if idx < len(node.Children) && node.Children[idx].Kind == ast.VariableType {
		declaredType = typeFromName(node.Children[idx].Value)
		hasDeclared = true
		idx++
	}
	if idx < len(node.Children) {
		initValue, initType = g.lowerExpression(node.Children[idx])
		hasInit = true
	}

	typ := declaredType
	if !hasDeclared {
		typ = initType
	}
	if typ == "" {
		typ = typeUnknown
	}

	slot := g.fn.freshTemp()
	g.fn.current.emit(Instruction{
		Result: slot, Opcode: "alloca", Type: llvmType(typ),
		Comment: name,
	})

	value := initValue
	if !hasInit {
		value = defaultValue(typ)
	}
	g.fn.current.emit(Instruction{
		Opcode: "store", Type: llvmType(typ),
		Operands: []string{value + ",", llvmType(typ) + "*", slot},
	})

	g.env.define(name, variable{slot: slot, typ: typ})
}

// lowerIdentifier resolves node.Value in the current environment. An
// allocated local is loaded into a fresh temp; a parameter's value is used
// directly by name. An unresolved name is an IRGenerationError, matching
// the defensive contract spec.md §4.4 states for this stage.
func (g *generator) lowerIdentifier(node *ast.Node) (string, mrType) {
	v, ok := g.env.resolve(node.Value)
	if !ok {
		g.module.diagnostics.Add(diag.IRGenerationError,
			fmt.Sprintf("Undefined variable: '%s'", node.Value), node.Line, node.Column)
		return "0", typeUnknown
	}
	if v.isParameter {
		return v.slot, v.typ
	}
	tmp := g.fn.freshTemp()
	g.fn.current.emit(Instruction{
		Result: tmp, Opcode: "load", Type: llvmType(v.typ) + ",",
		Operands: []string{llvmType(v.typ) + "*", v.slot},
	})
	return tmp, v.typ
}

// lowerExpression lowers node and returns the SSA value (a literal, a
// temp, or a slot name for a parameter) together with its MiniRust type.
func (g *generator) lowerExpression(node *ast.Node) (string, mrType) {
	if node == nil {
		return "0", typeUnknown
	}
	switch node.Kind {
	case ast.IntegerLiteral:
		return node.Value, typeI32
	case ast.FloatLiteral:
		return floatLiteral(node.Value), typeF64
	case ast.BooleanLiteral:
		if node.Value == "true" {
			return "1", typeBool
		}
		return "0", typeBool
	case ast.StringLiteral:
		return g.module.intern(node.Value), typeStr
	case ast.Identifier:
		return g.lowerIdentifier(node)
	case ast.BinaryOperation:
		return g.lowerBinaryOperation(node)
	case ast.UnaryOperation:
		return g.lowerUnaryOperation(node)
	case ast.Assignment:
		return g.lowerAssignment(node)
	default:
		return "0", typeUnknown
	}
}

// floatLiteral appends ".0" to a FloatLiteral value that has no decimal
// point. Lexer-produced FLOAT lexemes always keep their fractional part, so
// this only changes values in hand-built trees.
func floatLiteral(s string) string {
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	return s
}

func (g *generator) lowerAssignment(node *ast.Node) (string, mrType) {
	left, right := node.Children[0], node.Children[1]
	val, typ := g.lowerExpression(right)
	if left.Kind != ast.Identifier {
		return val, typ
	}
	v, ok := g.env.resolve(left.Value)
	if !ok {
		g.module.diagnostics.Add(diag.IRGenerationError,
			fmt.Sprintf("Undefined variable: '%s'", left.Value), left.Line, left.Column)
		return val, typ
	}
	if v.isParameter {
		return val, typ
	}
	g.fn.current.emit(Instruction{
		Opcode: "store", Type: llvmType(v.typ),
		Operands: []string{val + ",", llvmType(v.typ) + "*", v.slot},
	})
	return val, v.typ
}

var intOpcodes = map[string]string{"+": "add", "-": "sub", "*": "mul", "/": "sdiv", "%": "srem"}
var floatOpcodes = map[string]string{"+": "fadd", "-": "fsub", "*": "fmul", "/": "fdiv"}
var intCmp = map[string]string{"<": "slt", "<=": "sle", ">": "sgt", ">=": "sge", "==": "eq", "!=": "ne"}
var floatCmp = map[string]string{"<": "olt", "<=": "ole", ">": "ogt", ">=": "oge", "==": "oeq", "!=": "one"}

func (g *generator) lowerBinaryOperation(node *ast.Node) (string, mrType) {
	op := node.Value

	if op == "&&" || op == "||" {
		left, _ := g.lowerExpression(node.Children[0])
		right, _ := g.lowerExpression(node.Children[1])
		opcode := "and"
		if op == "||" {
			opcode = "or"
		}
		tmp := g.fn.freshTemp()
		g.fn.current.emit(Instruction{Result: tmp, Opcode: opcode, Type: "i1", Operands: []string{left + ",", right}})
		return tmp, typeBool
	}

	left, leftType := g.lowerExpression(node.Children[0])
	right, _ := g.lowerExpression(node.Children[1])
	operandType := leftType
	isFloat := isFloatType(operandType)

	if cmpOp, ok := intCmp[op]; ok {
		tmp := g.fn.freshTemp()
		if isFloat {
			g.fn.current.emit(Instruction{Result: tmp, Opcode: "fcmp " + floatCmp[op], Type: llvmType(operandType),
				Operands: []string{left + ",", right}})
		} else {
			g.fn.current.emit(Instruction{Result: tmp, Opcode: "icmp " + cmpOp, Type: llvmType(operandType),
				Operands: []string{left + ",", right}})
		}
		return tmp, typeBool
	}

	tmp := g.fn.freshTemp()
	var opcode string
	if isFloat {
		opcode = floatOpcodes[op]
	} else {
		opcode = intOpcodes[op]
	}
	g.fn.current.emit(Instruction{Result: tmp, Opcode: opcode, Type: llvmType(operandType),
		Operands: []string{left + ",", right}})
	return tmp, operandType
}

func (g *generator) lowerUnaryOperation(node *ast.Node) (string, mrType) {
	operand := node.Children[0]
	switch node.Value {
	case "-":
		val, typ := g.lowerExpression(operand)
		tmp := g.fn.freshTemp()
		if isFloatType(typ) {
			g.fn.current.emit(Instruction{Result: tmp, Opcode: "fsub", Type: llvmType(typ), Operands: []string{"0.0,", val}})
		} else {
			g.fn.current.emit(Instruction{Result: tmp, Opcode: "sub", Type: llvmType(typ), Operands: []string{"0,", val}})
		}
		return tmp, typ
	case "!":
		val, _ := g.lowerExpression(operand)
		tmp := g.fn.freshTemp()
		g.fn.current.emit(Instruction{Result: tmp, Opcode: "xor", Type: "i1", Operands: []string{val + ",", "1"}})
		return tmp, typeBool
	case "&", "&mut":
		// No reference values materialize in IR: the operand's value
		// passes through unchanged.
		return g.lowerExpression(operand)
	default:
		return g.lowerExpression(operand)
	}
}

func (g *generator) lowerPrintStatement(node *ast.Node) {
	val, typ := g.lowerExpression(node.Children[0])
	g.fn.current.emit(Instruction{
		Opcode: "call void @print(" + llvmType(typ), Operands: []string{val + ")"},
	})
}

func (g *generator) lowerReturnStatement(node *ast.Node) {
	if len(node.Children) == 0 {
		g.fn.current.terminate(Instruction{Opcode: "ret", Type: "void"})
		return
	}
	val, typ := g.lowerExpression(node.Children[0])
	g.fn.current.terminate(Instruction{Opcode: "ret", Type: llvmType(typ), Operands: []string{val}})
}

// lowerIfStatement follows spec.md §4.4's fixed block order: if.then,
// if.else, if.end, created up front regardless of whether an else branch
// is present (an absent else falls through to if.end directly).
func (g *generator) lowerIfStatement(node *ast.Node) {
	cond, _ := g.lowerExpression(node.Children[0])

	thenBlock := g.fn.freshBlock("if.then")
	elseBlock := g.fn.freshBlock("if.else")
	endBlock := g.fn.freshBlock("if.end")

	g.fn.current.terminate(Instruction{
		Opcode: "br", Type: "i1", Operands: []string{cond + ",", "label %" + thenBlock.Name + ",", "label %" + elseBlock.Name},
	})

	g.fn.switchTo(thenBlock)
	g.lowerBlockScoped(node.Children[1])
	if !g.fn.current.Terminated {
		g.fn.current.terminate(Instruction{Opcode: "br", Operands: []string{"label %" + endBlock.Name}})
	}

	g.fn.switchTo(elseBlock)
	if len(node.Children) == 3 {
		g.lowerBlockScoped(node.Children[2])
	}
	if !g.fn.current.Terminated {
		g.fn.current.terminate(Instruction{Opcode: "br", Operands: []string{"label %" + endBlock.Name}})
	}

	g.fn.switchTo(endBlock)
}

func (g *generator) lowerWhileStatement(node *ast.Node) {
	headerBlock := g.fn.freshBlock("while.header")
	bodyBlock := g.fn.freshBlock("while.body")
	endBlock := g.fn.freshBlock("while.end")

	g.fn.current.terminate(Instruction{Opcode: "br", Operands: []string{"label %" + headerBlock.Name}})

	g.fn.switchTo(headerBlock)
	cond, _ := g.lowerExpression(node.Children[0])
	g.fn.current.terminate(Instruction{
		Opcode: "br", Type: "i1", Operands: []string{cond + ",", "label %" + bodyBlock.Name + ",", "label %" + endBlock.Name},
	})

	g.fn.switchTo(bodyBlock)
	g.lowerBlockScoped(node.Children[1])
	if !g.fn.current.Terminated {
		g.fn.current.terminate(Instruction{Opcode: "br", Operands: []string{"label %" + headerBlock.Name}})
	}

	g.fn.switchTo(endBlock)
}
