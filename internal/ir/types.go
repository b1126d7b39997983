package ir

// mrType is MiniRust's own closed type name (i32/f64/bool/str/void), kept
// distinct from the LLVM-like type tag it lowers to.
type mrType string

const (
	typeI32     mrType = "i32"
	typeF64     mrType = "f64"
	typeBool    mrType = "bool"
	typeStr     mrType = "str"
	typeVoid    mrType = "void"
	typeUnknown mrType = "unknown"
)

// llvmType maps a MiniRust type to its textual LLVM-like type tag, per
// spec.md §4.4's type-mapping table.
func llvmType(t mrType) string {
	switch t {
	case typeI32:
		return "i32"
	case typeF64:
		return "double"
	case typeBool:
		return "i1"
	case typeStr:
		return "i8*"
	default:
		return "void"
	}
}

// defaultValue returns the default-initializer literal for a MiniRust type,
// used when a VariableDeclaration has no initializer.
func defaultValue(t mrType) string {
	switch t {
	case typeI32, typeBool:
		return "0"
	case typeF64:
		return "0.0"
	case typeStr:
		return "null"
	default:
		return "0"
	}
}

func isFloatType(t mrType) bool { return t == typeF64 }

// typeFromName maps a VariableType/ParameterType/ReturnType node's literal
// value to mrType. The IR generator keeps its own copy of this mapping
// rather than importing internal/semantic: per spec.md §5 each stage
// constructs fresh per-stage state and never calls back into an earlier
// one.
func typeFromName(name string) mrType {
	switch name {
	case "i32":
		return typeI32
	case "f64":
		return typeF64
	case "bool":
		return typeBool
	case "str":
		return typeStr
	default:
		return typeUnknown
	}
}
