package semantic

// Type is one of the closed set of MiniRust types named in spec.md §3.
// Borrow expressions are type-transparent in this simplified model (§4.4's
// IR generator passes &/&mut operand values through unchanged, and §4.3
// explicitly says derived borrow types are never stored as a variable's
// type) — so unary &/&mut yields its operand's Type rather than a separate
// "&T"/"&mut T" type.
type Type string

const (
	I32     Type = "i32"
	F64     Type = "f64"
	Bool    Type = "bool"
	Str     Type = "str"
	Void    Type = "void"
	Func    Type = "function"
	Unknown Type = "unknown"
)

func (t Type) String() string { return string(t) }

// typeFromTypeName converts a parsed VariableType/ParameterType/ReturnType
// literal (already restricted to i32/f64/bool/str by the grammar) to a
// Type, defaulting to Unknown for anything unrecognized.
func typeFromTypeName(name string) Type {
	switch name {
	case "i32":
		return I32
	case "f64":
		return F64
	case "bool":
		return Bool
	case "str":
		return Str
	default:
		return Unknown
	}
}

func isNumeric(t Type) bool {
	return t == I32 || t == F64
}
