package ast

// Kind discriminates the payload a Node carries.
type Kind uint8

// Node payload kinds.
const (
	KindNull Kind = iota
	KindInt
	KindUInt
	KindDouble
	KindString
	KindPointer
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindInt:
		return "Int"
	case KindUInt:
		return "UInt"
	case KindDouble:
		return "Double"
	case KindString:
		return "String"
	case KindPointer:
		return "Pointer"
	}

	return "Kind(invalid)"
}
