package kind

// PrimitiveKind enumerates the scalar primitive families. Ordering
// matters: Integer is the only primitive with a non-trivial subtype
// relation (Integer <: Number).
type PrimitiveKind uint8

const (
	PrimitiveNumber PrimitiveKind = iota
	PrimitiveInteger
	PrimitiveString
	PrimitiveBoolean
	PrimitiveNull
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimitiveNumber:
		return "Number"
	case PrimitiveInteger:
		return "Integer"
	case PrimitiveString:
		return "String"
	case PrimitiveBoolean:
		return "Boolean"
	case PrimitiveNull:
		return "Null"
	default:
		return "<unknown primitive>"
	}
}

// SubtypeOf reports whether p is a subtype of other under the fixed
// primitive ordering table: Integer <: Number, and every primitive is
// a (reflexive) subtype of itself. No other primitive pair relates.
func (p PrimitiveKind) SubtypeOf(other PrimitiveKind) bool {
	if p == other {
		return true
	}
	return p == PrimitiveInteger && other == PrimitiveNumber
}

// Primitive is a scalar type: Number, Integer, String, Boolean, or
// Null.
type Primitive struct {
	Kind PrimitiveKind
}

func (Primitive) typeKind() {}
