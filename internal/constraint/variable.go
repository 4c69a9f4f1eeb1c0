package constraint

import (
	"fmt"

	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// Variable wraps either a HoleId (an inference variable) or a
// GenericArgumentId (a generic parameter treated as a variable during
// constraint collection).
type Variable struct {
	hole     ids.HoleId
	argument ids.GenericArgumentId
	isHole   bool
}

// FromHole wraps an inference variable.
func FromHole(h ids.HoleId) Variable { return Variable{hole: h, isHole: true} }

// FromArgument wraps a generic parameter.
func FromArgument(a ids.GenericArgumentId) Variable { return Variable{argument: a} }

// IsHole reports whether this Variable names an inference hole rather
// than a generic argument.
func (v Variable) IsHole() bool { return v.isHole }

// Hole returns the wrapped HoleId; only meaningful if IsHole is true.
func (v Variable) Hole() ids.HoleId { return v.hole }

// Argument returns the wrapped GenericArgumentId; only meaningful if
// IsHole is false.
func (v Variable) Argument() ids.GenericArgumentId { return v.argument }

func (v Variable) String() string {
	if v.isHole {
		return fmt.Sprintf("%s", v.hole)
	}
	return fmt.Sprintf("%s", v.argument)
}

// variableOf reports whether t's kind is itself a bare variable
// (Infer or Param), returning the wrapped Variable if so.
func variableOf(k kind.TypeKind) (Variable, bool) {
	switch x := k.(type) {
	case kind.Infer:
		return FromHole(x.Hole), true
	case kind.Param:
		return FromArgument(x.Argument), true
	default:
		return Variable{}, false
	}
}
