package kind

import (
	"github.com/hashql-lang/core/internal/heap"
	"github.com/hashql-lang/core/internal/ids"
)

// StructField is a single (name, type) entry in a Struct. Struct's
// interned field slice must be sorted by Name with no duplicates —
// enforced by the constructor in internal/builder, not here, since
// building a Struct requires access to the interning tables.
type StructField struct {
	Name  ids.SymbolId
	Value ids.TypeId
}

// Struct is a width-invariant-by-name, depth-covariant record type:
// fields are matched by name, and two structs relate only if they
// share the same field set.
type Struct struct {
	Fields heap.Interned[[]StructField]
}

func (Struct) typeKind() {}
