package kind

import (
	"github.com/hashql-lang/core/internal/heap"
	"github.com/hashql-lang/core/internal/ids"
)

// Tuple is an ordered, width-invariant, depth-covariant sequence of
// element types. Elements is an interned []ids.TypeId slice so that
// two tuples built from the same element sequence (in the same order)
// share storage — the structural-sharing invariant carries through
// Beef-based transform passes that rebuild a tuple's elements.
type Tuple struct {
	Elements heap.Interned[[]ids.TypeId]
}

func (Tuple) typeKind() {}
