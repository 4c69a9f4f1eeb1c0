package kind

import (
	"github.com/hashql-lang/core/internal/heap"
	"github.com/hashql-lang/core/internal/ids"
)

// Closure is an arity-invariant function type: parameters sit in
// contravariant position, the return type in covariant position.
type Closure struct {
	Params heap.Interned[[]ids.TypeId]
	Return ids.TypeId
}

func (Closure) typeKind() {}
