package kind

import (
	"github.com/hashql-lang/core/internal/heap"
	"github.com/hashql-lang/core/internal/ids"
)

// Union is a canonicalized (deduplicated, stably sorted by TypeId)
// set of member types, joined together when normalized.
type Union struct {
	Variants heap.Interned[[]ids.TypeId]
}

func (Union) typeKind() {}

// Intersection is a canonicalized set of member types, met together
// when normalized.
type Intersection struct {
	Variants heap.Interned[[]ids.TypeId]
}

func (Intersection) typeKind() {}
