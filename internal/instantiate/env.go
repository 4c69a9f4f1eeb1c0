// Package instantiate implements the generic instantiator (C7):
// α-renaming a Generic's bound arguments to freshly minted ids and
// rewriting every Param reference across the (possibly recursive)
// structure it binds (spec §4.6).
package instantiate

import (
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
)

// InstantiateEnvironment holds the renaming table and per-type memo
// for a single Instantiate call (spec §4.3): a fresh one is allocated
// per call, so nested generics instantiated by separate calls never
// share a table.
type InstantiateEnvironment struct {
	*env.Environment
	rename map[ids.GenericArgumentId]ids.GenericArgumentId
	memo   map[ids.TypeId]ids.TypeId
}

// NewInstantiateEnvironment constructs an empty InstantiateEnvironment
// scoped to one Instantiate call.
func NewInstantiateEnvironment(e *env.Environment) *InstantiateEnvironment {
	return &InstantiateEnvironment{
		Environment: e,
		rename:      make(map[ids.GenericArgumentId]ids.GenericArgumentId),
		memo:        make(map[ids.TypeId]ids.TypeId),
	}
}
