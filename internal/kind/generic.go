package kind

import (
	"github.com/hashql-lang/core/internal/heap"
	"github.com/hashql-lang/core/internal/ids"
)

// Param is a reference to a generic parameter bound by an enclosing
// Generic, or left free inside an Apply that substitutes it.
type Param struct {
	Argument ids.GenericArgumentId
}

func (Param) typeKind() {}

// Infer is an inference variable awaiting a solved binding.
type Infer struct {
	Hole ids.HoleId
}

func (Infer) typeKind() {}

// GenericArgument declares a single parameter introduced by a Generic
// binder: its identity, its display name, and an optional upper-bound
// constraint.
type GenericArgument struct {
	Id         ids.GenericArgumentId
	Name       ids.SymbolId
	Constraint ids.OptionalTypeId
}

// GenericSubstitution binds one GenericArgumentId to a concrete value
// type inside an Apply. Substitution sequences are kept sorted by
// Argument. Exact (Argument, Value) repeats are removed, but two
// entries for the same Argument with differing values can coexist:
// the lattice's join/meet substitution merge keeps both.
type GenericSubstitution struct {
	Argument ids.GenericArgumentId
	Value    ids.TypeId
}

// Generic is a binder: it introduces Arguments into scope for Base,
// which may reference them via Param.
type Generic struct {
	Base      ids.TypeId
	Arguments heap.Interned[[]GenericArgument]
}

func (Generic) typeKind() {}

// Apply is a deferred substitution carrier: Base is instantiated with
// Substitutions once something forces it open (a lattice op,
// projection, or instantiation).
type Apply struct {
	Base          ids.TypeId
	Substitutions heap.Interned[[]GenericSubstitution]
}

func (Apply) typeKind() {}
