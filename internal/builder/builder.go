// Package builder provides a small fluent API for constructing
// interned types against an *env.Environment, eliminating verbose
// nested InternKind closures at every call site — generalized from
// AILANG's Builder (internal/types/builder.go), whose fluent
// T.Func(...).Returns(...).Effects(...) style this follows, adapted
// from AILANG's pointer-tree Type values to this core's interned
// TypeIds.
package builder

import (
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// B is a builder bound to one Environment; every method mints or
// reuses (via interning) a TypeId from that Environment's Heap.
type B struct {
	Env *env.Environment
}

// New binds a builder to env.
func New(e *env.Environment) B { return B{Env: e} }

// Never returns the bottom type.
func (b B) Never() ids.TypeId {
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Never{} })
}

// Unknown returns the top type.
func (b B) Unknown() ids.TypeId {
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Unknown{} })
}

// Primitive returns a scalar primitive type.
func (b B) Primitive(p kind.PrimitiveKind) ids.TypeId {
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Primitive{Kind: p} })
}

// Number, Integer, String, Boolean, and Null are shorthand for the
// five fixed primitives.
func (b B) Number() ids.TypeId  { return b.Primitive(kind.PrimitiveNumber) }
func (b B) Integer() ids.TypeId { return b.Primitive(kind.PrimitiveInteger) }
func (b B) String() ids.TypeId  { return b.Primitive(kind.PrimitiveString) }
func (b B) Boolean() ids.TypeId { return b.Primitive(kind.PrimitiveBoolean) }
func (b B) Null() ids.TypeId    { return b.Primitive(kind.PrimitiveNull) }

// Tuple returns an ordered tuple of elements.
func (b B) Tuple(elements ...ids.TypeId) ids.TypeId {
	interned := b.Env.Heap.InternTypeIds(elements)
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Tuple{Elements: interned} })
}

// Field is one (name, type) pair passed to Struct.
type Field struct {
	Name string
	Type ids.TypeId
}

// F is shorthand for constructing a Field.
func F(name string, t ids.TypeId) Field { return Field{Name: name, Type: t} }

// Struct returns a struct type, sorting fields by name (spec §3
// invariant 3). Duplicate names are an internal usage error — callers
// assemble structs from de-facto distinct declared fields; this is
// asserted, not raised as a diagnostic, per §7 ("the core never panics
// on well-typed input; assertions guard internal invariants only").
func (b B) Struct(fields ...Field) ids.TypeId {
	raw := make([]kind.StructField, len(fields))
	for i, f := range fields {
		raw[i] = kind.StructField{Name: b.Env.Heap.InternSymbol(f.Name), Value: f.Type}
	}
	sorted := kind.SortFields(raw, b.Env.Heap.SymbolName)
	for i := 1; i < len(sorted); i++ {
		if b.Env.Heap.SymbolName(sorted[i].Name) == b.Env.Heap.SymbolName(sorted[i-1].Name) {
			panic("builder: duplicate struct field name " + b.Env.Heap.SymbolName(sorted[i].Name))
		}
	}
	interned := b.Env.Heap.InternStructFields(sorted)
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Struct{Fields: interned} })
}

// Closure returns a function type.
func (b B) Closure(params []ids.TypeId, ret ids.TypeId) ids.TypeId {
	interned := b.Env.Heap.InternTypeIds(params)
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind {
		return kind.Closure{Params: interned, Return: ret}
	})
}

// Union returns a canonicalized union of members.
func (b B) Union(members ...ids.TypeId) ids.TypeId {
	canon := kind.CanonicalizeSet(members)
	interned := b.Env.Heap.InternTypeIds(canon)
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Union{Variants: interned} })
}

// Intersection returns a canonicalized intersection of members.
func (b B) Intersection(members ...ids.TypeId) ids.TypeId {
	canon := kind.CanonicalizeSet(members)
	interned := b.Env.Heap.InternTypeIds(canon)
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Intersection{Variants: interned} })
}

// Param returns a reference to a bound generic parameter.
func (b B) Param(arg ids.GenericArgumentId) ids.TypeId {
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Param{Argument: arg} })
}

// Infer returns a fresh inference variable.
func (b B) Infer() ids.TypeId {
	hole := b.Env.Heap.NewHole()
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Infer{Hole: hole} })
}

// NewGenericArgument mints a fresh generic argument bound to name
// (and an optional constraint).
func (b B) NewGenericArgument(name string, constraint ids.OptionalTypeId) kind.GenericArgument {
	return kind.GenericArgument{
		Id:         b.Env.Heap.NewGenericArgument(),
		Name:       b.Env.Heap.InternSymbol(name),
		Constraint: constraint,
	}
}

// Generic returns a binder introducing arguments into scope of base.
func (b B) Generic(base ids.TypeId, arguments ...kind.GenericArgument) ids.TypeId {
	interned := b.Env.Heap.InternGenericArguments(arguments)
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind {
		return kind.Generic{Base: base, Arguments: interned}
	})
}

// Recursive exposes the deferred-fill constructor directly for
// self-referential types: build receives the TypeId the result will
// be interned under, before that result exists, so it may embed that
// id inside the kind it returns (e.g. a Tuple whose second element is
// itself).
func (b B) Recursive(build func(self ids.TypeId) kind.TypeKind) ids.TypeId {
	return b.Env.InternKind(build)
}

// Substitution is shorthand for constructing a GenericSubstitution.
func Substitution(arg ids.GenericArgumentId, value ids.TypeId) kind.GenericSubstitution {
	return kind.GenericSubstitution{Argument: arg, Value: value}
}

// Apply returns a deferred substitution carrier over base. The
// substitution sequence is sorted by argument and deduplicated
// (normal-path construction); the lattice engine's join bypasses this
// helper when it needs to retain same-argument, differing-value pairs
// (spec §4.4.a).
func (b B) Apply(base ids.TypeId, substitutions ...kind.GenericSubstitution) ids.TypeId {
	sorted := kind.DedupSubstitutions(kind.SortSubstitutions(substitutions))
	interned := b.Env.Heap.InternGenericSubstitutions(sorted)
	return b.Env.InternKind(func(ids.TypeId) kind.TypeKind {
		return kind.Apply{Base: base, Substitutions: interned}
	})
}
