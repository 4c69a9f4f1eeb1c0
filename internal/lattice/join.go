package lattice

import (
	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/visit"
)

// Join computes the least upper bound of a and b: the narrowest type
// both are subtypes of (spec §4.4). The per-kind decision table is
// implemented in joinBranches; Join itself only wraps the resulting
// branch set into a single TypeId (a Union when more than one branch
// survives) and, when le.Simplify is set, runs the result through the
// normalization simplifier.
func Join(le *LatticeEnvironment, a, b ids.TypeId) ids.TypeId {
	branches := joinBranches(le, a, b)
	return finishBranches(le, branches, le.unknown())
}

// unknown and never are small conveniences so Join/Meet don't need a
// builder.B threaded through every call site just to mint the
// fallback for an empty branch set.
func (le *LatticeEnvironment) unknown() ids.TypeId { return builder.New(le.Environment).Unknown() }

func (le *LatticeEnvironment) never() ids.TypeId { return builder.New(le.Environment).Never() }

// finishBranches builds the final type from a non-empty branch set
// (Union over more than one branch, or the branch itself if there is
// exactly one), or falls back to empty when the set is empty — the
// caller supplies what "empty" means (Join passes Unknown, although
// joinBranches always returns at least one branch).
func finishBranches(le *LatticeEnvironment, branches []ids.TypeId, empty ids.TypeId) ids.TypeId {
	var result ids.TypeId
	switch len(branches) {
	case 0:
		result = empty
	case 1:
		result = branches[0]
	default:
		result = builder.New(le.Environment).Union(branches...)
	}
	if le.Simplify {
		se := NewSimplifyEnvironment(le.Environment)
		result = Simplify(se, result)
	}
	return result
}

// joinBranches implements spec §4.4's per-kind join table, returning
// the set of TypeIds whose union is the LUB. The caller (Join) wraps
// a multi-element result in a Union and simplifies.
func joinBranches(le *LatticeEnvironment, a, b ids.TypeId) []ids.TypeId {
	key := visit.Pair("join", uint32(a), uint32(b))
	if le.visits.Enter(key) {
		return []ids.TypeId{a}
	}
	defer le.visits.Exit(key)

	if a == b {
		return []ids.TypeId{a}
	}

	ka, kb := le.Lookup(a), le.Lookup(b)

	if _, ok := ka.(kind.Never); ok {
		return []ids.TypeId{b}
	}
	if _, ok := kb.(kind.Never); ok {
		return []ids.TypeId{a}
	}
	if _, ok := ka.(kind.Unknown); ok {
		return []ids.TypeId{a}
	}
	if _, ok := kb.(kind.Unknown); ok {
		return []ids.TypeId{b}
	}

	if appA, ok := ka.(kind.Apply); ok {
		if appB, ok := kb.(kind.Apply); ok && appA.Base == appB.Base {
			merged := mergeSubstitutions(appA.Substitutions.Value(), appB.Substitutions.Value())
			interned := le.Heap.InternGenericSubstitutions(merged)
			return []ids.TypeId{le.InternKind(func(ids.TypeId) kind.TypeKind {
				return kind.Apply{Base: appA.Base, Substitutions: interned}
			})}
		}
	}

	if uA, ok := ka.(kind.Union); ok {
		return joinWithUnionVariants(le, uA.Variants.Value(), b)
	}
	if uB, ok := kb.(kind.Union); ok {
		return joinWithUnionVariants(le, uB.Variants.Value(), a)
	}

	if iA, ok := ka.(kind.Intersection); ok {
		return []ids.TypeId{joinDistributeIntersection(le, iA.Variants.Value(), b)}
	}
	if iB, ok := kb.(kind.Intersection); ok {
		return []ids.TypeId{joinDistributeIntersection(le, iB.Variants.Value(), a)}
	}

	ra, rb := Resolve(le.Environment, a), Resolve(le.Environment, b)
	if ra != a || rb != b {
		return joinBranches(le, ra, rb)
	}

	switch x := ka.(type) {
	case kind.Primitive:
		y, ok := kb.(kind.Primitive)
		if !ok {
			return []ids.TypeId{a, b}
		}
		if x.Kind.SubtypeOf(y.Kind) {
			return []ids.TypeId{b}
		}
		if y.Kind.SubtypeOf(x.Kind) {
			return []ids.TypeId{a}
		}
		return []ids.TypeId{a, b}

	case kind.Tuple:
		y, ok := kb.(kind.Tuple)
		if !ok {
			return []ids.TypeId{a, b}
		}
		ea, eb := x.Elements.Value(), y.Elements.Value()
		if len(ea) != len(eb) {
			return []ids.TypeId{a, b}
		}
		out := make([]ids.TypeId, len(ea))
		for i := range ea {
			out[i] = Join(le, ea[i], eb[i])
		}
		return []ids.TypeId{builder.New(le.Environment).Tuple(out...)}

	case kind.Struct:
		y, ok := kb.(kind.Struct)
		if !ok {
			return []ids.TypeId{a, b}
		}
		fields, ok := joinStructFields(le, x, y)
		if !ok {
			return []ids.TypeId{a, b}
		}
		return []ids.TypeId{fields}

	case kind.Closure:
		y, ok := kb.(kind.Closure)
		if !ok {
			return []ids.TypeId{a, b}
		}
		pa, pb := x.Params.Value(), y.Params.Value()
		if len(pa) != len(pb) {
			return []ids.TypeId{a, b}
		}
		params := make([]ids.TypeId, len(pa))
		for i := range pa {
			params[i] = Meet(le, pa[i], pb[i])
		}
		ret := Join(le, x.Return, y.Return)
		interned := le.Heap.InternTypeIds(params)
		return []ids.TypeId{le.InternKind(func(ids.TypeId) kind.TypeKind {
			return kind.Closure{Params: interned, Return: ret}
		})}

	case kind.Generic:
		y, ok := kb.(kind.Generic)
		if !ok || x.Arguments.Id() != y.Arguments.Id() {
			return []ids.TypeId{a, b}
		}
		base := Join(le, x.Base, y.Base)
		return []ids.TypeId{le.InternKind(func(ids.TypeId) kind.TypeKind {
			return kind.Generic{Base: base, Arguments: x.Arguments}
		})}

	case kind.Param:
		y, ok := kb.(kind.Param)
		if ok && x.Argument == y.Argument {
			return []ids.TypeId{a}
		}
		return []ids.TypeId{a, b}

	case kind.Infer:
		y, ok := kb.(kind.Infer)
		if ok && x.Hole == y.Hole {
			return []ids.TypeId{a}
		}
		return []ids.TypeId{a, b}

	default:
		return []ids.TypeId{a, b}
	}
}

// joinWithUnionVariants flattens "join(Union{variants}, other)" into
// the member set of variants plus other, since a Union already
// represents the join of its members — folding another operand into
// it is just extending the member set, not re-deriving it (spec
// §4.4's Union rule).
func joinWithUnionVariants(le *LatticeEnvironment, variants []ids.TypeId, other ids.TypeId) []ids.TypeId {
	out := append([]ids.TypeId(nil), variants...)
	out = append(out, other)
	return kind.CanonicalizeSet(out)
}

// joinDistributeIntersection implements spec §4.4's dual Intersection
// join rule: (A ⊓ B) ⊔ C = (A ⊔ C) ⊓ (B ⊔ C). Like
// meetDistributeUnion, this can't fold into the branch set the way
// joinWithUnionVariants does — join's branch set is unioned together
// by finishBranches, so an Intersection operand is distributed into a
// fully-built Intersection and returned as the sole branch.
func joinDistributeIntersection(le *LatticeEnvironment, variants []ids.TypeId, other ids.TypeId) ids.TypeId {
	out := make([]ids.TypeId, len(variants))
	for i, m := range variants {
		out[i] = Join(le, m, other)
	}
	return builder.New(le.Environment).Intersection(out...)
}

// joinStructFields joins two structs sharing the same field-name set,
// field by field, or reports ok=false when the field sets differ
// (structs are width-invariant-by-name, so a field-set mismatch makes
// them incomparable rather than joinable).
func joinStructFields(le *LatticeEnvironment, x, y kind.Struct) (ids.TypeId, bool) {
	fa, fb := x.Fields.Value(), y.Fields.Value()
	if len(fa) != len(fb) {
		return 0, false
	}
	out := make([]kind.StructField, len(fa))
	for i, f := range fa {
		g, ok := findField(fb, f.Name)
		if !ok {
			return 0, false
		}
		out[i] = kind.StructField{Name: f.Name, Value: Join(le, f.Value, g.Value)}
	}
	interned := le.Heap.InternStructFields(out)
	return le.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Struct{Fields: interned} }), true
}

func findField(fields []kind.StructField, name ids.SymbolId) (kind.StructField, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return kind.StructField{}, false
}
