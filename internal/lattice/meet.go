package lattice

import (
	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/visit"
)

// Meet computes the greatest lower bound of a and b: the widest type
// that is a subtype of both (spec §4.4), dual to Join.
func Meet(le *LatticeEnvironment, a, b ids.TypeId) ids.TypeId {
	branches := meetBranches(le, a, b)
	return finishMeetBranches(le, branches)
}

func finishMeetBranches(le *LatticeEnvironment, branches []ids.TypeId) ids.TypeId {
	var result ids.TypeId
	switch len(branches) {
	case 0:
		result = le.never()
	case 1:
		result = branches[0]
	default:
		result = builder.New(le.Environment).Intersection(branches...)
	}
	if le.Simplify {
		se := NewSimplifyEnvironment(le.Environment)
		result = Simplify(se, result)
	}
	return result
}

// meetBranches implements spec §4.4's per-kind meet table. An empty
// result means "no common subtype" (Never); finishMeetBranches turns
// that into the Never type directly rather than an empty Intersection
// (an Intersection of zero members would otherwise read as vacuously
// Unknown, the wrong identity for meet).
func meetBranches(le *LatticeEnvironment, a, b ids.TypeId) []ids.TypeId {
	key := visit.Pair("meet", uint32(a), uint32(b))
	if le.visits.Enter(key) {
		return []ids.TypeId{a}
	}
	defer le.visits.Exit(key)

	if a == b {
		return []ids.TypeId{a}
	}

	ka, kb := le.Lookup(a), le.Lookup(b)

	if _, ok := ka.(kind.Never); ok {
		return []ids.TypeId{a}
	}
	if _, ok := kb.(kind.Never); ok {
		return []ids.TypeId{b}
	}
	if _, ok := ka.(kind.Unknown); ok {
		return []ids.TypeId{b}
	}
	if _, ok := kb.(kind.Unknown); ok {
		return []ids.TypeId{a}
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

	if iA, ok := ka.(kind.Intersection); ok {
		return meetWithIntersectionVariants(iA.Variants.Value(), b)
	}
	if iB, ok := kb.(kind.Intersection); ok {
		return meetWithIntersectionVariants(iB.Variants.Value(), a)
	}

	if uA, ok := ka.(kind.Union); ok {
		return []ids.TypeId{meetDistributeUnion(le, uA.Variants.Value(), b)}
	}
	if uB, ok := kb.(kind.Union); ok {
		return []ids.TypeId{meetDistributeUnion(le, uB.Variants.Value(), a)}
	}

	ra, rb := Resolve(le.Environment, a), Resolve(le.Environment, b)
	if ra != a || rb != b {
		return meetBranches(le, ra, rb)
	}

	switch x := ka.(type) {
	case kind.Primitive:
		y, ok := kb.(kind.Primitive)
		if !ok {
			return nil
		}
		if x.Kind.SubtypeOf(y.Kind) {
			return []ids.TypeId{a}
		}
		if y.Kind.SubtypeOf(x.Kind) {
			return []ids.TypeId{b}
		}
		return nil

	case kind.Tuple:
		y, ok := kb.(kind.Tuple)
		if !ok {
			return nil
		}
		ea, eb := x.Elements.Value(), y.Elements.Value()
		if len(ea) != len(eb) {
			return nil
		}
		out := make([]ids.TypeId, len(ea))
		for i := range ea {
			out[i] = Meet(le, ea[i], eb[i])
		}
		return []ids.TypeId{builder.New(le.Environment).Tuple(out...)}

	case kind.Struct:
		y, ok := kb.(kind.Struct)
		if !ok {
			return nil
		}
		fields, ok := meetStructFields(le, x, y)
		if !ok {
			return nil
		}
		return []ids.TypeId{fields}

	case kind.Closure:
		y, ok := kb.(kind.Closure)
		if !ok {
			return nil
		}
		pa, pb := x.Params.Value(), y.Params.Value()
		if len(pa) != len(pb) {
			return nil
		}
		params := make([]ids.TypeId, len(pa))
		for i := range pa {
			params[i] = Join(le, pa[i], pb[i])
		}
		ret := Meet(le, x.Return, y.Return)
		interned := le.Heap.InternTypeIds(params)
		return []ids.TypeId{le.InternKind(func(ids.TypeId) kind.TypeKind {
			return kind.Closure{Params: interned, Return: ret}
		})}

	case kind.Generic:
		y, ok := kb.(kind.Generic)
		if !ok || x.Arguments.Id() != y.Arguments.Id() {
			return nil
		}
		base := Meet(le, x.Base, y.Base)
		return []ids.TypeId{le.InternKind(func(ids.TypeId) kind.TypeKind {
			return kind.Generic{Base: base, Arguments: x.Arguments}
		})}

	case kind.Param:
		y, ok := kb.(kind.Param)
		if ok && x.Argument == y.Argument {
			return []ids.TypeId{a}
		}
		return nil

	case kind.Infer:
		y, ok := kb.(kind.Infer)
		if ok && x.Hole == y.Hole {
			return []ids.TypeId{a}
		}
		return nil

	default:
		return nil
	}
}

// meetWithIntersectionVariants flattens "meet(Intersection{variants},
// other)" into the member set of variants plus other, dual to
// joinWithUnionVariants.
func meetWithIntersectionVariants(variants []ids.TypeId, other ids.TypeId) []ids.TypeId {
	out := append([]ids.TypeId(nil), variants...)
	out = append(out, other)
	return kind.CanonicalizeSet(out)
}

// meetDistributeUnion implements spec §4.4's Union meet rule:
// (A ∪ B) ⊓ C = (A ⊓ C) ∪ (B ⊓ C). Unlike the Intersection-flatten
// case above, a Union operand can't simply be folded into the branch
// set — meet's branch set is intersected together by
// finishMeetBranches, so distributing here instead builds the
// resulting Union directly and returns it as the sole branch.
func meetDistributeUnion(le *LatticeEnvironment, variants []ids.TypeId, other ids.TypeId) ids.TypeId {
	out := make([]ids.TypeId, len(variants))
	for i, m := range variants {
		out[i] = Meet(le, m, other)
	}
	return builder.New(le.Environment).Union(out...)
}

func meetStructFields(le *LatticeEnvironment, x, y kind.Struct) (ids.TypeId, bool) {
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
		out[i] = kind.StructField{Name: f.Name, Value: Meet(le, f.Value, g.Value)}
	}
	interned := le.Heap.InternStructFields(out)
	return le.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Struct{Fields: interned} }), true
}
