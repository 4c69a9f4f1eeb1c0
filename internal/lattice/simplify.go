package lattice

import (
	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/visit"
)

// Simplify rewrites t to its canonical form (spec §4.3, §4.7):
// nested unions/intersections flatten, redundant members drop out via
// subtyping (absorption), single-member unions/intersections collapse
// to their member, T|Unknown=Unknown, T&Never=Never, T|Never=T,
// T&Unknown=T, and a disjoint-primitive intersection collapses to
// Never. Results are memoized per SimplifyEnvironment and guarded
// against cyclic types the same way every other re-entrant operation
// here is.
func Simplify(se *SimplifyEnvironment, t ids.TypeId) ids.TypeId {
	if r, ok := se.memo[t]; ok {
		return r
	}
	key := visit.Single("simplify", uint32(t))
	if se.visits.Enter(key) {
		return t
	}
	result := simplifyKind(se, t)
	se.visits.Exit(key)
	se.memo[t] = result
	return result
}

func simplifyKind(se *SimplifyEnvironment, t ids.TypeId) ids.TypeId {
	switch k := se.Lookup(t).(type) {
	case kind.Never, kind.Unknown, kind.Primitive, kind.Infer, kind.Param:
		return t

	case kind.Tuple:
		elems := k.Elements.Value()
		out := make([]ids.TypeId, len(elems))
		changed := false
		for i, el := range elems {
			s := Simplify(se, el)
			out[i] = s
			if s != el {
				changed = true
			}
			if isNeverId(se, s) {
				return se.never()
			}
		}
		if !changed {
			return t
		}
		return builder.New(se.Environment).Tuple(out...)

	case kind.Struct:
		fields := k.Fields.Value()
		out := make([]kind.StructField, len(fields))
		changed := false
		for i, f := range fields {
			s := Simplify(se, f.Value)
			out[i] = kind.StructField{Name: f.Name, Value: s}
			if s != f.Value {
				changed = true
			}
			if isNeverId(se, s) {
				return se.never()
			}
		}
		if !changed {
			return t
		}
		interned := se.Heap.InternStructFields(out)
		return se.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Struct{Fields: interned} })

	case kind.Closure:
		params := k.Params.Value()
		out := make([]ids.TypeId, len(params))
		changed := false
		for i, p := range params {
			s := Simplify(se, p)
			out[i] = s
			if s != p {
				changed = true
			}
		}
		ret := Simplify(se, k.Return)
		if ret != k.Return {
			changed = true
		}
		if !changed {
			return t
		}
		interned := se.Heap.InternTypeIds(out)
		return se.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Closure{Params: interned, Return: ret} })

	case kind.Generic:
		base := Simplify(se, k.Base)
		if base == k.Base {
			return t
		}
		return se.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Generic{Base: base, Arguments: k.Arguments} })

	case kind.Apply:
		subs := k.Substitutions.Value()
		out := make([]kind.GenericSubstitution, len(subs))
		changed := false
		for i, s := range subs {
			v := Simplify(se, s.Value)
			out[i] = kind.GenericSubstitution{Argument: s.Argument, Value: v}
			if v != s.Value {
				changed = true
			}
		}
		base := Simplify(se, k.Base)
		if base != k.Base {
			changed = true
		}
		if !changed {
			return t
		}
		interned := se.Heap.InternGenericSubstitutions(out)
		return se.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Apply{Base: base, Substitutions: interned} })

	case kind.Union:
		return simplifyUnion(se, k.Variants.Value())

	case kind.Intersection:
		return simplifyIntersection(se, k.Variants.Value())

	default:
		return t
	}
}

func isNeverId(se *SimplifyEnvironment, id ids.TypeId) bool {
	_, ok := se.Lookup(id).(kind.Never)
	return ok
}

func isUnknownId(se *SimplifyEnvironment, id ids.TypeId) bool {
	_, ok := se.Lookup(id).(kind.Unknown)
	return ok
}

// simplifyUnion simplifies every member, flattens nested unions, drops
// Never members (the identity for join), short-circuits to Unknown if
// any member is Unknown (the absorbing element), then drops any member
// that is a subtype of another distinct surviving member.
func simplifyUnion(se *SimplifyEnvironment, members []ids.TypeId) ids.TypeId {
	flat := make([]ids.TypeId, 0, len(members))
	for _, m := range members {
		s := Simplify(se, m)
		if isUnknownId(se, s) {
			return se.unknown()
		}
		if isNeverId(se, s) {
			continue
		}
		if u, ok := se.Lookup(s).(kind.Union); ok {
			flat = append(flat, u.Variants.Value()...)
		} else {
			flat = append(flat, s)
		}
	}
	flat = kind.CanonicalizeSet(flat)
	kept := absorb(se, flat, true)
	switch len(kept) {
	case 0:
		return se.never()
	case 1:
		return kept[0]
	default:
		return builder.New(se.Environment).Union(kept...)
	}
}

// simplifyIntersection is the dual of simplifyUnion: drops Unknown
// members (meet's identity), short-circuits to Never if any member is
// Never or if two surviving members are disjoint primitives, then
// drops any member that is a supertype of another distinct surviving
// member (the narrower one subsumes it).
func simplifyIntersection(se *SimplifyEnvironment, members []ids.TypeId) ids.TypeId {
	flat := make([]ids.TypeId, 0, len(members))
	for _, m := range members {
		s := Simplify(se, m)
		if isNeverId(se, s) {
			return se.never()
		}
		if isUnknownId(se, s) {
			continue
		}
		if in, ok := se.Lookup(s).(kind.Intersection); ok {
			flat = append(flat, in.Variants.Value()...)
		} else {
			flat = append(flat, s)
		}
	}
	flat = kind.CanonicalizeSet(flat)
	for i := 0; i < len(flat); i++ {
		pi, ok := se.Lookup(flat[i]).(kind.Primitive)
		if !ok {
			continue
		}
		for j := i + 1; j < len(flat); j++ {
			pj, ok := se.Lookup(flat[j]).(kind.Primitive)
			if ok && !pi.Kind.SubtypeOf(pj.Kind) && !pj.Kind.SubtypeOf(pi.Kind) {
				return se.never()
			}
		}
	}
	kept := absorb(se, flat, false)
	switch len(kept) {
	case 0:
		return se.unknown()
	case 1:
		return kept[0]
	default:
		return builder.New(se.Environment).Intersection(kept...)
	}
}

// absorb drops dominated members from a canonicalized set: for a
// union (forUnion=true), a member that is a subtype of another
// distinct member is redundant (the wider one already covers it); for
// an intersection, a member that is a supertype of another distinct
// member is redundant (the narrower one already implies it).
func absorb(se *SimplifyEnvironment, members []ids.TypeId, forUnion bool) []ids.TypeId {
	ae := NewAnalysisEnvironment(se.Environment)
	out := make([]ids.TypeId, 0, len(members))
	for i, m := range members {
		dominated := false
		for j, n := range members {
			if i == j {
				continue
			}
			if forUnion {
				if IsSubtypeOf(ae, m, n) && !IsSubtypeOf(ae, n, m) {
					dominated = true
					break
				}
			} else {
				if IsSubtypeOf(ae, n, m) && !IsSubtypeOf(ae, m, n) {
					dominated = true
					break
				}
			}
		}
		if !dominated {
			out = append(out, m)
		}
	}
	return kind.CanonicalizeSet(out)
}

// unknown and never are small helpers so simplify.go doesn't need to
// import builder at every call site just to mint Never/Unknown.
func (se *SimplifyEnvironment) unknown() ids.TypeId { return builder.New(se.Environment).Unknown() }
func (se *SimplifyEnvironment) never() ids.TypeId    { return builder.New(se.Environment).Never() }
