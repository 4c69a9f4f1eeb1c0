package lattice

import (
	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/visit"
)

// Resolve unwraps Apply layers, substituting every bound Param it
// finds, and returns a TypeId whose own kind is never itself an Apply
// (spec §4.4: "Apply/Generic: transparent: unwrap Apply by
// propagating substitutions into the base"). A Generic binder is not
// unwrapped: it is kept, with its Base resolved under the
// substitutions its own Arguments do not shadow. Lattice operations
// call this before dispatching on structural kind, so join/meet/subtype
// never have to special-case a deferred substitution directly except
// for the same-base merge shortcut in §4.4.a, handled separately in
// join.go and meet.go before Resolve is reached.
//
// Cycles (a Param reference that is itself part of the recursive type
// being substituted into) are left unresolved rather than looped
// forever; this is a conservative approximation, not a full
// occurs-check substitution.
func Resolve(e *env.Environment, t ids.TypeId) ids.TypeId {
	return resolveWith(e, t, nil, visit.NewSet())
}

func resolveWith(e *env.Environment, t ids.TypeId, subs map[ids.GenericArgumentId]ids.TypeId, visits *visit.Set) ids.TypeId {
	key := visit.Single("resolve", uint32(t))
	if visits.Enter(key) {
		return t
	}
	defer visits.Exit(key)

	switch k := e.Lookup(t).(type) {
	case kind.Never, kind.Unknown, kind.Primitive, kind.Infer:
		return t

	case kind.Param:
		if v, ok := subs[k.Argument]; ok {
			return resolveWith(e, v, subs, visits)
		}
		return t

	case kind.Tuple:
		elems := k.Elements.Value()
		out := make([]ids.TypeId, len(elems))
		changed := false
		for i, el := range elems {
			r := resolveWith(e, el, subs, visits)
			out[i] = r
			if r != el {
				changed = true
			}
		}
		if !changed {
			return t
		}
		return builder.New(e).Tuple(out...)

	case kind.Struct:
		fields := k.Fields.Value()
		out := make([]kind.StructField, len(fields))
		changed := false
		for i, f := range fields {
			r := resolveWith(e, f.Value, subs, visits)
			out[i] = kind.StructField{Name: f.Name, Value: r}
			if r != f.Value {
				changed = true
			}
		}
		if !changed {
			return t
		}
		interned := e.Heap.InternStructFields(out)
		return e.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Struct{Fields: interned} })

	case kind.Closure:
		params := k.Params.Value()
		out := make([]ids.TypeId, len(params))
		changed := false
		for i, p := range params {
			r := resolveWith(e, p, subs, visits)
			out[i] = r
			if r != p {
				changed = true
			}
		}
		ret := resolveWith(e, k.Return, subs, visits)
		if ret != k.Return {
			changed = true
		}
		if !changed {
			return t
		}
		interned := e.Heap.InternTypeIds(out)
		return e.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Closure{Params: interned, Return: ret} })

	case kind.Union:
		out := resolveSet(e, k.Variants.Value(), subs, visits)
		if out == nil {
			return t
		}
		canon := kind.CanonicalizeSet(out)
		interned := e.Heap.InternTypeIds(canon)
		return e.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Union{Variants: interned} })

	case kind.Intersection:
		out := resolveSet(e, k.Variants.Value(), subs, visits)
		if out == nil {
			return t
		}
		canon := kind.CanonicalizeSet(out)
		interned := e.Heap.InternTypeIds(canon)
		return e.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Intersection{Variants: interned} })

	case kind.Generic:
		filtered := subs
		if len(subs) > 0 {
			args := k.Arguments.Value()
			filtered = make(map[ids.GenericArgumentId]ids.TypeId, len(subs))
			for arg, v := range subs {
				shadowed := false
				for _, ga := range args {
					if ga.Id == arg {
						shadowed = true
						break
					}
				}
				if !shadowed {
					filtered[arg] = v
				}
			}
		}
		newBase := resolveWith(e, k.Base, filtered, visits)
		if newBase == k.Base {
			return t
		}
		return e.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Generic{Base: newBase, Arguments: k.Arguments} })

	case kind.Apply:
		merged := make(map[ids.GenericArgumentId]ids.TypeId, len(subs)+len(k.Substitutions.Value()))
		for arg, v := range subs {
			merged[arg] = v
		}
		for _, s := range k.Substitutions.Value() {
			merged[s.Argument] = resolveWith(e, s.Value, subs, visits)
		}
		return resolveWith(e, k.Base, merged, visits)

	default:
		return t
	}
}

// resolveSet resolves every member of seq, returning nil if nothing
// changed (so the caller can skip rebuilding), or the new slice
// otherwise.
func resolveSet(e *env.Environment, seq []ids.TypeId, subs map[ids.GenericArgumentId]ids.TypeId, visits *visit.Set) []ids.TypeId {
	out := make([]ids.TypeId, len(seq))
	changed := false
	for i, m := range seq {
		r := resolveWith(e, m, subs, visits)
		out[i] = r
		if r != m {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return out
}
