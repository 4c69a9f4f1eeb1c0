package instantiate

import (
	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// Instantiate returns a fresh copy of t — a Generic, or an Apply
// wrapping one — with every bound GenericArgumentId α-renamed to a
// freshly minted id and every Param reference updated to match (spec
// §4.6). Each call allocates its own InstantiateEnvironment, so two
// Instantiate calls on the same Generic produce independently fresh
// argument ids.
func Instantiate(e *env.Environment, t ids.TypeId) ids.TypeId {
	ie := NewInstantiateEnvironment(e)
	return ie.instantiateRoot(t)
}

func (ie *InstantiateEnvironment) instantiateRoot(t ids.TypeId) ids.TypeId {
	switch x := ie.Lookup(t).(type) {
	case kind.Generic:
		for _, ga := range x.Arguments.Value() {
			ie.rename[ga.Id] = ie.Heap.NewGenericArgument()
		}
		newBase := ie.rewrite(x.Base)
		if newBase == x.Base {
			// Rule 4: nothing under Base actually referenced one of
			// these arguments (the generic was already closed, or
			// only self-forwards through an enclosing Apply
			// unchanged) — instantiation is a no-op, so skip minting
			// a redundant re-wrapped Generic entirely.
			return t
		}
		newArgs := make([]kind.GenericArgument, len(x.Arguments.Value()))
		for i, ga := range x.Arguments.Value() {
			constraint := ga.Constraint
			if constraint.Present {
				constraint = ids.Some(ie.rewrite(constraint.Value))
			}
			newArgs[i] = kind.GenericArgument{Id: ie.rename[ga.Id], Name: ga.Name, Constraint: constraint}
		}
		interned := ie.Heap.InternGenericArguments(newArgs)
		return ie.InternKind(func(ids.TypeId) kind.TypeKind {
			return kind.Generic{Base: newBase, Arguments: interned}
		})

	case kind.Apply:
		if _, ok := ie.Lookup(x.Base).(kind.Generic); ok {
			newBase := ie.instantiateRoot(x.Base)
			subs := x.Substitutions.Value()
			newSubs := make([]kind.GenericSubstitution, len(subs))
			for i, s := range subs {
				arg := s.Argument
				if renamed, ok := ie.rename[s.Argument]; ok {
					arg = renamed
				}
				newSubs[i] = kind.GenericSubstitution{Argument: arg, Value: ie.rewrite(s.Value)}
			}
			interned := ie.Heap.InternGenericSubstitutions(kind.SortSubstitutions(newSubs))
			return ie.InternKind(func(ids.TypeId) kind.TypeKind {
				return kind.Apply{Base: newBase, Substitutions: interned}
			})
		}
		return ie.rewrite(t)

	default:
		// Instantiate is only meaningful on a Generic or an Apply
		// wrapping one; anything else passed in has nothing to rename.
		return t
	}
}

// rewrite is the general memoized recursive copy used both for the
// root's Base and for every nested position. The memo entry for t is
// set up (to the reserved, not-yet-committed id) before rewrite
// descends into t's children, so a self-reference inside a recursive
// type resolves to that in-flight id instead of looping forever (spec
// §4.6 rule 2, using the deferred-fill protocol from §4.1).
func (ie *InstantiateEnvironment) rewrite(t ids.TypeId) ids.TypeId {
	if r, ok := ie.memo[t]; ok {
		return r
	}

	switch x := ie.Lookup(t).(type) {
	case kind.Never, kind.Unknown, kind.Primitive, kind.Infer:
		return t

	case kind.Param:
		renamed, ok := ie.rename[x.Argument]
		if !ok {
			return t
		}
		result := builder.New(ie.Environment).Param(renamed)
		ie.memo[t] = result
		return result

	default:
		reserved := ie.Heap.Reserve()
		ie.memo[t] = reserved
		newKind := ie.rewriteComposite(x)
		committed := ie.Heap.Commit(reserved, newKind)
		ie.memo[t] = committed
		return committed
	}
}

func (ie *InstantiateEnvironment) rewriteComposite(k kind.TypeKind) kind.TypeKind {
	switch x := k.(type) {
	case kind.Tuple:
		elems := x.Elements.Value()
		out := make([]ids.TypeId, len(elems))
		for i, el := range elems {
			out[i] = ie.rewrite(el)
		}
		return kind.Tuple{Elements: ie.Heap.InternTypeIds(out)}

	case kind.Struct:
		fields := x.Fields.Value()
		out := make([]kind.StructField, len(fields))
		for i, f := range fields {
			out[i] = kind.StructField{Name: f.Name, Value: ie.rewrite(f.Value)}
		}
		return kind.Struct{Fields: ie.Heap.InternStructFields(out)}

	case kind.Closure:
		params := x.Params.Value()
		out := make([]ids.TypeId, len(params))
		for i, p := range params {
			out[i] = ie.rewrite(p)
		}
		ret := ie.rewrite(x.Return)
		return kind.Closure{Params: ie.Heap.InternTypeIds(out), Return: ret}

	case kind.Union:
		out := make([]ids.TypeId, len(x.Variants.Value()))
		for i, m := range x.Variants.Value() {
			out[i] = ie.rewrite(m)
		}
		return kind.Union{Variants: ie.Heap.InternTypeIds(kind.CanonicalizeSet(out))}

	case kind.Intersection:
		out := make([]ids.TypeId, len(x.Variants.Value()))
		for i, m := range x.Variants.Value() {
			out[i] = ie.rewrite(m)
		}
		return kind.Intersection{Variants: ie.Heap.InternTypeIds(kind.CanonicalizeSet(out))}

	case kind.Generic:
		// A nested Generic not being instantiated by this call: its
		// own bound arguments keep their ids (only the root call's
		// arguments are renamed), but its Base may still reference one
		// of the outer renamed arguments free, so it must be rewritten
		// too (spec §4.6 rule 1 — "nested generics keep separate
		// tables", which this preserves by simply never renaming a
		// nested Generic's own Arguments).
		return kind.Generic{Base: ie.rewrite(x.Base), Arguments: x.Arguments}

	case kind.Apply:
		subs := x.Substitutions.Value()
		out := make([]kind.GenericSubstitution, len(subs))
		for i, s := range subs {
			arg := s.Argument
			if renamed, ok := ie.rename[s.Argument]; ok {
				arg = renamed
			}
			out[i] = kind.GenericSubstitution{Argument: arg, Value: ie.rewrite(s.Value)}
		}
		return kind.Apply{Base: ie.rewrite(x.Base), Substitutions: ie.Heap.InternGenericSubstitutions(kind.SortSubstitutions(out))}

	default:
		return k
	}
}
