package lattice

import (
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/visit"
)

// IsSubtypeOf reports whether a is a subtype of b (spec §4.5): every
// value of type a can be used wherever a value of type b is expected.
// The check is coinductive on cyclic type graphs (spec §4.8): a
// re-entrant (a, b) pair is assumed to hold rather than recursing
// forever.
func IsSubtypeOf(ae *AnalysisEnvironment, a, b ids.TypeId) bool {
	key := visit.Pair("subtype", uint32(a), uint32(b))
	if ae.visits.Enter(key) {
		return true
	}
	defer ae.visits.Exit(key)

	if a == b {
		return true
	}

	ka, kb := ae.Lookup(a), ae.Lookup(b)

	if uA, ok := ka.(kind.Union); ok {
		for _, m := range uA.Variants.Value() {
			if !IsSubtypeOf(ae, m, b) {
				return false
			}
		}
		return true
	}
	if iB, ok := kb.(kind.Intersection); ok {
		for _, m := range iB.Variants.Value() {
			if !IsSubtypeOf(ae, a, m) {
				return false
			}
		}
		return true
	}
	if uB, ok := kb.(kind.Union); ok {
		for _, m := range uB.Variants.Value() {
			if IsSubtypeOf(ae, a, m) {
				return true
			}
		}
		return false
	}
	if iA, ok := ka.(kind.Intersection); ok {
		for _, m := range iA.Variants.Value() {
			if IsSubtypeOf(ae, m, b) {
				return true
			}
		}
		return false
	}

	ra, rb := Resolve(ae.Environment, a), Resolve(ae.Environment, b)
	if ra != a || rb != b {
		return IsSubtypeOf(ae, ra, rb)
	}

	if _, ok := ka.(kind.Never); ok {
		return true
	}
	if _, ok := kb.(kind.Unknown); ok {
		return true
	}

	switch x := ka.(type) {
	case kind.Primitive:
		y, ok := kb.(kind.Primitive)
		return ok && x.Kind.SubtypeOf(y.Kind)

	case kind.Tuple:
		y, ok := kb.(kind.Tuple)
		if !ok {
			return false
		}
		ea, eb := x.Elements.Value(), y.Elements.Value()
		if len(ea) != len(eb) {
			return false
		}
		for i := range ea {
			if !IsSubtypeOf(ae, ea[i], eb[i]) {
				return false
			}
		}
		return true

	case kind.Struct:
		y, ok := kb.(kind.Struct)
		if !ok {
			return false
		}
		fa, fb := x.Fields.Value(), y.Fields.Value()
		if len(fa) != len(fb) {
			return false
		}
		for _, f := range fa {
			g, ok := findField(fb, f.Name)
			if !ok || !IsSubtypeOf(ae, f.Value, g.Value) {
				return false
			}
		}
		return true

	case kind.Closure:
		y, ok := kb.(kind.Closure)
		if !ok {
			return false
		}
		pa, pb := x.Params.Value(), y.Params.Value()
		if len(pa) != len(pb) {
			return false
		}
		for i := range pa {
			if !IsSubtypeOf(ae, pb[i], pa[i]) {
				return false
			}
		}
		return IsSubtypeOf(ae, x.Return, y.Return)

	case kind.Generic:
		y, ok := kb.(kind.Generic)
		return ok && x.Arguments.Id() == y.Arguments.Id() && IsSubtypeOf(ae, x.Base, y.Base)

	case kind.Param:
		y, ok := kb.(kind.Param)
		return ok && x.Argument == y.Argument

	case kind.Infer:
		y, ok := kb.(kind.Infer)
		return ok && x.Hole == y.Hole

	default:
		return false
	}
}

// IsEquivalent reports whether a and b are mutual subtypes.
func IsEquivalent(ae *AnalysisEnvironment, a, b ids.TypeId) bool {
	return IsSubtypeOf(ae, a, b) && IsSubtypeOf(ae, b, a)
}

// IsBottom reports whether t is (resolves to) Never.
func IsBottom(ae *AnalysisEnvironment, t ids.TypeId) bool {
	_, ok := ae.Lookup(Resolve(ae.Environment, t)).(kind.Never)
	return ok
}

// IsTop reports whether t is (resolves to) Unknown.
func IsTop(ae *AnalysisEnvironment, t ids.TypeId) bool {
	_, ok := ae.Lookup(Resolve(ae.Environment, t)).(kind.Unknown)
	return ok
}

// IsConcrete reports whether t contains no reachable inference
// variable. A Param is concrete (it names a bound generic argument,
// not an unresolved hole); only Infer makes a type non-concrete.
func IsConcrete(ae *AnalysisEnvironment, t ids.TypeId) bool {
	return isConcrete(ae, t, visit.NewSet())
}

// IsRecursive reports whether t transitively contains its own TypeId
// somewhere inside its kind — i.e. whether t is a fixpoint of its own
// defining equation (spec §3 invariant 5, §6 query surface). A type
// that never re-mentions itself through any child is not recursive
// even if it shares structure with other recursive types.
func IsRecursive(ae *AnalysisEnvironment, t ids.TypeId) bool {
	visited := make(map[ids.TypeId]bool)
	for _, child := range children(ae.Environment, t) {
		if reachesSelf(ae.Environment, t, child, visited) {
			return true
		}
	}
	return false
}

func reachesSelf(e *env.Environment, root, cur ids.TypeId, visited map[ids.TypeId]bool) bool {
	if cur == root {
		return true
	}
	if visited[cur] {
		return false
	}
	visited[cur] = true
	for _, child := range children(e, cur) {
		if reachesSelf(e, root, child, visited) {
			return true
		}
	}
	return false
}

// children returns the direct TypeId references a kind holds, for the
// reachability walk IsRecursive performs. Apply/Generic descend into
// both their base and whatever TypeIds their substitution/argument
// metadata carries.
func children(e *env.Environment, t ids.TypeId) []ids.TypeId {
	switch k := e.Lookup(t).(type) {
	case kind.Tuple:
		return append([]ids.TypeId(nil), k.Elements.Value()...)
	case kind.Struct:
		fields := k.Fields.Value()
		out := make([]ids.TypeId, len(fields))
		for i, f := range fields {
			out[i] = f.Value
		}
		return out
	case kind.Closure:
		out := append([]ids.TypeId(nil), k.Params.Value()...)
		return append(out, k.Return)
	case kind.Union:
		return append([]ids.TypeId(nil), k.Variants.Value()...)
	case kind.Intersection:
		return append([]ids.TypeId(nil), k.Variants.Value()...)
	case kind.Generic:
		return []ids.TypeId{k.Base}
	case kind.Apply:
		out := []ids.TypeId{k.Base}
		for _, s := range k.Substitutions.Value() {
			out = append(out, s.Value)
		}
		return out
	default:
		return nil
	}
}

func isConcrete(ae *AnalysisEnvironment, t ids.TypeId, visits *visit.Set) bool {
	key := visit.Single("concrete", uint32(t))
	if visits.Enter(key) {
		return true
	}
	defer visits.Exit(key)

	switch k := ae.Lookup(t).(type) {
	case kind.Never, kind.Unknown, kind.Primitive, kind.Param:
		return true
	case kind.Infer:
		return false
	case kind.Tuple:
		for _, el := range k.Elements.Value() {
			if !isConcrete(ae, el, visits) {
				return false
			}
		}
		return true
	case kind.Struct:
		for _, f := range k.Fields.Value() {
			if !isConcrete(ae, f.Value, visits) {
				return false
			}
		}
		return true
	case kind.Closure:
		for _, p := range k.Params.Value() {
			if !isConcrete(ae, p, visits) {
				return false
			}
		}
		return isConcrete(ae, k.Return, visits)
	case kind.Union:
		for _, m := range k.Variants.Value() {
			if !isConcrete(ae, m, visits) {
				return false
			}
		}
		return true
	case kind.Intersection:
		for _, m := range k.Variants.Value() {
			if !isConcrete(ae, m, visits) {
				return false
			}
		}
		return true
	case kind.Generic:
		return isConcrete(ae, k.Base, visits)
	case kind.Apply:
		for _, s := range k.Substitutions.Value() {
			if !isConcrete(ae, s.Value, visits) {
				return false
			}
		}
		return isConcrete(ae, k.Base, visits)
	default:
		return true
	}
}
