package constraint

import (
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/lattice"
	"github.com/hashql-lang/core/internal/visit"
)

// CollectConstraints traverses lhs and rhs in lockstep under variance,
// pushing the bounds, equalities, and orderings it discovers into ie's
// buffer. It never raises a diagnostic and never decides
// satisfiability: a
// structural mismatch (differing arity, missing struct field) simply
// stops that branch of the traversal without emitting anything for
// it, leaving detection to lattice.IsSubtypeOf.
func CollectConstraints(ie *InferenceEnvironment, v Variance, lhs, rhs ids.TypeId) {
	collect(ie, v, lhs, rhs)
}

func collect(ie *InferenceEnvironment, v Variance, lhs, rhs ids.TypeId) {
	key := visit.Pair("collect-constraints", uint32(lhs), uint32(rhs))
	if ie.visits.Enter(key) {
		return
	}
	defer ie.visits.Exit(key)

	if lhs == rhs {
		return
	}

	kl, kr := ie.Lookup(lhs), ie.Lookup(rhs)
	varL, isVarL := variableOf(kl)
	varR, isVarR := variableOf(kr)

	switch {
	case isVarL && isVarR:
		switch v {
		case Covariant:
			ie.push(Ordering{Lower: varL, Upper: varR})
		case Contravariant:
			ie.push(Ordering{Lower: varR, Upper: varL})
		default:
			ie.push(Equals{Variable: varL, Type: rhs})
			ie.push(Equals{Variable: varR, Type: lhs})
		}
		ie.push(Dependency{Source: varL, Target: varR})
		return

	case isVarL:
		switch v {
		case Covariant:
			ie.push(UpperBound{Variable: varL, Bound: rhs})
		case Contravariant:
			ie.push(LowerBound{Variable: varL, Bound: rhs})
		default:
			ie.push(Equals{Variable: varL, Type: rhs})
		}
		return

	case isVarR:
		switch v {
		case Covariant:
			ie.push(LowerBound{Variable: varR, Bound: lhs})
		case Contravariant:
			ie.push(UpperBound{Variable: varR, Bound: lhs})
		default:
			ie.push(Equals{Variable: varR, Type: lhs})
		}
		return
	}

	// Both sides are same-base Applys: recurse pairwise over shared
	// arguments at invariant variance (substitution values are an
	// invariant position), plus the base itself (trivially equal when
	// the bases already match).
	if appL, ok := kl.(kind.Apply); ok {
		if appR, ok := kr.(kind.Apply); ok && appL.Base == appR.Base {
			collectApplySubstitutions(ie, appL.Substitutions.Value(), appR.Substitutions.Value())
			return
		}
	}

	rl, rr := lattice.Resolve(ie.Environment, lhs), lattice.Resolve(ie.Environment, rhs)
	if rl != lhs || rr != rhs {
		collect(ie, v, rl, rr)
		return
	}

	switch x := kl.(type) {
	case kind.Tuple:
		y, ok := kr.(kind.Tuple)
		if !ok {
			return
		}
		ea, eb := x.Elements.Value(), y.Elements.Value()
		if len(ea) != len(eb) {
			return
		}
		for i := range ea {
			collect(ie, enter(v, false, false), ea[i], eb[i])
		}

	case kind.Struct:
		y, ok := kr.(kind.Struct)
		if !ok {
			return
		}
		for _, f := range x.Fields.Value() {
			g, ok := findField(y.Fields.Value(), f.Name)
			if !ok {
				continue
			}
			collect(ie, enter(v, false, false), f.Value, g.Value)
		}

	case kind.Closure:
		y, ok := kr.(kind.Closure)
		if !ok {
			return
		}
		pa, pb := x.Params.Value(), y.Params.Value()
		if len(pa) != len(pb) {
			return
		}
		for i := range pa {
			collect(ie, enter(v, true, false), pa[i], pb[i])
		}
		collect(ie, enter(v, false, false), x.Return, y.Return)

	case kind.Union:
		for _, m := range x.Variants.Value() {
			collect(ie, v, m, rhs)
		}

	case kind.Intersection:
		for _, m := range x.Variants.Value() {
			collect(ie, v, m, rhs)
		}

	case kind.Generic:
		y, ok := kr.(kind.Generic)
		if !ok || x.Arguments.Id() != y.Arguments.Id() {
			return
		}
		collect(ie, v, x.Base, y.Base)
	}
}

// collectApplySubstitutions emits invariant-variance constraints
// between two Apply carriers' substitution values for every argument
// they share.
func collectApplySubstitutions(ie *InferenceEnvironment, a, b []kind.GenericSubstitution) {
	for _, sa := range a {
		for _, sb := range b {
			if sa.Argument == sb.Argument {
				collect(ie, Invariant, sa.Value, sb.Value)
			}
		}
	}
}

func findField(fields []kind.StructField, name ids.SymbolId) (kind.StructField, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return kind.StructField{}, false
}
