// Package constraint implements the variance-aware constraint
// collector: it traverses two types in lockstep and emits
// bounds/equalities/orderings/dependencies between inference
// variables and generic parameters, without ever deciding
// satisfiability itself — that is left to a solver outside this core.
package constraint

// Variance is the polarity under which a sub-expression's subtyping
// relates to the enclosing expression's subtyping.
type Variance uint8

const (
	// Covariant is the default: a sub-expression's ordering agrees
	// with the enclosing expression's ordering (tuple elements,
	// struct field values, a closure's return type).
	Covariant Variance = iota
	// Contravariant reverses the ordering (closure parameters).
	Contravariant
	// Invariant requires equality rather than an ordering (Apply
	// substitution values compared against another Apply's).
	Invariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	case Invariant:
		return "invariant"
	default:
		return "<unknown variance>"
	}
}

// Flip reverses Covariant/Contravariant; Invariant is a fixed point.
func (v Variance) Flip() Variance {
	switch v {
	case Covariant:
		return Contravariant
	case Contravariant:
		return Covariant
	default:
		return Invariant
	}
}

// enter computes the variance in effect once the traversal descends
// into a child position: positionContravariant flips the incoming
// variance (closure parameters); positionInvariant clears it to
// Invariant regardless of the incoming variance (Apply substitution
// values compared pairwise against another Apply's). Once Invariant,
// variance never recovers — every position nested under an invariant
// one stays invariant.
func enter(v Variance, positionContravariant, positionInvariant bool) Variance {
	if v == Invariant || positionInvariant {
		return Invariant
	}
	if positionContravariant {
		return v.Flip()
	}
	return v
}
