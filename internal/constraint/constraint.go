package constraint

import "github.com/hashql-lang/core/internal/ids"

// Constraint is the closed sum of facts the collector records. A
// satisfiability solver outside this core consumes these; the
// collector itself never evaluates them.
type Constraint interface {
	constraint()
}

// LowerBound records variable ⊒ bound.
type LowerBound struct {
	Variable Variable
	Bound    ids.TypeId
}

func (LowerBound) constraint() {}

// UpperBound records variable ⊑ bound.
type UpperBound struct {
	Variable Variable
	Bound    ids.TypeId
}

func (UpperBound) constraint() {}

// Equals records an invariant-position equality between variable and
// a concrete type.
type Equals struct {
	Variable Variable
	Type     ids.TypeId
}

func (Equals) constraint() {}

// Ordering records lower ⊑ upper where both endpoints are themselves
// variables.
type Ordering struct {
	Lower Variable
	Upper Variable
}

func (Ordering) constraint() {}

// Dependency records a structural flow edge from source toward target,
// used by the solver's SCC phase; it carries no polarity information
// of its own — polarity is recorded separately by the solver this core
// does not specify.
type Dependency struct {
	Source Variable
	Target Variable
}

func (Dependency) constraint() {}
