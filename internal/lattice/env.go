// Package lattice implements the lattice engine (C5): join, meet,
// distribution, subtype/equivalence checking, and the normalization
// simplifier, per the per-kind decision table in spec §4.4 and the
// fixpoint/coinductive handling of §4.8.
package lattice

import (
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/visit"
)

// LatticeEnvironment executes Join/Meet/DistributeUnion/
// DistributeIntersection. Simplify toggles whether results are passed
// through the normalization simplifier before being returned (spec
// §4.3).
type LatticeEnvironment struct {
	*env.Environment
	Simplify bool
	visits   *visit.Set
}

// NewLatticeEnvironment constructs a LatticeEnvironment with
// simplification enabled by default.
func NewLatticeEnvironment(e *env.Environment) *LatticeEnvironment {
	return &LatticeEnvironment{Environment: e, Simplify: true, visits: visit.NewSet()}
}

// AnalysisEnvironment executes read-only subtype/equivalence/bottom/
// top/concrete checks. It owns the cycle guard used to make
// is_subtype_of and is_equivalent coinductive on recursive types
// (spec §4.3, §4.8).
type AnalysisEnvironment struct {
	*env.Environment
	visits *visit.Set
}

// NewAnalysisEnvironment constructs an AnalysisEnvironment.
func NewAnalysisEnvironment(e *env.Environment) *AnalysisEnvironment {
	return &AnalysisEnvironment{Environment: e, visits: visit.NewSet()}
}

// SimplifyEnvironment is a memoizing rewriter from a TypeId to its
// canonical form (spec §4.3).
type SimplifyEnvironment struct {
	*env.Environment
	memo   map[ids.TypeId]ids.TypeId
	visits *visit.Set
}

// NewSimplifyEnvironment constructs a SimplifyEnvironment.
func NewSimplifyEnvironment(e *env.Environment) *SimplifyEnvironment {
	return &SimplifyEnvironment{Environment: e, memo: make(map[ids.TypeId]ids.TypeId), visits: visit.NewSet()}
}
