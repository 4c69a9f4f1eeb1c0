package lattice

import (
	"testing"

	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// Reflexivity: every type is a subtype of itself.
func TestSubtypeReflexive(t *testing.T) {
	e, b := newEnv(t)
	ae := NewAnalysisEnvironment(e)

	for _, ty := range []ids.TypeId{
		b.Never(), b.Unknown(), b.Integer(), b.Number(),
		b.Tuple(b.Integer(), b.String()),
		b.Struct(builder.F("x", b.Integer())),
		b.Closure([]ids.TypeId{b.Integer()}, b.Boolean()),
	} {
		if !IsSubtypeOf(ae, ty, ty) {
			t.Errorf("%s should be a subtype of itself", display(e, ty))
		}
	}
}

// Never is the bottom, Unknown the top, for every type.
func TestSubtypeBottomTop(t *testing.T) {
	e, b := newEnv(t)
	ae := NewAnalysisEnvironment(e)

	for _, ty := range []ids.TypeId{b.Integer(), b.String(), b.Tuple(b.Boolean())} {
		if !IsSubtypeOf(ae, b.Never(), ty) {
			t.Errorf("Never should be a subtype of %s", display(e, ty))
		}
		if !IsSubtypeOf(ae, ty, b.Unknown()) {
			t.Errorf("%s should be a subtype of Unknown", display(e, ty))
		}
	}

	if !IsBottom(ae, b.Never()) {
		t.Errorf("IsBottom(Never) = false, want true")
	}
	if IsBottom(ae, b.Integer()) {
		t.Errorf("IsBottom(Integer) = true, want false")
	}
	if !IsTop(ae, b.Unknown()) {
		t.Errorf("IsTop(Unknown) = false, want true")
	}
	if IsTop(ae, b.Integer()) {
		t.Errorf("IsTop(Integer) = true, want false")
	}
}

// Antisymmetry: IsEquivalent holds exactly when both directions of
// IsSubtypeOf hold, and two unions built with their members in
// different orders are equivalent (canonicalization sorts the members,
// so both builds intern to the same id).
func TestSubtypeAntisymmetryAndEquivalence(t *testing.T) {
	e, b := newEnv(t)
	ae := NewAnalysisEnvironment(e)

	u1 := b.Union(b.Integer(), b.String())
	u2 := b.Union(b.String(), b.Integer())
	if !IsEquivalent(ae, u1, u2) {
		t.Errorf("union built in either member order should be equivalent")
	}

	if IsEquivalent(ae, b.Integer(), b.String()) {
		t.Errorf("Integer and String should not be equivalent")
	}
}

// Closure subtyping is contravariant in parameters, covariant in
// return: fn(Number)->Integer <: fn(Integer)->Number, but not the
// reverse.
func TestClosureSubtypeContravariantParams(t *testing.T) {
	e, b := newEnv(t)
	ae := NewAnalysisEnvironment(e)

	a := b.Closure([]ids.TypeId{b.Number()}, b.Integer())
	bb := b.Closure([]ids.TypeId{b.Integer()}, b.Number())

	if !IsSubtypeOf(ae, a, bb) {
		t.Errorf("fn(Number)->Integer should be a subtype of fn(Integer)->Number")
	}
	if IsSubtypeOf(ae, bb, a) {
		t.Errorf("fn(Integer)->Number should not be a subtype of fn(Number)->Integer")
	}
}

// IsConcrete is false exactly when an Infer hole is reachable; Param
// references (bound generic arguments) are concrete.
func TestIsConcrete(t *testing.T) {
	e, b := newEnv(t)
	ae := NewAnalysisEnvironment(e)

	if !IsConcrete(ae, b.Tuple(b.Integer(), b.String())) {
		t.Errorf("a tuple of primitives should be concrete")
	}
	if IsConcrete(ae, b.Tuple(b.Integer(), b.Infer())) {
		t.Errorf("a tuple containing an inference hole should not be concrete")
	}

	arg := b.NewGenericArgument("T", ids.None())
	if !IsConcrete(ae, b.Param(arg.Id)) {
		t.Errorf("a Param reference should be concrete")
	}
}

// IsRecursive holds for a type that transitively re-mentions its own
// TypeId (the L = (Integer, L) shape from spec §8's recursive-tuple
// scenarios) and fails for an ordinary, non-self-referential type
// even when that type shares element structure with a recursive one.
func TestIsRecursive(t *testing.T) {
	e, b := newEnv(t)
	ae := NewAnalysisEnvironment(e)

	l := b.Recursive(func(self ids.TypeId) kind.TypeKind {
		return kind.Tuple{Elements: e.Heap.InternTypeIds([]ids.TypeId{b.Integer(), self})}
	})
	if !IsRecursive(ae, l) {
		t.Errorf("IsRecursive((Integer, self)) = false, want true")
	}

	plain := b.Tuple(b.Integer(), b.String())
	if IsRecursive(ae, plain) {
		t.Errorf("IsRecursive((Integer, String)) = true, want false")
	}
}
