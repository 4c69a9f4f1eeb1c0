package lattice

import (
	"testing"

	"github.com/hashql-lang/core/internal/ids"
)

// DistributeUnion on (A|B, C) pushes the union outward into two
// branches: {(A,C), (B,C)}.
func TestDistributeUnionTuple(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)

	tup := b.Tuple(b.Union(b.Integer(), b.String()), b.Boolean())
	branches := DistributeUnion(le, tup)
	if len(branches) != 2 {
		t.Fatalf("DistributeUnion((A|B,C)) = %d branches, want 2", len(branches))
	}
	want := map[ids.TypeId]bool{
		b.Tuple(b.Integer(), b.Boolean()): true,
		b.Tuple(b.String(), b.Boolean()):  true,
	}
	for _, br := range branches {
		if !want[br] {
			t.Errorf("unexpected branch %s", display(e, br))
		}
	}
}

// A type with no internal union structure distributes to itself.
func TestDistributeUnionLeafIsIdentity(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)

	x := b.Integer()
	branches := DistributeUnion(le, x)
	if len(branches) != 1 || branches[0] != x {
		t.Errorf("DistributeUnion(Integer) = %v, want [Integer]", branches)
	}
}

// Distributing over a closure expands both parameter and return
// position independently: fn(A|B) -> (C|D) yields four branches.
func TestDistributeUnionClosureExpandsBothPositions(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)

	fn := b.Closure([]ids.TypeId{b.Union(b.Integer(), b.String())}, b.Union(b.Boolean(), b.Null()))
	branches := DistributeUnion(le, fn)
	if len(branches) != 4 {
		t.Errorf("DistributeUnion(fn(A|B)->(C|D)) = %d branches, want 4", len(branches))
	}
}

// DistributeIntersection is the dual over Intersection.
func TestDistributeIntersectionTuple(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)

	tup := b.Tuple(b.Intersection(b.Integer(), b.Number()), b.Boolean())
	branches := DistributeIntersection(le, tup)
	if len(branches) != 2 {
		t.Fatalf("DistributeIntersection((A&B,C)) = %d branches, want 2", len(branches))
	}
}
