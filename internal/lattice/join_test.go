package lattice

import (
	"testing"

	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// Closure join/meet with contravariant argument, per the spec's
// concrete scenario: A = fn(Number) -> Integer, B = fn(Integer) ->
// Number. join(A,B) = fn(Integer) -> Number, meet(A,B) = fn(Number) ->
// Integer; A <: B but not B <: A.
func TestClosureJoinMeetContravariance(t *testing.T) {
	e, b := newEnv(t)
	a := b.Closure([]ids.TypeId{b.Number()}, b.Integer())
	bb := b.Closure([]ids.TypeId{b.Integer()}, b.Number())

	le := NewLatticeEnvironment(e)
	want := b.Closure([]ids.TypeId{b.Integer()}, b.Number())
	if got := Join(le, a, bb); got != want {
		t.Errorf("join(A,B) = %s, want %s", display(e, got), display(e, want))
	}

	wantMeet := b.Closure([]ids.TypeId{b.Number()}, b.Integer())
	if got := Meet(le, a, bb); got != wantMeet {
		t.Errorf("meet(A,B) = %s, want %s", display(e, got), display(e, wantMeet))
	}

	ae := NewAnalysisEnvironment(e)
	if !IsSubtypeOf(ae, a, bb) {
		t.Errorf("IsSubtypeOf(A,B) = false, want true")
	}
	if IsSubtypeOf(ae, bb, a) {
		t.Errorf("IsSubtypeOf(B,A) = true, want false")
	}
}

// Tuple element variance: (Integer,) <: (Number,); join((Number,),
// (Integer,)) = (Number,); meet((Number,String),(Integer,Boolean))
// collapses to Never via the incompatible String/Boolean element.
func TestTupleElementVariance(t *testing.T) {
	e, b := newEnv(t)
	ae := NewAnalysisEnvironment(e)

	intTuple := b.Tuple(b.Integer())
	numTuple := b.Tuple(b.Number())
	if !IsSubtypeOf(ae, intTuple, numTuple) {
		t.Errorf("(Integer,) should be a subtype of (Number,)")
	}

	le := NewLatticeEnvironment(e)
	if got := Join(le, numTuple, intTuple); got != numTuple {
		t.Errorf("join((Number,),(Integer,)) = %s, want %s", display(e, got), display(e, numTuple))
	}

	lhs := b.Tuple(b.Number(), b.String())
	rhs := b.Tuple(b.Integer(), b.Boolean())
	got := Meet(le, lhs, rhs)
	if got != b.Never() {
		t.Errorf("meet((Number,String),(Integer,Boolean)) = %s, want Never", display(e, got))
	}
}

// Recursive tuples: L = (Integer, L), R = (Number, R). L <: R
// elementwise at every depth, so meet(L,R) should settle on L and
// join(L,R) on R, both terminating via the coinductive visit guard
// rather than diverging.
func TestRecursiveTupleMeetJoinOfRelatedHeads(t *testing.T) {
	e, b := newEnv(t)

	var l, r ids.TypeId
	l = b.Recursive(func(self ids.TypeId) kind.TypeKind {
		return kind.Tuple{Elements: e.Heap.InternTypeIds([]ids.TypeId{b.Integer(), self})}
	})
	r = b.Recursive(func(self ids.TypeId) kind.TypeKind {
		return kind.Tuple{Elements: e.Heap.InternTypeIds([]ids.TypeId{b.Number(), self})}
	})

	ae := NewAnalysisEnvironment(e)
	if !IsSubtypeOf(ae, l, r) {
		t.Errorf("L should be a subtype of R")
	}

	le := NewLatticeEnvironment(e)
	le.Simplify = false
	meet := Meet(le, l, r)
	meetTuple, ok := e.Lookup(meet).(kind.Tuple)
	if !ok {
		t.Fatalf("meet(L,R) = %s, want a Tuple", display(e, meet))
	}
	elems := meetTuple.Elements.Value()
	if elems[0] != b.Integer() {
		t.Errorf("meet(L,R) head element = %s, want Integer", display(e, elems[0]))
	}

	join := Join(le, l, r)
	joinTuple, ok := e.Lookup(join).(kind.Tuple)
	if !ok {
		t.Fatalf("join(L,R) = %s, want a Tuple", display(e, join))
	}
	joinElems := joinTuple.Elements.Value()
	if joinElems[0] != b.Number() {
		t.Errorf("join(L,R) head element = %s, want Number", display(e, joinElems[0]))
	}
}

// Recursive tuples with unrelated heads: L = (Integer, L), R =
// (String, R). join(L,R) should be a tuple of (Integer|String,
// join(L,R)) — a genuinely new recursive type, not a collapse to
// Unknown.
func TestRecursiveTupleJoinOfUnrelatedHeads(t *testing.T) {
	e, b := newEnv(t)

	l := b.Recursive(func(self ids.TypeId) kind.TypeKind {
		return kind.Tuple{Elements: e.Heap.InternTypeIds([]ids.TypeId{b.Integer(), self})}
	})
	r := b.Recursive(func(self ids.TypeId) kind.TypeKind {
		return kind.Tuple{Elements: e.Heap.InternTypeIds([]ids.TypeId{b.String(), self})}
	})

	le := NewLatticeEnvironment(e)
	got := Join(le, l, r)
	tup, ok := e.Lookup(got).(kind.Tuple)
	if !ok {
		t.Fatalf("join(L,R) = %s, want a Tuple", display(e, got))
	}
	elems := tup.Elements.Value()
	head, ok := e.Lookup(elems[0]).(kind.Union)
	if !ok {
		t.Fatalf("join(L,R) head = %s, want a Union of Integer|String", display(e, elems[0]))
	}
	if len(head.Variants.Value()) != 2 {
		t.Errorf("join(L,R) head has %d variants, want 2", len(head.Variants.Value()))
	}
}

// Struct join/meet: field sets must match by name; joining structs
// with disjoint field sets falls back to the incomparable case (a,b
// kept as separate union members) rather than a partial merge.
func TestStructJoinRequiresMatchingFieldSet(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)

	p1 := b.Struct(builder.F("x", b.Integer()), builder.F("y", b.Number()))
	p2 := b.Struct(builder.F("x", b.Number()), builder.F("y", b.Integer()))
	joined := Join(le, p1, p2)
	want := b.Struct(builder.F("x", b.Number()), builder.F("y", b.Number()))
	if joined != want {
		t.Errorf("join(struct,struct) = %s, want %s", display(e, joined), display(e, want))
	}

	p3 := b.Struct(builder.F("z", b.String()))
	joined2 := Join(le, p1, p3)
	if _, ok := e.Lookup(joined2).(kind.Union); !ok {
		t.Errorf("join of structs with disjoint fields should fall back to Union, got %s", display(e, joined2))
	}
}

// Never and Unknown are the bottom and top elements: join(Never, X) =
// X, join(Unknown, X) = Unknown, meet(Never, X) = Never, meet(Unknown,
// X) = X.
func TestNeverUnknownIdentities(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)
	x := b.Integer()

	if got := Join(le, b.Never(), x); got != x {
		t.Errorf("join(Never,X) = %s, want X", display(e, got))
	}
	if got := Join(le, b.Unknown(), x); got != b.Unknown() {
		t.Errorf("join(Unknown,X) = %s, want Unknown", display(e, got))
	}
	if got := Meet(le, b.Never(), x); got != b.Never() {
		t.Errorf("meet(Never,X) = %s, want Never", display(e, got))
	}
	if got := Meet(le, b.Unknown(), x); got != x {
		t.Errorf("meet(Unknown,X) = %s, want X", display(e, got))
	}
}

// Join distributes over Intersection per spec §4.4's dual rule: (A ⊓
// B) ⊔ C = (A ⊔ C) ⊓ (B ⊔ C). join(Intersection{Integer,String},
// Boolean) must come back as a distributed Intersection of joins, not
// a Union of the raw operands — and both original operands must be
// subtypes of it, as any join result has to be.
func TestJoinDistributesOverIntersection(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)
	le.Simplify = false
	ae := NewAnalysisEnvironment(e)

	i := b.Intersection(b.Integer(), b.String())

	for _, got := range []ids.TypeId{Join(le, i, b.Boolean()), Join(le, b.Boolean(), i)} {
		if _, ok := e.Lookup(got).(kind.Intersection); !ok {
			t.Fatalf("join(Intersection{Integer,String}, Boolean) = %s, want a distributed Intersection", display(e, got))
		}
		if !IsSubtypeOf(ae, i, got) {
			t.Errorf("Intersection{Integer,String} should be a subtype of %s", display(e, got))
		}
		if !IsSubtypeOf(ae, b.Boolean(), got) {
			t.Errorf("Boolean should be a subtype of %s", display(e, got))
		}
	}
}

// Join is commutative and idempotent on simple primitives.
func TestJoinCommutativeAndIdempotent(t *testing.T) {
	e, b := newEnv(t)
	le := NewLatticeEnvironment(e)
	x, y := b.Integer(), b.Number()

	if Join(le, x, y) != Join(le, y, x) {
		t.Errorf("join not commutative")
	}
	if Join(le, x, x) != x {
		t.Errorf("join not idempotent: join(X,X) = %s, want X", display(e, Join(le, x, x)))
	}
}
