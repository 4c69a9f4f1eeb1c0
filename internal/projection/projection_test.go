package projection

import (
	"testing"

	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/diagnostic"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/lattice"
)

func newLatticeEnv() (*env.Environment, *lattice.LatticeEnvironment) {
	e := env.New()
	return e, lattice.NewLatticeEnvironment(e)
}

func TestProjectStructField(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	s := b.Struct(builder.F("name", b.String()), builder.F("age", b.Integer()))

	p := Project(le, s, "age", diagnostic.Span{})
	if !p.IsResolved() {
		t.Fatalf("expected resolved projection, got error %v", p.Err)
	}
	if p.Resolved != b.Integer() {
		t.Fatalf("projecting age field = %v, want Integer", p.Resolved)
	}
}

func TestProjectStructMissingField(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	s := b.Struct(builder.F("name", b.String()))

	p := Project(le, s, "missing", diagnostic.Span{})
	if p.IsResolved() {
		t.Fatalf("expected error for missing field, got %v", p.Resolved)
	}
	if p.Err.Code != diagnostic.UnsupportedProjection {
		t.Fatalf("Err.Code = %v, want UnsupportedProjection", p.Err.Code)
	}
}

func TestProjectTupleIndex(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	tup := b.Tuple(b.String(), b.Integer(), b.Boolean())

	p := Project(le, tup, "1", diagnostic.Span{})
	if !p.IsResolved() || p.Resolved != b.Integer() {
		t.Fatalf("projecting index 1 = %+v, want Integer", p)
	}
}

func TestProjectTupleIndexOutOfBounds(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	tup := b.Tuple(b.String(), b.Integer())

	p := Project(le, tup, "5", diagnostic.Span{})
	if p.IsResolved() {
		t.Fatalf("expected out-of-bounds error, got %v", p.Resolved)
	}
	if p.Err.Code != diagnostic.TupleIndexOutOfBounds {
		t.Fatalf("Err.Code = %v, want TupleIndexOutOfBounds", p.Err.Code)
	}
}

func TestProjectTupleInvalidIndex(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	tup := b.Tuple(b.String(), b.Integer())

	p := Project(le, tup, "first", diagnostic.Span{})
	if p.IsResolved() {
		t.Fatalf("expected invalid-index error, got %v", p.Resolved)
	}
	if p.Err.Code != diagnostic.InvalidTupleIndex {
		t.Fatalf("Err.Code = %v, want InvalidTupleIndex", p.Err.Code)
	}
}

func TestProjectUnionJoinsBranches(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	sa := b.Struct(builder.F("value", b.Integer()))
	sb := b.Struct(builder.F("value", b.Number()))
	u := b.Union(sa, sb)

	p := Project(le, u, "value", diagnostic.Span{})
	if !p.IsResolved() {
		t.Fatalf("expected resolved union projection, got %v", p.Err)
	}
	if p.Resolved != b.Number() {
		t.Fatalf("joining Integer and Number should widen to Number, got %v", p.Resolved)
	}
}

func TestProjectUnionFailsIfAnyBranchFails(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	sa := b.Struct(builder.F("value", b.Integer()))
	sb := b.Struct(builder.F("other", b.Number()))
	u := b.Union(sa, sb)

	p := Project(le, u, "value", diagnostic.Span{})
	if p.IsResolved() {
		t.Fatalf("expected error since one branch lacks the field, got %v", p.Resolved)
	}
}

func TestProjectIntersectionMeetsSuccessesAndDropsFailures(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	sa := b.Struct(builder.F("value", b.Number()))
	sb := b.Struct(builder.F("other", b.String()))
	i := b.Intersection(sa, sb)

	p := Project(le, i, "value", diagnostic.Span{})
	if !p.IsResolved() {
		t.Fatalf("expected resolved intersection projection, got %v", p.Err)
	}
	if p.Resolved != b.Number() {
		t.Fatalf("Resolved = %v, want Number", p.Resolved)
	}
}

func TestProjectClosureUnsupported(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	clo := b.Closure(nil, b.Boolean())

	p := Project(le, clo, "field", diagnostic.Span{})
	if p.IsResolved() {
		t.Fatalf("expected error, got %v", p.Resolved)
	}
	if p.Err.Code != diagnostic.UnsupportedProjection {
		t.Fatalf("Err.Code = %v, want UnsupportedProjection", p.Err.Code)
	}
}

func TestSubscriptTupleJoinsElements(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	tup := b.Tuple(b.Integer(), b.Number())

	p := Subscript(le, tup, b.Integer(), diagnostic.Span{})
	if !p.IsResolved() {
		t.Fatalf("expected resolved subscript, got %v", p.Err)
	}
	if p.Resolved != b.Number() {
		t.Fatalf("subscripting (Integer, Number) should join to Number, got %v", p.Resolved)
	}
}

func TestSubscriptTupleRejectsNonIntegerIndex(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	tup := b.Tuple(b.Integer(), b.Number())

	p := Subscript(le, tup, b.String(), diagnostic.Span{})
	if p.IsResolved() {
		t.Fatalf("expected error for string index on tuple, got %v", p.Resolved)
	}
	if p.Err.Code != diagnostic.UnsupportedSubscript {
		t.Fatalf("Err.Code = %v, want UnsupportedSubscript", p.Err.Code)
	}
}

func TestSubscriptStructJoinsFieldValues(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	s := b.Struct(builder.F("a", b.Integer()), builder.F("b", b.Number()))

	p := Subscript(le, s, b.String(), diagnostic.Span{})
	if !p.IsResolved() {
		t.Fatalf("expected resolved subscript, got %v", p.Err)
	}
	if p.Resolved != b.Number() {
		t.Fatalf("Resolved = %v, want Number", p.Resolved)
	}
}

func TestSubscriptClosureUnsupported(t *testing.T) {
	e, le := newLatticeEnv()
	b := builder.New(e)
	clo := b.Closure(nil, b.Boolean())

	p := Subscript(le, clo, b.Integer(), diagnostic.Span{})
	if p.IsResolved() {
		t.Fatalf("expected error, got %v", p.Resolved)
	}
	if p.Err.Code != diagnostic.UnsupportedSubscript {
		t.Fatalf("Err.Code = %v, want UnsupportedSubscript", p.Err.Code)
	}
}
