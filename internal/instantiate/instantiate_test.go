package instantiate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

func newEnv(t *testing.T) (*env.Environment, builder.B) {
	t.Helper()
	e := env.New()
	return e, builder.New(e)
}

// Instantiating <T> Tuple(T, T) twice produces two structurally
// distinct Generics whose argument ids differ, even though both
// instantiations are of the same source Generic — freshness per call.
func TestInstantiateProducesFreshArguments(t *testing.T) {
	e, b := newEnv(t)
	arg := b.NewGenericArgument("T", ids.None())
	src := b.Generic(b.Tuple(b.Param(arg.Id), b.Param(arg.Id)), arg)

	r1 := Instantiate(e, src)
	r2 := Instantiate(e, src)

	g1 := e.Lookup(r1).(kind.Generic)
	g2 := e.Lookup(r2).(kind.Generic)
	a1 := g1.Arguments.Value()[0].Id
	a2 := g2.Arguments.Value()[0].Id

	if a1 == a2 {
		t.Errorf("two instantiations of the same Generic should mint distinct argument ids, both got %s", a1)
	}
	if a1 == arg.Id || a2 == arg.Id {
		t.Errorf("instantiation should never reuse the source argument id %s", arg.Id)
	}

	if r1 == src || r2 == src {
		t.Errorf("instantiating a generic that is actually referenced under Base should not be a no-op")
	}
}

// Both Param occurrences inside one instantiation are rewritten to
// the SAME fresh argument id (not two different ones) — the renaming
// table is shared across the whole call.
func TestInstantiateRewritesAllOccurrencesConsistently(t *testing.T) {
	e, b := newEnv(t)
	arg := b.NewGenericArgument("T", ids.None())
	src := b.Generic(b.Tuple(b.Param(arg.Id), b.Param(arg.Id)), arg)

	r := Instantiate(e, src)
	g := e.Lookup(r).(kind.Generic)
	newArg := g.Arguments.Value()[0].Id

	tup := e.Lookup(g.Base).(kind.Tuple)
	elems := tup.Elements.Value()
	p0 := e.Lookup(elems[0]).(kind.Param)
	p1 := e.Lookup(elems[1]).(kind.Param)
	if p0.Argument != newArg || p1.Argument != newArg {
		t.Errorf("both Param occurrences should rewrite to the fresh argument id %s, got %s and %s", newArg, p0.Argument, p1.Argument)
	}
}

// Rule 4: instantiating a Generic whose Base never actually mentions
// its bound argument is a no-op — the same TypeId comes back,
// avoiding a redundant re-wrap.
func TestInstantiateNoOpWhenArgumentUnused(t *testing.T) {
	e, b := newEnv(t)
	arg := b.NewGenericArgument("T", ids.None())
	src := b.Generic(b.Integer(), arg)

	got := Instantiate(e, src)
	if got != src {
		t.Errorf("instantiating an unused-argument Generic should be a no-op, got a new id")
	}
}

// A Generic binding a recursive structural body — <T> R where R =
// Tuple(Param T, R) — instantiates without looping: the reserved,
// not-yet-committed id for the rewritten R is what the inner
// self-reference resolves to, per the deferred-fill protocol, and the
// rewritten Param matches the new Generic's own argument.
func TestInstantiateRecursiveBodyTerminates(t *testing.T) {
	e, b := newEnv(t)
	arg := b.NewGenericArgument("T", ids.None())

	body := b.Recursive(func(self ids.TypeId) kind.TypeKind {
		return kind.Tuple{Elements: e.Heap.InternTypeIds([]ids.TypeId{b.Param(arg.Id), self})}
	})
	src := b.Generic(body, arg)

	result := Instantiate(e, src)

	g := e.Lookup(result).(kind.Generic)
	tup := e.Lookup(g.Base).(kind.Tuple)
	elems := tup.Elements.Value()
	if elems[1] != g.Base {
		t.Errorf("the recursive body's self-reference should resolve to the rewritten body's own id")
	}
	if diff := cmp.Diff(g.Arguments.Value()[0].Id, e.Lookup(elems[0]).(kind.Param).Argument); diff != "" {
		t.Errorf("the rewritten Param should reference the new Generic's own argument id, diff: %s", diff)
	}
	if g.Base == body {
		t.Errorf("instantiation should produce a freshly rewritten body, not reuse the source")
	}
}
