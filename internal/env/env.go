// Package env defines Environment, the shared context every layer of
// the core borrows: a Heap handle, the counters it exposes for
// minting fresh ids, and a pull-based diagnostics sink.
//
// The specialized environments (LatticeEnvironment,
// AnalysisEnvironment, SimplifyEnvironment, InferenceEnvironment,
// InstantiateEnvironment) each wrap an *Environment with the state
// specific to their concern; they live in their owning package
// (lattice, constraint, instantiate) rather than here, so that this
// package depends only on diagnostic, ids, intern and kind, with no
// knowledge of constraints or instantiation.
package env

import (
	"github.com/hashql-lang/core/internal/diagnostic"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/intern"
	"github.com/hashql-lang/core/internal/kind"
)

// Environment is the shared context borrowed by every operation in
// the core. It is single-threaded and cooperatively sequential: all
// operations against one Environment must run on a single goroutine.
// Separate Environments may run in parallel on separate goroutines
// with no shared mutable state.
type Environment struct {
	Heap        *intern.Heap
	Diagnostics diagnostic.Sink
}

// New constructs an empty Environment with its own Heap.
func New() *Environment {
	return &Environment{Heap: intern.New()}
}

// InternKind is a thin passthrough to Heap.InternKind, kept on
// Environment because nearly every pass needs to mint types and
// shouldn't have to reach into .Heap explicitly for the common case.
func (e *Environment) InternKind(build func(ids.TypeId) kind.TypeKind) ids.TypeId {
	return e.Heap.InternKind(build)
}

// Lookup returns the TypeKind a TypeId was interned with.
func (e *Environment) Lookup(id ids.TypeId) kind.TypeKind {
	return e.Heap.Lookup(id)
}

// TakeDiagnostics drains the accumulated diagnostics.
func (e *Environment) TakeDiagnostics() []diagnostic.Diagnostic {
	return e.Diagnostics.Take()
}

// Diagnose appends a diagnostic to the sink.
func (e *Environment) Diagnose(d diagnostic.Diagnostic) {
	e.Diagnostics.Push(d)
}
