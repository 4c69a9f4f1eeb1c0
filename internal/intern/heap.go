// Package intern provides the structural interning tables for type
// kinds, interned slices, and symbols (C1, continuing
// internal/heap's generic arena into the domain-specific tables the
// rest of the core actually calls). This split mirrors the original
// hashql_core layout, where intern/beef.rs sits in its own intern/
// module separate from the bare heap module.
//
// Heap is the single owner of every TypeId/GenericArgumentId/HoleId/
// SymbolId minted for a given compilation; all of them are stable and
// comparable only within the Heap that minted them (spec §5 — no
// shared mutable state crosses Heap/Environment boundaries).
package intern

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/hashql-lang/core/internal/heap"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// Heap owns every interning table and id counter for one environment.
// It must not be shared across goroutines (spec §5).
type Heap struct {
	kinds *heap.Interner[kind.TypeKind, kind.TypeKind]

	typeIDSlices       *heap.Interner[string, []ids.TypeId]
	structFieldSlices  *heap.Interner[string, []kind.StructField]
	genericArgSlices   *heap.Interner[string, []kind.GenericArgument]
	genericSubSlices   *heap.Interner[string, []kind.GenericSubstitution]
	symbols            *heap.Interner[string, string]

	genericArgs ids.Counter[ids.GenericArgumentId]
	holes       ids.Counter[ids.HoleId]
}

// New constructs an empty Heap.
func New() *Heap {
	return &Heap{
		kinds:             heap.NewInterner[kind.TypeKind, kind.TypeKind](),
		typeIDSlices:      heap.NewInterner[string, []ids.TypeId](),
		structFieldSlices: heap.NewInterner[string, []kind.StructField](),
		genericArgSlices:  heap.NewInterner[string, []kind.GenericArgument](),
		genericSubSlices:  heap.NewInterner[string, []kind.GenericSubstitution](),
		symbols:           heap.NewInterner[string, string](),
	}
}

// InternKind is the deferred-fill constructor from spec §4.1: it
// reserves the slot for a new type before invoking build, so build may
// embed the not-yet-assigned TypeId inside the very kind it
// constructs — the mechanism that makes self-referential (recursive)
// types representable at all.
//
// Deduplication happens after build returns, by structural equality of
// the fully-built kind.TypeKind value (one level of unfolding, per
// spec §4.1); two calls that build equal kinds collapse to the same
// TypeId, and cyclic-equal types become pointer-equal this way.
func (h *Heap) InternKind(build func(id ids.TypeId) kind.TypeKind) ids.TypeId {
	interned := heap.DeferredInterner(h.kinds,
		func(v kind.TypeKind) kind.TypeKind { return v },
		func(slot uint32) kind.TypeKind { return build(ids.TypeId(slot)) },
	)
	return ids.TypeId(interned.Id())
}

// Reserve exposes the two-step reserve/commit protocol directly for
// callers (notably internal/instantiate) that must register an
// in-flight TypeId in a memo table before the kind it will hold is
// fully known, then Commit once it is.
func (h *Heap) Reserve() ids.TypeId {
	id, _ := h.kinds.Reserve()
	return ids.TypeId(id)
}

// Commit finalizes a TypeId previously returned by Reserve with its
// real kind, re-indexing it for future structural lookups. If a
// structurally-equal kind was interned via some other path while this
// TypeId was reserved, the earlier TypeId is returned instead.
func (h *Heap) Commit(id ids.TypeId, k kind.TypeKind) ids.TypeId {
	interned := h.kinds.Commit(uint32(id), k, k)
	return ids.TypeId(interned.Id())
}

// Lookup returns the TypeKind a TypeId was interned with.
func (h *Heap) Lookup(id ids.TypeId) kind.TypeKind {
	return *h.kinds.Get(uint32(id))
}

// TypeCount reports how many distinct types have been interned.
func (h *Heap) TypeCount() int { return h.kinds.Len() }

// InternTypeIds interns a sequence of TypeIds, returning a handle that
// is pointer-identical across calls with the same sequence.
func (h *Heap) InternTypeIds(seq []ids.TypeId) heap.Interned[[]ids.TypeId] {
	cp := append([]ids.TypeId(nil), seq...)
	return h.typeIDSlices.Intern(sliceKey(cp), cp)
}

// InternStructFields interns a sequence of StructFields.
func (h *Heap) InternStructFields(seq []kind.StructField) heap.Interned[[]kind.StructField] {
	cp := append([]kind.StructField(nil), seq...)
	return h.structFieldSlices.Intern(sliceKey(cp), cp)
}

// InternGenericArguments interns a sequence of GenericArguments.
func (h *Heap) InternGenericArguments(seq []kind.GenericArgument) heap.Interned[[]kind.GenericArgument] {
	cp := append([]kind.GenericArgument(nil), seq...)
	return h.genericArgSlices.Intern(sliceKey(cp), cp)
}

// InternGenericSubstitutions interns a sequence of GenericSubstitutions.
func (h *Heap) InternGenericSubstitutions(seq []kind.GenericSubstitution) heap.Interned[[]kind.GenericSubstitution] {
	cp := append([]kind.GenericSubstitution(nil), seq...)
	return h.genericSubSlices.Intern(sliceKey(cp), cp)
}

// InternSymbol interns a name, first normalizing it to Unicode NFC so
// that visually identical names encoded differently (e.g. a precomposed
// vs. a combining-mark "café") intern to the same SymbolId. This is an
// ambient-stack addition beyond spec.md's literal text — struct field
// names, module names, and generic argument names all flow through
// this, and AILANG's own dependency on golang.org/x/text gives it a
// natural home here.
func (h *Heap) InternSymbol(name string) ids.SymbolId {
	normalized := norm.NFC.String(name)
	interned := h.symbols.Intern(normalized, normalized)
	return ids.SymbolId(interned.Id())
}

// SymbolName returns the normalized text a SymbolId was interned from.
func (h *Heap) SymbolName(id ids.SymbolId) string {
	return *h.symbols.Get(uint32(id))
}

// NewGenericArgument mints a fresh GenericArgumentId.
func (h *Heap) NewGenericArgument() ids.GenericArgumentId {
	return h.genericArgs.Next()
}

// NewHole mints a fresh HoleId.
func (h *Heap) NewHole() ids.HoleId {
	return h.holes.Next()
}

func sliceKey[T any](seq []T) string {
	return fmt.Sprintf("%+v", seq)
}
