// Package projection implements field and index resolution against
// structural types (C8): projection(type, field_name) for named
// struct fields and numeric tuple indices, and subscript(type,
// index_type) for the list/dictionary-like kinds produced upstream
// (spec §4.7).
package projection

import (
	"strconv"

	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/diagnostic"
	"github.com/hashql-lang/core/internal/env"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
	"github.com/hashql-lang/core/internal/lattice"
)

// Projection is the outcome of resolving a field access: either
// Resolved to a concrete TypeId, or an Error carrying the diagnostic
// explaining why it could not be.
type Projection struct {
	Resolved ids.TypeId
	Err      *diagnostic.Diagnostic
	ok       bool
}

// IsResolved reports whether the projection succeeded.
func (p Projection) IsResolved() bool { return p.ok }

func resolvedProjection(t ids.TypeId) Projection { return Projection{Resolved: t, ok: true} }

func errorProjection(d diagnostic.Diagnostic) Projection {
	cp := d
	return Projection{Err: &cp}
}

// Project resolves fieldName against t (spec §4.7):
//   - Struct: lookup by name.
//   - Tuple: fieldName must parse as a non-negative integer index,
//     bounds-checked.
//   - Union: project every branch and join the successes; any branch
//     failing fails the whole projection.
//   - Intersection: project every branch and meet the successes,
//     dropping failures (a value of the intersection type need only
//     satisfy one branch that supports the field).
//   - Apply: resolved before dispatch.
//   - Generic: the base is projected and the result rewrapped in the
//     same binder.
//   - Closure/Primitive/Never/Unknown/Infer/Param: unsupported.
func Project(le *lattice.LatticeEnvironment, t ids.TypeId, fieldName string, span diagnostic.Span) Projection {
	rt := lattice.Resolve(le.Environment, t)
	switch k := le.Lookup(rt).(type) {
	case kind.Struct:
		sym := findSymbol(le.Environment, k.Fields.Value(), fieldName)
		if !sym.ok {
			return errorProjection(diagnostic.New(diagnostic.UnsupportedProjection, span,
				"struct has no field %q", fieldName))
		}
		return resolvedProjection(sym.value)

	case kind.Tuple:
		index, err := strconv.Atoi(fieldName)
		if err != nil || index < 0 {
			return errorProjection(diagnostic.New(diagnostic.InvalidTupleIndex, span,
				"%q is not a valid tuple index", fieldName))
		}
		elems := k.Elements.Value()
		if index >= len(elems) {
			return errorProjection(diagnostic.New(diagnostic.TupleIndexOutOfBounds, span,
				"tuple index %d out of bounds (len %d)", index, len(elems)))
		}
		return resolvedProjection(elems[index])

	case kind.Union:
		branches := make([]ids.TypeId, 0, len(k.Variants.Value()))
		for _, m := range k.Variants.Value() {
			p := Project(le, m, fieldName, span)
			if !p.ok {
				return p
			}
			branches = append(branches, p.Resolved)
		}
		return resolvedProjection(joinAll(le, branches))

	case kind.Intersection:
		branches := make([]ids.TypeId, 0, len(k.Variants.Value()))
		for _, m := range k.Variants.Value() {
			p := Project(le, m, fieldName, span)
			if p.ok {
				branches = append(branches, p.Resolved)
			}
		}
		if len(branches) == 0 {
			return errorProjection(diagnostic.New(diagnostic.UnsupportedProjection, span,
				"no intersection branch supports field %q", fieldName))
		}
		return resolvedProjection(meetAll(le, branches))

	case kind.Generic:
		p := Project(le, k.Base, fieldName, span)
		if !p.ok {
			return p
		}
		return resolvedProjection(le.InternKind(func(ids.TypeId) kind.TypeKind {
			return kind.Generic{Base: p.Resolved, Arguments: k.Arguments}
		}))

	default:
		return errorProjection(diagnostic.New(diagnostic.UnsupportedProjection, span,
			"field projection is not supported on this type"))
	}
}

func joinAll(le *lattice.LatticeEnvironment, ts []ids.TypeId) ids.TypeId {
	result := ts[0]
	for _, t := range ts[1:] {
		result = lattice.Join(le, result, t)
	}
	return result
}

func meetAll(le *lattice.LatticeEnvironment, ts []ids.TypeId) ids.TypeId {
	result := ts[0]
	for _, t := range ts[1:] {
		result = lattice.Meet(le, result, t)
	}
	return result
}

// Subscript resolves an index access of type indexType against t
// (spec §4.7's "analogous" companion to Project, restricted to the
// list/dictionary-shaped types that reach the core as Tuples keyed by
// an Integer-compatible index and Structs keyed by a String-compatible
// one — the core itself defines no dedicated List/Dict kind, so these
// are the structural stand-ins a lowering pass produces for them):
//   - Tuple, indexType <: Integer: the index isn't known statically,
//     so the result is the join of every element (sound for any
//     possible index).
//   - Struct, indexType <: String: dictionary-style access by an
//     unknown key; the result is the join of every field's value.
//   - Union: distribute and join the per-branch subscripts; fail if
//     any branch fails.
//   - Intersection: subscript each branch; meet the successes.
//   - Apply: resolved before dispatch.
//   - Generic: the base is subscripted and the result rewrapped in the
//     same binder.
//   - anything else, or an indexType that doesn't fit the kind's
//     expected key type: UnsupportedSubscript.
func Subscript(le *lattice.LatticeEnvironment, t, indexType ids.TypeId, span diagnostic.Span) Projection {
	ae := lattice.NewAnalysisEnvironment(le.Environment)
	rt := lattice.Resolve(le.Environment, t)
	switch k := le.Lookup(rt).(type) {
	case kind.Tuple:
		if !lattice.IsSubtypeOf(ae, indexType, integerType(le.Environment)) {
			return errorProjection(diagnostic.New(diagnostic.UnsupportedSubscript, span,
				"tuple index must be an integer"))
		}
		elems := k.Elements.Value()
		if len(elems) == 0 {
			return errorProjection(diagnostic.New(diagnostic.UnsupportedSubscript, span,
				"cannot subscript an empty tuple"))
		}
		return resolvedProjection(joinAll(le, elems))

	case kind.Struct:
		if !lattice.IsSubtypeOf(ae, indexType, stringType(le.Environment)) {
			return errorProjection(diagnostic.New(diagnostic.UnsupportedSubscript, span,
				"struct index must be a string"))
		}
		fields := k.Fields.Value()
		if len(fields) == 0 {
			return errorProjection(diagnostic.New(diagnostic.UnsupportedSubscript, span,
				"cannot subscript an empty struct"))
		}
		values := make([]ids.TypeId, len(fields))
		for i, f := range fields {
			values[i] = f.Value
		}
		return resolvedProjection(joinAll(le, values))

	case kind.Union:
		branches := make([]ids.TypeId, 0, len(k.Variants.Value()))
		for _, m := range k.Variants.Value() {
			p := Subscript(le, m, indexType, span)
			if !p.ok {
				return p
			}
			branches = append(branches, p.Resolved)
		}
		return resolvedProjection(joinAll(le, branches))

	case kind.Intersection:
		branches := make([]ids.TypeId, 0, len(k.Variants.Value()))
		for _, m := range k.Variants.Value() {
			p := Subscript(le, m, indexType, span)
			if p.ok {
				branches = append(branches, p.Resolved)
			}
		}
		if len(branches) == 0 {
			return errorProjection(diagnostic.New(diagnostic.UnsupportedSubscript, span,
				"no intersection branch supports subscripting"))
		}
		return resolvedProjection(meetAll(le, branches))

	case kind.Generic:
		p := Subscript(le, k.Base, indexType, span)
		if !p.ok {
			return p
		}
		return resolvedProjection(le.InternKind(func(ids.TypeId) kind.TypeKind {
			return kind.Generic{Base: p.Resolved, Arguments: k.Arguments}
		}))

	default:
		return errorProjection(diagnostic.New(diagnostic.UnsupportedSubscript, span,
			"index subscripting is not supported on this type"))
	}
}

func integerType(e *env.Environment) ids.TypeId { return builder.New(e).Integer() }

func stringType(e *env.Environment) ids.TypeId { return builder.New(e).String() }

type symbolLookup struct {
	value ids.TypeId
	ok    bool
}

func findSymbol(e *env.Environment, fields []kind.StructField, name string) symbolLookup {
	for _, f := range fields {
		if e.Heap.SymbolName(f.Name) == name {
			return symbolLookup{value: f.Value, ok: true}
		}
	}
	return symbolLookup{}
}
