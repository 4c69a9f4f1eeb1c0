package lattice

import (
	"github.com/hashql-lang/core/internal/builder"
	"github.com/hashql-lang/core/internal/ids"
	"github.com/hashql-lang/core/internal/kind"
)

// DistributeUnion reshapes t into the set of union-free branches whose
// union is equivalent to t (spec §4.6): a Union's own members are
// returned directly, and a union nested inside a Tuple/Struct/Closure
// field is pushed outward via Cartesian expansion — e.g. (A|B, C)
// becomes {(A,C), (B,C)}. Kinds with no internal union structure
// distribute to themselves.
func DistributeUnion(le *LatticeEnvironment, t ids.TypeId) []ids.TypeId {
	rt := Resolve(le.Environment, t)
	switch k := le.Lookup(rt).(type) {
	case kind.Union:
		out := make([]ids.TypeId, 0)
		for _, m := range k.Variants.Value() {
			out = append(out, DistributeUnion(le, m)...)
		}
		return kind.CanonicalizeSet(out)

	case kind.Tuple:
		elems := k.Elements.Value()
		choices := make([][]ids.TypeId, len(elems))
		for i, el := range elems {
			choices[i] = DistributeUnion(le, el)
		}
		return cartesianTuples(le, choices)

	case kind.Struct:
		fields := k.Fields.Value()
		choices := make([][]ids.TypeId, len(fields))
		for i, f := range fields {
			choices[i] = DistributeUnion(le, f.Value)
		}
		return cartesianStructs(le, fields, choices)

	case kind.Closure:
		params := k.Params.Value()
		paramChoices := make([][]ids.TypeId, len(params))
		for i, p := range params {
			paramChoices[i] = DistributeUnion(le, p)
		}
		retChoices := DistributeUnion(le, k.Return)
		return cartesianClosures(le, paramChoices, retChoices)

	default:
		return []ids.TypeId{t}
	}
}

// DistributeIntersection is the dual of DistributeUnion over
// Intersection.
func DistributeIntersection(le *LatticeEnvironment, t ids.TypeId) []ids.TypeId {
	rt := Resolve(le.Environment, t)
	switch k := le.Lookup(rt).(type) {
	case kind.Intersection:
		out := make([]ids.TypeId, 0)
		for _, m := range k.Variants.Value() {
			out = append(out, DistributeIntersection(le, m)...)
		}
		return kind.CanonicalizeSet(out)

	case kind.Tuple:
		elems := k.Elements.Value()
		choices := make([][]ids.TypeId, len(elems))
		for i, el := range elems {
			choices[i] = DistributeIntersection(le, el)
		}
		return cartesianTuples(le, choices)

	case kind.Struct:
		fields := k.Fields.Value()
		choices := make([][]ids.TypeId, len(fields))
		for i, f := range fields {
			choices[i] = DistributeIntersection(le, f.Value)
		}
		return cartesianStructs(le, fields, choices)

	case kind.Closure:
		params := k.Params.Value()
		paramChoices := make([][]ids.TypeId, len(params))
		for i, p := range params {
			paramChoices[i] = DistributeIntersection(le, p)
		}
		retChoices := DistributeIntersection(le, k.Return)
		return cartesianClosures(le, paramChoices, retChoices)

	default:
		return []ids.TypeId{t}
	}
}

// cartesianTuples expands per-position branch choices into one Tuple
// per combination. Positions that distributed to a single branch
// (the overwhelmingly common case) contribute no combinatorial
// expansion at all.
func cartesianTuples(le *LatticeEnvironment, choices [][]ids.TypeId) []ids.TypeId {
	combos := cartesian(choices)
	out := make([]ids.TypeId, len(combos))
	for i, combo := range combos {
		out[i] = builder.New(le.Environment).Tuple(combo...)
	}
	return out
}

func cartesianStructs(le *LatticeEnvironment, fields []kind.StructField, choices [][]ids.TypeId) []ids.TypeId {
	combos := cartesian(choices)
	out := make([]ids.TypeId, len(combos))
	for i, combo := range combos {
		built := make([]kind.StructField, len(fields))
		for j, f := range fields {
			built[j] = kind.StructField{Name: f.Name, Value: combo[j]}
		}
		interned := le.Heap.InternStructFields(built)
		out[i] = le.InternKind(func(ids.TypeId) kind.TypeKind { return kind.Struct{Fields: interned} })
	}
	return out
}

func cartesianClosures(le *LatticeEnvironment, paramChoices [][]ids.TypeId, retChoices []ids.TypeId) []ids.TypeId {
	paramCombos := cartesian(paramChoices)
	out := make([]ids.TypeId, 0, len(paramCombos)*len(retChoices))
	for _, params := range paramCombos {
		interned := le.Heap.InternTypeIds(params)
		for _, ret := range retChoices {
			out = append(out, le.InternKind(func(ids.TypeId) kind.TypeKind {
				return kind.Closure{Params: interned, Return: ret}
			}))
		}
	}
	return out
}

// cartesian computes the Cartesian product of choices, each inner
// slice being one position's set of alternatives.
func cartesian(choices [][]ids.TypeId) [][]ids.TypeId {
	result := [][]ids.TypeId{{}}
	for _, options := range choices {
		next := make([][]ids.TypeId, 0, len(result)*len(options))
		for _, prefix := range result {
			for _, opt := range options {
				combo := append(append([]ids.TypeId(nil), prefix...), opt)
				next = append(next, combo)
			}
		}
		result = next
	}
	return result
}
