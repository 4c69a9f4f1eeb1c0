package kind

import (
	"sort"

	"github.com/hashql-lang/core/internal/ids"
)

// CanonicalizeSet deduplicates and sorts a sequence of TypeIds by
// numeric TypeId value (lower-numbered ids were interned earlier; the
// order only needs to be stable and total, not semantically
// meaningful).
func CanonicalizeSet(members []ids.TypeId) []ids.TypeId {
	cp := append([]ids.TypeId(nil), members...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:0]
	for i, id := range cp {
		if i == 0 || id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// SortFields sorts a sequence of StructFields by field name, using
// symbolName to resolve each SymbolId to its comparable text. It does
// not check for duplicate names.
func SortFields(fields []StructField, symbolName func(ids.SymbolId) string) []StructField {
	cp := append([]StructField(nil), fields...)
	sort.Slice(cp, func(i, j int) bool {
		return symbolName(cp[i].Name) < symbolName(cp[j].Name)
	})
	return cp
}

// SortSubstitutions stably sorts a sequence of GenericSubstitutions by
// Argument. It does not deduplicate: callers that want the normal
// (deduped) constructor behavior use DedupSubstitutions first; the
// lattice engine's join, which may legitimately retain same-argument,
// differing-value pairs, sorts without deduping.
func SortSubstitutions(subs []GenericSubstitution) []GenericSubstitution {
	cp := append([]GenericSubstitution(nil), subs...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Argument < cp[j].Argument })
	return cp
}

// DedupSubstitutions removes exact (Argument, Value) duplicates,
// preserving the first occurrence's position. Substitutions should
// already be sorted by Argument when this is called so duplicates are
// adjacent.
func DedupSubstitutions(subs []GenericSubstitution) []GenericSubstitution {
	out := make([]GenericSubstitution, 0, len(subs))
	for i, s := range subs {
		if i > 0 && s == out[len(out)-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FieldNames returns the sorted list of field names, for width
// comparisons between two Structs.
func FieldNames(fields []StructField, symbolName func(ids.SymbolId) string) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = symbolName(f.Name)
	}
	sort.Strings(names)
	return names
}
