// Package kind implements the closed type-kind algebra: the fixed set
// of type constructors a HashQL type can take, plus the structural
// invariants constructors enforce when built through this package
// (sorted fields, canonicalized union/intersection members, sorted
// Apply substitutions).
//
// Every kind is a small, comparable value type implementing TypeKind
// via an unexported marker method, so external packages can't add new
// variants to the closed sum. Because each concrete kind holds only
// comparable fields (primitive enums, ID newtypes, and heap.Interned
// handles — never raw slices), a TypeKind value can be used directly
// as a Go map key, which is what internal/intern's structural
// interning table relies on.
package kind

// TypeKind is the closed sum of type constructors. The unexported
// marker prevents external packages from adding new variants, mirroring
// the "closed variant set" pattern noted in spec §9 ("prefer a visitor
// or match over dynamic dispatch").
type TypeKind interface {
	typeKind()
}

// Never is the bottom type: a subtype of everything.
type Never struct{}

func (Never) typeKind() {}

// Unknown is the top type: a supertype of everything.
type Unknown struct{}

func (Unknown) typeKind() {}
