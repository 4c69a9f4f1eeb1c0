// Package collections provides Beef[T] (C2), a copy-on-write slice
// tuned for element-wise transforms over interned data, ported from
// the original hashql_core intern/beef.rs: a Beef starts wrapping an
// already-interned slice at zero cost, and only allocates an owned
// copy the moment some element's transform actually changes it. A
// transform that changes nothing never allocates and the Beef stays
// pointer-identical to its source slice.
//
// Go has no Cow/SmallVec/Try in the standard library, so this port
// trades the original's inline small-buffer optimization for a plain
// owned slice, and its Try-generic try_map/try_scan for Go's
// idiomatic (T, error) return convention.
package collections

// Beef is a copy-on-write view over a []T: either still backed by the
// original interned slice (interned==true, in which case source holds
// it) or transitioned to an independently-owned copy (owned).
type Beef[T comparable] struct {
	source   []T
	owned    []T
	interned bool
}

// NewBeef wraps an already-interned slice at zero cost: no copy
// happens until a transform actually changes an element.
func NewBeef[T comparable](source []T) *Beef[T] {
	return &Beef[T]{source: source, interned: true}
}

// Len reports the number of elements.
func (b *Beef[T]) Len() int {
	if b.interned {
		return len(b.source)
	}
	return len(b.owned)
}

// IsEmpty reports whether the slice has no elements.
func (b *Beef[T]) IsEmpty() bool { return b.Len() == 0 }

// AsSlice returns the current elements. While still interned this is
// the original backing slice (never copied); after a transition, it
// is the owned copy.
func (b *Beef[T]) AsSlice() []T {
	if b.interned {
		return b.source
	}
	return b.owned
}

// transition copies the interned source into an owned buffer the
// first time any mutation needs to change an element, and returns that
// buffer. It is a no-op if already owned.
func (b *Beef[T]) transition() []T {
	if !b.interned {
		return b.owned
	}
	owned := append([]T(nil), b.source...)
	b.owned = owned
	b.interned = false
	return owned
}

// Map applies f to every element, transitioning to an owned copy only
// at the first index whose mapped value differs from the original. A
// fully no-op map never allocates (spec §2: Beef's pointer-identity
// guarantee).
func (b *Beef[T]) Map(f func(T) T) {
	if b.interned {
		for i, v := range b.source {
			mapped := f(v)
			if mapped != v {
				owned := append([]T(nil), b.source...)
				owned[i] = mapped
				b.owned = owned
				b.interned = false
				for j := i + 1; j < len(owned); j++ {
					owned[j] = f(owned[j])
				}
				return
			}
		}
		return
	}
	for i, v := range b.owned {
		b.owned[i] = f(v)
	}
}

// TryMap applies f to every element, short-circuiting and returning
// the first error encountered. Elements transformed before the error
// keep their transformed values (matching the original's documented
// behavior of preserving partial progress on failure).
func (b *Beef[T]) TryMap(f func(T) (T, error)) error {
	if b.interned {
		for i, v := range b.source {
			mapped, err := f(v)
			if err != nil {
				return err
			}
			if mapped != v {
				owned := append([]T(nil), b.source...)
				owned[i] = mapped
				b.owned = owned
				b.interned = false
				for j := i + 1; j < len(owned); j++ {
					m, err := f(owned[j])
					if err != nil {
						return err
					}
					owned[j] = m
				}
				return nil
			}
		}
		return nil
	}
	for i, v := range b.owned {
		mapped, err := f(v)
		if err != nil {
			return err
		}
		b.owned[i] = mapped
	}
	return nil
}

// TryScan transforms each element with access to the slice of
// already-transformed elements preceding it (not the original
// values), short-circuiting on the first error. This supports
// context-dependent rebuilds — e.g. building a projection chain where
// each step depends on the accumulated path of earlier, already-
// rewritten steps.
func (b *Beef[T]) TryScan(f func(prefix []T, current T) (T, error)) error {
	if b.interned {
		for i, v := range b.source {
			mapped, err := f(b.source[:i], v)
			if err != nil {
				return err
			}
			if mapped != v {
				owned := append([]T(nil), b.source...)
				owned[i] = mapped
				b.owned = owned
				b.interned = false
				for j := i + 1; j < len(owned); j++ {
					m, err := f(owned[:j], owned[j])
					if err != nil {
						return err
					}
					owned[j] = m
				}
				return nil
			}
		}
		return nil
	}
	for i := range b.owned {
		mapped, err := f(b.owned[:i], b.owned[i])
		if err != nil {
			return err
		}
		b.owned[i] = mapped
	}
	return nil
}

// Finish consumes the Beef, returning its interned form: if no
// mutation ever occurred, the original Interned handle is returned
// unchanged (zero-cost); otherwise the owned copy is (re-)interned via
// intern, which may itself collapse to an existing equal slice.
func Finish[T comparable](b *Beef[T], intern func([]T) []T) []T {
	if b.interned {
		return b.source
	}
	return intern(b.owned)
}
