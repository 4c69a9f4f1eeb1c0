// Package ids defines the compact integer identifiers addressed
// throughout the type lattice core. Every entity minted by an
// Environment — types, generic parameters, inference holes, interned
// symbols — is identified by one of these, never by a pointer, so
// that identifiers stay stable, comparable, and cheap to use as map
// keys or constraint payloads.
package ids

import "fmt"

// TypeId addresses a structurally-interned TypeKind. Two TypeIds
// compare equal iff the heap interned them to the same slot; this is
// the "pointer-equal iff structurally equal at the outermost layer"
// guarantee the interner provides.
type TypeId uint32

func (id TypeId) String() string { return fmt.Sprintf("#%d", uint32(id)) }

// GenericArgumentId addresses a bound generic parameter introduced by
// a Generic binder.
type GenericArgumentId uint32

func (id GenericArgumentId) String() string { return fmt.Sprintf("arg%d", uint32(id)) }

// HoleId addresses an inference variable awaiting solving.
type HoleId uint32

func (id HoleId) String() string { return fmt.Sprintf("?%d", uint32(id)) }

// SymbolId addresses an interned string (field names, module names,
// generic argument names).
type SymbolId uint32

func (id SymbolId) String() string { return fmt.Sprintf("sym%d", uint32(id)) }

// OptionalTypeId models an optional TypeId (e.g. a GenericArgument's
// constraint) without resorting to a pointer, keeping every kind
// struct comparable so it can be used directly as an interning key.
type OptionalTypeId struct {
	Value   TypeId
	Present bool
}

// None is the absent OptionalTypeId.
func None() OptionalTypeId { return OptionalTypeId{} }

// Some wraps a present TypeId.
func Some(id TypeId) OptionalTypeId { return OptionalTypeId{Value: id, Present: true} }

// Counter mints sequential, process-local identifiers of type T. It is
// not safe for concurrent use across goroutines without external
// synchronization — each Environment (and its Heap) is single-threaded
// and cooperatively sequential; separate environments never share a
// Counter.
type Counter[T ~uint32] struct {
	next uint32
}

// Next mints and returns the next identifier.
func (c *Counter[T]) Next() T {
	id := c.next
	c.next++
	return T(id)
}

// Peek returns the identifier that the next call to Next will return,
// without minting it. Useful for deferred-fill interning where the
// slot's id must be known before the slot is populated.
func (c *Counter[T]) Peek() T {
	return T(c.next)
}
