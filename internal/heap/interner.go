package heap

// Interner deduplicates values of type V keyed by a comparable
// projection K, backed by an Arena[V] for stable storage. It is the
// generic engine behind the TypeKind/slice/symbol interning tables in
// internal/intern — this package has no notion of what V or K mean
// domain-wise.
type Interner[K comparable, V any] struct {
	arena Arena[V]
	index map[K]Interned[V]
}

// NewInterner constructs an empty Interner.
func NewInterner[K comparable, V any]() *Interner[K, V] {
	return &Interner[K, V]{index: make(map[K]Interned[V])}
}

// Intern returns the existing Interned[V] for key if one was already
// interned, or allocates a new arena slot for value, indexes it under
// key, and returns that.
func (in *Interner[K, V]) Intern(key K, value V) Interned[V] {
	if existing, ok := in.index[key]; ok {
		return existing
	}
	id, ptr := in.arena.Alloc(value)
	interned := newInterned(id, ptr)
	in.index[key] = interned
	return interned
}

// Lookup returns the Interned[V] previously stored under key, if any.
func (in *Interner[K, V]) Lookup(key K) (Interned[V], bool) {
	v, ok := in.index[key]
	return v, ok
}

// Get returns the value stored at arena slot id.
func (in *Interner[K, V]) Get(id uint32) *V {
	return in.arena.Get(id)
}

// Len reports how many distinct values have been interned.
func (in *Interner[K, V]) Len() int { return in.arena.Len() }

// Reserve allocates an arena slot without indexing it under any key
// yet. It backs the two-step reserve/commit protocol (spec §9): the
// caller may embed the reserved slot's id inside a value under
// construction before that value (and therefore its key) exists.
// The slot is deliberately left out of the dedup index until Commit,
// so no other call can be structurally routed to an incomplete value.
func (in *Interner[K, V]) Reserve() (uint32, *V) {
	return in.arena.Reserve()
}

// Commit finalizes a slot previously returned by Reserve with value,
// indexing it under key. If a structurally-equal value was interned
// by some other path in the meantime, that earlier slot is returned
// instead and the reservation at id is left un-indexed (harmless dead
// arena space) — this is how genuinely cyclic-equal recursive types
// collapse to a single TypeId.
func (in *Interner[K, V]) Commit(id uint32, key K, value V) Interned[V] {
	in.arena.Commit(id, value)
	if existing, ok := in.index[key]; ok && existing.id != id {
		return existing
	}
	interned := newInterned(id, in.arena.Get(id))
	in.index[key] = interned
	return interned
}

// DeferredInterner supports the same reserve-then-commit protocol as
// Reserve/Commit, but computes the dedup key from the finished value
// automatically via keyOf, for the common case (as with TypeKind
// interning) where the key is a pure projection of the value itself.
func DeferredInterner[K comparable, V any](in *Interner[K, V], keyOf func(V) K, fill func(id uint32) V) Interned[V] {
	id, _ := in.Reserve()
	value := fill(id)
	return in.Commit(id, keyOf(value), value)
}
