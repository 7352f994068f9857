package proprecurse

import (
	"fmt"
	"reflect"

	"github.com/benbjohnson/immutable"
	"github.com/leanovate/gopter"
)

// Builder constructs a generator for one type, using the given set to
// request generators for the types it depends on (including its own).
type Builder func(*StrategySet) gopter.Gen

// entry is a type-tagged generator handle. The recorded type is checked on
// every retrieval; a mismatch means the set's type-safety invariant broke.
type entry struct {
	typ reflect.Type
	gen gopter.Gen
}

// typeHasher hashes reflect.Type keys by identity. The runtime interns
// types, so the interface data pointer is unique per type and stable for
// the life of the process.
type typeHasher struct{}

// Hash implements immutable.Hasher.
func (typeHasher) Hash(t reflect.Type) uint32 {
	h := uint64(reflect.ValueOf(t).Pointer())
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return uint32(h)
}

// Equal implements immutable.Hasher.
func (typeHasher) Equal(a, b reflect.Type) bool {
	return a == b
}

// StrategySet is a collection of generators for types that depend on each
// other, indexed by type. Entries are memoized: a type's builder runs at
// most once per set, and later requests return the stored generator.
//
// The backing map is persistent, so Clone shares structure in O(1) while
// the copies stay logically independent: inserting into one never changes
// what the other sees.
//
// The zero value is an empty set ready for use. A single handle is not
// safe for concurrent use; clone it instead.
type StrategySet struct {
	entries *immutable.Map[reflect.Type, *entry]
}

// NewStrategySet creates an empty set.
func NewStrategySet() *StrategySet {
	return &StrategySet{entries: emptyEntries()}
}

func emptyEntries() *immutable.Map[reflect.Type, *entry] {
	return immutable.NewMap[reflect.Type, *entry](typeHasher{})
}

// m returns the backing map, treating a zero-value set as empty.
func (s *StrategySet) m() *immutable.Map[reflect.Type, *entry] {
	if s.entries == nil {
		return emptyEntries()
	}
	return s.entries
}

// Clone returns an independent copy of the set. The copy shares structure
// with the original, so this is cheap regardless of size.
func (s *StrategySet) Clone() *StrategySet {
	return &StrategySet{entries: s.m()}
}

// Len returns the number of stored generators.
func (s *StrategySet) Len() int {
	return s.m().Len()
}

// HasType returns true if a generator is stored for the given type.
func (s *StrategySet) HasType(t reflect.Type) bool {
	_, ok := s.m().Get(t)
	return ok
}

// Types returns the types with stored generators.
// The order is not guaranteed.
func (s *StrategySet) Types() []reflect.Type {
	types := make([]reflect.Type, 0, s.Len())
	itr := s.m().Iterator()
	for !itr.Done() {
		t, _, _ := itr.Next()
		types = append(types, t)
	}
	return types
}

// lookup returns the generator stored for key, if any.
//
// Panics if the stored entry is tagged with a different type. That cannot
// happen through the public API and indicates internal corruption, so it
// aborts rather than handing back a generator for the wrong type.
func (s *StrategySet) lookup(key reflect.Type) (gopter.Gen, bool) {
	e, ok := s.m().Get(key)
	if !ok {
		return nil, false
	}
	if e.typ != key {
		panic(fmt.Sprintf("proprecurse: entry for %v holds a generator for %v", key, e.typ))
	}
	return e.gen, true
}

// insert stores a generator under key, replacing any previous entry.
// The handle now points at a new map version; prior clones are unaffected.
func (s *StrategySet) insert(key reflect.Type, g gopter.Gen) {
	s.entries = s.m().Set(key, &entry{typ: key, gen: g})
}

// typeKey returns the set key for T.
func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Get returns the generator for T from set, building it with build on the
// first request and memoizing it for later ones. A single Get call invokes
// build at most once; repeated calls for the same type never re-invoke it.
//
// build receives a clone of the set, so it cannot observe its own
// not-yet-inserted entry; whatever it adds to that clone is discarded. The
// built generator is stored in set itself, mutating the caller's handle.
func Get[T any](set *StrategySet, build Builder) gopter.Gen {
	key := typeKey[T]()
	if g, ok := set.lookup(key); ok {
		return g
	}
	g := build(set.Clone())
	set.insert(key, g)
	return g
}
