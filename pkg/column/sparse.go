package column

import "sort"

// Sparse is a keyed mapping from row id to value for nullable columns.
// The key domain need not be contiguous; a missing key means "null for
// that row", not "row absent".
type Sparse[T any] struct {
	entries map[uint64]T
}

// NewSparse returns an empty Sparse column.
func NewSparse[T any]() Sparse[T] {
	return Sparse[T]{}
}

// Len returns the number of keys with a value.
func (s Sparse[T]) Len() int {
	return len(s.entries)
}

// Get returns the value stored under key. The second result is false
// when the key has no entry.
func (s Sparse[T]) Get(key uint64) (T, bool) {
	v, ok := s.entries[key]
	return v, ok
}

// Has reports whether key has an entry.
func (s Sparse[T]) Has(key uint64) bool {
	_, ok := s.entries[key]
	return ok
}

// Set returns a new column with key bound to v, creating the entry if
// absent and overwriting it if present.
func (s Sparse[T]) Set(key uint64, v T) Sparse[T] {
	entries := make(map[uint64]T, len(s.entries)+1)
	for k, ev := range s.entries {
		entries[k] = ev
	}
	entries[key] = v
	return Sparse[T]{entries: entries}
}

// Delete returns a new column without an entry for key. Deleting a
// missing key is a no-op that returns the receiver unchanged.
func (s Sparse[T]) Delete(key uint64) Sparse[T] {
	if _, ok := s.entries[key]; !ok {
		return s
	}
	if len(s.entries) == 1 {
		return Sparse[T]{}
	}
	entries := make(map[uint64]T, len(s.entries)-1)
	for k, ev := range s.entries {
		if k != key {
			entries[k] = ev
		}
	}
	return Sparse[T]{entries: entries}
}

// Keys returns the keys with entries in ascending order.
func (s Sparse[T]) Keys() []uint64 {
	if len(s.entries) == 0 {
		return nil
	}
	keys := make([]uint64, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
