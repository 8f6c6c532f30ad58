// Package column provides the persistent containers that back the
// table-representation fields of a pattern: Dense for required
// (not-null) columns and Sparse for nullable columns.
//
// Both containers have value semantics: every mutating method returns a
// new container and leaves the receiver untouched, so callers may hold
// on to prior versions. Zero values are empty, ready-to-use containers.
//
// The Golden Rule: pkg/column imports ONLY stdlib.
package column

// Dense is an append-ordered sequence with one slot per existing row.
// The positional index is the row id, so the sequence is gapless by
// construction: values enter through Append and existing positions are
// overwritten through Set.
type Dense[T any] struct {
	vals []T
}

// NewDense returns an empty Dense column.
func NewDense[T any]() Dense[T] {
	return Dense[T]{}
}

// DenseOf builds a Dense column from a slice of values. The slice is
// copied; later mutation of the argument does not affect the column.
func DenseOf[T any](vals []T) Dense[T] {
	if len(vals) == 0 {
		return Dense[T]{}
	}
	cp := make([]T, len(vals))
	copy(cp, vals)
	return Dense[T]{vals: cp}
}

// Len returns the number of populated slots.
func (d Dense[T]) Len() int {
	return len(d.vals)
}

// At returns the value at index i. The second result is false when i is
// out of range.
func (d Dense[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(d.vals) {
		var zero T
		return zero, false
	}
	return d.vals[i], true
}

// Append returns a new column with v added at the tail.
//
// The backing array is always copied rather than extended in place:
// two Appends on the same parent must not alias each other's tails.
func (d Dense[T]) Append(v T) Dense[T] {
	vals := make([]T, len(d.vals)+1)
	copy(vals, d.vals)
	vals[len(d.vals)] = v
	return Dense[T]{vals: vals}
}

// Set returns a new column with index i overwritten by v. The second
// result is false (and the receiver is returned unchanged) when i is
// out of range; Set never grows the sequence.
func (d Dense[T]) Set(i int, v T) (Dense[T], bool) {
	if i < 0 || i >= len(d.vals) {
		return d, false
	}
	vals := make([]T, len(d.vals))
	copy(vals, d.vals)
	vals[i] = v
	return Dense[T]{vals: vals}, true
}

// Values returns a copy of the underlying sequence.
func (d Dense[T]) Values() []T {
	if len(d.vals) == 0 {
		return nil
	}
	cp := make([]T, len(d.vals))
	copy(cp, d.vals)
	return cp
}
