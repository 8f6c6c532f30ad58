package record

import "github.com/leapstack-labs/tabula/pkg/column"

// tableColumn is one field's storage inside a Table value: a dense
// sequence for not-null fields, a sparse mapping for nullable ones.
type tableColumn interface {
	length() int
}

type denseColumn struct{ seq column.Dense[any] }

func (c denseColumn) length() int { return c.seq.Len() }

type sparseColumn struct{ m column.Sparse[any] }

func (c sparseColumn) length() int { return c.m.Len() }

// cell is one field's slot inside a Row value. present is false only
// for a nullable field holding no value.
type cell struct {
	value   any
	present bool
}

// leafRules is a single field's behavior for the four generic
// operations. The whole-table operations in table.go are folds over the
// pattern's field list that apply the matching rule per field and
// recombine the results; each rule touches only its own container, so
// the fold is order-independent.
type leafRules interface {
	// empty returns the field's container for a table with no rows.
	empty() tableColumn
	// lookup reads the field's cell for id. The second result is the
	// leaf's contribution to the whole-row combination law: false makes
	// the whole Lookup absent.
	lookup(c tableColumn, id RowID) (cell, bool)
	// insert writes the row's cell for id into the container.
	insert(c tableColumn, id RowID, v cell) tableColumn
	// update applies one partial-mutation action for id.
	update(c tableColumn, id RowID, a Action) (tableColumn, error)
}

// leafFor is the runtime arm of the column type selector: it resolves a
// nullability tag to the field's leaf rules, and thereby its container
// shape. ColumnGoType is the compile-time arm used by the code
// generator.
func leafFor(n Nullability) leafRules {
	if n == Nullable {
		return nullableLeaf{}
	}
	return notNullLeaf{}
}

type notNullLeaf struct{}

func (notNullLeaf) empty() tableColumn {
	return denseColumn{seq: column.NewDense[any]()}
}

func (notNullLeaf) lookup(c tableColumn, id RowID) (cell, bool) {
	if id > RowID(maxInt) {
		return cell{}, false
	}
	v, ok := c.(denseColumn).seq.At(int(id))
	if !ok {
		return cell{}, false
	}
	return cell{value: v, present: true}, true
}

func (notNullLeaf) insert(c tableColumn, _ RowID, v cell) tableColumn {
	// The value goes to the next free position; the id matching that
	// position is the row-id authority's contract, not validated here.
	return denseColumn{seq: c.(denseColumn).seq.Append(v.value)}
}

func (notNullLeaf) update(c tableColumn, id RowID, a Action) (tableColumn, error) {
	seq := c.(denseColumn).seq
	if id >= RowID(seq.Len()) {
		return nil, ErrOutOfRange
	}
	switch a.kind {
	case actionKeep:
		return c, nil
	case actionSet:
		updated, _ := seq.Set(int(id), a.value)
		return denseColumn{seq: updated}, nil
	default:
		// Unset actions are rejected for not-null fields when the
		// update is built; this is unreachable through the builder.
		return nil, ErrNotNullUnset
	}
}

type nullableLeaf struct{}

func (nullableLeaf) empty() tableColumn {
	return sparseColumn{m: column.NewSparse[any]()}
}

func (nullableLeaf) lookup(c tableColumn, id RowID) (cell, bool) {
	// A missing key is a present "no value", never whole-row absence.
	v, ok := c.(sparseColumn).m.Get(uint64(id))
	if !ok {
		return cell{}, true
	}
	return cell{value: v, present: true}, true
}

func (nullableLeaf) insert(c tableColumn, id RowID, v cell) tableColumn {
	if !v.present {
		return c
	}
	return sparseColumn{m: c.(sparseColumn).m.Set(uint64(id), v.value)}
}

func (nullableLeaf) update(c tableColumn, id RowID, a Action) (tableColumn, error) {
	m := c.(sparseColumn).m
	switch a.kind {
	case actionKeep:
		return c, nil
	case actionSet:
		return sparseColumn{m: m.Set(uint64(id), a.value)}, nil
	case actionUnset:
		return sparseColumn{m: m.Delete(uint64(id))}, nil
	default:
		return c, nil
	}
}

// maxInt guards the RowID-to-slice-index conversion on 32-bit builds.
const maxInt = int(^uint(0) >> 1)

// ColumnGoType is the compile-time arm of the column type selector: it
// maps (representation, nullability, base type) to the concrete Go type
// the code generator emits for a field. The mapping covers all six
// representation/nullability combinations:
//
//	table  × not null  → column.Dense[T]
//	table  × nullable  → column.Sparse[T]
//	row    × not null  → T
//	row    × nullable  → *T (nil means absent)
//	update × not null  → record.Action (Keep or Set)
//	update × nullable  → record.Action (Keep, Set, or Unset)
//
// The two update shapes share record.Action; the extra Unset case of
// nullable fields is enforced when the update is applied.
func ColumnGoType(rep Representation, n Nullability, t BaseType) string {
	elem := t.GoType()
	switch rep {
	case RepTable:
		if n == Nullable {
			return "column.Sparse[" + elem + "]"
		}
		return "column.Dense[" + elem + "]"
	case RepRow:
		if n == Nullable {
			return "*" + elem
		}
		return elem
	case RepUpdate:
		return "record.Action"
	default:
		return ""
	}
}
