package record

import "fmt"

// Table is the bulk storage shape of a pattern: one container per
// field, a dense append-ordered sequence for not-null fields and a
// sparse row-id-keyed mapping for nullable ones. Tables are immutable
// values — Insert and Update return new tables and leave the receiver
// untouched, sharing the containers of unaffected fields.
type Table struct {
	pattern *Pattern
	cols    []tableColumn
	rows    int
}

// Empty constructs the table with no rows: every field's container
// empty. This is the only way a table lineage starts.
func (p *Pattern) Empty() Table {
	cols := make([]tableColumn, len(p.fields))
	for i, f := range p.fields {
		cols[i] = leafFor(f.null).empty()
	}
	return Table{pattern: p, cols: cols}
}

// Pattern returns the pattern this table stores.
func (t Table) Pattern() *Pattern { return t.pattern }

// Len returns the number of rows inserted into this table lineage.
// Under the monotonic-insert contract it equals the length of every
// not-null field's sequence.
func (t Table) Len() int { return t.rows }

// Lookup returns the row stored under id. The whole row is present iff
// every field's leaf result is present: a nullable field with no entry
// contributes an absent cell, never whole-row absence, while a not-null
// field whose sequence does not reach id makes the row absent. A false
// result is the normal "row not found" outcome, not an error.
func (t Table) Lookup(id RowID) (Row, bool) {
	if t.pattern == nil {
		return Row{}, false
	}
	cells := make([]cell, len(t.cols))
	for i, f := range t.pattern.fields {
		c, ok := leafFor(f.null).lookup(t.cols[i], id)
		if !ok {
			return Row{}, false
		}
		cells[i] = c
	}
	return Row{pattern: t.pattern, cells: cells}, true
}

// Insert returns a new table with r stored under id. Not-null values
// are appended at the tail of their sequences, so id must be the next
// free position (t.Len()); issuing unique, monotonically increasing ids
// is the row-id authority's contract and is deliberately not validated
// here — violating it leaves the table's positional indexing skewed.
// Nullable fields gain an entry only when the row holds a value.
func (t Table) Insert(id RowID, r Row) (Table, error) {
	if t.pattern == nil || r.pattern != t.pattern {
		return Table{}, fmt.Errorf("insert: %w", ErrPatternMismatch)
	}
	cols := make([]tableColumn, len(t.cols))
	for i, f := range t.pattern.fields {
		cols[i] = leafFor(f.null).insert(t.cols[i], id, r.cells[i])
	}
	return Table{pattern: t.pattern, cols: cols, rows: t.rows + 1}, nil
}

// Update returns a new table with u applied to the row under id. Every
// field's action is applied independently with the same id. If any
// not-null field is addressed beyond the current length the whole call
// fails with ErrOutOfRange and no partial result escapes; nullable
// actions never fail. Update never changes the row count.
func (t Table) Update(id RowID, u Update) (Table, error) {
	if t.pattern == nil || u.pattern != t.pattern {
		return Table{}, fmt.Errorf("update: %w", ErrPatternMismatch)
	}
	cols := make([]tableColumn, len(t.cols))
	for i, f := range t.pattern.fields {
		c, err := leafFor(f.null).update(t.cols[i], id, u.actions[i])
		if err != nil {
			return Table{}, fmt.Errorf("update %q field %q: %w", t.pattern.name, f.name, err)
		}
		cols[i] = c
	}
	return Table{pattern: t.pattern, cols: cols, rows: t.rows}, nil
}
