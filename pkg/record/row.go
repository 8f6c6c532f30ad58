package record

import "fmt"

// Row is the single-entity shape of a pattern: one cell per field,
// always present for not-null fields and optional for nullable ones.
// Rows come out of Table.Lookup and go into Table.Insert; build them
// with NewRow.
type Row struct {
	pattern *Pattern
	cells   []cell
}

// Pattern returns the pattern the row was built from.
func (r Row) Pattern() *Pattern { return r.pattern }

// Get returns the value of the named field. The second result is false
// when a nullable field holds no value, or when the field is unknown.
func (r Row) Get(name string) (any, bool) {
	if r.pattern == nil {
		return nil, false
	}
	i, ok := r.pattern.fieldIndex(name)
	if !ok {
		return nil, false
	}
	c := r.cells[i]
	if !c.present {
		return nil, false
	}
	return c.value, true
}

// Get returns the typed value of the named field of r. The second
// result is false when the field is absent, unknown, or not of type T.
// Int fields are stored as int64 and float fields as float64.
func Get[T any](r Row, name string) (T, bool) {
	v, ok := r.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// RowBuilder assembles a Row field by field. Calls chain; the first
// error sticks and is reported by Build.
type RowBuilder struct {
	pattern *Pattern
	cells   []cell
	filled  []bool
	err     error
}

// NewRow starts a row for the pattern. Every not-null field must be Set
// before Build; nullable fields default to absent.
func NewRow(p *Pattern) *RowBuilder {
	return &RowBuilder{
		pattern: p,
		cells:   make([]cell, p.NumFields()),
		filled:  make([]bool, p.NumFields()),
	}
}

// Set assigns a value to the named field. The value must fit the
// field's base type; ints are widened to int64 and floats to float64.
func (b *RowBuilder) Set(name string, v any) *RowBuilder {
	if b.err != nil {
		return b
	}
	i, ok := b.pattern.fieldIndex(name)
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownField, name)
		return b
	}
	norm, err := b.pattern.fields[i].typ.normalize(v)
	if err != nil {
		b.err = fmt.Errorf("field %q: %w", name, err)
		return b
	}
	b.cells[i] = cell{value: norm, present: true}
	b.filled[i] = true
	return b
}

// SetNull marks a nullable field explicitly absent. Absent is already
// the default, so SetNull only documents intent; it fails for not-null
// fields.
func (b *RowBuilder) SetNull(name string) *RowBuilder {
	if b.err != nil {
		return b
	}
	i, ok := b.pattern.fieldIndex(name)
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownField, name)
		return b
	}
	if b.pattern.fields[i].null != Nullable {
		b.err = fmt.Errorf("%w: %q", ErrMissingField, name)
		return b
	}
	b.cells[i] = cell{}
	b.filled[i] = true
	return b
}

// Build finalizes the row, verifying that every not-null field was set.
func (b *RowBuilder) Build() (Row, error) {
	if b.err != nil {
		return Row{}, b.err
	}
	for i, f := range b.pattern.fields {
		if f.null == NotNull && !b.filled[i] {
			return Row{}, fmt.Errorf("%w: %q", ErrMissingField, f.name)
		}
	}
	cells := make([]cell, len(b.cells))
	copy(cells, b.cells)
	return Row{pattern: b.pattern, cells: cells}, nil
}
