package record

import "fmt"

// RowID identifies one logical row in a Table. Ids are issued by an
// authority outside the engine (see internal/rowid for the one the CLI
// uses); the engine only consumes them.
type RowID uint64

// FieldSpec declares one field of a pattern: a name, a base type, and a
// nullability tag. Immutable once the pattern is built.
type FieldSpec struct {
	name string
	typ  BaseType
	null Nullability
}

// NewField declares a field for use in NewPattern.
func NewField(name string, typ BaseType, null Nullability) FieldSpec {
	return FieldSpec{name: name, typ: typ, null: null}
}

// Name returns the field name.
func (f FieldSpec) Name() string { return f.name }

// Type returns the field's base type.
func (f FieldSpec) Type() BaseType { return f.typ }

// Nullability returns the field's nullability tag.
func (f FieldSpec) Nullability() Nullability { return f.null }

// Pattern is an ordered, named list of fields. Field order and field
// set are fixed at construction and shared by every representation of
// the pattern: the Table, Row, and Update shapes always agree on field
// identity.
//
// Rows and Updates remember the Pattern value they were built from;
// applying them to a Table of a different Pattern value fails with
// ErrPatternMismatch. Declare each pattern once and share it.
type Pattern struct {
	name   string
	fields []FieldSpec
	index  map[string]int
}

// NewPattern builds a pattern from an ordered field list. Field names
// must be non-empty and unique.
func NewPattern(name string, fields ...FieldSpec) (*Pattern, error) {
	if name == "" || len(fields) == 0 {
		return nil, ErrEmptyPattern
	}
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrEmptyPattern, i)
		}
		if _, ok := index[f.name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.name)
		}
		if _, ok := baseTypeNames[f.typ]; !ok {
			return nil, fmt.Errorf("field %q: unknown base type %d", f.name, f.typ)
		}
		index[f.name] = i
	}
	cp := make([]FieldSpec, len(fields))
	copy(cp, fields)
	return &Pattern{name: name, fields: cp, index: index}, nil
}

// MustPattern is NewPattern that panics on error, for patterns declared
// as program fixtures.
func MustPattern(name string, fields ...FieldSpec) *Pattern {
	p, err := NewPattern(name, fields...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the pattern name.
func (p *Pattern) Name() string { return p.name }

// NumFields returns the number of declared fields.
func (p *Pattern) NumFields() int { return len(p.fields) }

// Fields returns the declared fields in order.
func (p *Pattern) Fields() []FieldSpec {
	cp := make([]FieldSpec, len(p.fields))
	copy(cp, p.fields)
	return cp
}

// Field returns the spec of the named field.
func (p *Pattern) Field(name string) (FieldSpec, bool) {
	i, ok := p.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return p.fields[i], true
}

// fieldIndex returns the position of the named field.
func (p *Pattern) fieldIndex(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}
