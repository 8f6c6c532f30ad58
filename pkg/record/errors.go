package record

import "errors"

// Engine and builder errors. A failed Lookup is not among them: a
// missing row is the normal absent result, never an error.
var (
	// ErrUnknownField reports a field name not declared by the pattern.
	ErrUnknownField = errors.New("unknown field")

	// ErrDuplicateField reports a pattern declaring the same field name twice.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrEmptyPattern reports a pattern with no fields or no name.
	ErrEmptyPattern = errors.New("pattern needs a name and at least one field")

	// ErrTypeMismatch reports a value that does not fit a field's base type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMissingField reports a row built without a value for a
	// not-null field.
	ErrMissingField = errors.New("missing value for not-null field")

	// ErrNotNullUnset reports an Unset action aimed at a not-null field;
	// only nullable fields can be cleared.
	ErrNotNullUnset = errors.New("cannot unset not-null field")

	// ErrPatternMismatch reports a Row or Update applied to a Table of a
	// different pattern.
	ErrPatternMismatch = errors.New("pattern mismatch")

	// ErrOutOfRange reports an Update addressing a row id beyond the
	// table's current length.
	ErrOutOfRange = errors.New("row id out of range")
)
