package record

// Representation selects which concrete shape a pattern denotes.
type Representation int

const (
	// RepTable is the bulk storage shape: one container per field.
	RepTable Representation = iota
	// RepRow is the single-entity shape produced by Lookup and consumed
	// by Insert.
	RepRow
	// RepUpdate is the partial-mutation shape consumed by Update.
	RepUpdate
)

// String returns the representation name.
func (r Representation) String() string {
	switch r {
	case RepTable:
		return "table"
	case RepRow:
		return "row"
	case RepUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Representations lists all representations in declaration order.
func Representations() []Representation {
	return []Representation{RepTable, RepRow, RepUpdate}
}

// Nullability selects whether a field may be logically absent.
type Nullability int

const (
	// NotNull fields are always present; in a Table they occupy one
	// dense slot per row.
	NotNull Nullability = iota
	// Nullable fields may be absent; in a Table they live in a sparse
	// mapping where a missing key means "null for that row".
	Nullable
)

// String returns the nullability name.
func (n Nullability) String() string {
	switch n {
	case NotNull:
		return "not null"
	case Nullable:
		return "nullable"
	default:
		return "unknown"
	}
}
